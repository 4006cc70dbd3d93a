package main

import "github.com/dotcommander/agentfolio/cmd"

func main() {
	cmd.Execute()
}
