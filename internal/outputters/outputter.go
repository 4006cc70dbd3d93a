package outputters

import (
	"fmt"

	"github.com/dotcommander/agentfolio/internal/config"
	"github.com/dotcommander/agentfolio/internal/output"
)

// Outputter picks the formatter for the configured output format
type Outputter struct {
	config *config.Config
}

// NewOutputter creates a new Outputter
func NewOutputter(config *config.Config) *Outputter {
	return &Outputter{
		config: config,
	}
}

// Formatter returns the formatter for format, falling back to the configured format when empty
func (o *Outputter) Formatter(format string) (output.Formatter, error) {
	if format == "" {
		format = o.config.Format
	}

	switch format {
	case "console":
		return output.NewConsoleFormatter(o.config.Quiet, o.config.Verbose), nil
	case "json":
		return output.NewJSONFormatter(true, o.config.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(o.config.Verbose, o.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
