package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInitVerbose(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, true)

	Named("store").Debug("saved score", String("handle", "helper"), Int("score", 52))

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "component=store", "handle=helper", "score=52", `msg="saved score"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestInitQuietHidesDebugAndInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)

	l := Get()
	l.Debug("hidden")
	l.Info("also hidden")
	l.Warn("shown", Err(errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Errorf("warning missing error field: %q", out)
	}
}

func TestSetLevelString(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)

	if !SetLevelString("info") {
		t.Fatal("SetLevelString(info) = false")
	}
	Get().Info("now visible", Bool("ok", true), Float64("ratio", 0.5))
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("info not logged after SetLevelString: %q", buf.String())
	}

	if SetLevelString("loud") {
		t.Error("SetLevelString accepted an unknown level")
	}
}

func TestGetInitializesLazily(t *testing.T) {
	mu.Lock()
	global = nil
	mu.Unlock()

	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
}
