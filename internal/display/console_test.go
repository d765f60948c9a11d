package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConsolePrintsChangedFramesOnly(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	c.WriteText("Temp: 21.0")
	c.WriteGlyph(GlyphDegree)
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	first := out.String()
	if !strings.Contains(first, "|Temp: 21.0°     |") {
		t.Errorf("unexpected frame:\n%s", first)
	}

	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != first {
		t.Error("unchanged frame should not be printed again")
	}

	c.MoveCursor(0, 1)
	c.WriteText("x")
	c.Flush()
	if strings.Count(out.String(), "+----------------+") != 4 {
		t.Errorf("expected two frames, got:\n%s", out.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestConsoleWriteError(t *testing.T) {
	c := NewConsole(failWriter{})
	c.WriteText("x")
	if err := c.Flush(); err == nil {
		t.Error("expected write error")
	}
}
