package sensor

import (
	"errors"
	"testing"
)

func TestFakeReaderSequence(t *testing.T) {
	f := NewFakeReader(100, 200)

	for i, want := range []uint16{100, 200, 200} {
		got, err := f.ReadRaw(1)
		if err != nil {
			t.Fatalf("read %d: unexpected error %v", i, err)
		}
		if got != want {
			t.Errorf("read %d: got %d, want %d", i, got, want)
		}
	}
	if len(f.Channels) != 3 || f.Channels[0] != 1 {
		t.Errorf("channels not recorded: %v", f.Channels)
	}
}

func TestFakeReaderErrors(t *testing.T) {
	f := NewFakeReader()
	if _, err := f.ReadRaw(0); err == nil {
		t.Error("expected error with no samples")
	}

	f = NewFakeReader(1)
	f.ReadError = errors.New("conversion failed")
	if _, err := f.ReadRaw(0); err == nil || err.Error() != "conversion failed" {
		t.Errorf("unexpected error: %v", err)
	}

	f.Close()
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}
