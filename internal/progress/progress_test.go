package progress

import (
	"bytes"
	"testing"
)

func TestTracker_Disabled(t *testing.T) {
	out := &bytes.Buffer{}
	tr := New(Config{
		Description: "Writing",
		TotalBytes:  1000,
		Enabled:     false,
		Output:      out,
	})

	tr.Add(500)
	tr.Finish()

	if tr.bar != nil {
		t.Fatalf("disabled tracker has a bar")
	}
	if out.Len() != 0 {
		t.Fatalf("disabled tracker wrote %q", out.String())
	}
}

func TestTracker_Enabled(t *testing.T) {
	out := &bytes.Buffer{}
	tr := New(Config{
		Description: "Writing",
		TotalBytes:  1000,
		Enabled:     true,
		Output:      out,
	})

	for i := 0; i < 10; i++ {
		tr.Add(100)
	}
	tr.Finish()

	if tr.bar == nil {
		t.Fatalf("enabled tracker has no bar")
	}
	if out.Len() == 0 {
		t.Fatalf("expected progress output")
	}
}

func TestTracker_Indeterminate(t *testing.T) {
	out := &bytes.Buffer{}
	tr := New(Config{
		Description: "Verifying",
		Enabled:     true,
		Output:      out,
	})

	tr.Add(100)
	tr.Add(0)
	tr.Finish()

	if tr.bar == nil {
		t.Fatalf("enabled tracker has no bar")
	}
}
