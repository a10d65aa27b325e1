package progress

import (
	"bytes"
	"errors"
	"testing"
)

func TestCallbackReporter_EntryLifecycle(t *testing.T) {
	var updates []Update
	r := NewCallbackReporter(func(u Update) {
		updates = append(updates, u)
	})

	r.SetTotal(2, 300)
	r.Start("lib/arm64-v8a/libapp.so", 200)
	r.Update(100)
	r.Update(200)
	r.Complete()
	r.Start("classes.dex", 100)
	r.Complete()

	if len(updates) != 6 {
		t.Fatalf("Expected 6 updates, got %d", len(updates))
	}

	if updates[0].Type != UpdateStart || updates[0].CurrentEntry != "lib/arm64-v8a/libapp.so" {
		t.Errorf("Unexpected first update: %+v", updates[0])
	}
	if updates[2].Type != UpdateProgress || updates[2].CurrentBytes != 200 {
		t.Errorf("Unexpected progress update: %+v", updates[2])
	}

	final := updates[5]
	if final.Type != UpdateComplete {
		t.Errorf("Expected UpdateComplete, got %v", final.Type)
	}
	if final.EntriesCompleted != 2 || final.EntriesTotal != 2 {
		t.Errorf("Entry counts = %d/%d, want 2/2", final.EntriesCompleted, final.EntriesTotal)
	}
	if final.BytesCompleted != 300 || final.BytesTotal != 300 {
		t.Errorf("Byte counts = %d/%d, want 300/300", final.BytesCompleted, final.BytesTotal)
	}
}

func TestCallbackReporter_Error(t *testing.T) {
	var got Update
	r := NewCallbackReporter(func(u Update) {
		got = u
	})

	r.Start("resources.arsc", 10)
	wantErr := errors.New("short write")
	r.Error(wantErr)

	if got.Type != UpdateError {
		t.Fatalf("Expected UpdateError, got %v", got.Type)
	}
	if !errors.Is(got.Error, wantErr) {
		t.Errorf("Error not carried through: %v", got.Error)
	}
	if got.CurrentEntry != "resources.arsc" {
		t.Errorf("CurrentEntry = %q", got.CurrentEntry)
	}
}

func TestCallbackReporter_NilCallback(t *testing.T) {
	r := NewCallbackReporter(nil)
	// Must not panic
	r.SetTotal(1, 1)
	r.Start("a", 1)
	r.Update(1)
	r.Complete()
	r.Error(errors.New("x"))
}

func TestWriter_TracksCumulativeBytes(t *testing.T) {
	var last Update
	r := NewCallbackReporter(func(u Update) {
		last = u
	})

	var buf bytes.Buffer
	w := NewWriter(&buf, r)

	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "hello world" {
		t.Errorf("Underlying writer got %q", buf.String())
	}
	if last.CurrentBytes != 11 {
		t.Errorf("Reported bytes = %d, want 11", last.CurrentBytes)
	}
}

func TestWriter_NilReporter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	if _, err := w.Write([]byte("data")); err != nil {
		t.Fatal(err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.bytes); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
