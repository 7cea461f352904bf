package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsBankFileChanges(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "sounds.yaml")
	if err := os.WriteFile(path, []byte("sounds: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event path = %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for a new bank file")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("not a bank\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Events:
		t.Errorf("got event %q for a non-bank file", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseDuringBurst(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	// More bank files than the Events buffer holds, with nobody draining,
	// so the watch goroutine ends up blocked mid-send when Close arrives.
	for i := 0; i < 40; i++ {
		path := filepath.Join(dir, fmt.Sprintf("bank%02d.yaml", i))
		if err := os.WriteFile(path, []byte("sounds: []\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	time.Sleep(200 * time.Millisecond)

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The watch goroutine owns the channels; after Close both must drain
	// out and close rather than panic or hang.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Events never closed after Close")
		}
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestWatcherRejectsMissingDir(t *testing.T) {
	t.Parallel()
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("NewWatcher on a missing dir succeeded, want error")
	}
}
