package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/comp3310/gopherindex/gopher"
	"github.com/comp3310/gopherindex/logger"
)

func TestStripTrailingTerminatorRemovesDotNewline(t *testing.T) {
	got := stripTrailingTerminator("hi.\n")
	if got != "hi" {
		t.Errorf("stripTrailingTerminator() = %q, want %q", got, "hi")
	}
}

func TestStripTrailingTerminatorRemovesLoneDot(t *testing.T) {
	got := stripTrailingTerminator("hi.")
	if got != "hi" {
		t.Errorf("stripTrailingTerminator() = %q, want %q", got, "hi")
	}
}

func TestStripTrailingTerminatorLeavesOrdinaryTextAlone(t *testing.T) {
	got := stripTrailingTerminator("no terminator here")
	if got != "no terminator here" {
		t.Errorf("stripTrailingTerminator() changed text that had no marker: %q", got)
	}
}

func TestWriteResourcePersistsBytesAndCreatesDirectories(t *testing.T) {
	// The download root does not exist yet; writeResource must create it.
	root := filepath.Join(t.TempDir(), "downloads")
	localPath, size := writeResource(logger.Nop{}, root, "/deep/nested/file.txt", []byte("payload"))
	if size != int64(len("payload")) {
		t.Fatalf("size = %d, want %d", size, len("payload"))
	}

	want, err := gopher.Sanitize(root, "/deep/nested/file.txt")
	if err != nil {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if localPath != want {
		t.Errorf("localPath = %q, want %q", localPath, want)
	}

	got, err := os.ReadFile(localPath)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("on-disk contents = %q, want %q", string(got), "payload")
	}
}
