package ledger

import (
	"path/filepath"
	"testing"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crawl_report.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpenCreatesSchema(t *testing.T) {
	l := openTestLedger(t)

	var count int
	row := l.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('resources', 'crawl_runs')")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	if count != 2 {
		t.Errorf("found %d of the 2 expected tables", count)
	}
}

func TestRecordResourceAndReadBack(t *testing.T) {
	l := openTestLedger(t)

	rec := ResourceRecord{
		Host: "gopher.example.com", Port: 70, Selector: "/hello.txt",
		FullPath: "hello.txt", LocalPath: "downloaded_files/hello.txt",
		Kind: "text", Size: 2, RecordedAt: 1700000000,
	}
	if err := l.RecordResource(rec); err != nil {
		t.Fatalf("RecordResource() error = %v", err)
	}

	var gotPath string
	var gotSize int64
	row := l.db.QueryRow("SELECT full_path, size FROM resources WHERE selector = ?", rec.Selector)
	if err := row.Scan(&gotPath, &gotSize); err != nil {
		t.Fatalf("failed to read back resource: %v", err)
	}
	if gotPath != rec.FullPath || gotSize != rec.Size {
		t.Errorf("got (%q, %d), want (%q, %d)", gotPath, gotSize, rec.FullPath, rec.Size)
	}
}

func TestRecordRun(t *testing.T) {
	l := openTestLedger(t)

	s := RunSummary{
		OriginHost: "gopher.example.com", OriginPort: 70,
		StartedAt: 1700000000, FinishedAt: 1700000100,
		Visited: 3, TextFiles: 2, BinaryFiles: 1,
		SmallestTextSize: 2, LargestTextSize: 100,
	}
	if err := l.RecordRun(s); err != nil {
		t.Fatalf("RecordRun() error = %v", err)
	}

	var visited int
	row := l.db.QueryRow("SELECT visited FROM crawl_runs WHERE origin_host = ?", s.OriginHost)
	if err := row.Scan(&visited); err != nil {
		t.Fatalf("failed to read back run: %v", err)
	}
	if visited != 3 {
		t.Errorf("visited = %d, want 3", visited)
	}
}
