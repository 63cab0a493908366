package objproc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFixture writes content to a fresh file under the test's temp
// directory and returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// TestIngestRewritesNewlines verifies that ingestion reads the whole
// file, rewrites newline bytes to NUL terminators, counts the implicit
// final line, and appends the end-of-buffer sentinel.
func TestIngestRewritesNewlines(t *testing.T) {
	path := writeFixture(t, "cube.obj", "v 1 2 3\nv 4 5 6\nf 1 2")

	buffer, rows, err := ingest(path)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	if rows != 3 {
		t.Errorf("expected 3 lines, got %d", rows)
	}
	if buffer[len(buffer)-1] != 0 {
		t.Error("expected a NUL sentinel at the end of the buffer")
	}
	if got := bytes.Count(buffer, []byte{0}); got != 3 {
		t.Errorf("expected 3 NUL bytes (2 rewritten newlines + sentinel), got %d", got)
	}
	if bytes.Contains(buffer, []byte{'\n'}) {
		t.Error("expected every newline byte to be rewritten")
	}
}

// TestIngestTrailingNewline verifies that a trailing newline produces a
// final empty line, which the dispatcher later skips.
func TestIngestTrailingNewline(t *testing.T) {
	path := writeFixture(t, "trailing.obj", "v 1 2 3\n")

	buffer, rows, err := ingest(path)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if rows != 2 {
		t.Errorf("expected 2 lines, got %d", rows)
	}

	lines, err := indexLines(buffer, rows)
	if err != nil {
		t.Fatalf("indexLines failed: %v", err)
	}
	if len(lines[1]) != 0 {
		t.Errorf("expected an empty final line, got %q", lines[1])
	}
}

// TestIngestMissingFile verifies the error for an unreadable path.
func TestIngestMissingFile(t *testing.T) {
	_, _, err := ingest(filepath.Join(t.TempDir(), "does-not-exist.obj"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

// TestIngestEmptyFile verifies that a zero-length file is rejected with
// ErrEmptyFile.
func TestIngestEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.obj", "")

	_, _, err := ingest(path)
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

// TestIndexLinesZeroCopy verifies that line slices are views into the
// ingested buffer, never copies.
func TestIndexLinesZeroCopy(t *testing.T) {
	path := writeFixture(t, "views.obj", "v 1 2 3\nf 1")

	buffer, rows, err := ingest(path)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	lines, err := indexLines(buffer, rows)
	if err != nil {
		t.Fatalf("indexLines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	lines[0][0] = 'X'
	if buffer[0] != 'X' {
		t.Error("expected line slices to alias the ingestion buffer")
	}
}

// TestIndexLinesCountMismatch verifies the defensive consistency check
// against the ingested line count.
func TestIndexLinesCountMismatch(t *testing.T) {
	buffer := []byte{'a', 0, 'b', 0}

	if _, err := indexLines(buffer, 5); !errors.Is(err, ErrLineIndex) {
		t.Fatalf("expected ErrLineIndex, got %v", err)
	}
	if _, err := indexLines(nil, 0); !errors.Is(err, ErrLineIndex) {
		t.Fatalf("expected ErrLineIndex for empty input, got %v", err)
	}
}
