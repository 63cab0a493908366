package objproc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

var (
	// ErrEmptyFile reports an input file with no content to parse.
	ErrEmptyFile = errors.New("obj file is empty")

	// ErrLineIndex reports a mismatch between the ingested line count and
	// the built line index. It indicates an internal invariant breach,
	// never malformed user data.
	ErrLineIndex = errors.New("line index does not match ingested line count")
)

// ingest reads the whole file at path into a single buffer, rewrites
// every newline byte to a NUL terminator in place, and counts the
// resulting lines. The final line is counted even without a trailing
// newline, and one extra NUL is appended as the end-of-buffer sentinel.
func ingest(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open obj file '%s': %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn().Err(err).
				Str("path", path).
				Msg("failed to close obj file")
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat obj file '%s': %w", path, err)
	}
	if info.Size() == 0 {
		return nil, 0, fmt.Errorf("'%s': %w", path, ErrEmptyFile)
	}

	buffer := make([]byte, info.Size()+1)
	n, err := io.ReadFull(f, buffer[:info.Size()])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, 0, fmt.Errorf("failed to read obj file '%s': %w", path, err)
	}
	if n == 0 {
		return nil, 0, fmt.Errorf("'%s': %w", path, ErrEmptyFile)
	}
	buffer = buffer[:n+1]

	rows := 0
	for i := 0; i < n; i++ {
		if buffer[i] == '\n' {
			buffer[i] = 0
			rows++
		}
	}
	rows++ // the final line carries no trailing newline

	buffer[n] = 0 // end-of-buffer sentinel

	return buffer, rows, nil
}

// indexLines partitions the ingested buffer into one zero-copy slice per
// line. Boundaries are the NULs that ingest wrote in place of newlines;
// the sentinel NUL at the very end does not start a line of its own. The
// discovered line count must equal rows from ingestion.
func indexLines(buffer []byte, rows int) ([][]byte, error) {
	if len(buffer) == 0 || rows == 0 {
		return nil, ErrLineIndex
	}

	lines := make([][]byte, 0, rows)
	start := 0
	for i := 0; i < len(buffer)-1; i++ {
		if buffer[i] == 0 {
			lines = append(lines, buffer[start:i])
			start = i + 1
		}
	}
	lines = append(lines, buffer[start:len(buffer)-1])

	if len(lines) != rows {
		return nil, fmt.Errorf("%w: indexed %d lines, ingested %d", ErrLineIndex, len(lines), rows)
	}

	return lines, nil
}
