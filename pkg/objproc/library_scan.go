package objproc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// ScanHandler defines a handler function for per-file scan results.
type ScanHandler func(result *ScanResult) error

// LibraryScan defines the interface for scanning a directory tree of OBJ
// files.
type LibraryScan interface {
	// Scan parses every .obj file under the configured directory and
	// streams one result per matching file via the handler.
	Scan(ctx context.Context, request *ScanRequest, handler ScanHandler) error
}

type libraryScanImpl struct {
	// objDir is a directory containing obj files to scan
	objDir string

	// maxThreads defines the maximum number of worker goroutines to use
	maxThreads int
}

// NewLibraryScan creates a new LibraryScan instance for the specified
// directory.
func NewLibraryScan(objDir string, maxThreads int) LibraryScan {
	if maxThreads <= 0 {
		// default to number of CPU cores if not specified
		maxThreads = runtime.NumCPU()
	}

	return &libraryScanImpl{
		objDir:     objDir,
		maxThreads: maxThreads,
	}
}

// Scan walks the configured directory for .obj files, parses them
// concurrently, and streams a ScanResult per file that passes the
// request filters. Files that fail to parse are logged and skipped; a
// handler error cancels the whole scan.
func (s *libraryScanImpl) Scan(ctx context.Context, request *ScanRequest, handler ScanHandler) error {
	var namePattern *regexp.Regexp
	if request.Filters != nil && request.Filters.NamePattern != "" {
		var err error
		namePattern, err = patternCache.get(request.Filters.NamePattern)
		if err != nil {
			return fmt.Errorf("invalid name pattern '%s': %w", request.Filters.NamePattern, err)
		}
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	paths := make(chan string)

	// producer goroutine to find all .obj files
	p.Go(func(ctx context.Context) error {
		defer close(paths)
		return filepath.WalkDir(s.objDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// an error during walk is fatal
				return err
			}

			if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".obj") {
				// apply FilesIn filter if provided
				if request.Filters != nil && len(request.Filters.FilesIn) > 0 {
					if !slices.Contains(request.Filters.FilesIn, path) {
						// skip files not in the FilesIn list
						return nil
					}
				}

				select {
				case paths <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			return nil
		})
	})

	// worker goroutines to parse files
	for i := 0; i < s.maxThreads; i++ {
		p.Go(func(ctx context.Context) error {
			parser := acquireParser(request.Triangulate)
			defer releaseParser(parser)

			for path := range paths {
				select {
				case <-ctx.Done():
					err := ctx.Err()
					if errors.Is(err, context.Canceled) {
						// skip returning an error on cancel
						return nil
					}
					return err
				default:
				}

				if err := parser.Parse(path); err != nil {
					// a single malformed file shouldn't stop the whole scan
					log.Err(err).Str("path", path).Msg("error parsing obj file")
					parser.Clear()
					continue
				}

				if !matchesScanFilters(parser, request.Filters, namePattern) {
					continue
				}

				result := &ScanResult{
					Path:    path,
					Summary: parser.Summarize(),
				}
				if request.WithBounds {
					result.Bounds = BoundsBoxOf(parser)
				}

				// send this result to the handler
				if err := handler(result); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return p.Wait()
}

// matchesScanFilters checks a parsed document against the request
// filters. The name pattern matches material names first, then object
// and group annotations.
func matchesScanFilters(p *Parser, filters *ScanFilters, namePattern *regexp.Regexp) bool {
	if filters == nil {
		return true
	}

	// handle MinFaces filter
	if filters.MinFaces > 0 && p.Face.Vertex.Len() < filters.MinFaces {
		return false
	}

	// handle UsesMaterial filter
	if filters.UsesMaterial != "" {
		found := false
		for _, use := range p.UseMaterial() {
			if strings.EqualFold(use.Name, filters.UsesMaterial) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// handle NamePattern filter
	if namePattern != nil {
		found := false
		for _, use := range p.UseMaterial() {
			if namePattern.MatchString(use.Name) {
				found = true
				break
			}
		}
		if !found {
			for _, note := range p.Annotations() {
				if (note.Marker == 'o' || note.Marker == 'g') && namePattern.MatchString(note.Text) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	return true
}
