package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists a fetched body under a location derived from its index.
type Writer interface {
	Write(ctx context.Context, content string, index int) error
}

// FileSink writes each body to Dir/page_{index}.html.
type FileSink struct {
	Dir string
}

// NewFileSink returns a sink rooted at dir; an empty dir means the working directory.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// PageName is the output file name for an input index.
func PageName(index int) string {
	return fmt.Sprintf("page_%d.html", index)
}

// Path returns the full output path for index.
func (s *FileSink) Path(index int) string {
	return filepath.Join(s.Dir, PageName(index))
}

// Write creates or truncates the page file for index and writes content to it.
func (s *FileSink) Write(ctx context.Context, content string, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := s.Path(index)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
