package printing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SpoolOpener writes jobs into a directory watched by the shop's print
// daemon. An empty or missing directory means printing is unavailable.
type SpoolOpener struct {
	Dir string
	Now func() time.Time
}

func NewSpoolOpener(dir string) *SpoolOpener {
	return &SpoolOpener{Dir: dir, Now: time.Now}
}

func (o *SpoolOpener) Open(ctx context.Context) (Surface, error) {
	if o.Dir == "" {
		return nil, fmt.Errorf("%w: no spool directory configured", ErrUnavailable)
	}
	info, err := os.Stat(o.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrUnavailable, o.Dir)
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}
	return &spoolSurface{dir: o.Dir, now: now}, nil
}

type spoolSurface struct {
	dir string
	now func() time.Time
}

// Submit writes the job to a temp file and renames it into place so the
// daemon never picks up a partial job.
func (s *spoolSurface) Submit(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := fmt.Sprintf("%d-%s", s.now().UnixNano(), unsafeName.ReplaceAllString(job.Name, "_"))
	tmp, err := os.CreateTemp(s.dir, ".job-*")
	if err != nil {
		return fmt.Errorf("create spool file: %w", err)
	}
	if _, err := tmp.Write(job.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write spool file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close spool file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish spool file: %w", err)
	}
	return nil
}
