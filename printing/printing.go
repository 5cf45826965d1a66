// Package printing hands rendered invoices and receipts to a print surface.
package printing

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no print surface can be obtained. Callers
// should tell the operator and let them retry.
var ErrUnavailable = errors.New("printing unavailable")

// Job is one document submitted for printing.
type Job struct {
	Name        string
	ContentType string
	Body        []byte
}

// Surface accepts print jobs.
type Surface interface {
	Submit(ctx context.Context, job Job) error
}

// Opener obtains a Surface. It returns an error wrapping ErrUnavailable when
// the host cannot print.
type Opener interface {
	Open(ctx context.Context) (Surface, error)
}

// Submit opens a surface and submits job to it. Any failure to open is
// reported as ErrUnavailable.
func Submit(ctx context.Context, opener Opener, job Job) error {
	if opener == nil {
		return ErrUnavailable
	}
	surface, err := opener.Open(ctx)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return err
		}
		return errors.Join(ErrUnavailable, err)
	}
	return surface.Submit(ctx, job)
}
