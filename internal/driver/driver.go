package driver

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

var ErrStopped = errors.New("driver stopped")

type Manager interface {
	Tick(context.Context) error
}

type request struct {
	fn   func(context.Context) error
	resp chan error
}

// Driver owns the logic goroutine. Managers are ticked and requests are
// run on that goroutine only, so the state they touch needs no locking.
type Driver struct {
	tickLength time.Duration
	managers   []Manager

	requests chan request
	stopped  chan struct{}
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
		requests:   make(chan request),
		stopped:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start runs the loop until ctx is cancelled, then ticks once more so
// managers can flush pending work.
func (d *Driver) Start(ctx context.Context) error {
	defer close(d.stopped)

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "driver stopping, running final tick")
			return d.Tick(context.WithoutCancel(ctx))
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		case req := <-d.requests:
			req.resp <- req.fn(ctx)
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Do runs fn on the driver goroutine and returns its error. It returns
// ErrStopped if the driver has exited, or ctx's error if ctx ends first.
func (d *Driver) Do(ctx context.Context, fn func(context.Context) error) error {
	req := request{fn: fn, resp: make(chan error, 1)}

	select {
	case d.requests <- req:
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	return <-req.resp
}
