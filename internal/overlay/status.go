package overlay

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/dropdown/internal/geometry"
	"github.com/jmylchreest/dropdown/internal/wm"
)

// Status describes the overlay without changing anything.
type Status struct {
	Open    bool
	Windows []wm.Window
	// Output and Dimensions are what an Open with the same Request would use.
	// Both are zero when no output is active.
	Output     geometry.Output
	Dimensions geometry.Dimensions
}

// Status queries the window list and outputs from separate goroutines.
// Over a single ipc.Conn the requests are still serialized by its lock.
func (c *Controller) Status(ctx context.Context, req Request) (*Status, error) {
	var (
		st Status
		g  errgroup.Group
	)

	g.Go(func() error {
		windows, err := c.Windows(ctx)
		if err != nil {
			return err
		}
		st.Windows = windows
		st.Open = len(windows) > 0
		return nil
	})

	g.Go(func() error {
		dims, out, err := c.dimensions(ctx, req)
		if errors.Is(err, geometry.ErrNoActiveOutput) {
			return nil
		}
		if err != nil {
			return err
		}
		st.Dimensions = dims
		st.Output = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}
