package resource

import (
	"context"
	"io"
)

// Reader returns r throttled by the controller's IO limit. Without a limit r
// is returned as is.
func (c *Controller) Reader(ctx context.Context, r io.Reader) io.Reader {
	if c.burst() == 0 {
		return r
	}
	return &limitedReader{ctx: ctx, r: r, c: c}
}

type limitedReader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	// WaitN rejects requests above the burst outright.
	if b := lr.c.burst(); len(p) > b {
		p = p[:b]
	}
	if err := lr.c.waitIO(lr.ctx, len(p)); err != nil {
		return 0, err
	}
	return lr.r.Read(p)
}
