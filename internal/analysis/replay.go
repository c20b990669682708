package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Replay answers from a response body saved on disk, run through the same
// validation as a live reply. Useful offline and for demos.
type Replay struct {
	Path string
}

// Submit checks the selection like the live client, then decodes Path.
func (r *Replay) Submit(ctx context.Context, src Source, indices []int) (*Response, error) {
	if _, err := buildRequest(src, indices); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Path == "" {
		return nil, errors.New("replay backend needs a response file")
	}
	b, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	return decodeResponse(200, "application/json", b, "")
}
