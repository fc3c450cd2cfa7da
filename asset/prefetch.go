package asset

import (
	"context"

	"github.com/hutsulruslan/arplace"
)

// LoadFunc fetches and decodes a template from a URI.
type LoadFunc func(ctx context.Context, uri string) (*Template, error)

// FileLoader is a LoadFunc reading model manifests from local paths.
func FileLoader(_ context.Context, uri string) (*Template, error) {
	return Load(uri)
}

// Prefetch starts loading a template in the background and returns a
// channel that yields it exactly once on success.
//
// On failure the channel never delivers: the error is logged and the
// placement loop simply keeps treating the asset as "not ready", which is
// the contract it is written against. Cancel the context to abandon the
// load; the channel stays silent in that case too.
func Prefetch(ctx context.Context, uri string, load LoadFunc) <-chan *Template {
	out := make(chan *Template, 1)
	go func() {
		tpl, err := load(ctx, uri)
		if err != nil {
			arplace.Logger().Warn("asset: load failed, placement stays disabled",
				"uri", uri, "error", err)
			return
		}
		select {
		case out <- tpl:
		case <-ctx.Done():
		}
	}()
	return out
}
