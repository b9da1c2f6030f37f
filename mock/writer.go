package mock

import (
	"context"

	"github.com/crawlhog/crawlhog"
)

var _ crawlhog.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of crawlhog.ResultWriter.
type ResultWriter struct {
	PersistFn func(ctx context.Context, pages map[string]*crawlhog.Page, outputDir string) (*crawlhog.Manifest, error)
}

func (w *ResultWriter) Persist(ctx context.Context, pages map[string]*crawlhog.Page, outputDir string) (*crawlhog.Manifest, error) {
	return w.PersistFn(ctx, pages, outputDir)
}
