package loader

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	proceduralPaperWidth  = 1024
	proceduralPaperHeight = 1536
)

// AssetRequest names the files the scene needs.
type AssetRequest struct {
	ModelPath string
	MeshName  string
	PaperPath string
	// ProceduralPaper generates the paper instead of reading PaperPath.
	ProceduralPaper bool
	PaperSeed       int64
	ShowProgress    bool
}

// Assets is the fully resolved input to the scene. It is never partially
// filled: LoadAssets returns either both or an error.
type Assets struct {
	Geometry *renderer.Geometry
	Paper    *renderer.Texture
}

// LoadAssets decodes the mesh and the paper concurrently. The first failure
// cancels the other load.
func LoadAssets(ctx context.Context, req AssetRequest) (*Assets, error) {
	start := time.Now()
	var bar *progressbar.ProgressBar
	if req.ShowProgress {
		bar = progressbar.Default(2, "loading assets")
	}
	step := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	var (
		geom  *renderer.Geometry
		paper *image.RGBA
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		geom, err = loadCancellable(ctx, func() (*renderer.Geometry, error) {
			return LoadGeometry(req.ModelPath, req.MeshName)
		})
		if err != nil {
			return fmt.Errorf("model: %w", err)
		}
		step()
		return nil
	})
	g.Go(func() error {
		var err error
		paper, err = loadCancellable(ctx, func() (*image.RGBA, error) {
			if req.ProceduralPaper {
				return GeneratePaper(proceduralPaperWidth, proceduralPaperHeight, req.PaperSeed), nil
			}
			return LoadImage(req.PaperPath)
		})
		if err != nil {
			return fmt.Errorf("paper: %w", err)
		}
		step()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Log.Info("Assets loaded", zap.Duration("elapsed", time.Since(start)))
	return &Assets{
		Geometry: geom,
		Paper:    renderer.NewTexture("paper", paper),
	}, nil
}

// loadCancellable runs fn in its own goroutine so a cancelled context
// returns immediately. Decoders take no context, so fn keeps running to
// completion in the background and its result is dropped.
func loadCancellable[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()
	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
