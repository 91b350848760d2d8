package raster

import (
	"context"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/matt-g-everett/animtx/motion"
	"github.com/matt-g-everett/animtx/shape"
)

// Exporter writes every frame of an animation as a PNG file.
type Exporter struct {
	registry *shape.Registry
	width    int
	height   int
	workers  int
}

// NewExporter creates an Exporter rendering width by height images with
// the given number of workers.
func NewExporter(registry *shape.Registry, width, height, workers int) *Exporter {
	e := new(Exporter)
	e.registry = registry
	e.width = width
	e.height = height
	e.workers = workers
	if e.workers < 1 {
		e.workers = 1
	}
	return e
}

// FrameCount returns the number of frames from time zero to the last form
// of m.
func FrameCount(m *motion.Model) int {
	if m.Len() == 0 {
		return 0
	}
	return int(math.Floor(m.Timeline().End()/m.Period())) + 1
}

// FrameName returns the file name of frame i.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.png", i)
}

// Export renders state into dir and returns the number of frames written.
// Each worker rebuilds its own model so frames render independently.
func (e *Exporter) Export(ctx context.Context, state motion.State, dir string) (int, error) {
	model, err := motion.FromState(e.registry, state)
	if err != nil {
		return 0, err
	}
	count := FrameCount(model)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	log.Infof("Exporting %d frames to %s with %d workers", count, dir, e.workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < e.workers; w++ {
		w := w
		g.Go(func() error {
			m, err := motion.FromState(e.registry, state)
			if err != nil {
				return err
			}
			m.Select(-1)
			c := NewCanvas(e.width, e.height)
			for i := w; i < count; i += e.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := e.renderFrame(c, m, i, filepath.Join(dir, FrameName(i))); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return count, nil
}

func (e *Exporter) renderFrame(c *Canvas, m *motion.Model, i int, path string) error {
	t := float64(i) * m.Period()
	m.SeekAll(t)
	for _, mut := range m.Mutations() {
		mut.Visible = mut.Start() <= t
	}
	RenderModel(c, m)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
