package compositor

import (
	"bytes"
	"certportal/internal/metrics"
	"certportal/internal/qr"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const (
	VariantQROnly  = "qr_only"
	VariantAppend  = "append"
	VariantOverlay = "overlay"

	DefaultMargin      = 30.0
	DefaultRasterScale = 4
	minRasterPixels    = 100
)

var disableConfigDir sync.Once

// Result is a composed document. Degraded is set when the QR could not be added and the
// original document is returned unchanged.
type Result struct {
	PDF      []byte
	Pages    int
	Degraded bool
}

type Options struct {
	Margin      float64
	RasterScale int
}

// Compositor builds QR variants of certificate PDFs. It holds no per-request state and is
// safe for concurrent use.
type Compositor struct {
	renderer    qr.Renderer
	fetcher     RasterFetcher
	margin      float64
	rasterScale int
	logger      *slog.Logger
}

// New returns a compositor. A nil renderer disables QR-only and append composition; a nil
// fetcher disables overlay composition.
func New(renderer qr.Renderer, fetcher RasterFetcher, opts Options, logger *slog.Logger) *Compositor {
	disableConfigDir.Do(api.DisableConfigDir)

	if opts.Margin <= 0 {
		opts.Margin = DefaultMargin
	}
	if opts.RasterScale <= 0 {
		opts.RasterScale = DefaultRasterScale
	}

	return &Compositor{
		renderer:    renderer,
		fetcher:     fetcher,
		margin:      opts.Margin,
		rasterScale: opts.RasterScale,
		logger:      logger,
	}
}

// pdfcpu commands write to their configuration, so every call gets its own.
func newConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// QROnly renders a one-page PDF containing only the QR code, with the page sized to the
// raster.
func (c *Compositor) QROnly(ctx context.Context, content string, size qr.SizePreset) (res *Result, err error) {
	defer c.observe(VariantQROnly, time.Now(), &res, &err)

	page, err := c.qrPage(ctx, content, size)
	if err != nil {
		return nil, err
	}
	return &Result{PDF: page, Pages: 1}, nil
}

// Append returns the original pages followed by a QR-only page. When no renderer is
// available the original is returned as a degraded result.
func (c *Compositor) Append(ctx context.Context, original []byte, content string, size qr.SizePreset) (res *Result, err error) {
	defer c.observe(VariantAppend, time.Now(), &res, &err)

	if len(original) == 0 {
		return nil, ErrEmptyDocument
	}

	page, err := c.qrPage(ctx, content, size)
	if errors.Is(err, ErrDependencyMissing) {
		c.logger.Warn("QR renderer unavailable, returning original document", "error", err)
		pages, countErr := pageCount(original)
		if countErr != nil {
			c.logger.Debug("Failed to count pages of original document", "error", countErr)
		}
		return &Result{PDF: original, Pages: pages, Degraded: true}, nil
	}
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	sources := []io.ReadSeeker{bytes.NewReader(original), bytes.NewReader(page)}
	if err := api.MergeRaw(sources, &out, false, newConfig()); err != nil {
		return nil, fmt.Errorf("failed to append QR page: %w", err)
	}

	pages, err := pageCount(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to read merged document: %w", err)
	}

	return &Result{PDF: out.Bytes(), Pages: pages}, nil
}

// Overlay stamps the QR onto the top-right corner of the first page. The raster is fetched
// at a multiple of the target size and scaled down so it stays sharp in print. Other pages
// are left untouched.
func (c *Compositor) Overlay(ctx context.Context, original []byte, content string, size qr.SizePreset, baseURL string) (res *Result, err error) {
	defer c.observe(VariantOverlay, time.Now(), &res, &err)

	if len(original) == 0 {
		return nil, ErrEmptyDocument
	}
	if c.fetcher == nil {
		return nil, fmt.Errorf("%w: no raster fetcher", ErrDependencyMissing)
	}

	dims, err := api.PageDims(bytes.NewReader(original), newConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("failed to read page dimensions: document has no pages")
	}

	raster, err := c.fetcher.Fetch(ctx, RasterRequest{
		BaseURL: baseURL,
		Content: content,
		Pixels:  max(minRasterPixels, size.Pixels*c.rasterScale),
	})
	if err != nil {
		return nil, err
	}

	img, _, err := image.DecodeConfig(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("%w: raster is not an image: %v", ErrUpstreamFetch, err)
	}
	if img.Width <= 0 {
		return nil, fmt.Errorf("%w: raster has no width", ErrUpstreamFetch)
	}

	edge := float64(size.Pixels)
	x := dims[0].Width - edge - c.margin
	y := dims[0].Height - edge - c.margin

	desc := fmt.Sprintf("position:bl, offset:%.2f %.2f, scalefactor:%.4f abs, rotation:0, opacity:1",
		x, y, edge/float64(img.Width))

	wm, err := api.ImageWatermarkForReader(bytes.NewReader(raster), desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare QR stamp: %w", err)
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(original), &out, []string{"1"}, wm, newConfig()); err != nil {
		return nil, fmt.Errorf("failed to stamp QR: %w", err)
	}

	pages, err := pageCount(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to read stamped document: %w", err)
	}

	return &Result{PDF: out.Bytes(), Pages: pages}, nil
}

func (c *Compositor) qrPage(ctx context.Context, content string, size qr.SizePreset) ([]byte, error) {
	if c.renderer == nil {
		return nil, fmt.Errorf("%w: no QR renderer", ErrDependencyMissing)
	}

	raster, err := c.renderer.Render(ctx, content, size.Pixels)
	if err != nil {
		return nil, err
	}

	imp, err := api.Import("pos:full", types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to configure image import: %w", err)
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, []io.Reader{bytes.NewReader(raster)}, imp, newConfig()); err != nil {
		return nil, fmt.Errorf("failed to build QR page: %w", err)
	}

	return out.Bytes(), nil
}

func (c *Compositor) observe(variant string, start time.Time, res **Result, err *error) {
	metrics.CompositionDuration.WithLabelValues(variant).Observe(time.Since(start).Seconds())

	outcome := metrics.OutcomeSuccess
	switch {
	case *err != nil:
		outcome = metrics.OutcomeError
	case *res != nil && (*res).Degraded:
		outcome = metrics.OutcomeDegraded
	}
	metrics.CompositionsTotal.WithLabelValues(variant, outcome).Inc()
}

func pageCount(pdf []byte) (int, error) {
	return api.PageCount(bytes.NewReader(pdf), newConfig())
}
