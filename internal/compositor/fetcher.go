package compositor

import (
	"certportal/internal/metrics"
	"certportal/internal/qr"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const maxRasterBytes = 8 << 20

// RasterRequest asks for a square QR raster encoding Content. BaseURL is the public base
// URL of the request being served.
type RasterRequest struct {
	BaseURL string
	Content string
	Pixels  int
}

type RasterFetcher interface {
	Fetch(ctx context.Context, req RasterRequest) ([]byte, error)
}

// HTTPFetcher downloads rasters from the barcode endpoint of BaseURL.
type HTTPFetcher struct {
	client *http.Client
	path   string
}

func NewHTTPFetcher(timeout time.Duration, path string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		path:   path,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, req RasterRequest) (raster []byte, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
		}
		metrics.RasterFetchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	size := strconv.Itoa(req.Pixels)
	query := url.Values{
		"type":   []string{"QR"},
		"value":  []string{req.Content},
		"width":  []string{size},
		"height": []string{size},
	}
	target := req.BaseURL + f.path + "?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstreamFetch, f.path, resp.StatusCode)
	}

	raster, err = io.ReadAll(io.LimitReader(resp.Body, maxRasterBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUpstreamFetch, err)
	}

	return raster, nil
}

// RendererFetcher serves rasters from a local renderer instead of the network.
type RendererFetcher struct {
	Renderer qr.Renderer
}

func (f RendererFetcher) Fetch(ctx context.Context, req RasterRequest) ([]byte, error) {
	if f.Renderer == nil {
		return nil, fmt.Errorf("%w: no QR renderer", ErrDependencyMissing)
	}
	return f.Renderer.Render(ctx, req.Content, req.Pixels)
}
