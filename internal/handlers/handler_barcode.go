package handlers

import (
	"certportal/internal/middlewares"
	"certportal/internal/qr"
	"net/http"
	"strconv"
	"strings"
)

const maxBarcodePixels = 4096

// GETBarcode renders a PNG QR code. It backs the remote raster fetcher and the QR links
// of the overlay page.
func GETBarcode(ctx *middlewares.AppContext) {
	query := ctx.Request.URL.Query()

	if kind := query.Get("type"); kind != "" && !strings.EqualFold(kind, "QR") {
		ctx.WriteText(http.StatusBadRequest, "unsupported barcode type")
		return
	}

	value := query.Get("value")
	if value == "" {
		ctx.WriteText(http.StatusBadRequest, "value is required")
		return
	}

	width, err := strconv.Atoi(query.Get("width"))
	if err != nil || width <= 0 || width > maxBarcodePixels {
		ctx.WriteText(http.StatusBadRequest, "invalid width")
		return
	}

	if raw := query.Get("height"); raw != "" {
		height, err := strconv.Atoi(raw)
		if err != nil || height != width {
			ctx.WriteText(http.StatusBadRequest, "height must equal width")
			return
		}
	}

	png, err := qr.NewEncoder().Render(ctx, value, width)
	if err != nil {
		ctx.Logger.Error("failed to render barcode", "error", err, "width", width)
		ctx.WriteText(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	ctx.Response.Header().Set("Cache-Control", "public, max-age=86400")
	ctx.WriteImage("image/png", png)
}
