package handlers

import (
	"certportal/internal/delivery"
	"certportal/internal/middlewares"

	"github.com/go-chi/chi/v5"
)

// GETCurrentDownload serves the stored PDF of a certificate by id.
func GETCurrentDownload(ctx *middlewares.AppContext) {
	rawID := chi.URLParam(ctx.Request, "certificateId")

	doc, err := deliveryService(ctx).Current(ctx, rawID)
	if err != nil {
		writeDeliveryError(ctx, err, "certificate_id", rawID, "variant", delivery.VariantPlain.String())
		return
	}

	writeDocument(ctx, doc, delivery.VariantPlain)
}

// GETLatestDownload serves the stored PDF of the latest certificate for a subject.
func GETLatestDownload(ctx *middlewares.AppContext) {
	req := certificateRequest(ctx)

	doc, err := deliveryService(ctx).Latest(ctx, req)
	if err != nil {
		writeDeliveryError(ctx, err, append(req.LogAttrs(), "variant", delivery.VariantPlain.String())...)
		return
	}

	writeDocument(ctx, doc, delivery.VariantPlain)
}
