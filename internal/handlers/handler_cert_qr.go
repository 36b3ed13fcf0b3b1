package handlers

import (
	"certportal/internal/delivery"
	"certportal/internal/middlewares"
	"encoding/json"
	"html/template"
	"net/http"
)

func GETCertQROnly(ctx *middlewares.AppContext) {
	composeCertificate(ctx, delivery.VariantQROnly)
}

func GETCertAppend(ctx *middlewares.AppContext) {
	composeCertificate(ctx, delivery.VariantAppend)
}

func GETCertOverlay(ctx *middlewares.AppContext) {
	composeCertificate(ctx, delivery.VariantOverlay)
}

func composeCertificate(ctx *middlewares.AppContext, v delivery.Variant) {
	req := certificateRequest(ctx)

	doc, err := deliveryService(ctx).Compose(ctx, req, v)
	if err != nil {
		writeDeliveryError(ctx, err, append(req.LogAttrs(), "variant", v.String())...)
		return
	}

	if doc.Degraded {
		ctx.Response.Header().Set("X-Certificate-Degraded", "true")
	}

	writeDocument(ctx, doc, v)
}

type overlayPageData struct {
	Title     string
	Config    template.JS
	PDFURL    string
	QRURL     string
	ServerURL string
	LogoSrc   string
	QRSize    string
	ScriptURL string
}

var overlayPageTemplate = template.Must(template.New("overlay").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{ .Title }}</title>
    <style>
        body { font-family: system-ui, -apple-system, "Segoe UI", Roboto, Arial, sans-serif; margin: 0; background: #f6f8fa; }
        header { display: flex; align-items: center; gap: 16px; padding: 12px 24px; background: #fff; border-bottom: 1px solid #e5e7eb; }
        header img { height: 36px; }
        main { padding: 24px; }
        #qr-overlay-viewer { min-height: 80vh; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; }
        .links a { margin-right: 16px; }
    </style>
</head>
<body>
    <header>
        {{ if .LogoSrc }}<img src="{{ .LogoSrc }}" alt="logo">{{ end }}
        <div class="links">
            <a href="{{ .PDFURL }}">Documento original</a>
            <a href="{{ .QRURL }}">Código QR ({{ .QRSize }})</a>
            <a href="{{ .ServerURL }}">Versión generada en servidor</a>
        </div>
    </header>
    <main>
        <div id="qr-overlay-viewer"></div>
    </main>
    <script type="application/json" id="qr-overlay-config">{{ .Config }}</script>
    <script src="{{ .ScriptURL }}" defer></script>
</body>
</html>
`))

// GETCertOverlayJS serves the page that composites the QR onto the PDF in the browser.
func GETCertOverlayJS(ctx *middlewares.AppContext) {
	req := certificateRequest(ctx)

	page, err := deliveryService(ctx).OverlayPage(ctx, req)
	if err != nil {
		writeDeliveryError(ctx, err, append(req.LogAttrs(), "variant", delivery.VariantOverlayJS.String())...)
		return
	}

	payload, err := json.Marshal(page)
	if err != nil {
		writeDeliveryError(ctx, err, req.LogAttrs()...)
		return
	}

	ctx.WriteHTML(http.StatusOK, overlayPageTemplate, overlayPageData{
		Title:     page.Filename,
		Config:    template.JS(payload),
		PDFURL:    page.PDFURL,
		QRURL:     page.QRImageURL,
		ServerURL: page.OverlayURL,
		LogoSrc:   page.LogoSrc,
		QRSize:    page.QRSize,
		ScriptURL: page.ScriptURL,
	})
}
