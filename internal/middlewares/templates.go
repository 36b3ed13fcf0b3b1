package middlewares

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
)

const errorPageTitle = "Error al cargar el certificado"

type errorPageData struct {
	Title   string
	Message string
}

var errorPageTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{ .Title }}</title>
    <style>
        body { font-family: system-ui, -apple-system, "Segoe UI", Roboto, Arial, sans-serif; background: #f6f8fa; color: #1f2937; margin: 0; }
        .card { max-width: 560px; margin: 64px auto; background: #fff; border: 1px solid #e5e7eb; border-radius: 12px; padding: 24px; }
        h1 { font-size: 20px; margin: 0 0 12px 0; color: #b91c1c; }
        p { margin: 0; line-height: 1.5; }
    </style>
</head>
<body>
    <div class="card">
        <h1>{{ .Title }}</h1>
        <p>{{ .Message }}</p>
    </div>
</body>
</html>
`))

// WriteHTML renders tmpl into a buffer before writing anything.
func (ctx *AppContext) WriteHTML(status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		ctx.Logger.Error("failed to render template", "template", tmpl.Name(), "error", err)
		ctx.WriteText(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	header := ctx.Response.Header()
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("Content-Length", strconv.Itoa(buf.Len()))
	ctx.Response.WriteHeader(status)
	if _, err := ctx.Response.Write(buf.Bytes()); err != nil {
		ctx.Logger.Error("failed to write html", "error", err)
	}
}
