package handlers

import (
	"certportal/internal/delivery"
	"certportal/internal/metrics"
	"certportal/internal/middlewares"
	"certportal/internal/models"
	"certportal/internal/utils"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	msgInvalidParameter = "Los parámetros de la solicitud no son válidos."
	msgTypeNotFound     = "No existe un tipo de documento activo para el código solicitado."
	msgNotFound         = "No se encontró un certificado para los datos solicitados."
	msgMissingFile      = "El certificado no tiene un documento publicado."
	msgUpstream         = "No fue posible generar el código QR del certificado."
	msgInternal         = "Ocurrió un error inesperado al procesar el certificado."
)

func deliveryService(ctx *middlewares.AppContext) *delivery.Service {
	return delivery.NewService(ctx.Storage, ctx.Compositor, ctx.Config.Delivery, ctx.Logger)
}

// certificateRequest reads the route parameters shared by the certificate routes.
func certificateRequest(ctx *middlewares.AppContext) delivery.Request {
	r := ctx.Request
	return delivery.Request{
		TypeCode:      chi.URLParam(r, "typeCode"),
		SubjectID:     chi.URLParam(r, "subjectId"),
		ClientID:      chi.URLParam(r, "clientId"),
		SizeCode:      chi.URLParam(r, "sizeCode"),
		CertificateID: chi.URLParam(r, "certificateId"),
		Host:          r.Host,
	}
}

// writeDeliveryError maps a pipeline failure onto the HTML error page.
func writeDeliveryError(ctx *middlewares.AppContext, err error, attrs ...any) {
	status, message := http.StatusInternalServerError, msgInternal

	switch {
	case errors.Is(err, delivery.ErrInvalidParameter):
		status, message = http.StatusBadRequest, msgInvalidParameter
	case errors.Is(err, delivery.ErrTypeNotFound):
		status, message = http.StatusBadRequest, msgTypeNotFound
	case errors.Is(err, delivery.ErrCertificateNotFound):
		status, message = http.StatusBadRequest, msgNotFound
	case errors.Is(err, delivery.ErrMissingSourceFile):
		status, message = http.StatusBadRequest, msgMissingFile
	case errors.Is(err, delivery.ErrUpstreamFetch):
		status, message = http.StatusBadRequest, msgUpstream
	}

	attrs = append(attrs, "error", err, "status", status)
	if status >= http.StatusInternalServerError {
		ctx.Logger.Error("certificate request failed", attrs...)
	} else {
		ctx.Logger.Warn("certificate request rejected", attrs...)
	}

	ctx.WriteErrorPage(status, message)
}

// writeDocument sends a delivered PDF and records the download.
func writeDocument(ctx *middlewares.AppContext, doc *delivery.Document, v delivery.Variant) {
	if doc.Attachment {
		ctx.WritePDFAttachment(doc.Filename, doc.Content)
	} else {
		ctx.WritePDF(doc.Filename, doc.Content)
	}
	metrics.DownloadsTotal.WithLabelValues(v.String()).Inc()
	recordDownload(ctx, doc.Certificate, v)
}

// recordDownload stores an audit row. Failures are logged and never reach the client.
func recordDownload(ctx *middlewares.AppContext, cert *models.Certificate, v delivery.Variant) {
	if !ctx.Config.Delivery.AuditDownloads || cert == nil {
		return
	}

	userAgent := ctx.Request.UserAgent()
	agent := utils.ParseUserAgent(userAgent)

	ip := ctx.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	download := &models.CertificateDownload{
		CertificateID:  cert.ID,
		Variant:        v.String(),
		IPAddress:      ip,
		UserAgent:      userAgent,
		BrowserName:    agent.BrowserName,
		BrowserVersion: agent.BrowserVersion,
		OSName:         agent.OSName,
		OSVersion:      agent.OSVersion,
		DeviceType:     agent.DeviceType,
	}

	if err := ctx.Storage.InsertCertificateDownload(ctx, download); err != nil {
		ctx.Logger.Warn("failed to record certificate download", "certificate_id", cert.ID, "error", err)
	}
}
