package handlers

import (
	"certportal/internal/delivery"
	"certportal/internal/locator"
	"certportal/internal/middlewares"
	"certportal/internal/models"
	"certportal/internal/qr"
	"certportal/internal/storage"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type CertificateSummary struct {
	ID          int64   `json:"id"`
	ValidUntil  string  `json:"valid_until"`
	MeasuredOn  *string `json:"measured_on,omitempty"`
	Filename    string  `json:"filename"`
	DownloadURL string  `json:"download_url"`
	Expired     bool    `json:"expired"`
}

type QRLink struct {
	Size         string  `json:"size"`
	Centimeters  float64 `json:"centimeters"`
	QROnlyURL    string  `json:"qr_only_url"`
	AppendURL    string  `json:"append_url"`
	OverlayURL   string  `json:"overlay_url"`
	OverlayJSURL string  `json:"overlay_js_url"`
}

type SubjectDetailResponse struct {
	DocumentType models.DocumentType  `json:"document_type"`
	Kind         string               `json:"kind"`
	Person       *models.Person       `json:"person,omitempty"`
	Equipment    *models.Equipment    `json:"equipment,omitempty"`
	Latest       *CertificateSummary  `json:"latest,omitempty"`
	History      []CertificateSummary `json:"history"`
	LatestURL    string               `json:"latest_url"`
	QRLinks      []QRLink             `json:"qr_links"`
}

// portalClientID is the account whose certificates the portal shows: the signed-in
// user's account, or the client_id query parameter when authentication is disabled.
func portalClientID(ctx *middlewares.AppContext) (int64, bool) {
	if user, ok := ctx.CurrentUser(); ok {
		return user.AccountID, user.AccountID > 0
	}
	if ctx.AuthEnabled() {
		return 0, false
	}
	return locator.ParseID(ctx.Request.URL.Query().Get("client_id"))
}

// writePortalError maps pipeline errors onto JSON responses.
func writePortalError(ctx *middlewares.AppContext, err error, attrs ...any) {
	switch {
	case errors.Is(err, delivery.ErrInvalidParameter):
		ctx.SetJSONError(http.StatusBadRequest, "invalid parameter")
	case errors.Is(err, delivery.ErrTypeNotFound):
		ctx.SetJSONError(http.StatusNotFound, "document type not found")
	case errors.Is(err, storage.SubjectNotFoundError):
		ctx.SetJSONError(http.StatusNotFound, "subject not found")
	default:
		ctx.Logger.Error("portal request failed", append(attrs, "error", err)...)
		ctx.SetJSONError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	ctx.Logger.Debug("portal request rejected", append(attrs, "error", err)...)
}

// GETDocumentTypes lists active document types with the number of subjects the client
// holds certificates for.
func GETDocumentTypes(ctx *middlewares.AppContext) {
	clientID, ok := portalClientID(ctx)
	if !ok {
		ctx.SetJSONError(http.StatusBadRequest, "client is required")
		return
	}

	summaries, err := ctx.Storage.ListDocumentTypeSummaries(ctx, clientID, ctx.Config.Delivery.PersonTypeCodes)
	if err != nil {
		writePortalError(ctx, err, "client_id", clientID)
		return
	}

	ctx.WriteJSON(http.StatusOK, map[string]any{
		"client_id": clientID,
		"types":     summaries,
	})
}

// GETSubjects pages through the subjects holding certificates of a type for the client.
func GETSubjects(ctx *middlewares.AppContext) {
	clientID, ok := portalClientID(ctx)
	if !ok {
		ctx.SetJSONError(http.StatusBadRequest, "client is required")
		return
	}

	typeCode := chi.URLParam(ctx.Request, "typeCode")
	docType, _, kind, err := deliveryService(ctx).ResolveType(ctx, typeCode)
	if err != nil {
		writePortalError(ctx, err, "type_code", typeCode, "client_id", clientID)
		return
	}

	query := ctx.Request.URL.Query()
	page := 1
	if raw := query.Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			ctx.SetJSONError(http.StatusBadRequest, "invalid page")
			return
		}
	}

	result, err := ctx.Storage.ListSubjects(ctx, models.SubjectListParams{
		DocumentTypeID: docType.ID,
		Kind:           kind,
		ClientID:       clientID,
		Search:         query.Get("search"),
		SearchIn:       query.Get("search_in"),
		SortBy:         query.Get("sort"),
		Filter:         query.Get("filter"),
		Page:           page,
		PageSize:       storage.DefaultSubjectPageSize,
	})
	if err != nil {
		writePortalError(ctx, err, "type_code", typeCode, "client_id", clientID)
		return
	}

	ctx.WriteJSON(http.StatusOK, result)
}

// GETSubjectDetail returns a subject with its certificate history and delivery links.
func GETSubjectDetail(ctx *middlewares.AppContext) {
	clientID, ok := portalClientID(ctx)
	if !ok {
		ctx.SetJSONError(http.StatusBadRequest, "client is required")
		return
	}

	typeCode := chi.URLParam(ctx.Request, "typeCode")
	subjectID, ok := locator.ParseID(chi.URLParam(ctx.Request, "subjectId"))
	if !ok {
		ctx.SetJSONError(http.StatusBadRequest, "invalid subject id")
		return
	}

	svc := deliveryService(ctx)
	docType, canonical, kind, err := svc.ResolveType(ctx, typeCode)
	if err != nil {
		writePortalError(ctx, err, "type_code", typeCode, "subject_id", subjectID)
		return
	}

	response := SubjectDetailResponse{
		DocumentType: *docType,
		Kind:         kind.String(),
		History:      []CertificateSummary{},
	}

	switch kind {
	case models.SubjectPerson:
		response.Person, err = ctx.Storage.GetPerson(ctx, subjectID)
	default:
		response.Equipment, err = ctx.Storage.GetEquipment(ctx, subjectID)
	}
	if err != nil {
		writePortalError(ctx, err, "type_code", canonical, "subject_id", subjectID)
		return
	}

	history, err := ctx.Storage.ListCertificateHistory(ctx, models.CertificateQuery{
		DocumentTypeID: docType.ID,
		Kind:           kind,
		SubjectID:      subjectID,
		ClientID:       clientID,
	})
	if err != nil {
		writePortalError(ctx, err, "type_code", canonical, "subject_id", subjectID)
		return
	}

	base := svc.BaseURL(ctx.Request.Host)
	now := time.Now()
	for i := range history {
		response.History = append(response.History, summarize(base, &history[i], now))
	}
	if len(response.History) > 0 {
		latest := response.History[0]
		response.Latest = &latest
	}

	routeTail := url.PathEscape(canonical) + "/" + strconv.FormatInt(subjectID, 10) + "/" + strconv.FormatInt(clientID, 10)
	response.LatestURL = base + "/cert/latest/" + routeTail

	for _, size := range qr.SizePresets {
		prefix := base + "/cert/latest/qr/" + routeTail + "/" + size.Code
		if kind == models.SubjectPerson && response.Latest != nil {
			prefix += "/" + strconv.FormatInt(response.Latest.ID, 10)
		}
		response.QRLinks = append(response.QRLinks, QRLink{
			Size:         size.Code,
			Centimeters:  size.Centimeters,
			QROnlyURL:    prefix,
			AppendURL:    prefix + "/append",
			OverlayURL:   prefix + "/overlay",
			OverlayJSURL: prefix + "/overlay_js",
		})
	}

	ctx.WriteJSON(http.StatusOK, response)
}

func summarize(base string, cert *models.Certificate, now time.Time) CertificateSummary {
	summary := CertificateSummary{
		ID:          cert.ID,
		ValidUntil:  cert.ValidUntil.Format(time.DateOnly),
		Filename:    delivery.Filename(cert, delivery.VariantPlain),
		DownloadURL: base + "/cert/current/download/" + strconv.FormatInt(cert.ID, 10),
		Expired:     cert.ValidUntil.Before(now.Truncate(24 * time.Hour)),
	}
	if cert.MeasuredOn != nil {
		measured := cert.MeasuredOn.Format(time.DateOnly)
		summary.MeasuredOn = &measured
	}
	return summary
}
