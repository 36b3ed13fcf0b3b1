package delivery

import (
	"certportal/internal/compositor"
	"certportal/internal/config"
	"certportal/internal/locator"
	"certportal/internal/models"
	"certportal/internal/qr"
	"certportal/internal/resolver"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
)

// Store is everything the pipeline reads from storage.
type Store interface {
	resolver.Store
	locator.Store
}

// Request carries the raw route segments of a certificate request. Ids are validated by
// the service, not the caller.
type Request struct {
	TypeCode      string
	SubjectID     string
	ClientID      string
	SizeCode      string
	CertificateID string
	Host          string
}

func (r Request) LogAttrs() []any {
	return []any{
		"type_code", r.TypeCode,
		"subject_id", r.SubjectID,
		"client_id", r.ClientID,
		"size", r.SizeCode,
		"certificate_id", r.CertificateID,
	}
}

type Document struct {
	Filename    string
	Content     []byte
	Degraded    bool
	Attachment  bool
	Certificate *models.Certificate
}

// OverlayPage is what the browser needs to composite the QR client side.
type OverlayPage struct {
	PDFURL     string `json:"pdfUrl"`
	QRText     string `json:"qrText"`
	QRSize     string `json:"qrSize"`
	QRPixels   int    `json:"-"`
	QRImageURL string `json:"-"`
	OverlayURL string `json:"-"`
	Filename   string `json:"filename"`
	LogoSrc    string `json:"logoSrc"`
	ScriptURL  string `json:"-"`
}

type Service struct {
	resolver   *resolver.Resolver
	locator    *locator.Locator
	compositor *compositor.Compositor
	policy     qr.BaseURLPolicy
	cfg        config.DeliveryConfig
	logger     *slog.Logger
}

func NewService(store Store, comp *compositor.Compositor, cfg config.DeliveryConfig, logger *slog.Logger) *Service {
	return &Service{
		resolver:   resolver.New(store, logger),
		locator:    locator.New(store, logger),
		compositor: comp,
		policy:     qr.NewBaseURLPolicy(cfg),
		cfg:        cfg,
		logger:     logger,
	}
}

// KindForCode derives the subject kind from a canonical type code.
func (s *Service) KindForCode(code string) models.SubjectKind {
	if slices.Contains(s.cfg.PersonTypeCodes, code) {
		return models.SubjectPerson
	}
	return models.SubjectEquipment
}

// ResolveType resolves a type code and derives the subject kind of its certificates.
func (s *Service) ResolveType(ctx context.Context, code string) (*models.DocumentType, string, models.SubjectKind, error) {
	docType, canonical, err := s.resolver.Resolve(ctx, code)
	if err != nil {
		return nil, canonical, 0, err
	}
	return docType, canonical, s.KindForCode(canonical), nil
}

// BaseURL is the public base URL for a request host.
func (s *Service) BaseURL(host string) string {
	return s.policy.Resolve(host)
}

type target struct {
	docType   *models.DocumentType
	canonical string
	kind      models.SubjectKind
	subjectID int64
	clientID  int64
	size      qr.SizePreset
	cert      *models.Certificate
	baseURL   string
	qrText    string
}

func (s *Service) prepare(ctx context.Context, req Request, withSize bool) (*target, error) {
	if req.TypeCode == "" {
		return nil, fmt.Errorf("%w: document type is required", ErrInvalidParameter)
	}

	subjectID, ok := locator.ParseID(req.SubjectID)
	if !ok {
		return nil, fmt.Errorf("%w: invalid record id %q", ErrInvalidParameter, req.SubjectID)
	}

	clientID, ok := locator.ParseID(req.ClientID)
	if !ok {
		return nil, fmt.Errorf("%w: invalid client id %q", ErrInvalidParameter, req.ClientID)
	}

	t := &target{subjectID: subjectID, clientID: clientID}

	if withSize {
		size, err := qr.LookupSize(req.SizeCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
		t.size = size
	}

	docType, canonical, err := s.resolver.Resolve(ctx, req.TypeCode)
	if err != nil {
		return nil, err
	}
	t.docType, t.canonical = docType, canonical
	t.kind = s.KindForCode(canonical)

	cert, err := s.locator.Locate(ctx, docType.ID, t.kind, subjectID, clientID)
	if err != nil {
		return nil, err
	}
	t.cert = cert

	// Person links point at a certificate; the id from the route wins over the located one.
	certificateID := cert.ID
	if id, ok := locator.ParseID(req.CertificateID); ok {
		certificateID = id
	}

	t.baseURL = s.policy.Resolve(req.Host)
	t.qrText = qr.VerificationURL(t.baseURL, t.kind, canonical, subjectID, clientID, certificateID)

	return t, nil
}

// Compose runs the pipeline for a QR variant and returns the finished PDF.
func (s *Service) Compose(ctx context.Context, req Request, v Variant) (*Document, error) {
	if v != VariantQROnly && v != VariantAppend && v != VariantOverlay {
		return nil, fmt.Errorf("%w: %s is not a composed variant", ErrInvalidParameter, v)
	}

	t, err := s.prepare(ctx, req, true)
	if err != nil {
		return nil, err
	}

	if v != VariantQROnly && !t.cert.HasPDF() {
		return nil, fmt.Errorf("%w: certificate %d", ErrMissingSourceFile, t.cert.ID)
	}

	var res *compositor.Result
	switch v {
	case VariantQROnly:
		res, err = s.compositor.QROnly(ctx, t.qrText, t.size)
	case VariantAppend:
		res, err = s.compositor.Append(ctx, t.cert.PublishedPDF, t.qrText, t.size)
	case VariantOverlay:
		res, err = s.compositor.Overlay(ctx, t.cert.PublishedPDF, t.qrText, t.size, t.baseURL)
	}
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Filename:    Filename(t.cert, v),
		Content:     res.PDF,
		Degraded:    res.Degraded,
		Attachment:  v.Attachment(),
		Certificate: t.cert,
	}

	s.logger.Info("certificate composed",
		"variant", v.String(),
		"certificate_id", t.cert.ID,
		"type_code", t.canonical,
		"pages", res.Pages,
		"degraded", res.Degraded,
		"filename", doc.Filename,
	)

	return doc, nil
}

// OverlayPage resolves the certificate and describes the client-side overlay page.
func (s *Service) OverlayPage(ctx context.Context, req Request) (*OverlayPage, error) {
	t, err := s.prepare(ctx, req, true)
	if err != nil {
		return nil, err
	}

	if !t.cert.HasPDF() {
		return nil, fmt.Errorf("%w: certificate %d", ErrMissingSourceFile, t.cert.ID)
	}

	pixels := strconv.Itoa(t.size.Pixels)
	rasterQuery := url.Values{
		"type":   []string{"QR"},
		"value":  []string{t.qrText},
		"width":  []string{pixels},
		"height": []string{pixels},
	}

	overlayURL := t.baseURL + "/cert/latest/qr/" + url.PathEscape(t.canonical) + "/" +
		strconv.FormatInt(t.subjectID, 10) + "/" + strconv.FormatInt(t.clientID, 10) + "/" +
		url.PathEscape(req.SizeCode)
	if id, ok := locator.ParseID(req.CertificateID); ok {
		overlayURL += "/" + strconv.FormatInt(id, 10)
	}

	return &OverlayPage{
		PDFURL:     t.baseURL + "/cert/current/download/" + strconv.FormatInt(t.cert.ID, 10),
		QRText:     t.qrText,
		QRSize:     strconv.FormatFloat(t.size.Centimeters, 'f', 1, 64) + "cm",
		QRPixels:   t.size.Pixels,
		QRImageURL: t.baseURL + s.cfg.Overlay.RasterPath + "?" + rasterQuery.Encode(),
		OverlayURL: overlayURL + "/overlay",
		Filename:   Filename(t.cert, VariantOverlayJS),
		LogoSrc:    s.cfg.LogoURL,
		ScriptURL:  s.cfg.Overlay.ClientScriptURL,
	}, nil
}

// Latest returns the stored PDF of the latest certificate for a type, subject and client.
func (s *Service) Latest(ctx context.Context, req Request) (*Document, error) {
	t, err := s.prepare(ctx, req, false)
	if err != nil {
		return nil, err
	}
	return plainDocument(t.cert)
}

// Current returns the stored PDF of a certificate by id.
func (s *Service) Current(ctx context.Context, rawID string) (*Document, error) {
	id, ok := locator.ParseID(rawID)
	if !ok {
		return nil, fmt.Errorf("%w: invalid certificate id %q", ErrInvalidParameter, rawID)
	}

	cert, err := s.locator.LocateByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return plainDocument(cert)
}

func plainDocument(cert *models.Certificate) (*Document, error) {
	if !cert.HasPDF() {
		return nil, fmt.Errorf("%w: certificate %d", ErrMissingSourceFile, cert.ID)
	}
	return &Document{
		Filename:    Filename(cert, VariantPlain),
		Content:     cert.PublishedPDF,
		Certificate: cert,
	}, nil
}
