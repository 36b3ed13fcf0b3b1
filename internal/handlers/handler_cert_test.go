package handlers

import (
	"certportal/internal/compositor"
	"certportal/internal/models"
	"certportal/internal/qr"
	"certportal/internal/storage"
	"certportal/internal/testutil"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var gruas = &models.DocumentType{ID: 2, Code: "gruas", Title: "Grúas", Active: true}

func strPtr(s string) *string { return &s }

// newCertContext prepares a request routed to a certificate handler with a working compositor.
func newCertContext(t *testing.T, url string, params map[string]string) *testutil.TestContext {
	t.Helper()
	tc := testutil.NewTestContextWithURL(t, "GET", url).WithURLParams(params)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tc.AppContext.Compositor = compositor.New(qr.NewEncoder(), compositor.RendererFetcher{Renderer: qr.NewEncoder()}, compositor.Options{}, logger)
	return tc
}

func qrParams(size string) map[string]string {
	return map[string]string{"typeCode": "gruas", "subjectId": "7", "clientId": "3", "sizeCode": size}
}

func TestGETCertQROnly(t *testing.T) {
	tc := newCertContext(t, "/cert/latest/qr/gruas/7/3/S", qrParams("S"))
	defer tc.Finish()

	tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
	tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, gomock.Any()).
		Return(&models.Certificate{ID: 11, PublishedFilename: strPtr("G-11.pdf")}, nil)

	tc.CallHandler(GETCertQROnly)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/pdf")
	assert.Equal(t, `inline; filename=G-11-QR-ONLY.pdf`, tc.Response.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(tc.Response.Body.String(), "%PDF"))
}

func TestGETCertAppend(t *testing.T) {
	tc := newCertContext(t, "/cert/latest/qr/gruas/7/3/M/append", qrParams("M"))
	defer tc.Finish()

	original := testutil.SamplePDF(t, 3)
	tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
	tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, gomock.Any()).
		Return(&models.Certificate{ID: 11, PublishedPDF: original}, nil)

	tc.CallHandler(GETCertAppend)

	tc.AssertStatus(t, http.StatusOK)
	assert.Equal(t, 4, testutil.PageCount(t, tc.Response.Body.Bytes()))
	assert.Equal(t, `attachment; filename=CERTIFICADO_QR_SIN_CODIGO.pdf`, tc.Response.Header().Get("Content-Disposition"))
}

func TestGETCertOverlay_RecordsDownload(t *testing.T) {
	tc := newCertContext(t, "/cert/latest/qr/gruas/7/3/S/overlay", qrParams("S"))
	tc.AppContext.Config.Delivery.AuditDownloads = true
	tc.WithHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	defer tc.Finish()

	tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
	tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, gomock.Any()).
		Return(&models.Certificate{ID: 11, PublishedPDF: testutil.SamplePDF(t, 2)}, nil)

	var recorded *models.CertificateDownload
	tc.MockStorage.EXPECT().InsertCertificateDownload(tc.AppContext, gomock.Any()).
		DoAndReturn(func(_ any, d *models.CertificateDownload) error {
			recorded = d
			return nil
		})

	tc.CallHandler(GETCertOverlay)

	tc.AssertStatus(t, http.StatusOK)
	assert.Equal(t, 2, testutil.PageCount(t, tc.Response.Body.Bytes()))
	assert.Equal(t, `attachment; filename=CERTIFICADO_QR_OVERLAY.pdf`, tc.Response.Header().Get("Content-Disposition"))

	require.NotNil(t, recorded)
	assert.Equal(t, int64(11), recorded.CertificateID)
	assert.Equal(t, "overlay", recorded.Variant)
	assert.Equal(t, "192.0.2.1", recorded.IPAddress)
	assert.Equal(t, "Chrome", recorded.BrowserName)
	assert.Equal(t, "Windows", recorded.OSName)
}

func TestGETCertOverlay_AuditFailureDoesNotFailDownload(t *testing.T) {
	tc := newCertContext(t, "/cert/latest/qr/gruas/7/3/S/overlay", qrParams("S"))
	tc.AppContext.Config.Delivery.AuditDownloads = true
	defer tc.Finish()

	tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
	tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, gomock.Any()).
		Return(&models.Certificate{ID: 11, PublishedPDF: testutil.SamplePDF(t, 1)}, nil)
	tc.MockStorage.EXPECT().InsertCertificateDownload(tc.AppContext, gomock.Any()).Return(errors.New("insert failed"))

	tc.CallHandler(GETCertOverlay)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertLogContains(t, slog.LevelWarn, "failed to record certificate download")
}

func TestGETCert_ErrorPages(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		setup   func(tc *testutil.TestContext)
		status  int
		message string
	}{
		{
			name:    "non numeric subject",
			params:  map[string]string{"typeCode": "gruas", "subjectId": "abc", "clientId": "3", "sizeCode": "S"},
			status:  http.StatusBadRequest,
			message: msgInvalidParameter,
		},
		{
			name:    "unknown size",
			params:  qrParams("XXL"),
			status:  http.StatusBadRequest,
			message: msgInvalidParameter,
		},
		{
			name:   "unknown type",
			params: map[string]string{"typeCode": "zzz", "subjectId": "7", "clientId": "3", "sizeCode": "S"},
			setup: func(tc *testutil.TestContext) {
				tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "zzz").Return(nil, storage.DocumentTypeNotFoundError)
				tc.MockStorage.EXPECT().ListActiveDocumentTypes(tc.AppContext).Return([]models.DocumentType{*gruas}, nil)
			},
			status:  http.StatusBadRequest,
			message: msgTypeNotFound,
		},
		{
			name:   "no certificate",
			params: qrParams("S"),
			setup: func(tc *testutil.TestContext) {
				tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
				tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, gomock.Any()).Return(nil, storage.CertificateNotFoundError)
				tc.MockStorage.EXPECT().GetClientByID(tc.AppContext, int64(3)).Return(&models.Client{ID: 3}, nil)
			},
			status:  http.StatusBadRequest,
			message: msgNotFound,
		},
		{
			name:   "no stored document",
			params: qrParams("S"),
			setup: func(tc *testutil.TestContext) {
				tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
				tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, gomock.Any()).Return(&models.Certificate{ID: 1}, nil)
			},
			status:  http.StatusBadRequest,
			message: msgMissingFile,
		},
		{
			name:   "storage failure",
			params: qrParams("S"),
			setup: func(tc *testutil.TestContext) {
				tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(nil, errors.New("connection reset"))
			},
			status:  http.StatusInternalServerError,
			message: msgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newCertContext(t, "/cert/latest/qr/x", tt.params)
			defer tc.Finish()

			if tt.setup != nil {
				tt.setup(tc)
			}

			tc.CallHandler(GETCertAppend)

			tc.AssertStatus(t, tt.status)
			tc.AssertContentType(t, "text/html; charset=utf-8")
			tc.AssertBodyContains(t, "Error al cargar el certificado")
			tc.AssertBodyContains(t, tt.message)
		})
	}
}

func TestGETCertOverlayJS(t *testing.T) {
	params := qrParams("S")
	params["certificateId"] = "11"
	tc := newCertContext(t, "/cert/latest/qr/gruas/7/3/S/11/overlay_js", params)
	defer tc.Finish()

	tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
	tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, gomock.Any()).
		Return(&models.Certificate{ID: 11, PublishedPDF: []byte("%PDF-1.4"), PublishedFilename: strPtr("G-11.pdf")}, nil)

	tc.CallHandler(GETCertOverlayJS)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "text/html; charset=utf-8")
	tc.AssertBodyContains(t, `<script type="application/json" id="qr-overlay-config">`)
	tc.AssertBodyContains(t, `"pdfUrl":"https://certs.example.com/cert/current/download/11"`)
	tc.AssertBodyContains(t, `"qrSize":"3.5cm"`)
	tc.AssertBodyContains(t, `"filename":"G-11-QR-OVERLAY-JS.pdf"`)
	tc.AssertBodyContains(t, `/assets/js/qr_overlay.js`)
}

func TestGETCurrentDownload(t *testing.T) {
	tc := newCertContext(t, "/cert/current/download/8", map[string]string{"certificateId": "8"})
	defer tc.Finish()

	tc.MockStorage.EXPECT().GetCertificateByID(tc.AppContext, int64(8)).
		Return(&models.Certificate{ID: 8, PublishedPDF: []byte("%PDF-1.4 stored"), ClientCode: strPtr("ACME")}, nil)

	tc.CallHandler(GETCurrentDownload)

	tc.AssertStatus(t, http.StatusOK)
	assert.Equal(t, "%PDF-1.4 stored", tc.Response.Body.String())
	assert.Equal(t, `inline; filename=ACME.pdf`, tc.Response.Header().Get("Content-Disposition"))
}

func TestGETCurrentDownload_NotFound(t *testing.T) {
	tc := newCertContext(t, "/cert/current/download/8", map[string]string{"certificateId": "8"})
	defer tc.Finish()

	tc.MockStorage.EXPECT().GetCertificateByID(tc.AppContext, int64(8)).Return(nil, storage.CertificateNotFoundError)

	tc.CallHandler(GETCurrentDownload)

	tc.AssertStatus(t, http.StatusBadRequest)
	tc.AssertLogContains(t, slog.LevelWarn, "certificate request rejected")
}

func TestGETLatestDownload(t *testing.T) {
	tc := newCertContext(t, "/cert/latest/gruas/7/3", map[string]string{"typeCode": "gruas", "subjectId": "7", "clientId": "3"})
	defer tc.Finish()

	tc.MockStorage.EXPECT().GetActiveDocumentType(tc.AppContext, "gruas").Return(gruas, nil)
	tc.MockStorage.EXPECT().GetLatestCertificate(tc.AppContext, models.CertificateQuery{
		DocumentTypeID: 2, Kind: models.SubjectEquipment, SubjectID: 7, ClientID: 3,
	}).Return(&models.Certificate{ID: 5, PublishedPDF: []byte("%PDF-1.4")}, nil)

	tc.CallHandler(GETLatestDownload)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/pdf")
	assert.Contains(t, tc.Response.Header().Get("Content-Disposition"), "CERTIFICADO_SIN_CODIGO.pdf")
}
