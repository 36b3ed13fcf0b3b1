package qr

import (
	"certportal/internal/config"
	"certportal/internal/models"
	"strconv"
	"strings"
)

// BaseURLPolicy picks the public base URL encoded into verification links.
type BaseURLPolicy struct {
	SiteURL       string
	ProductionURL string
	StagingURL    string
	StagingHost   string
	StagingMarker string
}

func NewBaseURLPolicy(cfg config.DeliveryConfig) BaseURLPolicy {
	return BaseURLPolicy{
		SiteURL:       strings.TrimRight(cfg.SiteURL, "/"),
		ProductionURL: strings.TrimRight(cfg.ProductionURL, "/"),
		StagingURL:    strings.TrimRight(cfg.StagingURL, "/"),
		StagingHost:   cfg.StagingHost,
		StagingMarker: cfg.StagingMarker,
	}
}

// Resolve returns the staging URL when the request reached the staging host, or when the
// site is configured as production but the host carries the staging marker. Otherwise it
// returns the configured site URL.
func (p BaseURLPolicy) Resolve(requestHost string) string {
	if p.StagingURL == "" {
		return p.SiteURL
	}

	if p.StagingHost != "" && strings.Contains(requestHost, p.StagingHost) {
		return p.StagingURL
	}

	if p.ProductionURL != "" && p.SiteURL == p.ProductionURL &&
		p.StagingMarker != "" && strings.Contains(requestHost, p.StagingMarker) {
		return p.StagingURL
	}

	return p.SiteURL
}

// VerificationURL is the link a printed QR code points at. Person certificates link to the
// exact certificate, equipment certificates to whatever is latest for the subject.
func VerificationURL(base string, kind models.SubjectKind, typeCode string, subjectID, clientID, certificateID int64) string {
	switch kind {
	case models.SubjectPerson:
		return base + "/certificate/current/download/" + strconv.FormatInt(certificateID, 10)
	default:
		return base + "/certificate/latest/" + typeCode + "/" +
			strconv.FormatInt(subjectID, 10) + "/" + strconv.FormatInt(clientID, 10)
	}
}
