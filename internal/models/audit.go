package models

import (
	"time"

	"github.com/google/uuid"
)

type CertificateDownload struct {
	ID             uuid.UUID `json:"id"`
	CertificateID  int64     `json:"certificate_id"`
	Variant        string    `json:"variant"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	BrowserName    string    `json:"browser_name"`
	BrowserVersion string    `json:"browser_version"`
	OSName         string    `json:"os_name"`
	OSVersion      string    `json:"os_version"`
	DeviceType     string    `json:"device_type"`
	DownloadedAt   time.Time `json:"downloaded_at"`
}
