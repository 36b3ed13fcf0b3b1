package storage

import (
	"certportal/internal/models"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (p *DatabaseProvider) InsertCertificateDownload(ctx context.Context, d *models.CertificateDownload) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.DownloadedAt.IsZero() {
		d.DownloadedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO certificate_downloads (id, certificate_id, variant, ip_address, user_agent, browser_name,
		                                   browser_version, os_name, os_version, device_type, downloaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	result, err := p.db.Exec(ctx, query,
		d.ID, d.CertificateID, d.Variant, d.IPAddress, d.UserAgent,
		d.BrowserName, d.BrowserVersion, d.OSName, d.OSVersion, d.DeviceType,
		d.DownloadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert download log: %w", err)
	}
	if result.RowsAffected() != 1 {
		return fmt.Errorf("failed to insert download log: %d rows inserted", result.RowsAffected())
	}

	return nil
}
