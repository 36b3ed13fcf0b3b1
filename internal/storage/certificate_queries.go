package storage

import (
	"certportal/internal/models"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

const certificateColumns = `
	id, document_type_id, subject_kind, COALESCE(person_id, equipment_id), client_id,
	valid_until, measured_on, client_code, published_filename, published_pdf
`

// subjectColumn maps a kind to the certificates column holding its id.
func subjectColumn(kind models.SubjectKind) (string, error) {
	switch kind {
	case models.SubjectPerson:
		return "person_id", nil
	case models.SubjectEquipment:
		return "equipment_id", nil
	default:
		return "", fmt.Errorf("unsupported subject kind %s", kind)
	}
}

func buildLatestCertificateQuery(q models.CertificateQuery) (string, []any, error) {
	column, err := subjectColumn(q.Kind)
	if err != nil {
		return "", nil, err
	}

	query := `SELECT ` + certificateColumns + `
		FROM certificates
		WHERE document_type_id = $1 AND ` + column + ` = $2 AND client_id = $3
		ORDER BY valid_until DESC, id DESC
		LIMIT 1`

	return query, []any{q.DocumentTypeID, q.SubjectID, q.ClientID}, nil
}

func (p *DatabaseProvider) GetLatestCertificate(ctx context.Context, q models.CertificateQuery) (*models.Certificate, error) {
	query, args, err := buildLatestCertificateQuery(q)
	if err != nil {
		return nil, err
	}

	cert, err := scanCertificate(p.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, CertificateNotFoundError
		}
		return nil, fmt.Errorf("failed to get latest certificate: %w", err)
	}

	return cert, nil
}

func (p *DatabaseProvider) GetCertificateByID(ctx context.Context, id int64) (*models.Certificate, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`

	cert, err := scanCertificate(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, CertificateNotFoundError
		}
		return nil, fmt.Errorf("failed to get certificate %d: %w", id, err)
	}

	return cert, nil
}

// ListCertificateHistory returns every certificate for the tuple, newest validity first.
// Document bodies are not loaded.
func (p *DatabaseProvider) ListCertificateHistory(ctx context.Context, q models.CertificateQuery) ([]models.Certificate, error) {
	column, err := subjectColumn(q.Kind)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, document_type_id, subject_kind, COALESCE(person_id, equipment_id), client_id,
		       valid_until, measured_on, client_code, published_filename, NULL::text
		FROM certificates
		WHERE document_type_id = $1 AND ` + column + ` = $2 AND client_id = $3
		ORDER BY valid_until DESC, id DESC
	`

	rows, err := p.db.Query(ctx, query, q.DocumentTypeID, q.SubjectID, q.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificate history: %w", err)
	}
	defer rows.Close()

	var certs []models.Certificate
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certs = append(certs, *cert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate certificates: %w", err)
	}

	return certs, nil
}

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	var (
		c    models.Certificate
		kind string
		pdf  *string
	)

	err := row.Scan(
		&c.ID,
		&c.DocumentTypeID,
		&kind,
		&c.SubjectID,
		&c.ClientID,
		&c.ValidUntil,
		&c.MeasuredOn,
		&c.ClientCode,
		&c.PublishedFilename,
		&pdf,
	)
	if err != nil {
		return nil, err
	}

	if c.SubjectKind, err = models.ParseSubjectKind(kind); err != nil {
		return nil, err
	}

	if pdf != nil {
		if c.PublishedPDF, err = decodeDocument(*pdf); err != nil {
			return nil, fmt.Errorf("certificate %d: %w", c.ID, err)
		}
	}

	return &c, nil
}

// decodeDocument turns the base64 text stored at rest back into PDF bytes. Line breaks
// inside the encoded text are tolerated.
func decodeDocument(encoded string) ([]byte, error) {
	encoded = strings.Join(strings.Fields(encoded), "")
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}

	return data, nil
}
