package storage

import (
	"certportal/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (p *DatabaseProvider) GetActiveDocumentType(ctx context.Context, code string) (*models.DocumentType, error) {
	query := `
		SELECT id, code, title, active
		FROM document_types
		WHERE code = $1 AND active
		ORDER BY id
		LIMIT 1
	`

	var dt models.DocumentType
	err := p.db.QueryRow(ctx, query, code).Scan(&dt.ID, &dt.Code, &dt.Title, &dt.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, DocumentTypeNotFoundError
		}
		return nil, fmt.Errorf("failed to get document type %q: %w", code, err)
	}

	return &dt, nil
}

// ListActiveDocumentTypes returns every active type in ascending code order.
func (p *DatabaseProvider) ListActiveDocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	query := `
		SELECT id, code, title, active
		FROM document_types
		WHERE active
		ORDER BY code ASC, id ASC
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query document types: %w", err)
	}
	defer rows.Close()

	var types []models.DocumentType
	for rows.Next() {
		var dt models.DocumentType
		if err := rows.Scan(&dt.ID, &dt.Code, &dt.Title, &dt.Active); err != nil {
			return nil, fmt.Errorf("failed to scan document type: %w", err)
		}
		types = append(types, dt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document types: %w", err)
	}

	return types, nil
}

// ListDocumentTypeSummaries counts, per active type, the distinct subjects the client holds
// certificates for. Types whose code is in personTypeCodes count persons, the rest count
// equipment.
func (p *DatabaseProvider) ListDocumentTypeSummaries(ctx context.Context, clientID int64, personTypeCodes []string) ([]models.DocumentTypeSummary, error) {
	query := `
		SELECT dt.id, dt.code, dt.title, dt.active,
		       COUNT(DISTINCT CASE WHEN dt.code = ANY($2) THEN c.person_id ELSE c.equipment_id END)
		FROM document_types dt
		LEFT JOIN certificates c ON c.document_type_id = dt.id AND c.client_id = $1
		WHERE dt.active
		GROUP BY dt.id, dt.code, dt.title, dt.active
		ORDER BY dt.title ASC, dt.code ASC
	`

	if personTypeCodes == nil {
		personTypeCodes = []string{}
	}

	rows, err := p.db.Query(ctx, query, clientID, personTypeCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to query document type summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.DocumentTypeSummary
	for rows.Next() {
		var s models.DocumentTypeSummary
		if err := rows.Scan(&s.ID, &s.Code, &s.Title, &s.Active, &s.SubjectCount); err != nil {
			return nil, fmt.Errorf("failed to scan document type summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document type summaries: %w", err)
	}

	return summaries, nil
}
