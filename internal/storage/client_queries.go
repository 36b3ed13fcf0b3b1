package storage

import (
	"certportal/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (p *DatabaseProvider) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT id, name, code, email, parent_id FROM clients WHERE id = $1`

	var c models.Client
	err := p.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Code, &c.Email, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ClientNotFoundError
		}
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}

	return &c, nil
}

// GetClientByEmail matches case-insensitively; the lowest id wins when several clients
// share an address.
func (p *DatabaseProvider) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `
		SELECT id, name, code, email, parent_id
		FROM clients
		WHERE lower(email) = lower($1)
		ORDER BY id
		LIMIT 1
	`

	var c models.Client
	err := p.db.QueryRow(ctx, query, email).Scan(&c.ID, &c.Name, &c.Code, &c.Email, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ClientNotFoundError
		}
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}

	return &c, nil
}
