package locator

import (
	"certportal/internal/metrics"
	"certportal/internal/models"
	"certportal/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
)

var ErrCertificateNotFound = errors.New("certificate not found")

// Store is the slice of storage.StorageProvider the locator reads from.
type Store interface {
	GetLatestCertificate(ctx context.Context, q models.CertificateQuery) (*models.Certificate, error)
	GetCertificateByID(ctx context.Context, id int64) (*models.Certificate, error)
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
}

type Locator struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Locator {
	return &Locator{store: store, logger: logger}
}

// ParseID reads an identifier from a URL segment. Only strings of ASCII digits naming a
// positive int64 are ids; anything else, including "False" and "", is absent.
func ParseID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Locate returns the certificate with the latest validity date for the type, subject and
// client. When the client has none and belongs to a parent account, the parent's
// certificates are searched instead. Ties on validity go to the highest id.
func (l *Locator) Locate(ctx context.Context, typeID int64, kind models.SubjectKind, subjectID, clientID int64) (*models.Certificate, error) {
	if typeID <= 0 || subjectID <= 0 || clientID <= 0 {
		return nil, fmt.Errorf("%w: incomplete lookup", ErrCertificateNotFound)
	}

	q := models.CertificateQuery{DocumentTypeID: typeID, Kind: kind, SubjectID: subjectID, ClientID: clientID}

	cert, err := l.latest(ctx, q)
	if err != nil || cert != nil {
		return cert, err
	}

	client, err := l.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, storage.ClientNotFoundError) {
			return nil, fmt.Errorf("%w: client %d does not exist", ErrCertificateNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to load client %d: %w", clientID, err)
	}

	if client.ParentID == nil {
		return nil, fmt.Errorf("%w: type=%d %s=%d client=%d", ErrCertificateNotFound, typeID, kind, subjectID, clientID)
	}

	q.ClientID = *client.ParentID
	cert, err = l.latest(ctx, q)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, fmt.Errorf("%w: type=%d %s=%d client=%d parent=%d", ErrCertificateNotFound, typeID, kind, subjectID, clientID, q.ClientID)
	}

	l.logger.Info("certificate found on parent client",
		"certificate_id", cert.ID,
		"client_id", clientID,
		"parent_id", q.ClientID,
	)
	metrics.LocatorFallbacks.Inc()

	return cert, nil
}

// LocateByID loads a certificate directly by id.
func (l *Locator) LocateByID(ctx context.Context, id int64) (*models.Certificate, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid id", ErrCertificateNotFound)
	}

	cert, err := l.store.GetCertificateByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.CertificateNotFoundError) {
			return nil, fmt.Errorf("%w: id=%d", ErrCertificateNotFound, id)
		}
		return nil, fmt.Errorf("failed to load certificate %d: %w", id, err)
	}
	return cert, nil
}

func (l *Locator) latest(ctx context.Context, q models.CertificateQuery) (*models.Certificate, error) {
	cert, err := l.store.GetLatestCertificate(ctx, q)
	if err != nil {
		if errors.Is(err, storage.CertificateNotFoundError) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up certificate: %w", err)
	}
	return cert, nil
}
