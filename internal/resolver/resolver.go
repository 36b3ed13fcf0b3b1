package resolver

import (
	"certportal/internal/metrics"
	"certportal/internal/models"
	"certportal/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var ErrTypeNotFound = errors.New("document type not found")

// Store is the slice of storage.StorageProvider the resolver reads from.
type Store interface {
	GetActiveDocumentType(ctx context.Context, code string) (*models.DocumentType, error)
	ListActiveDocumentTypes(ctx context.Context) ([]models.DocumentType, error)
}

type alias struct {
	from string
	to   []string
}

// Codes printed on older QR codes, mapped to the active codes that replaced them. Targets
// are tried in order.
var aliases = []alias{
	{from: "elementosdeizaje", to: []string{"equiposdemedicion", "mediciondeequipo"}},
}

type Resolver struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve maps a type code to an active document type and the canonical code it was found
// under. It tries an exact match, then the alias table, then fuzzy matching over every
// active code. When nothing matches the error wraps ErrTypeNotFound and the canonical code
// is the input.
func (r *Resolver) Resolve(ctx context.Context, code string) (*models.DocumentType, string, error) {
	if code == "" {
		metrics.ResolverMatches.WithLabelValues(metrics.MatchNotFound).Inc()
		return nil, code, fmt.Errorf("%w: empty code", ErrTypeNotFound)
	}

	dt, err := r.lookup(ctx, code)
	if err != nil {
		return nil, code, err
	}
	if dt != nil {
		r.logger.Debug("document type matched exactly", "code", code)
		metrics.ResolverMatches.WithLabelValues(metrics.MatchExact).Inc()
		return dt, code, nil
	}

	for _, a := range aliases {
		if a.from != code {
			continue
		}
		for _, target := range a.to {
			dt, err := r.lookup(ctx, target)
			if err != nil {
				return nil, code, err
			}
			if dt != nil {
				r.logger.Info("document type matched by alias", "code", code, "canonical", target)
				metrics.ResolverMatches.WithLabelValues(metrics.MatchAlias).Inc()
				return dt, target, nil
			}
			r.logger.Warn("alias target is not active", "code", code, "target", target)
		}
	}

	candidates, err := r.store.ListActiveDocumentTypes(ctx)
	if err != nil {
		return nil, code, fmt.Errorf("failed to list document types: %w", err)
	}

	var (
		best      *models.DocumentType
		bestScore float64
	)
	for i := range candidates {
		score := Similarity(code, candidates[i].Code)
		r.logger.Debug("document type similarity", "code", code, "candidate", candidates[i].Code, "score", score)
		if score > bestScore && score >= MatchThreshold {
			best = &candidates[i]
			bestScore = score
		}
	}

	if best != nil {
		r.logger.Info("document type matched by similarity", "code", code, "canonical", best.Code, "score", bestScore)
		metrics.ResolverMatches.WithLabelValues(metrics.MatchFuzzy).Inc()
		return best, best.Code, nil
	}

	r.logger.Warn("no similar document type found", "code", code)
	metrics.ResolverMatches.WithLabelValues(metrics.MatchNotFound).Inc()
	return nil, code, fmt.Errorf("%w: %q", ErrTypeNotFound, code)
}

// lookup returns nil without error when no active type has the code.
func (r *Resolver) lookup(ctx context.Context, code string) (*models.DocumentType, error) {
	dt, err := r.store.GetActiveDocumentType(ctx, code)
	if err != nil {
		if errors.Is(err, storage.DocumentTypeNotFoundError) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up document type %q: %w", code, err)
	}
	return dt, nil
}
