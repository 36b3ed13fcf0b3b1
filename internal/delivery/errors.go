package delivery

import (
	"certportal/internal/compositor"
	"certportal/internal/locator"
	"certportal/internal/resolver"
	"errors"
)

var (
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrMissingSourceFile   = errors.New("certificate has no published document")
	ErrTypeNotFound        = resolver.ErrTypeNotFound
	ErrCertificateNotFound = locator.ErrCertificateNotFound
	ErrDependencyMissing   = compositor.ErrDependencyMissing
	ErrUpstreamFetch       = compositor.ErrUpstreamFetch
)
