package storage

import (
	"errors"
)

const DefaultSubjectPageSize = 20

var (
	DocumentTypeNotFoundError = errors.New("document type not found")
	CertificateNotFoundError  = errors.New("certificate not found")
	ClientNotFoundError       = errors.New("client not found")
	SubjectNotFoundError      = errors.New("subject not found")
)
