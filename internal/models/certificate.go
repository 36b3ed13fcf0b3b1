package models

import "time"

type Certificate struct {
	ID                int64       `json:"id"`
	DocumentTypeID    int64       `json:"document_type_id"`
	SubjectKind       SubjectKind `json:"-"`
	SubjectID         int64       `json:"subject_id"`
	ClientID          int64       `json:"client_id"`
	ValidUntil        time.Time   `json:"valid_until"`
	MeasuredOn        *time.Time  `json:"measured_on,omitempty"`
	ClientCode        *string     `json:"client_code,omitempty"`
	PublishedFilename *string     `json:"published_filename,omitempty"`
	PublishedPDF      []byte      `json:"-"`
}

func (c *Certificate) HasPDF() bool {
	return len(c.PublishedPDF) > 0
}

// CertificateQuery identifies the (type, subject, client) tuple a certificate is issued for.
type CertificateQuery struct {
	DocumentTypeID int64
	Kind           SubjectKind
	SubjectID      int64
	ClientID       int64
}
