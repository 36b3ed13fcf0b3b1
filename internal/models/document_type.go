package models

type DocumentType struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// DocumentTypeSummary is an active document type with the number of subjects a client
// holds certificates for.
type DocumentTypeSummary struct {
	DocumentType
	SubjectCount int `json:"subject_count"`
}
