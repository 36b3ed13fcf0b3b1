package models

type SubjectListParams struct {
	DocumentTypeID int64
	Kind           SubjectKind
	ClientID       int64
	Search         string
	SearchIn       string
	SortBy         string
	Filter         string
	Page           int
	PageSize       int
}

type SubjectPage struct {
	Subjects   []Subject `json:"subjects"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}
