package storage

import (
	"certportal/internal/models"
	"context"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage.go -package=mocks

// noinspection GoNameStartsWithPackageName
type StorageProvider interface {
	Close()
	Ping(ctx context.Context) error
	RunMigrations(ctx context.Context) error

	GetActiveDocumentType(ctx context.Context, code string) (*models.DocumentType, error)
	ListActiveDocumentTypes(ctx context.Context) ([]models.DocumentType, error)
	ListDocumentTypeSummaries(ctx context.Context, clientID int64, personTypeCodes []string) ([]models.DocumentTypeSummary, error)

	GetLatestCertificate(ctx context.Context, q models.CertificateQuery) (*models.Certificate, error)
	GetCertificateByID(ctx context.Context, id int64) (*models.Certificate, error)
	ListCertificateHistory(ctx context.Context, q models.CertificateQuery) ([]models.Certificate, error)

	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	GetClientByEmail(ctx context.Context, email string) (*models.Client, error)

	GetPerson(ctx context.Context, id int64) (*models.Person, error)
	GetEquipment(ctx context.Context, id int64) (*models.Equipment, error)
	ListSubjects(ctx context.Context, params models.SubjectListParams) (*models.SubjectPage, error)

	InsertCertificateDownload(ctx context.Context, download *models.CertificateDownload) error
}
