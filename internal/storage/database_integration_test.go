package storage

import (
	"certportal/internal/config"
	"certportal/internal/models"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDatabase starts a PostgreSQL container and applies the embedded migrations.
func setupTestDatabase(t *testing.T) *DatabaseProvider {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("certportal_test"),
		postgres.WithUsername("certportal"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	portNum, err := strconv.Atoi(port.Port())
	require.NoError(t, err)

	cfg := &config.Config{Storage: config.StorageConfig{
		Host:     host,
		Port:     portNum,
		Username: "certportal",
		Password: "test-password",
		Database: "certportal_test",
		SSLMode:  "disable",
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider, err := NewDatabaseProvider(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(provider.Close)

	require.NoError(t, provider.RunMigrations(ctx))
	// second run is a no-op
	require.NoError(t, provider.RunMigrations(ctx))

	return provider
}

func seed(t *testing.T, p *DatabaseProvider, sql string, args ...any) int64 {
	t.Helper()
	var id int64
	require.NoError(t, p.db.QueryRow(context.Background(), sql+" RETURNING id", args...).Scan(&id))
	return id
}

func TestDatabaseProvider_Integration(t *testing.T) {
	p := setupTestDatabase(t)
	ctx := context.Background()

	parentID := seed(t, p, `INSERT INTO clients (name, code, email) VALUES ('Parent', 'P1', 'parent@example.com')`)
	childID := seed(t, p, `INSERT INTO clients (name, code, email, parent_id) VALUES ('Child', 'C1', 'Child@Example.com', $1)`, parentID)

	equipType := seed(t, p, `INSERT INTO document_types (code, title) VALUES ('equiposdemedicion', 'Equipos de medición')`)
	personType := seed(t, p, `INSERT INTO document_types (code, title) VALUES ('personas', 'Personas')`)
	seed(t, p, `INSERT INTO document_types (code, title, active) VALUES ('retired', 'Retired', false)`)

	gaugeID := seed(t, p, `INSERT INTO equipment (serial, equipment_type, brand, model) VALUES ('SN-100', 'Gauge', 'Acme', 'G1')`)
	hoistID := seed(t, p, `INSERT INTO equipment (serial, equipment_type, brand, model, active) VALUES ('SN-200', 'Hoist', 'Bolt', 'H2', false)`)
	personID := seed(t, p, `INSERT INTO persons (name, tax_id) VALUES ('Ana Rojas', '11.111.111-1')`)

	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 latest"))
	seed(t, p, `INSERT INTO certificates (document_type_id, subject_kind, equipment_id, client_id, valid_until)
		VALUES ($1, 'equipment', $2, $3, '2024-01-01')`, equipType, gaugeID, parentID)
	latestID := seed(t, p, `INSERT INTO certificates (document_type_id, subject_kind, equipment_id, client_id, valid_until, client_code, published_pdf)
		VALUES ($1, 'equipment', $2, $3, '2025-06-30', 'CERT-9', $4)`, equipType, gaugeID, parentID, pdf)
	seed(t, p, `INSERT INTO certificates (document_type_id, subject_kind, equipment_id, client_id, valid_until)
		VALUES ($1, 'equipment', $2, $3, '2023-01-01')`, equipType, hoistID, parentID)
	personCertID := seed(t, p, `INSERT INTO certificates (document_type_id, subject_kind, person_id, client_id, valid_until)
		VALUES ($1, 'person', $2, $3, '2025-01-01')`, personType, personID, childID)

	t.Run("document types", func(t *testing.T) {
		dt, err := p.GetActiveDocumentType(ctx, "personas")
		require.NoError(t, err)
		assert.Equal(t, personType, dt.ID)

		_, err = p.GetActiveDocumentType(ctx, "retired")
		assert.ErrorIs(t, err, DocumentTypeNotFoundError)

		types, err := p.ListActiveDocumentTypes(ctx)
		require.NoError(t, err)
		require.Len(t, types, 2)
		assert.Equal(t, "equiposdemedicion", types[0].Code)
		assert.Equal(t, "personas", types[1].Code)

		summaries, err := p.ListDocumentTypeSummaries(ctx, parentID, []string{"personas"})
		require.NoError(t, err)
		counts := map[string]int{}
		for _, s := range summaries {
			counts[s.Code] = s.SubjectCount
		}
		assert.Equal(t, map[string]int{"equiposdemedicion": 2, "personas": 0}, counts)
	})

	t.Run("certificates", func(t *testing.T) {
		cert, err := p.GetLatestCertificate(ctx, models.CertificateQuery{
			DocumentTypeID: equipType, Kind: models.SubjectEquipment, SubjectID: gaugeID, ClientID: parentID,
		})
		require.NoError(t, err)
		assert.Equal(t, latestID, cert.ID)
		assert.Equal(t, []byte("%PDF-1.4 latest"), cert.PublishedPDF)
		require.NotNil(t, cert.ClientCode)
		assert.Equal(t, "CERT-9", *cert.ClientCode)

		_, err = p.GetLatestCertificate(ctx, models.CertificateQuery{
			DocumentTypeID: equipType, Kind: models.SubjectEquipment, SubjectID: gaugeID, ClientID: childID,
		})
		assert.ErrorIs(t, err, CertificateNotFoundError)

		history, err := p.ListCertificateHistory(ctx, models.CertificateQuery{
			DocumentTypeID: equipType, Kind: models.SubjectEquipment, SubjectID: gaugeID, ClientID: parentID,
		})
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, latestID, history[0].ID)
		assert.Nil(t, history[0].PublishedPDF)

		byID, err := p.GetCertificateByID(ctx, personCertID)
		require.NoError(t, err)
		assert.Equal(t, models.SubjectPerson, byID.SubjectKind)
		assert.Equal(t, personID, byID.SubjectID)

		_, err = p.GetCertificateByID(ctx, 999999)
		assert.ErrorIs(t, err, CertificateNotFoundError)
	})

	t.Run("clients", func(t *testing.T) {
		c, err := p.GetClientByEmail(ctx, "child@example.com")
		require.NoError(t, err)
		assert.Equal(t, childID, c.ID)
		assert.Equal(t, parentID, c.AccountID())

		_, err = p.GetClientByID(ctx, 424242)
		assert.ErrorIs(t, err, ClientNotFoundError)
	})

	t.Run("subjects", func(t *testing.T) {
		page, err := p.ListSubjects(ctx, models.SubjectListParams{
			DocumentTypeID: equipType, Kind: models.SubjectEquipment, ClientID: parentID,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 1, page.TotalPages)
		require.Len(t, page.Subjects, 2)
		assert.Equal(t, "SN-100", page.Subjects[0].Name)

		page, err = p.ListSubjects(ctx, models.SubjectListParams{
			DocumentTypeID: equipType, Kind: models.SubjectEquipment, ClientID: parentID, Filter: "inactive",
		})
		require.NoError(t, err)
		require.Len(t, page.Subjects, 1)
		assert.Equal(t, hoistID, page.Subjects[0].ID)

		page, err = p.ListSubjects(ctx, models.SubjectListParams{
			DocumentTypeID: equipType, Kind: models.SubjectEquipment, ClientID: parentID, Search: "bolt",
		})
		require.NoError(t, err)
		require.Len(t, page.Subjects, 1)
		assert.Equal(t, hoistID, page.Subjects[0].ID)

		e, err := p.GetEquipment(ctx, gaugeID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", e.Brand)

		_, err = p.GetPerson(ctx, 999)
		assert.ErrorIs(t, err, SubjectNotFoundError)
	})

	t.Run("download audit", func(t *testing.T) {
		d := &models.CertificateDownload{CertificateID: latestID, Variant: "append", IPAddress: "10.0.0.1"}
		require.NoError(t, p.InsertCertificateDownload(ctx, d))
		assert.NotEmpty(t, d.ID.String())
		assert.False(t, d.DownloadedAt.IsZero())
	})
}
