package locator

import (
	"certportal/internal/models"
	"certportal/internal/storage"
	"certportal/internal/testutil"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetLatestCertificate(ctx context.Context, q models.CertificateQuery) (*models.Certificate, error) {
	args := m.Called(ctx, q)
	cert, _ := args.Get(0).(*models.Certificate)
	return cert, args.Error(1)
}

func (m *mockStore) GetCertificateByID(ctx context.Context, id int64) (*models.Certificate, error) {
	args := m.Called(ctx, id)
	cert, _ := args.Get(0).(*models.Certificate)
	return cert, args.Error(1)
}

func (m *mockStore) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func int64Ptr(v int64) *int64 { return &v }

func TestParseID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{raw: "42", want: 42, wantOK: true},
		{raw: "007", want: 7, wantOK: true},
		{raw: "", wantOK: false},
		{raw: "False", wantOK: false},
		{raw: "abc", wantOK: false},
		{raw: "-5", wantOK: false},
		{raw: "+5", wantOK: false},
		{raw: "0", wantOK: false},
		{raw: "12a", wantOK: false},
		{raw: "٣", wantOK: false},
		{raw: "99999999999999999999", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseID(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocate_ReturnsLatestForClient(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()
	q := models.CertificateQuery{DocumentTypeID: 1, Kind: models.SubjectEquipment, SubjectID: 9, ClientID: 3}
	latest := &models.Certificate{ID: 77, ClientID: 3, ValidUntil: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)}

	store.On("GetLatestCertificate", ctx, q).Return(latest, nil).Once()

	l := New(store, slog.New(testutil.NewTestLogHandler()))
	cert, err := l.Locate(ctx, 1, models.SubjectEquipment, 9, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(77), cert.ID)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "GetClientByID", mock.Anything, mock.Anything)
}

func TestLocate_FallsBackToParent(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()
	childQuery := models.CertificateQuery{DocumentTypeID: 1, Kind: models.SubjectPerson, SubjectID: 9, ClientID: 3}
	parentQuery := childQuery
	parentQuery.ClientID = 2

	store.On("GetLatestCertificate", ctx, childQuery).Return(nil, storage.CertificateNotFoundError).Once()
	store.On("GetClientByID", ctx, int64(3)).Return(&models.Client{ID: 3, ParentID: int64Ptr(2)}, nil).Once()
	store.On("GetLatestCertificate", ctx, parentQuery).Return(&models.Certificate{ID: 55, ClientID: 2}, nil).Once()

	logs := testutil.NewTestLogHandler()
	l := New(store, slog.New(logs))
	cert, err := l.Locate(ctx, 1, models.SubjectPerson, 9, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(55), cert.ID)
	assert.True(t, logs.ContainsMessage(slog.LevelInfo, "certificate found on parent client"))
	store.AssertExpectations(t)
}

func TestLocate_FallbackIsOneLevel(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()
	childQuery := models.CertificateQuery{DocumentTypeID: 1, Kind: models.SubjectPerson, SubjectID: 9, ClientID: 3}
	parentQuery := childQuery
	parentQuery.ClientID = 2

	store.On("GetLatestCertificate", ctx, childQuery).Return(nil, storage.CertificateNotFoundError).Once()
	store.On("GetClientByID", ctx, int64(3)).Return(&models.Client{ID: 3, ParentID: int64Ptr(2)}, nil).Once()
	store.On("GetLatestCertificate", ctx, parentQuery).Return(nil, storage.CertificateNotFoundError).Once()

	l := New(store, slog.New(testutil.NewTestLogHandler()))
	_, err := l.Locate(ctx, 1, models.SubjectPerson, 9, 3)

	assert.ErrorIs(t, err, ErrCertificateNotFound)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "GetClientByID", 1)
}

func TestLocate_NoParent(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()

	store.On("GetLatestCertificate", ctx, mock.Anything).Return(nil, storage.CertificateNotFoundError).Once()
	store.On("GetClientByID", ctx, int64(3)).Return(&models.Client{ID: 3}, nil).Once()

	l := New(store, slog.New(testutil.NewTestLogHandler()))
	_, err := l.Locate(ctx, 1, models.SubjectEquipment, 9, 3)

	assert.ErrorIs(t, err, ErrCertificateNotFound)
	store.AssertExpectations(t)
}

func TestLocate_AbsentIDsNeverReachStorage(t *testing.T) {
	store := &mockStore{}
	l := New(store, slog.New(testutil.NewTestLogHandler()))

	_, err := l.Locate(context.Background(), 1, models.SubjectEquipment, 0, 3)
	assert.ErrorIs(t, err, ErrCertificateNotFound)

	_, err = l.Locate(context.Background(), 1, models.SubjectEquipment, 9, 0)
	assert.ErrorIs(t, err, ErrCertificateNotFound)

	store.AssertNotCalled(t, "GetLatestCertificate", mock.Anything, mock.Anything)
}

func TestLocate_StorageFailureIsNotNotFound(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()

	store.On("GetLatestCertificate", ctx, mock.Anything).Return(nil, errors.New("pool closed")).Once()

	l := New(store, slog.New(testutil.NewTestLogHandler()))
	_, err := l.Locate(ctx, 1, models.SubjectEquipment, 9, 3)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCertificateNotFound)
}

func TestLocateByID(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()

	store.On("GetCertificateByID", ctx, int64(10)).Return(&models.Certificate{ID: 10}, nil).Once()
	store.On("GetCertificateByID", ctx, int64(11)).Return(nil, storage.CertificateNotFoundError).Once()

	l := New(store, slog.New(testutil.NewTestLogHandler()))

	cert, err := l.LocateByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), cert.ID)

	_, err = l.LocateByID(ctx, 11)
	assert.ErrorIs(t, err, ErrCertificateNotFound)

	store.AssertExpectations(t)
}
