package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/run-planner/internal/domain"
	"alcyxob/run-planner/internal/repository"
)

// fakePlanRepo is an in-memory repository.PlanRepository.
type fakePlanRepo struct {
	records map[primitive.ObjectID]*domain.PlanRecord
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{records: make(map[primitive.ObjectID]*domain.PlanRecord)}
}

func (r *fakePlanRepo) Create(ctx context.Context, record *domain.PlanRecord) (primitive.ObjectID, error) {
	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	stored := *record
	r.records[record.ID] = &stored
	return record.ID, nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlanRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakePlanRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PlanRecord, error) {
	var out []domain.PlanRecord
	for _, record := range r.records {
		if record.OwnerID == ownerID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) Update(ctx context.Context, record *domain.PlanRecord) error {
	stored, ok := r.records[record.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = record.Name
	stored.Plan = record.Plan
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakePlanRepo) Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error {
	record, ok := r.records[id]
	if !ok || record.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

// fakeStorage records uploads and hands back deterministic URLs.
type fakeStorage struct {
	uploads map[string]string // objectKey -> contentType
	deleted []string
	failPut error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string]string)}
}

func (s *fakeStorage) UploadObject(ctx context.Context, objectKey string, contentType string, body io.Reader) error {
	if s.failPut != nil {
		return s.failPut
	}
	s.uploads[objectKey] = contentType
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey, nil
}

func (s *fakeStorage) DeleteObject(ctx context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func testConfiguration() domain.PlanConfiguration {
	return domain.PlanConfiguration{
		RaceDistance:        domain.Race10K,
		ProgramWeeks:        8,
		TrainingDaysPerWeek: 4,
		RestDays:            []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday},
		LongRunDay:          domain.Sunday,
		DeloadFrequency:     4,
	}
}

func TestPlanService_GeneratePersistsRecord(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo, nil)
	owner := primitive.NewObjectID()
	seed := int64(1)

	record, _, err := svc.GeneratePlan(context.Background(), owner, "spring 10K", testConfiguration(), &seed)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "spring 10K", record.Name)
	assert.Equal(t, owner, record.OwnerID)
	assert.Len(t, record.Plan.Weeks, 8)
	assert.NotEqual(t, primitive.NilObjectID, record.ID)

	stored, err := repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Plan.ID, stored.Plan.ID)
}

func TestPlanService_GenerateDefaultsName(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo(), nil)
	seed := int64(1)

	record, _, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), "", testConfiguration(), &seed)
	require.NoError(t, err)
	assert.Contains(t, record.Name, "10k")
	assert.Contains(t, record.Name, "8 weeks")
}

func TestPlanService_GenerateRejectsInvalidConfiguration(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo, nil)

	config := testConfiguration()
	config.ProgramWeeks = 3

	record, _, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), "bad", config, nil)
	assert.Nil(t, record)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlanGeneration)

	var failure *GenerationFailure
	require.ErrorAs(t, err, &failure)
	assert.NotEmpty(t, failure.Errors)
	assert.Empty(t, repo.records, "nothing persists on a failed generation")
}

func TestPlanService_OwnershipEnforced(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo, nil)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	seed := int64(1)

	record, _, err := svc.GeneratePlan(context.Background(), owner, "mine", testConfiguration(), &seed)
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		_, err := svc.GetPlan(context.Background(), stranger, record.ID)
		assert.ErrorIs(t, err, ErrPlanAccessDenied)

		got, err := svc.GetPlan(context.Background(), owner, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.DeletePlan(context.Background(), stranger, record.ID)
		assert.ErrorIs(t, err, ErrPlanNotFound)

		require.NoError(t, svc.DeletePlan(context.Background(), owner, record.ID))
		_, err = svc.GetPlan(context.Background(), owner, record.ID)
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestPlanService_Regenerate(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo, nil)
	owner := primitive.NewObjectID()
	seed := int64(1)

	record, _, err := svc.GeneratePlan(context.Background(), owner, "evolving", testConfiguration(), &seed)
	require.NoError(t, err)

	newConfig := testConfiguration()
	newConfig.ProgramWeeks = 12

	updated, comparison, _, err := svc.RegeneratePlan(context.Background(), owner, record.ID, newConfig, &seed)
	require.NoError(t, err)
	assert.Len(t, updated.Plan.Weeks, 12)

	require.NotNil(t, comparison)
	require.Len(t, comparison.Changes, 1)
	assert.Equal(t, "programWeeks", comparison.Changes[0].Field)

	stored, err := repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Plan.Weeks, 12, "the stored payload is replaced")
}

func TestPlanService_Compare(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo, nil)
	owner := primitive.NewObjectID()
	seed := int64(1)

	a, _, err := svc.GeneratePlan(context.Background(), owner, "a", testConfiguration(), &seed)
	require.NoError(t, err)

	longer := testConfiguration()
	longer.ProgramWeeks = 16
	b, _, err := svc.GeneratePlan(context.Background(), owner, "b", longer, &seed)
	require.NoError(t, err)

	report, err := svc.ComparePlans(context.Background(), owner, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, report.Changes, 1)
	assert.Equal(t, "programWeeks", report.Changes[0].Field)

	_, err = svc.ComparePlans(context.Background(), primitive.NewObjectID(), a.ID, b.ID)
	assert.ErrorIs(t, err, ErrPlanAccessDenied)
}

func TestPlanService_Export(t *testing.T) {
	repo := newFakePlanRepo()
	store := newFakeStorage()
	svc := NewPlanService(repo, store)
	owner := primitive.NewObjectID()
	seed := int64(1)

	record, _, err := svc.GeneratePlan(context.Background(), owner, "export me", testConfiguration(), &seed)
	require.NoError(t, err)

	url, err := svc.ExportPlan(context.Background(), owner, record.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://storage.example.com/exports/"+record.ID.Hex()+"/"))

	require.Len(t, store.uploads, 1)
	for _, contentType := range store.uploads {
		assert.Equal(t, "application/json", contentType)
	}
}

func TestPlanService_ExportDisabledWithoutStorage(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo, nil)
	owner := primitive.NewObjectID()
	seed := int64(1)

	record, _, err := svc.GeneratePlan(context.Background(), owner, "no export", testConfiguration(), &seed)
	require.NoError(t, err)

	_, err = svc.ExportPlan(context.Background(), owner, record.ID)
	assert.ErrorIs(t, err, ErrPlanExportDisabled)
}

func TestPlanService_ExportUploadFailure(t *testing.T) {
	repo := newFakePlanRepo()
	store := newFakeStorage()
	store.failPut = errors.New("bucket unavailable")
	svc := NewPlanService(repo, store)
	owner := primitive.NewObjectID()
	seed := int64(1)

	record, _, err := svc.GeneratePlan(context.Background(), owner, "doomed", testConfiguration(), &seed)
	require.NoError(t, err)

	_, err = svc.ExportPlan(context.Background(), owner, record.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
}
