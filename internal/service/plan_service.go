package service

import (
	"alcyxob/run-planner/internal/domain"
	"alcyxob/run-planner/internal/planner"
	"alcyxob/run-planner/internal/repository"
	"alcyxob/run-planner/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound       = errors.New("training plan not found")
	ErrPlanAccessDenied   = errors.New("access denied to this training plan")
	ErrPlanGeneration     = errors.New("plan generation failed")
	ErrPlanExportDisabled = errors.New("plan export is not configured")
)

// GenerationFailure carries the pipeline's errors and warnings when a
// generation request is rejected. It wraps ErrPlanGeneration so callers can
// branch with errors.Is and still show the details.
type GenerationFailure struct {
	Errors   []string
	Warnings []domain.ValidationWarning
}

func (f *GenerationFailure) Error() string {
	return fmt.Sprintf("plan generation failed: %v", f.Errors)
}

func (f *GenerationFailure) Unwrap() error {
	return ErrPlanGeneration
}

// --- Service Interface ---
type PlanService interface {
	ValidateConfiguration(ctx context.Context, config domain.PlanConfiguration) domain.ValidationResult
	GeneratePlan(ctx context.Context, ownerID primitive.ObjectID, name string, config domain.PlanConfiguration, seed *int64) (*domain.PlanRecord, []domain.ValidationWarning, error)
	ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PlanRecord, error)
	GetPlan(ctx context.Context, requesterID, planID primitive.ObjectID) (*domain.PlanRecord, error)
	DeletePlan(ctx context.Context, requesterID, planID primitive.ObjectID) error
	RegeneratePlan(ctx context.Context, requesterID, planID primitive.ObjectID, newConfig domain.PlanConfiguration, seed *int64) (*domain.PlanRecord, *planner.ComparisonReport, []domain.ValidationWarning, error)
	ComparePlans(ctx context.Context, requesterID, planAID, planBID primitive.ObjectID) (*planner.ComparisonReport, error)
	ExportPlan(ctx context.Context, requesterID, planID primitive.ObjectID) (downloadURL string, err error)
}

// --- Service Implementation ---

// planService implements the PlanService interface. It is the seam between
// the HTTP layer and the pure generation pipeline: everything stateful
// (persistence, ownership checks, object storage) lives here, while the
// planner package stays side-effect free.
type planService struct {
	planRepo    repository.PlanRepository
	fileStorage storage.FileStorage // nil when export is not configured
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, fileStorage storage.FileStorage) PlanService {
	return &planService{
		planRepo:    planRepo,
		fileStorage: fileStorage,
	}
}

// ValidateConfiguration runs configuration validation without generating or
// persisting anything.
func (s *planService) ValidateConfiguration(ctx context.Context, config domain.PlanConfiguration) domain.ValidationResult {
	return planner.ValidateConfiguration(config)
}

// GeneratePlan runs the generation pipeline and persists the result under
// the owner's account.
func (s *planService) GeneratePlan(ctx context.Context, ownerID primitive.ObjectID, name string, config domain.PlanConfiguration, seed *int64) (*domain.PlanRecord, []domain.ValidationWarning, error) {
	// 1. Validate inputs
	if ownerID == primitive.NilObjectID {
		return nil, nil, errors.New("owner ID is required")
	}
	if name == "" {
		name = fmt.Sprintf("%s plan (%d weeks)", config.RaceDistance, config.ProgramWeeks)
	}

	// 2. Run the pipeline
	result := planner.GeneratePlan(config, &planner.GenerateOptions{Seed: seed})
	if !result.Success || result.Plan == nil {
		return nil, result.Warnings, &GenerationFailure{Errors: result.Errors, Warnings: result.Warnings}
	}

	// 3. Persist the record
	record := &domain.PlanRecord{
		OwnerID: ownerID,
		Name:    name,
		Plan:    *result.Plan,
	}
	recordID, err := s.planRepo.Create(ctx, record)
	if err != nil {
		return nil, result.Warnings, err
	}
	record.ID = recordID

	return record, result.Warnings, nil
}

// ListPlans retrieves all plans owned by the user, newest first.
func (s *planService) ListPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.PlanRecord, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required")
	}
	return s.planRepo.GetByOwnerID(ctx, ownerID)
}

// GetPlan retrieves a single plan, enforcing ownership.
func (s *planService) GetPlan(ctx context.Context, requesterID, planID primitive.ObjectID) (*domain.PlanRecord, error) {
	record, err := s.fetchOwned(ctx, requesterID, planID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeletePlan removes a plan owned by the requester.
func (s *planService) DeletePlan(ctx context.Context, requesterID, planID primitive.ObjectID) error {
	if requesterID == primitive.NilObjectID || planID == primitive.NilObjectID {
		return errors.New("requester ID and plan ID are required")
	}
	err := s.planRepo.Delete(ctx, planID, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// RegeneratePlan rebuilds a stored plan from a new configuration and
// replaces the stored payload. The comparison report describes what changed
// relative to the previous configuration.
func (s *planService) RegeneratePlan(ctx context.Context, requesterID, planID primitive.ObjectID, newConfig domain.PlanConfiguration, seed *int64) (*domain.PlanRecord, *planner.ComparisonReport, []domain.ValidationWarning, error) {
	// 1. Fetch and authorize
	record, err := s.fetchOwned(ctx, requesterID, planID)
	if err != nil {
		return nil, nil, nil, err
	}

	// 2. Regenerate from the new configuration
	result := planner.RegeneratePlan(record.Plan, newConfig, &planner.GenerateOptions{Seed: seed})
	if !result.Success || result.Plan == nil {
		return nil, nil, result.Warnings, &GenerationFailure{Errors: result.Errors, Warnings: result.Warnings}
	}

	// 3. Replace the stored payload
	record.Plan = *result.Plan
	if err := s.planRepo.Update(ctx, record); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, result.Warnings, ErrPlanNotFound
		}
		return nil, nil, result.Warnings, err
	}

	return record, result.Comparison, result.Warnings, nil
}

// ComparePlans diffs the configurations of two stored plans. The requester
// must own both.
func (s *planService) ComparePlans(ctx context.Context, requesterID, planAID, planBID primitive.ObjectID) (*planner.ComparisonReport, error) {
	recordA, err := s.fetchOwned(ctx, requesterID, planAID)
	if err != nil {
		return nil, err
	}
	recordB, err := s.fetchOwned(ctx, requesterID, planBID)
	if err != nil {
		return nil, err
	}

	report := planner.ComparePlans(recordA.Plan, recordB.Plan)
	return &report, nil
}

// ExportPlan serializes a plan to JSON, uploads it to object storage, and
// returns a presigned download URL.
func (s *planService) ExportPlan(ctx context.Context, requesterID, planID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrPlanExportDisabled
	}

	// 1. Fetch and authorize
	record, err := s.fetchOwned(ctx, requesterID, planID)
	if err != nil {
		return "", err
	}

	// 2. Serialize the plan payload
	payload, err := json.MarshalIndent(record.Plan, "", "  ")
	if err != nil {
		return "", err
	}

	// 3. Upload under a fresh object key; exports are immutable snapshots
	objectKey := fmt.Sprintf("exports/%s/%s.json", record.ID.Hex(), uuid.NewString())
	if err := s.fileStorage.UploadObject(ctx, objectKey, "application/json", bytes.NewReader(payload)); err != nil {
		return "", err
	}

	// 4. Hand back a presigned download URL
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
}

// fetchOwned loads a plan record and verifies the requester owns it.
func (s *planService) fetchOwned(ctx context.Context, requesterID, planID primitive.ObjectID) (*domain.PlanRecord, error) {
	if requesterID == primitive.NilObjectID || planID == primitive.NilObjectID {
		return nil, errors.New("requester ID and plan ID are required")
	}
	record, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if record.OwnerID != requesterID {
		return nil, ErrPlanAccessDenied
	}
	return record, nil
}
