package api

import (
	"alcyxob/run-planner/internal/domain"
	"alcyxob/run-planner/internal/planner"
	"alcyxob/run-planner/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	Name          string                   `json:"name"`
	Configuration domain.PlanConfiguration `json:"configuration" binding:"required"`
	Seed          *int64                   `json:"seed,omitempty"`
}

type ValidateConfigurationRequest struct {
	Configuration domain.PlanConfiguration `json:"configuration" binding:"required"`
}

type RegeneratePlanRequest struct {
	Configuration domain.PlanConfiguration `json:"configuration" binding:"required"`
	Seed          *int64                   `json:"seed,omitempty"`
}

type ComparePlansRequest struct {
	PlanAID string `json:"planAId" binding:"required"`
	PlanBID string `json:"planBId" binding:"required"`
}

// PlanResponse is the stored-plan DTO. The generated plan payload is
// returned as-is; its types already carry JSON tags.
type PlanResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	OwnerID   string              `json:"ownerId"`
	Plan      domain.TrainingPlan `json:"plan"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// PlanSummaryResponse is the list-view DTO: plan metadata without the full
// week-by-week payload.
type PlanSummaryResponse struct {
	ID            string                   `json:"id"`
	Name          string                   `json:"name"`
	Configuration domain.PlanConfiguration `json:"configuration"`
	Summary       domain.PlanSummary       `json:"summary"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

type GeneratePlanResponse struct {
	Plan     PlanResponse               `json:"plan"`
	Warnings []domain.ValidationWarning `json:"warnings,omitempty"`
}

type RegeneratePlanResponse struct {
	Plan       PlanResponse               `json:"plan"`
	Comparison *planner.ComparisonReport  `json:"comparison,omitempty"`
	Warnings   []domain.ValidationWarning `json:"warnings,omitempty"`
}

type ExportPlanResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   int    `json:"expiresInSeconds"`
}

// --- Handler Methods ---

// ValidateConfiguration checks a configuration without generating a plan.
// POST /plans/validate
func (h *PlanHandler) ValidateConfiguration(c *gin.Context) {
	var req ValidateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result := h.planService.ValidateConfiguration(c.Request.Context(), req.Configuration)
	c.JSON(http.StatusOK, result)
}

// GeneratePlan runs the pipeline and stores the result for the caller.
// POST /plans
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, warnings, err := h.planService.GeneratePlan(c.Request.Context(), ownerID, req.Name, req.Configuration, req.Seed)
	if err != nil {
		var failure *service.GenerationFailure
		if errors.As(err, &failure) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"errors":   failure.Errors,
				"warnings": failure.Warnings,
			})
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	c.JSON(http.StatusCreated, GeneratePlanResponse{
		Plan:     mapPlanToResponse(record),
		Warnings: warnings,
	})
}

// ListPlans returns the caller's stored plans, newest first.
// GET /plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	records, err := h.planService.ListPlans(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}

	response := make([]PlanSummaryResponse, 0, len(records))
	for i := range records {
		response = append(response, mapPlanToSummaryResponse(&records[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetPlan returns a single stored plan with its full payload.
// GET /plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	record, err := h.planService.GetPlan(c.Request.Context(), ownerID, planID)
	if err != nil {
		abortWithPlanError(c, err, "Failed to fetch plan")
		return
	}
	c.JSON(http.StatusOK, mapPlanToResponse(record))
}

// DeletePlan removes a stored plan.
// DELETE /plans/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), ownerID, planID); err != nil {
		abortWithPlanError(c, err, "Failed to delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// RegeneratePlan rebuilds a stored plan from a new configuration.
// POST /plans/:id/regenerate
func (h *PlanHandler) RegeneratePlan(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req RegeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, comparison, warnings, err := h.planService.RegeneratePlan(c.Request.Context(), ownerID, planID, req.Configuration, req.Seed)
	if err != nil {
		var failure *service.GenerationFailure
		if errors.As(err, &failure) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"errors":   failure.Errors,
				"warnings": failure.Warnings,
			})
			return
		}
		abortWithPlanError(c, err, "Failed to regenerate plan")
		return
	}

	c.JSON(http.StatusOK, RegeneratePlanResponse{
		Plan:       mapPlanToResponse(record),
		Comparison: comparison,
		Warnings:   warnings,
	})
}

// ComparePlans diffs the configurations of two stored plans.
// POST /plans/compare
func (h *PlanHandler) ComparePlans(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}

	var req ComparePlansRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	planAID, err := primitive.ObjectIDFromHex(req.PlanAID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planAId format")
		return
	}
	planBID, err := primitive.ObjectIDFromHex(req.PlanBID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid planBId format")
		return
	}

	report, err := h.planService.ComparePlans(c.Request.Context(), ownerID, planAID, planBID)
	if err != nil {
		abortWithPlanError(c, err, "Failed to compare plans")
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportPlan uploads a JSON snapshot of a plan and returns a download URL.
// POST /plans/:id/export
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	ownerID, ok := requesterID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	url, err := h.planService.ExportPlan(c.Request.Context(), ownerID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanExportDisabled) {
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		abortWithPlanError(c, err, "Failed to export plan")
		return
	}

	c.JSON(http.StatusOK, ExportPlanResponse{
		DownloadURL: url,
		ExpiresIn:   int((15 * time.Minute).Seconds()),
	})
}

// --- Helpers ---

// requesterID pulls the authenticated user's ObjectID out of the context set
// by AuthMiddleware. Aborts the request itself on failure.
func requesterID(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication context missing")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid user ID in authentication context")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathObjectID parses an ObjectID path parameter, aborting on bad input.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", name))
		return primitive.NilObjectID, false
	}
	return id, true
}

// abortWithPlanError maps plan service errors to HTTP statuses.
func abortWithPlanError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

func mapPlanToResponse(record *domain.PlanRecord) PlanResponse {
	return PlanResponse{
		ID:        record.ID.Hex(),
		Name:      record.Name,
		OwnerID:   record.OwnerID.Hex(),
		Plan:      record.Plan,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func mapPlanToSummaryResponse(record *domain.PlanRecord) PlanSummaryResponse {
	return PlanSummaryResponse{
		ID:            record.ID.Hex(),
		Name:          record.Name,
		Configuration: record.Plan.Configuration,
		Summary:       record.Plan.Summary,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
