// internal/planner/regenerate.go
package planner

import (
	"alcyxob/run-planner/internal/domain"
)

// RegenerationStrategy names the regeneration depth the change analysis
// called for.
type RegenerationStrategy string

const (
	// StrategyFull rebuilds the plan from scratch.
	StrategyFull RegenerationStrategy = "full"
	// StrategyAdjust is the lighter-weight path for small changes. The
	// analysis can select it, but execution still performs a full rebuild:
	// generation is cheap and deterministic, so the shallow path is purely
	// an optimization opportunity, not a distinct behavior.
	StrategyAdjust RegenerationStrategy = "adjust"
)

// mediumChangesForFull is how many medium-impact changes force the full
// strategy even without a high-impact one.
const mediumChangesForFull = 3

// RegenerationResult combines a fresh generation outcome with the
// comparison between the old and new configurations.
type RegenerationResult struct {
	Success      bool                       `json:"success"`
	Plan         *domain.TrainingPlan       `json:"plan,omitempty"`
	Comparison   *ComparisonReport          `json:"comparison,omitempty"`
	Errors       []string                   `json:"errors,omitempty"`
	Warnings     []domain.ValidationWarning `json:"warnings,omitempty"`
	StrategyUsed RegenerationStrategy       `json:"strategyUsed"`
}

// ChooseStrategy classifies the configuration diff and picks a regeneration
// depth: any high-impact change, or three or more medium-impact ones, means
// a full rebuild.
func ChooseStrategy(changes []ConfigChange) RegenerationStrategy {
	medium := 0
	for _, c := range changes {
		switch c.Impact {
		case ImpactHigh:
			return StrategyFull
		case ImpactMedium:
			medium++
		}
	}
	if medium >= mediumChangesForFull {
		return StrategyFull
	}
	return StrategyAdjust
}

// RegeneratePlan produces a new, independent plan from the new
// configuration, along with a report of what changed relative to the
// existing plan. The existing plan is never modified. The selected strategy
// is reported; both strategies currently execute as a full generation.
func RegeneratePlan(existing domain.TrainingPlan, newConfig domain.PlanConfiguration, opts *GenerateOptions) RegenerationResult {
	changes := DiffConfigurations(existing.Configuration, newConfig)
	strategy := ChooseStrategy(changes)

	generated := GeneratePlan(newConfig, opts)
	result := RegenerationResult{
		Success:      generated.Success,
		Plan:         generated.Plan,
		Errors:       generated.Errors,
		Warnings:     generated.Warnings,
		StrategyUsed: strategy,
	}

	if generated.Plan != nil {
		report := ComparePlans(existing, *generated.Plan)
		result.Comparison = &report
	}
	return result
}
