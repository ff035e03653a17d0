// internal/planner/generator.go
package planner

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"alcyxob/run-planner/internal/domain"
)

// Whole-plan validation thresholds. The increase ceiling is looser than the
// progressor's because scheduled distances re-round per workout.
const (
	planIncreaseCeiling = 0.12
	maxQualityShare     = 0.25
)

// GenerateOptions tune a single generation call. The zero value requests a
// full generation with time-seeded randomness.
type GenerateOptions struct {
	// ValidateOnly runs configuration validation and returns without
	// building a plan.
	ValidateOnly bool
	// SkipDeload leaves deload weeks unreduced in the final plan.
	SkipDeload bool
	// Seed fixes the random source for the deload quality-skip draw,
	// making generation fully deterministic. Ignored when Rand is set.
	Seed *int64
	// Rand supplies the random source directly. Takes precedence over Seed.
	Rand *rand.Rand
}

func (o GenerateOptions) randSource() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	if o.Seed != nil {
		return rand.New(rand.NewSource(*o.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// GenerationResult is the outcome of a generation call. Success implies a
// non-nil Plan and no errors; warnings from every stage ride along either
// way.
type GenerationResult struct {
	Success  bool                       `json:"success"`
	Plan     *domain.TrainingPlan       `json:"plan,omitempty"`
	Errors   []string                   `json:"errors,omitempty"`
	Warnings []domain.ValidationWarning `json:"warnings,omitempty"`
}

func failedResult(errors []string, warnings []domain.ValidationWarning) GenerationResult {
	return GenerationResult{Errors: errors, Warnings: warnings}
}

// GeneratePlan runs the full pipeline: validate the configuration, periodize
// the program, compute weekly volumes, distribute and schedule every week,
// superimpose deload reductions, assemble the plan, and validate the whole.
// Any stage reporting a blocking error halts generation with that stage's
// errors and no plan; warnings accumulate across stages and are returned
// alongside a successful plan. An unexpected panic inside a stage is
// converted to a single generic error rather than propagated.
func GeneratePlan(config domain.PlanConfiguration, opts *GenerateOptions) (result GenerationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failedResult([]string{fmt.Sprintf("internal error during plan generation: %v", r)}, nil)
		}
	}()

	options := GenerateOptions{}
	if opts != nil {
		options = *opts
	}

	var warnings []domain.ValidationWarning

	// Stage 1: configuration validation (fail fast).
	validation := ValidateConfiguration(config)
	warnings = append(warnings, validation.Warnings...)
	if !validation.IsValid {
		return failedResult(validation.Errors, warnings)
	}
	if options.ValidateOnly {
		return GenerationResult{Success: true, Warnings: warnings}
	}

	// Stage 2: phase periodization, once for the whole program.
	periodization, err := Periodize(config.ProgramWeeks, config.RaceDistance)
	if err != nil {
		return failedResult([]string{err.Error()}, warnings)
	}

	// Stage 3: the full weekly volume sequence, once.
	volumes := ComputeWeeklyVolumes(config)
	progressionCheck := ValidateProgression(volumes)
	warnings = append(warnings, progressionCheck.Warnings...)
	if !progressionCheck.IsValid {
		return failedResult(progressionCheck.Errors, warnings)
	}

	// Stage 4: distribute and schedule each week. Individual-week warnings
	// accumulate; an infeasible week aborts the whole generation, since a
	// plan missing a week is not a usable artifact.
	constraints := ConstraintsFromConfig(config)
	weeks := make([]domain.WeekPlan, 0, config.ProgramWeeks)
	for week := 1; week <= config.ProgramWeeks; week++ {
		phase, err := PhaseForWeek(periodization, week)
		if err != nil {
			return failedResult([]string{err.Error()}, warnings)
		}

		volume := volumes[week-1]
		distribution := DistributeWeek(config, week, volume.AdjustedDistance, phase.Phase)
		distributionCheck := ValidateDistribution(distribution)
		warnings = append(warnings, distributionCheck.Warnings...)
		if !distributionCheck.IsValid {
			return failedResult(distributionCheck.Errors, warnings)
		}

		scheduled, err := ScheduleWeek(week, constraints, distribution, phase.Phase)
		if err != nil {
			return failedResult([]string{fmt.Sprintf("week %d cannot be scheduled: %v", week, err)}, warnings)
		}
		for _, violation := range scheduled.Violations {
			warnings = append(warnings, domain.ValidationWarning{
				Message:  fmt.Sprintf("week %d: %s", week, violation),
				Severity: domain.SeverityMedium,
			})
		}

		weeks = append(weeks, domain.WeekPlan{
			Week:     week,
			Phase:    phase.Phase,
			Volume:   volume,
			Schedule: scheduled,
		})
	}

	// Stage 5: deload schedule, computed once and applied to the matching
	// scheduled weeks. Weeks with a high-severity phase conflict keep their
	// normal load; the conflict surfaces as a warning instead.
	deloadSchedule := ComputeDeloadSchedule(config, periodization)
	warnings = append(warnings, deloadSchedule.Warnings...)
	if !options.SkipDeload {
		rng := options.randSource()
		for i := range weeks {
			cfg, ok := deloadSchedule.ConfigurationFor(weeks[i].Week)
			if !ok {
				continue
			}
			for _, conflict := range cfg.Conflicts {
				warnings = append(warnings, domain.ValidationWarning{
					Message:  fmt.Sprintf("week %d deload: %s", cfg.Week, conflict.Reason),
					Severity: conflictWarningSeverity(conflict.Severity),
				})
			}
			if cfg.HasBlockingConflict() {
				continue
			}
			modifiedSchedule, _ := ApplyDeload(weeks[i].Schedule, cfg, rng)
			weeks[i].Schedule = modifiedSchedule
			weeks[i].IsDeload = true
			weeks[i].DeloadReduction = cfg.VolumeReduction
		}
	}

	// Stage 6: assemble the final plan and its aggregate statistics.
	plan := assemblePlan(config, periodization, weeks)

	// Stage 7: whole-plan validation.
	planCheck := validatePlan(plan)
	warnings = append(warnings, planCheck.Warnings...)
	if !planCheck.IsValid {
		return failedResult(planCheck.Errors, warnings)
	}

	return GenerationResult{Success: true, Plan: &plan, Warnings: warnings}
}

func conflictWarningSeverity(severity domain.ConflictSeverity) domain.WarningSeverity {
	switch severity {
	case domain.ConflictHigh:
		return domain.SeverityHigh
	case domain.ConflictMedium:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// assemblePlan totals each week and derives the plan-level summary.
func assemblePlan(config domain.PlanConfiguration, periodization domain.PhasePeriodization, weeks []domain.WeekPlan) domain.TrainingPlan {
	summary := domain.PlanSummary{
		WorkoutDistribution: make(map[domain.WorkoutType]int),
		PhaseDistribution:   make(map[domain.Phase]int),
	}

	totalDuration := 0
	for i := range weeks {
		week := &weeks[i]
		week.TotalDistance = 0
		week.TotalDuration = 0
		for _, day := range week.Schedule.Days {
			if day.Workout == nil {
				continue
			}
			week.TotalDistance += day.Workout.Distance
			week.TotalDuration += day.Workout.Duration
			summary.WorkoutDistribution[day.Workout.Type]++
			summary.TotalWorkouts++
		}
		week.TotalDistance = math.Round(week.TotalDistance*10) / 10
		summary.TotalDistance += week.TotalDistance
		summary.PhaseDistribution[week.Phase]++
		totalDuration += week.TotalDuration
		if week.IsDeload {
			summary.DeloadWeeks = append(summary.DeloadWeeks, week.Week)
		}
	}
	summary.TotalDistance = math.Round(summary.TotalDistance*10) / 10
	if len(weeks) > 0 {
		summary.AverageWeeklyDuration = totalDuration / len(weeks)
	}

	return domain.TrainingPlan{
		ID:            uuid.NewString(),
		Configuration: config,
		Periodization: periodization,
		Weeks:         weeks,
		Summary:       summary,
		GeneratedAt:   time.Now().UTC(),
	}
}

// validatePlan runs the whole-plan consistency checks: week count, seven-day
// weeks, per-week training-day counts (warning), week-over-week distance
// growth within the rounding-tolerant ceiling, and the quality-session share
// of total workouts.
func validatePlan(plan domain.TrainingPlan) domain.ValidationResult {
	result := domain.NewValidationResult()

	if len(plan.Weeks) != plan.Configuration.ProgramWeeks {
		result.AddError(fmt.Sprintf("plan has %d weeks but configuration requires %d",
			len(plan.Weeks), plan.Configuration.ProgramWeeks))
	}

	for _, week := range plan.Weeks {
		if len(week.Schedule.Days) != 7 {
			result.AddError(fmt.Sprintf("week %d does not cover all seven days", week.Week))
		}
		if !week.IsDeload {
			if worked := week.Schedule.TrainingDayCount(); worked != plan.Configuration.TrainingDaysPerWeek {
				result.AddWarning(fmt.Sprintf("week %d schedules %d training days instead of %d",
					week.Week, worked, plan.Configuration.TrainingDaysPerWeek), domain.SeverityMedium)
			}
		}
	}

	for i := 1; i < len(plan.Weeks); i++ {
		prev, cur := plan.Weeks[i-1], plan.Weeks[i]
		// Volume-level deload flags cover deloads whose scheduled reduction
		// was filtered out by a phase conflict; the rebound after either
		// kind is expected to exceed the ceiling.
		if prev.IsDeload || cur.IsDeload || prev.Volume.IsDeload || cur.Volume.IsDeload || prev.TotalDistance <= 0 {
			continue
		}
		increase := (cur.TotalDistance - prev.TotalDistance) / prev.TotalDistance
		if increase > planIncreaseCeiling {
			result.AddError(fmt.Sprintf("week %d distance grows %.1f%% over week %d, above the %.0f%% ceiling",
				cur.Week, increase*100, prev.Week, planIncreaseCeiling*100))
		}
	}

	if plan.Summary.TotalWorkouts > 0 {
		share := float64(plan.Summary.WorkoutDistribution[domain.WorkoutQuality]) / float64(plan.Summary.TotalWorkouts)
		if share > maxQualityShare {
			result.AddWarning(fmt.Sprintf("quality sessions are %.0f%% of all workouts; above ~%.0f%% recovery suffers",
				share*100, maxQualityShare*100), domain.SeverityMedium)
		}
	}

	return result
}
