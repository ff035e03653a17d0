// internal/planner/validator.go
package planner

import (
	"fmt"

	"alcyxob/run-planner/internal/domain"
)

// Absolute program-length bounds. Outside these the configuration is
// rejected regardless of race distance.
const (
	MinProgramWeeks = 6
	MaxProgramWeeks = 24

	MinTrainingDays = 3
	MaxTrainingDays = 7
)

// recommendedMinWeeks is the shortest program that gives a race distance a
// sensible periodization. Shorter programs are allowed but draw a
// high-severity warning.
var recommendedMinWeeks = map[domain.RaceDistance]int{
	domain.Race5K:       6,
	domain.Race10K:      8,
	domain.RaceHalf:     10,
	domain.RaceMarathon: 12,
}

// ValidateConfiguration checks a plan configuration for internal consistency
// and physiological soundness. Every check is independently evaluable; the
// result is valid iff no check produced an error. Warnings are advisory and
// never block generation.
func ValidateConfiguration(config domain.PlanConfiguration) domain.ValidationResult {
	result := domain.NewValidationResult()

	validateRaceDistance(config, &result)
	validateProgramLength(config, &result)
	validateTrainingDays(config, &result)
	validateRestDays(config, &result)
	validateLongRunDay(config, &result)
	validateDeloadFrequency(config, &result)
	validateCrossConstraints(config, &result)

	return result
}

func validateRaceDistance(config domain.PlanConfiguration, result *domain.ValidationResult) {
	if !config.RaceDistance.IsValid() {
		result.AddError(fmt.Sprintf("unsupported race distance: %q", string(config.RaceDistance)))
	}
	if config.Experience != "" && !config.Experience.IsValid() {
		result.AddError(fmt.Sprintf("unsupported experience level: %q", string(config.Experience)))
	}
}

func validateProgramLength(config domain.PlanConfiguration, result *domain.ValidationResult) {
	weeks := config.ProgramWeeks
	if weeks < MinProgramWeeks || weeks > MaxProgramWeeks {
		result.AddError(fmt.Sprintf("program length must be between %d and %d weeks, got %d",
			MinProgramWeeks, MaxProgramWeeks, weeks))
		return
	}
	if min, ok := recommendedMinWeeks[config.RaceDistance]; ok && weeks < min {
		result.AddWarning(fmt.Sprintf("%d weeks is below the recommended minimum of %d for %s training",
			weeks, min, config.RaceDistance), domain.SeverityHigh)
	}
}

func validateTrainingDays(config domain.PlanConfiguration, result *domain.ValidationResult) {
	days := config.TrainingDaysPerWeek
	if days < MinTrainingDays || days > MaxTrainingDays {
		result.AddError(fmt.Sprintf("training days per week must be between %d and %d, got %d",
			MinTrainingDays, MaxTrainingDays, days))
		return
	}
	if days == MinTrainingDays {
		result.AddWarning("3 training days is the minimum for meaningful progression; consider adding a day if possible",
			domain.SeverityMedium)
	}
	if days >= 6 {
		result.AddWarning(fmt.Sprintf("%d training days per week leaves little recovery and raises injury risk", days),
			domain.SeverityHigh)
	}
}

func validateRestDays(config domain.PlanConfiguration, result *domain.ValidationResult) {
	expected := 7 - config.TrainingDaysPerWeek
	if config.TrainingDaysPerWeek >= MinTrainingDays && config.TrainingDaysPerWeek <= MaxTrainingDays &&
		len(config.RestDays) != expected {
		result.AddError(fmt.Sprintf("rest day count must equal 7 minus training days (%d), got %d",
			expected, len(config.RestDays)))
	}

	seen := make(map[domain.Weekday]bool, len(config.RestDays))
	for _, day := range config.RestDays {
		if !day.IsValid() {
			result.AddError(fmt.Sprintf("invalid rest day: %s", day))
			continue
		}
		if seen[day] {
			result.AddError(fmt.Sprintf("duplicate rest day: %s", day))
		}
		seen[day] = true
	}
}

func validateLongRunDay(config domain.PlanConfiguration, result *domain.ValidationResult) {
	if !config.LongRunDay.IsValid() {
		result.AddError(fmt.Sprintf("invalid long run day: %s", config.LongRunDay))
		return
	}
	if config.IsRestDay(config.LongRunDay) {
		result.AddError(fmt.Sprintf("long run day (%s) cannot be a rest day", config.LongRunDay))
	}
	if !config.LongRunDay.IsWeekend() {
		result.AddWarning(fmt.Sprintf("long run on %s: most runners find weekend long runs easier to sustain",
			config.LongRunDay), domain.SeverityLow)
	}
}

func validateDeloadFrequency(config domain.PlanConfiguration, result *domain.ValidationResult) {
	if config.DeloadFrequency != 3 && config.DeloadFrequency != 4 {
		result.AddError(fmt.Sprintf("deload frequency must be 3 or 4 weeks, got %d", config.DeloadFrequency))
		return
	}
	if config.ProgramWeeks < config.DeloadFrequency+2 {
		result.AddWarning(fmt.Sprintf("a %d-week program barely fits a %d-week deload cycle",
			config.ProgramWeeks, config.DeloadFrequency), domain.SeverityLow)
	}
}

// validateCrossConstraints covers combinations of otherwise-valid fields
// that are physiologically questionable together.
func validateCrossConstraints(config domain.PlanConfiguration, result *domain.ValidationResult) {
	if config.TrainingDaysPerWeek >= 6 && config.ProgramWeeks < 8 {
		result.AddWarning("6+ training days in a program under 8 weeks compresses adaptation; expect accumulated fatigue",
			domain.SeverityHigh)
	}
	if config.RaceDistance == domain.Race5K && config.ProgramWeeks > 16 {
		result.AddWarning(fmt.Sprintf("%d weeks is longer than a 5K plan needs; fitness gains plateau after ~16 weeks",
			config.ProgramWeeks), domain.SeverityMedium)
	}
}
