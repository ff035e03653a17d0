// internal/planner/deload.go
package planner

import (
	"fmt"
	"math"
	"math/rand"

	"alcyxob/run-planner/internal/domain"
)

// Deload ratio bounds for the whole program. Outside this band the cadence
// is advisory-flagged as too sparse or too frequent.
const (
	maxDeloadRatio       = 0.30
	qualitySkipChance    = 0.30
	deloadIntensityFloor = domain.Zone1
)

// phaseDeloadRule captures whether a phase tolerates a deload and how deep
// the cut may go. Critical offsets are phase-relative week indexes (0-based
// from the phase start) where a deload is technically allowed but
// undermines the phase's purpose.
type phaseDeloadRule struct {
	Allowed         bool
	MinReduction    float64
	MaxReduction    float64
	Reduction       float64 // Value used when allowed
	Reason          string
	CriticalOffsets []int
}

var phaseDeloadRules = map[domain.Phase]phaseDeloadRule{
	domain.PhaseBase: {
		Allowed:      true,
		MinReduction: 0.20,
		MaxReduction: 0.30,
		Reduction:    0.25,
	},
	domain.PhaseBuild: {
		Allowed:         true,
		MinReduction:    0.20,
		MaxReduction:    0.25,
		Reduction:       0.20, // Build deloads cut shallower to preserve the intensity stimulus
		CriticalOffsets: []int{0, 1},
	},
	domain.PhasePeak: {
		Allowed: false,
		Reason:  "peak weeks are race-preparation critical; extra volume cuts blunt the sharpening stimulus",
	},
	domain.PhaseTaper: {
		Allowed: false,
		Reason:  "the taper is already a volume reduction; stacking a deload on it strips too much training",
	},
}

// deloadModificationRules define the per-category workout adjustments on a
// deload week. Easy and long runs are reduced but never skipped; quality
// sessions take the deepest cut, drop an intensity zone, and may be skipped
// outright. Rest days are untouched.
var deloadModificationRules = map[domain.WorkoutType]domain.WorkoutModification{
	domain.WorkoutEasy:    {Type: domain.WorkoutEasy, DistanceReduction: 0.25, DurationReduction: 0.20},
	domain.WorkoutLong:    {Type: domain.WorkoutLong, DistanceReduction: 0.30, DurationReduction: 0.25},
	domain.WorkoutQuality: {Type: domain.WorkoutQuality, DistanceReduction: 0.40, DurationReduction: 0.35, ReduceIntensity: true},
}

// DeloadSchedule is the program-wide deload plan: one configuration per
// deload week plus advisory findings about the cadence as a whole.
type DeloadSchedule struct {
	Weeks    []domain.DeloadWeekConfiguration
	Warnings []domain.ValidationWarning
}

// ConfigurationFor returns the deload configuration for a week, if the week
// is a deload week.
func (s DeloadSchedule) ConfigurationFor(week int) (domain.DeloadWeekConfiguration, bool) {
	for _, w := range s.Weeks {
		if w.Week == week {
			return w, true
		}
	}
	return domain.DeloadWeekConfiguration{}, false
}

// ComputeDeloadSchedule determines every deload week of the program, flags
// phase conflicts, and validates the cadence program-wide. It runs
// independently of weekly scheduling; the orchestrator applies the
// per-week modifications afterwards.
func ComputeDeloadSchedule(config domain.PlanConfiguration, periodization domain.PhasePeriodization) DeloadSchedule {
	schedule := DeloadSchedule{}

	for week := 1; week <= config.ProgramWeeks; week++ {
		if !IsDeloadWeek(week, config.DeloadFrequency) {
			continue
		}
		schedule.Weeks = append(schedule.Weeks, configureDeloadWeek(week, periodization))
	}

	schedule.Warnings = validateDeloadCadence(config, schedule.Weeks)
	return schedule
}

func configureDeloadWeek(week int, periodization domain.PhasePeriodization) domain.DeloadWeekConfiguration {
	cfg := domain.DeloadWeekConfiguration{Week: week, IsDeload: true}

	phase, err := PhaseForWeek(periodization, week)
	if err != nil {
		// Weeks outside the periodization cannot occur for a validated
		// configuration; treat it like a blocked deload.
		cfg.Conflicts = append(cfg.Conflicts, domain.PhaseConflict{
			Severity: domain.ConflictHigh,
			Reason:   err.Error(),
		})
		return cfg
	}

	rule := phaseDeloadRules[phase.Phase]
	if !rule.Allowed {
		cfg.Conflicts = append(cfg.Conflicts, domain.PhaseConflict{
			Phase:          phase.Phase,
			Severity:       domain.ConflictHigh,
			Reason:         rule.Reason,
			Recommendation: fmt.Sprintf("shift the deload cadence so recovery lands before week %d", phase.StartWeek),
		})
		return cfg
	}

	cfg.VolumeReduction = rule.Reduction
	for _, offset := range rule.CriticalOffsets {
		if week == phase.StartWeek+offset {
			cfg.Conflicts = append(cfg.Conflicts, domain.PhaseConflict{
				Phase:    phase.Phase,
				Severity: domain.ConflictMedium,
				Reason: fmt.Sprintf("week %d is week %d of the %s phase, where the new stimulus is still settling in",
					week, offset+1, phase.Phase),
				Recommendation: "the deload stands, but expect a muted training effect from this block",
			})
		}
	}

	for _, workoutType := range []domain.WorkoutType{domain.WorkoutEasy, domain.WorkoutLong, domain.WorkoutQuality} {
		cfg.Modifications = append(cfg.Modifications, deloadModificationRules[workoutType])
	}
	return cfg
}

// validateDeloadCadence runs the program-wide checks: overall deload share,
// back-to-back deloads, and race-specific cadence recommendations.
func validateDeloadCadence(config domain.PlanConfiguration, weeks []domain.DeloadWeekConfiguration) []domain.ValidationWarning {
	var warnings []domain.ValidationWarning
	add := func(msg string, severity domain.WarningSeverity) {
		warnings = append(warnings, domain.ValidationWarning{Message: msg, Severity: severity})
	}

	if config.ProgramWeeks > 0 {
		ratio := float64(len(weeks)) / float64(config.ProgramWeeks)
		if ratio < minDeloadRatio {
			add(fmt.Sprintf("deload weeks cover only %.0f%% of the program; recovery may be too sparse", ratio*100),
				domain.SeverityMedium)
		} else if ratio > maxDeloadRatio {
			add(fmt.Sprintf("deload weeks cover %.0f%% of the program; that much recovery stalls progression", ratio*100),
				domain.SeverityMedium)
		}
	}

	for i := 1; i < len(weeks); i++ {
		if weeks[i].Week == weeks[i-1].Week+1 {
			add(fmt.Sprintf("weeks %d and %d are consecutive deload weeks", weeks[i-1].Week, weeks[i].Week),
				domain.SeverityMedium)
		}
	}

	if config.RaceDistance == domain.RaceMarathon && config.DeloadFrequency == 4 {
		add("marathon volume recovers slowly; a 3-week deload cadence usually works better than 4",
			domain.SeverityLow)
	}
	if config.RaceDistance == domain.Race5K && config.DeloadFrequency == 3 {
		add("5K volume is modest; a 4-week deload cadence keeps more training weeks in play",
			domain.SeverityLow)
	}

	return warnings
}

// ApplyDeload rewrites an already-scheduled week with the deload's workout
// modifications: distances and durations shrink per category, quality
// intensity drops a zone, and the quality session may be skipped entirely
// (becoming a rest day). The draw for the skip comes from the supplied
// random source, the pipeline's only stochastic element. The scheduler is
// not re-run; day placements are preserved.
func ApplyDeload(scheduled domain.ScheduledWeek, cfg domain.DeloadWeekConfiguration, rng *rand.Rand) (domain.ScheduledWeek, []domain.WorkoutModification) {
	applied := make([]domain.WorkoutModification, 0, len(cfg.Modifications))

	for day := domain.Monday; day <= domain.Sunday; day++ {
		workout := scheduled.Days[day].Workout
		if workout == nil {
			continue
		}
		rule, ok := deloadModificationRules[workout.Type]
		if !ok {
			continue
		}

		if workout.Type == domain.WorkoutQuality && rng != nil && rng.Float64() < qualitySkipChance {
			scheduled.Days[day].Workout = nil
			scheduled.Days[day].IsRest = true
			rule.Skipped = true
			applied = append(applied, rule)
			scheduled.Notes = append(scheduled.Notes, fmt.Sprintf(
				"deload: quality session on %s skipped in favor of full rest", day))
			continue
		}

		modified := *workout
		modified.Distance = math.Round(modified.Distance*(1-rule.DistanceReduction)*10) / 10
		modified.Duration = int(math.Round(float64(modified.Duration) * (1 - rule.DurationReduction)))
		if rule.ReduceIntensity && modified.Intensity > deloadIntensityFloor {
			modified.Intensity--
		}
		scheduled.Days[day].Workout = &modified
		applied = append(applied, rule)
	}

	return scheduled, applied
}
