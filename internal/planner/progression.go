// internal/planner/progression.go
package planner

import (
	"fmt"
	"math"

	"alcyxob/run-planner/internal/domain"
)

// Progression constants. Weekly increases follow the conventional 10% hard
// safety ceiling, with the planner itself targeting a gentler 8% that may
// creep toward 9.6% late in an uninterrupted progression block.
const (
	safeIncreaseRate        = 0.08
	acceleratedIncreaseCap  = 0.096
	hardIncreaseCeiling     = 0.10
	aggressiveIncreaseLevel = 0.09
	plateauStreakThreshold  = 3

	deloadReduction    = 0.25
	minDeloadReduction = 0.20
	maxDeloadReduction = 0.30

	minDeloadRatio = 0.15

	// increaseTolerance absorbs whole-kilometre rounding when validating
	// week-over-week increases.
	increaseTolerance = 0.01
)

// startingVolumes is the week-1 target distance in kilometres, keyed by race
// distance and experience level.
var startingVolumes = map[domain.RaceDistance]map[domain.ExperienceLevel]float64{
	domain.Race5K:       {domain.ExperienceBeginner: 15, domain.ExperienceIntermediate: 20, domain.ExperienceAdvanced: 25},
	domain.Race10K:      {domain.ExperienceBeginner: 20, domain.ExperienceIntermediate: 26, domain.ExperienceAdvanced: 32},
	domain.RaceHalf:     {domain.ExperienceBeginner: 25, domain.ExperienceIntermediate: 32, domain.ExperienceAdvanced: 40},
	domain.RaceMarathon: {domain.ExperienceBeginner: 32, domain.ExperienceIntermediate: 40, domain.ExperienceAdvanced: 50},
}

// maxVolumes caps weekly distance per race and experience, regardless of how
// long the progression runs.
var maxVolumes = map[domain.RaceDistance]map[domain.ExperienceLevel]float64{
	domain.Race5K:       {domain.ExperienceBeginner: 40, domain.ExperienceIntermediate: 50, domain.ExperienceAdvanced: 60},
	domain.Race10K:      {domain.ExperienceBeginner: 48, domain.ExperienceIntermediate: 58, domain.ExperienceAdvanced: 70},
	domain.RaceHalf:     {domain.ExperienceBeginner: 60, domain.ExperienceIntermediate: 75, domain.ExperienceAdvanced: 90},
	domain.RaceMarathon: {domain.ExperienceBeginner: 70, domain.ExperienceIntermediate: 88, domain.ExperienceAdvanced: 105},
}

// IsDeloadWeek reports whether the given 1-indexed week is a deload week for
// the given cadence. Week 1 is never a deload.
func IsDeloadWeek(week, deloadFrequency int) bool {
	if week <= 1 || deloadFrequency <= 0 {
		return false
	}
	return week%deloadFrequency == 0
}

// StartingVolume returns the week-1 distance for a race and experience
// level. Unknown combinations fall back to the intermediate 10K start.
func StartingVolume(race domain.RaceDistance, experience domain.ExperienceLevel) float64 {
	if byExp, ok := startingVolumes[race]; ok {
		if v, ok := byExp[experience]; ok {
			return v
		}
	}
	return startingVolumes[domain.Race10K][domain.ExperienceIntermediate]
}

// MaxVolume returns the weekly distance ceiling for a race and experience
// level.
func MaxVolume(race domain.RaceDistance, experience domain.ExperienceLevel) float64 {
	if byExp, ok := maxVolumes[race]; ok {
		if v, ok := byExp[experience]; ok {
			return v
		}
	}
	return maxVolumes[domain.Race10K][domain.ExperienceIntermediate]
}

// ComputeWeeklyVolumes builds the full weekly distance sequence for a
// program: bounded progressive overload on normal weeks, a 25% reduction on
// deload weeks, and a hard clamp at the race/experience maximum. All
// distances round to whole kilometres.
func ComputeWeeklyVolumes(config domain.PlanConfiguration) []domain.WeeklyVolume {
	experience := config.EffectiveExperience()
	start := StartingVolume(config.RaceDistance, experience)
	ceiling := MaxVolume(config.RaceDistance, experience)

	volumes := make([]domain.WeeklyVolume, 0, config.ProgramWeeks)
	// lastProgress is the most recent non-deload volume: progression resumes
	// from it after a deload instead of rebuilding from the reduced week.
	lastProgress := math.Round(start)
	previous := lastProgress
	increaseStreak := 0

	for week := 1; week <= config.ProgramWeeks; week++ {
		if week == 1 {
			volumes = append(volumes, domain.WeeklyVolume{
				Week:             1,
				BaseDistance:     math.Round(start),
				AdjustedDistance: math.Round(start),
			})
			continue
		}

		if IsDeloadWeek(week, config.DeloadFrequency) {
			reduced := math.Round(previous * (1 - deloadReduction))
			volumes = append(volumes, domain.WeeklyVolume{
				Week:             week,
				BaseDistance:     reduced,
				AdjustedDistance: reduced,
				IsDeload:         true,
				Notes:            []string{fmt.Sprintf("deload week: volume reduced %.0f%% for recovery", deloadReduction*100)},
			})
			previous = reduced
			increaseStreak = 0
			continue
		}

		rate := safeIncreaseRate
		if increaseStreak > plateauStreakThreshold {
			// A long uninterrupted block tolerates a slightly steeper ramp,
			// still well under the hard ceiling.
			rate = math.Min(safeIncreaseRate*1.2, acceleratedIncreaseCap)
		}

		base := lastProgress * (1 + rate)
		adjusted := math.Round(base)
		var notes []string
		if adjusted > ceiling {
			adjusted = ceiling
			notes = append(notes, fmt.Sprintf("volume capped at the %.0f km weekly maximum for this race and experience level", ceiling))
		}

		volumes = append(volumes, domain.WeeklyVolume{
			Week:             week,
			BaseDistance:     math.Round(base),
			AdjustedDistance: adjusted,
			AppliedRate:      rate,
			Notes:            notes,
		})
		lastProgress = adjusted
		previous = adjusted
		increaseStreak++
	}

	return volumes
}

// ValidateProgression checks a computed volume sequence against the safety
// rules: no non-deload-to-non-deload increase above the 10% ceiling
// (blocking), increases in the aggressive band above 9% (warning), and a
// deload share under 15% of the program (advisory).
func ValidateProgression(volumes []domain.WeeklyVolume) domain.ValidationResult {
	result := domain.NewValidationResult()

	deloadCount := 0
	for i, v := range volumes {
		if v.IsDeload {
			deloadCount++
		}
		if i == 0 {
			continue
		}
		prev := volumes[i-1]
		if prev.IsDeload || v.IsDeload || prev.AdjustedDistance <= 0 {
			continue
		}
		increase := (v.AdjustedDistance - prev.AdjustedDistance) / prev.AdjustedDistance
		if increase > hardIncreaseCeiling+increaseTolerance {
			result.AddError(fmt.Sprintf("week %d increases volume %.1f%%, above the %.0f%% safety ceiling",
				v.Week, increase*100, hardIncreaseCeiling*100))
		} else if increase > aggressiveIncreaseLevel+increaseTolerance {
			result.AddWarning(fmt.Sprintf("week %d increases volume %.1f%%; monitor for fatigue", v.Week, increase*100),
				domain.SeverityMedium)
		}
	}

	if len(volumes) > 0 {
		ratio := float64(deloadCount) / float64(len(volumes))
		if ratio < minDeloadRatio {
			result.AddWarning(fmt.Sprintf("only %d of %d weeks are deload weeks; consider more recovery",
				deloadCount, len(volumes)), domain.SeverityMedium)
		}
	}

	return result
}
