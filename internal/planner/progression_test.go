package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/run-planner/internal/domain"
)

func volumeConfig(race domain.RaceDistance, weeks, deloadFrequency int, experience domain.ExperienceLevel) domain.PlanConfiguration {
	return domain.PlanConfiguration{
		RaceDistance:        race,
		ProgramWeeks:        weeks,
		TrainingDaysPerWeek: 4,
		RestDays:            []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday},
		LongRunDay:          domain.Sunday,
		DeloadFrequency:     deloadFrequency,
		Experience:          experience,
	}
}

func TestIsDeloadWeek(t *testing.T) {
	tests := []struct {
		week, frequency int
		want            bool
	}{
		{1, 3, false}, // Week 1 is never a deload
		{1, 4, false},
		{3, 3, true},
		{4, 3, false},
		{6, 3, true},
		{4, 4, true},
		{8, 4, true},
		{5, 4, false},
		{2, 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("week%d_freq%d", tt.week, tt.frequency), func(t *testing.T) {
			assert.Equal(t, tt.want, IsDeloadWeek(tt.week, tt.frequency))
		})
	}
}

func TestComputeWeeklyVolumes_FirstWeekIsStartingVolume(t *testing.T) {
	config := volumeConfig(domain.Race10K, 8, 4, domain.ExperienceIntermediate)
	volumes := ComputeWeeklyVolumes(config)
	require.Len(t, volumes, 8)

	assert.Equal(t, 1, volumes[0].Week)
	assert.False(t, volumes[0].IsDeload)
	assert.Equal(t, StartingVolume(domain.Race10K, domain.ExperienceIntermediate), volumes[0].AdjustedDistance)
}

// TestComputeWeeklyVolumes_SafetyCeiling: no non-deload-to-non-deload pair
// may increase by more than 10% (plus rounding tolerance), across every race,
// cadence, and experience combination.
func TestComputeWeeklyVolumes_SafetyCeiling(t *testing.T) {
	for _, race := range domain.AllRaceDistances {
		for _, freq := range []int{3, 4} {
			for _, exp := range []domain.ExperienceLevel{domain.ExperienceBeginner, domain.ExperienceIntermediate, domain.ExperienceAdvanced} {
				volumes := ComputeWeeklyVolumes(volumeConfig(race, MaxProgramWeeks, freq, exp))
				for i := 1; i < len(volumes); i++ {
					prev, cur := volumes[i-1], volumes[i]
					if prev.IsDeload || cur.IsDeload {
						continue
					}
					increase := (cur.AdjustedDistance - prev.AdjustedDistance) / prev.AdjustedDistance
					assert.LessOrEqual(t, increase, hardIncreaseCeiling+increaseTolerance,
						"%s freq=%d exp=%s week %d", race, freq, exp, cur.Week)
				}
			}
		}
	}
}

// TestComputeWeeklyVolumes_DeloadReduction: each deload week is 20-30% below
// the immediately preceding week (whole-km rounding allowed for).
func TestComputeWeeklyVolumes_DeloadReduction(t *testing.T) {
	volumes := ComputeWeeklyVolumes(volumeConfig(domain.RaceHalf, 16, 4, domain.ExperienceIntermediate))
	deloads := 0
	for i := 1; i < len(volumes); i++ {
		if !volumes[i].IsDeload {
			continue
		}
		deloads++
		prev := volumes[i-1].AdjustedDistance
		reduction := (prev - volumes[i].AdjustedDistance) / prev
		assert.Less(t, volumes[i].AdjustedDistance, prev, "deload week %d must cut volume", volumes[i].Week)
		assert.InDelta(t, deloadReduction, reduction, 0.05, "deload week %d reduction out of band", volumes[i].Week)
		assert.GreaterOrEqual(t, reduction, minDeloadReduction-0.03)
		assert.LessOrEqual(t, reduction, maxDeloadReduction+0.03)
	}
	assert.Equal(t, 4, deloads, "16-week program on a 4-week cadence deloads at 4, 8, 12, 16")
}

func TestComputeWeeklyVolumes_CeilingClamp(t *testing.T) {
	// A long advanced 5K program hits the 60 km cap well before week 24.
	volumes := ComputeWeeklyVolumes(volumeConfig(domain.Race5K, 24, 4, domain.ExperienceAdvanced))
	ceiling := MaxVolume(domain.Race5K, domain.ExperienceAdvanced)

	capped := false
	for _, v := range volumes {
		assert.LessOrEqual(t, v.AdjustedDistance, ceiling)
		if !v.IsDeload && v.AdjustedDistance == ceiling && len(v.Notes) > 0 {
			capped = true
		}
	}
	assert.True(t, capped, "expected at least one week clamped to the maximum with a note")
}

func TestComputeWeeklyVolumes_RoundsToWholeKilometres(t *testing.T) {
	volumes := ComputeWeeklyVolumes(volumeConfig(domain.Race10K, 12, 3, domain.ExperienceBeginner))
	for _, v := range volumes {
		assert.Equal(t, float64(int(v.AdjustedDistance)), v.AdjustedDistance,
			"week %d volume must be a whole number", v.Week)
	}
}

// TestComputeWeeklyVolumes_AcceleratedRate: with deloads out of the way the
// progression streak runs long enough to lift the rate toward its 9.6% cap.
func TestComputeWeeklyVolumes_AcceleratedRate(t *testing.T) {
	config := volumeConfig(domain.RaceMarathon, 10, 0, domain.ExperienceBeginner)
	volumes := ComputeWeeklyVolumes(config)

	sawAccelerated := false
	for _, v := range volumes {
		assert.LessOrEqual(t, v.AppliedRate, acceleratedIncreaseCap)
		if v.AppliedRate > safeIncreaseRate {
			sawAccelerated = true
		}
	}
	assert.True(t, sawAccelerated, "an uninterrupted progression should eventually accelerate")
}

func TestValidateProgression_AcceptsComputedSequences(t *testing.T) {
	for _, race := range domain.AllRaceDistances {
		volumes := ComputeWeeklyVolumes(volumeConfig(race, 16, 4, domain.ExperienceIntermediate))
		result := ValidateProgression(volumes)
		assert.True(t, result.IsValid, "%s: computed sequence must validate, errors: %v", race, result.Errors)
	}
}

func TestValidateProgression_FlagsExcessiveJump(t *testing.T) {
	volumes := []domain.WeeklyVolume{
		{Week: 1, AdjustedDistance: 30},
		{Week: 2, AdjustedDistance: 36}, // +20%
	}
	result := ValidateProgression(volumes)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "safety ceiling")
}

func TestValidateProgression_SparseDeloadAdvisory(t *testing.T) {
	var volumes []domain.WeeklyVolume
	for week := 1; week <= 10; week++ {
		volumes = append(volumes, domain.WeeklyVolume{Week: week, AdjustedDistance: 30})
	}
	result := ValidateProgression(volumes)
	assert.True(t, result.IsValid)
	require.NotEmpty(t, result.Warnings, "a sequence with zero deloads should draw a recovery advisory")
	assert.Contains(t, result.Warnings[len(result.Warnings)-1].Message, "deload")
}
