package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/run-planner/internal/domain"
)

func distributionConfig(race domain.RaceDistance, trainingDays int) domain.PlanConfiguration {
	restDays := []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday, domain.Saturday}[:7-trainingDays]
	return domain.PlanConfiguration{
		RaceDistance:        race,
		ProgramWeeks:        12,
		TrainingDaysPerWeek: trainingDays,
		RestDays:            restDays,
		LongRunDay:          domain.Sunday,
		DeloadFrequency:     4,
	}
}

// TestDistributeWeek_Patterns: every training-day count yields exactly one
// long run, a quality session only at 4+ days, and a workout total equal to
// the training-day count.
func TestDistributeWeek_Patterns(t *testing.T) {
	for days := 3; days <= 7; days++ {
		t.Run(fmt.Sprintf("%d_days", days), func(t *testing.T) {
			config := distributionConfig(domain.Race10K, days)
			dist := DistributeWeek(config, 1, 40, domain.PhaseBuild)

			assert.Equal(t, 1, dist.LongCount)
			if days >= 4 {
				assert.Equal(t, 1, dist.QualityCount)
			} else {
				assert.Equal(t, 0, dist.QualityCount)
			}
			assert.Equal(t, days, dist.EasyCount+dist.LongCount+dist.QualityCount)
			assert.Len(t, dist.Workouts, days)
			assert.Equal(t, 7-days, dist.RestCount)
		})
	}
}

func TestDistributeWeek_RaceMultipliersScaleUp(t *testing.T) {
	longFor := func(race domain.RaceDistance) float64 {
		dist := DistributeWeek(distributionConfig(race, 5), 1, 50, domain.PhaseBase)
		for _, w := range dist.Workouts {
			if w.Type == domain.WorkoutLong {
				return w.Distance
			}
		}
		t.Fatalf("no long run for %s", race)
		return 0
	}

	assert.Less(t, longFor(domain.Race5K), longFor(domain.Race10K))
	assert.Less(t, longFor(domain.Race10K), longFor(domain.RaceHalf))
	assert.Less(t, longFor(domain.RaceHalf), longFor(domain.RaceMarathon))
}

// TestDistributeWeek_MinimumDistances: category floors hold even when the
// weekly budget computes to nearly nothing.
func TestDistributeWeek_MinimumDistances(t *testing.T) {
	dist := DistributeWeek(distributionConfig(domain.Race5K, 5), 1, 10, domain.PhaseBase)
	for _, w := range dist.Workouts {
		switch w.Type {
		case domain.WorkoutEasy:
			assert.GreaterOrEqual(t, w.Distance, minimumDistances[domain.WorkoutEasy])
		case domain.WorkoutQuality:
			assert.GreaterOrEqual(t, w.Distance, minimumDistances[domain.WorkoutQuality])
		case domain.WorkoutLong:
			assert.GreaterOrEqual(t, w.Distance, minimumDistances[domain.WorkoutLong])
		}
	}
}

func TestDistributeWeek_DurationsFollowPace(t *testing.T) {
	dist := DistributeWeek(distributionConfig(domain.RaceHalf, 4), 1, 40, domain.PhaseBuild)
	for _, w := range dist.Workouts {
		require.Greater(t, w.Duration, 0)
		pace := float64(w.Duration) / w.Distance
		assert.InDelta(t, paceAssumptions[w.Type], pace, 0.2,
			"%s duration should follow the fixed pace assumption", w.Type)
	}
}

// TestDistributeWeek_PhaseGuidanceVaries: quality descriptions change with
// the phase but the distance math does not.
func TestDistributeWeek_PhaseGuidanceVaries(t *testing.T) {
	config := distributionConfig(domain.Race10K, 5)
	base := DistributeWeek(config, 1, 40, domain.PhaseBase)
	peak := DistributeWeek(config, 1, 40, domain.PhasePeak)

	var baseQuality, peakQuality domain.Workout
	for _, w := range base.Workouts {
		if w.Type == domain.WorkoutQuality {
			baseQuality = w
		}
	}
	for _, w := range peak.Workouts {
		if w.Type == domain.WorkoutQuality {
			peakQuality = w
		}
	}

	assert.NotEqual(t, baseQuality.Description, peakQuality.Description)
	assert.Equal(t, baseQuality.Distance, peakQuality.Distance)
	assert.Equal(t, baseQuality.Duration, peakQuality.Duration)
}

func TestValidateDistribution_AcceptsStandardWeeks(t *testing.T) {
	for days := 3; days <= 6; days++ {
		dist := DistributeWeek(distributionConfig(domain.Race10K, days), 1, 40, domain.PhaseBuild)
		result := ValidateDistribution(dist)
		assert.True(t, result.IsValid, "%d days: %v", days, result.Errors)
	}
}

func TestValidateDistribution_Findings(t *testing.T) {
	t.Run("missing long run", func(t *testing.T) {
		result := ValidateDistribution(domain.WeeklyDistribution{Week: 2, EasyCount: 3, RestCount: 4})
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors[len(result.Errors)-1], "long run")
	})

	t.Run("too few training days", func(t *testing.T) {
		result := ValidateDistribution(domain.WeeklyDistribution{Week: 2, EasyCount: 1, LongCount: 1, RestCount: 5})
		assert.False(t, result.IsValid)
	})

	t.Run("quality overload warns", func(t *testing.T) {
		result := ValidateDistribution(domain.WeeklyDistribution{
			Week: 2, EasyCount: 3, LongCount: 1, QualityCount: 3, RestCount: 0,
		})
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("no rest day warns", func(t *testing.T) {
		result := ValidateDistribution(domain.WeeklyDistribution{
			Week: 2, EasyCount: 5, LongCount: 1, QualityCount: 1, RestCount: 0,
		})
		assert.True(t, result.IsValid)
		found := false
		for _, w := range result.Warnings {
			if w.Severity == domain.SeverityMedium {
				found = true
			}
		}
		assert.True(t, found)
	})
}
