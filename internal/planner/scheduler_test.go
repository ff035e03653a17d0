package planner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/run-planner/internal/domain"
)

func schedulerConfig() domain.PlanConfiguration {
	return domain.PlanConfiguration{
		RaceDistance:        domain.Race10K,
		ProgramWeeks:        8,
		TrainingDaysPerWeek: 4,
		RestDays:            []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday},
		LongRunDay:          domain.Sunday,
		DeloadFrequency:     4,
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b domain.Weekday
		want int
	}{
		{domain.Monday, domain.Monday, 0},
		{domain.Monday, domain.Tuesday, 1},
		{domain.Sunday, domain.Tuesday, 2}, // Wraps across the week boundary
		{domain.Monday, domain.Sunday, 1},
		{domain.Monday, domain.Thursday, 3},
		{domain.Tuesday, domain.Saturday, 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.a, tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DaysBetween(tt.a, tt.b))
			assert.Equal(t, tt.want, domain.DaysBetween(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

// TestRotationForWeek: the quality sub-type cycle has period 5, follows the
// fixed order, and each week's nextRotation is the following week's type.
func TestRotationForWeek(t *testing.T) {
	expected := []domain.QualityType{
		domain.QualityTempo,
		domain.QualityThreshold,
		domain.QualityIntervals,
		domain.QualityHills,
		domain.QualityFartlek,
	}

	for week := 1; week <= 20; week++ {
		rotation := RotationForWeek(week)
		assert.Equal(t, expected[(week-1)%5], rotation.QualityType, "week %d", week)
		assert.Equal(t, RotationForWeek(week+1).QualityType, rotation.NextRotation,
			"week %d nextRotation must match week %d's type", week, week+1)
	}
}

func TestScheduleWeek_PlacesLongRunOnConfiguredDay(t *testing.T) {
	config := schedulerConfig()
	dist := DistributeWeek(config, 1, 40, domain.PhaseBase)

	scheduled, err := ScheduleWeek(1, ConstraintsFromConfig(config), dist, domain.PhaseBase)
	require.NoError(t, err)
	assert.True(t, scheduled.Success, "violations: %v", scheduled.Violations)

	long := scheduled.WorkoutOn(domain.Sunday)
	require.NotNil(t, long)
	assert.Equal(t, domain.WorkoutLong, long.Type)
}

func TestScheduleWeek_RespectsRestDays(t *testing.T) {
	config := schedulerConfig()
	dist := DistributeWeek(config, 3, 42, domain.PhaseBuild)

	scheduled, err := ScheduleWeek(3, ConstraintsFromConfig(config), dist, domain.PhaseBuild)
	require.NoError(t, err)

	for _, rest := range config.RestDays {
		assert.True(t, scheduled.Days[rest].IsRest)
		assert.Nil(t, scheduled.Days[rest].Workout, "rest day %s must stay unworked", rest)
	}
	assert.Equal(t, config.TrainingDaysPerWeek, scheduled.TrainingDayCount())
}

func TestScheduleWeek_QualityKeepsRecoveryDistance(t *testing.T) {
	config := schedulerConfig()
	dist := DistributeWeek(config, 2, 40, domain.PhaseBuild)

	scheduled, err := ScheduleWeek(2, ConstraintsFromConfig(config), dist, domain.PhaseBuild)
	require.NoError(t, err)

	var qualityDay domain.Weekday = -1
	for day := domain.Monday; day <= domain.Sunday; day++ {
		if w := scheduled.Days[day].Workout; w != nil && w.Type == domain.WorkoutQuality {
			qualityDay = day
		}
	}
	require.NotEqual(t, domain.Weekday(-1), qualityDay, "quality session must be placed")
	assert.GreaterOrEqual(t, domain.DaysBetween(qualityDay, config.LongRunDay), minRecoveryDays)
}

func TestScheduleWeek_QualityCarriesRotationSubType(t *testing.T) {
	config := schedulerConfig()

	for week := 1; week <= 5; week++ {
		dist := DistributeWeek(config, week, 40, domain.PhaseBuild)
		scheduled, err := ScheduleWeek(week, ConstraintsFromConfig(config), dist, domain.PhaseBuild)
		require.NoError(t, err)

		for day := domain.Monday; day <= domain.Sunday; day++ {
			if w := scheduled.Days[day].Workout; w != nil && w.Type == domain.WorkoutQuality {
				assert.Equal(t, RotationForWeek(week).QualityType, w.QualityType)
				assert.NotEmpty(t, w.Description)
			}
		}
	}
}

func TestScheduleWeek_InfeasibleConstraints(t *testing.T) {
	constraints := SchedulingConstraints{
		RestDays:     []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday},
		LongRunDay:   domain.Sunday,
		TrainingDays: 6,
	}
	dist := DistributeWeek(schedulerConfig(), 1, 40, domain.PhaseBase)

	scheduled, err := ScheduleWeek(1, constraints, dist, domain.PhaseBase)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough available days")
	assert.False(t, scheduled.Success)
}

func TestScheduleWeek_LongRunDayOnRestDayIsInfeasible(t *testing.T) {
	constraints := SchedulingConstraints{
		RestDays:     []domain.Weekday{domain.Sunday, domain.Monday, domain.Wednesday},
		LongRunDay:   domain.Sunday,
		TrainingDays: 4,
	}
	dist := DistributeWeek(schedulerConfig(), 1, 40, domain.PhaseBase)

	_, err := ScheduleWeek(1, constraints, dist, domain.PhaseBase)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rest day")
}

// TestScheduleWeek_SurplusEasyReported: a workout bag larger than the
// available training days reports the surplus in notes instead of dropping
// it silently.
func TestScheduleWeek_SurplusEasyReported(t *testing.T) {
	config := schedulerConfig()
	dist := DistributeWeek(config, 1, 40, domain.PhaseBase)
	for i := 0; i < 3; i++ {
		dist.Workouts = append(dist.Workouts, domain.Workout{
			Type: domain.WorkoutEasy, Distance: 5, Duration: 31, Intensity: domain.Zone2,
		})
	}

	scheduled, err := ScheduleWeek(1, ConstraintsFromConfig(config), dist, domain.PhaseBase)
	require.NoError(t, err)

	found := false
	for _, note := range scheduled.Notes {
		if strings.Contains(note, "could not be placed") {
			found = true
		}
	}
	assert.True(t, found, "surplus workouts must surface in scheduling notes: %v", scheduled.Notes)
	assert.Equal(t, config.TrainingDaysPerWeek, scheduled.TrainingDayCount())
}

// TestScheduleWeek_SevenTrainingDays exercises the densest configuration:
// no rest days, every day worked.
func TestScheduleWeek_SevenTrainingDays(t *testing.T) {
	config := domain.PlanConfiguration{
		RaceDistance:        domain.RaceMarathon,
		ProgramWeeks:        16,
		TrainingDaysPerWeek: 7,
		RestDays:            nil,
		LongRunDay:          domain.Saturday,
		DeloadFrequency:     3,
	}
	dist := DistributeWeek(config, 1, 60, domain.PhaseBuild)

	scheduled, err := ScheduleWeek(1, ConstraintsFromConfig(config), dist, domain.PhaseBuild)
	require.NoError(t, err)
	assert.True(t, scheduled.Success, "violations: %v", scheduled.Violations)
	assert.Equal(t, 7, scheduled.TrainingDayCount())

	long := scheduled.WorkoutOn(domain.Saturday)
	require.NotNil(t, long)
	assert.Equal(t, domain.WorkoutLong, long.Type)
}
