package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/run-planner/internal/domain"
)

func validConfig() domain.PlanConfiguration {
	return domain.PlanConfiguration{
		RaceDistance:        domain.RaceHalf,
		ProgramWeeks:        16,
		TrainingDaysPerWeek: 4,
		RestDays:            []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday},
		LongRunDay:          domain.Sunday,
		DeloadFrequency:     4,
		Experience:          domain.ExperienceIntermediate,
	}
}

func TestValidateConfiguration_Valid(t *testing.T) {
	result := ValidateConfiguration(validConfig())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.PlanConfiguration)
		fragment string
	}{
		{
			name:     "unknown race distance",
			mutate:   func(c *domain.PlanConfiguration) { c.RaceDistance = "ultra" },
			fragment: "race distance",
		},
		{
			name:     "unknown experience level",
			mutate:   func(c *domain.PlanConfiguration) { c.Experience = "elite" },
			fragment: "experience level",
		},
		{
			name:     "program too short",
			mutate:   func(c *domain.PlanConfiguration) { c.ProgramWeeks = 5 },
			fragment: "program length",
		},
		{
			name:     "program too long",
			mutate:   func(c *domain.PlanConfiguration) { c.ProgramWeeks = 25 },
			fragment: "program length",
		},
		{
			name:     "too few training days",
			mutate:   func(c *domain.PlanConfiguration) { c.TrainingDaysPerWeek = 2 },
			fragment: "training days",
		},
		{
			name:     "too many training days",
			mutate:   func(c *domain.PlanConfiguration) { c.TrainingDaysPerWeek = 8 },
			fragment: "training days",
		},
		{
			name: "rest day count mismatch",
			mutate: func(c *domain.PlanConfiguration) {
				c.RestDays = []domain.Weekday{domain.Monday, domain.Wednesday}
			},
			fragment: "rest day count",
		},
		{
			name: "duplicate rest day",
			mutate: func(c *domain.PlanConfiguration) {
				c.RestDays = []domain.Weekday{domain.Monday, domain.Monday, domain.Friday}
			},
			fragment: "duplicate rest day",
		},
		{
			name: "rest day out of range",
			mutate: func(c *domain.PlanConfiguration) {
				c.RestDays = []domain.Weekday{domain.Monday, domain.Wednesday, domain.Weekday(9)}
			},
			fragment: "invalid rest day",
		},
		{
			name: "long run on a rest day",
			mutate: func(c *domain.PlanConfiguration) {
				c.RestDays = []domain.Weekday{domain.Monday, domain.Wednesday, domain.Sunday}
			},
			fragment: "cannot be a rest day",
		},
		{
			name:     "long run day out of range",
			mutate:   func(c *domain.PlanConfiguration) { c.LongRunDay = domain.Weekday(-3) },
			fragment: "long run day",
		},
		{
			name:     "deload frequency out of range",
			mutate:   func(c *domain.PlanConfiguration) { c.DeloadFrequency = 5 },
			fragment: "deload frequency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			result := ValidateConfiguration(config)
			assert.False(t, result.IsValid)
			assertErrorContains(t, result.Errors, tt.fragment)
		})
	}
}

func assertErrorContains(t *testing.T, errors []string, fragment string) {
	t.Helper()
	for _, e := range errors {
		if strings.Contains(e, fragment) {
			return
		}
	}
	t.Errorf("no error mentions %q: %v", fragment, errors)
}

func TestValidateConfiguration_Warnings(t *testing.T) {
	t.Run("program below recommended minimum for the race", func(t *testing.T) {
		config := validConfig()
		config.RaceDistance = domain.RaceMarathon
		config.ProgramWeeks = 10

		result := ValidateConfiguration(config)
		require.True(t, result.IsValid)
		warning := findWarning(t, result.Warnings, "recommended minimum")
		assert.Equal(t, domain.SeverityHigh, warning.Severity)
	})

	t.Run("minimum training days", func(t *testing.T) {
		config := validConfig()
		config.TrainingDaysPerWeek = 3
		config.RestDays = []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Friday}

		result := ValidateConfiguration(config)
		require.True(t, result.IsValid)
		warning := findWarning(t, result.Warnings, "minimum for meaningful progression")
		assert.Equal(t, domain.SeverityMedium, warning.Severity)
	})

	t.Run("six or more training days", func(t *testing.T) {
		config := validConfig()
		config.TrainingDaysPerWeek = 6
		config.RestDays = []domain.Weekday{domain.Monday}

		result := ValidateConfiguration(config)
		require.True(t, result.IsValid)
		warning := findWarning(t, result.Warnings, "injury risk")
		assert.Equal(t, domain.SeverityHigh, warning.Severity)
	})

	t.Run("weekday long run", func(t *testing.T) {
		config := validConfig()
		config.LongRunDay = domain.Tuesday

		result := ValidateConfiguration(config)
		require.True(t, result.IsValid)
		warning := findWarning(t, result.Warnings, "weekend long runs")
		assert.Equal(t, domain.SeverityLow, warning.Severity)
	})

	t.Run("dense schedule in a short program", func(t *testing.T) {
		config := validConfig()
		config.RaceDistance = domain.Race5K
		config.ProgramWeeks = 7
		config.TrainingDaysPerWeek = 6
		config.RestDays = []domain.Weekday{domain.Monday}

		result := ValidateConfiguration(config)
		require.True(t, result.IsValid)
		findWarning(t, result.Warnings, "compresses adaptation")
	})

	t.Run("overlong 5K plan", func(t *testing.T) {
		config := validConfig()
		config.RaceDistance = domain.Race5K
		config.ProgramWeeks = 20

		result := ValidateConfiguration(config)
		require.True(t, result.IsValid)
		warning := findWarning(t, result.Warnings, "plateau")
		assert.Equal(t, domain.SeverityMedium, warning.Severity)
	})
}

func findWarning(t *testing.T, warnings []domain.ValidationWarning, fragment string) domain.ValidationWarning {
	t.Helper()
	for _, w := range warnings {
		if strings.Contains(w.Message, fragment) {
			return w
		}
	}
	t.Fatalf("no warning mentions %q: %v", fragment, warnings)
	return domain.ValidationWarning{}
}
