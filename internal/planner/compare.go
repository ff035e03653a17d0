// internal/planner/compare.go
package planner

import (
	"fmt"
	"sort"
	"strings"

	"alcyxob/run-planner/internal/domain"
)

// ImpactLevel grades how strongly a configuration change reshapes a plan.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// ConfigChange is one field-level difference between two configurations.
type ConfigChange struct {
	Field       string      `json:"field"`
	OldValue    string      `json:"oldValue"`
	NewValue    string      `json:"newValue"`
	Impact      ImpactLevel `json:"impact"`
	Description string      `json:"description"`
}

// ComparisonReport lists configuration differences between two plans with
// per-change impact classification and readable descriptions.
type ComparisonReport struct {
	PlanAID      string         `json:"planAId"`
	PlanBID      string         `json:"planBId"`
	Changes      []ConfigChange `json:"changes,omitempty"`
	Descriptions []string       `json:"descriptions,omitempty"`
}

// HighestImpact returns the strongest impact level among the changes, or
// ImpactLow for an empty change set.
func (r ComparisonReport) HighestImpact() ImpactLevel {
	highest := ImpactLow
	for _, c := range r.Changes {
		switch c.Impact {
		case ImpactHigh:
			return ImpactHigh
		case ImpactMedium:
			highest = ImpactMedium
		}
	}
	return highest
}

func (r ComparisonReport) countImpact(level ImpactLevel) int {
	count := 0
	for _, c := range r.Changes {
		if c.Impact == level {
			count++
		}
	}
	return count
}

// ComparePlans diffs two plans' originating configurations field by field.
func ComparePlans(planA, planB domain.TrainingPlan) ComparisonReport {
	report := ComparisonReport{PlanAID: planA.ID, PlanBID: planB.ID}
	report.Changes = DiffConfigurations(planA.Configuration, planB.Configuration)
	for _, c := range report.Changes {
		report.Descriptions = append(report.Descriptions, c.Description)
	}
	return report
}

// DiffConfigurations computes field-level changes from old to new. Race
// distance and program length are high impact (the whole plan reshapes);
// rest days, long-run day, deload cadence, and training-day jumps of more
// than one are medium; everything else is low.
func DiffConfigurations(oldCfg, newCfg domain.PlanConfiguration) []ConfigChange {
	var changes []ConfigChange

	if oldCfg.RaceDistance != newCfg.RaceDistance {
		changes = append(changes, ConfigChange{
			Field:    "raceDistance",
			OldValue: string(oldCfg.RaceDistance),
			NewValue: string(newCfg.RaceDistance),
			Impact:   ImpactHigh,
			Description: fmt.Sprintf("goal race changed from %s to %s; phase structure and volumes rebuild from scratch",
				oldCfg.RaceDistance, newCfg.RaceDistance),
		})
	}
	if oldCfg.ProgramWeeks != newCfg.ProgramWeeks {
		changes = append(changes, ConfigChange{
			Field:    "programWeeks",
			OldValue: fmt.Sprintf("%d", oldCfg.ProgramWeeks),
			NewValue: fmt.Sprintf("%d", newCfg.ProgramWeeks),
			Impact:   ImpactHigh,
			Description: fmt.Sprintf("program length changed from %d to %d weeks; periodization recomputes",
				oldCfg.ProgramWeeks, newCfg.ProgramWeeks),
		})
	}
	if oldCfg.TrainingDaysPerWeek != newCfg.TrainingDaysPerWeek {
		impact := ImpactLow
		diff := newCfg.TrainingDaysPerWeek - oldCfg.TrainingDaysPerWeek
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			impact = ImpactMedium
		}
		changes = append(changes, ConfigChange{
			Field:    "trainingDaysPerWeek",
			OldValue: fmt.Sprintf("%d", oldCfg.TrainingDaysPerWeek),
			NewValue: fmt.Sprintf("%d", newCfg.TrainingDaysPerWeek),
			Impact:   impact,
			Description: fmt.Sprintf("training days per week changed from %d to %d",
				oldCfg.TrainingDaysPerWeek, newCfg.TrainingDaysPerWeek),
		})
	}
	if !sameRestDays(oldCfg.RestDays, newCfg.RestDays) {
		changes = append(changes, ConfigChange{
			Field:    "restDays",
			OldValue: formatDays(oldCfg.RestDays),
			NewValue: formatDays(newCfg.RestDays),
			Impact:   ImpactMedium,
			Description: fmt.Sprintf("rest days changed from [%s] to [%s]; weekly placements move",
				formatDays(oldCfg.RestDays), formatDays(newCfg.RestDays)),
		})
	}
	if oldCfg.LongRunDay != newCfg.LongRunDay {
		changes = append(changes, ConfigChange{
			Field:    "longRunDay",
			OldValue: oldCfg.LongRunDay.String(),
			NewValue: newCfg.LongRunDay.String(),
			Impact:   ImpactMedium,
			Description: fmt.Sprintf("long run moves from %s to %s", oldCfg.LongRunDay, newCfg.LongRunDay),
		})
	}
	if oldCfg.DeloadFrequency != newCfg.DeloadFrequency {
		changes = append(changes, ConfigChange{
			Field:    "deloadFrequency",
			OldValue: fmt.Sprintf("%d", oldCfg.DeloadFrequency),
			NewValue: fmt.Sprintf("%d", newCfg.DeloadFrequency),
			Impact:   ImpactMedium,
			Description: fmt.Sprintf("deload cadence changed from every %d to every %d weeks",
				oldCfg.DeloadFrequency, newCfg.DeloadFrequency),
		})
	}
	if oldCfg.EffectiveExperience() != newCfg.EffectiveExperience() {
		changes = append(changes, ConfigChange{
			Field:    "experience",
			OldValue: string(oldCfg.EffectiveExperience()),
			NewValue: string(newCfg.EffectiveExperience()),
			Impact:   ImpactLow,
			Description: fmt.Sprintf("experience level changed from %s to %s; volume tables rescale",
				oldCfg.EffectiveExperience(), newCfg.EffectiveExperience()),
		})
	}

	return changes
}

func sameRestDays(a, b []domain.Weekday) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]domain.Weekday(nil), a...)
	bs := append([]domain.Weekday(nil), b...)
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	sort.Slice(bs, func(i, j int) bool { return bs[i] < bs[j] })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func formatDays(days []domain.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
