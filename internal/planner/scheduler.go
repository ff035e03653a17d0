// internal/planner/scheduler.go
package planner

import (
	"fmt"

	"alcyxob/run-planner/internal/domain"
)

// minRecoveryDays is the minimum circular day separation between two
// high-intensity sessions (48 hours).
const minRecoveryDays = 2

// qualityRotationCycle is the fixed 5-week quality sub-type rotation.
var qualityRotationCycle = []domain.QualityType{
	domain.QualityTempo,
	domain.QualityThreshold,
	domain.QualityIntervals,
	domain.QualityHills,
	domain.QualityFartlek,
}

// qualityTypeDetails gives each rotation sub-type its structure and pace
// framing, appended to the phase-level guidance the distributor set.
var qualityTypeDetails = map[domain.QualityType]struct {
	Description  string
	PaceGuidance string
}{
	domain.QualityTempo: {
		Description:  "Tempo run: sustained comfortably-hard effort in the middle of the session.",
		PaceGuidance: "Around one-hour race effort; smooth and controlled.",
	},
	domain.QualityThreshold: {
		Description:  "Threshold repeats: longer intervals at the lactate-clearing edge.",
		PaceGuidance: "Roughly 10K to half-marathon effort with short jog recoveries.",
	},
	domain.QualityIntervals: {
		Description:  "Interval session: shorter, faster repeats with generous recovery.",
		PaceGuidance: "Around 5K effort; end each repeat with one more in the tank.",
	},
	domain.QualityHills: {
		Description:  "Hill repeats: strong uphill efforts, easy jog back down.",
		PaceGuidance: "Hard but tall and relaxed uphill; effort, not pace, is the target.",
	},
	domain.QualityFartlek: {
		Description:  "Fartlek: unstructured surges inside a continuous run.",
		PaceGuidance: "Mix surge lengths freely; keep the floats genuinely easy.",
	},
}

// SchedulingConstraints are the fixed placement rules for a week.
type SchedulingConstraints struct {
	RestDays        []domain.Weekday
	LongRunDay      domain.Weekday
	TrainingDays    int
	MinRecoveryDays int // Zero means the 48-hour default
}

// ConstraintsFromConfig derives the weekly scheduling constraints from a
// plan configuration.
func ConstraintsFromConfig(config domain.PlanConfiguration) SchedulingConstraints {
	return SchedulingConstraints{
		RestDays:     config.RestDays,
		LongRunDay:   config.LongRunDay,
		TrainingDays: config.TrainingDaysPerWeek,
	}
}

func (c SchedulingConstraints) isRestDay(day domain.Weekday) bool {
	for _, d := range c.RestDays {
		if d == day {
			return true
		}
	}
	return false
}

func (c SchedulingConstraints) recoveryDays() int {
	if c.MinRecoveryDays > 0 {
		return c.MinRecoveryDays
	}
	return minRecoveryDays
}

// RotationForWeek returns the quality sub-type active for a 1-indexed week
// and the sub-type the cycle moves to the following week.
func RotationForWeek(week int) domain.QualityRotation {
	index := (week - 1) % len(qualityRotationCycle)
	next := (index + 1) % len(qualityRotationCycle)
	return domain.QualityRotation{
		QualityType:  qualityRotationCycle[index],
		NextRotation: qualityRotationCycle[next],
	}
}

// ScheduleWeek places a week's workout bag onto concrete days. The long run
// lands unconditionally on the configured day; the quality session prefers a
// day at least two days (circularly) from the long run; easy runs fill the
// remaining training days in ascending day order. A non-nil error means the
// constraints themselves are infeasible and nothing was placed; constraint
// violations found after placement mark the week unsuccessful but still
// return the schedule for inspection.
func ScheduleWeek(week int, constraints SchedulingConstraints, distribution domain.WeeklyDistribution, phase domain.Phase) (domain.ScheduledWeek, error) {
	scheduled := domain.ScheduledWeek{
		Week:     week,
		Rotation: RotationForWeek(week),
	}

	// Step 1: the constraints must be jointly satisfiable before anything
	// is placed.
	if err := checkFeasibility(constraints); err != nil {
		scheduled.Violations = append(scheduled.Violations, err.Error())
		return scheduled, err
	}

	// Step 2: initialize the seven days, marking configured rest days.
	for day := domain.Monday; day <= domain.Sunday; day++ {
		scheduled.Days[day] = domain.ScheduledDay{
			Day:    day,
			IsRest: constraints.isRestDay(day),
		}
	}

	// Step 3: the long run goes on its configured day unconditionally.
	easy, quality, long := splitByType(distribution.Workouts)
	if long != nil {
		w := *long
		scheduled.Days[constraints.LongRunDay].Workout = &w
	}

	// Steps 4-5: resolve the rotation sub-type and place the quality
	// session on the best available day.
	if quality != nil {
		enriched := enrichQualityWorkout(*quality, scheduled.Rotation.QualityType)
		placeQualityWorkout(&scheduled, constraints, enriched)
	}

	// Step 6: fill remaining training days with easy runs in day order.
	placeEasyWorkouts(&scheduled, constraints, easy)

	// Step 7: validate the finished schedule.
	validateSchedule(&scheduled, constraints)
	scheduled.Success = len(scheduled.Violations) == 0
	return scheduled, nil
}

func checkFeasibility(constraints SchedulingConstraints) error {
	available := 7 - len(constraints.RestDays)
	if available < constraints.TrainingDays {
		return fmt.Errorf("not enough available days: %d training days requested but only %d non-rest days exist",
			constraints.TrainingDays, available)
	}
	if constraints.isRestDay(constraints.LongRunDay) {
		return fmt.Errorf("long run day %s is configured as a rest day", constraints.LongRunDay)
	}
	return nil
}

func splitByType(workouts []domain.Workout) (easy []domain.Workout, quality, long *domain.Workout) {
	for i := range workouts {
		switch workouts[i].Type {
		case domain.WorkoutEasy:
			easy = append(easy, workouts[i])
		case domain.WorkoutQuality:
			if quality == nil {
				w := workouts[i]
				quality = &w
			} else {
				// Extra quality sessions beyond the first schedule as easy
				// slots would; keep them in the easy pool so nothing is
				// silently dropped.
				easy = append(easy, workouts[i])
			}
		case domain.WorkoutLong:
			if long == nil {
				w := workouts[i]
				long = &w
			}
		}
	}
	return easy, quality, long
}

// enrichQualityWorkout stamps the week's rotation sub-type onto the quality
// session, prepending the sub-type structure to the phase guidance the
// distributor already attached.
func enrichQualityWorkout(workout domain.Workout, qualityType domain.QualityType) domain.Workout {
	details := qualityTypeDetails[qualityType]
	workout.QualityType = qualityType
	workout.Description = details.Description + " " + workout.Description
	workout.PaceGuidance = details.PaceGuidance + " " + workout.PaceGuidance
	return workout
}

// placeQualityWorkout prefers the first open non-rest day at least the
// recovery distance (circularly) from the long run; failing that, the first
// open non-rest day; failing that, the session goes unplaced with a note.
func placeQualityWorkout(scheduled *domain.ScheduledWeek, constraints SchedulingConstraints, workout domain.Workout) {
	var fallback *domain.Weekday
	for day := domain.Monday; day <= domain.Sunday; day++ {
		slot := scheduled.Days[day]
		if slot.IsRest || slot.Workout != nil {
			continue
		}
		if domain.DaysBetween(day, constraints.LongRunDay) >= constraints.recoveryDays() {
			w := workout
			scheduled.Days[day].Workout = &w
			return
		}
		if fallback == nil {
			d := day
			fallback = &d
		}
	}
	if fallback != nil {
		w := workout
		scheduled.Days[*fallback].Workout = &w
		scheduled.Notes = append(scheduled.Notes, fmt.Sprintf(
			"quality session on %s sits within %d days of the long run; no better slot was available",
			*fallback, constraints.recoveryDays()))
		return
	}
	scheduled.Notes = append(scheduled.Notes,
		"quality session could not be placed: no unoccupied training day remained")
}

// placeEasyWorkouts distributes easy runs over open non-rest days in
// ascending order, stopping when the supply or the configured training-day
// count is exhausted. Surplus workouts are reported, never dropped silently.
func placeEasyWorkouts(scheduled *domain.ScheduledWeek, constraints SchedulingConstraints, easy []domain.Workout) {
	next := 0
	for day := domain.Monday; day <= domain.Sunday && next < len(easy); day++ {
		if scheduled.TrainingDayCount() >= constraints.TrainingDays {
			break
		}
		slot := scheduled.Days[day]
		if slot.IsRest || slot.Workout != nil {
			continue
		}
		w := easy[next]
		scheduled.Days[day].Workout = &w
		next++
	}
	if surplus := len(easy) - next; surplus > 0 {
		scheduled.Notes = append(scheduled.Notes,
			fmt.Sprintf("%d easy workout(s) could not be placed this week", surplus))
	}
}

// validateSchedule checks the finished week: training-day count matches the
// configuration, configured rest days stay unworked, and no two quality
// sessions sit closer than the recovery window.
func validateSchedule(scheduled *domain.ScheduledWeek, constraints SchedulingConstraints) {
	if worked := scheduled.TrainingDayCount(); worked != constraints.TrainingDays {
		scheduled.Violations = append(scheduled.Violations, fmt.Sprintf(
			"scheduled %d training days but configuration requires %d", worked, constraints.TrainingDays))
	}

	for _, rest := range constraints.RestDays {
		if rest.IsValid() && scheduled.Days[rest].Workout != nil {
			scheduled.Violations = append(scheduled.Violations, fmt.Sprintf(
				"configured rest day %s has a workout scheduled", rest))
		}
	}

	var qualityDays []domain.Weekday
	for day := domain.Monday; day <= domain.Sunday; day++ {
		if w := scheduled.Days[day].Workout; w != nil && w.Type == domain.WorkoutQuality {
			qualityDays = append(qualityDays, day)
		}
	}
	for i := 0; i < len(qualityDays); i++ {
		for j := i + 1; j < len(qualityDays); j++ {
			if domain.DaysBetween(qualityDays[i], qualityDays[j]) < constraints.recoveryDays() {
				scheduled.Violations = append(scheduled.Violations, fmt.Sprintf(
					"quality sessions on %s and %s are under the %d-day recovery minimum",
					qualityDays[i], qualityDays[j], constraints.recoveryDays()))
			}
		}
	}
}
