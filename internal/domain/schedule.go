// internal/domain/schedule.go
package domain

// ScheduledDay is one day slot of a scheduled week. A rest day carries no
// workout; a training day carries exactly one.
type ScheduledDay struct {
	Day     Weekday  `bson:"day" json:"day"`
	IsRest  bool     `bson:"isRest" json:"isRest"`
	Workout *Workout `bson:"workout,omitempty" json:"workout,omitempty"`
}

// QualityRotation records which quality sub-type is active for a week and
// which one the cycle moves to next.
type QualityRotation struct {
	QualityType  QualityType `bson:"qualityType" json:"qualityType"`
	NextRotation QualityType `bson:"nextRotation" json:"nextRotation"`
}

// ScheduledWeek is a week's workout bag placed onto the seven days of the
// week. Violations mark constraint breaches discovered during placement or
// validation; a week with any violation is reported unsuccessful but the
// schedule is still returned for inspection.
type ScheduledWeek struct {
	Week       int             `bson:"week" json:"week"`
	Days       [7]ScheduledDay `bson:"days" json:"days"` // Indexed by Weekday (Monday-first)
	Rotation   QualityRotation `bson:"rotation" json:"rotation"`
	Notes      []string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Violations []string        `bson:"violations,omitempty" json:"violations,omitempty"`
	Success    bool            `bson:"success" json:"success"`
}

// TrainingDayCount returns the number of non-rest days carrying a workout.
func (w ScheduledWeek) TrainingDayCount() int {
	count := 0
	for _, d := range w.Days {
		if !d.IsRest && d.Workout != nil {
			count++
		}
	}
	return count
}

// WorkoutOn returns the workout scheduled for the given day, or nil for a
// rest day or an unfilled slot.
func (w ScheduledWeek) WorkoutOn(day Weekday) *Workout {
	if !day.IsValid() {
		return nil
	}
	return w.Days[day].Workout
}
