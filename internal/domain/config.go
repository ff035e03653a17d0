// internal/domain/config.go
package domain

import (
	"fmt"
	"strings"
)

// RaceDistance identifies the goal race a plan is built toward.
type RaceDistance string

const (
	Race5K       RaceDistance = "5k"
	Race10K      RaceDistance = "10k"
	RaceHalf     RaceDistance = "half_marathon"
	RaceMarathon RaceDistance = "marathon"
)

// AllRaceDistances lists the supported race distances in ascending order.
var AllRaceDistances = []RaceDistance{Race5K, Race10K, RaceHalf, RaceMarathon}

// IsValid reports whether the race distance is one of the supported values.
func (r RaceDistance) IsValid() bool {
	switch r {
	case Race5K, Race10K, RaceHalf, RaceMarathon:
		return true
	}
	return false
}

// ExperienceLevel describes the athlete's running background and scales
// starting/maximum weekly volumes.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// IsValid reports whether the experience level is a supported value.
func (e ExperienceLevel) IsValid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// Weekday is a day of the training week, Monday-first (0) through Sunday (6).
// Training plans conventionally treat Monday as the start of the week.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// String returns the lowercase English day name.
func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// IsValid reports whether the day index is within Monday..Sunday.
func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// IsWeekend reports whether the day is Saturday or Sunday.
func (d Weekday) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

// ParseWeekday converts a day name (case-insensitive) to a Weekday.
func ParseWeekday(name string) (Weekday, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == lower {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", name)
}

// DaysBetween returns the circular distance between two days of the week,
// accounting for week wrap-around. The result is symmetric and in [0, 3].
// Example: DaysBetween(Sunday, Tuesday) == 2.
func DaysBetween(a, b Weekday) int {
	diff := int(a) - int(b)
	if diff < 0 {
		diff = -diff
	}
	if wrapped := 7 - diff; wrapped < diff {
		return wrapped
	}
	return diff
}

// MarshalText implements encoding.TextMarshaler so Weekday serializes as its
// name in JSON/BSON documents rather than a bare index.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid weekday index: %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PlanConfiguration captures the user preferences a plan is generated from.
// It is treated as immutable: the generation pipeline never modifies it, and
// every generated plan carries its own copy.
type PlanConfiguration struct {
	RaceDistance        RaceDistance    `bson:"raceDistance" json:"raceDistance"`
	ProgramWeeks        int             `bson:"programWeeks" json:"programWeeks"`               // Total plan length, e.g. 6-24
	TrainingDaysPerWeek int             `bson:"trainingDaysPerWeek" json:"trainingDaysPerWeek"` // 3-7
	RestDays            []Weekday       `bson:"restDays" json:"restDays"`                       // Size must equal 7 - trainingDaysPerWeek
	LongRunDay          Weekday         `bson:"longRunDay" json:"longRunDay"`                   // Must not be a rest day
	DeloadFrequency     int             `bson:"deloadFrequency" json:"deloadFrequency"`         // Deload every N weeks (3 or 4)
	Experience          ExperienceLevel `bson:"experience,omitempty" json:"experience,omitempty"`
}

// EffectiveExperience returns the configured experience level, defaulting to
// intermediate when the optional field was left empty.
func (c PlanConfiguration) EffectiveExperience() ExperienceLevel {
	if c.Experience == "" {
		return ExperienceIntermediate
	}
	return c.Experience
}

// IsRestDay reports whether the given day is in the configured rest-day set.
func (c PlanConfiguration) IsRestDay(day Weekday) bool {
	for _, d := range c.RestDays {
		if d == day {
			return true
		}
	}
	return false
}
