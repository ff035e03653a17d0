// internal/domain/workout.go
package domain

// WorkoutType is the broad workout category a day slot is filled with.
type WorkoutType string

const (
	WorkoutEasy    WorkoutType = "easy"
	WorkoutLong    WorkoutType = "long"
	WorkoutQuality WorkoutType = "quality"
	WorkoutRest    WorkoutType = "rest"
)

// QualityType is the sub-type a quality workout takes on for a given week,
// rotating on a fixed five-week cycle.
type QualityType string

const (
	QualityTempo     QualityType = "tempo"
	QualityThreshold QualityType = "threshold"
	QualityIntervals QualityType = "intervals"
	QualityHills     QualityType = "hills"
	QualityFartlek   QualityType = "fartlek"
)

// IntensityZone is a five-zone effort scale (1 = recovery, 5 = maximal).
type IntensityZone int

const (
	Zone1 IntensityZone = iota + 1
	Zone2
	Zone3
	Zone4
	Zone5
)

// Workout is a single daily session: what to run, how far, for how long, and
// the coaching guidance that goes with it.
type Workout struct {
	Type         WorkoutType   `bson:"type" json:"type"`
	QualityType  QualityType   `bson:"qualityType,omitempty" json:"qualityType,omitempty"` // Set only for quality workouts
	Distance     float64       `bson:"distance" json:"distance"`                           // Kilometres
	Duration     int           `bson:"duration" json:"duration"`                           // Minutes
	Intensity    IntensityZone `bson:"intensity" json:"intensity"`
	Description  string        `bson:"description" json:"description"`
	PaceGuidance string        `bson:"paceGuidance,omitempty" json:"paceGuidance,omitempty"`
}

// WeeklyDistribution is the un-scheduled bag of workouts for one week,
// together with category counts. Placement onto concrete days is the
// scheduler's job.
type WeeklyDistribution struct {
	Week          int       `bson:"week" json:"week"`
	EasyCount     int       `bson:"easyCount" json:"easyCount"`
	LongCount     int       `bson:"longCount" json:"longCount"`
	QualityCount  int       `bson:"qualityCount" json:"qualityCount"`
	RestCount     int       `bson:"restCount" json:"restCount"`
	Workouts      []Workout `bson:"workouts" json:"workouts"`
	TotalDistance float64   `bson:"totalDistance" json:"totalDistance"`
}
