// internal/domain/training_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeekPlan is one fully resolved week of a training plan: the scheduled
// workouts plus the deload effects applied on top of them.
type WeekPlan struct {
	Week            int           `bson:"week" json:"week"`
	Phase           Phase         `bson:"phase" json:"phase"`
	Volume          WeeklyVolume  `bson:"volume" json:"volume"`
	Schedule        ScheduledWeek `bson:"schedule" json:"schedule"`
	IsDeload        bool          `bson:"isDeload" json:"isDeload"`
	DeloadReduction float64       `bson:"deloadReduction,omitempty" json:"deloadReduction,omitempty"`
	TotalDistance   float64       `bson:"totalDistance" json:"totalDistance"` // Kilometres actually scheduled this week
	TotalDuration   int           `bson:"totalDuration" json:"totalDuration"` // Minutes actually scheduled this week
}

// PlanSummary aggregates whole-plan statistics for display.
type PlanSummary struct {
	TotalDistance         float64                 `bson:"totalDistance" json:"totalDistance"`
	TotalWorkouts         int                     `bson:"totalWorkouts" json:"totalWorkouts"`
	WorkoutDistribution   map[WorkoutType]int     `bson:"workoutDistribution" json:"workoutDistribution"`
	PhaseDistribution     map[Phase]int           `bson:"phaseDistribution" json:"phaseDistribution"` // Weeks per phase
	AverageWeeklyDuration int                     `bson:"averageWeeklyDuration" json:"averageWeeklyDuration"`
	DeloadWeeks           []int                   `bson:"deloadWeeks,omitempty" json:"deloadWeeks,omitempty"`
}

// TrainingPlan is the complete generated plan. It is a pure value owned by
// the caller: regenerating produces a new, independent plan and never
// mutates one previously returned.
type TrainingPlan struct {
	ID            string             `bson:"planId" json:"id"` // UUID assigned at generation time
	Configuration PlanConfiguration  `bson:"configuration" json:"configuration"`
	Periodization PhasePeriodization `bson:"periodization" json:"periodization"`
	Weeks         []WeekPlan         `bson:"weeks" json:"weeks"`
	Summary       PlanSummary        `bson:"summary" json:"summary"`
	GeneratedAt   time.Time          `bson:"generatedAt" json:"generatedAt"`
}

// PlanRecord wraps a generated TrainingPlan for persistence, adding document
// identity and ownership. The embedded plan itself stays a pure value.
type PlanRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"recordId"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name      string             `bson:"name" json:"name"`
	Plan      TrainingPlan       `bson:"plan" json:"plan"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
