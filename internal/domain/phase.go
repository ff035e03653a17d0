// internal/domain/phase.go
package domain

// Phase identifies one of the four sequential training phases.
type Phase string

const (
	PhaseBase  Phase = "base"
	PhaseBuild Phase = "build"
	PhasePeak  Phase = "peak"
	PhaseTaper Phase = "taper"
)

// PhaseOrder lists the phases in their fixed chronological order.
var PhaseOrder = []Phase{PhaseBase, PhaseBuild, PhasePeak, PhaseTaper}

// PhaseConfiguration describes one contiguous block of training weeks.
// Start and end weeks are 1-indexed and inclusive.
type PhaseConfiguration struct {
	Phase           Phase    `bson:"phase" json:"phase"`
	StartWeek       int      `bson:"startWeek" json:"startWeek"`
	EndWeek         int      `bson:"endWeek" json:"endWeek"`
	Duration        int      `bson:"duration" json:"duration"`
	Percentage      float64  `bson:"percentage" json:"percentage"` // Share of the total program this phase targets
	Focus           string   `bson:"focus" json:"focus"`
	Characteristics []string `bson:"characteristics" json:"characteristics"`
	WorkoutEmphasis []string `bson:"workoutEmphasis" json:"workoutEmphasis"`
}

// Contains reports whether the 1-indexed week falls inside this phase.
func (p PhaseConfiguration) Contains(week int) bool {
	return week >= p.StartWeek && week <= p.EndWeek
}

// PhaseTransition marks the boundary between two adjacent phases and carries
// display-only guidance for the athlete. It has no scheduling effect.
type PhaseTransition struct {
	FromPhase  Phase  `bson:"fromPhase" json:"fromPhase"`
	ToPhase    Phase  `bson:"toPhase" json:"toPhase"`
	Week       int    `bson:"week" json:"week"` // First week of the destination phase
	Adjustment string `bson:"adjustment" json:"adjustment"`
	Caution    string `bson:"caution,omitempty" json:"caution,omitempty"`
}

// PhasePeriodization is the full phase breakdown of a program. Phases are
// contiguous, non-overlapping, start at week 1, and their durations sum to
// TotalWeeks.
type PhasePeriodization struct {
	TotalWeeks  int                  `bson:"totalWeeks" json:"totalWeeks"`
	Phases      []PhaseConfiguration `bson:"phases" json:"phases"`
	Transitions []PhaseTransition    `bson:"transitions" json:"transitions"`
}
