// internal/domain/deload.go
package domain

// ConflictSeverity grades how badly a deload week collides with the training
// phase it lands in.
type ConflictSeverity string

const (
	ConflictLow    ConflictSeverity = "low"
	ConflictMedium ConflictSeverity = "medium"
	ConflictHigh   ConflictSeverity = "high"
)

// PhaseConflict flags a deload week that lands in (or near) a phase segment
// where reduced volume undermines the phase's purpose.
type PhaseConflict struct {
	Phase          Phase            `bson:"phase" json:"phase"`
	Severity       ConflictSeverity `bson:"severity" json:"severity"`
	Reason         string           `bson:"reason" json:"reason"`
	Recommendation string           `bson:"recommendation,omitempty" json:"recommendation,omitempty"`
}

// WorkoutModification describes how one workout category is altered on a
// deload week. Fractions are reductions: 0.25 means 25% less.
type WorkoutModification struct {
	Type              WorkoutType `bson:"type" json:"type"`
	DistanceReduction float64     `bson:"distanceReduction" json:"distanceReduction"`
	DurationReduction float64     `bson:"durationReduction" json:"durationReduction"`
	ReduceIntensity   bool        `bson:"reduceIntensity" json:"reduceIntensity"`
	Skipped           bool        `bson:"skipped" json:"skipped"` // Converted to a full rest day
}

// DeloadWeekConfiguration is the deload scheduler's verdict for one week.
type DeloadWeekConfiguration struct {
	Week            int                   `bson:"week" json:"week"`
	IsDeload        bool                  `bson:"isDeload" json:"isDeload"`
	VolumeReduction float64               `bson:"volumeReduction" json:"volumeReduction"` // Fraction of volume removed, 0.20-0.30
	Modifications   []WorkoutModification `bson:"modifications,omitempty" json:"modifications,omitempty"`
	Conflicts       []PhaseConflict       `bson:"conflicts,omitempty" json:"conflicts,omitempty"`
}

// HasBlockingConflict reports whether any phase conflict is severe enough
// that the deload must not be applied to the scheduled week.
func (d DeloadWeekConfiguration) HasBlockingConflict() bool {
	for _, c := range d.Conflicts {
		if c.Severity == ConflictHigh {
			return true
		}
	}
	return false
}
