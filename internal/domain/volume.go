// internal/domain/volume.go
package domain

// WeeklyVolume is the computed training distance for one week of the program.
// BaseDistance is the raw progression target before clamping; AdjustedDistance
// is the final whole-kilometre value the distributor works from.
type WeeklyVolume struct {
	Week             int      `bson:"week" json:"week"`
	BaseDistance     float64  `bson:"baseDistance" json:"baseDistance"`
	AdjustedDistance float64  `bson:"adjustedDistance" json:"adjustedDistance"`
	IsDeload         bool     `bson:"isDeload" json:"isDeload"`
	AppliedRate      float64  `bson:"appliedRate" json:"appliedRate"` // Week-over-week progression rate actually applied
	Notes            []string `bson:"notes,omitempty" json:"notes,omitempty"`
}
