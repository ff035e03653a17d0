// internal/planner/distribution.go
package planner

import (
	"fmt"
	"math"

	"alcyxob/run-planner/internal/domain"
)

// workoutPattern is the fixed weekly workout mix for a training-day count.
// Every week has exactly one long run; weeks with 4+ training days carry one
// quality session.
type workoutPattern struct {
	Easy    int
	Long    int
	Quality int
}

var weeklyPatterns = map[int]workoutPattern{
	3: {Easy: 2, Long: 1, Quality: 0},
	4: {Easy: 2, Long: 1, Quality: 1},
	5: {Easy: 3, Long: 1, Quality: 1},
	6: {Easy: 4, Long: 1, Quality: 1},
	7: {Easy: 5, Long: 1, Quality: 1},
}

// distanceMultipliers scale the per-day share of weekly distance for each
// workout category. Multipliers grow with race distance; marathon long runs
// get the largest factor.
var distanceMultipliers = map[domain.RaceDistance]map[domain.WorkoutType]float64{
	domain.Race5K:       {domain.WorkoutEasy: 0.90, domain.WorkoutQuality: 0.95, domain.WorkoutLong: 1.40},
	domain.Race10K:      {domain.WorkoutEasy: 0.90, domain.WorkoutQuality: 1.00, domain.WorkoutLong: 1.60},
	domain.RaceHalf:     {domain.WorkoutEasy: 0.95, domain.WorkoutQuality: 1.05, domain.WorkoutLong: 1.90},
	domain.RaceMarathon: {domain.WorkoutEasy: 1.00, domain.WorkoutQuality: 1.10, domain.WorkoutLong: 2.20},
}

// minimumDistances are absolute per-workout floors in kilometres, applied
// after the multiplier regardless of the computed value.
var minimumDistances = map[domain.WorkoutType]float64{
	domain.WorkoutEasy:    3,
	domain.WorkoutQuality: 4,
	domain.WorkoutLong:    8,
}

// paceAssumptions convert distance to duration, in minutes per kilometre.
var paceAssumptions = map[domain.WorkoutType]float64{
	domain.WorkoutEasy:    6.2,
	domain.WorkoutQuality: 5.0,
	domain.WorkoutLong:    6.5,
}

// easyShareFloor approximates the 80/20 polarization rule: easy-intensity
// sessions (easy + long) should make up at least this share of training days.
const easyShareFloor = 0.6

// qualityGuidance is the phase-dependent framing for the week's quality
// session. The distance/duration math is identical across phases.
var qualityGuidance = map[domain.Phase]struct {
	Description  string
	PaceGuidance string
}{
	domain.PhaseBase: {
		Description:  "Controlled quality session; effort stays comfortable while the aerobic base builds.",
		PaceGuidance: "Finish knowing you could have done more. Roughly marathon effort.",
	},
	domain.PhaseBuild: {
		Description:  "Structured quality session building race-specific fitness.",
		PaceGuidance: "Comfortably hard: sustainable for the session, conversational only in short bursts.",
	},
	domain.PhasePeak: {
		Description:  "Sharpening session at or near goal race pace.",
		PaceGuidance: "Hit goal race pace on the work segments; full recovery between them.",
	},
	domain.PhaseTaper: {
		Description:  "Short sharpening touch to stay crisp without accumulating fatigue.",
		PaceGuidance: "Brief pickups at race pace; stop while feeling fresh.",
	},
}

var easyGuidance = map[domain.Phase]string{
	domain.PhaseBase:  "Relaxed conversational pace. These runs build the engine.",
	domain.PhaseBuild: "Keep easy days genuinely easy so quality days can be hard.",
	domain.PhasePeak:  "Easy means easy: these runs are recovery between key sessions.",
	domain.PhaseTaper: "Short and gentle. The work is done.",
}

var longGuidance = map[domain.Phase]string{
	domain.PhaseBase:  "Steady and unhurried; walk breaks are fine if needed.",
	domain.PhaseBuild: "Steady throughout, with the last quarter at a purposeful effort.",
	domain.PhasePeak:  "Include a mid-run block at goal race pace.",
	domain.PhaseTaper: "A shortened long run to keep the rhythm without the fatigue.",
}

// DistributeWeek turns a week's distance budget into an un-scheduled bag of
// typed workouts sized by the race-specific multipliers. The quality
// workout's sub-type is assigned later by the scheduler's rotation.
func DistributeWeek(config domain.PlanConfiguration, week int, weeklyDistance float64, phase domain.Phase) domain.WeeklyDistribution {
	pattern, ok := weeklyPatterns[config.TrainingDaysPerWeek]
	if !ok {
		// Out-of-range day counts are caught by configuration validation;
		// fall back to the sparsest pattern rather than panic.
		pattern = weeklyPatterns[3]
	}

	perDay := weeklyDistance / float64(config.TrainingDaysPerWeek)
	multipliers := distanceMultipliers[config.RaceDistance]

	distribution := domain.WeeklyDistribution{
		Week:         week,
		EasyCount:    pattern.Easy,
		LongCount:    pattern.Long,
		QualityCount: pattern.Quality,
		RestCount:    7 - config.TrainingDaysPerWeek,
	}

	for i := 0; i < pattern.Easy; i++ {
		distribution.Workouts = append(distribution.Workouts,
			buildWorkout(domain.WorkoutEasy, perDay, multipliers, phase))
	}
	for i := 0; i < pattern.Quality; i++ {
		distribution.Workouts = append(distribution.Workouts,
			buildWorkout(domain.WorkoutQuality, perDay, multipliers, phase))
	}
	for i := 0; i < pattern.Long; i++ {
		distribution.Workouts = append(distribution.Workouts,
			buildWorkout(domain.WorkoutLong, perDay, multipliers, phase))
	}

	for _, w := range distribution.Workouts {
		distribution.TotalDistance += w.Distance
	}
	distribution.TotalDistance = math.Round(distribution.TotalDistance*10) / 10
	return distribution
}

func buildWorkout(workoutType domain.WorkoutType, perDayDistance float64, multipliers map[domain.WorkoutType]float64, phase domain.Phase) domain.Workout {
	distance := perDayDistance * multipliers[workoutType]
	if min := minimumDistances[workoutType]; distance < min {
		distance = min
	}
	distance = math.Round(distance*10) / 10
	duration := int(math.Round(distance * paceAssumptions[workoutType]))

	workout := domain.Workout{
		Type:     workoutType,
		Distance: distance,
		Duration: duration,
	}

	switch workoutType {
	case domain.WorkoutEasy:
		workout.Intensity = domain.Zone2
		workout.Description = fmt.Sprintf("Easy run, %.1f km", distance)
		workout.PaceGuidance = easyGuidance[phase]
	case domain.WorkoutLong:
		workout.Intensity = domain.Zone2
		workout.Description = fmt.Sprintf("Long run, %.1f km", distance)
		workout.PaceGuidance = longGuidance[phase]
	case domain.WorkoutQuality:
		guide := qualityGuidance[phase]
		workout.Intensity = domain.Zone4
		workout.Description = guide.Description
		workout.PaceGuidance = guide.PaceGuidance
	}
	return workout
}

// ValidateDistribution sanity-checks a week's workout mix: a long run must
// exist and at least three days must be trained (errors); intensity
// polarization, excessive quality volume, and a missing rest day are
// advisory.
func ValidateDistribution(distribution domain.WeeklyDistribution) domain.ValidationResult {
	result := domain.NewValidationResult()

	trainingDays := distribution.EasyCount + distribution.LongCount + distribution.QualityCount
	if trainingDays < MinTrainingDays {
		result.AddError(fmt.Sprintf("week %d has only %d training days; %d is the minimum",
			distribution.Week, trainingDays, MinTrainingDays))
	}
	if distribution.LongCount == 0 {
		result.AddError(fmt.Sprintf("week %d has no long run", distribution.Week))
	}
	if trainingDays > 0 {
		easyShare := float64(distribution.EasyCount+distribution.LongCount) / float64(trainingDays)
		if easyShare < easyShareFloor {
			result.AddWarning(fmt.Sprintf("week %d runs only %.0f%% of sessions at easy intensity; aim for 80/20",
				distribution.Week, easyShare*100), domain.SeverityMedium)
		}
	}
	if distribution.QualityCount > 2 {
		result.AddWarning(fmt.Sprintf("week %d has %d quality sessions; more than 2 compromises recovery",
			distribution.Week, distribution.QualityCount), domain.SeverityMedium)
	}
	if distribution.RestCount == 0 {
		result.AddWarning(fmt.Sprintf("week %d has no rest day", distribution.Week), domain.SeverityMedium)
	}

	return result
}
