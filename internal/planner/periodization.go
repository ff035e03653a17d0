// internal/planner/periodization.go
package planner

import (
	"fmt"
	"math"

	"alcyxob/run-planner/internal/domain"
)

// phaseSplit is the fraction of total program weeks each phase targets for a
// race distance. Each distance's fractions sum to 1.0. Longer races weight
// the base phase heavier; shorter races weight build heavier.
var phaseSplits = map[domain.RaceDistance]map[domain.Phase]float64{
	domain.Race5K: {
		domain.PhaseBase:  0.25,
		domain.PhaseBuild: 0.40,
		domain.PhasePeak:  0.20,
		domain.PhaseTaper: 0.15,
	},
	domain.Race10K: {
		domain.PhaseBase:  0.30,
		domain.PhaseBuild: 0.35,
		domain.PhasePeak:  0.20,
		domain.PhaseTaper: 0.15,
	},
	domain.RaceHalf: {
		domain.PhaseBase:  0.35,
		domain.PhaseBuild: 0.30,
		domain.PhasePeak:  0.20,
		domain.PhaseTaper: 0.15,
	},
	domain.RaceMarathon: {
		domain.PhaseBase:  0.40,
		domain.PhaseBuild: 0.30,
		domain.PhasePeak:  0.20,
		domain.PhaseTaper: 0.10,
	},
}

// phaseMinimums are the per-phase minimum durations in weeks, enforced
// whenever the program is long enough to accommodate all of them.
var phaseMinimums = map[domain.Phase]int{
	domain.PhaseBase:  3,
	domain.PhaseBuild: 3,
	domain.PhasePeak:  2,
	domain.PhaseTaper: 1,
}

// minimumsTotal is the shortest program where every phase minimum fits.
const minimumsTotal = 9

// phaseMetadata carries the fixed descriptive text attached to each phase.
// Display data only; no scheduling logic reads it.
type phaseMetadata struct {
	Focus           string
	Characteristics []string
	WorkoutEmphasis []string
}

var phaseDescriptions = map[domain.Phase]phaseMetadata{
	domain.PhaseBase: {
		Focus: "Aerobic foundation and running durability",
		Characteristics: []string{
			"High proportion of easy running",
			"Gradual weekly volume growth",
			"Strides and form work, no hard sessions",
		},
		WorkoutEmphasis: []string{"easy runs", "long runs", "strides"},
	},
	domain.PhaseBuild: {
		Focus: "Race-specific fitness through structured intensity",
		Characteristics: []string{
			"Weekly quality sessions at threshold and above",
			"Volume continues climbing toward its peak",
			"Long runs gain steady-state segments",
		},
		WorkoutEmphasis: []string{"tempo runs", "threshold intervals", "progressive long runs"},
	},
	domain.PhasePeak: {
		Focus: "Sharpening at race pace on a full aerobic base",
		Characteristics: []string{
			"Highest-intensity sessions of the program",
			"Volume holds steady or dips slightly",
			"Race-pace rehearsal inside the long run",
		},
		WorkoutEmphasis: []string{"race-pace intervals", "hill repeats", "tune-up efforts"},
	},
	domain.PhaseTaper: {
		Focus: "Recovery and freshness for race day",
		Characteristics: []string{
			"Sharply reduced volume, maintained frequency",
			"Short touches of race pace to stay sharp",
			"Extra sleep and fueling emphasis",
		},
		WorkoutEmphasis: []string{"short easy runs", "race-pace strides", "full rest"},
	},
}

// transitionGuidance is display-only advice emitted at each phase boundary.
var transitionGuidance = map[domain.Phase]struct {
	Adjustment string
	Caution    string
}{
	domain.PhaseBuild: {
		Adjustment: "Introduce one quality session per week; keep every other run easy.",
		Caution:    "Rising intensity on rising volume is where most overuse injuries start.",
	},
	domain.PhasePeak: {
		Adjustment: "Shift quality work toward goal race pace; hold weekly volume level.",
		Caution:    "Fatigue masks fitness here. Do not chase workout times.",
	},
	domain.PhaseTaper: {
		Adjustment: "Cut volume sharply but keep running on your usual days.",
		Caution:    "Feeling sluggish mid-taper is normal; resist adding sessions back.",
	},
}

// Periodize splits totalWeeks into the four training phases using the race
// distance's percentage split, enforcing per-phase minimum durations whenever
// the program is long enough to allow them and guaranteeing at least one
// week per phase otherwise. The returned phases are contiguous from week 1
// and their durations sum exactly to totalWeeks.
func Periodize(totalWeeks int, race domain.RaceDistance) (domain.PhasePeriodization, error) {
	if totalWeeks < len(domain.PhaseOrder) {
		return domain.PhasePeriodization{}, fmt.Errorf("cannot periodize %d weeks: need at least %d", totalWeeks, len(domain.PhaseOrder))
	}
	split, ok := phaseSplits[race]
	if !ok {
		return domain.PhasePeriodization{}, fmt.Errorf("no phase split defined for race distance %q", race)
	}

	durations := allocatePhaseDurations(totalWeeks, split)

	periodization := domain.PhasePeriodization{TotalWeeks: totalWeeks}
	start := 1
	for _, phase := range domain.PhaseOrder {
		duration := durations[phase]
		meta := phaseDescriptions[phase]
		periodization.Phases = append(periodization.Phases, domain.PhaseConfiguration{
			Phase:           phase,
			StartWeek:       start,
			EndWeek:         start + duration - 1,
			Duration:        duration,
			Percentage:      split[phase],
			Focus:           meta.Focus,
			Characteristics: meta.Characteristics,
			WorkoutEmphasis: meta.WorkoutEmphasis,
		})
		start += duration
	}

	periodization.Transitions = buildTransitions(periodization.Phases)
	return periodization, nil
}

// allocatePhaseDurations computes per-phase week counts: floor of the
// percentage share, raised to the phase minimum (or to 1 week for programs
// too short to fit all minimums), then reconciled so the counts sum exactly
// to totalWeeks. Rounding surplus or shortfall is absorbed by whichever of
// base/build is currently larger, preferring build on a tie; if neither can
// shed another week, peak and then taper give weeks up down to their floor.
func allocatePhaseDurations(totalWeeks int, split map[domain.Phase]float64) map[domain.Phase]int {
	floors := make(map[domain.Phase]int, len(domain.PhaseOrder))
	durations := make(map[domain.Phase]int, len(domain.PhaseOrder))
	sum := 0
	for _, phase := range domain.PhaseOrder {
		floor := 1
		if totalWeeks >= minimumsTotal {
			floor = phaseMinimums[phase]
		}
		floors[phase] = floor

		d := int(math.Floor(float64(totalWeeks) * split[phase]))
		if d < floor {
			d = floor
		}
		durations[phase] = d
		sum += d
	}

	for diff := totalWeeks - sum; diff != 0; {
		var target domain.Phase
		if diff > 0 {
			target = largerOf(durations, domain.PhaseBase, domain.PhaseBuild)
			durations[target]++
			diff--
			continue
		}
		target = shrinkTarget(durations, floors)
		durations[target]--
		diff++
	}
	return durations
}

// largerOf picks the phase with the larger current duration, preferring b on
// a tie.
func largerOf(durations map[domain.Phase]int, a, b domain.Phase) domain.Phase {
	if durations[a] > durations[b] {
		return a
	}
	return b
}

// shrinkTarget picks the phase to take a week from: the larger of base/build
// still above its floor, then peak, then taper.
func shrinkTarget(durations, floors map[domain.Phase]int) domain.Phase {
	first := largerOf(durations, domain.PhaseBase, domain.PhaseBuild)
	second := domain.PhaseBase
	if first == domain.PhaseBase {
		second = domain.PhaseBuild
	}
	for _, phase := range []domain.Phase{first, second, domain.PhasePeak, domain.PhaseTaper} {
		if durations[phase] > floors[phase] {
			return phase
		}
	}
	// All phases are at their floor; shave build anyway so the total stays
	// exact. Only reachable when total demand exceeds totalWeeks, which the
	// entry check prevents for floors of 1.
	return domain.PhaseBuild
}

func buildTransitions(phases []domain.PhaseConfiguration) []domain.PhaseTransition {
	transitions := make([]domain.PhaseTransition, 0, len(phases)-1)
	for i := 1; i < len(phases); i++ {
		guide := transitionGuidance[phases[i].Phase]
		transitions = append(transitions, domain.PhaseTransition{
			FromPhase:  phases[i-1].Phase,
			ToPhase:    phases[i].Phase,
			Week:       phases[i].StartWeek,
			Adjustment: guide.Adjustment,
			Caution:    guide.Caution,
		})
	}
	return transitions
}

// PhaseForWeek returns the phase configuration containing the 1-indexed
// week. It cannot fail for any week in [1, TotalWeeks].
func PhaseForWeek(periodization domain.PhasePeriodization, week int) (domain.PhaseConfiguration, error) {
	for _, phase := range periodization.Phases {
		if phase.Contains(week) {
			return phase, nil
		}
	}
	return domain.PhaseConfiguration{}, fmt.Errorf("week %d is outside the program (1-%d)", week, periodization.TotalWeeks)
}
