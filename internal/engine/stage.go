package engine

import "strings"

// Stage is the competition phase, ordered from group stage to the final.
type Stage int

const (
	StageGroup Stage = iota
	StageRound16
	StageQuarter
	StageSemi
	StageFinal
)

// stageImportance is a total lookup table; every Stage value has an entry.
var stageImportance = map[Stage]float64{
	StageGroup:   6,
	StageRound16: 7,
	StageQuarter: 8,
	StageSemi:    9,
	StageFinal:   10,
}

var stageNames = map[Stage]string{
	StageGroup:   "group",
	StageRound16: "round16",
	StageQuarter: "quarter",
	StageSemi:    "semi",
	StageFinal:   "final",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "group"
}

// Importance returns the stage's weight on the 6..10 scale used by the
// feature vector.
func (s Stage) Importance() float64 {
	if imp, ok := stageImportance[s]; ok {
		return imp
	}
	return stageImportance[StageGroup]
}

// Knockout reports whether the stage is an elimination round.
func (s Stage) Knockout() bool {
	return s > StageGroup
}

// ParseStage maps free-text stage labels onto the enum. Matching is
// case-insensitive and tolerant of the common spellings ("Round of 16",
// "quarter-final", "SEMI FINALS"); anything unrecognized is the group stage.
func ParseStage(label string) Stage {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "final") && !strings.Contains(l, "semi") &&
		!strings.Contains(l, "quarter") && !strings.Contains(l, "16"):
		return StageFinal
	case strings.Contains(l, "semi"):
		return StageSemi
	case strings.Contains(l, "quarter"):
		return StageQuarter
	case strings.Contains(l, "16") || strings.Contains(l, "round of"):
		return StageRound16
	default:
		return StageGroup
	}
}

// StageForMatchday maps a matchday index onto the phase sequence: six group
// matchdays, then two-legged knockout rounds, then the final.
func StageForMatchday(matchday int) Stage {
	switch {
	case matchday <= 6:
		return StageGroup
	case matchday <= 8:
		return StageRound16
	case matchday <= 10:
		return StageQuarter
	case matchday <= 12:
		return StageSemi
	default:
		return StageFinal
	}
}
