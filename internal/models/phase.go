package models

// Phases are the idea maturity stages in order; an idea's PhaseIndex is its
// position in this slice.
var Phases = []string{
	"Idea Spark",
	"Research & Validate",
	"Plan & Strategy",
	"Build & Test",
	"Launch Ready",
}

// PhaseIndex returns the position of phase, or -1 if it is not a known stage.
func PhaseIndex(phase string) int {
	for i, p := range Phases {
		if p == phase {
			return i
		}
	}
	return -1
}

// PhaseAt returns the stage name for index and whether index is in range.
func PhaseAt(index int) (string, bool) {
	if index < 0 || index >= len(Phases) {
		return "", false
	}
	return Phases[index], true
}
