package dialog

import "strings"

// CommandKind identifies a reserved whole-message command.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandRestart
	CommandEnd
	CommandBack
)

// Commands holds the reserved keyword literals. The deployment maps each to
// one language-appropriate word; matching is case-insensitive and
// whole-message only.
type Commands struct {
	Restart string
	End     string
	Back    string
}

func DefaultCommands() Commands {
	return Commands{Restart: "restart", End: "end", Back: "back"}
}

// Match recognizes a reserved command, or CommandNone to fall through to the
// current state's handler. Unrecognized text is not an error.
func (c Commands) Match(input string) CommandKind {
	t := strings.ToLower(strings.TrimSpace(input))
	switch t {
	case strings.ToLower(c.Restart):
		return CommandRestart
	case strings.ToLower(c.End):
		return CommandEnd
	case strings.ToLower(c.Back):
		return CommandBack
	}
	return CommandNone
}

// predecessors is the static back-edge table. Every non-entry state must
// have an entry here; a new state is not wired until it is added.
var predecessors = map[State]State{
	StateAge:         StateWelcome,
	StateLocation:    StateAge,
	StateSymptoms:    StateLocation,
	StateOnset:       StateSymptoms,
	StateCourse:      StateOnset,
	StateAggravating: StateCourse,
	StateRelieving:   StateAggravating,
	StateAssociated:  StateRelieving,
	StateSeverity:    StateAssociated,
	StateImpact:      StateSeverity,
	StateSafety:      StateImpact,
	StateReview:      StateSafety,
	StateDone:        StateReview,
}

// PredecessorOf returns the state the back command moves to. The entry state
// has no predecessor.
func PredecessorOf(st State) (State, bool) {
	p, ok := predecessors[st]
	return p, ok
}
