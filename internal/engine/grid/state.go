package grid

// State is what occupies a cell.
type State int

// Cell states
const (
	StateEmpty State = iota
	StateRoom
	StateCorridor
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateRoom:
		return "room"
	case StateCorridor:
		return "corridor"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of State.String.
func ParseState(s string) State {
	switch s {
	case "room":
		return StateRoom
	case "corridor":
		return StateCorridor
	default:
		return StateEmpty
	}
}
