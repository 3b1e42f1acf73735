package session

import "fmt"

// Mode selects how answers are collected
type Mode int

const (
	// Passive only reveals cards
	Passive Mode = iota
	// Writing collects a typed answer
	Writing
	// Speaking collects a transcribed spoken answer
	Speaking
)

// ModeFromFlags maps the command line switches to a mode
func ModeFromFlags(writing, speaking bool) (Mode, error) {
	switch {
	case writing && speaking:
		return Passive, fmt.Errorf("writing and speaking cannot be combined")
	case writing:
		return Writing, nil
	case speaking:
		return Speaking, nil
	default:
		return Passive, nil
	}
}

// CollectsAnswers reports whether cards are updated in this mode
func (m Mode) CollectsAnswers() bool {
	return m == Writing || m == Speaking
}

func (m Mode) String() string {
	switch m {
	case Passive:
		return "passive"
	case Writing:
		return "writing"
	case Speaking:
		return "speaking"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
