package pipeline

import "fmt"

// State is one node of the round state machine.
type State string

const (
	StateGenerate    State = "GENERATE"
	StateScore       State = "SCORE"
	StateDecide      State = "DECIDE"
	StatePass        State = "PASS"
	StateContinue    State = "CONTINUE"
	StateFailMaxIter State = "FAIL_MAX_ITER"
)

// transitions is the typed edge table. GENERATE may skip straight to CONTINUE
// when the generator call fails; every scored round goes through DECIDE.
var transitions = map[State][]State{
	StateGenerate: {StateScore, StateContinue},
	StateScore:    {StateDecide},
	StateDecide:   {StatePass, StateContinue, StateFailMaxIter},
	StateContinue: {StateGenerate, StateFailMaxIter},
}

// Terminal reports whether the machine halts in s.
func (s State) Terminal() bool {
	return s == StatePass || s == StateFailMaxIter
}

// advance takes the edge from -> to, rejecting edges not in the table. An
// illegal edge is a controller defect, not a runtime condition.
func advance(from, to State) (State, error) {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("illegal state transition %s -> %s", from, to)
}
