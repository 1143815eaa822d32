package round

// Signal is what a Sequencer reports after an advance.
type Signal int

const (
	// SignalStay means the next player is up and the stage is unchanged.
	SignalStay Signal = iota
	// SignalComplete means the last player finished; the owner picks the next stage.
	SignalComplete
	// SignalIdle means the sequence had already completed; nothing happened.
	SignalIdle
)

// String returns a human-readable signal name.
func (s Signal) String() string {
	switch s {
	case SignalStay:
		return "stay"
	case SignalComplete:
		return "complete"
	case SignalIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Sequencer walks players one at a time through a private reveal or input
// step. The concealed/revealed flip of a card is a presentation concern;
// the sequencer only moves on an explicit "done with this player".
type Sequencer struct {
	index int
	count int
	done  bool
}

// NewSequencer starts a sequence over count players at index 0.
func NewSequencer(count int) *Sequencer {
	return &Sequencer{count: count, done: count <= 0}
}

// Index returns the active player index.
func (s *Sequencer) Index() int {
	return s.index
}

// Count returns the number of players in the sequence.
func (s *Sequencer) Count() int {
	return s.count
}

// Done reports whether the completion signal has been emitted.
func (s *Sequencer) Done() bool {
	return s.done
}

// Advance moves to the next player. At the last player it emits
// SignalComplete exactly once and leaves the index in place.
func (s *Sequencer) Advance() Signal {
	if s.done {
		return SignalIdle
	}
	if s.index < s.count-1 {
		s.index++
		return SignalStay
	}
	s.done = true
	return SignalComplete
}
