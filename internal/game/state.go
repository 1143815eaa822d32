// Package game provides the main loop: the launcher and one view per game,
// translating key presses into controller actions.
package game

// State represents which screen family is active.
type State int

const (
	// StateLauncher is the game picker.
	StateLauncher State = iota
	// StateImposter shows the imposter game.
	StateImposter
	// StateLiar shows the who-is-the-liar game.
	StateLiar
	// StateCity shows the city/category game.
	StateCity
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateLauncher:
		return "launcher"
	case StateImposter:
		return "imposter"
	case StateLiar:
		return "liar"
	case StateCity:
		return "city"
	default:
		return "unknown"
	}
}

// cursor is a wrapping selection index over n rows.
type cursor struct {
	pos int
}

func (c *cursor) move(delta, n int) {
	if n <= 0 {
		c.pos = 0
		return
	}
	c.pos = ((c.pos+delta)%n + n) % n
}

func (c *cursor) clamp(n int) int {
	if c.pos >= n {
		c.pos = max(n-1, 0)
	}
	return c.pos
}
