package round

// Outcome is the result of an imposter or liar vote.
type Outcome int

const (
	// OutcomeNone means the round has not been resolved yet.
	OutcomeNone Outcome = iota
	// OutcomeDefendersWin means the voted player was special.
	OutcomeDefendersWin
	// OutcomeSpecialsWin means the voted player was a defender.
	OutcomeSpecialsWin
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeDefendersWin:
		return "defenders_win"
	case OutcomeSpecialsWin:
		return "specials_win"
	default:
		return "unknown"
	}
}

// Resolve decides a single vote: defenders win iff votedIndex is special.
// An unknown index counts as a miss.
func Resolve(specials []int, votedIndex int) Outcome {
	if IsSpecial(specials, votedIndex) {
		return OutcomeDefendersWin
	}
	return OutcomeSpecialsWin
}
