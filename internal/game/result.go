package game

// State is the overall result state of a game.
type State int

const (
	Ongoing State = iota
	WhiteWon
	BlackWon
	Drawn
)

// String returns the string representation of a game state.
func (s State) String() string {
	switch s {
	case Ongoing:
		return "Ongoing"
	case WhiteWon:
		return "WhiteWon"
	case BlackWon:
		return "BlackWon"
	case Drawn:
		return "Drawn"
	default:
		return "Unknown"
	}
}

// DrawReason identifies why a game is drawn or may be claimed drawn.
type DrawReason int

const (
	Stalemate DrawReason = iota
	InsufficientMaterial
	OfferedAndAccepted
	ThreeFoldRepetition
	FiveFoldRepetition
	FiftyMoveRule
	SeventyFiveMoveRule
)

// String returns the string representation of a draw reason.
func (r DrawReason) String() string {
	names := []string{
		"Stalemate",
		"InsufficientMaterial",
		"OfferedAndAccepted",
		"ThreeFoldRepetition",
		"FiveFoldRepetition",
		"FiftyMoveRule",
		"SeventyFiveMoveRule",
	}
	if int(r) >= 0 && int(r) < len(names) {
		return names[r]
	}
	return "Unknown"
}
