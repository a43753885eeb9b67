package game_test

import (
	"errors"
	"testing"

	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/engine"
	cerrors "github.com/simplechess/simplechess-go/internal/errors"
	"github.com/simplechess/simplechess-go/internal/game"
	"github.com/simplechess/simplechess-go/internal/testutil"
)

// playMove makes the move from one square to another, aborting the test on
// failure.
func playMove(t *testing.T, g *game.Game, from, to string) *game.Game {
	t.Helper()
	move := testutil.FindMove(t, g.CurrentPosition(), from, to)
	next, err := g.MakeMove(move, false)
	if err != nil {
		t.Fatalf("MakeMove(%s%s) error = %v", from, to, err)
	}
	return next
}

// TestNew verifies a fresh game starts at the initial position.
func TestNew(t *testing.T) {
	g := game.New()

	if g.State() != game.Ongoing {
		t.Errorf("State() = %v, want Ongoing", g.State())
	}
	if g.ActiveColor() != chess.White {
		t.Errorf("ActiveColor() = %v, want White", g.ActiveColor())
	}
	if g.StageCount() != 1 {
		t.Errorf("StageCount() = %d, want 1", g.StageCount())
	}
	if got := g.CurrentStage().FEN(); got != engine.InitialFEN {
		t.Errorf("FEN() = %q, want initial", got)
	}
	if got := len(g.LegalMoves()); got != 20 {
		t.Errorf("len(LegalMoves()) = %d, want 20", got)
	}
}

// TestMakeMove_AlternatesColors verifies turn order and history growth.
func TestMakeMove_AlternatesColors(t *testing.T) {
	g := game.New()

	g = playMove(t, g, "e2", "e4")
	if g.ActiveColor() != chess.Black {
		t.Errorf("after 1.e4 ActiveColor() = %v, want Black", g.ActiveColor())
	}

	g = playMove(t, g, "e7", "e5")
	if g.ActiveColor() != chess.White {
		t.Errorf("after 1...e5 ActiveColor() = %v, want White", g.ActiveColor())
	}
	if g.StageCount() != 3 {
		t.Errorf("StageCount() = %d, want 3", g.StageCount())
	}
}

// TestMakeMove_RecordsSAN verifies the notation recorded with a stage.
func TestMakeMove_RecordsSAN(t *testing.T) {
	g := playMove(t, game.New(), "e2", "e4")

	played := g.CurrentStage().Played
	if played == nil {
		t.Fatal("current stage has no played move")
	}
	if played.SAN != "e4" {
		t.Errorf("SAN = %q, want e4", played.SAN)
	}
	if played.Captured != nil {
		t.Errorf("Captured = %v, want nil", played.Captured)
	}
	if played.Check != chess.NoCheck {
		t.Errorf("Check = %v, want NoCheck", played.Check)
	}
}

// TestMakeMove_Illegal verifies an illegal move is rejected with the
// illegal-state kind.
func TestMakeMove_Illegal(t *testing.T) {
	g := game.New()
	pawn := chess.Piece{Type: chess.Pawn, Color: chess.White}
	e2 := testutil.MustParseSquare(t, "e2")
	e5 := testutil.MustParseSquare(t, "e5")

	_, err := g.MakeMove(chess.RegularMove(pawn, e2, e5), false)
	if !errors.Is(err, cerrors.ErrIllegalMove) {
		t.Errorf("MakeMove(e2e5) error = %v, want ErrIllegalMove", err)
	}
	if !errors.Is(err, cerrors.ErrIllegalState) {
		t.Errorf("MakeMove(e2e5) error = %v, want ErrIllegalState kind", err)
	}
}

// TestMakeMove_DoesNotMutate verifies older game values stay valid.
func TestMakeMove_DoesNotMutate(t *testing.T) {
	first := game.New()
	second := playMove(t, first, "e2", "e4")

	if first.StageCount() != 1 {
		t.Errorf("original StageCount() = %d, want 1", first.StageCount())
	}
	if second.StageCount() != 2 {
		t.Errorf("successor StageCount() = %d, want 2", second.StageCount())
	}
	if first.ActiveColor() != chess.White {
		t.Errorf("original ActiveColor() = %v, want White", first.ActiveColor())
	}
}

// TestCheckmateEndsGame plays the fool's mate.
func TestCheckmateEndsGame(t *testing.T) {
	g := game.New()
	g = playMove(t, g, "f2", "f3")
	g = playMove(t, g, "e7", "e5")
	g = playMove(t, g, "g2", "g4")
	g = playMove(t, g, "d8", "h4")

	if g.State() != game.BlackWon {
		t.Fatalf("State() = %v, want BlackWon", g.State())
	}
	if played := g.CurrentStage().Played; played.Check != chess.Checkmate {
		t.Errorf("Check = %v, want Checkmate", played.Check)
	}
	if played := g.CurrentStage().Played; played.SAN != "Qh4#" {
		t.Errorf("SAN = %q, want Qh4#", played.SAN)
	}

	// The finished game rejects further play.
	move := chess.RegularMove(chess.Piece{Type: chess.Pawn, Color: chess.White},
		testutil.MustParseSquare(t, "a2"), testutil.MustParseSquare(t, "a3"))
	if _, err := g.MakeMove(move, false); !errors.Is(err, cerrors.ErrGameOver) {
		t.Errorf("MakeMove after mate error = %v, want ErrGameOver", err)
	}
	if g.LegalMoves() != nil {
		t.Error("LegalMoves() on a finished game should be nil")
	}
}

// TestResign verifies the opponent of the resigner wins.
func TestResign(t *testing.T) {
	g, err := game.New().Resign(chess.White)
	if err != nil {
		t.Fatalf("Resign(White) error = %v", err)
	}
	if g.State() != game.BlackWon {
		t.Errorf("State() after White resign = %v, want BlackWon", g.State())
	}

	g, err = game.New().Resign(chess.Black)
	if err != nil {
		t.Fatalf("Resign(Black) error = %v", err)
	}
	if g.State() != game.WhiteWon {
		t.Errorf("State() after Black resign = %v, want WhiteWon", g.State())
	}

	// Resigning out of turn is allowed.
	g = playMove(t, game.New(), "e2", "e4")
	g, err = g.Resign(chess.White)
	if err != nil {
		t.Fatalf("Resign(White) out of turn error = %v", err)
	}
	if g.State() != game.BlackWon {
		t.Errorf("State() after White resign out of turn = %v, want BlackWon", g.State())
	}

	if _, err := g.Resign(chess.Black); !errors.Is(err, cerrors.ErrGameOver) {
		t.Errorf("Resign() on finished game error = %v, want ErrGameOver", err)
	}
}

// TestStalemateEndsGame reaches stalemate from a crafted position.
func TestStalemateEndsGame(t *testing.T) {
	g, err := game.FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	if g.State() != game.Drawn {
		t.Fatalf("State() = %v, want Drawn", g.State())
	}
	reason, err := g.DrawReason()
	if err != nil {
		t.Fatalf("DrawReason() error = %v", err)
	}
	if reason != game.Stalemate {
		t.Errorf("DrawReason() = %v, want Stalemate", reason)
	}
}

// TestFromFEN_TwoKingsIsDrawn verifies material evaluation at import.
func TestFromFEN_TwoKingsIsDrawn(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	if g.State() != game.Drawn {
		t.Fatalf("State() = %v, want Drawn", g.State())
	}
	if reason, _ := g.DrawReason(); reason != game.InsufficientMaterial {
		t.Errorf("DrawReason() = %v, want InsufficientMaterial", reason)
	}
}

// TestFromFEN_Invalid verifies malformed FEN is rejected as an invalid
// argument.
func TestFromFEN_Invalid(t *testing.T) {
	_, err := game.FromFEN("not a fen")
	if !errors.Is(err, cerrors.ErrInvalidFEN) {
		t.Errorf("FromFEN error = %v, want ErrInvalidFEN", err)
	}
}

// TestInsufficientMaterialAfterCapture verifies the automatic draw when the
// last mating material leaves the board.
func TestInsufficientMaterialAfterCapture(t *testing.T) {
	// The king captures the undefended queen, leaving king versus king.
	g, err := game.FromFEN("4k3/8/8/8/8/8/4q3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	g = playMove(t, g, "e1", "e2")

	if g.State() != game.Drawn {
		t.Fatalf("State() = %v, want Drawn", g.State())
	}
	if reason, _ := g.DrawReason(); reason != game.InsufficientMaterial {
		t.Errorf("DrawReason() = %v, want InsufficientMaterial", reason)
	}
}

// TestDrawReason_NotDrawn verifies the guard on DrawReason.
func TestDrawReason_NotDrawn(t *testing.T) {
	if _, err := game.New().DrawReason(); !errors.Is(err, cerrors.ErrNotDrawn) {
		t.Errorf("DrawReason() on ongoing game error = %v, want ErrNotDrawn", err)
	}
}

// TestStageAt covers history access and its bounds.
func TestStageAt(t *testing.T) {
	g := playMove(t, game.New(), "e2", "e4")

	first, err := g.StageAt(0)
	if err != nil {
		t.Fatalf("StageAt(0) error = %v", err)
	}
	if first.Played != nil {
		t.Error("StageAt(0).Played should be nil for the starting stage")
	}
	if first.FEN() != engine.InitialFEN {
		t.Errorf("StageAt(0).FEN() = %q, want initial", first.FEN())
	}

	if _, err := g.StageAt(2); !errors.Is(err, cerrors.ErrIndexOutOfRange) {
		t.Errorf("StageAt(2) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := g.StageAt(-1); !errors.Is(err, cerrors.ErrIndexOutOfRange) {
		t.Errorf("StageAt(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

// TestClaimDraw_NoReason verifies a claim without grounds is rejected.
func TestClaimDraw_NoReason(t *testing.T) {
	if _, err := game.New().ClaimDraw(); !errors.Is(err, cerrors.ErrNoDrawToClaim) {
		t.Errorf("ClaimDraw() error = %v, want ErrNoDrawToClaim", err)
	}
}

// TestClaimDraw_OfferAccepted verifies accepting a draw offer.
func TestClaimDraw_OfferAccepted(t *testing.T) {
	g := game.New()
	move := testutil.FindMove(t, g.CurrentPosition(), "e2", "e4")
	g, err := g.MakeMove(move, true)
	if err != nil {
		t.Fatalf("MakeMove() error = %v", err)
	}

	reason, ok := g.ReasonToClaimDraw()
	if !ok || reason != game.OfferedAndAccepted {
		t.Fatalf("ReasonToClaimDraw() = %v, %v, want OfferedAndAccepted", reason, ok)
	}

	g, err = g.ClaimDraw()
	if err != nil {
		t.Fatalf("ClaimDraw() error = %v", err)
	}
	if g.State() != game.Drawn {
		t.Errorf("State() = %v, want Drawn", g.State())
	}
	if got, _ := g.DrawReason(); got != game.OfferedAndAccepted {
		t.Errorf("DrawReason() = %v, want OfferedAndAccepted", got)
	}
}

// TestDrawOfferExpires verifies an offer is only open for one ply.
func TestDrawOfferExpires(t *testing.T) {
	g := game.New()
	move := testutil.FindMove(t, g.CurrentPosition(), "e2", "e4")
	g, err := g.MakeMove(move, true)
	if err != nil {
		t.Fatalf("MakeMove() error = %v", err)
	}
	g = playMove(t, g, "e7", "e5")

	if _, ok := g.ReasonToClaimDraw(); ok {
		t.Error("draw offer should expire after the opponent moves instead")
	}
}

// TestClaimDraw_ThreefoldRepetition shuffles knights until the starting
// position occurs three times.
func TestClaimDraw_ThreefoldRepetition(t *testing.T) {
	g := game.New()
	shuffle := func() {
		g = playMove(t, g, "g1", "f3")
		g = playMove(t, g, "g8", "f6")
		g = playMove(t, g, "f3", "g1")
		g = playMove(t, g, "f6", "g8")
	}

	shuffle()
	if _, ok := g.ReasonToClaimDraw(); ok {
		t.Fatal("claim available after two occurrences")
	}

	shuffle()
	reason, ok := g.ReasonToClaimDraw()
	if !ok || reason != game.ThreeFoldRepetition {
		t.Fatalf("ReasonToClaimDraw() = %v, %v, want ThreeFoldRepetition", reason, ok)
	}

	g, err := g.ClaimDraw()
	if err != nil {
		t.Fatalf("ClaimDraw() error = %v", err)
	}
	if got, _ := g.DrawReason(); got != game.ThreeFoldRepetition {
		t.Errorf("DrawReason() = %v, want ThreeFoldRepetition", got)
	}
}

// TestFiveFoldRepetitionEndsGame shuffles until the fivefold rule fires on
// its own.
func TestFiveFoldRepetitionEndsGame(t *testing.T) {
	g := game.New()
	for i := 0; i < 4; i++ {
		g = playMove(t, g, "g1", "f3")
		g = playMove(t, g, "g8", "f6")
		g = playMove(t, g, "f3", "g1")
		g = playMove(t, g, "f6", "g8")
	}

	if g.State() != game.Drawn {
		t.Fatalf("State() = %v, want Drawn after fivefold repetition", g.State())
	}
	if got, _ := g.DrawReason(); got != game.FiveFoldRepetition {
		t.Errorf("DrawReason() = %v, want FiveFoldRepetition", got)
	}
}

// TestClaimDraw_FiftyMoveRule verifies the claim opens at a halfmove clock
// of one hundred.
func TestClaimDraw_FiftyMoveRule(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/8/8/R7/4K3 b - - 100 80")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}

	reason, ok := g.ReasonToClaimDraw()
	if !ok || reason != game.FiftyMoveRule {
		t.Fatalf("ReasonToClaimDraw() = %v, %v, want FiftyMoveRule", reason, ok)
	}
}

// TestSeventyFiveMoveRuleEndsGame verifies the automatic form at one
// hundred and fifty halfmoves.
func TestSeventyFiveMoveRuleEndsGame(t *testing.T) {
	g, err := game.FromFEN("4k3/8/8/8/8/8/R7/4K3 b - - 149 110")
	if err != nil {
		t.Fatalf("FromFEN() error = %v", err)
	}
	if g.State() != game.Ongoing {
		t.Fatalf("State() = %v, want Ongoing at 149 halfmoves", g.State())
	}

	g = playMove(t, g, "e8", "d8")
	if g.State() != game.Drawn {
		t.Fatalf("State() = %v, want Drawn at 150 halfmoves", g.State())
	}
	if got, _ := g.DrawReason(); got != game.SeventyFiveMoveRule {
		t.Errorf("DrawReason() = %v, want SeventyFiveMoveRule", got)
	}
}
