package board

import (
	"reflect"
	"testing"
)

// invariantFENs covers quiet, tactical, and edge-case positions: the
// starting position, Kiwipete, and the promotion/castling/pin-heavy
// perft fixtures.
var invariantFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
	"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

// TestMakeUnmakeRoundTrip checks that MakeMove followed by UnmakeMove
// restores the position to a byte-identical state for every legal move
// from every fixture position.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	for _, fen := range invariantFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			before := pos.Copy()

			pos.MakeMove(m)
			pos.UnmakeMove()

			if !reflect.DeepEqual(before, pos) {
				t.Fatalf("%s: MakeMove/UnmakeMove(%s) did not round-trip:\nbefore=%+v\nafter=%+v", fen, m, before, pos)
			}
		}
	}
}

// TestLegalMovesNeverSelfCheck checks that after any legal move, the side
// that just moved is not left in check.
func TestLegalMovesNeverSelfCheck(t *testing.T) {
	for _, fen := range invariantFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		mover := pos.SideToMove
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			pos.MakeMove(m)

			kingSq := pos.KingSquare[mover]
			if pos.IsSquareAttacked(kingSq, mover.Other()) {
				t.Errorf("%s: move %s leaves %s king in check", fen, m, mover)
			}

			pos.UnmakeMove()
		}
	}
}

// TestLegalMovesNoDuplicates checks that the generator never emits the
// same move twice for a given position.
func TestLegalMovesNoDuplicates(t *testing.T) {
	for _, fen := range invariantFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		moves := pos.GenerateLegalMoves()
		seen := make(map[Move]bool, moves.Len())
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			if seen[m] {
				t.Errorf("%s: duplicate move %s in legal move list", fen, m)
			}
			seen[m] = true
		}
	}
}

// TestLegalMovesFromSquareHoldsMover checks that every move's origin
// square holds a piece belonging to the side to move.
func TestLegalMovesFromSquareHoldsMover(t *testing.T) {
	for _, fen := range invariantFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		us := pos.SideToMove
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			piece := pos.PieceAt(m.From())
			if piece == NoPiece {
				t.Errorf("%s: move %s originates from an empty square", fen, m)
				continue
			}
			if piece.Color() != us {
				t.Errorf("%s: move %s originates from a %s piece, want %s", fen, m, piece.Color(), us)
			}
		}
	}
}

// TestPromotionMovesLandOnBackRank checks that every promotion move lands
// on rank 1 or rank 8, and that every pawn move reaching those ranks is
// flagged as a promotion.
func TestPromotionMovesLandOnBackRank(t *testing.T) {
	for _, fen := range invariantFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}

		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			toRank := m.To().Rank()

			if m.IsPromotion() && toRank != 0 && toRank != 7 {
				t.Errorf("%s: promotion move %s lands on rank %d, not a back rank", fen, m, toRank+1)
			}

			piece := pos.PieceAt(m.From())
			if piece.Type() == Pawn && (toRank == 0 || toRank == 7) && !m.IsPromotion() {
				t.Errorf("%s: pawn move %s reaches the back rank without promoting", fen, m)
			}
		}
	}
}
