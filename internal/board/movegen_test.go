package board_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/perft"
)

// moveRecord is a position-independent view of a Move, comparable against
// the [file, rank] fixture records in testdata/positions.json.
type moveRecord struct {
	From      [2]int
	To        [2]int
	Promotion *string
}

var promotionLetters = map[board.PieceType]string{
	board.Knight: "n",
	board.Bishop: "b",
	board.Rook:   "r",
	board.Queen:  "q",
}

func toMoveRecord(m board.Move) moveRecord {
	from, to := m.FromVector(), m.ToVector()
	rec := moveRecord{
		From: [2]int{int(from.File), int(from.Rank)},
		To:   [2]int{int(to.File), int(to.Rank)},
	}
	if m.IsPromotion() {
		letter := promotionLetters[m.Promotion()]
		rec.Promotion = &letter
	}
	return rec
}

func sortMoveRecords(recs []moveRecord) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		switch {
		case a.From != b.From:
			return a.From[0] != b.From[0] && a.From[0] < b.From[0] || a.From[0] == b.From[0] && a.From[1] < b.From[1]
		case a.To != b.To:
			return a.To[0] != b.To[0] && a.To[0] < b.To[0] || a.To[0] == b.To[0] && a.To[1] < b.To[1]
		default:
			ap, bp := "", ""
			if a.Promotion != nil {
				ap = *a.Promotion
			}
			if b.Promotion != nil {
				bp = *b.Promotion
			}
			return ap < bp
		}
	})
}

// TestGenerateLegalMovesAgainstFixtures checks the generator's full move
// list for each fixture position against the recorded expectation,
// independent of move order.
func TestGenerateLegalMovesAgainstFixtures(t *testing.T) {
	cases, err := perft.LoadMovesCases("testdata/positions.json")
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no move fixtures loaded")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.FEN, func(t *testing.T) {
			pos, err := board.ParseFEN(tc.FEN)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.FEN, err)
			}

			moves := pos.GenerateLegalMoves()
			got := make([]moveRecord, moves.Len())
			for i := 0; i < moves.Len(); i++ {
				got[i] = toMoveRecord(moves.Get(i))
			}

			want := make([]moveRecord, len(tc.Moves))
			for i, mc := range tc.Moves {
				want[i] = moveRecord{From: mc.From, To: mc.To, Promotion: mc.Promotion}
			}

			sortMoveRecords(got)
			sortMoveRecords(want)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("legal move list mismatch for %s (-want +got):\n%s", tc.FEN, diff)
			}
		})
	}
}
