package perft

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestCountAgainstFixtures(t *testing.T) {
	cases, err := LoadPerftCases("testdata/perft.json")
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no perft fixtures loaded")
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.FEN, func(t *testing.T) {
			pos, err := board.ParseFEN(tc.FEN)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.FEN, err)
			}
			got := Count(pos, tc.Depth)
			if got != tc.Nodes {
				t.Errorf("Count(depth=%d) = %d, want %d", tc.Depth, got, tc.Nodes)
			}
		})
	}
}
