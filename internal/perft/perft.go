package perft

import "github.com/hailam/chesscore/internal/board"

// Count returns the number of leaf positions reachable from p after depth
// plies of legal moves.
func Count(p *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		p.MakeMove(moves.Get(i))
		nodes += Count(p, depth-1)
		p.UnmakeMove()
	}
	return nodes
}

// Divide returns, for each legal move from p, the perft count of the
// subtree it leads into at depth-1. Useful for isolating a move-generation
// bug to a specific branch.
func Divide(p *board.Position, depth int) map[string]int64 {
	result := make(map[string]int64)
	if depth < 1 {
		return result
	}

	moves := p.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		p.MakeMove(m)
		result[m.String()] = Count(p, depth-1)
		p.UnmakeMove()
	}
	return result
}
