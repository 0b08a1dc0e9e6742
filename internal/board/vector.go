package board

// Vector is a 2D board coordinate (file, rank), used by the move generator's
// fixed direction tables and by the attack-table builders below. It is the
// arithmetic counterpart to Square's packed index.
type Vector struct {
	File int8
	Rank int8
}

// VectorFromSquare converts a packed Square index to its (file, rank) form.
func VectorFromSquare(sq Square) Vector {
	return Vector{File: int8(sq.File()), Rank: int8(sq.Rank())}
}

// Square converts a Vector back to a packed Square index. The caller must
// ensure the vector is in bounds.
func (v Vector) Square() Square {
	return NewSquare(int(v.File), int(v.Rank))
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{File: v.File + o.File, Rank: v.Rank + o.Rank}
}

// InBounds reports whether v falls within the 8x8 board.
func (v Vector) InBounds() bool {
	return v.File >= 0 && v.File <= 7 && v.Rank >= 0 && v.Rank <= 7
}

func sign(x int8) int8 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Direction returns the unit step from v toward o, or the zero vector if
// v and o are not aligned on a rank, file, or diagonal.
func (v Vector) Direction(o Vector) Vector {
	df, dr := o.File-v.File, o.Rank-v.Rank
	if df != 0 && dr != 0 && df != dr && df != -dr {
		return Vector{}
	}
	return Vector{File: sign(df), Rank: sign(dr)}
}

// KnightDirs are the 8 knight-move offsets.
var KnightDirs = [8]Vector{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// RookDirs are the 4 orthogonal step directions.
var RookDirs = [4]Vector{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// BishopDirs are the 4 diagonal step directions.
var BishopDirs = [4]Vector{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// KingDirs are the 8 adjacent-square offsets: the union of RookDirs and
// BishopDirs.
var KingDirs = [8]Vector{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}
