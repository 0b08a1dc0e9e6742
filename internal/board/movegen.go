package board

// GenerateLegalMoves returns every legal move for the side to move.
//
// The algorithm removes the king from the board before computing the
// opponent's attacked squares, so a king fleeing along a checking slider's
// ray is correctly seen as still attacked (a king that merely steps back one
// square behind itself is not actually safe). From there: collect checkers
// and the attacked-square map in one pass, emit king moves (including
// castling, only when not in check) against that map, bail out early on
// double check, build the single-checker's block/capture mask, build a
// phantom-queen pin mask per king-aligned enemy slider, fold in the en
// passant horizontal-pin exception, and finally intersect every other
// piece's pseudo-legal destinations with the checker mask and its own pin
// mask.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()

	us := p.SideToMove
	them := us.Other()
	kingSq := p.KingSquare[us]
	occNoKing := p.AllOccupied &^ SquareBB(kingSq)

	var attacked, checkers Bitboard
	for pt := Pawn; pt <= King; pt++ {
		bb := p.Pieces[them][pt]
		for bb != 0 {
			sq := bb.PopLSB()
			atk := pieceAttacks(pt, sq, them, occNoKing)
			attacked |= atk
			if pt != King && atk.IsSet(kingSq) {
				checkers |= SquareBB(sq)
			}
		}
	}

	kingDest := KingAttacks(kingSq) &^ p.Occupied[us] &^ attacked
	if checkers == 0 {
		kingDest |= castlingDestinations(p, us, attacked)
	}
	emitKing(ml, kingSq, kingDest)

	numCheckers := checkers.PopCount()
	if numCheckers >= 2 {
		return ml
	}

	checkerMask := Universe
	var epEvasion Bitboard
	if numCheckers == 1 {
		checkerSq := checkers.LSB()
		switch p.PieceAt(checkerSq).Type() {
		case Pawn, Knight:
			checkerMask = SquareBB(checkerSq)
		default:
			checkerMask = Line(checkerSq, kingSq)
		}
		if p.PieceAt(checkerSq).Type() == Pawn && p.EnPassant != NoSquare {
			epEvasion = SquareBB(p.EnPassant)
		}
	}

	pinMask := buildPinMasks(p, us, them, kingSq, occNoKing)
	applyEnPassantPin(p, us, &pinMask)

	movers := p.Occupied[us] &^ SquareBB(kingSq)
	for movers != 0 {
		sq := movers.PopLSB()
		pt := p.PieceAt(sq).Type()

		var dest Bitboard
		if pt == Pawn {
			dest = pawnMoves(p, sq, us) & (checkerMask | epEvasion)
		} else {
			dest = pieceAttacks(pt, sq, us, p.AllOccupied) &^ p.Occupied[us] & checkerMask
		}
		dest &= pinMask[sq]

		emit(ml, p, sq, pt, dest)
	}

	return ml
}

// pieceAttacks returns the squares a piece of the given type, color, and
// occupancy controls. For sliders this is their full ray, including the
// square of the first same-color piece encountered — the generator needs
// this "attacks" view (distinct from "moves") so a king cannot step next to,
// or capture into, a square a defended piece still controls.
func pieceAttacks(pt PieceType, sq Square, color Color, occupied Bitboard) Bitboard {
	switch pt {
	case Pawn:
		return PawnAttacks(sq, color)
	case Knight:
		return KnightAttacks(sq)
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	case King:
		return KingAttacks(sq)
	}
	return Empty
}

// pawnMoves returns a pawn's destination squares: pushes (single and, from
// the start rank, double), diagonal captures, and the en passant target.
// Diagonal squares are only included here when they hold a capturable piece
// or the en passant target; pieceAttacks reports them unconditionally for
// the attacked-square map above, matching the distinction the rest of the
// generator relies on between "moves" and "attacks".
func pawnMoves(p *Position, sq Square, us Color) Bitboard {
	var moves Bitboard
	occ := p.AllOccupied

	push1 := PawnPushes(sq, us)
	if push1&occ == 0 {
		moves |= push1
		startRank := 1
		if us == Black {
			startRank = 6
		}
		if sq.Rank() == startRank {
			var push2 Bitboard
			if us == White {
				push2 = push1.North()
			} else {
				push2 = push1.South()
			}
			if push2&occ == 0 {
				moves |= push2
			}
		}
	}

	attacks := PawnAttacks(sq, us)
	moves |= attacks & p.Occupied[us.Other()]
	if p.EnPassant != NoSquare && attacks.IsSet(p.EnPassant) {
		moves |= SquareBB(p.EnPassant)
	}

	return moves
}

// castlingDestinations returns the king's destination squares reachable by
// castling: the squares between king and rook must be empty, and every
// square the king passes through (including its start and end squares) must
// not be attacked.
func castlingDestinations(p *Position, us Color, attacked Bitboard) Bitboard {
	var dest Bitboard
	rank := 0
	if us == Black {
		rank = 7
	}
	e := NewSquare(4, rank)

	if p.CastlingRights.CanCastle(us, true) {
		f, g := NewSquare(5, rank), NewSquare(6, rank)
		empty := SquareBB(f) | SquareBB(g)
		safe := SquareBB(e) | SquareBB(f) | SquareBB(g)
		if p.AllOccupied&empty == 0 && attacked&safe == 0 {
			dest |= SquareBB(g)
		}
	}
	if p.CastlingRights.CanCastle(us, false) {
		b, c, d := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)
		empty := SquareBB(b) | SquareBB(c) | SquareBB(d)
		safe := SquareBB(e) | SquareBB(d) | SquareBB(c)
		if p.AllOccupied&empty == 0 && attacked&safe == 0 {
			dest |= SquareBB(c)
		}
	}
	return dest
}

// buildPinMasks computes, for every square, the set of destinations a piece
// pinned from that square is still allowed to move to (Universe if it isn't
// pinned at all). It places a phantom queen on the king's square and, for
// each enemy slider aligned with the king, intersects that slider's moves
// with the queen's rays; if exactly one of our own pieces sits in that
// intersection, it is pinned along the king-slider line.
func buildPinMasks(p *Position, us, them Color, kingSq Square, occNoKing Bitboard) [64]Bitboard {
	var pinMask [64]Bitboard
	for i := range pinMask {
		pinMask[i] = Universe
	}

	pinLinesFromKing := QueenAttacks(kingSq, occNoKing) &^ p.Occupied[them]

	sliders := p.Pieces[them][Bishop] | p.Pieces[them][Rook] | p.Pieces[them][Queen]
	for sliders != 0 {
		sq := sliders.PopLSB()
		if !aligned(sq, kingSq) {
			continue
		}
		pt := p.PieceAt(sq).Type()
		sliderMoves := pieceAttacks(pt, sq, them, occNoKing) &^ p.Occupied[them]
		segment := Line(sq, kingSq)

		pinned := segment & sliderMoves & pinLinesFromKing & p.Occupied[us]
		if pinned.PopCount() == 1 {
			pinMask[pinned.LSB()] = segment
		}
	}

	return pinMask
}

// applyEnPassantPin handles the one pin an ordinary king-aligned sniper scan
// cannot see: a horizontal pin through both pawns involved in an en passant
// capture. If the king, the two pawns, and an enemy rook or queen all sit on
// the same rank in that order, capturing en passant would vacate both pawns
// at once and expose the king — so the capturing pawn's destination is
// struck from its own pin mask even though neither pawn alone is pinned.
func applyEnPassantPin(p *Position, us Color, pinMask *[64]Bitboard) {
	if p.EnPassant == NoSquare {
		return
	}

	capturedRank := p.EnPassant.Rank() - 1
	if us == Black {
		capturedRank = p.EnPassant.Rank() + 1
	}

	kingSq := p.KingSquare[us]
	if kingSq.Rank() != capturedRank {
		return
	}
	if !enPassantHorizontalPinRank(p, us, capturedRank) {
		return
	}

	epFile := p.EnPassant.File()
	for _, df := range [2]int{-1, 1} {
		file := epFile + df
		if file < 0 || file > 7 {
			continue
		}
		sq := NewSquare(file, capturedRank)
		if p.PieceAt(sq) == NewPiece(Pawn, us) {
			pinMask[sq] &^= SquareBB(p.EnPassant)
		}
	}
}

// enPassantHorizontalPinRank scans one rank for the pattern [king, pawn,
// pawn, rook-or-queen] adjacent to each other in either direction from the
// king, treating the rank as a sequence of non-empty squares (gaps between
// pieces don't break the pattern, only intervening pieces do).
func enPassantHorizontalPinRank(p *Position, us Color, rank int) bool {
	var tokens []PieceType
	kingIdx := -1

	for file := 0; file < 8; file++ {
		piece := p.PieceAt(NewSquare(file, rank))
		if piece == NoPiece {
			continue
		}
		pt := piece.Type()
		tok := pt
		if pt == Rook || pt == Queen {
			if piece.Color() != us {
				tok = Rook
			} else {
				tok = Queen
			}
		}
		if pt == King && piece.Color() == us {
			kingIdx = len(tokens)
		}
		tokens = append(tokens, tok)
	}

	if kingIdx == -1 {
		return false
	}
	if kingIdx+3 < len(tokens) &&
		tokens[kingIdx+1] == Pawn && tokens[kingIdx+2] == Pawn && tokens[kingIdx+3] == Rook {
		return true
	}
	if kingIdx-3 >= 0 &&
		tokens[kingIdx-1] == Pawn && tokens[kingIdx-2] == Pawn && tokens[kingIdx-3] == Rook {
		return true
	}
	return false
}

// emit appends one MoveList entry per destination square, expanding pawn
// moves to rank 0/7 into the four promotion choices and flagging en passant
// captures.
func emit(ml *MoveList, p *Position, from Square, pt PieceType, dest Bitboard) {
	for dest != 0 {
		to := dest.PopLSB()
		switch {
		case pt == Pawn && (to.Rank() == 0 || to.Rank() == 7):
			ml.Add(NewPromotion(from, to, Queen))
			ml.Add(NewPromotion(from, to, Rook))
			ml.Add(NewPromotion(from, to, Bishop))
			ml.Add(NewPromotion(from, to, Knight))
		case pt == Pawn && to == p.EnPassant:
			ml.Add(NewEnPassant(from, to))
		default:
			ml.Add(NewMove(from, to))
		}
	}
}

// emitKing appends king destinations, recognizing a castle by its two-file jump.
func emitKing(ml *MoveList, from Square, dest Bitboard) {
	for dest != 0 {
		to := dest.PopLSB()
		if abs(int(to)-int(from)) == 2 {
			ml.Add(NewCastling(from, to))
		} else {
			ml.Add(NewMove(from, to))
		}
	}
}

// MakeMove applies a move to the position, pushing a Reversion that
// UnmakeMove uses to restore the prior state exactly.
func (p *Position) MakeMove(m Move) {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)
	pt := piece.Type()

	rev := Reversion{
		Move:           m,
		CapturedPiece:  NoPiece,
		CastlingRights: p.CastlingRights,
		EnPassant:      p.EnPassant,
		HalfMoveClock:  p.HalfMoveClock,
	}

	if m.IsEnPassant() {
		var capturedSq Square
		if us == White {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
		rev.CapturedPiece = p.removePiece(capturedSq)
	} else if captured := p.PieceAt(to); captured != NoPiece {
		rev.CapturedPiece = captured
		p.removePiece(to)
	}

	p.movePiece(from, to)

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][Pawn] &^= SquareBB(to)
		p.Pieces[us][promoPt] |= SquareBB(to)
	}

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookFrom, rookTo)
	}

	if pt == King {
		if us == White {
			p.CastlingRights &^= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			p.CastlingRights &^= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	if from == A1 || to == A1 {
		p.CastlingRights &^= WhiteQueenSideCastle
	}
	if from == H1 || to == H1 {
		p.CastlingRights &^= WhiteKingSideCastle
	}
	if from == A8 || to == A8 {
		p.CastlingRights &^= BlackQueenSideCastle
	}
	if from == H8 || to == H8 {
		p.CastlingRights &^= BlackKingSideCastle
	}

	p.EnPassant = NoSquare
	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	}

	if pt == Pawn || rev.CapturedPiece != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}

	p.SideToMove = them
	p.UpdateCheckers()
	p.pushReversion(rev)
}

// UnmakeMove pops the last Reversion and restores the position to exactly
// the state it had before the corresponding MakeMove.
func (p *Position) UnmakeMove() {
	rev := p.popReversion()
	m := rev.Move
	them := p.SideToMove
	us := them.Other()
	from := m.From()
	to := m.To()

	p.CastlingRights = rev.CastlingRights
	p.EnPassant = rev.EnPassant
	p.HalfMoveClock = rev.HalfMoveClock
	p.SideToMove = us
	if us == Black {
		p.FullMoveNumber--
	}

	if m.IsPromotion() {
		promoPt := m.Promotion()
		p.Pieces[us][promoPt] &^= SquareBB(to)
		p.Pieces[us][Pawn] |= SquareBB(to)
	}

	p.movePiece(to, from)

	if m.IsCastling() {
		var rookFrom, rookTo Square
		if to > from {
			rookFrom = NewSquare(7, from.Rank())
			rookTo = NewSquare(5, from.Rank())
		} else {
			rookFrom = NewSquare(0, from.Rank())
			rookTo = NewSquare(3, from.Rank())
		}
		p.movePiece(rookTo, rookFrom)
	}

	if rev.CapturedPiece != NoPiece {
		if m.IsEnPassant() {
			var capturedSq Square
			if us == White {
				capturedSq = to - 8
			} else {
				capturedSq = to + 8
			}
			p.setPiece(rev.CapturedPiece, capturedSq)
		} else {
			p.setPiece(rev.CapturedPiece, to)
		}
	}

	p.UpdateCheckers()
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	return p.GenerateLegalMoves().Len() > 0
}

// IsCheckmate returns true if the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check but has no legal moves.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}
