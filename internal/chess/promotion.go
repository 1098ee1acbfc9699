package chess

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoPawn           = fmt.Errorf("%w: no pawn at the specified position to promote", ErrInvalidArgument)
	ErrNotPromotionRank = fmt.Errorf("%w: pawn is not in the promotion row", ErrInvalidArgument)
	ErrInvalidPromotion = fmt.Errorf("%w: invalid promotion type", ErrInvalidArgument)
)

// PromotePawn replaces a pawn standing on its farthest rank with a piece of
// the requested kind and the same colour.
func (that *Board) PromotePawn(position Coord, kind Kind) error {
	p := that.At(position)
	if !position.Valid() || p.Kind != Pawn {
		return fmt.Errorf("%w: %s", ErrNoPawn, position)
	}

	if position.Row != promotionRow(p.Colour) {
		return fmt.Errorf("%w: %s", ErrNotPromotionRank, position)
	}

	if !kind.Promotable() {
		return fmt.Errorf("%w: %s", ErrInvalidPromotion, kind)
	}

	promoted := NewPiece(kind, p.Colour)
	// a promoted rook never gives castling rights
	promoted.Moved = true
	that.set(position, promoted)

	return nil
}
