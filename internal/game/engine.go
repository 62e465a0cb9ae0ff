package game

// Validate reports ErrInvalidMove unless m removes a positive number of pieces
// that the target row still holds.
func Validate(b *Board, m Move) error {
	if m.RowIndex < 0 || m.RowIndex >= len(b.Rows) {
		return ErrInvalidMove
	}
	if m.Count <= 0 || b.Rows[m.RowIndex] < m.Count {
		return ErrInvalidMove
	}
	return nil
}

// ApplyMove validates m, removes the pieces and hands the turn to the other seat.
// The board is left untouched when the move is rejected.
func ApplyMove(b *Board, m Move) error {
	if err := Validate(b, m); err != nil {
		return err
	}
	b.Rows[m.RowIndex] -= m.Count
	b.PlayerTurn = b.PlayerTurn.Other()
	return nil
}
