package game

// IsOver is true once every row is empty.
func IsOver(b Board) bool {
	return b.Total() == 0
}

// Winner returns the seat that took the last piece. Only meaningful when IsOver is true:
// the turn has already passed to the loser by then.
func Winner(b Board) Player {
	return b.PlayerTurn.Other()
}
