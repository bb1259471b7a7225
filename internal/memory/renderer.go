package memory

// Renderer displays a session and owns the player's input surface. Calls are
// made while the session is locked, so implementations must not call back
// into the session before returning; onRestart in particular has to be
// invoked later, from the renderer's own input path.
type Renderer interface {
	DisplayBoard(board Board)
	UpdateCard(index int, card Card)
	UpdateMoves(totalFlips int)
	UpdateTimer(elapsedSeconds int)
	ShowWinBanner(totalFlips, elapsedSeconds int, onRestart func())
}

// NopRenderer discards everything.
type NopRenderer struct{}

func (NopRenderer) DisplayBoard(Board)             {}
func (NopRenderer) UpdateCard(int, Card)           {}
func (NopRenderer) UpdateMoves(int)                {}
func (NopRenderer) UpdateTimer(int)                {}
func (NopRenderer) ShowWinBanner(int, int, func()) {}
