// Package term renders a session as plain text, for playing in a terminal.
package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/vancomm/memory-server/internal/memory"
)

// Renderer keeps its own copy of the board so it can redraw the grid after
// every card change.
type Renderer struct {
	mu        sync.Mutex
	w         io.Writer
	board     memory.Board
	onRestart func()
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) DisplayBoard(b memory.Board) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.board = b.Clone()
	r.onRestart = nil
	fmt.Fprintf(r.w, "new %dx%d board\n", b.Dimension(), b.Dimension())
	r.drawLocked()
}

func (r *Renderer) UpdateCard(index int, c memory.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.board.InBounds(index) {
		return
	}
	r.board[index] = c
	r.drawLocked()
}

func (r *Renderer) UpdateMoves(totalFlips int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.w, "%d moves\n", totalFlips)
}

func (r *Renderer) UpdateTimer(elapsedSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.w, "time: %d sec\n", elapsedSeconds)
}

func (r *Renderer) ShowWinBanner(totalFlips, elapsedSeconds int, onRestart func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onRestart = onRestart
	fmt.Fprintf(r.w,
		"You won! with %d moves under %d seconds\ntype r to restart\n",
		totalFlips, elapsedSeconds,
	)
}

func (r *Renderer) TriggerRestart() bool {
	r.mu.Lock()
	fn := r.onRestart
	r.onRestart = nil
	r.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

func (r *Renderer) drawLocked() {
	fmt.Fprint(r.w, r.board.String())
}
