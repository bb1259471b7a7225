package memory

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/memory-server/internal/shuffle"
)

var Log logrus.FieldLogger = logrus.StandardLogger()

type BoardFunc func(Params, *rand.Rand) (Board, error)

type Option func(*Session)

func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rnd = r }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

// WithBoardFunc replaces GenerateBoard, e.g. to deal a fixed layout.
func WithBoardFunc(f BoardFunc) Option {
	return func(s *Session) { s.generate = f }
}

// Session is one player's game. Every entry point (clicks, start, restart,
// timer ticks and delayed callbacks) runs under mu, one at a time.
//
// Each generated board gets a new generation number. Delayed callbacks carry
// the generation they were scheduled in and do nothing once a newer board
// has been dealt.
type Session struct {
	mu       sync.Mutex
	params   Params
	renderer Renderer
	clock    quartz.Clock
	rnd      *rand.Rand
	log      logrus.FieldLogger
	generate BoardFunc
	timer    *Timer

	board      Board
	state      State
	phase      Phase
	faceUp     []int
	generation uint64
	closed     bool
}

// NewSession validates params, deals the first board and shows it on
// renderer. The game stays Idle until the first click or Start.
func NewSession(params Params, renderer Renderer, opts ...Option) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}

	s := &Session{
		params:   params,
		renderer: renderer,
		clock:    quartz.NewReal(),
		log:      Log,
		generate: GenerateBoard,
		faceUp:   make([]int, 0, 2),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = shuffle.SeededRand()
	}
	s.timer = NewTimer(s.clock, params.TickInterval)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.newGameLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Params() Params {
	return s.params
}

// Click flips the card at index. Clicks on face-up cards, on out of range
// indexes, or while a pair is still face up are ignored.
func (s *Session) Click(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{
		"generation": s.generation,
		"card":       index,
	})

	if s.closed {
		return
	}
	if !s.board.InBounds(index) {
		log.Debug("click out of bounds")
		return
	}
	card := &s.board[index]
	if card.Flipped || card.Matched {
		log.Debug("card already face up")
		return
	}
	if s.state.FlippedCount >= 2 {
		log.Debug("pair still face up, click ignored")
		return
	}

	card.Flipped = true
	s.state.FlippedCount++
	s.state.TotalFlips++
	s.faceUp = append(s.faceUp, index)
	s.renderer.UpdateCard(index, *card)
	s.renderer.UpdateMoves(s.state.TotalFlips)

	if !s.state.Started {
		s.startLocked()
	}

	if s.state.FlippedCount == 2 {
		s.resolvePairLocked()
	}

	if s.board.AllMatched() {
		log.WithField("total_flips", s.state.TotalFlips).Debug("board cleared")
		s.afterLocked(s.params.WinDelay, "win", s.announceWinLocked)
	}
}

// Start starts the clock without flipping a card. No-op once started.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.Started {
		return
	}
	s.startLocked()
}

// Restart deals a new board and returns the session to Idle. Pending
// callbacks of the previous board are invalidated.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	return s.newGameLocked()
}

// Close stops the timer and drops every pending callback. A closed session
// ignores all further input.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.generation++
	s.timer.Stop()
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return NewSnapshot(s.generation, s.phase, s.board, s.state)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.phase
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generation
}

// Board returns a copy of the current board, face-down symbols included.
func (s *Session) Board() Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Clone()
}

func (s *Session) newGameLocked() error {
	board, err := s.generate(s.params, s.rnd)
	if err != nil {
		return fmt.Errorf("unable to generate board: %w", err)
	}

	s.generation++
	s.timer.Stop()
	s.board = board
	s.state = State{}
	s.phase = Idle
	s.faceUp = s.faceUp[:0]

	s.log.WithFields(logrus.Fields{
		"generation": s.generation,
		"dimension":  board.Dimension(),
	}).Debug("new board")

	s.renderer.DisplayBoard(board.Clone())
	s.renderer.UpdateMoves(0)
	s.renderer.UpdateTimer(0)
	return nil
}

func (s *Session) startLocked() {
	s.state.Started = true
	s.state.ElapsedSeconds = 0
	s.phase = Running
	s.renderer.UpdateTimer(0)

	generation := s.generation
	s.timer.Start(func() { s.tick(generation) })
	s.log.WithField("generation", generation).Debug("game started")
}

func (s *Session) tick(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation || s.phase != Running {
		return
	}
	s.state.ElapsedSeconds++
	s.renderer.UpdateTimer(s.state.ElapsedSeconds)
}

func (s *Session) resolvePairLocked() {
	a, b := s.faceUp[0], s.faceUp[1]
	if s.board[a].Symbol == s.board[b].Symbol {
		for _, i := range s.faceUp {
			s.board[i].Matched = true
			s.renderer.UpdateCard(i, s.board[i])
		}
		s.state.FlippedCount = 0
		s.faceUp = s.faceUp[:0]
		return
	}
	s.afterLocked(s.params.MismatchDelay, "mismatch", s.flipBackLocked)
}

func (s *Session) flipBackLocked() {
	for i := range s.board {
		if s.board[i].Flipped && !s.board[i].Matched {
			s.board[i].Flipped = false
			s.renderer.UpdateCard(i, s.board[i])
		}
	}
	s.state.FlippedCount = 0
	s.faceUp = s.faceUp[:0]
}

func (s *Session) announceWinLocked() {
	s.timer.Stop()
	s.phase = Won

	generation := s.generation
	s.log.WithFields(logrus.Fields{
		"generation":      generation,
		"total_flips":     s.state.TotalFlips,
		"elapsed_seconds": s.state.ElapsedSeconds,
	}).Info("game won")

	s.renderer.ShowWinBanner(
		s.state.TotalFlips, s.state.ElapsedSeconds,
		func() { s.restartFrom(generation) },
	)
}

// restartFrom is the win banner's restart trigger. It only acts if the won
// board is still the current one.
func (s *Session) restartFrom(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || generation != s.generation {
		return
	}
	if err := s.newGameLocked(); err != nil {
		s.log.WithError(err).Error("unable to restart game")
	}
}

// afterLocked runs fn after d under the session lock, unless a new board
// has been dealt in the meantime.
func (s *Session) afterLocked(d time.Duration, name string, fn func()) {
	generation := s.generation
	s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if generation != s.generation {
			s.log.WithFields(logrus.Fields{
				"callback":   name,
				"scheduled":  generation,
				"generation": s.generation,
			}).Debug("dropping stale callback")
			return
		}
		fn()
	}, "memory", name)
}
