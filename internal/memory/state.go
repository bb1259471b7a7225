package memory

type Phase int

const (
	Idle Phase = iota
	Running
	Won
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type State struct {
	Started        bool `json:"started"`
	FlippedCount   int  `json:"flipped_count"`
	TotalFlips     int  `json:"total_flips"`
	ElapsedSeconds int  `json:"elapsed_seconds"`
}

// CardView is a card as the player may see it: symbols of face-down cards are
// withheld.
type CardView struct {
	Symbol  Symbol `json:"symbol,omitempty"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

func NewCardView(c Card) CardView {
	v := CardView{Flipped: c.Flipped, Matched: c.Matched}
	if c.FaceUp() {
		v.Symbol = c.Symbol
	}
	return v
}

type Snapshot struct {
	Generation uint64     `json:"generation"`
	Phase      Phase      `json:"phase"`
	Dimension  int        `json:"dimension"`
	Cards      []CardView `json:"cards"`
	State
}

func NewSnapshot(generation uint64, phase Phase, board Board, state State) Snapshot {
	cards := make([]CardView, len(board))
	for i, c := range board {
		cards[i] = NewCardView(c)
	}
	return Snapshot{
		Generation: generation,
		Phase:      phase,
		Dimension:  board.Dimension(),
		Cards:      cards,
		State:      state,
	}
}
