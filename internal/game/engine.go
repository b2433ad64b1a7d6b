package game

import (
	"math/rand"
	"time"
)

// Engine owns one game and applies the pure transitions in turn.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	state   State
	initial State
	rnd     Randomizer
}

type Option func(*Engine)

// WithRandomizer sets the source for dice and coin draws.
func WithRandomizer(r Randomizer) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithSeed seeds a math/rand source so that draws are reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rnd = rand.New(rand.NewSource(seed)) }
}

func NewEngine(variant GameVariant, opts ...Option) *Engine {
	return newEngine(NewState(variant), opts)
}

// NewEngineFromFEN starts a game from a FEN position instead of the opening.
// ResetGame returns to that position.
func NewEngineFromFEN(variant GameVariant, fen string, opts ...Option) (*Engine, error) {
	s, err := ParseFEN(variant, fen)
	if err != nil {
		return nil, err
	}
	return newEngine(s, opts), nil
}

func newEngine(s State, opts []Option) *Engine {
	e := &Engine{state: s, initial: s}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

func (e *Engine) State() Snapshot { return e.state.Snapshot() }

func (e *Engine) Variant() GameVariant { return e.state.Variant }

func (e *Engine) SelectPiece(pos Position) { e.state = Select(e.state, pos) }

func (e *Engine) UnselectPiece() { e.state = Unselect(e.state) }

func (e *Engine) MovePiece(from, to Position) bool {
	next, ok := Move(e.state, from, to)
	if ok {
		e.state = next
	}
	return ok
}

func (e *Engine) RollDice() DiceRoll {
	next, roll := Roll(e.state, e.rnd)
	e.state = next
	return roll
}

func (e *Engine) TossCoin() CoinFlip {
	next, toss := Toss(e.state, e.rnd)
	e.state = next
	return toss
}

// PromotePawn promotes the pawn on pos, to a queen unless pt names another piece.
func (e *Engine) PromotePawn(pos Position, pt ...PieceType) bool {
	to := Queen
	if len(pt) > 0 {
		to = pt[0]
	}
	next, ok := Promote(e.state, pos, to)
	if ok {
		e.state = next
	}
	return ok
}

func (e *Engine) ResetGame() { e.state = e.initial }

func (e *Engine) FEN() string { return FEN(e.state) }

// AllLegalMoves lists every legal move of the side to move, or nothing when
// the turn state refuses moves.
func (e *Engine) AllLegalMoves() []LastMove {
	return AllLegalMoves(e.state)
}
