package game

// State is the complete game record. Transitions take a State and return the
// next one; the input is never modified.
type State struct {
	Board              Board
	Variant            GameVariant
	CurrentTurn        Color
	RemainingMoves     int
	WaitingForCoinToss bool
	WaitingForDiceRoll bool
	LastDiceRoll       *DiceRoll
	LastCoinToss       *CoinFlip
	IsInCheck          *Color
	IsCheckmate        *Color
	LastMove           *LastMove
	SelectedPiece      *Position
	ValidMoves         []Position
	BlockedMoves       []Position
	PendingPromotion   *Position
}

// Snapshot is the serializable view of a State handed to renderers and
// persistence. It shares no memory with the engine.
type Snapshot struct {
	Board              Board       `json:"board"`
	CurrentTurn        Color       `json:"currentTurn"`
	SelectedPiece      *Position   `json:"selectedPiece"`
	ValidMoves         []Position  `json:"validMoves"`
	BlockedMoves       []Position  `json:"blockedMoves"`
	IsInCheck          *Color      `json:"isInCheck"`
	IsCheckmate        *Color      `json:"isCheckmate"`
	LastMove           *LastMove   `json:"lastMove"`
	GameType           GameVariant `json:"gameType"`
	RemainingMoves     int         `json:"remainingMoves"`
	WaitingForCoinToss bool        `json:"waitingForCoinToss"`
	WaitingForDiceRoll bool        `json:"waitingForDiceRoll"`
	LastDiceRoll       *DiceRoll   `json:"lastDiceRoll"`
	LastCoinToss       *CoinFlip   `json:"lastCoinToss"`
	PendingPromotion   *Position   `json:"pendingPromotion"`
}

// NewState returns the opening position for variant.
func NewState(variant GameVariant) State {
	return initialState(variant, NewBoard(), White, nil)
}

func initialState(variant GameVariant, b Board, turn Color, last *LastMove) State {
	s := State{
		Board:              b,
		Variant:            variant,
		CurrentTurn:        turn,
		WaitingForCoinToss: variant == CoinToss,
		WaitingForDiceRoll: variant == Dice,
		LastMove:           last,
	}
	s = recomputeCheck(s)
	s = recomputeCheckmate(s)
	if s.IsInCheck != nil {
		s = applyCheckOverride(s)
	}
	return s
}

// Snapshot deep-copies s.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Board:              s.Board,
		CurrentTurn:        s.CurrentTurn,
		SelectedPiece:      clonePtr(s.SelectedPiece),
		ValidMoves:         clonePositions(s.ValidMoves),
		BlockedMoves:       clonePositions(s.BlockedMoves),
		IsInCheck:          clonePtr(s.IsInCheck),
		IsCheckmate:        clonePtr(s.IsCheckmate),
		LastMove:           clonePtr(s.LastMove),
		GameType:           s.Variant,
		RemainingMoves:     s.RemainingMoves,
		WaitingForCoinToss: s.WaitingForCoinToss,
		WaitingForDiceRoll: s.WaitingForDiceRoll,
		LastDiceRoll:       clonePtr(s.LastDiceRoll),
		LastCoinToss:       clonePtr(s.LastCoinToss),
		PendingPromotion:   clonePtr(s.PendingPromotion),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonePositions(in []Position) []Position {
	return append([]Position{}, in...)
}

func (s State) clearSelection() State {
	s.SelectedPiece = nil
	s.ValidMoves = nil
	s.BlockedMoves = nil
	return s
}
