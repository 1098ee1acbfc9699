package chess

const (
	// FiftyMoveLimit - moves without a capture that end the game in a draw.
	FiftyMoveLimit   = 50
	repetitionWindow = 3
	repetitionLimit  = 3
)

type DrawReason string

const (
	NoDraw         DrawReason = ""
	DrawFiftyMoves DrawReason = "fifty_moves"
	DrawRepetition DrawReason = "repetition"
	DrawStalemate  DrawReason = "stalemate"
)

// Outcome reports an applied or rejected move.
type Outcome struct {
	Verdict Verdict    // Correct when the move was played, the rejection otherwise
	Turn    Turn       // the applied move
	Status  Verdict    // position left for the opponent: Correct, Check, mates, stalemates
	Draw    DrawReason // set when the move ends the game in a draw
}

// Finished - the game is over after this move.
func (that Outcome) Finished() bool {
	return that.Status.Final() || that.Draw != NoDraw
}

// TrackerState is the storable form of a tracker.
type TrackerState struct {
	MovesWithoutCapture int            `json:"moves_without_capture"`
	LastMoveWasCapture  bool           `json:"last_move_was_capture"`
	RecentStates        []string       `json:"recent_states,omitempty"`
	Seen                map[string]int `json:"seen,omitempty"`
}

// Tracker follows the draw-relevant history of one game.
type Tracker struct {
	board *Board

	movesWithoutCapture int
	lastMoveWasCapture  bool
	recentStates        []string
	seen                map[string]int
}

// NewTracker - tracker with an empty history starting at the board's position.
func NewTracker(board *Board) *Tracker {
	return &Tracker{
		board: board,
		seen:  map[string]int{board.Position().Key(): 1},
	}
}

// RestoreTracker - tracker over a restored board with stored counters.
func RestoreTracker(board *Board, state TrackerState) *Tracker {
	tracker := &Tracker{
		board:               board,
		movesWithoutCapture: state.MovesWithoutCapture,
		lastMoveWasCapture:  state.LastMoveWasCapture,
		recentStates:        append([]string(nil), state.RecentStates...),
		seen:                make(map[string]int, len(state.Seen)),
	}
	for key, n := range state.Seen {
		tracker.seen[key] = n
	}
	return tracker
}

func (that *Tracker) State() TrackerState {
	seen := make(map[string]int, len(that.seen))
	for key, n := range that.seen {
		seen[key] = n
	}

	return TrackerState{
		MovesWithoutCapture: that.movesWithoutCapture,
		LastMoveWasCapture:  that.lastMoveWasCapture,
		RecentStates:        append([]string(nil), that.recentStates...),
		Seen:                seen,
	}
}

func (that *Tracker) Board() *Board {
	return that.board
}

func (that *Tracker) MovesWithoutCapture() int {
	return that.movesWithoutCapture
}

func (that *Tracker) LastMoveWasCapture() bool {
	return that.lastMoveWasCapture
}

// Reset - new game: starting position and empty history.
func (that *Tracker) Reset() {
	if that.board == nil {
		that.board = NewBoard()
	} else {
		*that.board = *NewBoard()
	}

	that.movesWithoutCapture = 0
	that.lastMoveWasCapture = false
	that.recentStates = nil
	that.seen = map[string]int{that.board.Position().Key(): 1}
}

// RecordMove updates the half-move clock and reports a fifty-move draw.
func (that *Tracker) RecordMove(wasCapture bool) bool {
	that.lastMoveWasCapture = wasCapture
	if wasCapture {
		that.movesWithoutCapture = 0
	} else {
		that.movesWithoutCapture++
	}

	return that.movesWithoutCapture >= FiftyMoveLimit
}

// CheckRepetition adds the current snapshot to the window of recent states
// and reports a draw when the whole window holds the same snapshot.
func (that *Tracker) CheckRepetition() bool {
	that.recentStates = append(that.recentStates, that.board.Snapshot())
	if len(that.recentStates) > repetitionWindow {
		that.recentStates = that.recentStates[len(that.recentStates)-repetitionWindow:]
	}

	if len(that.recentStates) < repetitionWindow {
		return false
	}

	for _, state := range that.recentStates[1:] {
		if state != that.recentStates[0] {
			return false
		}
	}

	return true
}

// MakeMove plays the move and updates the draw history.
func (that *Tracker) MakeMove(move Move) (Outcome, error) {
	verdict, err := that.board.DoTurnPromote(move.From, move.To, move.Promotion)
	if err != nil {
		return Outcome{Verdict: UnnaturalMove}, err
	}
	if verdict != Correct {
		return Outcome{Verdict: verdict}, nil
	}

	turn := that.board.LastTurn()
	outcome := Outcome{
		Verdict: Correct,
		Turn:    turn,
		Status:  that.board.Status(),
	}

	fifty := that.RecordMove(turn.IsCapture())
	repeated := that.recordPosition()

	switch {
	case outcome.Status.Final():
		if outcome.Status == WhiteStalemate || outcome.Status == BlackStalemate {
			outcome.Draw = DrawStalemate
		}
	case repeated:
		outcome.Draw = DrawRepetition
	case fifty:
		outcome.Draw = DrawFiftyMoves
	}

	return outcome, nil
}

// recordPosition counts the position and reports its third occurrence.
func (that *Tracker) recordPosition() bool {
	if that.seen == nil {
		that.seen = make(map[string]int)
	}

	key := that.board.Position().Key()
	that.seen[key]++

	return that.seen[key] >= repetitionLimit
}
