package games

import "fmt"

// Move is a rock-paper-scissors throw
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

var rpsMoves = []Move{MoveRock, MovePaper, MoveScissors}

// beats maps each move to the move it defeats
var beats = map[Move]Move{
	MoveRock:     MoveScissors,
	MovePaper:    MoveRock,
	MoveScissors: MovePaper,
}

// ParseMove validates a user-supplied throw
func ParseMove(s string) (Move, error) {
	switch Move(s) {
	case MoveRock, MovePaper, MoveScissors:
		return Move(s), nil
	default:
		return "", fmt.Errorf("invalid move %q", s)
	}
}

// RPSResult is the outcome of one round
type RPSResult struct {
	PlayerMove Move
	BotMove    Move
	Outcome    Outcome
	Multiplier float64
}

// PlayRPS plays one round of rock-paper-scissors against a uniformly random
// house throw. A win pays 2x, a tie pushes, a loss forfeits the stake.
func PlayRPS(rng Rand, player Move) RPSResult {
	bot := rpsMoves[rng.Intn(len(rpsMoves))]

	result := RPSResult{
		PlayerMove: player,
		BotMove:    bot,
	}

	switch {
	case player == bot:
		result.Outcome = OutcomePush
		result.Multiplier = 1.0
	case beats[player] == bot:
		result.Outcome = OutcomeWin
		result.Multiplier = 2.0
	default:
		result.Outcome = OutcomeLoss
		result.Multiplier = 0
	}

	return result
}
