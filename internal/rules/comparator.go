package rules

import "github.com/imaddar/poker-arena/services/showdown/internal/domain"

type Result int8

const (
	ResultTie Result = iota
	ResultAWins
	ResultBWins
)

func (r Result) String() string {
	switch r {
	case ResultAWins:
		return "player 1"
	case ResultBWins:
		return "player 2"
	default:
		return "tie"
	}
}

// Opposite swaps the winner; a tie stays a tie.
func (r Result) Opposite() Result {
	switch r {
	case ResultAWins:
		return ResultBWins
	case ResultBWins:
		return ResultAWins
	default:
		return ResultTie
	}
}

func Compare(a Classification, b Classification) Result {
	if a.Category > b.Category {
		return ResultAWins
	}
	if a.Category < b.Category {
		return ResultBWins
	}

	n := len(a.Tiebreak)
	if len(b.Tiebreak) < n {
		n = len(b.Tiebreak)
	}
	for i := 0; i < n; i++ {
		switch domain.CompareValues(a.Tiebreak[i], b.Tiebreak[i]) {
		case 1:
			return ResultAWins
		case -1:
			return ResultBWins
		}
	}
	return ResultTie
}

// Showdown is one compared pair of hands.
type Showdown struct {
	A      Classification
	B      Classification
	Result Result
}

func ScoreHands(a domain.Hand, b domain.Hand) Showdown {
	ca := Classify(a)
	cb := Classify(b)
	return Showdown{A: ca, B: cb, Result: Compare(ca, cb)}
}
