package rules

import (
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/imaddar/poker-arena/services/showdown/internal/domain"
)

// The reference evaluator treats A-2-3-4-5 as a straight, so rounds holding a
// wheel are skipped. Every other round dealt from a single deck must agree.
func TestCompare_AgreesWithReferenceEvaluator(t *testing.T) {
	t.Parallel()

	dealer := NewDealer(NewSeededShuffler(2024))
	compared := 0
	for i := 0; i < 20000; i++ {
		a, b, err := dealer.DealRound()
		require.NoError(t, err)
		if isWheel(a) || isWheel(b) {
			continue
		}

		got := ScoreHands(a, b).Result
		want := referenceResult(t, a, b)
		require.Equalf(t, want, got, "%s vs %s", a, b)
		compared++
	}
	require.Greater(t, compared, 19000)
}

func referenceResult(t *testing.T, a domain.Hand, b domain.Hand) Result {
	t.Helper()
	sa := poker.Eval5(referenceHand(t, a))
	sb := poker.Eval5(referenceHand(t, b))
	switch {
	case sa > sb:
		return ResultAWins
	case sa < sb:
		return ResultBWins
	default:
		return ResultTie
	}
}

func referenceHand(t *testing.T, hand domain.Hand) *[5]poker.Card {
	t.Helper()
	var out [5]poker.Card
	for i, card := range hand {
		c, err := poker.MakeCard(referenceSuit(card.Suit), referenceRank(card.Value))
		require.NoError(t, err)
		out[i] = c
	}
	return &out
}

func referenceSuit(s domain.Suit) poker.Suit {
	switch s {
	case domain.SuitClubs:
		return poker.Suit(0)
	case domain.SuitDiamonds:
		return poker.Suit(1)
	case domain.SuitHearts:
		return poker.Suit(2)
	default:
		return poker.Suit(3)
	}
}

// The reference library numbers ranks Ace=1 through King=13.
func referenceRank(v domain.Value) poker.Rank {
	if v == domain.ValueAce {
		return poker.Rank(1)
	}
	return poker.Rank(14 - int(v))
}

func isWheel(hand domain.Hand) bool {
	seen := map[domain.Value]bool{}
	for _, card := range hand {
		seen[card.Value] = true
	}
	return len(seen) == 5 && seen[domain.ValueAce] && seen[domain.ValueTwo] &&
		seen[domain.ValueThree] && seen[domain.ValueFour] && seen[domain.ValueFive]
}
