package rules

import (
	"reflect"
	"testing"

	"github.com/imaddar/poker-arena/services/showdown/internal/domain"
)

func TestSeededShuffleIsDeterministic(t *testing.T) {
	t.Parallel()

	deckA := append([]domain.Card(nil), domain.Standard52Deck().Cards...)
	deckB := append([]domain.Card(nil), domain.Standard52Deck().Cards...)

	if err := NewSeededShuffler(7).Shuffle(deckA); err != nil {
		t.Fatalf("shuffle A failed: %v", err)
	}
	if err := NewSeededShuffler(7).Shuffle(deckB); err != nil {
		t.Fatalf("shuffle B failed: %v", err)
	}

	if !reflect.DeepEqual(deckA, deckB) {
		t.Fatalf("expected identical shuffled decks for same seed")
	}
}

func TestSeededShuffleDiffersBySeed(t *testing.T) {
	t.Parallel()

	deckA := append([]domain.Card(nil), domain.Standard52Deck().Cards...)
	deckB := append([]domain.Card(nil), domain.Standard52Deck().Cards...)

	if err := NewSeededShuffler(7).Shuffle(deckA); err != nil {
		t.Fatalf("shuffle A failed: %v", err)
	}
	if err := NewSeededShuffler(11).Shuffle(deckB); err != nil {
		t.Fatalf("shuffle B failed: %v", err)
	}

	if reflect.DeepEqual(deckA, deckB) {
		t.Fatal("expected shuffled decks to differ for different seeds")
	}
}

func TestDealRoundDealsTenDistinctCards(t *testing.T) {
	t.Parallel()

	dealer := NewDealer(NewSeededShuffler(42))
	for i := 0; i < 50; i++ {
		a, b, err := dealer.DealRound()
		if err != nil {
			t.Fatalf("DealRound failed: %v", err)
		}
		seen := map[domain.Card]struct{}{}
		for _, card := range append(a[:], b[:]...) {
			if _, ok := seen[card]; ok {
				t.Fatalf("round %d: duplicate card %s in %s | %s", i, card, a, b)
			}
			seen[card] = struct{}{}
		}
	}
}

func TestNewDealerDefaultsToCryptoShuffler(t *testing.T) {
	t.Parallel()

	if _, _, err := NewDealer(nil).DealRound(); err != nil {
		t.Fatalf("DealRound with crypto shuffler failed: %v", err)
	}
}
