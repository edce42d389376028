package rules

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"

	"github.com/imaddar/poker-arena/services/showdown/internal/domain"
)

type Shuffler interface {
	Shuffle([]domain.Card) error
}

// Dealer deals head-to-head rounds: two five card hands from one freshly
// shuffled deck.
type Dealer interface {
	DealRound() (domain.Hand, domain.Hand, error)
}

type cryptoShuffler struct{}

type seededShuffler struct {
	rng *rand.Rand
}

type standardDealer struct {
	shuffler Shuffler
}

func NewCryptoShuffler() Shuffler {
	return cryptoShuffler{}
}

func NewSeededShuffler(seed int64) Shuffler {
	return seededShuffler{rng: rand.New(rand.NewSource(seed))}
}

func NewDealer(shuffler Shuffler) Dealer {
	if shuffler == nil {
		shuffler = NewCryptoShuffler()
	}
	return standardDealer{shuffler: shuffler}
}

func (s cryptoShuffler) Shuffle(cards []domain.Card) error {
	for i := len(cards) - 1; i > 0; i-- {
		n, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("crypto shuffle failed: %w", err)
		}
		j := int(n.Int64())
		cards[i], cards[j] = cards[j], cards[i]
	}
	return nil
}

func (s seededShuffler) Shuffle(cards []domain.Card) error {
	for i := len(cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return nil
}

func (d standardDealer) DealRound() (domain.Hand, domain.Hand, error) {
	deck := domain.Standard52Deck().Cards
	if err := d.shuffler.Shuffle(deck); err != nil {
		return domain.Hand{}, domain.Hand{}, err
	}
	if len(deck) < domain.TokensPerLine {
		return domain.Hand{}, domain.Hand{}, fmt.Errorf("deck exhausted: %d cards left", len(deck))
	}

	var a, b domain.Hand
	copy(a[:], deck[:domain.HandSize])
	copy(b[:], deck[domain.HandSize:domain.TokensPerLine])
	return a, b, nil
}
