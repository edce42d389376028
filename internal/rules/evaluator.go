package rules

import (
	"github.com/imaddar/poker-arena/services/showdown/internal/domain"
)

type Category uint8

const (
	CategoryHighCard Category = iota + 1
	CategoryOnePair
	CategoryTwoPair
	CategoryThreeOfAKind
	CategoryStraight
	CategoryFlush
	CategoryFullHouse
	CategoryFourOfAKind
	CategoryStraightFlush
	CategoryRoyalFlush
)

// Categories lists every category from weakest to strongest.
var Categories = []Category{
	CategoryHighCard,
	CategoryOnePair,
	CategoryTwoPair,
	CategoryThreeOfAKind,
	CategoryStraight,
	CategoryFlush,
	CategoryFullHouse,
	CategoryFourOfAKind,
	CategoryStraightFlush,
	CategoryRoyalFlush,
}

func (c Category) String() string {
	switch c {
	case CategoryRoyalFlush:
		return "Royal Flush"
	case CategoryStraightFlush:
		return "Straight Flush"
	case CategoryFourOfAKind:
		return "Four of a Kind"
	case CategoryFullHouse:
		return "Full House"
	case CategoryFlush:
		return "Flush"
	case CategoryStraight:
		return "Straight"
	case CategoryThreeOfAKind:
		return "Three of a Kind"
	case CategoryTwoPair:
		return "Two Pair"
	case CategoryOnePair:
		return "One Pair"
	case CategoryHighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// Classification holds a hand's category and the tie-break values needed to
// order it against another hand of the same category, most decisive first.
type Classification struct {
	Category Category
	Tiebreak []domain.Value
}

func Classify(hand domain.Hand) Classification {
	buckets := valueBuckets(hand)

	switch {
	case len(buckets[4]) == 1:
		return Classification{Category: CategoryFourOfAKind, Tiebreak: []domain.Value{buckets[4][0]}}
	case len(buckets[3]) == 1:
		// Full houses are ordered by the triple alone.
		if len(buckets[2]) == 1 {
			return Classification{Category: CategoryFullHouse, Tiebreak: []domain.Value{buckets[3][0]}}
		}
		return Classification{Category: CategoryThreeOfAKind, Tiebreak: []domain.Value{buckets[3][0]}}
	case len(buckets[2]) == 2:
		tiebreak := []domain.Value{buckets[2][0], buckets[2][1], buckets[1][0]}
		return Classification{Category: CategoryTwoPair, Tiebreak: tiebreak}
	case len(buckets[2]) == 1:
		tiebreak := append([]domain.Value{buckets[2][0]}, buckets[1]...)
		return Classification{Category: CategoryOnePair, Tiebreak: tiebreak}
	}

	ordered := hand.Values()
	domain.SortValuesDescending(ordered)
	straight := isStraight(ordered)
	flush := isFlush(hand)

	switch {
	case straight && flush && ordered[0] == domain.ValueAce:
		return Classification{Category: CategoryRoyalFlush, Tiebreak: []domain.Value{}}
	case straight && flush:
		return Classification{Category: CategoryStraightFlush, Tiebreak: []domain.Value{ordered[0]}}
	case straight:
		return Classification{Category: CategoryStraight, Tiebreak: []domain.Value{ordered[0]}}
	case flush:
		return Classification{Category: CategoryFlush, Tiebreak: ordered}
	default:
		return Classification{Category: CategoryHighCard, Tiebreak: ordered}
	}
}

// valueBuckets groups the hand's values by how often they occur. Every bucket
// is ordered strongest first.
func valueBuckets(hand domain.Hand) map[int][]domain.Value {
	counts := make(map[domain.Value]int, domain.HandSize)
	for _, card := range hand {
		counts[card.Value]++
	}

	buckets := make(map[int][]domain.Value, 4)
	for value, count := range counts {
		buckets[count] = append(buckets[count], value)
	}
	for _, values := range buckets {
		domain.SortValuesDescending(values)
	}
	return buckets
}

// isStraight expects five distinct values ordered strongest first. A-2-3-4-5
// is not a straight.
func isStraight(ordered []domain.Value) bool {
	return int(ordered[len(ordered)-1])-int(ordered[0]) == domain.HandSize-1
}

func isFlush(hand domain.Hand) bool {
	for i := 1; i < len(hand); i++ {
		if hand[i].Suit != hand[i-1].Suit {
			return false
		}
	}
	return true
}
