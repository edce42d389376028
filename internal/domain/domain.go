package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	HandSize      = 5
	TokensPerLine = 2 * HandSize
)

var (
	ErrMalformedHand = errors.New("malformed hand")
	ErrUnknownValue  = errors.New("unknown card value")
	ErrUnknownSuit   = errors.New("unknown card suit")
)

// Value is a card's strength index in the canonical ordering A K Q J T 9 .. 2.
// Lower is stronger: ValueAce is 0 and ValueTwo is 12.
type Value uint8

const (
	ValueAce Value = iota
	ValueKing
	ValueQueen
	ValueJack
	ValueTen
	ValueNine
	ValueEight
	ValueSeven
	ValueSix
	ValueFive
	ValueFour
	ValueThree
	ValueTwo
)

const valueSymbols = "AKQJT98765432"

var valueTable = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(valueSymbols); i++ {
		table[valueSymbols[i]] = int8(i)
	}
	return table
}()

func ParseValue(symbol byte) (Value, error) {
	idx := valueTable[symbol]
	if idx < 0 {
		return 0, fmt.Errorf("%w %q", ErrUnknownValue, symbol)
	}
	return Value(idx), nil
}

func (v Value) Valid() bool {
	return v <= ValueTwo
}

func (v Value) String() string {
	if !v.Valid() {
		return "?"
	}
	return valueSymbols[v : v+1]
}

// Stronger reports whether v beats o under card-value ordering.
func (v Value) Stronger(o Value) bool {
	return v < o
}

// CompareValues returns 1 when a is stronger than b, -1 when weaker and 0 when equal.
func CompareValues(a Value, b Value) int {
	switch {
	case a.Stronger(b):
		return 1
	case b.Stronger(a):
		return -1
	default:
		return 0
	}
}

// SortValuesDescending orders values strongest first.
func SortValuesDescending(values []Value) {
	sort.Slice(values, func(i, j int) bool { return values[i].Stronger(values[j]) })
}

type Suit string

const (
	SuitClubs    Suit = "clubs"
	SuitDiamonds Suit = "diamonds"
	SuitHearts   Suit = "hearts"
	SuitSpades   Suit = "spades"
)

var suitSymbols = map[byte]Suit{
	'C': SuitClubs,
	'D': SuitDiamonds,
	'H': SuitHearts,
	'S': SuitSpades,
}

func ParseSuit(symbol byte) (Suit, error) {
	suit, ok := suitSymbols[symbol]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownSuit, symbol)
	}
	return suit, nil
}

func (s Suit) Symbol() string {
	switch s {
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

type Card struct {
	Value Value `json:"value"`
	Suit  Suit  `json:"suit"`
}

func NewCard(value Value, suit Suit) Card {
	return Card{Value: value, Suit: suit}
}

// ParseCard parses a two character token such as "TH". Both symbols are
// upper case; "Th" and "tH" are rejected.
func ParseCard(token string) (Card, error) {
	if len(token) != 2 {
		return Card{}, fmt.Errorf("card token %q must be 2 characters", token)
	}
	value, err := ParseValue(token[0])
	if err != nil {
		return Card{}, fmt.Errorf("card token %q: %w", token, err)
	}
	suit, err := ParseSuit(token[1])
	if err != nil {
		return Card{}, fmt.Errorf("card token %q: %w", token, err)
	}
	return NewCard(value, suit), nil
}

func (c Card) String() string {
	return c.Value.String() + c.Suit.Symbol()
}

type Hand [HandSize]Card

func ParseHand(tokens []string) (Hand, error) {
	var hand Hand
	if len(tokens) != HandSize {
		return hand, &MalformedHandError{Tokens: tokens, Reason: fmt.Sprintf("hand has %d cards, expected %d", len(tokens), HandSize)}
	}
	for i, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return Hand{}, &MalformedHandError{Tokens: tokens, Reason: err.Error()}
		}
		hand[i] = card
	}
	return hand, nil
}

// MustParseHand parses a space separated hand and panics on error. Intended
// for tests and literals.
func MustParseHand(s string) Hand {
	hand, err := ParseHand(strings.Fields(s))
	if err != nil {
		panic(err)
	}
	return hand
}

func (h Hand) Values() []Value {
	values := make([]Value, 0, HandSize)
	for _, card := range h {
		values = append(values, card.Value)
	}
	return values
}

func (h Hand) String() string {
	parts := make([]string, 0, HandSize)
	for _, card := range h {
		parts = append(parts, card.String())
	}
	return strings.Join(parts, " ")
}

type MalformedHandError struct {
	Line   int
	Tokens []string
	Reason string
}

func (e *MalformedHandError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: invalid hand found %q: %s", e.Line, e.Tokens, e.Reason)
	}
	return fmt.Sprintf("invalid hand found %q: %s", e.Tokens, e.Reason)
}

func (e *MalformedHandError) Unwrap() error {
	return ErrMalformedHand
}

type Deck struct {
	Cards []Card `json:"cards"`
}

func Standard52Deck() Deck {
	cards := make([]Card, 0, 52)
	suits := []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

	for _, suit := range suits {
		for value := ValueAce; value <= ValueTwo; value++ {
			cards = append(cards, NewCard(value, suit))
		}
	}

	return Deck{Cards: cards}
}
