package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/imaddar/poker-arena/services/showdown/internal/rules"
)

// Metrics provides observability for a scoring run.
type Metrics struct {
	registry *prometheus.Registry

	// Rounds scored, one per input line
	LinesProcessed prometheus.Counter

	// Hands classified by category
	HandsClassified *prometheus.CounterVec

	// Round outcomes by winner: "player_1", "player_2", "tie"
	RoundOutcomes *prometheus.CounterVec

	RunDuration prometheus.Histogram
}

// New registers every metric on a fresh registry. Batch runs export the
// registry with WriteTextfile rather than serving it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		LinesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "showdown_lines_processed_total",
			Help: "Total number of input lines scored",
		}),
		HandsClassified: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "showdown_hands_classified_total",
			Help: "Total hands classified by category",
		}, []string{"category"}),
		RoundOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "showdown_round_outcomes_total",
			Help: "Total round outcomes by winner",
		}, []string{"winner"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "showdown_run_duration_seconds",
			Help:    "Duration of a full scoring run including input reading",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveRound records one scored line. Safe for concurrent use.
func (m *Metrics) ObserveRound(showdown rules.Showdown) {
	if m == nil {
		return
	}
	m.LinesProcessed.Inc()
	m.HandsClassified.WithLabelValues(categoryLabel(showdown.A.Category)).Inc()
	m.HandsClassified.WithLabelValues(categoryLabel(showdown.B.Category)).Inc()
	m.RoundOutcomes.WithLabelValues(winnerLabel(showdown.Result)).Inc()
}

func (m *Metrics) ObserveRunDuration(d time.Duration) {
	if m != nil {
		m.RunDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes the registry in the text exposition format for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func categoryLabel(c rules.Category) string {
	switch c {
	case rules.CategoryRoyalFlush:
		return "royal_flush"
	case rules.CategoryStraightFlush:
		return "straight_flush"
	case rules.CategoryFourOfAKind:
		return "four_of_a_kind"
	case rules.CategoryFullHouse:
		return "full_house"
	case rules.CategoryFlush:
		return "flush"
	case rules.CategoryStraight:
		return "straight"
	case rules.CategoryThreeOfAKind:
		return "three_of_a_kind"
	case rules.CategoryTwoPair:
		return "two_pair"
	case rules.CategoryOnePair:
		return "one_pair"
	case rules.CategoryHighCard:
		return "high_card"
	default:
		return "unknown"
	}
}

func winnerLabel(r rules.Result) string {
	switch r {
	case rules.ResultAWins:
		return "player_1"
	case rules.ResultBWins:
		return "player_2"
	default:
		return "tie"
	}
}
