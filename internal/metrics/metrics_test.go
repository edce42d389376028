package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imaddar/poker-arena/services/showdown/internal/domain"
	"github.com/imaddar/poker-arena/services/showdown/internal/rules"
)

func TestObserveRound(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRound(rules.ScoreHands(
		domain.MustParseHand("QH KH TH AH JH"),
		domain.MustParseHand("2S KD TH 9H AD"),
	))
	m.ObserveRound(rules.ScoreHands(
		domain.MustParseHand("2S KD TH 9H AD"),
		domain.MustParseHand("2C KS TD 9C AH"),
	))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LinesProcessed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HandsClassified.WithLabelValues("royal_flush")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HandsClassified.WithLabelValues("high_card")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundOutcomes.WithLabelValues("player_1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RoundOutcomes.WithLabelValues("tie")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveRound(rules.Showdown{})
	m.ObserveRunDuration(time.Second)
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRunDuration(150 * time.Millisecond)
	m.LinesProcessed.Add(3)

	path := filepath.Join(t.TempDir(), "showdown.prom")
	require.NoError(t, m.WriteTextfile(path))

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "showdown_lines_processed_total 3")
	assert.Contains(t, string(payload), "showdown_run_duration_seconds_count 1")
}

func TestEveryCategoryHasALabel(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for _, c := range rules.Categories {
		label := categoryLabel(c)
		require.NotEqual(t, "unknown", label, c.String())
		seen[label] = struct{}{}
	}
	assert.Len(t, seen, len(rules.Categories))
}
