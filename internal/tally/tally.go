package tally

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/imaddar/poker-arena/services/showdown/internal/domain"
	"github.com/imaddar/poker-arena/services/showdown/internal/rules"
)

const (
	StdinPath = "-"

	contextCheckInterval = 1024
	maxLineBytes         = 1 << 20
)

var (
	ErrInputIO        = errors.New("input file unreadable")
	ErrInvalidWorkers = errors.New("workers must be greater than zero")
)

// Outcome is the number of rounds won by each player.
type Outcome struct {
	Player1 int `json:"player_1"`
	Player2 int `json:"player_2"`
}

func OutcomeOf(result rules.Result) Outcome {
	switch result {
	case rules.ResultAWins:
		return Outcome{Player1: 1}
	case rules.ResultBWins:
		return Outcome{Player2: 1}
	default:
		return Outcome{}
	}
}

func (o Outcome) Add(other Outcome) Outcome {
	return Outcome{Player1: o.Player1 + other.Player1, Player2: o.Player2 + other.Player2}
}

// CategoryCounts is indexed by rules.Category.
type CategoryCounts [int(rules.CategoryRoyalFlush) + 1]int

func (c CategoryCounts) Add(other CategoryCounts) CategoryCounts {
	for i := range c {
		c[i] += other[i]
	}
	return c
}

// Result is a partial or total tally. Merging is commutative and associative,
// so chunks may be reduced in any order.
type Result struct {
	Outcome
	Ties       int               `json:"ties"`
	Lines      int               `json:"lines"`
	Categories [2]CategoryCounts `json:"-"`
}

func (r Result) Merge(other Result) Result {
	return Result{
		Outcome: r.Outcome.Add(other.Outcome),
		Ties:    r.Ties + other.Ties,
		Lines:   r.Lines + other.Lines,
		Categories: [2]CategoryCounts{
			r.Categories[0].Add(other.Categories[0]),
			r.Categories[1].Add(other.Categories[1]),
		},
	}
}

func (r *Result) record(showdown rules.Showdown) {
	r.Outcome = r.Outcome.Add(OutcomeOf(showdown.Result))
	if showdown.Result == rules.ResultTie {
		r.Ties++
	}
	r.Lines++
	r.Categories[0][showdown.A.Category]++
	r.Categories[1][showdown.B.Category]++
}

// ParseLine splits a round into player 1's and player 2's hands. lineNo is
// 1-based, or 0 for input that did not come from a file, and is only used
// for diagnostics.
func ParseLine(lineNo int, line string) (domain.Hand, domain.Hand, error) {
	tokens := strings.Fields(line)
	if len(tokens) != domain.TokensPerLine {
		return domain.Hand{}, domain.Hand{}, &domain.MalformedHandError{
			Line:   lineNo,
			Tokens: tokens,
			Reason: fmt.Sprintf("expected %d cards, got %d", domain.TokensPerLine, len(tokens)),
		}
	}

	a, err := domain.ParseHand(tokens[:domain.HandSize])
	if err != nil {
		return domain.Hand{}, domain.Hand{}, withLine(err, lineNo, tokens)
	}
	b, err := domain.ParseHand(tokens[domain.HandSize:])
	if err != nil {
		return domain.Hand{}, domain.Hand{}, withLine(err, lineNo, tokens)
	}
	return a, b, nil
}

func ScoreLine(lineNo int, line string) (rules.Showdown, error) {
	a, b, err := ParseLine(lineNo, line)
	if err != nil {
		return rules.Showdown{}, err
	}
	return rules.ScoreHands(a, b), nil
}

// ScoreLines scores every line on the calling goroutine.
func ScoreLines(lines []string) (Result, error) {
	return scoreChunk(context.Background(), 0, lines, nil)
}

type Observer interface {
	ObserveRound(showdown rules.Showdown)
}

type Config struct {
	// Workers bounds the number of chunks; zero means runtime.NumCPU().
	Workers  int
	Logger   *slog.Logger
	Observer Observer
}

type Scorer struct {
	workers  int
	logger   *slog.Logger
	observer Observer
}

func New(config Config) (Scorer, error) {
	workers := config.Workers
	if workers < 0 {
		return Scorer{}, ErrInvalidWorkers
	}
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Scorer{workers: workers, logger: logger, observer: config.Observer}, nil
}

func (s Scorer) Workers() int {
	return s.workers
}

// Score partitions lines into contiguous chunks, scores each chunk on its own
// goroutine and sums the partial results once every chunk has finished. The
// first malformed line aborts the run.
func (s Scorer) Score(ctx context.Context, lines []string) (Result, error) {
	chunks := Partition(len(lines), s.workers)
	if len(chunks) == 0 {
		return Result{}, ctx.Err()
	}

	partials := make([]Result, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			partial, err := scoreChunk(ctx, chunk.Start, lines[chunk.Start:chunk.End], s.observer)
			if err != nil {
				return err
			}
			s.logger.Debug("chunk scored",
				"chunk", i,
				"first_line", chunk.Start+1,
				"lines", partial.Lines,
				"player_1", partial.Player1,
				"player_2", partial.Player2,
			)
			partials[i] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, partial := range partials {
		total = total.Merge(partial)
	}
	return total, nil
}

type Chunk struct {
	Start int
	End   int
}

// Partition splits n lines into at most workers contiguous chunks of
// ceil(n/workers) lines.
func Partition(n int, workers int) []Chunk {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	size := n / workers
	if n%workers > 0 {
		size++
	}

	chunks := make([]Chunk, 0, workers)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
	}
	return chunks
}

func scoreChunk(ctx context.Context, offset int, lines []string, observer Observer) (Result, error) {
	var result Result
	for i, line := range lines {
		if i%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}
		showdown, err := ScoreLine(offset+i+1, line)
		if err != nil {
			return result, err
		}
		result.record(showdown)
		if observer != nil {
			observer.ObserveRound(showdown)
		}
	}
	return result, nil
}

func withLine(err error, lineNo int, tokens []string) error {
	var malformed *domain.MalformedHandError
	if errors.As(err, &malformed) {
		return &domain.MalformedHandError{Line: lineNo, Tokens: tokens, Reason: malformed.Reason}
	}
	return err
}

// ReadLines reads every line of the file at path, or of stdin when path is "-".
func ReadLines(path string) ([]string, error) {
	if path == StdinPath {
		return ReadLinesFrom(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputIO, err)
	}
	defer f.Close()

	lines, err := ReadLinesFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

func ReadLinesFrom(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lines := make([]string, 0, 1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &domain.MalformedHandError{
				Line:   len(lines) + 1,
				Reason: fmt.Sprintf("line longer than %d bytes", maxLineBytes),
			}
		}
		return nil, fmt.Errorf("%w: %w", ErrInputIO, err)
	}
	return lines, nil
}
