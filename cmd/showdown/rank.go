package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imaddar/poker-arena/services/showdown/internal/domain"
	"github.com/imaddar/poker-arena/services/showdown/internal/rules"
	"github.com/imaddar/poker-arena/services/showdown/internal/tally"
)

func (a *app) rankCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <5 cards> [5 more cards]",
		Short: "Classify one hand, or compare two hands like a single input line",
		Example: `  showdown rank QH KH TH AH JH
  showdown rank "2S 2D KH KD 9H 3S 3D QH QD 9H"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := strings.Fields(strings.Join(args, " "))
			switch len(tokens) {
			case domain.HandSize:
				hand, err := domain.ParseHand(tokens)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, describeClassification("Hand", hand, rules.Classify(hand)))
				return nil
			default:
				first, second, err := tally.ParseLine(0, strings.Join(tokens, " "))
				if err != nil {
					return err
				}
				showdown := rules.ScoreHands(first, second)
				fmt.Fprintln(a.stdout, describeClassification("Player 1", first, showdown.A))
				fmt.Fprintln(a.stdout, describeClassification("Player 2", second, showdown.B))
				fmt.Fprintf(a.stdout, "Winner:   %s\n", showdown.Result)
				return nil
			}
		},
	}
}

func describeClassification(label string, hand domain.Hand, c rules.Classification) string {
	tiebreak := make([]string, 0, len(c.Tiebreak))
	for _, v := range c.Tiebreak {
		tiebreak = append(tiebreak, v.String())
	}
	return fmt.Sprintf("%-9s %s  %s (%d) tiebreak [%s]", label+":", hand, c.Category, c.Category, strings.Join(tiebreak, " "))
}
