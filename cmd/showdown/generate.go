package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/imaddar/poker-arena/services/showdown/internal/rules"
)

var errInvalidLineCount = errors.New("lines must be greater than zero")

func (a *app) generateCommand() *cobra.Command {
	var (
		lines int
		seed  int64
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Deal random rounds in the input format, one fresh deck per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines <= 0 {
				return errInvalidLineCount
			}
			shuffler := rules.NewCryptoShuffler()
			if cmd.Flags().Changed("seed") {
				shuffler = rules.NewSeededShuffler(seed)
			}

			w := a.stdout
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			return writeRounds(w, rules.NewDealer(shuffler), lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 1000, "number of rounds to deal")
	cmd.Flags().Int64Var(&seed, "seed", 0, "deterministic shuffle seed (default: crypto shuffle)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func writeRounds(w io.Writer, dealer rules.Dealer, lines int) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < lines; i++ {
		first, second, err := dealer.DealRound()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", first, second); err != nil {
			return err
		}
	}
	return bw.Flush()
}
