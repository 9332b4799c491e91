package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/slidecheck"
)

var (
	sampleN      int
	sampleWidth  float64
	sampleHeight float64
	samplePiece  float64
	sampleSeed   uint64
)

// sampleCmd prints notch positions without opening a window
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print randomly sampled notch positions",
	Long: `Samples notch positions for a wrapper of the given size and prints one
"left top" pair per line, followed by the observed ranges.`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVarP(&sampleN, "n", "n", 10, "number of positions")
	sampleCmd.Flags().Float64Var(&sampleWidth, "width", 360, "wrapper width")
	sampleCmd.Flags().Float64Var(&sampleHeight, "height", 220, "wrapper height")
	sampleCmd.Flags().Float64Var(&samplePiece, "piece", 50, "piece width and height")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0, "random seed (0 = time based)")
}

func runSample(cmd *cobra.Command, args []string) error {
	if sampleN <= 0 {
		return fmt.Errorf("--n must be positive, got %d", sampleN)
	}
	s := sampleSeed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rng := slidecheck.NewRand(s)
	out := cmd.OutOrStdout()

	minL, minT := math.MaxInt, math.MaxInt
	maxL, maxT := math.MinInt, math.MinInt
	for i := 0; i < sampleN; i++ {
		left, top, err := slidecheck.RandomPosition(rng, sampleWidth, sampleHeight, samplePiece, samplePiece)
		if err != nil {
			return err
		}
		minL, maxL = min(minL, left), max(maxL, left)
		minT, maxT = min(minT, top), max(maxT, top)
		fmt.Fprintf(out, "%d %d\n", left, top)
	}
	fmt.Fprintf(out, "# left %d..%d top %d..%d\n", minL, maxL, minT, maxT)
	return nil
}
