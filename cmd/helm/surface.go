package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Helm/internal/racingline"
)

func newSurfaceCmd(configPath *string) *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Print the control surface over the input ranges as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step <= 0 || step > racingline.Range.Max-racingline.Range.Min {
				return fmt.Errorf("step must be in (0, %g], got %g", racingline.Range.Max-racingline.Range.Min, step)
			}
			_, e, err := buildEngine(*configPath)
			if err != nil {
				return err
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			if err := w.Write([]string{"position", "velocity", "steering"}); err != nil {
				return err
			}
			n := int(math.Round((racingline.Range.Max - racingline.Range.Min) / step))
			for i := 0; i <= n; i++ {
				pos := gridPoint(i, n)
				for j := 0; j <= n; j++ {
					vel := gridPoint(j, n)
					if err := e.SetInput(racingline.Position, pos); err != nil {
						return err
					}
					if err := e.SetInput(racingline.Velocity, vel); err != nil {
						return err
					}
					if err := e.Process(); err != nil {
						return err
					}
					out, err := e.Output(racingline.Steering)
					if err != nil {
						return err
					}
					if err := w.Write([]string{fmtFloat(pos), fmtFloat(vel), fmtFloat(out)}); err != nil {
						return err
					}
				}
			}
			w.Flush()
			return w.Error()
		},
	}
	cmd.Flags().Float64Var(&step, "step", 0.1, "grid spacing over [-1, 1]")
	return cmd
}

// gridPoint returns the i-th of n+1 evenly spaced points of the range, with
// the ends exact and mirrored points exact negations.
func gridPoint(i, n int) float64 {
	lo, hi := racingline.Range.Min, racingline.Range.Max
	mid := (lo + hi) / 2
	return mid + (float64(i)-float64(n)/2)*(hi-lo)/float64(n)
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
