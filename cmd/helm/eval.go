package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Helm/internal/racingline"
	"github.com/MikeSquared-Agency/Helm/internal/steering"
)

func newEvalCmd(configPath *string) *cobra.Command {
	var position, velocity float64

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate one reading and print the crisp and fuzzy values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e, err := buildEngine(*configPath)
			if err != nil {
				return err
			}
			ctrl, err := steering.New(e, nil, 0, newLogger(cfg.Logging, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			d, err := ctrl.Decide(cmd.Context(), steering.Reading{Position: position, Velocity: velocity})
			if err != nil {
				return err
			}
			return printDecision(cmd.OutOrStdout(), ctrl, d)
		},
	}
	cmd.Flags().Float64Var(&position, "position", 0, "lateral offset from the racing line, in [-1, 1]")
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "lateral velocity relative to the line, in [-1, 1]")
	return cmd
}

func printDecision(w io.Writer, ctrl *steering.Controller, d *steering.Decision) error {
	steer, err := ctrl.Fuzzify(racingline.Steering, d.Steering)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Car Position [VALUE]: %g\n", d.Position)
	fmt.Fprintf(w, "Car Position [FUZZY]: %s\n", d.PositionTerms)
	fmt.Fprintf(w, "Car Velocity [VALUE]: %g\n", d.Velocity)
	fmt.Fprintf(w, "Car Velocity [FUZZY]: %s\n", d.VelocityTerms)
	fmt.Fprintf(w, "Car Steering [VALUE]: %g\n", d.Steering)
	fmt.Fprintf(w, "Car Steering [FUZZY]: %s\n", steer)
	return nil
}
