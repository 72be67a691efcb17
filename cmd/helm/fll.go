package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFLLCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fll",
		Short: "Print the engine in the FuzzyLite Language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, e, err := buildEngine(*configPath)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), e.FLL())
			return nil
		},
	}
}
