package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"overtimepay/overtime"
)

func newPeriodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period [YYYY-MM]",
		Short: "Show the date range of a pay period",
		Long: `Show the date range of a pay period. Without a selector the period
containing today is shown.

Examples:
  otcalc period 2024-01 --payday 25   # 2023/12/25 - 2024/01/24`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := location(cmd)
			if err != nil {
				return err
			}
			payday, _ := cmd.Flags().GetInt("payday")

			selector := overtime.SelectorFor(now().In(loc), payday)
			if len(args) == 1 {
				selector = args[0]
			}
			period, err := overtime.ResolvePeriodIn(selector, payday, loc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", selector, period.Display)
			return nil
		},
	}
	cmd.Flags().Int("payday", 1, "day of month the pay period starts on (1-31)")
	return cmd
}
