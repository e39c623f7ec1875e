package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a records file and report overlapping records",
		Long: `Accept the records of a file in order, the way the server accepts new
records: each must be valid and must not overlap an earlier accepted record.
Ids must be unique within the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := location(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("records")
			records, err := loadRecords(path, loc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, rejected := acceptAll(records)
			for _, rej := range rejected {
				fmt.Fprintf(out, "%s: %v\n", rej.record.ID, rej.err)
			}

			if len(rejected) > 0 {
				return fmt.Errorf("%d of %d records rejected", len(rejected), len(records))
			}
			fmt.Fprintf(out, "%d records ok\n", len(records))
			return nil
		},
	}
	cmd.Flags().String("records", "", "YAML file with the records to check")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}
