package commands

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// now is replaced in tests.
var now = time.Now

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd builds the otcalc command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "otcalc",
		Short: "Offline overtime pay calculator",
		Long: `otcalc prices overtime records from a YAML file with the same rules as the
server: weekday records are netted against the work schedule, each day is
priced once on its summed hours, and amounts are rounded up.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("otcalc {{.Version}} (" + commit + ", " + date + ")\n")
	root.PersistentFlags().String("tz", "Local", "time zone for grouping days and resolving periods")

	root.AddCommand(newPeriodCmd())
	root.AddCommand(newDaysCmd())
	root.AddCommand(newCheckCmd())
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func location(cmd *cobra.Command) (*time.Location, error) {
	name, _ := cmd.Flags().GetString("tz")
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
