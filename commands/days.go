package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"overtimepay/config"
	"overtimepay/overtime"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newDaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days",
		Short: "Price a pay period day by day",
		Long: `Group the records of one pay period by day and category and price each
group on its summed net hours. Records that "otcalc check" would reject are
skipped with a warning.

Examples:
  otcalc days --records march.yaml --hourly-rate 200
  otcalc days --records march.yaml --salary 48000 --period 2024-03 --payday 25`,
		RunE: runDays,
	}
	cmd.Flags().String("records", "", "YAML file with the records to price")
	cmd.Flags().String("rates", "", "YAML rate table (default: built-in table)")
	cmd.Flags().Float64("hourly-rate", 0, "hourly rate")
	cmd.Flags().Float64("salary", 0, "monthly salary, used when --hourly-rate is not set")
	cmd.Flags().String("period", "", "pay period YYYY-MM (default: current)")
	cmd.Flags().Int("payday", 1, "day of month the pay period starts on (1-31)")
	cmd.Flags().String("work", overtime.DefaultSchedule.WorkStart.String()+"-"+overtime.DefaultSchedule.WorkEnd.String(), "regular work hours")
	cmd.Flags().String("break", overtime.DefaultSchedule.BreakStart.String()+"-"+overtime.DefaultSchedule.BreakEnd.String(), "break inside work hours")
	_ = cmd.MarkFlagRequired("records")
	cmd.MarkFlagsMutuallyExclusive("hourly-rate", "salary")
	return cmd
}

func calculatorFromFlags(cmd *cobra.Command) (*overtime.Calculator, error) {
	rates := overtime.DefaultRates
	if path, _ := cmd.Flags().GetString("rates"); path != "" {
		loaded, err := config.LoadRates(path)
		if err != nil {
			return nil, err
		}
		rates = loaded
	}

	var schedule overtime.Schedule
	var err error
	work, _ := cmd.Flags().GetString("work")
	if schedule.WorkStart, schedule.WorkEnd, err = parseWindow("work", work); err != nil {
		return nil, err
	}
	brk, _ := cmd.Flags().GetString("break")
	if schedule.BreakStart, schedule.BreakEnd, err = parseWindow("break", brk); err != nil {
		return nil, err
	}

	hourly, _ := cmd.Flags().GetFloat64("hourly-rate")
	salary, _ := cmd.Flags().GetFloat64("salary")
	rate := overtime.HourlyRate(salary, rates)
	if hourly > 0 {
		rate = decimal.NewFromFloat(hourly)
	}
	return overtime.NewCalculator(schedule, rates, rate), nil
}

func runDays(cmd *cobra.Command, args []string) error {
	loc, err := location(cmd)
	if err != nil {
		return err
	}
	calc, err := calculatorFromFlags(cmd)
	if err != nil {
		return err
	}

	payday, _ := cmd.Flags().GetInt("payday")
	selector, _ := cmd.Flags().GetString("period")
	if selector == "" {
		selector = overtime.SelectorFor(now().In(loc), payday)
	}
	period, err := overtime.ResolvePeriodIn(selector, payday, loc)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("records")
	records, err := loadRecords(path, loc)
	if err != nil {
		return err
	}

	accepted, rejected := acceptAll(records)
	summary := calc.Summarize(accepted, period)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Pay period %s (%s)", period.Display, selector)))
	if warning := calc.Warning(); warning != nil {
		fmt.Fprintln(out, warningStyle.Render("warning: "+warning.Error()))
	}
	for _, rej := range rejected {
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("skipped %s: %v", rej.record.ID, rej.err)))
	}
	if len(summary.Days) == 0 {
		fmt.Fprintln(out, "no records in this period")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Category", "Records", "Net hours", "Pay", "Breakdown")
	for _, day := range summary.Days {
		spans := make([]string, len(day.Records))
		for i, r := range day.Records {
			spans[i] = r.Start.Format("15:04") + "-" + r.End.Format("15:04")
		}
		t.Row(
			day.Date.Format("2006-01-02"),
			day.Category.Label(),
			strings.Join(spans, ", "),
			strconv.FormatFloat(day.TotalNetHours, 'f', 2, 64),
			strconv.FormatInt(day.Pay.Amount, 10),
			day.Pay.Breakdown,
		)
	}
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "Total: %.2fh  %d\n", summary.TotalNetHours, summary.TotalPay)
	return nil
}
