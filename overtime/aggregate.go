package overtime

import (
	"iter"
	"slices"
	"time"
)

// DailyGroup is every record of one category on one calendar day, priced
// once on the summed net hours.
type DailyGroup struct {
	Date          time.Time `json:"date"`
	Category      Category  `json:"category"`
	Records       []Record  `json:"records"`
	TotalNetHours float64   `json:"totalNetHours"`
	Pay           Pay       `json:"pay"`
}

// Summary totals the daily groups of one pay period.
type Summary struct {
	Period        Period       `json:"period"`
	Days          []DailyGroup `json:"days"`
	TotalNetHours float64      `json:"totalNetHours"`
	TotalPay      int64        `json:"totalPay"`
}

type dayKey struct {
	date     time.Time
	category Category
}

// GroupByDay groups records by the calendar date of their start and by
// category, newest date first. Each iteration regroups and reprices from
// scratch; pay is computed lazily as groups are pulled.
func (c *Calculator) GroupByDay(records []Record) iter.Seq[DailyGroup] {
	return func(yield func(DailyGroup) bool) {
		for _, key := range groupKeys(records) {
			group := DailyGroup{Date: key.date, Category: key.category}
			var net time.Duration
			for _, r := range records {
				if r.Category == key.category && r.Day().Equal(key.date) {
					group.Records = append(group.Records, r)
					net += NetDuration(r, c.Schedule)
				}
			}
			slices.SortStableFunc(group.Records, func(a, b Record) int {
				return a.Start.Compare(b.Start)
			})
			group.TotalNetHours = net.Hours()
			group.Pay = c.DailyPay(group.TotalNetHours, key.category)
			if !yield(group) {
				return
			}
		}
	}
}

// Days collects GroupByDay.
func (c *Calculator) Days(records []Record) []DailyGroup {
	return slices.Collect(c.GroupByDay(records))
}

// Summarize prices the records whose start falls inside the period.
func (c *Calculator) Summarize(records []Record, period Period) Summary {
	var inPeriod []Record
	for _, r := range records {
		if period.Contains(r.Start) {
			inPeriod = append(inPeriod, r)
		}
	}

	summary := Summary{Period: period, Days: []DailyGroup{}}
	var net time.Duration
	for group := range c.GroupByDay(inPeriod) {
		summary.Days = append(summary.Days, group)
		summary.TotalPay += group.Pay.Amount
		for _, r := range group.Records {
			net += NetDuration(r, c.Schedule)
		}
	}
	summary.TotalNetHours = net.Hours()
	return summary
}

func groupKeys(records []Record) []dayKey {
	var keys []dayKey
	for _, r := range records {
		key := dayKey{date: r.Day(), category: r.Category}
		if !slices.ContainsFunc(keys, func(k dayKey) bool {
			return k.category == key.category && k.date.Equal(key.date)
		}) {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, func(a, b dayKey) int {
		if cmp := b.date.Compare(a.date); cmp != 0 {
			return cmp
		}
		return a.category.rank() - b.category.rank()
	})
	return keys
}
