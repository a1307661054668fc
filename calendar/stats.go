/*
stats.go - Weekly statistics over stored records

PURPOSE:
  Rebuilds the weekly dashboard numbers from scratch on every query:
  group records of the last N weeks by their Monday-start week, then
  within each week bucket by day of week. Nothing is cached or mutated
  incrementally.

AVERAGE CONVENTION:
  AveragePerDay divides the weekly total by 7, not by days worked. Per-day
  averages divide that day's total by that day's record count.

SEE ALSO:
  - week.go: WeekOf, the single week convention
  - money: currency parsing with the fail-to-zero policy
*/
package calendar

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/turno/shift-engine/money"
	"github.com/turno/shift-engine/record"
)

// DayNames are the display names for the seven weekday buckets, Monday first.
var DayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

var seven = decimal.NewFromInt(7)

// =============================================================================
// WEEKLY STAT
// =============================================================================

// WeeklyStat aggregates the records of one week window. Rebuilt fresh on
// every query.
type WeeklyStat struct {
	Week  WeekWindow
	Total decimal.Decimal
	Count int

	// Per-weekday buckets, Monday = index 0.
	DayTotals [7]decimal.Decimal
	DayCounts [7]int

	AveragePerDay decimal.Decimal // Total / 7
	DaysWorked    int             // distinct dates with at least one record
	MaxPay        decimal.Decimal
	MinPay        decimal.Decimal
}

// DayAverage returns the average pay of one weekday bucket, zero when the
// bucket is empty.
func (s WeeklyStat) DayAverage(day int) decimal.Decimal {
	if s.DayCounts[day] == 0 {
		return decimal.Zero
	}
	return s.DayTotals[day].Div(decimal.NewFromInt(int64(s.DayCounts[day])))
}

// dayIndex maps a date to its weekday bucket, Monday = 0.
func dayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// AggregateWeekly groups the records whose date falls in
// [today - weeksBack weeks, today] by week window and computes per-week
// statistics, newest week first. An empty record set yields an empty
// result, not an error. weeksBack accepts any positive integer.
func AggregateWeekly(records []record.Record, weeksBack int, today time.Time) []WeeklyStat {
	if weeksBack < 1 {
		return nil
	}

	windowStart := dateOnly(today).AddDate(0, 0, -7*weeksBack)
	windowEnd := dateOnly(today)

	type group struct {
		week  WeekWindow
		dates map[string]struct{}
		stat  *WeeklyStat
	}
	groups := make(map[string]*group)

	for _, r := range records {
		date, ok := r.Date()
		if !ok {
			continue
		}
		if date.Before(windowStart) || date.After(windowEnd) {
			continue
		}

		week := WeekOf(date)
		key := week.Start.Format(record.DateLayout)
		g, exists := groups[key]
		if !exists {
			g = &group{
				week:  week,
				dates: make(map[string]struct{}),
				stat:  &WeeklyStat{Week: week},
			}
			groups[key] = g
		}

		// Bad money values count with a zero amount; the record itself is
		// never dropped from the counts.
		pay := money.ParseOrZero(r[record.ColPagoTotal])
		day := dayIndex(date)

		g.stat.Total = g.stat.Total.Add(pay)
		g.stat.DayTotals[day] = g.stat.DayTotals[day].Add(pay)
		g.stat.DayCounts[day]++
		if g.stat.Count == 0 || pay.GreaterThan(g.stat.MaxPay) {
			g.stat.MaxPay = pay
		}
		if g.stat.Count == 0 || pay.LessThan(g.stat.MinPay) {
			g.stat.MinPay = pay
		}
		g.stat.Count++
		g.dates[date.Format(record.DateLayout)] = struct{}{}
	}

	stats := make([]WeeklyStat, 0, len(groups))
	for _, g := range groups {
		g.stat.AveragePerDay = g.stat.Total.Div(seven)
		g.stat.DaysWorked = len(g.dates)
		stats = append(stats, *g.stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Week.Start.After(stats[j].Week.Start)
	})
	return stats
}
