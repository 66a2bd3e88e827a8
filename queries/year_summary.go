package queries

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/output"
	"github.com/JosLopes/LI3-sub001/query"
)

// YearSummary answers query type 6: one row of activity totals for a
// year, covering flights flown, passenger boardings, distinct travellers
// and reservations made. Like TopAirports it precomputes totals for all
// the years a run asks about in one pass over the catalogs.
type YearSummary struct{}

type yearSummaryArgs struct {
	year int
}

type yearCounts struct {
	flights      int
	passengers   int
	travellers   int
	reservations int
}

type yearSummaryStats struct {
	byYear map[int]*yearCounts
}

func (q *YearSummary) ParseArgs(args []string) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	year, err := strconv.Atoi(args[0])
	if err != nil || year < 1 {
		return nil, fmt.Errorf("invalid year %q", args[0])
	}
	return yearSummaryArgs{year: year}, nil
}

func (q *YearSummary) GenerateStatistics(db *database.Database, run []query.Instance) (interface{}, error) {
	years := make(map[int]bool, len(run))
	for i := range run {
		years[run[i].Args.(yearSummaryArgs).year] = true
	}

	stats := &yearSummaryStats{byYear: make(map[int]*yearCounts, len(years))}
	counts := func(year int) *yearCounts {
		c := stats.byYear[year]
		if c == nil {
			c = &yearCounts{}
			stats.byYear[year] = c
		}
		return c
	}

	travellers := make(map[int]map[string]bool, len(years))
	db.EachFlight(func(fl *database.Flight) bool {
		year := fl.ScheduleDeparture.Year()
		if !years[year] {
			return true
		}
		c := counts(year)
		c.flights++
		c.passengers += db.PassengerCount(fl.ID)

		seen := travellers[year]
		if seen == nil {
			seen = make(map[string]bool)
			travellers[year] = seen
		}
		db.FlightPassengers(fl.ID, func(userID string) bool {
			seen[userID] = true
			return true
		})
		return true
	})
	db.EachReservation(func(r *database.Reservation) bool {
		if year := r.Begin.Year(); years[year] {
			counts(year).reservations++
		}
		return true
	})

	for year, seen := range travellers {
		stats.byYear[year].travellers = len(seen)
	}
	return stats, nil
}

func (q *YearSummary) Execute(db *database.Database, stats interface{}, inst *query.Instance, out io.Writer) error {
	shared, ok := stats.(*yearSummaryStats)
	if !ok || shared == nil {
		return errors.New("year statistics unavailable")
	}
	args := inst.Args.(yearSummaryArgs)

	t := &output.Table{Columns: []string{
		"flights", "passengers", "unique_passengers", "reservations",
	}}
	if c := shared.byYear[args.year]; c != nil {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(c.flights), strconv.Itoa(c.passengers),
			strconv.Itoa(c.travellers), strconv.Itoa(c.reservations),
		})
	}
	return output.For(inst.Formatted, out).Format(t)
}

var _ query.StatisticsGenerator = (*YearSummary)(nil)
