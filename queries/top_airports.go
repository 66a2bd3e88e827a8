package queries

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/output"
	"github.com/JosLopes/LI3-sub001/query"
)

// TopAirports answers query type 5: the N airports that boarded the most
// passengers during one year. A batch tends to ask about the same few
// years over and over, so the per-year rankings are computed once per run
// and shared by every instance.
type TopAirports struct{}

type topAirportsArgs struct {
	year  int
	limit int
}

// airportCount is one airport's passenger total within a year.
type airportCount struct {
	airport    string
	passengers int
}

type topAirportsStats struct {
	// byYear holds rankings sorted by passengers descending, airport
	// ascending on ties.
	byYear map[int][]airportCount
}

func (q *TopAirports) ParseArgs(args []string) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	year, err := strconv.Atoi(args[0])
	if err != nil || year < 1 {
		return nil, fmt.Errorf("invalid year %q", args[0])
	}
	limit, err := strconv.Atoi(args[1])
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("invalid limit %q", args[1])
	}
	return topAirportsArgs{year: year, limit: limit}, nil
}

// GenerateStatistics tallies boarded passengers per origin airport for
// every year the run mentions, in a single pass over the flight catalog.
func (q *TopAirports) GenerateStatistics(db *database.Database, run []query.Instance) (interface{}, error) {
	years := make(map[int]bool, len(run))
	for i := range run {
		years[run[i].Args.(topAirportsArgs).year] = true
	}

	counts := make(map[int]map[string]int, len(years))
	db.EachFlight(func(fl *database.Flight) bool {
		year := fl.ScheduleDeparture.Year()
		if !years[year] {
			return true
		}
		byAirport := counts[year]
		if byAirport == nil {
			byAirport = make(map[string]int)
			counts[year] = byAirport
		}
		byAirport[fl.Origin] += db.PassengerCount(fl.ID)
		return true
	})

	stats := &topAirportsStats{byYear: make(map[int][]airportCount, len(counts))}
	for year, byAirport := range counts {
		ranked := make([]airportCount, 0, len(byAirport))
		for airport, passengers := range byAirport {
			ranked = append(ranked, airportCount{airport: airport, passengers: passengers})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].passengers != ranked[j].passengers {
				return ranked[i].passengers > ranked[j].passengers
			}
			return ranked[i].airport < ranked[j].airport
		})
		stats.byYear[year] = ranked
	}
	return stats, nil
}

func (q *TopAirports) Execute(db *database.Database, stats interface{}, inst *query.Instance, out io.Writer) error {
	shared, ok := stats.(*topAirportsStats)
	if !ok || shared == nil {
		return errors.New("airport statistics unavailable")
	}
	args := inst.Args.(topAirportsArgs)

	ranked := shared.byYear[args.year]
	if len(ranked) > args.limit {
		ranked = ranked[:args.limit]
	}

	t := &output.Table{Columns: []string{"airport", "passengers"}}
	for _, ac := range ranked {
		t.Rows = append(t.Rows, []string{ac.airport, strconv.Itoa(ac.passengers)})
	}
	return output.For(inst.Formatted, out).Format(t)
}

var _ query.StatisticsGenerator = (*TopAirports)(nil)
