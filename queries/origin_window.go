package queries

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/output"
	"github.com/JosLopes/LI3-sub001/query"
)

// OriginWindow answers query type 4: the flights departing one airport
// inside an inclusive time window, in departure order. Timestamps carry
// a space, so they are quoted on the query line:
//
//	4 LIS "2023/01/01 00:00:00" "2023/12/31 23:59:59"
type OriginWindow struct{}

type originWindowArgs struct {
	origin string
	from   time.Time
	to     time.Time
}

func (q *OriginWindow) ParseArgs(args []string) (interface{}, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("expected 3 arguments, got %d", len(args))
	}
	if !database.ValidAirportCode(args[0]) {
		return nil, fmt.Errorf("invalid airport code %q", args[0])
	}
	from, err := database.ParseDateTime(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid window start %q", args[1])
	}
	to, err := database.ParseDateTime(args[2])
	if err != nil {
		return nil, fmt.Errorf("invalid window end %q", args[2])
	}
	if to.Before(from) {
		return nil, errors.New("window end precedes start")
	}
	return originWindowArgs{origin: strings.ToUpper(args[0]), from: from, to: to}, nil
}

func (q *OriginWindow) Execute(db *database.Database, _ interface{}, inst *query.Instance, out io.Writer) error {
	args := inst.Args.(originWindowArgs)

	t := &output.Table{Columns: []string{
		"id", "schedule_departure_date", "destination", "airline", "plane_model",
	}}
	db.FlightsFromOrigin(args.origin, args.from, args.to, func(fl *database.Flight) bool {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(fl.ID), formatDateTime(fl.ScheduleDeparture),
			fl.Destination, fl.Airline, fl.PlaneModel,
		})
		return true
	})
	return output.For(inst.Formatted, out).Format(t)
}
