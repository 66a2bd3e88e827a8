package queries

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/output"
	"github.com/JosLopes/LI3-sub001/query"
)

// UserItems answers query type 2: the flights and reservations of one
// user, newest first. An optional second argument restricts the listing
// to "flights" or "reservations"; without it both kinds are merged and a
// kind column is added.
type UserItems struct{}

type userItemsKind int

const (
	itemsAll userItemsKind = iota
	itemsFlights
	itemsReservations
)

type userItemsArgs struct {
	id   string
	kind userItemsKind
}

func (q *UserItems) ParseArgs(args []string) (interface{}, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("expected 1 or 2 arguments, got %d", len(args))
	}
	if args[0] == "" {
		return nil, errors.New("empty user id")
	}
	parsed := userItemsArgs{id: args[0], kind: itemsAll}
	if len(args) == 2 {
		switch args[1] {
		case "flights":
			parsed.kind = itemsFlights
		case "reservations":
			parsed.kind = itemsReservations
		default:
			return nil, fmt.Errorf("unknown listing kind %q", args[1])
		}
	}
	return parsed, nil
}

func (q *UserItems) Execute(db *database.Database, _ interface{}, inst *query.Instance, out io.Writer) error {
	args := inst.Args.(userItemsArgs)
	u, exists := db.UserByID(args.id)
	if !exists {
		return fmt.Errorf("user %q not found", args.id)
	}
	if !u.AccountActive {
		return fmt.Errorf("user %q is inactive", args.id)
	}

	f := output.For(inst.Formatted, out)
	switch args.kind {
	case itemsFlights:
		t := &output.Table{Columns: []string{"id", "schedule_departure_date"}}
		db.UserFlights(u.ID, func(fl *database.Flight) bool {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(fl.ID), formatDateTime(fl.ScheduleDeparture),
			})
			return true
		})
		return f.Format(t)
	case itemsReservations:
		t := &output.Table{Columns: []string{"id", "begin_date"}}
		db.UserReservations(u.ID, func(r *database.Reservation) bool {
			t.Rows = append(t.Rows, []string{r.ID, formatDate(r.Begin)})
			return true
		})
		return f.Format(t)
	}
	return q.mergedItems(db, u.ID, f)
}

// mergedItems interleaves flights and reservations by date, newest first,
// breaking ties by id. The date column drops the time of day so both
// kinds render alike.
func (q *UserItems) mergedItems(db *database.Database, userID string, f output.Formatter) error {
	type item struct {
		id   string
		date time.Time
		kind string
	}
	var items []item
	db.UserFlights(userID, func(fl *database.Flight) bool {
		items = append(items, item{
			id: strconv.Itoa(fl.ID), date: fl.ScheduleDeparture, kind: "flight",
		})
		return true
	})
	db.UserReservations(userID, func(r *database.Reservation) bool {
		items = append(items, item{id: r.ID, date: r.Begin, kind: "reservation"})
		return true
	})

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].date.Equal(items[j].date) {
			return items[i].date.After(items[j].date)
		}
		return items[i].id < items[j].id
	})

	t := &output.Table{Columns: []string{"id", "date", "kind"}}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{it.id, formatDate(it.date), it.kind})
	}
	return f.Format(t)
}
