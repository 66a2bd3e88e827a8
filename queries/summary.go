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

// EntitySummary answers query type 1: a one-row summary of the entity
// matching an identifier. The shape of the id selects the entity kind:
// ids starting with "Book" are reservations, purely numeric ids are
// flights and anything else is a user.
type EntitySummary struct{}

type entitySummaryArgs struct {
	id string
}

// ParseArgs expects exactly one identifier.
func (q *EntitySummary) ParseArgs(args []string) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	if args[0] == "" {
		return nil, errors.New("empty identifier")
	}
	return entitySummaryArgs{id: args[0]}, nil
}

func (q *EntitySummary) Execute(db *database.Database, _ interface{}, inst *query.Instance, out io.Writer) error {
	args := inst.Args.(entitySummaryArgs)
	f := output.For(inst.Formatted, out)

	if strings.HasPrefix(args.id, "Book") {
		return q.reservationSummary(db, args.id, f)
	}
	if id, err := database.ParseFlightID(args.id); err == nil {
		return q.flightSummary(db, id, f)
	}
	return q.userSummary(db, args.id, f)
}

func (q *EntitySummary) userSummary(db *database.Database, id string, f output.Formatter) error {
	u, exists := db.UserByID(id)
	if !exists {
		return fmt.Errorf("user %q not found", id)
	}
	if !u.AccountActive {
		return fmt.Errorf("user %q is inactive", id)
	}

	flights := 0
	db.UserFlights(u.ID, func(*database.Flight) bool {
		flights++
		return true
	})
	reservations := 0
	spent := 0.0
	db.UserReservations(u.ID, func(r *database.Reservation) bool {
		reservations++
		spent += r.TotalPrice()
		return true
	})

	return f.Format(&output.Table{
		Columns: []string{
			"name", "email", "country_code", "passport",
			"number_of_flights", "number_of_reservations", "total_spent",
		},
		Rows: [][]string{{
			u.Name, u.Email, u.CountryCode, u.Passport,
			strconv.Itoa(flights), strconv.Itoa(reservations), formatMoney(spent),
		}},
	})
}

func (q *EntitySummary) flightSummary(db *database.Database, id int, f output.Formatter) error {
	flight, exists := db.FlightByID(id)
	if !exists {
		return fmt.Errorf("flight %d not found", id)
	}

	return f.Format(&output.Table{
		Columns: []string{
			"airline", "plane_model", "origin", "destination",
			"schedule_departure_date", "schedule_arrival_date",
			"passengers", "delay",
		},
		Rows: [][]string{{
			flight.Airline, flight.PlaneModel, flight.Origin, flight.Destination,
			formatDateTime(flight.ScheduleDeparture), formatDateTime(flight.ScheduleArrival),
			strconv.Itoa(db.PassengerCount(flight.ID)),
			strconv.FormatInt(int64(flight.DepartureDelay()/time.Second), 10),
		}},
	})
}

func (q *EntitySummary) reservationSummary(db *database.Database, id string, f output.Formatter) error {
	r, exists := db.ReservationByID(id)
	if !exists {
		return fmt.Errorf("reservation %q not found", id)
	}

	return f.Format(&output.Table{
		Columns: []string{
			"hotel_id", "hotel_name", "hotel_stars", "begin_date", "end_date",
			"includes_breakfast", "nights", "total_price",
		},
		Rows: [][]string{{
			r.HotelID, r.HotelName, strconv.Itoa(r.HotelStars),
			formatDate(r.Begin), formatDate(r.End),
			strconv.FormatBool(r.IncludesBreakfast),
			strconv.Itoa(r.Nights()), formatMoney(r.TotalPrice()),
		}},
	})
}
