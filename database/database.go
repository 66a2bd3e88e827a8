// Package database is the in-memory store the query types run against:
// users, flights, passengers and reservations, held in ordered catalogs so
// lookups by id, prefix scans and date-range scans all walk b-trees
// instead of full tables.
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/btree"
)

// farFuture is the pivot timestamp for newest-first indexes. Every real
// dataset date sorts after it under their descending comparators.
var farFuture = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// userFlight indexes one boarding by traveller, newest departure first.
type userFlight struct {
	userID    string
	departure time.Time
	flightID  int
}

// Database holds every loaded entity. It is single-owner: loading happens
// before querying and nothing mutates it concurrently.
type Database struct {
	usersByID   *btree.BTreeG[*User]
	usersByName *btree.BTreeG[*User]

	flightsByID     *btree.BTreeG[*Flight]
	flightsByOrigin *btree.BTreeG[*Flight]

	reservationsByID   *btree.BTreeG[*Reservation]
	reservationsByUser *btree.BTreeG[*Reservation]

	passengers      *btree.BTreeG[Passenger]
	flightsOfUser   *btree.BTreeG[userFlight]
	passengerCounts map[int]int
}

// NewDatabase creates an empty store.
func NewDatabase() *Database {
	return &Database{
		usersByID: btree.NewBTreeG(func(a, b *User) bool {
			return a.ID < b.ID
		}),
		usersByName: btree.NewBTreeG(func(a, b *User) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		}),
		flightsByID: btree.NewBTreeG(func(a, b *Flight) bool {
			return a.ID < b.ID
		}),
		flightsByOrigin: btree.NewBTreeG(func(a, b *Flight) bool {
			if a.Origin != b.Origin {
				return a.Origin < b.Origin
			}
			if !a.ScheduleDeparture.Equal(b.ScheduleDeparture) {
				return a.ScheduleDeparture.Before(b.ScheduleDeparture)
			}
			return a.ID < b.ID
		}),
		reservationsByID: btree.NewBTreeG(func(a, b *Reservation) bool {
			return a.ID < b.ID
		}),
		reservationsByUser: btree.NewBTreeG(func(a, b *Reservation) bool {
			if a.UserID != b.UserID {
				return a.UserID < b.UserID
			}
			if !a.Begin.Equal(b.Begin) {
				return a.Begin.After(b.Begin) // newest first
			}
			return a.ID < b.ID
		}),
		passengers: btree.NewBTreeG(func(a, b Passenger) bool {
			if a.FlightID != b.FlightID {
				return a.FlightID < b.FlightID
			}
			return a.UserID < b.UserID
		}),
		flightsOfUser: btree.NewBTreeG(func(a, b userFlight) bool {
			if a.userID != b.userID {
				return a.userID < b.userID
			}
			if !a.departure.Equal(b.departure) {
				return a.departure.After(b.departure) // newest first
			}
			return a.flightID < b.flightID
		}),
		passengerCounts: make(map[int]int),
	}
}

// AddUser stores a user. Ids are unique.
func (db *Database) AddUser(u *User) error {
	if _, exists := db.usersByID.Get(&User{ID: u.ID}); exists {
		return fmt.Errorf("duplicate user id %q", u.ID)
	}
	db.usersByID.Set(u)
	db.usersByName.Set(u)
	return nil
}

// AddFlight stores a flight. Ids are unique.
func (db *Database) AddFlight(f *Flight) error {
	if _, exists := db.flightsByID.Get(&Flight{ID: f.ID}); exists {
		return fmt.Errorf("duplicate flight id %d", f.ID)
	}
	db.flightsByID.Set(f)
	db.flightsByOrigin.Set(f)
	return nil
}

// AddPassenger links a user to a flight. Both must already exist.
func (db *Database) AddPassenger(p Passenger) error {
	flight, exists := db.FlightByID(p.FlightID)
	if !exists {
		return fmt.Errorf("passenger references unknown flight %d", p.FlightID)
	}
	if _, exists := db.UserByID(p.UserID); !exists {
		return fmt.Errorf("passenger references unknown user %q", p.UserID)
	}
	if _, exists := db.passengers.Get(p); exists {
		return fmt.Errorf("user %q already boards flight %d", p.UserID, p.FlightID)
	}
	db.passengers.Set(p)
	db.flightsOfUser.Set(userFlight{
		userID:    p.UserID,
		departure: flight.ScheduleDeparture,
		flightID:  flight.ID,
	})
	db.passengerCounts[p.FlightID]++
	return nil
}

// AddReservation stores a booking. The booking user must already exist.
func (db *Database) AddReservation(r *Reservation) error {
	if _, exists := db.reservationsByID.Get(&Reservation{ID: r.ID}); exists {
		return fmt.Errorf("duplicate reservation id %q", r.ID)
	}
	if _, exists := db.UserByID(r.UserID); !exists {
		return fmt.Errorf("reservation references unknown user %q", r.UserID)
	}
	db.reservationsByID.Set(r)
	db.reservationsByUser.Set(r)
	return nil
}

// UserByID retrieves one user.
func (db *Database) UserByID(id string) (*User, bool) {
	return db.usersByID.Get(&User{ID: id})
}

// FlightByID retrieves one flight.
func (db *Database) FlightByID(id int) (*Flight, bool) {
	return db.flightsByID.Get(&Flight{ID: id})
}

// ReservationByID retrieves one reservation.
func (db *Database) ReservationByID(id string) (*Reservation, bool) {
	return db.reservationsByID.Get(&Reservation{ID: id})
}

// UsersWithNamePrefix visits users whose name starts with prefix, ordered
// by (name, id). Return false from visit to stop early.
func (db *Database) UsersWithNamePrefix(prefix string, visit func(u *User) bool) {
	db.usersByName.Ascend(&User{Name: prefix}, func(u *User) bool {
		if !strings.HasPrefix(u.Name, prefix) {
			return false
		}
		return visit(u)
	})
}

// FlightsFromOrigin visits flights departing origin inside [from, to],
// ordered by (scheduled departure, id). Return false from visit to stop
// early.
func (db *Database) FlightsFromOrigin(origin string, from, to time.Time, visit func(f *Flight) bool) {
	pivot := &Flight{Origin: origin, ScheduleDeparture: from}
	db.flightsByOrigin.Ascend(pivot, func(f *Flight) bool {
		if f.Origin != origin || f.ScheduleDeparture.After(to) {
			return false
		}
		return visit(f)
	})
}

// UserFlights visits the flights a user boarded, newest departure first.
// Return false from visit to stop early.
func (db *Database) UserFlights(userID string, visit func(f *Flight) bool) {
	pivot := userFlight{userID: userID, departure: farFuture}
	db.flightsOfUser.Ascend(pivot, func(entry userFlight) bool {
		if entry.userID != userID {
			return false
		}
		flight, exists := db.FlightByID(entry.flightID)
		if !exists {
			return true
		}
		return visit(flight)
	})
}

// UserReservations visits a user's bookings, newest begin date first.
// Return false from visit to stop early.
func (db *Database) UserReservations(userID string, visit func(r *Reservation) bool) {
	pivot := &Reservation{UserID: userID, Begin: farFuture}
	db.reservationsByUser.Ascend(pivot, func(r *Reservation) bool {
		if r.UserID != userID {
			return false
		}
		return visit(r)
	})
}

// FlightPassengers visits the user ids boarding one flight, ascending.
// Return false from visit to stop early.
func (db *Database) FlightPassengers(flightID int, visit func(userID string) bool) {
	db.passengers.Ascend(Passenger{FlightID: flightID}, func(p Passenger) bool {
		if p.FlightID != flightID {
			return false
		}
		return visit(p.UserID)
	})
}

// PassengerCount returns how many users board one flight.
func (db *Database) PassengerCount(flightID int) int {
	return db.passengerCounts[flightID]
}

// EachFlight visits every flight, ascending by id. Return false from visit
// to stop early.
func (db *Database) EachFlight(visit func(f *Flight) bool) {
	db.flightsByID.Scan(visit)
}

// EachReservation visits every reservation, ascending by id. Return false
// from visit to stop early.
func (db *Database) EachReservation(visit func(r *Reservation) bool) {
	db.reservationsByID.Scan(visit)
}

// Users returns the number of stored users.
func (db *Database) Users() int { return db.usersByID.Len() }

// Flights returns the number of stored flights.
func (db *Database) Flights() int { return db.flightsByID.Len() }

// Passengers returns the number of stored passenger links.
func (db *Database) Passengers() int { return db.passengers.Len() }

// Reservations returns the number of stored reservations.
func (db *Database) Reservations() int { return db.reservationsByID.Len() }
