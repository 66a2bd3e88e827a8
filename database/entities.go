package database

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Date layouts used across the dataset files and query arguments.
const (
	DateLayout     = "2006/01/02"
	DateTimeLayout = "2006/01/02 15:04:05"
)

// ParseDate parses a calendar date in the dataset's format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseDateTime parses a timestamp in the dataset's format.
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(DateTimeLayout, s)
}

// ParseFlightID parses a flight identifier: a non-empty run of decimal
// digits, leading zeros allowed.
func ParseFlightID(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty flight id")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("flight id %q is not numeric", s)
		}
	}
	return strconv.Atoi(s)
}

// ValidAirportCode reports whether s is a three-letter airport code.
func ValidAirportCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// User is one registered account.
type User struct {
	ID            string
	Name          string
	Email         string
	CountryCode   string
	Passport      string
	BirthDate     time.Time
	AccountActive bool
}

// Flight is one scheduled flight. Airport codes are stored uppercase.
type Flight struct {
	ID                int
	Airline           string
	PlaneModel        string
	TotalSeats        int
	Origin            string
	Destination       string
	ScheduleDeparture time.Time
	ScheduleArrival   time.Time
	RealDeparture     time.Time
}

// DepartureDelay is the time between the scheduled and the actual
// departure. Early departures yield a negative duration.
func (f *Flight) DepartureDelay() time.Duration {
	return f.RealDeparture.Sub(f.ScheduleDeparture)
}

// Passenger links one user to one flight they boarded.
type Passenger struct {
	FlightID int
	UserID   string
}

// Reservation is one hotel booking.
type Reservation struct {
	ID                string
	UserID            string
	HotelID           string
	HotelName         string
	HotelStars        int
	CityTax           int // percent, charged on the whole stay
	PricePerNight     int
	IncludesBreakfast bool
	Begin             time.Time
	End               time.Time
}

// Nights is the length of the stay. End is a checkout date, so a booking
// from the 1st to the 3rd spans two nights.
func (r *Reservation) Nights() int {
	return int(r.End.Sub(r.Begin).Hours() / 24)
}

// TotalPrice is the full cost of the stay, city tax included.
func (r *Reservation) TotalPrice() float64 {
	base := float64(r.PricePerNight * r.Nights())
	return base + base*float64(r.CityTax)/100
}
