package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JosLopes/LI3-sub001/database"
)

func addUser(db *database.Database, row map[string]string) error {
	u := &database.User{
		ID:          row["id"],
		Name:        row["name"],
		Email:       row["email"],
		CountryCode: row["country_code"],
		Passport:    row["passport"],
	}
	if u.ID == "" {
		return errors.New("missing user id")
	}
	if u.Name == "" {
		return errors.New("missing user name")
	}
	if !validEmail(u.Email) {
		return fmt.Errorf("invalid email %q", u.Email)
	}
	if !validCountryCode(u.CountryCode) {
		return fmt.Errorf("invalid country code %q", u.CountryCode)
	}

	birth, err := database.ParseDate(row["birth_date"])
	if err != nil {
		return fmt.Errorf("invalid birth date %q", row["birth_date"])
	}
	u.BirthDate = birth

	switch {
	case strings.EqualFold(row["account_status"], "active"):
		u.AccountActive = true
	case strings.EqualFold(row["account_status"], "inactive"):
		u.AccountActive = false
	default:
		return fmt.Errorf("invalid account status %q", row["account_status"])
	}

	return db.AddUser(u)
}

func addFlight(db *database.Database, row map[string]string) error {
	id, err := database.ParseFlightID(row["id"])
	if err != nil {
		return err
	}
	if row["airline"] == "" {
		return errors.New("missing airline")
	}
	seats, err := strconv.Atoi(row["total_seats"])
	if err != nil || seats <= 0 {
		return fmt.Errorf("invalid seat count %q", row["total_seats"])
	}
	if !database.ValidAirportCode(row["origin"]) {
		return fmt.Errorf("invalid origin airport %q", row["origin"])
	}
	if !database.ValidAirportCode(row["destination"]) {
		return fmt.Errorf("invalid destination airport %q", row["destination"])
	}

	departure, err := database.ParseDateTime(row["schedule_departure_date"])
	if err != nil {
		return fmt.Errorf("invalid departure date %q", row["schedule_departure_date"])
	}
	arrival, err := database.ParseDateTime(row["schedule_arrival_date"])
	if err != nil {
		return fmt.Errorf("invalid arrival date %q", row["schedule_arrival_date"])
	}
	if !arrival.After(departure) {
		return errors.New("scheduled arrival is not after departure")
	}
	real, err := database.ParseDateTime(row["real_departure_date"])
	if err != nil {
		return fmt.Errorf("invalid real departure date %q", row["real_departure_date"])
	}

	return db.AddFlight(&database.Flight{
		ID:                id,
		Airline:           row["airline"],
		PlaneModel:        row["plane_model"],
		TotalSeats:        seats,
		Origin:            strings.ToUpper(row["origin"]),
		Destination:       strings.ToUpper(row["destination"]),
		ScheduleDeparture: departure,
		ScheduleArrival:   arrival,
		RealDeparture:     real,
	})
}

func addPassenger(db *database.Database, row map[string]string) error {
	flightID, err := database.ParseFlightID(row["flight_id"])
	if err != nil {
		return err
	}
	if row["user_id"] == "" {
		return errors.New("missing user id")
	}
	return db.AddPassenger(database.Passenger{FlightID: flightID, UserID: row["user_id"]})
}

func addReservation(db *database.Database, row map[string]string) error {
	if !validReservationID(row["id"]) {
		return fmt.Errorf("invalid reservation id %q", row["id"])
	}
	if row["user_id"] == "" {
		return errors.New("missing user id")
	}
	if row["hotel_id"] == "" || row["hotel_name"] == "" {
		return errors.New("missing hotel")
	}
	stars, err := strconv.Atoi(row["hotel_stars"])
	if err != nil || stars < 1 || stars > 5 {
		return fmt.Errorf("invalid hotel stars %q", row["hotel_stars"])
	}
	tax, err := strconv.Atoi(row["city_tax"])
	if err != nil || tax < 0 {
		return fmt.Errorf("invalid city tax %q", row["city_tax"])
	}
	price, err := strconv.Atoi(row["price_per_night"])
	if err != nil || price <= 0 {
		return fmt.Errorf("invalid price per night %q", row["price_per_night"])
	}
	breakfast, err := parseBreakfast(row["includes_breakfast"])
	if err != nil {
		return err
	}

	begin, err := database.ParseDate(row["begin_date"])
	if err != nil {
		return fmt.Errorf("invalid begin date %q", row["begin_date"])
	}
	end, err := database.ParseDate(row["end_date"])
	if err != nil {
		return fmt.Errorf("invalid end date %q", row["end_date"])
	}
	if !end.After(begin) {
		return errors.New("end date is not after begin date")
	}

	return db.AddReservation(&database.Reservation{
		ID:                row["id"],
		UserID:            row["user_id"],
		HotelID:           row["hotel_id"],
		HotelName:         row["hotel_name"],
		HotelStars:        stars,
		CityTax:           tax,
		PricePerNight:     price,
		IncludesBreakfast: breakfast,
		Begin:             begin,
		End:               end,
	})
}

// validEmail accepts name@domain.tld with a single @, a dotted domain and
// a TLD of at least two characters.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at < 1 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot >= 1 && len(domain)-dot-1 >= 2
}

func validCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// validReservationID accepts the Book<digits> form.
func validReservationID(id string) bool {
	rest, found := strings.CutPrefix(id, "Book")
	if !found || rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}

// parseBreakfast reads the dataset's loose boolean forms. An empty field
// means no breakfast.
func parseBreakfast(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "0", "f", "false":
		return false, nil
	case "1", "t", "true":
		return true, nil
	}
	return false, fmt.Errorf("invalid breakfast flag %q", s)
}
