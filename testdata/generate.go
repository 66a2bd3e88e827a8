// Generates the sample dataset used for trying the tool by hand:
//
//	go run testdata/generate.go
//	go run ./cmd/li3 testdata/dataset testdata/queries.txt
//
// The same catalog is written twice, as semicolon CSV under
// testdata/dataset and as parquet under testdata/dataset-parquet.
package main

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/segmentio/parquet-go"
)

type userRow struct {
	ID            string `parquet:"id"`
	Name          string `parquet:"name"`
	Email         string `parquet:"email"`
	CountryCode   string `parquet:"country_code"`
	Passport      string `parquet:"passport"`
	BirthDate     string `parquet:"birth_date"`
	AccountStatus string `parquet:"account_status"`
}

type flightRow struct {
	ID                    int64  `parquet:"id"`
	Airline               string `parquet:"airline"`
	PlaneModel            string `parquet:"plane_model"`
	TotalSeats            int32  `parquet:"total_seats"`
	Origin                string `parquet:"origin"`
	Destination           string `parquet:"destination"`
	ScheduleDepartureDate string `parquet:"schedule_departure_date"`
	ScheduleArrivalDate   string `parquet:"schedule_arrival_date"`
	RealDepartureDate     string `parquet:"real_departure_date"`
}

type passengerRow struct {
	FlightID int64  `parquet:"flight_id"`
	UserID   string `parquet:"user_id"`
}

type reservationRow struct {
	ID                string `parquet:"id"`
	UserID            string `parquet:"user_id"`
	HotelID           string `parquet:"hotel_id"`
	HotelName         string `parquet:"hotel_name"`
	HotelStars        int32  `parquet:"hotel_stars"`
	CityTax           int32  `parquet:"city_tax"`
	PricePerNight     int32  `parquet:"price_per_night"`
	IncludesBreakfast bool   `parquet:"includes_breakfast"`
	BeginDate         string `parquet:"begin_date"`
	EndDate           string `parquet:"end_date"`
}

func main() {
	users := []userRow{
		{"JFonseca01", "José Fonseca", "jose.fonseca@mail.pt", "PT", "AB123456", "1985/03/12", "active"},
		{"MSilva", "Maria Silva", "maria.silva@mail.pt", "PT", "CD789012", "1992/07/30", "active"},
		{"JDoe", "John Doe", "john.doe@mail.com", "GB", "EF345678", "1979/11/02", "active"},
		{"ATorres", "Ana Torres", "ana.torres@mail.es", "ES", "GH901234", "1988/01/17", "inactive"},
		{"PCosta", "Pedro Costa", "pedro.costa@mail.pt", "PT", "IJ567890", "1995/05/23", "active"},
	}
	flights := []flightRow{
		{1, "TAP", "Airbus A320", 180, "LIS", "ORY", "2023/03/01 06:30:00", "2023/03/01 09:45:00", "2023/03/01 06:42:00"},
		{2, "TAP", "Airbus A320", 180, "LIS", "LHR", "2023/06/15 10:00:00", "2023/06/15 12:40:00", "2023/06/15 10:00:00"},
		{3, "Ryanair", "Boeing 737", 189, "OPO", "STN", "2023/06/20 07:15:00", "2023/06/20 09:55:00", "2023/06/20 07:30:00"},
		{4, "TAP", "Airbus A330", 290, "LIS", "GRU", "2022/11/05 23:10:00", "2022/11/06 07:05:00", "2022/11/05 23:25:00"},
		{5, "easyJet", "Airbus A319", 156, "LIS", "CDG", "2023/09/02 14:20:00", "2023/09/02 17:30:00", "2023/09/02 14:20:00"},
	}
	passengers := []passengerRow{
		{1, "JFonseca01"}, {1, "MSilva"},
		{2, "JFonseca01"}, {2, "JDoe"},
		{3, "MSilva"}, {3, "PCosta"},
		{4, "PCosta"},
		{5, "JFonseca01"},
	}
	reservations := []reservationRow{
		{"Book0000000001", "JFonseca01", "HTL1001", "Hotel Ribeira", 4, 10, 120, true, "2023/07/01", "2023/07/05"},
		{"Book0000000002", "MSilva", "HTL1002", "Hotel Baixa", 3, 8, 90, false, "2023/08/10", "2023/08/12"},
		{"Book0000000003", "JDoe", "HTL1001", "Hotel Ribeira", 4, 10, 150, true, "2022/12/20", "2022/12/27"},
		{"Book0000000004", "PCosta", "HTL1003", "Casa do Rio", 5, 12, 210, true, "2023/07/03", "2023/07/04"},
	}

	writeCSV("testdata/dataset/users.csv",
		[]string{"id", "name", "email", "country_code", "passport", "birth_date", "account_status"},
		userRecords(users))
	writeCSV("testdata/dataset/flights.csv",
		[]string{"id", "airline", "plane_model", "total_seats", "origin", "destination",
			"schedule_departure_date", "schedule_arrival_date", "real_departure_date"},
		flightRecords(flights))
	writeCSV("testdata/dataset/passengers.csv",
		[]string{"flight_id", "user_id"},
		passengerRecords(passengers))
	writeCSV("testdata/dataset/reservations.csv",
		[]string{"id", "user_id", "hotel_id", "hotel_name", "hotel_stars", "city_tax",
			"price_per_night", "includes_breakfast", "begin_date", "end_date"},
		reservationRecords(reservations))

	writeParquet("testdata/dataset-parquet/users.parquet", users)
	writeParquet("testdata/dataset-parquet/flights.parquet", flights)
	writeParquet("testdata/dataset-parquet/passengers.parquet", passengers)
	writeParquet("testdata/dataset-parquet/reservations.parquet", reservations)

	writeQueries("testdata/queries.txt")

	log.Println("Generated testdata/dataset, testdata/dataset-parquet and testdata/queries.txt")
}

func userRecords(rows []userRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.ID, r.Name, r.Email, r.CountryCode, r.Passport, r.BirthDate, r.AccountStatus}
	}
	return out
}

func flightRecords(rows []flightRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			strconv.FormatInt(r.ID, 10), r.Airline, r.PlaneModel,
			strconv.FormatInt(int64(r.TotalSeats), 10), r.Origin, r.Destination,
			r.ScheduleDepartureDate, r.ScheduleArrivalDate, r.RealDepartureDate,
		}
	}
	return out
}

func passengerRecords(rows []passengerRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{strconv.FormatInt(r.FlightID, 10), r.UserID}
	}
	return out
}

func reservationRecords(rows []reservationRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.ID, r.UserID, r.HotelID, r.HotelName,
			strconv.FormatInt(int64(r.HotelStars), 10),
			strconv.FormatInt(int64(r.CityTax), 10),
			strconv.FormatInt(int64(r.PricePerNight), 10),
			strconv.FormatBool(r.IncludesBreakfast),
			r.BeginDate, r.EndDate,
		}
	}
	return out
}

func writeCSV(path string, header []string, rows [][]string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal(err)
	}
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = ';'
	if err := w.Write(header); err != nil {
		log.Fatal(err)
	}
	if err := w.WriteAll(rows); err != nil {
		log.Fatal(err)
	}
}

func writeParquet[T any](path string, rows []T) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal(err)
	}
	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
}

func writeQueries(path string) {
	queries := `1 JFonseca01
1F Book0000000001
2 JFonseca01
2F MSilva flights
3 "Maria S"
4F LIS "2023/01/01 00:00:00" "2023/12/31 23:59:59"
5 2023 3
6F 2023
`
	if err := os.WriteFile(path, []byte(queries), 0o644); err != nil {
		log.Fatal(err)
	}
}
