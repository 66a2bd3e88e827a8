// Package queries implements the built-in query types that run against
// the flight-booking database.
//
// Each type parses its own arguments, so a malformed line is rejected
// before it ever reaches the dispatcher. Types 5 and 6 also precompute
// shared statistics once per batch, since their answers depend on whole
// catalog scans that would be wasteful to repeat per line.
package queries

import (
	"strconv"
	"time"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/query"
)

// NewRegistry returns a registry with every built-in query type installed
// under its numeric id.
func NewRegistry() *query.Registry {
	reg := query.NewRegistry()
	mustRegister(reg, 1, &EntitySummary{})
	mustRegister(reg, 2, &UserItems{})
	mustRegister(reg, 3, &NamePrefix{})
	mustRegister(reg, 4, &OriginWindow{})
	mustRegister(reg, 5, &TopAirports{})
	mustRegister(reg, 6, &YearSummary{})
	return reg
}

func mustRegister(reg *query.Registry, id int, t query.Type) {
	if err := reg.Register(id, t); err != nil {
		panic(err)
	}
}

func formatDate(t time.Time) string {
	return t.Format(database.DateLayout)
}

func formatDateTime(t time.Time) string {
	return t.Format(database.DateTimeLayout)
}

// formatMoney renders a currency amount with two decimal places.
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
