// Package dataset loads the entity files of a dataset directory into the
// in-memory database. Loading walks the entities in a fixed order (users,
// flights, passengers, reservations), each bracketed by one performance
// measurement step. Rows that fail validation are counted and dropped;
// a missing entity file aborts the load.
//
// Each entity may be stored as <name>.csv, <name>.csv.gz or
// <name>.parquet; the first form found wins.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/perf"
)

// errMalformedRow marks row-local failures: the row is dropped and loading
// continues.
var errMalformedRow = errors.New("malformed row")

// rowReader yields one record at a time as column name → raw value.
// Implementations return io.EOF at end of data and wrap errMalformedRow
// around failures confined to a single row.
type rowReader interface {
	Next() (map[string]string, error)
	Close() error
}

// Stats counts accepted and rejected rows per loading step.
type Stats struct {
	Loaded   map[perf.Step]int
	Rejected map[perf.Step]int
}

// Load reads the four entity files from dir into db. rec receives one
// dataset measurement per step; nil disables measurement. logger receives
// per-row drop diagnostics at debug level; nil discards them.
func Load(dir string, db *database.Database, rec perf.Recorder, logger log.Logger) (*Stats, error) {
	if rec == nil {
		rec = perf.Nop()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	stats := &Stats{
		Loaded:   make(map[perf.Step]int),
		Rejected: make(map[perf.Step]int),
	}

	steps := []struct {
		step perf.Step
		name string
		add  func(*database.Database, map[string]string) error
	}{
		{perf.StepUsers, "users", addUser},
		{perf.StepFlights, "flights", addFlight},
		{perf.StepPassengers, "passengers", addPassenger},
		{perf.StepReservations, "reservations", addReservation},
	}

	for _, s := range steps {
		r, err := openEntity(dir, s.name)
		if err != nil {
			rec.MeasureDataset(perf.StepDone)
			return nil, err
		}
		rec.MeasureDataset(s.step)
		err = loadRows(r, db, s.step, s.add, stats, logger)
		r.Close()
		if err != nil {
			rec.MeasureDataset(perf.StepDone)
			return nil, fmt.Errorf("loading %s: %w", s.name, err)
		}
	}
	rec.MeasureDataset(perf.StepDone)

	level.Info(logger).Log("msg", "dataset loaded",
		"users", db.Users(), "flights", db.Flights(),
		"passengers", db.Passengers(), "reservations", db.Reservations())
	return stats, nil
}

// openEntity resolves the file backing one entity inside dir.
func openEntity(dir, name string) (rowReader, error) {
	csvPath := filepath.Join(dir, name+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		return newCSVReader(csvPath)
	}
	if _, err := os.Stat(csvPath + ".gz"); err == nil {
		return newCSVReader(csvPath + ".gz")
	}
	pqPath := filepath.Join(dir, name+".parquet")
	if _, err := os.Stat(pqPath); err == nil {
		return newParquetReader(pqPath)
	}
	return nil, fmt.Errorf("no %s.csv, %s.csv.gz or %s.parquet in %s", name, name, name, dir)
}

// loadRows drains r into db. Row-local failures are counted and logged;
// anything else is fatal to the load.
func loadRows(r rowReader, db *database.Database, step perf.Step, add func(*database.Database, map[string]string) error, stats *Stats, logger log.Logger) error {
	for {
		row, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, errMalformedRow) {
				stats.Rejected[step]++
				level.Debug(logger).Log("msg", "dropping row", "step", step, "err", err)
				continue
			}
			return err
		}
		if err := add(db, row); err != nil {
			stats.Rejected[step]++
			level.Debug(logger).Log("msg", "dropping row", "step", step, "err", err)
			continue
		}
		stats.Loaded[step]++
	}
}
