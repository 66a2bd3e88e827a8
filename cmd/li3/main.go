package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/dataset"
	"github.com/JosLopes/LI3-sub001/perf"
	"github.com/JosLopes/LI3-sub001/queries"
)

var (
	outDirFlag      = flag.String("o", "results", "Directory for per-query result files (batch mode)")
	interactiveFlag = flag.Bool("i", false, "Read queries from the terminal instead of a file")
	perfFlag        = flag.Bool("perf", false, "Measure CPU and memory usage and print a report")
	verboseFlag     = flag.Bool("v", false, "Log rejected dataset rows and failed queries")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <dataset-dir> <query-file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Loads a flight-booking dataset and answers the queries in a batch file,\n")
		fmt.Fprintf(os.Stderr, "writing one result file per query line. With -i only <dataset-dir> is\n")
		fmt.Fprintf(os.Stderr, "given and queries are typed at a prompt.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s dataset/ queries.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -perf -o out/ dataset/ queries.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i dataset/\n", os.Args[0])
	}

	flag.Parse()

	if *interactiveFlag {
		if flag.NArg() != 1 {
			fmt.Fprintf(os.Stderr, "Error: -i takes exactly one <dataset-dir> argument\n\n")
			flag.Usage()
			os.Exit(1)
		}
	} else if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Error: missing dataset directory or query file\n\n")
		flag.Usage()
		os.Exit(1)
	}

	logger := newLogger(*verboseFlag)

	var metrics *perf.Metrics
	rec := perf.Nop()
	if *perfFlag {
		metrics = perf.NewMetrics(logger)
		rec = metrics
	}

	db := database.NewDatabase()
	if _, err := dataset.Load(flag.Arg(0), db, rec, log.With(logger, "component", "dataset")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reg := queries.NewRegistry()

	var err error
	if *interactiveFlag {
		err = runInteractive(db, reg, rec, logger)
	} else {
		err = runBatch(db, reg, rec, logger, flag.Arg(1), *outDirFlag)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if metrics != nil {
		printReport(os.Stdout, metrics)
	}
}

func newLogger(verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}
