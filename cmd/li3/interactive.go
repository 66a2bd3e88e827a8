package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-kit/log"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/perf"
	"github.com/JosLopes/LI3-sub001/query"
)

// runInteractive reads queries from the terminal and prints each answer
// straight away. The line counter keeps incrementing across the session
// so a later -perf report attributes every execution unambiguously.
func runInteractive(db *database.Database, reg *query.Registry, rec perf.Recorder, logger log.Logger) error {
	prompt := color.New(color.FgCyan, color.Bold).SprintFunc()
	errText := color.New(color.FgRed).SprintFunc()

	fmt.Println("Type a query, \"help\" for the syntax or \"exit\" to leave.")

	parser := query.NewParser(reg)
	dispatcher := query.NewDispatcher(reg, rec, log.With(logger, "component", "dispatch"))
	scanner := bufio.NewScanner(os.Stdin)
	lineNum := 0
	for {
		fmt.Print(prompt("li3> "))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "help":
			printHelp(os.Stdout)
			continue
		}

		lineNum++
		inst, err := parser.ParseLine(line, lineNum)
		if err != nil {
			fmt.Println(errText(err.Error()))
			continue
		}
		if err := dispatcher.DispatchOne(db, inst, os.Stdout); err != nil {
			return err
		}
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Queries are numbered and take space-separated arguments; double-quote")
	fmt.Fprintln(w, "any argument containing spaces. Append F to the number for a formatted")
	fmt.Fprintln(w, "table, e.g. 3F \"John D\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  1 <id>                           summary of a user, flight or reservation")
	fmt.Fprintln(w, "  2 <user> [flights|reservations]  what a user flew and booked, newest first")
	fmt.Fprintln(w, "  3 <prefix>                       active users whose name starts with prefix")
	fmt.Fprintln(w, "  4 <airport> <from> <to>          departures from an airport in a time window")
	fmt.Fprintln(w, "  5 <year> <n>                     top n airports by passengers in a year")
	fmt.Fprintln(w, "  6 <year>                         activity totals for a year")
}
