package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/JosLopes/LI3-sub001/database"
	"github.com/JosLopes/LI3-sub001/perf"
	"github.com/JosLopes/LI3-sub001/query"
)

// runBatch parses every line of the query file, runs the ones that parse
// and writes each answer to query<line>.txt under outDir. Lines that fail
// to parse are logged and skipped; their result file is never created.
func runBatch(db *database.Database, reg *query.Registry, rec perf.Recorder, logger log.Logger, queryFile, outDir string) error {
	file, err := os.Open(queryFile)
	if err != nil {
		return fmt.Errorf("opening query file: %w", err)
	}
	defer file.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	parser := query.NewParser(reg)
	list := query.NewList()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		inst, err := parser.ParseLine(scanner.Text(), lineNum)
		if err != nil {
			level.Debug(logger).Log("msg", "query rejected", "err", err)
			continue
		}
		list.Add(inst)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading query file: %w", err)
	}

	// Result files open before dispatch starts, so a full disk or a bad
	// output directory aborts the run before any query spends time.
	files := make(map[int]*os.File, list.Len())
	err = list.Each(func(inst *query.Instance) error {
		name := filepath.Join(outDir, fmt.Sprintf("query%d.txt", inst.Line))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		files[inst.Line] = f
		return nil
	})
	if err != nil {
		for _, f := range files {
			f.Close()
		}
		return err
	}

	dispatcher := query.NewDispatcher(reg, rec, log.With(logger, "component", "dispatch"))
	err = dispatcher.Dispatch(db, list, func(inst *query.Instance) io.Writer {
		return files[inst.Line]
	})

	for line, f := range files {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing result for line %d: %w", line, cerr)
		}
	}
	return err
}
