package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kalexmills/s2v/internal"
	"github.com/kalexmills/s2v/pkg/s2v"
)

// errQuit signals the REPL loop to stop after a Q command.
var errQuit = fmt.Errorf("quit")

// REPL dispatches the six-command batch language against a live
// Spreadsheet: C (new), E <coord> <content> (edit), L <path> (load),
// S <path> (save), RF <path> (run a file of commands), Q (quit).
type REPL struct {
	out    io.Writer
	log    zerolog.Logger
	sheet  *internal.Spreadsheet
	reader *bufio.Scanner
}

// NewREPL builds a REPL reading commands from in and writing responses to out.
func NewREPL(in io.Reader, out io.Writer, logger zerolog.Logger) *REPL {
	return &REPL{
		out:    out,
		log:    logger,
		sheet:  internal.NewSpreadsheet(),
		reader: bufio.NewScanner(in),
	}
}

// Run reads commands until Q or EOF.
func (r *REPL) Run() error {
	for r.reader.Scan() {
		line := r.reader.Text()
		if err := r.dispatch(line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(r.out, "error: %v\n", err)
			r.log.Error().Err(err).Str("command", line).Msg("command failed")
		}
	}
	return r.reader.Err()
}

// dispatch executes a single command line. It is also used by RF to replay
// a batch file line by line.
func (r *REPL) dispatch(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	var rest string
	if len(fields) > 1 {
		rest = fields[1]
	}

	switch cmd {
	case "C":
		r.sheet.Reset()
		r.log.Info().Msg("new spreadsheet")
		return nil
	case "E":
		return r.handleEdit(rest)
	case "L":
		return r.handleLoad(strings.TrimSpace(rest))
	case "S":
		return r.handleSave(strings.TrimSpace(rest))
	case "RF":
		return r.handleRunFile(strings.TrimSpace(rest))
	case "Q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (r *REPL) handleEdit(rest string) error {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) < 2 {
		return fmt.Errorf("usage: E <coord> <content>")
	}
	coord, content := parts[0], parts[1]
	if err := r.sheet.EditCell(coord, content); err != nil {
		return err
	}
	v, err := r.sheet.GetCellValueAsString(coord)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s = %s\n", coord, v)
	return nil
}

func (r *REPL) handleLoad(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", internal.ErrIO, err)
	}
	defer f.Close()

	sheet, err := s2v.Load(f, r.log)
	if err != nil {
		return err
	}
	r.sheet = sheet
	r.log.Info().Str("path", path).Msg("loaded spreadsheet")
	return nil
}

func (r *REPL) handleSave(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", internal.ErrIO, err)
	}
	defer f.Close()

	if err := s2v.Save(f, r.sheet); err != nil {
		return err
	}
	r.log.Info().Str("path", path).Msg("saved spreadsheet")
	return nil
}

func (r *REPL) handleRunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", internal.ErrIO, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := r.dispatch(scanner.Text()); err != nil {
			if err == errQuit {
				return nil
			}
			return err
		}
	}
	return scanner.Err()
}
