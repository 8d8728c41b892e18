package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/leengari/airquery/internal/domain/errors"
	"github.com/leengari/airquery/internal/engine"
)

// ansiClear moves the cursor home and clears the terminal
const ansiClear = "\033[H\033[2J"

// InputErrorMessage is shown when a query key has no entries
const InputErrorMessage = "USER INPUT ERROR"

// Executor runs one query; *engine.Engine satisfies it
type Executor interface {
	Execute(kind engine.QueryKind, key string) (*engine.Result, error)
}

type menuOption struct {
	label  string
	kind   engine.QueryKind // empty for Quit
	prompt string
}

var menu = []menuOption{
	{label: "Quit"},
	{label: "Zip Code", kind: engine.KindZip, prompt: "Enter zip code:"},
	{label: "UHF id", kind: engine.KindUHF, prompt: "Enter UHF:"},
	{label: "Borough", kind: engine.KindBorough, prompt: "Enter Borough name:"},
	{label: "Date", kind: engine.KindDate, prompt: "Enter date:"},
}

const defaultOption = 1

// Options configures the shell
type Options struct {
	Width int  // line width for result lists
	Clear bool // clear the screen between screens
}

// Shell is the interactive menu loop
type Shell struct {
	exec    Executor
	scanner *bufio.Scanner
	out     io.Writer
	opts    Options
}

// New creates a shell reading from in and writing to out
func New(exec Executor, in io.Reader, out io.Writer, opts Options) *Shell {
	if opts.Width <= 0 {
		opts.Width = 200
	}
	return &Shell{
		exec:    exec,
		scanner: bufio.NewScanner(in),
		out:     out,
		opts:    opts,
	}
}

// Run loops until Quit is chosen or input ends.
// Unknown keys are reported and the loop continues; any other query error
// ends the loop and is returned.
func (s *Shell) Run() error {
	for {
		s.printMenu()

		line, ok := s.readLine()
		if !ok {
			return nil
		}

		choice, err := parseChoice(line)
		if err != nil {
			fmt.Fprintf(s.out, "Unknown option %q\n", strings.TrimSpace(line))
			continue
		}

		s.clear()
		if choice == 0 {
			return nil
		}

		opt := menu[choice]
		fmt.Fprintln(s.out, opt.prompt)
		input, ok := s.readLine()
		if !ok {
			return nil
		}

		key := strings.TrimSpace(input)
		if key == "" {
			if !s.pause(InputErrorMessage) {
				return nil
			}
			continue
		}

		result, err := s.exec.Execute(opt.kind, key)
		if err != nil {
			if errors.IsKeyNotFound(err) {
				if !s.pause(InputErrorMessage) {
					return nil
				}
				continue
			}
			return err
		}

		PrintResult(s.out, result.Rows, s.opts.Width)
		if !s.pause("") {
			return nil
		}
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "Search by:")
	fmt.Fprintln(s.out)
	for i, opt := range menu {
		marker := "  "
		if i == defaultOption {
			marker = "=>"
		}
		fmt.Fprintf(s.out, "%s %d) %s\n", marker, i, opt.label)
	}
	fmt.Fprintf(s.out, "Choice [%d]: ", defaultOption)
}

func (s *Shell) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// pause prints msg (if any) and waits for Enter; false means input ended
func (s *Shell) pause(msg string) bool {
	if msg != "" {
		fmt.Fprintln(s.out, msg)
	}
	_, ok := s.readLine()
	return ok
}

func (s *Shell) clear() {
	if s.opts.Clear {
		fmt.Fprint(s.out, ansiClear)
	}
}

// parseChoice maps a menu line to an option number; blank picks the default
func parseChoice(line string) (int, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultOption, nil
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= len(menu) {
		return 0, fmt.Errorf("option %d out of range", n)
	}
	return n, nil
}
