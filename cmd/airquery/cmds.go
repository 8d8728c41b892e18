package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leengari/airquery/datasets"
	"github.com/leengari/airquery/internal/config"
	"github.com/leengari/airquery/internal/domain/errors"
	"github.com/leengari/airquery/internal/engine"
	"github.com/leengari/airquery/internal/infrastructure/logging"
	"github.com/leengari/airquery/internal/repl"
)

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

// Represents the state used when processing a command.
type Action struct {
	cmd     *cobra.Command
	cfg     *config.Config
	closeFn func()
}

func newAction(cmd *cobra.Command) *Action {
	result := &Action{cmd: cmd}
	result.cfg = result.loadConfig()

	logger, closeFn := logging.SetupLogger(result.cfg.LogOptions())
	slog.SetDefault(logger)
	result.closeFn = closeFn

	return result
}

func (a *Action) getInt(name string) int {
	result, _ := a.cmd.Flags().GetInt(name)
	return result
}

func (a *Action) getString(name string) string {
	result, _ := a.cmd.Flags().GetString(name)
	return result
}

func (a *Action) changed(name string) bool {
	f := a.cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// loadConfig reads the config file and environment, then applies flags
func (a *Action) loadConfig() *config.Config {
	cfg, err := config.Load(a.getString("config"))
	if err != nil {
		fatal("%v", err)
	}
	if a.changed("air-quality") {
		cfg.Data.AirQuality = a.getString("air-quality")
	}
	if a.changed("uhf") {
		cfg.Data.UHF = a.getString("uhf")
	}
	if a.changed("pairing") {
		cfg.Pairing = a.getString("pairing")
	}
	if a.changed("width") {
		cfg.Output.Width = a.getInt("width")
	}
	if a.changed("log-level") {
		cfg.Log.Level = a.getString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}
	return cfg
}

func (a *Action) Engine() *engine.Engine {
	eng := engine.New(engine.Sources{
		AirQuality: a.cfg.Data.AirQuality,
		UHF:        a.cfg.Data.UHF,
	}, engine.Options{Pairing: a.cfg.PairingMode()})
	eng.AddObserver(engine.NewLoggingObserver())
	return eng
}

// Flush logs and exit with the given code.
func (a *Action) Exit(code int) {
	a.closeFn()
	os.Exit(code)
}

func (a *Action) query(kind engine.QueryKind, key string) {
	result, err := a.Engine().Execute(kind, key)
	if err != nil {
		if errors.IsKeyNotFound(err) {
			fmt.Fprintf(os.Stderr, "no entries for %s %q\n", kind, key)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		a.Exit(1)
	}
	for _, row := range result.Rows {
		fmt.Println(row)
	}
	a.Exit(0)
}

func searchByDate(cmd *cobra.Command, args []string) {
	newAction(cmd).query(engine.KindDate, args[0])
}

func searchByUHF(cmd *cobra.Command, args []string) {
	newAction(cmd).query(engine.KindUHF, args[0])
}

func searchByBorough(cmd *cobra.Command, args []string) {
	newAction(cmd).query(engine.KindBorough, args[0])
}

func searchByZipcode(cmd *cobra.Command, args []string) {
	newAction(cmd).query(engine.KindZip, args[0])
}

func runShell(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	shell := repl.New(action.Engine(), os.Stdin, os.Stdout, repl.Options{
		Width: action.cfg.Output.Width,
		Clear: action.cfg.ClearScreen(),
	})
	if err := shell.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		action.Exit(1)
	}
	action.Exit(0)
}

func seedData(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	written, err := datasets.Seed(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		action.Exit(1)
	}
	if len(written) == 0 {
		fmt.Printf("Sample tables already present in %s\n", dir)
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}
	action.Exit(0)
}
