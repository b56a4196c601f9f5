package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tachyonhpc/tachyon/annotation"
	"github.com/tachyonhpc/tachyon/ir"
	"github.com/tachyonhpc/tachyon/irtext"
	"github.com/tachyonhpc/tachyon/splitter"
)

var (
	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	changedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		irFile    = flag.String("ir", "", "Path to textual IR file")
		funcName  = flag.String("func", "", "Transform only this function (optional)")
		barrier   = flag.String("barrier", "", "Canonical barrier intrinsic name override")
		printIR   = flag.Bool("print", false, "Print the transformed module")
		verbose   = flag.Bool("v", false, "Verbose pass logging")
		quietDiag = flag.Bool("q", false, "Suppress warning diagnostics")
	)
	flag.Parse()

	if *irFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: splitrun -ir <file> [-func name] [-barrier name] [-print]")
		os.Exit(1)
	}

	if err := run(*irFile, *funcName, *barrier, *printIR, *verbose, *quietDiag); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func run(irFile, funcName, barrier string, printIR, verbose, quiet bool) error {
	source, err := os.ReadFile(irFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", irFile, err)
	}

	m, info, err := irtext.Parse(string(source))
	if err != nil {
		return fmt.Errorf("parse %s: %w", irFile, err)
	}

	if barrier == "" {
		barrier = info.Barrier
	}
	oracle := annotation.NewSet(info.Kernels, info.Splitters, barrier)

	log := splitter.Logger()
	if verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck
		ir.SetLogger(log)
	}
	cfg := splitter.Config{Oracle: oracle, Logger: log}

	var results map[string]splitter.Result
	if funcName != "" {
		f := m.Func(funcName)
		if f == nil {
			return fmt.Errorf("no function @%s in %s", funcName, irFile)
		}
		res, err := splitter.Run(f, cfg)
		if err != nil {
			return err
		}
		results = map[string]splitter.Result{funcName: res}
	} else {
		results, err = splitter.RunModule(m, cfg)
		if err != nil {
			return err
		}
	}

	for _, f := range m.Funcs {
		res, ok := results[f.Name]
		if !ok || (!oracle.IsKernelFunc(f) && funcName == "") {
			continue
		}
		state := dimStyle.Render("unchanged")
		if res.Changed {
			state = changedStyle.Render("changed")
		}
		fmt.Printf("%s %s\n", funcStyle.Render("@"+f.Name), state)
		if !quiet {
			for _, warn := range multierr.Errors(res.Diagnostics) {
				fmt.Printf("  %s %v\n", warnStyle.Render("warning:"), warn)
			}
		}
	}

	if printIR {
		fmt.Println()
		fmt.Print(irtext.Print(m, info))
	}
	return nil
}
