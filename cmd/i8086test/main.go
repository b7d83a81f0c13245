// main.go - i8086test: run register-diff regression files against the core
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/intuitionamiga/i8086core/testfile"
)

const version = "0.1.0"

const (
	colorNone  = "\033[0m"
	colorGreen = "\033[1;32m"
	colorRed   = "\033[1;31m"
)

func colorize(useColor bool, color, text string) string {
	if !useColor {
		return text
	}
	return color + text + colorNone
}

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "i8086test",
		Short: "Run register-diff regression files against the i8086 core",
	}

	runCmd := &cobra.Command{
		Use:   "run [file ...]",
		Short: "Run one or more test files and print a pass/fail summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(args, verbose)
		},
	}
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every failing check")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the i8086test version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("i8086test", version)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFiles(paths []string, verbose bool) error {
	useColor := term.IsTerminal(int(os.Stdout.Fd()))

	results, runErr := testfile.RunFiles(paths)

	for _, r := range results {
		if r.Report == nil {
			continue
		}
		if r.Err != nil {
			fmt.Printf("%s %s: %v\n", colorize(useColor, colorRed, "[ERROR]"), r.Path, r.Err)
			continue
		}

		label := colorize(useColor, colorGreen, "[PASS]")
		if r.Report.Failed() {
			label = colorize(useColor, colorRed, "[FAIL]")
		}
		fmt.Printf("%s %s\n", label, r.Path)
		fmt.Printf("  Cases:  %d, failed: %d, passed: %d\n",
			r.Report.CasesFailed+r.Report.CasesPassed, r.Report.CasesFailed, r.Report.CasesPassed)
		fmt.Printf("  Checks: %d, failed: %d, passed: %d\n",
			r.Report.ChecksFailed+r.Report.ChecksPassed, r.Report.ChecksFailed, r.Report.ChecksPassed)

		if verbose {
			for _, f := range r.Report.Failures {
				fmt.Println("   ", f)
			}
			for _, u := range r.Report.Undefined {
				fmt.Println("   ", colorize(useColor, colorRed, "[undef]"), u)
			}
		}
	}

	total := testfile.Total(results)
	fmt.Println()
	label := colorize(useColor, colorGreen, "[PASS]")
	if total.Failed() {
		label = colorize(useColor, colorRed, "[FAIL]")
	}
	fmt.Printf("%s Total\n", label)
	fmt.Printf("Cases:  %d, failed: %d, passed: %d\n",
		total.CasesFailed+total.CasesPassed, total.CasesFailed, total.CasesPassed)
	fmt.Printf("Checks: %d, failed: %d, passed: %d\n",
		total.ChecksFailed+total.ChecksPassed, total.ChecksFailed, total.ChecksPassed)

	if runErr != nil {
		return runErr
	}
	if total.Failed() {
		os.Exit(1)
	}
	return nil
}
