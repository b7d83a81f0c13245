// run.go - concurrent multi-file test runner
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package testfile

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/i8086core"
	"github.com/intuitionamiga/i8086core/machine"
)

// FileResult is one input file's outcome: its own Report plus any error
// that stopped the run early (a malformed line, an unreadable file).
type FileResult struct {
	Path   string
	Report *Report
	Err    error
}

// RunFiles runs every path concurrently, each against a fresh CPU and
// Machine -- the core has no shared mutable state across instances, so a
// goroutine per file needs no coordination beyond collecting results.
// Every file runs to completion; the first error encountered is returned
// once all of them have finished.
func RunFiles(paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	var g errgroup.Group

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = FileResult{Path: path, Report: &Report{Title: path}}

			f, err := os.Open(path)
			if err != nil {
				results[i].Err = err
				return err
			}
			defer f.Close()

			m := machine.NewMachine()
			m.RAM.SetA20Gate(false) // matches test.c's "memory_a20gate(&cpu.memory.mem, false)"

			cpu := i8086.NewCPU()
			cpu.Mem = m.RAM
			cpu.Ports = m.Ports

			report := results[i].Report
			cpu.Undef = func(_ *i8086.CPU, opcode int) {
				report.Undefined = append(report.Undefined, fmt.Sprintf("undefined opcode 0x%02X", opcode))
			}

			if err := Run(f, cpu, m.RAM, report); err != nil {
				results[i].Err = fmt.Errorf("%s: %w", path, err)
				return results[i].Err
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// Total merges every per-file report into one grand total, the way
// test.c's main() aggregates tr[1..argc] into tr[0].
func Total(results []FileResult) *Report {
	total := &Report{Title: "Total"}
	for _, r := range results {
		if r.Report != nil {
			total.merge(r.Report)
		}
	}
	return total
}
