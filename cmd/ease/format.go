package main

import (
	"fmt"

	"github.com/Yuminaga-Ten/Ease/pkg/occupancy"
	"github.com/Yuminaga-Ten/Ease/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(e)
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			printResult(w)
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if cells := r.Cells(); len(cells) > 0 {
		fmt.Printf("Cells: %v\n", cells)
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(res validation.Result) {
	fmt.Printf("  [%s] %s\n", res.Level, res.Message)
	if loc := res.Location(); loc != "" {
		if res.ActualValue != nil {
			fmt.Printf("    -> %s = %v\n", loc, res.ActualValue)
		} else {
			fmt.Printf("    -> %s\n", loc)
		}
	}
	if res.Occupant != occupancy.None {
		fmt.Printf("    occupied by: %s\n", res.Occupant)
	}
	if res.ConflictWith != occupancy.None {
		fmt.Printf("    conflicts with: %s\n", res.ConflictWith)
	}
	if res.Expected != "" {
		fmt.Printf("    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}
