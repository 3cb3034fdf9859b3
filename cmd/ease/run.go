package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Yuminaga-Ten/Ease/pkg/config"
	"github.com/Yuminaga-Ten/Ease/pkg/grid"
	"github.com/Yuminaga-Ten/Ease/pkg/render"
	"github.com/Yuminaga-Ten/Ease/pkg/script"
	"github.com/Yuminaga-Ten/Ease/pkg/session"
	"github.com/Yuminaga-Ten/Ease/pkg/validation"
)

// loadAndValidate loads the config and runs its validation.
func loadAndValidate(projectPath string) (*config.Config, *validation.Report, error) {
	cfg, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, validation.ValidateConfig(cfg), nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

// newSession builds a session drawing onto a fresh canvas.
func newSession(cfg *config.Config) (*session.Session, *render.Canvas, error) {
	canvas := render.NewCanvas(grid.New(cfg.GridConfig()), render.DefaultOptions())
	sess, err := session.New(cfg, canvas)
	if err != nil {
		return nil, nil, err
	}
	return sess, canvas, nil
}

func runReplay(projectPath string, scripts []string, pngPath string, dump bool) error {
	cfg, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("config has validation errors")
	}

	failed := 0
	var (
		last   *session.Session
		canvas *render.Canvas
	)
	for _, path := range scripts {
		sc, err := script.Load(path)
		if err != nil {
			return err
		}

		runCfg := sc.Configure(cfg)
		if r := validation.ValidateConfig(runCfg); !r.Valid {
			printValidationReport(r)
			return fmt.Errorf("%s: explored regions are invalid", path)
		}
		sess, c, err := newSession(runCfg)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		res := sc.Run(sess)
		r := sc.Check(sess)
		r.Merge(sess.Audit())

		name := sc.Name
		if name == "" {
			name = path
		}
		fmt.Printf("== %s (%d steps, %d ticks)\n", name, res.Steps, res.Ticks)
		printValidationReport(r)
		fmt.Println()
		if !r.Valid {
			failed++
		}
		last, canvas = sess, c
	}

	if pngPath != "" {
		if err := canvas.SavePNG(pngPath); err != nil {
			return fmt.Errorf("saving map: %w", err)
		}
		fmt.Printf("map written to %s\n", pngPath)
	}
	if dump {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(last.Scene()); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed", failed, len(scripts))
	}
	return nil
}

func runRender(projectPath, out string) error {
	cfg, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("config has validation errors")
	}

	_, canvas, err := newSession(cfg)
	if err != nil {
		return err
	}
	if err := canvas.SavePNG(out); err != nil {
		return fmt.Errorf("saving map: %w", err)
	}
	fmt.Printf("map written to %s\n", out)
	return nil
}
