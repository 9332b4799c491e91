package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/slidecheck"
	"github.com/phanxgames/slidecheck/background"
	"github.com/phanxgames/slidecheck/ebitenview"
)

var (
	seed           uint64
	scriptPath     string
	screenshotDir  string
	windowScale    float64
	preloadTimeout time.Duration
)

// runCmd opens the widget window
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the verification widget",
	Long: `Opens a window with the widget. With --script the window replays a JSON
script of drags, clicks, waits and screenshots and closes when it is done.

Example:
  slidecheck run --seed 7 --script smoke.json --screenshots out/`,
	RunE: runWidget,
}

func init() {
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	runCmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to replay")
	runCmd.Flags().StringVar(&screenshotDir, "screenshots", "screenshots", "directory for script screenshots")
	runCmd.Flags().Float64Var(&windowScale, "scale", 1.5, "window scale")
	runCmd.Flags().DurationVar(&preloadTimeout, "preload-timeout", 10*time.Second, "how long to wait for background images before opening")
}

func runWidget(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := ebitenview.Options{}
	bw, bh := opts.BackgroundSize()
	src := background.NewSource(bw, bh, background.WithLogger(logger.Named("background")))
	defer src.Close()
	preload(cmd.Context(), src, cfg.CandidateImages)

	view := ebitenview.New(opts,
		ebitenview.WithSource(src),
		ebitenview.WithLogger(logger.Named("view")),
		ebitenview.WithMessages(cfg.Messages),
	)
	view.SetDebugMode(debug)
	view.ScreenshotDir = screenshotDir

	widgetOpts := []slidecheck.Option{
		slidecheck.WithConfig(cfg),
		slidecheck.WithLogger(logger.Named("widget")),
	}
	if seed != 0 {
		widgetOpts = append(widgetOpts, slidecheck.WithRand(slidecheck.NewRand(seed)))
	}
	w, err := slidecheck.New(view, widgetOpts...)
	if err != nil {
		return err
	}
	view.Attach(w)

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := ebitenview.LoadScript(data)
		if err != nil {
			return err
		}
		view.SetScriptRunner(runner)
	}

	err = ebitenview.Run(view, ebitenview.RunConfig{
		Title:            "slidecheck",
		Scale:            windowScale,
		ExitOnScriptDone: scriptPath != "",
	})

	st := w.Stats()
	logger.Info("session finished",
		zap.Int("rounds", st.Rounds),
		zap.Int("passes", st.Passes),
		zap.Int("failures", st.Failures),
		zap.Int("forced_resets", st.ForcedResets),
		zap.Int("cancelled", st.Cancelled),
	)
	return err
}

// preload warms the image cache. Failures are not fatal: the view falls back
// to a generated background for anything that did not load.
func preload(ctx context.Context, src *background.Source, images []string) {
	ctx, cancel := context.WithTimeout(ctx, preloadTimeout)
	defer cancel()

	start := time.Now()
	if err := src.Preload(ctx, images); err != nil {
		logger.Warn("background preload incomplete", zap.Error(err))
		return
	}
	logger.Debug("backgrounds preloaded",
		zap.Int("count", len(images)),
		zap.Duration("took", time.Since(start)),
	)
}
