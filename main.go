package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spin/app"
	"github.com/pthm-cable/spin/config"
	"github.com/pthm-cable/spin/replay"
	"github.com/pthm-cable/spin/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics (requires -script)")
	scriptPath := flag.String("script", "", "YAML drag script to replay")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	streamOn := flag.Bool("stream", false, "Serve the orientation stream (overrides config)")
	sensitivity := flag.Float64("sensitivity", 0, "Rotation sensitivity in radians per unit (0 = use config)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *sensitivity != 0 {
		if err := cfg.SetSensitivity(*sensitivity); err != nil {
			slog.Error("bad -sensitivity", "value", *sensitivity, "error", err)
			os.Exit(2)
		}
	}

	opts := app.Options{
		OutputDir: *outputDir,
		Stream:    cfg.Stream.Enabled || *streamOn,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *scriptPath))
	}
	os.Exit(runGraphical(cfg, opts, *scriptPath, *maxFrames))
}

// runHeadless replays a drag script and logs the resulting orientation.
func runHeadless(cfg *config.Config, opts app.Options, scriptPath string) int {
	if scriptPath == "" {
		slog.Error("headless mode needs -script")
		return 2
	}
	script, err := replay.Load(scriptPath)
	if err != nil {
		slog.Error("failed to load script", "error", err)
		return 1
	}

	a, err := app.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}

	slog.Info("replaying script",
		"script", scriptPath,
		"strokes", len(script.Strokes),
		"moves", script.Moves(),
		"sensitivity", a.Controller.Sensitivity(),
	)
	replay.Run(script, a.Surface)

	q := a.Orientation()
	slog.Info("final orientation",
		"w", q.Real,
		"x", q.Imag,
		"y", q.Jmag,
		"z", q.Kmag,
		"sessions", len(a.Collector.Sessions()),
	)

	if err := a.Close(); err != nil {
		slog.Error("failed to flush output", "error", err)
		return 1
	}
	if dir := a.Out.Dir(); dir != "" {
		slog.Info("output written", "dir", dir)
	}
	return 0
}

// runGraphical opens a raylib window. A script, if given, is replayed
// before the first frame.
func runGraphical(cfg *config.Config, opts app.Options, scriptPath string, maxFrames int) int {
	var script *replay.Script
	if scriptPath != "" {
		s, err := replay.Load(scriptPath)
		if err != nil {
			slog.Error("failed to load script", "error", err)
			return 1
		}
		script = s
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a, err := app.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to flush output", "error", err)
		}
	}()

	v, err := viewer.New(a)
	if err != nil {
		slog.Error("failed to create viewer", "error", err)
		return 1
	}
	defer v.Close()

	if script != nil {
		replay.Run(script, a.Surface)
	}

	for frame := 0; !rl.WindowShouldClose(); frame++ {
		if maxFrames > 0 && frame >= maxFrames {
			slog.Info("max frames reached", "frame", frame)
			break
		}
		v.Update()
		v.Draw()
	}
	return 0
}
