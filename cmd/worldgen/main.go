// Command worldgen generates one hex world and logs a summary of it.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/hexworld/internal/world"
)

func main() {
	level := slog.LevelInfo
	if envOrDefault("WORLDGEN_LOG_LEVEL", "info") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(os.Stdout, level))

	cfg, err := configFromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("generating world",
		"width", cfg.Width,
		"height", cfg.Height,
		"seed", cfg.Seed,
		"schedule", cfg.RegionSchedule,
		"field", cfg.Field,
		"easing", cfg.Easing,
	)

	w, err := world.Generate(cfg)
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	sum := world.Summarize(w)
	for _, l := range world.Layers {
		slog.Info("layer", "name", world.LayerName(l), "mean", fmt.Sprintf("%.3f", sum.Means[l]))
	}
	for _, size := range []world.SettlementSize{world.SizeCity, world.SizeTown, world.SizeVillage} {
		slog.Info("settlements", "size", world.SizeName(size), "count", sum.Settlements[size])
	}

	slog.Info("world ready",
		"run", w.RunID,
		"seed", w.Seed,
		"cells", humanize.Comma(int64(sum.Cells)),
		"land", humanize.Comma(int64(sum.LandCells)),
		"coast", humanize.Comma(int64(sum.CoastCells)),
	)

	fmt.Printf("\n%s cells, %s%% land, %s settlements (seed %d).\n",
		humanize.Comma(int64(sum.Cells)),
		humanize.FtoaWithDigits(sum.LandFraction()*100, 3),
		humanize.Comma(int64(len(w.Settlements))),
		w.Seed,
	)
}

// newLogger writes text to terminals and JSON everywhere else.
func newLogger(f *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return slog.New(slog.NewTextHandler(f, opts))
	}
	return slog.New(slog.NewJSONHandler(f, opts))
}

// configFromEnv starts from the defaults and applies WORLDGEN_* overrides.
func configFromEnv() (world.GenConfig, error) {
	cfg := world.DefaultGenConfig()
	cfg.Width = envIntOrDefault("WORLDGEN_WIDTH", cfg.Width)
	cfg.Height = envIntOrDefault("WORLDGEN_HEIGHT", cfg.Height)
	cfg.Seed = int64(envIntOrDefault("WORLDGEN_SEED", int(cfg.Seed)))
	cfg.SmoothPasses = envIntOrDefault("WORLDGEN_SMOOTH_PASSES", cfg.SmoothPasses)
	cfg.Workers = envIntOrDefault("WORLDGEN_WORKERS", cfg.Workers)
	cfg.SeaLevel = envFloatOrDefault("WORLDGEN_SEA_LEVEL", cfg.SeaLevel)
	cfg.BlendWeight = envFloatOrDefault("WORLDGEN_BLEND_WEIGHT", cfg.BlendWeight)
	cfg.SettlementThreshold = envFloatOrDefault("WORLDGEN_SETTLEMENT_THRESHOLD", cfg.SettlementThreshold)

	if v := os.Getenv("WORLDGEN_SCHEDULE"); v != "" {
		schedule, err := parseSchedule(v)
		if err != nil {
			return cfg, err
		}
		cfg.RegionSchedule = schedule
	}

	switch v := envOrDefault("WORLDGEN_FIELD", "uniform"); v {
	case "uniform":
		cfg.Field = world.FieldUniform
	case "simplex":
		cfg.Field = world.FieldSimplex
	default:
		return cfg, fmt.Errorf("WORLDGEN_FIELD %q: want uniform or simplex", v)
	}

	switch v := envOrDefault("WORLDGEN_EASING", "quadratic"); v {
	case "quadratic":
		cfg.Easing = world.EaseQuadratic
	case "rational":
		cfg.Easing = world.EaseRational
	default:
		return cfg, fmt.Errorf("WORLDGEN_EASING %q: want quadratic or rational", v)
	}

	return cfg, cfg.Validate()
}

// parseSchedule reads a comma-separated list of region counts. "alt" selects
// the two-pass schedule.
func parseSchedule(v string) ([]int, error) {
	if v == "alt" {
		return append([]int(nil), world.AltRegionSchedule...), nil
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("region schedule %q: %w", v, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envFloatOrDefault(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
