// World generation: seeds an elevation field, layers plate-like region
// biases over it, smooths the relief, derives climate, and places
// settlements. Each phase commits fully before the next one starts.
package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexworld/internal/entropy"
)

// InitialField selects how elevation is seeded before partitioning.
type InitialField uint8

const (
	FieldUniform InitialField = iota // Independent uniform value per cell
	FieldSimplex                     // Layered simplex noise
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width  int   // Columns
	Height int   // Rows
	Seed   int64 // Random seed (0 = random)

	Field          InitialField
	RegionSchedule []int   // Region counts per partition pass, coarse to fine
	BlendWeight    float64 // Share of the region bias blended in (0.0–1.0)

	SmoothPasses int
	Easing       Easing
	Workers      int // Smoothing goroutines (0 = GOMAXPROCS)

	SeaLevel            float64 // Elevation threshold for land (0.0–1.0)
	SettlementThreshold float64 // Minimum civilization score for a settlement
}

// AltRegionSchedule is the shallower two-pass schedule.
var AltRegionSchedule = []int{30, 8}

// DefaultGenConfig returns the standard 200x200 configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:               200,
		Height:              200,
		Seed:                0,
		Field:               FieldUniform,
		RegionSchedule:      []int{50, 10, 3},
		BlendWeight:         DefaultBlendWeight,
		SmoothPasses:        4,
		Easing:              EaseQuadratic,
		SeaLevel:            0.4,
		SettlementThreshold: DefaultSettlementThreshold,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	cfg := DefaultGenConfig()
	cfg.Width = 24
	cfg.Height = 16
	cfg.Seed = 42
	cfg.RegionSchedule = []int{12, 4}
	cfg.SmoothPasses = 2
	return cfg
}

// Validate checks every parameter against the grid size implied by the
// config. Generate calls it before allocating anything.
func (cfg GenConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("grid size %dx%d: %w", cfg.Width, cfg.Height, ErrInvalidParameter)
	}
	cells := cfg.Width * cfg.Height
	if len(cfg.RegionSchedule) == 0 {
		return fmt.Errorf("empty region schedule: %w", ErrInvalidParameter)
	}
	for i, n := range cfg.RegionSchedule {
		if n < 1 || n > cells {
			return fmt.Errorf("region schedule[%d] = %d for %d cells: %w", i, n, cells, ErrInvalidParameter)
		}
	}
	if cfg.BlendWeight < 0 || cfg.BlendWeight > 1 {
		return fmt.Errorf("blend weight %.3f: %w", cfg.BlendWeight, ErrInvalidParameter)
	}
	if cfg.SmoothPasses < 1 {
		return fmt.Errorf("smoothing passes %d: %w", cfg.SmoothPasses, ErrInvalidParameter)
	}
	if cfg.Easing != EaseQuadratic && cfg.Easing != EaseRational {
		return fmt.Errorf("easing %d: %w", cfg.Easing, ErrInvalidParameter)
	}
	if cfg.Field != FieldUniform && cfg.Field != FieldSimplex {
		return fmt.Errorf("initial field %d: %w", cfg.Field, ErrInvalidParameter)
	}
	if cfg.SettlementThreshold <= 0 {
		return fmt.Errorf("settlement threshold %.3f: %w", cfg.SettlementThreshold, ErrInvalidParameter)
	}
	return cfg.climate().Validate()
}

func (cfg GenConfig) climate() ClimateConfig {
	cc := DefaultClimateConfig(cfg.Height)
	cc.SeaLevel = cfg.SeaLevel
	return cc
}

// World is the finished result of one generation run. It is read-only once
// Generate returns.
type World struct {
	RunID       string
	Seed        int64 // Resolved seed; reproduces the run
	Grid        *Grid
	Settlements []Settlement
}

// Generate creates a complete world. It returns ErrInvalidParameter before
// doing any work if the config is out of range, and never returns a
// partially generated grid.
func Generate(cfg GenConfig) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	seed := entropy.Resolve(cfg.Seed)
	runID := uuid.NewString()
	logger := slog.With("run", runID)
	logger.Debug("generation started", "width", cfg.Width, "height", cfg.Height, "seed", seed)

	g, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	start := time.Now()
	seedElevation(g, cfg.Field, seed)
	logger.Debug("initial field", "field", cfg.Field, "elapsed", time.Since(start))

	regionRng := entropy.NewRand(seed, entropy.StreamRegions)
	for pass, n := range cfg.RegionSchedule {
		start = time.Now()
		if _, err := Partition(g, regionRng, n, cfg.BlendWeight); err != nil {
			return nil, fmt.Errorf("generate: partition pass %d: %w", pass, err)
		}
		logger.Debug("partition pass", "pass", pass, "regions", n, "elapsed", time.Since(start))
	}

	start = time.Now()
	if err := Smooth(g, cfg.SmoothPasses, cfg.Easing, cfg.Workers); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	logger.Debug("smoothing", "passes", cfg.SmoothPasses, "easing", cfg.Easing, "elapsed", time.Since(start))

	start = time.Now()
	if err := DeriveClimate(g, cfg.climate()); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	logger.Debug("climate", "elapsed", time.Since(start))

	start = time.Now()
	settlements, err := PlaceSettlements(g, cfg.SettlementThreshold, entropy.NewRand(seed, entropy.StreamSettlement))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	logger.Debug("settlements", "count", len(settlements), "elapsed", time.Since(start))

	return &World{
		RunID:       runID,
		Seed:        seed,
		Grid:        g,
		Settlements: settlements,
	}, nil
}

// seedElevation fills committed elevation before the first partition pass.
func seedElevation(g *Grid, field InitialField, seed int64) {
	switch field {
	case FieldSimplex:
		relief := reliefNoise{
			noise:  opensimplex.NewNormalized(seed),
			layers: 4,
			scale:  0.08,
			decay:  0.5,
		}
		for i := range g.cells {
			g.cells[i].Elevation = clamp(relief.at(g.cells[i].Coord), 0, 1)
		}
	default:
		rng := entropy.NewRand(seed, entropy.StreamInitial)
		fillUniform(g, rng)
	}
}

func fillUniform(g *Grid, rng *rand.Rand) {
	for i := range g.cells {
		g.cells[i].Elevation = rng.Float64()
	}
}

// center returns the cell center in continuous space for unit side length.
func (h HexCoord) center() (x, y float64) {
	x = float64(h.Col) * 1.5
	y = float64(h.Row) * math.Sqrt(3.0)
	if h.parity() == 1 {
		y += math.Sqrt(3.0) / 2.0
	}
	return x, y
}

// reliefNoise sums simplex layers over cell centers. Layer k samples at
// scale·2^k with weight decay^k; the sum is divided by the total weight so
// the result stays in the noise's [0, 1] range.
type reliefNoise struct {
	noise  opensimplex.Noise
	layers int
	scale  float64
	decay  float64
}

func (r reliefNoise) at(h HexCoord) float64 {
	x, y := h.center()
	var sum, weight float64
	w, s := 1.0, r.scale
	for k := 0; k < r.layers; k++ {
		sum += w * r.noise.Eval2(x*s, y*s)
		weight += w
		w *= r.decay
		s *= 2
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

// String returns the initial field name.
func (f InitialField) String() string {
	switch f {
	case FieldUniform:
		return "uniform"
	case FieldSimplex:
		return "simplex"
	default:
		return "unknown"
	}
}
