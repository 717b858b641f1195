package world

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

// hopDistance is a plain BFS over the grid.
func hopDistance(g *Grid, a, b HexCoord) int {
	dist := map[HexCoord]int{a: 0}
	queue := []HexCoord{a}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == b {
			return dist[c]
		}
		for _, n := range g.Neighbors(c) {
			if _, ok := dist[n]; !ok {
				dist[n] = dist[c] + 1
				queue = append(queue, n)
			}
		}
	}
	return -1
}

func generatedGrid(t *testing.T, w, h int, seed int64) *Grid {
	t.Helper()
	cfg := SmallTestConfig()
	cfg.Width, cfg.Height, cfg.Seed = w, h, seed
	world, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Clear the pipeline's own placement so tests can rerun it.
	for i := range world.Grid.cells {
		world.Grid.cells[i].SettlementID = nil
	}
	return world.Grid
}

func TestExclusionRadius(t *testing.T) {
	tests := []struct {
		score float64
		limit int
		want  int
	}{
		{1.0, 1000, 3},
		{0.5, 1000, 12},
		{0.9, 1000, 4},
		{0.1, 1000, 300},
		{0.1, 50, 50},
		{1e-10, 11, 11},
		{1e-200, 11, 11},
		{math.SmallestNonzeroFloat64, 7, 7},
	}
	for _, tt := range tests {
		if got := ExclusionRadius(tt.score, tt.limit); got != tt.want {
			t.Fatalf("ExclusionRadius(%g, %d) = %d, want %d", tt.score, tt.limit, got, tt.want)
		}
	}
}

func TestPlaceSettlements_TinyScoresStayExclusive(t *testing.T) {
	g := mustGrid(t, 10, 1)
	for i := range g.cells {
		g.cells[i].Land = true
		g.cells[i].Civilization = 1e-10
	}
	settlements, err := PlaceSettlements(g, 1e-11, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(settlements) != 1 {
		t.Fatalf("placed %d settlements on a 10-cell line, want 1", len(settlements))
	}
	if s := settlements[0]; s.Coord.Col != 0 || s.Radius != g.Width+g.Height {
		t.Fatalf("settlement at %s radius %d, want column 0 radius %d", s.Coord, s.Radius, g.Width+g.Height)
	}
}

func TestPlaceSettlements_Exclusion(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 99} {
		g := generatedGrid(t, 40, 30, seed)
		settlements, err := PlaceSettlements(g, DefaultSettlementThreshold, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("seed %d: %d settlements", seed, len(settlements))

		for i, first := range settlements {
			for _, later := range settlements[i+1:] {
				d := hopDistance(g, first.Coord, later.Coord)
				if d < first.Radius {
					t.Fatalf("seed %d: %s and %s are %d hops apart, exclusion radius %d",
						seed, first.Coord, later.Coord, d, first.Radius)
				}
			}
		}
	}
}

func TestPlaceSettlements_OnlyLandAboveThreshold(t *testing.T) {
	g := generatedGrid(t, 40, 30, 5)
	settlements, err := PlaceSettlements(g, DefaultSettlementThreshold, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range settlements {
		c, err := g.Get(s.Coord)
		if err != nil {
			t.Fatal(err)
		}
		if !c.Land {
			t.Fatalf("settlement %s placed on ocean", s.Coord)
		}
		if s.Score < DefaultSettlementThreshold {
			t.Fatalf("settlement %s score %f below threshold", s.Coord, s.Score)
		}
		if c.SettlementID == nil || *c.SettlementID != s.ID {
			t.Fatalf("cell %s does not carry settlement %d", s.Coord, s.ID)
		}
		if i > 0 && s.Score > settlements[i-1].Score {
			t.Fatal("settlements not placed in descending score order")
		}
		if s.Name == "" {
			t.Fatalf("settlement %d has no name", s.ID)
		}
	}
}

func TestPlaceSettlements_DeterministicForFixedScores(t *testing.T) {
	g := generatedGrid(t, 30, 20, 8)
	a, b := g.Clone(), g.Clone()

	sa, err := PlaceSettlements(a, DefaultSettlementThreshold, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	sb, err := PlaceSettlements(b, DefaultSettlementThreshold, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	if len(sa) != len(sb) {
		t.Fatalf("placement count differs: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i].Coord != sb[i].Coord {
			t.Fatalf("settlement %d at %s vs %s", i, sa[i].Coord, sb[i].Coord)
		}
	}
}

func TestPlaceSettlements_TieBreakByIndex(t *testing.T) {
	g := mustGrid(t, 30, 1)
	for i := range g.cells {
		g.cells[i].Land = true
		g.cells[i].Civilization = 0.9
	}
	settlements, err := PlaceSettlements(g, DefaultSettlementThreshold, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	// Radius 4 along a single row leaves cells 0, 5, 10, ...
	want := []int{0, 5, 10, 15, 20, 25}
	if len(settlements) != len(want) {
		t.Fatalf("got %d settlements, want %d", len(settlements), len(want))
	}
	for i, s := range settlements {
		if s.Coord.Col != want[i] {
			t.Fatalf("settlement %d at column %d, want %d", i, s.Coord.Col, want[i])
		}
	}
}

func TestPlaceSettlements_StopsBelowThreshold(t *testing.T) {
	g := mustGrid(t, 10, 10)
	for i := range g.cells {
		g.cells[i].Land = true
		g.cells[i].Civilization = 0.05
	}
	settlements, err := PlaceSettlements(g, DefaultSettlementThreshold, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(settlements) != 0 {
		t.Fatalf("placed %d settlements below threshold", len(settlements))
	}
}

func TestPlaceSettlements_SingleCell(t *testing.T) {
	g := mustGrid(t, 1, 1)
	g.cells[0].Land = true
	g.cells[0].Civilization = 0.95
	settlements, err := PlaceSettlements(g, DefaultSettlementThreshold, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(settlements) != 1 {
		t.Fatalf("1x1 grid: got %d settlements, want 1", len(settlements))
	}
	if settlements[0].Size != SizeCity {
		t.Fatalf("score 0.95 should be a city, got %s", SizeName(settlements[0].Size))
	}
}

func TestPlaceSettlements_InvalidThreshold(t *testing.T) {
	g := mustGrid(t, 2, 2)
	for _, th := range []float64{0, -1} {
		if _, err := PlaceSettlements(g, th, rand.New(rand.NewSource(1))); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("threshold %f: err = %v, want ErrInvalidParameter", th, err)
		}
	}
}

func TestSettlementNamer_Unique(t *testing.T) {
	namer := newSettlementNamer(rand.New(rand.NewSource(4)))
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := namer.name(SettlementSize(i%3), i%4 == 0)
		if seen[n] {
			t.Fatalf("duplicate name %q", n)
		}
		seen[n] = true
	}
}

func TestSettlementNamer_EndingFollowsSite(t *testing.T) {
	hasEnding := func(name string, endings []string) bool {
		base, _, _ := strings.Cut(name, " ")
		for _, e := range endings {
			if strings.HasSuffix(base, e) {
				return true
			}
		}
		return false
	}

	namer := newSettlementNamer(rand.New(rand.NewSource(9)))
	for i := 0; i < 200; i++ {
		for _, size := range []SettlementSize{SizeVillage, SizeTown, SizeCity} {
			if n := namer.name(size, false); !hasEnding(n, nameEndings[size]) {
				t.Fatalf("inland %s named %q", SizeName(size), n)
			}
			if n := namer.name(size, true); !hasEnding(n, coastEndings) {
				t.Fatalf("coastal %s named %q", SizeName(size), n)
			}
		}
	}
}

func TestPlaceSettlements_CoastalNames(t *testing.T) {
	g := mustGrid(t, 12, 1)
	for i := range g.cells {
		g.cells[i].Land = i < 11
		g.cells[i].Civilization = 0
	}
	g.cells[0].Civilization = 0.9  // inland end of the strip
	g.cells[10].Civilization = 0.9 // next to the ocean cell
	settlements, err := PlaceSettlements(g, DefaultSettlementThreshold, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	if len(settlements) != 2 {
		t.Fatalf("got %d settlements, want 2", len(settlements))
	}
	for _, s := range settlements {
		coastal := g.coastal(g.index(s.Coord))
		base, _, _ := strings.Cut(s.Name, " ")
		matched := false
		endings := nameEndings[SizeCity]
		if coastal {
			endings = coastEndings
		}
		for _, e := range endings {
			if strings.HasSuffix(base, e) {
				matched = true
			}
		}
		if !matched {
			t.Fatalf("settlement %s (coastal=%v) named %q", s.Coord, coastal, s.Name)
		}
	}
}
