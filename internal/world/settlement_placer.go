// Settlement placement — greedy, score-ordered, with a hop-count exclusion
// zone that shrinks as civilization score grows.
package world

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// DefaultSettlementThreshold is the lowest civilization score that still
// gets a settlement.
const DefaultSettlementThreshold = 0.1

// Settlement is a placed settlement.
type Settlement struct {
	ID     uint64         `json:"id"`
	Name   string         `json:"name"`
	Coord  HexCoord       `json:"coord"`
	Score  float64        `json:"score"`  // Civilization score at placement
	Radius int            `json:"radius"` // Exclusion radius in hops
	Size   SettlementSize `json:"size"`
}

// SettlementSize categorizes settlement scale by civilization score.
type SettlementSize uint8

const (
	SizeVillage SettlementSize = iota // Score below 0.5
	SizeTown                          // 0.5 to 0.8
	SizeCity                          // 0.8 and above
)

// SizeForScore returns the size class for a civilization score.
func SizeForScore(score float64) SettlementSize {
	switch {
	case score >= 0.8:
		return SizeCity
	case score >= 0.5:
		return SizeTown
	default:
		return SizeVillage
	}
}

// SizeName returns a human-readable name for a settlement size.
func SizeName(s SettlementSize) string {
	switch s {
	case SizeVillage:
		return "Village"
	case SizeTown:
		return "Town"
	case SizeCity:
		return "City"
	default:
		return "Unknown"
	}
}

// ExclusionRadius returns ceil(3 / score²), capped at limit. The cap is
// applied before converting to int, so tiny scores saturate instead of
// overflowing. Callers never pass a zero score.
func ExclusionRadius(score float64, limit int) int {
	r := math.Ceil(3 / (score * score))
	if r >= float64(limit) || math.IsNaN(r) {
		return limit
	}
	return int(r)
}

// PlaceSettlements marks settlements on the best land cells. It repeatedly
// takes the highest-scoring remaining candidate, places a settlement there,
// and drops every candidate within the exclusion radius, until the best
// remaining score falls below threshold. The placement depends only on the
// civilization scores; rng is used for names.
func PlaceSettlements(g *Grid, threshold float64, rng *rand.Rand) ([]Settlement, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("settlement threshold %.3f: %w", threshold, ErrInvalidParameter)
	}

	var candidates []int
	for i := range g.cells {
		if g.cells[i].Land {
			candidates = append(candidates, i)
		}
	}

	// Highest score first; ties by row-major index.
	sort.SliceStable(candidates, func(a, b int) bool {
		return g.cells[candidates[a]].Civilization > g.cells[candidates[b]].Civilization
	})

	removed := make([]bool, g.Len())
	// No exclusion zone needs to reach further than the grid's extent.
	maxRadius := g.Width + g.Height

	var settlements []Settlement
	for _, i := range candidates {
		if removed[i] {
			continue
		}
		c := &g.cells[i]
		if c.Civilization < threshold {
			break
		}

		id := uint64(len(settlements) + 1)
		c.SettlementID = &id
		removed[i] = true

		radius := ExclusionRadius(c.Civilization, maxRadius)
		for _, n := range g.withinHops(i, radius) {
			removed[n] = true
		}

		settlements = append(settlements, Settlement{
			ID:     id,
			Coord:  c.Coord,
			Score:  c.Civilization,
			Radius: radius,
			Size:   SizeForScore(c.Civilization),
		})
	}

	namer := newSettlementNamer(rng)
	for i := range settlements {
		st := &settlements[i]
		st.Name = namer.name(st.Size, g.coastal(g.index(st.Coord)))
	}

	return settlements, nil
}

// withinHops returns every cell at most hops steps from start, start included.
func (g *Grid) withinHops(start, hops int) []int {
	visited := map[int]bool{start: true}
	out := []int{start}
	frontier := []int{start}
	for h := 0; h < hops && len(frontier) > 0; h++ {
		var next []int
		for _, i := range frontier {
			for _, n := range g.adj[i] {
				if visited[n] {
					continue
				}
				visited[n] = true
				out = append(out, n)
				next = append(next, n)
			}
		}
		frontier = next
	}
	return out
}

// Name parts. The root describes the land; the ending follows the
// settlement's size, and coastal settlements draw from the harbor endings.
var (
	nameRoots = []string{
		"Ash", "Brack", "Cold", "Dun", "Eld", "Fen", "Gar", "Hollin",
		"Ilm", "Kest", "Lorn", "Mere", "Nor", "Orm", "Pell", "Rook",
		"Sal", "Tarn", "Umber", "Wend", "Yar",
	}
	nameEndings = map[SettlementSize][]string{
		SizeVillage: {"by", "thorpe", "wick", "ley", "cote", "stead"},
		SizeTown:    {"ford", "bridge", "bury", "ham", "dale", "cross"},
		SizeCity:    {"caster", "minster", "gard", "crown", "hold"},
	}
	coastEndings = []string{"haven", "port", "mouth", "strand", "quay"}
)

// settlementNamer hands out unique names for one placement run.
type settlementNamer struct {
	rng  *rand.Rand
	used map[string]int
}

func newSettlementNamer(rng *rand.Rand) *settlementNamer {
	return &settlementNamer{rng: rng, used: make(map[string]int)}
}

// name returns an unused name for a settlement of the given size. Once a
// root and ending pair has been taken, repeats get a numeral ("Fenford II").
func (n *settlementNamer) name(size SettlementSize, coastal bool) string {
	endings := nameEndings[size]
	if coastal {
		endings = coastEndings
	}
	base := nameRoots[n.rng.Intn(len(nameRoots))] + endings[n.rng.Intn(len(endings))]

	n.used[base]++
	if k := n.used[base]; k > 1 {
		return fmt.Sprintf("%s %s", base, numeral(k))
	}
	return base
}

// numeral renders k as a Roman numeral for k < 40, a plain number beyond.
func numeral(k int) string {
	if k >= 40 {
		return fmt.Sprintf("%d", k)
	}
	tens := []string{"", "X", "XX", "XXX"}
	ones := []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}
	return tens[k/10] + ones[k%10]
}
