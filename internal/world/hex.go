// Package world provides the hex grid, the cell arena, and the generation
// pipeline that turns an empty grid into terrain, climate, and settlements.
// Uses offset coordinates (col, row) with odd columns shifted down.
package world

import "fmt"

// HexCoord identifies a cell in the offset hex layout.
type HexCoord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// String returns the coordinate as "(col, row)".
func (h HexCoord) String() string {
	return fmt.Sprintf("(%d, %d)", h.Col, h.Row)
}

// parity is 1 for odd columns, 0 for even ones.
func (h HexCoord) parity() int {
	return h.Col & 1
}

// adjacent returns the six raw neighbor offsets, without bounds checks.
// Odd columns sit half a row lower than even ones, so the diagonal
// neighbors shift by the column parity.
func (h HexCoord) adjacent() [6]HexCoord {
	p := h.parity()
	return [6]HexCoord{
		{Col: h.Col, Row: h.Row - 1},
		{Col: h.Col, Row: h.Row + 1},
		{Col: h.Col - 1, Row: h.Row - 1 + p},
		{Col: h.Col - 1, Row: h.Row + p},
		{Col: h.Col + 1, Row: h.Row - 1 + p},
		{Col: h.Col + 1, Row: h.Row + p},
	}
}

// axial converts the offset coordinate to axial (q, r).
func (h HexCoord) axial() (q, r int) {
	q = h.Col
	r = h.Row - (h.Col-h.parity())/2
	return q, r
}

// Distance returns the hex distance between two coordinates on an
// unbounded plane.
func Distance(a, b HexCoord) int {
	aq, ar := a.axial()
	bq, br := b.axial()
	dq := abs(aq - bq)
	dr := abs(ar - br)
	ds := abs((-aq - ar) - (-bq - br))
	// Max of the three absolute differences in cube coordinates.
	return max(dq, dr, ds)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
