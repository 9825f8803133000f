package world

import "fmt"

// House is the pursuer pen: an interior region closed by door tiles, an entry
// spot just outside the doors and numbered seats.
type House struct {
	Interior Rect
	Doors    []Tile
	Entry    Spot
	Seats    []Spot
}

func (h *House) Contains(t Tile) bool {
	return h.Interior.Contains(t)
}

// IsEntry reports whether t is directly outside one of the doors.
func (h *House) IsEntry(t Tile) bool {
	for _, d := range h.Doors {
		if t == d.Towards(Up, 1) {
			return true
		}
	}
	return false
}

func (h *House) Seat(i int) Spot {
	if i < 0 || i >= len(h.Seats) {
		panic(fmt.Sprintf("world: house has no seat %d", i))
	}
	return h.Seats[i]
}
