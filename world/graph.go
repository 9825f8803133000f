package world

// ShortestPath finds a shortest path from start to goal over accessible tiles,
// portals included. The result starts with start and ends with goal; it is nil
// when goal cannot be reached.
func (w *World) ShortestPath(start, goal Tile) []Tile {
	if start == goal {
		return []Tile{start}
	}
	if !w.Accessible(goal) {
		return nil
	}

	cameFrom := map[Tile]Tile{start: start}
	queue := make([]Tile, 0, 64)
	queue = append(queue, start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		for _, d := range Directions {
			next := w.Neighbor(current, d)
			if !w.Accessible(next) {
				continue
			}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = current
			queue = append(queue, next)
		}
	}
	return nil
}

// ShortestPathAhead is ShortestPath for an agent heading in direction
// heading: the first step never turns back and the path never revisits start.
// Turning back is only allowed when no other way leads to goal.
func (w *World) ShortestPathAhead(start Tile, heading Direction, goal Tile) []Tile {
	if start == goal || heading == None {
		return w.ShortestPath(start, goal)
	}
	if !w.Accessible(goal) {
		return nil
	}

	cameFrom := map[Tile]Tile{start: start}
	queue := make([]Tile, 0, 64)
	for _, d := range Directions {
		if d == heading.Opposite() {
			continue
		}
		next := w.Neighbor(start, d)
		if !w.Accessible(next) {
			continue
		}
		cameFrom[next] = start
		queue = append(queue, next)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		for _, d := range Directions {
			next := w.Neighbor(current, d)
			if !w.Accessible(next) {
				continue
			}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = current
			queue = append(queue, next)
		}
	}
	return w.ShortestPath(start, goal)
}

func reconstructPath(cameFrom map[Tile]Tile, start, goal Tile) []Tile {
	path := make([]Tile, 0, 32)
	for current := goal; ; {
		path = append(path, current)
		if current == start {
			break
		}
		current = cameFrom[current]
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathDirection returns the first step of a path, or None for paths shorter
// than two tiles.
func (w *World) PathDirection(path []Tile) Direction {
	if len(path) < 2 {
		return None
	}
	d, _ := w.DirectionTo(path[0], path[1])
	return d
}

// Corners returns, for each board corner in the order top-left, top-right,
// bottom-left, bottom-right, the closest accessible tile.
func (w *World) Corners() []Tile {
	targets := []Tile{T(0, 0), T(w.cols-1, 0), T(0, w.rows-1), T(w.cols-1, w.rows-1)}
	corners := make([]Tile, 0, len(targets))
	for _, target := range targets {
		best, bestDist := Tile{}, -1
		for row := 0; row < w.rows; row++ {
			for col := 0; col < w.cols; col++ {
				t := T(col, row)
				if !w.Accessible(t) {
					continue
				}
				if d := t.Manhattan(target); bestDist < 0 || d < bestDist {
					best, bestDist = t, d
				}
			}
		}
		if bestDist >= 0 {
			corners = append(corners, best)
		}
	}
	return corners
}
