package schema

// SortTablesByFKCount orders tables so that referenced tables come before the
// tables referencing them. References to tables outside the input are
// ignored. Cycles are broken with a heuristic score.
func SortTablesByFKCount(tables []*Table) []*Table {
	present := make(map[string]*Table, len(tables))
	for _, t := range tables {
		present[t.Name] = t
	}

	deps := make(map[string][]string, len(tables))
	for _, t := range tables {
		for _, d := range t.Dependencies() {
			if _, ok := present[d]; ok {
				deps[t.Name] = append(deps[t.Name], d)
			}
		}
	}

	var sorted []*Table
	processed := make(map[string]bool)

	for len(sorted) < len(tables) {
		added := false

		// Pass 1: tables whose dependencies are all placed
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			ready := true
			for _, d := range deps[t.Name] {
				if !processed[d] {
					ready = false
					break
				}
			}

			if ready {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}

		if added {
			continue
		}

		// Pass 2: cycle. Prefer fewer pending dependencies and tables that
		// are part of a two-table loop; ties go to the smaller name.
		var best *Table
		bestScore := 0
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			score := 0
			for _, d := range deps[t.Name] {
				if processed[d] {
					continue
				}
				score -= 100
				for _, back := range deps[d] {
					if back == t.Name {
						score += 500
						break
					}
				}
			}

			if best == nil || score > bestScore || (score == bestScore && t.Name < best.Name) {
				best = t
				bestScore = score
			}
		}

		if best == nil {
			break
		}
		sorted = append(sorted, best)
		processed[best.Name] = true
	}

	return sorted
}
