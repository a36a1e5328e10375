package loader

// sortMods orders the active set so every mod whose declared dependency
// is satisfied by another active mod comes after that mod. The sort is
// a topological order over the satisfied-dependency graph: the ready
// queue is seeded in admission order and freed nodes append in release
// order, so output is deterministic for a fixed admission order. Mods
// left on a dependency cycle (and anything downstream of one) are
// appended in admission order.
func sortMods(mods []*Container) []*Container {
	n := len(mods)
	if n < 2 {
		return mods
	}

	indegree := make([]int, n)
	dependents := make([][]int, n)
	for a := range mods {
		for _, dep := range mods[a].Meta.Dependencies {
			for b := range mods {
				if b == a {
					continue
				}
				if dep.SatisfiedBy(mods[b].Meta) {
					dependents[b] = append(dependents[b], a)
					indegree[a]++
				}
			}
		}
	}

	sorted := make([]*Container, 0, n)
	placed := make([]bool, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		placed[i] = true
		sorted = append(sorted, mods[i])
		for _, d := range dependents[i] {
			indegree[d]--
			if indegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	for i := 0; i < n; i++ {
		if !placed[i] {
			sorted = append(sorted, mods[i])
		}
	}
	return sorted
}
