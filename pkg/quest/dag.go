package quest

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateGraph checks the objective dependency graph at authoring time.
// It fails on prerequisites that reference unknown objectives and on
// cycles, either of which would make the affected objectives permanently
// unavailable.
func (q *Quest) ValidateGraph() error {
	indegree := make(map[string]int, len(q.Objectives))
	dependents := make(map[string][]string)

	for id, o := range q.Objectives {
		if _, ok := indegree[id]; !ok {
			indegree[id] = 0
		}
		for _, req := range o.Requires {
			if _, ok := q.Objectives[req]; !ok {
				return fmt.Errorf("objective %q requires unknown objective %q", id, req)
			}
			indegree[id]++
			dependents[req] = append(dependents[req], id)
		}
	}

	// Kahn's algorithm: if the topological order does not cover every
	// objective, the remainder forms a cycle.
	var frontier []string
	for id, deg := range indegree {
		if deg == 0 {
			frontier = append(frontier, id)
		}
	}

	visited := 0
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]
		visited++
		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				frontier = append(frontier, dep)
			}
		}
	}

	if visited != len(q.Objectives) {
		var cyclic []string
		for id, deg := range indegree {
			if deg > 0 {
				cyclic = append(cyclic, id)
			}
		}
		slices.Sort(cyclic)
		return fmt.Errorf("objective dependency cycle involving: %s", strings.Join(cyclic, ", "))
	}
	return nil
}
