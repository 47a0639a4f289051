// Package hierarchy orders type parent links.
//
// Types reference their parents by id, which makes the hierarchy a plain
// directed graph: Order sorts it topologically (parents first) and reports
// cycles, Linearize walks the ancestors of a single type.
package hierarchy

import (
	"errors"
	"strings"

	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Order sorts every id mentioned in parents (as a child or as a parent) so
// that each parent comes before its children. Ties are broken by id.
func Order(parents map[string][]string) ([]string, error) {
	known := make(map[string]struct{})
	for child, ps := range parents {
		known[child] = struct{}{}
		for _, p := range ps {
			known[p] = struct{}{}
		}
	}
	ids := maps.Keys(known)
	slices.Sort(ids)

	index := make(map[string]int64, len(ids))
	g := simple.NewDirectedGraph()
	for i, id := range ids {
		index[id] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for child, ps := range parents {
		for _, p := range ps {
			if p == child {
				return nil, reflecterr.New(reflecterr.ErrCyclicHierarchy, "<%s> is its own parent", child)
			}
			g.SetEdge(g.NewEdge(simple.Node(index[p]), simple.Node(index[child])))
		}
	}

	// Node ids follow the sorted id list, so the default lexical order of
	// SortStabilized is the order of the ids themselves.
	sorted, err := topo.SortStabilized(g, nil)
	if err != nil {
		var cycles topo.Unorderable
		if errors.As(err, &cycles) && len(cycles) > 0 {
			return nil, reflecterr.New(reflecterr.ErrCyclicHierarchy,
				"parent cycle between <%s>", strings.Join(names(ids, cycles[0]), ", "))
		}
		return nil, err
	}
	return names(ids, sorted), nil
}

// Linearize returns the ancestors of id breadth first, nearest first, each
// ancestor once. parentsOf resolves the direct parents of an id.
func Linearize(id string, parentsOf func(string) ([]string, error)) ([]string, error) {
	var order []string
	seen := map[string]struct{}{id: {}}
	queue := []string{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		ps, err := parentsOf(current)
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			if p == id {
				return nil, reflecterr.New(reflecterr.ErrCyclicHierarchy, "<%s> is its own ancestor", id)
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			order = append(order, p)
			queue = append(queue, p)
		}
	}
	return order, nil
}

func names(ids []string, nodes []graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = ids[n.ID()]
	}
	return out
}

