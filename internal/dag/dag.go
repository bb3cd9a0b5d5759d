// Package dag provides the signal-flow graph over bench instances. Probes
// feed on other instances' outputs, so evaluation within a tick must follow
// dependency order, and a combinational cycle is a configuration error.
package dag

import (
	"fmt"
	"sort"
)

// Graph is a directed acyclic graph of instance names.
type Graph struct {
	nodes map[string]*node
}

type node struct {
	id         string
	deps       map[string]*node
	dependents map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a node with the given ID. Adding an existing ID is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge records that toID consumes the output of fromID. An error is
// returned if either node does not exist or the edge is self-referential.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("dag: instance %q cannot observe itself", fromID)
	}
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("dag: source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("dag: destination node not found: %s", toID)
	}
	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// TopoOrder returns all node IDs in dependency order: every node appears
// after the nodes it consumes. Ties are broken by name so the order is
// deterministic. An error is returned when the graph contains a cycle.
func (g *Graph) TopoOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
	}

	var ready []string
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var unlocked []string
		for depID := range g.nodes[id].dependents {
			indegree[depID]--
			if indegree[depID] == 0 {
				unlocked = append(unlocked, depID)
			}
		}
		sort.Strings(unlocked)
		ready = append(ready, unlocked...)
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for id, d := range indegree {
			if d > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("dag: combinational cycle involving %v", stuck)
	}
	return order, nil
}
