// pkg/pathfinder/graph.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pathfinder

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	smath "github.com/mmp/atcsim/pkg/math"
)

// Path is the result of a PathTo query: an ordered run of nodes from
// (but not including) the start up to and including the destination,
// each consecutive pair adjacent in the graph, plus the final position
// and heading an aircraft following the path arrives with.
type Path struct {
	Path         []Node
	FinalPos     smath.Point2f
	FinalHeading float32
}

type cacheKey struct {
	startName, destName string
	startKind, destKind Kind
}

// Graph is the taxi graph owned by a single Airport. It is built once
// at asset-load time and is not safe for concurrent mutation, matching
// the rest of the engine's single-threaded-per-tick model (§5).
type Graph struct {
	g         *simple.WeightedUndirectedGraph
	ids       map[string]int64
	nodesByID map[int64]Node
	cache     *lru.Cache[cacheKey, *Path]
}

const defaultPathCacheSize = 256

func NewGraph() *Graph {
	c, _ := lru.New[cacheKey, *Path](defaultPathCacheSize)
	return &Graph{
		g:         simple.NewWeightedUndirectedGraph(0, 0),
		ids:       make(map[string]int64),
		nodesByID: make(map[int64]Node),
		cache:     c,
	}
}

func key(n Node) string { return fmt.Sprintf("%d:%s", n.Kind, n.Name) }

// AddNode registers n if it isn't already present and returns its
// internal graph id.
func (gr *Graph) AddNode(n Node) int64 {
	k := key(n)
	if id, ok := gr.ids[k]; ok {
		return id
	}
	id := int64(len(gr.ids))
	gr.ids[k] = id
	gr.nodesByID[id] = n
	gr.g.AddNode(simple.Node(id))
	return id
}

// AddEdge connects a and b with a weight equal to their straight-line
// distance, adding either endpoint that isn't already present.
func (gr *Graph) AddEdge(a, b Node) {
	ai, bi := gr.AddNode(a), gr.AddNode(b)
	if ai == bi {
		return
	}
	w := smath.Distance2f(a.Pos, b.Pos)
	gr.g.SetWeightedEdge(gr.g.NewWeightedEdge(simple.Node(ai), simple.Node(bi), float64(w)))
}

// Nodes returns every node registered in the graph, in no particular
// order.
func (gr *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(gr.nodesByID))
	for _, n := range gr.nodesByID {
		nodes = append(nodes, n)
	}
	return nodes
}

func (gr *Graph) Node(name string, kind Kind) (Node, bool) {
	id, ok := gr.ids[fmt.Sprintf("%d:%s", kind, name)]
	if !ok {
		return Node{}, false
	}
	return gr.nodesByID[id], true
}

// PathTo runs Dijkstra from start to dest and returns the hop sequence,
// caching the result by (start name/kind, dest name/kind) so that a
// repeated query for the same route skips the search.
func (gr *Graph) PathTo(start, dest Node, heading float32) (*Path, bool) {
	ck := cacheKey{start.Name, dest.Name, start.Kind, dest.Kind}
	if p, ok := gr.cache.Get(ck); ok {
		cp := *p
		cp.Path = append([]Node(nil), p.Path...)
		return &cp, true
	}

	sid, ok1 := gr.ids[key(start)]
	did, ok2 := gr.ids[key(dest)]
	if !ok1 || !ok2 {
		return nil, false
	}

	tree := path.DijkstraFrom(simple.Node(sid), gr.g)
	nodes, _ := tree.To(did)
	if len(nodes) < 2 {
		return nil, false
	}

	seq := make([]Node, 0, len(nodes)-1)
	for _, n := range nodes[1:] {
		seq = append(seq, gr.nodesByID[n.ID()])
	}

	from := start.Pos
	if len(seq) > 1 {
		from = seq[len(seq)-2].Pos
	}
	last := seq[len(seq)-1]
	result := &Path{
		Path:         seq,
		FinalPos:     last.Pos,
		FinalHeading: smath.AngleBetweenPoints(from, last.Pos),
	}
	if result.FinalHeading == 0 && from == last.Pos {
		result.FinalHeading = heading
	}

	cp := *result
	cp.Path = append([]Node(nil), seq...)
	gr.cache.Add(ck, &cp)
	return result, true
}
