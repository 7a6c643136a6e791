// Package pedigree walks sire and dam references of a herd. It finds
// ancestors, relationship coefficients of pairs, lineage problems, and
// renders lineage trees.
//
// Parents that are not registered in the herd end their branch silently:
// they mean unknown ancestry, not an error. Traversal depth is bounded, so
// a coefficient of zero is a lower bound that only says no common
// ancestor was found within the depth limit.
package pedigree

import (
	"maps"
	"slices"

	"github.com/skippy/farm/pkg/records"
)

// DefaultMaxDepth is the number of generations searched by default.
const DefaultMaxDepth = 6

// Analyzer answers pedigree questions about one herd. The herd is not
// modified, and an Analyzer is safe for concurrent use.
type Analyzer struct {
	herd      records.Herd
	maxDepth  int
	offspring map[string][]string
}

// New creates an Analyzer. A non-positive maxDepth means DefaultMaxDepth.
func New(herd records.Herd, maxDepth int) *Analyzer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	res := Analyzer{
		herd:      herd,
		maxDepth:  maxDepth,
		offspring: make(map[string][]string),
	}
	for _, id := range herd.IDs() {
		for _, p := range uniq(herd[id].ParentIDs()) {
			res.offspring[p] = append(res.offspring[p], id)
		}
	}
	return &res
}

// MaxDepth returns the number of generations the Analyzer searches.
func (a *Analyzer) MaxDepth() int {
	return a.maxDepth
}

// Ancestors returns ids of all ancestors of id within the depth limit.
func (a *Analyzer) Ancestors(id string) map[string]struct{} {
	return Ancestors(id, a.herd, a.maxDepth)
}

// Animal returns the herd record of id.
func (a *Analyzer) Animal(id string) (records.AnimalRecord, bool) {
	res, ok := a.herd[id]
	return res, ok
}

// Offspring returns sorted ids of animals that list id as a parent.
func (a *Analyzer) Offspring(id string) []string {
	return slices.Clone(a.offspring[id])
}

// Ancestors returns ids of all ancestors of id up to maxDepth generations
// back. The animal itself is never included, even when the parentage data
// loops back to it.
func Ancestors(
	id string,
	byID records.Herd,
	maxDepth int,
) map[string]struct{} {
	res := make(map[string]struct{})
	walk(id, byID, maxDepth, func(path []string) {
		res[path[len(path)-1]] = struct{}{}
	})
	return res
}

// walk visits ancestors of id depth first. The visit function receives
// the path from id to the ancestor, both included; the slice is reused
// between calls. An animal already on the current path is not entered
// again, while the same ancestor reached through another path is.
func walk(
	id string,
	byID records.Herd,
	maxDepth int,
	visit func(path []string),
) {
	path := []string{id}
	onPath := map[string]struct{}{id: {}}

	var dfs func(cur string)
	dfs = func(cur string) {
		if len(path) > maxDepth {
			return
		}
		rec, ok := byID[cur]
		if !ok {
			return
		}
		for _, p := range rec.ParentIDs() {
			if _, ok := onPath[p]; ok {
				continue
			}
			path = append(path, p)
			onPath[p] = struct{}{}
			visit(path)
			dfs(p)
			delete(onPath, p)
			path = path[:len(path)-1]
		}
	}
	dfs(id)
}

// shortestPaths maps the animal itself and each of its ancestors to the
// shortest path leading to it. The first path found wins a tie, so sires
// listed before dams are preferred.
func shortestPaths(
	id string,
	byID records.Herd,
	maxDepth int,
) map[string]records.AncestorPath {
	res := map[string]records.AncestorPath{id: {id}}
	walk(id, byID, maxDepth, func(path []string) {
		anc := path[len(path)-1]
		if old, ok := res[anc]; ok && len(old) <= len(path) {
			return
		}
		res[anc] = slices.Clone(path)
	})
	return res
}

func uniq(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		set[v] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}
