package pedigree

import (
	"fmt"
	"slices"
	"strings"
)

// IssueKind classifies lineage problems.
type IssueKind string

const (
	SelfParent      IssueKind = "self_parent"
	DuplicateParent IssueKind = "duplicate_parent"
	MissingParent   IssueKind = "missing_parent"
	SpeciesMismatch IssueKind = "species_mismatch"
	Cycle           IssueKind = "cycle"
)

// Issue is a lineage problem of one animal.
type Issue struct {
	AnimalID string
	Kind     IssueKind
	Message  string
}

// Validate reports lineage problems of the herd ordered by animal id.
// Missing parents are reported for information only; they do not affect
// other operations.
func (a *Analyzer) Validate() []Issue {
	var res []Issue
	for _, id := range a.herd.IDs() {
		res = append(res, a.parentIssues(id)...)
	}
	res = append(res, a.cycles()...)
	slices.SortStableFunc(res, func(x, y Issue) int {
		return strings.Compare(x.AnimalID, y.AnimalID)
	})
	return res
}

func (a *Analyzer) parentIssues(id string) []Issue {
	var res []Issue
	child := a.herd[id]
	seen := make(map[string]struct{}, len(child.Parents))
	for _, ref := range child.Parents {
		pid := ref.AnimalID
		if pid == "" {
			continue
		}
		if pid == id {
			res = append(res, Issue{id, SelfParent,
				fmt.Sprintf("animal %s references itself as %s", id, ref.Role)})
			continue
		}
		if _, dup := seen[pid]; dup {
			res = append(res, Issue{id, DuplicateParent,
				fmt.Sprintf("animal %s lists parent %s multiple times", id, pid)})
			continue
		}
		seen[pid] = struct{}{}

		parent, ok := a.herd[pid]
		if !ok {
			res = append(res, Issue{id, MissingParent,
				fmt.Sprintf("animal %s references unknown %s %s", id, ref.Role, pid)})
			continue
		}
		if child.Species != "" && parent.Species != "" &&
			!strings.EqualFold(child.Species, parent.Species) {
			res = append(res, Issue{id, SpeciesMismatch,
				fmt.Sprintf("animal %s %s %s has mismatched species", id, ref.Role, pid)})
		}
	}
	return res
}

// cycles finds animals that are their own ancestors. Each loop in the
// parent graph is reported once, at the animal where it closes.
func (a *Analyzer) cycles() []Issue {
	const (
		white = iota
		grey
		black
	)
	var res []Issue
	color := make(map[string]int, len(a.herd))
	var stack []string

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = grey
		stack = append(stack, id)
		for _, p := range uniq(a.herd[id].ParentIDs()) {
			if _, ok := a.herd[p]; !ok || p == id {
				continue
			}
			switch color[p] {
			case white:
				dfs(p)
			case grey:
				i := slices.Index(stack, p)
				loop := append(slices.Clone(stack[i:]), p)
				res = append(res, Issue{id, Cycle,
					fmt.Sprintf("animal %s is its own ancestor: %s",
						p, strings.Join(loop, " -> "))})
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, id := range a.herd.IDs() {
		if color[id] == white {
			dfs(id)
		}
	}
	return res
}
