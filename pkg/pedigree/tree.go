package pedigree

import (
	"fmt"
	"strings"

	"github.com/skippy/farm/pkg/records"
)

// Node is an animal in a lineage tree.
type Node struct {
	ID    string
	Label string
	Role  records.ParentRole

	// Known is false for parents that are not registered in the herd.
	Known bool
	// Loop marks an animal that already appears lower on its own branch.
	Loop bool

	Parents []*Node
}

// Tree returns the lineage of id up to depth generations. A non-positive
// depth means the depth of the Analyzer.
func (a *Analyzer) Tree(id string, depth int) *Node {
	if depth <= 0 {
		depth = a.maxDepth
	}
	onPath := make(map[string]struct{})
	return a.node(records.ParentRef{AnimalID: id}, depth, onPath)
}

func (a *Analyzer) node(
	ref records.ParentRef,
	depth int,
	onPath map[string]struct{},
) *Node {
	res := &Node{ID: ref.AnimalID, Role: ref.Role, Label: refLabel(ref)}
	rec, ok := a.herd[ref.AnimalID]
	if !ok || ref.AnimalID == "" {
		return res
	}
	res.Known = true
	res.Label = rec.Label()
	if _, ok := onPath[ref.AnimalID]; ok {
		res.Loop = true
		return res
	}
	if depth == 0 {
		return res
	}

	onPath[ref.AnimalID] = struct{}{}
	for _, p := range rec.Parents {
		res.Parents = append(res.Parents, a.node(p, depth-1, onPath))
	}
	delete(onPath, ref.AnimalID)
	return res
}

func refLabel(ref records.ParentRef) string {
	switch {
	case ref.Name != "":
		return ref.Name
	case ref.VID != "":
		return ref.VID
	case ref.EID != "":
		return ref.EID
	case ref.AnimalID != "":
		return ref.AnimalID
	default:
		return "unknown"
	}
}

// String renders the tree with box-drawing characters, one animal per
// line.
func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.line())
	sb.WriteString("\n")
	n.render(&sb, "")
	return sb.String()
}

func (n *Node) render(sb *strings.Builder, prefix string) {
	for i, p := range n.Parents {
		branch, next := "├── ", "│   "
		if i == len(n.Parents)-1 {
			branch, next = "└── ", "    "
		}
		sb.WriteString(prefix + branch + p.line() + "\n")
		p.render(sb, prefix+next)
	}
}

func (n *Node) line() string {
	res := n.Label
	if n.ID != "" && n.ID != n.Label {
		res = fmt.Sprintf("%s (%s)", n.Label, n.ID)
	}
	if n.Role != "" {
		res = string(n.Role) + ": " + res
	}
	switch {
	case n.Loop:
		res += " [loop]"
	case !n.Known:
		res += " [not in herd]"
	}
	return res
}
