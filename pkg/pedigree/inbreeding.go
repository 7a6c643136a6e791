package pedigree

import (
	"math"
	"slices"
	"strings"

	"github.com/skippy/farm/pkg/records"
)

// InbreedingCoefficient returns the inbreeding coefficient of a potential
// offspring of animals a and b, using DefaultMaxDepth.
func InbreedingCoefficient(
	a, b string,
	byID records.Herd,
) (records.InbreedingResult, error) {
	return New(byID, DefaultMaxDepth).InbreedingCoefficient(a, b)
}

// InbreedingCoefficient returns the inbreeding coefficient of a potential
// offspring of animals a and b, which is the coancestry of the pair.
//
// Only the nearest common ancestors count: a common ancestor that is also
// an ancestor of another common ancestor is skipped. Each nearest common
// ancestor contributes
//
//	(1/2)^(n1+n2+1) * (1 + F)
//
// where n1 and n2 are generations along the shortest path from a and from
// b, and F is the inbreeding coefficient of the ancestor. When an
// ancestor is reachable through several paths only the shortest one is
// used, so the result for re-convergent pedigrees is an approximation from
// below.
//
// When parentage loops back, common ancestors can be ancestors of each
// other. Only the nearest of such a loop counts, so a pair that lists
// each other as parents is treated as parent and offspring.
//
// Parent and offspring give 0.25, full siblings 0.25, half siblings 0.125,
// first cousins 0.0625. Pairing an animal with itself, or an empty id,
// returns InvalidInputError.
func (a *Analyzer) InbreedingCoefficient(
	idA, idB string,
) (records.InbreedingResult, error) {
	res := records.InbreedingResult{IDA: idA, IDB: idB}
	if strings.TrimSpace(idA) == "" || strings.TrimSpace(idB) == "" {
		return res, records.InvalidInputError("animal id is empty")
	}
	if idA == idB {
		return res, records.InvalidInputError(
			"animal '%s' cannot be paired with itself", idA,
		)
	}

	res.Coefficient, res.Paths = a.coancestry(idA, idB, a.maxDepth)
	return res, nil
}

// Inbreeding returns the inbreeding coefficient of an animal, which is
// the coancestry of its sire and dam.
func (a *Analyzer) Inbreeding(id string) float64 {
	return a.inbreeding(id, a.maxDepth)
}

func (a *Analyzer) inbreeding(id string, depth int) float64 {
	if depth <= 0 {
		return 0
	}
	rec, ok := a.herd[id]
	if !ok {
		return 0
	}
	sire, okSire := rec.Parent(records.Sire)
	dam, okDam := rec.Parent(records.Dam)
	if !okSire || !okDam || sire.AnimalID == "" || dam.AnimalID == "" ||
		sire.AnimalID == dam.AnimalID {
		return 0
	}
	res, _ := a.coancestry(sire.AnimalID, dam.AnimalID, depth-1)
	return res
}

func (a *Analyzer) coancestry(
	idA, idB string,
	depth int,
) (float64, []records.SharedAncestry) {
	pathsA := shortestPaths(idA, a.herd, depth)
	pathsB := shortestPaths(idB, a.herd, depth)

	var common []string
	for id := range pathsA {
		if _, ok := pathsB[id]; ok {
			common = append(common, id)
		}
	}
	slices.Sort(common)
	dist := make(map[string]int, len(common))
	for _, id := range common {
		dist[id] = len(pathsA[id]) + len(pathsB[id])
	}

	var res float64
	var paths []records.SharedAncestry
	for _, ca := range nearest(common, dist, a.herd, a.maxDepth) {
		pa, pb := pathsA[ca], pathsB[ca]
		n := len(pa) - 1 + len(pb) - 1
		f := a.inbreeding(ca, depth-1)
		contrib := math.Pow(0.5, float64(n+1)) * (1 + f)
		res += contrib
		paths = append(paths, records.SharedAncestry{
			AncestorID:         ca,
			PathA:              pa,
			PathB:              pb,
			AncestorInbreeding: f,
			Contribution:       contrib,
		})
	}
	return max(0, min(1, res)), paths
}

// nearest drops common ancestors that are ancestors of another common
// ancestor. Ancestors that cover each other through a parentage loop are
// ranked by path length and id, and only the first of them is kept.
func nearest(
	common []string,
	dist map[string]int,
	byID records.Herd,
	maxDepth int,
) []string {
	anc := make(map[string]map[string]struct{}, len(common))
	for _, c := range common {
		anc[c] = Ancestors(c, byID, maxDepth)
	}
	before := func(x, y string) bool {
		if dist[x] != dist[y] {
			return dist[x] < dist[y]
		}
		return x < y
	}

	var res []string
	for _, c := range common {
		covered := false
		for _, other := range common {
			if other == c {
				continue
			}
			if _, ok := anc[other][c]; !ok {
				continue
			}
			if _, loop := anc[c][other]; !loop || before(other, c) {
				covered = true
				break
			}
		}
		if !covered {
			res = append(res, c)
		}
	}
	return res
}
