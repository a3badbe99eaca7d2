package services

import (
	"math"
	"sort"
	"strings"

	"buildings-server/models/places"
)

// AcceptedClassCodes are matched in order, so CE wins over C.
var AcceptedClassCodes = []string{"CE", "C", "R"}

// CoordinateEpsilon is the float64 machine epsilon.
const CoordinateEpsilon = 2.220446049250313e-16

// NormalizeClassCode reduces a raw classification code to one of
// AcceptedClassCodes, or "" when none matches.
func NormalizeClassCode(code string) string {
	if len(code) > 2 {
		code = code[:2]
	}
	for _, accepted := range AcceptedClassCodes {
		if strings.HasPrefix(code, accepted) {
			return accepted
		}
	}
	return ""
}

// ClassifyAndDedup returns a copy of records with ClassCode filled in,
// stably sorted by ClassCode, with each record dropped whose coordinates
// equal those of the previously kept record. Only neighbours after the
// sort are compared.
func ClassifyAndDedup(records []places.BuildingRecord) []places.BuildingRecord {
	sorted := make([]places.BuildingRecord, len(records))
	for i, r := range records {
		r.ClassCode = NormalizeClassCode(r.ClassificationCode)
		sorted[i] = r
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ClassCode < sorted[j].ClassCode
	})

	kept := make([]places.BuildingRecord, 0, len(sorted))
	for _, r := range sorted {
		if n := len(kept); n > 0 && samePosition(kept[n-1], r) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func samePosition(a, b places.BuildingRecord) bool {
	return math.Abs(a.X-b.X) < CoordinateEpsilon && math.Abs(a.Y-b.Y) < CoordinateEpsilon
}
