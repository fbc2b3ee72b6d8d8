package team

import (
	"sort"
	"strings"
)

const (
	memberSep = ","
	teamSep   = "|"
)

// Signature returns a canonical encoding of a two-team partition. Member
// order does not matter and neither does which side is called A: the two
// sorted id lists are joined in lexicographic order, so swapping labels
// yields the same signature.
func Signature(aIDs, bIDs []string) string {
	a := append([]string(nil), aIDs...)
	b := append([]string(nil), bIDs...)
	sort.Strings(a)
	sort.Strings(b)

	ja := strings.Join(a, memberSep)
	jb := strings.Join(b, memberSep)
	if ja < jb {
		return ja + teamSep + jb
	}
	return jb + teamSep + ja
}

func decodeSignature(sig string) (map[string]struct{}, map[string]struct{}) {
	prevA := map[string]struct{}{}
	prevB := map[string]struct{}{}
	parts := strings.SplitN(sig, teamSep, 2)
	for _, id := range strings.Split(parts[0], memberSep) {
		if id != "" {
			prevA[id] = struct{}{}
		}
	}
	if len(parts) == 2 {
		for _, id := range strings.Split(parts[1], memberSep) {
			if id != "" {
				prevB[id] = struct{}{}
			}
		}
	}
	return prevA, prevB
}

func jaccard(s1, s2 map[string]struct{}) float64 {
	if len(s1) == 0 && len(s2) == 0 {
		return 0
	}
	inter := 0
	for id := range s1 {
		if _, ok := s2[id]; ok {
			inter++
		}
	}
	union := len(s1) + len(s2) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Similarity measures how close the current partition is to a previous
// signature. All four side pairings are compared and the maximum taken, so a
// repeat with swapped labels scores just as high as an exact repeat.
func Similarity(curAIDs, curBIDs []string, prevSignature string) float64 {
	if prevSignature == "" {
		return 0
	}
	prevA, prevB := decodeSignature(prevSignature)

	curA := map[string]struct{}{}
	for _, id := range curAIDs {
		curA[id] = struct{}{}
	}
	curB := map[string]struct{}{}
	for _, id := range curBIDs {
		curB[id] = struct{}{}
	}

	sim := jaccard(curA, prevA)
	if s := jaccard(curA, prevB); s > sim {
		sim = s
	}
	if s := jaccard(curB, prevA); s > sim {
		sim = s
	}
	if s := jaccard(curB, prevB); s > sim {
		sim = s
	}
	return sim
}
