// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tiling

import (
	"sort"

	"github.com/grailbio/rphmm/rphmm"
)

// GetTilingPaths partitions hmms into the minimum number of tiling paths:
// maximal chains of HMMs that are pairwise non-overlapping in reference
// coordinates, each chain sorted by reference coordinate (spec.md §5,
// coordination.c's getTilingPaths). hmms need not be pre-sorted.
func GetTilingPaths(hmms []*rphmm.HMM) [][]*rphmm.HMM {
	sorted := append([]*rphmm.HMM(nil), hmms...)
	sort.Slice(sorted, func(i, j int) bool { return rphmm.CompareFn(sorted[i], sorted[j]) < 0 })

	remaining := make([]bool, len(sorted))
	for i := range remaining {
		remaining[i] = true
	}

	var tilingPaths [][]*rphmm.HMM
	for {
		start := -1
		for i, r := range remaining {
			if r {
				start = i
				break
			}
		}
		if start == -1 {
			break
		}

		path := []*rphmm.HMM{sorted[start]}
		remaining[start] = false
		cur := start

		for {
			next := nextClosestNonoverlapping(sorted, remaining, cur)
			if next == -1 {
				break
			}
			path = append(path, sorted[next])
			remaining[next] = false
			cur = next
		}
		tilingPaths = append(tilingPaths, path)
	}
	return tilingPaths
}

// nextClosestNonoverlapping returns the index, among the still-remaining
// entries of sorted that occur after cur, of the first one that either
// sits on a different reference sequence or does not overlap sorted[cur]
// (coordination.c's getNextClosestNonoverlappingHmm). Returns -1 if none.
func nextClosestNonoverlapping(sorted []*rphmm.HMM, remaining []bool, cur int) int {
	for j := cur + 1; j < len(sorted); j++ {
		if !remaining[j] {
			continue
		}
		if sorted[cur].ReferenceName != sorted[j].ReferenceName {
			return j
		}
		if !rphmm.OverlapOnReference(sorted[cur], sorted[j]) {
			return j
		}
	}
	return -1
}

// GetOverlappingComponents partitions the HMMs of two non-overlapping,
// reference-sorted tiling paths into connected components under the
// "overlaps in reference coordinates" relation (spec.md §5,
// coordination.c's getOverlappingComponents). Since each input path is
// individually non-overlapping, every component contains HMMs from at
// most both paths, interleaved; walking both paths with a lagging/leading
// index pair finds every component in a single left-to-right sweep.
func GetOverlappingComponents(tilingPath1, tilingPath2 []*rphmm.HMM) [][]*rphmm.HMM {
	componentIndex := make(map[*rphmm.HMM]int)
	var components [][]*rphmm.HMM

	newComponent := func(hmm *rphmm.HMM) int {
		idx := len(components)
		components = append(components, []*rphmm.HMM{hmm})
		componentIndex[hmm] = idx
		return idx
	}

	j := 0
	for i := 0; i < len(tilingPath1); i++ {
		hmm1 := tilingPath1[i]
		componentIdx := -1
		k := 0

		for j+k < len(tilingPath2) {
			hmm2 := tilingPath2[j+k]

			if rphmm.OverlapOnReference(hmm1, hmm2) {
				k++
				if componentIdx == -1 {
					idx, ok := componentIndex[hmm2]
					if !ok {
						idx = newComponent(hmm2)
					}
					componentIdx = idx
					components[componentIdx] = append(components[componentIdx], hmm1)
					componentIndex[hmm1] = componentIdx
				} else {
					components[componentIdx] = append(components[componentIdx], hmm2)
					componentIndex[hmm2] = componentIdx
				}
				continue
			}

			if rphmm.CompareFn(hmm1, hmm2) < 0 {
				if componentIdx == -1 {
					componentIdx = newComponent(hmm1)
				}
				break
			}
			if _, ok := componentIndex[hmm2]; !ok {
				newComponent(hmm2)
			}
			j++
		}

		if componentIdx == -1 {
			newComponent(hmm1)
		}
	}

	for j < len(tilingPath2) {
		hmm2 := tilingPath2[j]
		j++
		if _, ok := componentIndex[hmm2]; !ok {
			newComponent(hmm2)
		}
	}

	return components
}

// fuseTilingPath fuses every HMM of a (reference-sorted, non-overlapping)
// tiling path into one HMM spanning them all (coordination.c's
// fuseTilingPath). path must be non-empty.
func fuseTilingPath(path []*rphmm.HMM) (*rphmm.HMM, error) {
	hmm := path[0]
	for _, next := range path[1:] {
		var err error
		hmm, err = rphmm.Fuse(hmm, next)
		if err != nil {
			return nil, err
		}
	}
	return hmm, nil
}
