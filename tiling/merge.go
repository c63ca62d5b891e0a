// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tiling

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/rphmm/rphmm"
)

// MergeTwoTilingPaths merges two non-overlapping, reference-sorted tiling
// paths into a single tiling path covering their union (spec.md §5,
// coordination.c's mergeTwoTilingPaths). Overlapping connected components
// of two HMMs are fused, column-aligned, and cross-producted into one
// merged HMM; components of a single HMM pass through unchanged.
func MergeTwoTilingPaths(tilingPath1, tilingPath2 []*rphmm.HMM, params Params) ([]*rphmm.HMM, error) {
	components := GetOverlappingComponents(tilingPath1, tilingPath2)

	merged := make([]*rphmm.HMM, 0, len(components))
	for _, component := range components {
		subPaths := GetTilingPaths(component)

		var hmm *rphmm.HMM
		switch len(subPaths) {
		case 1:
			if len(subPaths[0]) != 1 {
				return nil, errors.E(errors.Invalid,
					"tiling.MergeTwoTilingPaths: component yielded a multi-hmm single tiling path")
			}
			hmm = subPaths[0][0]
		case 2:
			left, err := fuseTilingPath(subPaths[0])
			if err != nil {
				return nil, err
			}
			right, err := fuseTilingPath(subPaths[1])
			if err != nil {
				return nil, err
			}
			if err := rphmm.AlignColumns(left, right); err != nil {
				return nil, err
			}
			cp, err := rphmm.CrossProduct(left, right)
			if err != nil {
				return nil, err
			}
			cp.Forward()
			cp.Backward()
			cp.Prune(params.PosteriorProbabilityThreshold, params.MinColumnDepthToFilter)
			hmm = cp
		default:
			return nil, errors.E(errors.Invalid,
				"tiling.MergeTwoTilingPaths: component overlaps across more than two tiling paths")
		}
		merged = append(merged, hmm)
	}

	sort.Slice(merged, func(i, j int) bool { return rphmm.CompareFn(merged[i], merged[j]) < 0 })
	return merged, nil
}

// MergeTilingPaths merges a list of tiling paths into one, recursively
// splitting the list in half and merging each half in parallel before
// combining the two results (coordination.c's mergeTilingPaths, whose
// #pragma omp sections becomes traverse.Each here).
func MergeTilingPaths(tilingPaths [][]*rphmm.HMM, params Params) ([]*rphmm.HMM, error) {
	if len(tilingPaths) == 0 {
		log.Error.Printf("tiling.MergeTilingPaths: zero tiling paths to merge")
		return nil, nil
	}
	if len(tilingPaths) == 1 {
		return tilingPaths[0], nil
	}

	var tilingPath1, tilingPath2 []*rphmm.HMM
	if len(tilingPaths) > 2 {
		mid := len(tilingPaths) / 2
		results := make([][]*rphmm.HMM, 2)
		err := traverse.Each(2, func(i int) error {
			var e error
			if i == 0 {
				results[0], e = MergeTilingPaths(tilingPaths[:mid], params)
			} else {
				results[1], e = MergeTilingPaths(tilingPaths[mid:], params)
			}
			return e
		})
		if err != nil {
			return nil, err
		}
		tilingPath1, tilingPath2 = results[0], results[1]
	} else {
		tilingPath1, tilingPath2 = tilingPaths[0], tilingPaths[1]
	}

	return MergeTwoTilingPaths(tilingPath1, tilingPath2, params)
}
