// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tiling

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/rphmm/partition"
	"github.com/grailbio/rphmm/profile"
	"github.com/grailbio/rphmm/rphmm"
)

// hmmsFromProfileSeqs wraps every profile sequence in its own
// single-read HMM (coordination.c's getTilingPaths2's construction loop).
func hmmsFromProfileSeqs(profileSeqs []*profile.ProfileSequence, logSubMatrix []float64) []*rphmm.HMM {
	hmms := make([]*rphmm.HMM, len(profileSeqs))
	for i, pSeq := range profileSeqs {
		hmms[i] = rphmm.NewSingleReadHMM(pSeq, logSubMatrix)
	}
	return hmms
}

// profileSeqsOf collects the profile sequences held by a tiling path built
// entirely of single-read HMMs (coordination.c's getProfileSeqs).
func profileSeqsOf(path []*rphmm.HMM) []*profile.ProfileSequence {
	out := make([]*profile.ProfileSequence, 0, len(path))
	for _, hmm := range path {
		out = append(out, hmm.ProfileSeqs...)
	}
	return out
}

// FilterReadsByCoverageDepth partitions profileSeqs into a retained subset
// whose maximum per-position coverage is at most params.MaxCoverageDepth,
// and a discarded subset of whatever had to be dropped to get there
// (spec.md §5, coordination.c's filterReadsByCoverageDepth). Reads are
// dropped a whole tiling path at a time, so the retained set's structure
// stays exactly the tiling paths GetRPHmms would otherwise merge.
func FilterReadsByCoverageDepth(profileSeqs []*profile.ProfileSequence, logSubMatrix []float64, params Params) (retained, discarded []*profile.ProfileSequence) {
	hmms := hmmsFromProfileSeqs(profileSeqs, logSubMatrix)
	tilingPaths := GetTilingPaths(hmms)

	for len(tilingPaths) > params.MaxCoverageDepth {
		last := tilingPaths[len(tilingPaths)-1]
		tilingPaths = tilingPaths[:len(tilingPaths)-1]
		discarded = append(discarded, profileSeqsOf(last)...)
	}
	for _, path := range tilingPaths {
		retained = append(retained, profileSeqsOf(path)...)
	}
	return retained, discarded
}

// GetRPHmms builds the minimal tiling path of merged rphmm.HMMs covering
// profileSeqs: one HMM per maximal group of mutually overlapping reads,
// ordered and non-overlapping in reference coordinates (spec.md §5,
// coordination.c's getRPHmms). Fails if the input's tiling-path count
// exceeds partition.MaxDepth (CrossProduct would be asked to build a
// partition wider than a machine word can represent) or the configured
// params.MaxCoverageDepth.
func GetRPHmms(profileSeqs []*profile.ProfileSequence, logSubMatrix []float64, params Params) ([]*rphmm.HMM, error) {
	hmms := hmmsFromProfileSeqs(profileSeqs, logSubMatrix)
	tilingPaths := GetTilingPaths(hmms)

	if len(tilingPaths) > partition.MaxDepth || len(tilingPaths) > params.MaxCoverageDepth {
		return nil, errors.E(errors.Invalid,
			"tiling.GetRPHmms: coverage depth exceeds hard maximum or configured maximum")
	}

	return MergeTilingPaths(tilingPaths, params)
}
