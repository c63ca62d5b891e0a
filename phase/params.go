// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package phase implements the engine's single external entry point:
// partitioning a set of sequencing reads, expressed as profile
// sequences, into two haplotype-consistent read sets plus the pair of
// haplotype strings the partition implies (spec.md §6,
// coordination.c's phaseReads).
package phase

import "github.com/grailbio/rphmm/tiling"

// Params bundles phaseReads' configuration (spec.md §6's enumerated
// parameter set).
type Params struct {
	// MaxCoverageDepth is the maximum simultaneous read depth the engine
	// will phase; reads in excess are set aside by FilterReadsByCoverageDepth
	// and reassigned to whichever haplotype they best fit after phasing.
	MaxCoverageDepth int
	// PosteriorProbabilityThreshold and MinColumnDepthToFilter feed every
	// rphmm.HMM.Prune call after a pairwise merge.
	PosteriorProbabilityThreshold float64
	MinColumnDepthToFilter        int64
	// RoundsOfIterativeRefinement re-derives the haplotype strings from the
	// current read partition and reassigns reads to them, that many times,
	// after the initial traceback.
	RoundsOfIterativeRefinement int
	// FilterLikelyHomozygousSites, when set, collapses positions the caller's
	// ReferencePrior marks likely homozygous to a single undivided consensus
	// base in both haplotype strings instead of one derived per partition.
	FilterLikelyHomozygousSites bool
	// MinSecondMostFrequentBaseFilter is accepted for parity with the source
	// parameter struct; the homozygous-site decision itself is read from the
	// caller-supplied ReferencePrior (spec.md's Open Question on
	// ReferencePrior construction being an external collaborator).
	MinSecondMostFrequentBaseFilter int64
	// LogSubstitutionMatrix is the 4x4 row-major log-probability matrix
	// shared by every HMM built during phasing.
	LogSubstitutionMatrix []float64
}

func (p Params) tilingParams() tiling.Params {
	return tiling.Params{
		MaxCoverageDepth:              p.MaxCoverageDepth,
		PosteriorProbabilityThreshold: p.PosteriorProbabilityThreshold,
		MinColumnDepthToFilter:        p.MinColumnDepthToFilter,
	}
}
