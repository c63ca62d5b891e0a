// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package tiling

// Params bundles the tiling/merge thresholds shared by GetRPHmms,
// MergeTilingPaths, and FilterReadsByCoverageDepth (spec.md §5-6's
// stRPHmmParameters subset relevant to tiling).
type Params struct {
	// MaxCoverageDepth is the maximum number of tiling paths (and so the
	// maximum per-position read depth) that FilterReadsByCoverageDepth will
	// retain; reads tiling into additional paths are discarded.
	MaxCoverageDepth int
	// PosteriorProbabilityThreshold is passed to rphmm.HMM.Prune after
	// every pairwise merge.
	PosteriorProbabilityThreshold float64
	// MinColumnDepthToFilter is passed to rphmm.HMM.Prune after every
	// pairwise merge.
	MinColumnDepthToFilter int64
}
