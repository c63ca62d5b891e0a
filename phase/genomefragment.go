// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package phase

// GenomeFragment is the pair of haplotype strings implied by a phased
// HMM's traceback, over the reference interval the HMM covers (spec.md
// §6; reconstructed from coordination.c's stGenomeFragment_construct call
// pattern, whose body lives outside the retained source files -- only
// the two haplotype strings and their span are carried here, not the
// source struct's full per-base posterior bookkeeping, which belongs to
// the excluded VCF-output stage).
type GenomeFragment struct {
	ReferenceName string
	RefStart      int64
	Length        int64
	Haplotype1    string
	Haplotype2    string
}
