// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"strings"

	"github.com/grailbio/rphmm/partition"
)

var baseOrder = [partition.NumNucleotides]byte{'A', 'C', 'G', 'T'}

func argmaxBase(counts [partition.NumNucleotides]float64) byte {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return baseOrder[best]
}

// ConsensusHaplotypes derives the two haplotype strings implied by a
// traceback path: at every column, the cell's partition and its
// complement each pick out the reads assigned to haplotype 1 and
// haplotype 2, and the per-channel expected counts over those reads
// (the same bit-sliced machinery CellEmission uses) determine the
// most-likely base for each haplotype at that position (spec.md §6's
// "pair of haplotype strings ... drawn from the most-likely traceback").
//
// homozygous, when non-nil, is consulted per absolute reference position;
// a position it reports true gets the same, undivided consensus base in
// both haplotype strings rather than one derived per partition.
func (hmm *HMM) ConsensusHaplotypes(path []*Cell, homozygous func(refPos int64) bool) (hap1, hap2 string) {
	var b1, b2 strings.Builder
	column := hmm.FirstColumn
	for _, cell := range path {
		planes := column.bitPlanes()
		accept := partition.AcceptMask(column.Depth)
		complement := partition.MaskPartition(^cell.Partition, accept)

		for pos := 0; pos < int(column.Length); pos++ {
			if homozygous != nil && homozygous(column.RefStart+int64(pos)) {
				counts := partition.ExpectedCounts(planes[pos], column.Depth, accept)
				base := argmaxBase(counts)
				b1.WriteByte(base)
				b2.WriteByte(base)
				continue
			}
			b1.WriteByte(argmaxBase(partition.ExpectedCounts(planes[pos], column.Depth, cell.Partition)))
			b2.WriteByte(argmaxBase(partition.ExpectedCounts(planes[pos], column.Depth, complement)))
		}

		if column.Next == nil {
			break
		}
		column = column.Next.Next
	}
	return b1.String(), b2.String()
}
