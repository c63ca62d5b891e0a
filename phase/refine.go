// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package phase

import (
	"strings"

	"github.com/grailbio/rphmm/profile"
)

var refineChannels = [4]int{profile.ChannelA, profile.ChannelC, profile.ChannelG, profile.ChannelT}
var refineBases = [4]byte{'A', 'C', 'G', 'T'}

// consensusFromReads derives a haplotype string over [refStart,
// refStart+length) as the per-position argmax of the summed per-channel
// probability across reads, matching the consensus rphmm.ConsensusHaplotypes
// draws from the HMM's own bit-sliced counts but recomputed directly from
// a caller-chosen read set, which the HMM's column chain no longer
// reflects once reads have been reassigned between haplotypes.
func consensusFromReads(reads []*profile.ProfileSequence, refStart, length int64) string {
	var b strings.Builder
	for pos := int64(0); pos < length; pos++ {
		refPos := refStart + pos
		var totals [4]float64
		covered := false
		for _, pSeq := range reads {
			if refPos < pSeq.RefStart || refPos >= pSeq.RefEnd() {
				continue
			}
			covered = true
			localPos := int(refPos - pSeq.RefStart)
			for i, channel := range refineChannels {
				totals[i] += pSeq.Prob(localPos, channel)
			}
		}
		if !covered {
			b.WriteByte('N')
			continue
		}
		best := 0
		for i := 1; i < len(totals); i++ {
			if totals[i] > totals[best] {
				best = i
			}
		}
		b.WriteByte(refineBases[best])
	}
	return b.String()
}

// refine re-derives the haplotype strings from the reads currently
// assigned to each haplotype, then reassigns every read to whichever
// haplotype it now fits best (coordination.c's
// stGenomeFragment_refineGenomeFragment call site in phaseReads; the
// refinement step itself is implemented with the same per-read scorer as
// discard-reassignment rather than re-deriving a new HMM, per spec.md §9's
// iterative-refinement note).
func refine(fragment *GenomeFragment, hap1Seqs, hap2Seqs []*profile.ProfileSequence, homozygous func(int64) bool) (*GenomeFragment, []*profile.ProfileSequence, []*profile.ProfileSequence) {
	hap1 := []byte(consensusFromReads(hap1Seqs, fragment.RefStart, fragment.Length))
	hap2 := []byte(consensusFromReads(hap2Seqs, fragment.RefStart, fragment.Length))

	if homozygous != nil {
		all := append(append([]*profile.ProfileSequence(nil), hap1Seqs...), hap2Seqs...)
		combined := []byte(consensusFromReads(all, fragment.RefStart, fragment.Length))
		for pos := int64(0); pos < fragment.Length; pos++ {
			if homozygous(fragment.RefStart + pos) {
				hap1[pos] = combined[pos]
				hap2[pos] = combined[pos]
			}
		}
	}

	newFragment := &GenomeFragment{
		ReferenceName: fragment.ReferenceName,
		RefStart:      fragment.RefStart,
		Length:        fragment.Length,
		Haplotype1:    string(hap1),
		Haplotype2:    string(hap2),
	}

	all := append(append([]*profile.ProfileSequence(nil), hap1Seqs...), hap2Seqs...)
	var newHap1, newHap2 []*profile.ProfileSequence
	for _, pSeq := range all {
		i := profile.ScoreAgainstHaplotype(pSeq, newFragment.Haplotype1, newFragment.RefStart)
		j := profile.ScoreAgainstHaplotype(pSeq, newFragment.Haplotype2, newFragment.RefStart)
		if i < j {
			newHap2 = append(newHap2, pSeq)
		} else {
			newHap1 = append(newHap1, pSeq)
		}
	}
	return newFragment, newHap1, newHap2
}
