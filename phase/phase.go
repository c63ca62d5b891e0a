// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package phase

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/rphmm/profile"
	"github.com/grailbio/rphmm/rphmm"
	"github.com/grailbio/rphmm/tiling"
)

// Run partitions profileSeqs into two haplotype-consistent read sets and
// derives the pair of haplotype strings the partition implies (spec.md
// §6, coordination.c's phaseReads). referencePriors is keyed by reference
// name; a nil or missing entry is treated as "no positions pre-marked
// homozygous".
func Run(profileSeqs []*profile.ProfileSequence, referencePriors map[string]*profile.ReferencePrior, params Params) (hap1Reads, hap2Reads []string, fragment *GenomeFragment, err error) {
	if len(profileSeqs) == 0 {
		log.Error.Printf("phase.Run: zero profile sequences to phase")
		return nil, nil, nil, nil
	}

	tp := params.tilingParams()
	retained, discarded := tiling.FilterReadsByCoverageDepth(profileSeqs, params.LogSubstitutionMatrix, tp)
	log.Debug.Printf("phase.Run: filtered %d reads of %d to achieve maximum coverage depth of %d",
		len(discarded), len(profileSeqs), params.MaxCoverageDepth)

	hmms, err := tiling.GetRPHmms(retained, params.LogSubstitutionMatrix, tp)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(hmms) == 0 {
		log.Error.Printf("phase.Run: zero tiling paths to phase")
		return nil, nil, nil, nil
	}
	if len(hmms) > 1 {
		return nil, nil, nil, errors.E(errors.Invalid,
			"phase.Run: input spans more than one contiguous tiling path; phase each contiguous region separately")
	}
	hmm := hmms[0]

	hmm.Forward()
	hmm.Backward()

	path, err := hmm.ForwardTraceback()
	if err != nil {
		return nil, nil, nil, err
	}

	prior := referencePriors[hmm.ReferenceName]
	var homozygous func(int64) bool
	if params.FilterLikelyHomozygousSites && prior != nil {
		homozygous = prior.IsLikelyHomozygous
	}

	hap1, hap2 := hmm.ConsensusHaplotypes(path, homozygous)
	fragment = &GenomeFragment{
		ReferenceName: hmm.ReferenceName,
		RefStart:      hmm.RefStart,
		Length:        hmm.RefLength,
		Haplotype1:    hap1,
		Haplotype2:    hap2,
	}

	hap1Set := rphmm.PartitionSequencesByStatePath(hmm, path)
	hap1Seqs, hap2Seqs := splitByMembership(hmm.ProfileSeqs, hap1Set)

	for round := 0; round < params.RoundsOfIterativeRefinement; round++ {
		fragment, hap1Seqs, hap2Seqs = refine(fragment, hap1Seqs, hap2Seqs, homozygous)
	}

	for _, pSeq := range discarded {
		i := profile.ScoreAgainstHaplotype(pSeq, fragment.Haplotype1, fragment.RefStart)
		j := profile.ScoreAgainstHaplotype(pSeq, fragment.Haplotype2, fragment.RefStart)
		// Corrected from the source's `i<j ? reads2 : reads2` typo (spec.md
		// §9): a discarded read goes to whichever haplotype it fits better.
		if i < j {
			hap2Seqs = append(hap2Seqs, pSeq)
		} else {
			hap1Seqs = append(hap1Seqs, pSeq)
		}
	}

	log.Debug.Printf("phase.Run: phased %d reads, %d to haplotype 1 and %d to haplotype 2",
		len(profileSeqs), len(hap1Seqs), len(hap2Seqs))

	return readNames(hap1Seqs), readNames(hap2Seqs), fragment, nil
}

func splitByMembership(seqs []*profile.ProfileSequence, hap1Set map[*profile.ProfileSequence]bool) (hap1, hap2 []*profile.ProfileSequence) {
	for _, pSeq := range seqs {
		if hap1Set[pSeq] {
			hap1 = append(hap1, pSeq)
		} else {
			hap2 = append(hap2, pSeq)
		}
	}
	return hap1, hap2
}

func readNames(seqs []*profile.ProfileSequence) []string {
	names := make([]string, len(seqs))
	for i, pSeq := range seqs {
		names[i] = pSeq.ReadName
	}
	return names
}
