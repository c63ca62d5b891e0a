// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package profile

import (
	"math"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/rphmm/partition"
)

// Channel indices into a profile position's NumChannels-byte record.
// The order is fixed by the collaborator contract (spec.md §6): A, C, G, T,
// methyl-C, hydroxymethyl-C, methyl-A, other. Only the first
// partition.NumNucleotides channels participate in emission by default.
const (
	ChannelA = iota
	ChannelC
	ChannelG
	ChannelT
	ChannelMethylC
	ChannelHydroxymethylC
	ChannelMethylA
	ChannelOther
)

// NumChannels is the number of stored probability channels per position.
const NumChannels = partition.NumChannels

var baseToChannel = map[byte]int{
	'A': ChannelA, 'a': ChannelA,
	'C': ChannelC, 'c': ChannelC,
	'G': ChannelG, 'g': ChannelG,
	'T': ChannelT, 't': ChannelT,
}

// ProfileSequence is an immutable per-read array of NumChannels-wide
// probability vectors over reference positions [RefStart, RefStart+Length).
// Value 255 in a channel byte is logical probability 1.0 (spec.md §3).
type ProfileSequence struct {
	ReadName      string
	ReferenceName string
	RefStart      int64
	Length        int64
	// Probs holds Length*NumChannels bytes, position-major: the record for
	// position p occupies Probs[p*NumChannels : (p+1)*NumChannels].
	Probs []byte
}

// NewProfileSequence validates and wraps a caller-supplied probability
// array. The array is not copied; callers must not mutate it afterward,
// matching the "immutable after construction, shared by reference" contract
// in spec.md §3.
func NewProfileSequence(readName, referenceName string, refStart, length int64, probs []byte) (*ProfileSequence, error) {
	if length < 0 {
		return nil, errors.E("profile: negative length", length)
	}
	if int64(len(probs)) != length*int64(NumChannels) {
		return nil, errors.E("profile: probs array has wrong size for length*NumChannels",
			len(probs), length*int64(NumChannels))
	}
	return &ProfileSequence{
		ReadName:      readName,
		ReferenceName: referenceName,
		RefStart:      refStart,
		Length:        length,
		Probs:         probs,
	}, nil
}

// NewEmptyProfileSequence allocates a zero-probability profile sequence of
// the given length. Sized length*NumChannels bytes, per the fix spec.md §9
// calls for against the original source's length-only allocation.
func NewEmptyProfileSequence(referenceName string, refStart, length int64) *ProfileSequence {
	return &ProfileSequence{
		ReferenceName: referenceName,
		RefStart:      refStart,
		Length:        length,
		Probs:         make([]byte, length*int64(NumChannels)),
	}
}

// ProbByte returns the raw probability byte for the given column-relative
// position and channel.
func (p *ProfileSequence) ProbByte(pos, channel int) byte {
	return p.Probs[pos*NumChannels+channel]
}

// Prob returns the probability (0.0..1.0) for the given column-relative
// position and channel.
func (p *ProfileSequence) Prob(pos, channel int) float64 {
	return float64(p.ProbByte(pos, channel)) / float64(partition.FullProb)
}

// RefEnd returns the exclusive end of the sequence's reference interval.
func (p *ProfileSequence) RefEnd() int64 {
	return p.RefStart + p.Length
}

// SubstitutionMatrix is a 4x4 row-major log-probability matrix indexed
// [source*NumNucleotides + derived], spec.md §6.
type SubstitutionMatrix [partition.NumNucleotides * partition.NumNucleotides]float64

// At returns the log substitution probability of observing derived given
// the true (haplotype) character source.
func (m SubstitutionMatrix) At(source, derived int) float64 {
	return m[source*partition.NumNucleotides+derived]
}

// Flatten returns the matrix as a flat slice, the representation the
// partition package's emission kernel consumes.
func (m SubstitutionMatrix) Flatten() []float64 {
	return m[:]
}

// ReferencePrior is the per-reference output of the (external,
// out-of-scope) reference-prior construction and homozygous-site-filtering
// stages: for each reference position it records whether that position was
// judged likely homozygous. When Params.FilterLikelyHomozygousSites is set,
// such positions get one shared consensus base in both haplotype strings;
// they are not removed from the HMM's emission. Construction of this struct
// from a population panel/VCF is an external collaborator (spec.md §1); the
// core only consumes and obeys it.
type ReferencePrior struct {
	ReferenceName    string
	RefStart         int64
	Length           int64
	likelyHomozygous []bool
}

// NewReferencePrior constructs a prior with no positions marked homozygous.
func NewReferencePrior(referenceName string, refStart, length int64) *ReferencePrior {
	return &ReferencePrior{
		ReferenceName:    referenceName,
		RefStart:         refStart,
		Length:           length,
		likelyHomozygous: make([]bool, length),
	}
}

// MarkLikelyHomozygous records that refPos is judged likely homozygous.
func (r *ReferencePrior) MarkLikelyHomozygous(refPos int64) {
	i := refPos - r.RefStart
	if i < 0 || i >= int64(len(r.likelyHomozygous)) {
		return
	}
	r.likelyHomozygous[i] = true
}

// IsLikelyHomozygous reports whether refPos was marked homozygous.
func (r *ReferencePrior) IsLikelyHomozygous(refPos int64) bool {
	i := refPos - r.RefStart
	if i < 0 || i >= int64(len(r.likelyHomozygous)) {
		return false
	}
	return r.likelyHomozygous[i]
}

// minProbFloor keeps ScoreAgainstHaplotype from producing -Inf on a single
// mismatching position, which would otherwise make one bad base dominate an
// entire read's score.
const minProbFloor = 1e-9

// ScoreAgainstHaplotype returns the log likelihood of the read profile
// pSeq given the haplotype string (an ACGT string addressed by absolute
// reference coordinate hapRefStart), summing per-position log
// probabilities over the overlap of the read's interval and the haplotype
// string's interval. Used for discard-reassignment and iterative
// refinement (spec.md §9, §4.10); reconstructed from the call pattern of
// the original source's getLogProbOfReadGivenHaplotype, whose body was not
// among the retained source files.
func ScoreAgainstHaplotype(pSeq *ProfileSequence, haplotype string, hapRefStart int64) float64 {
	haplotype = strings.ToUpper(haplotype)
	hapEnd := hapRefStart + int64(len(haplotype))

	start := pSeq.RefStart
	if hapRefStart > start {
		start = hapRefStart
	}
	end := pSeq.RefEnd()
	if hapEnd < end {
		end = hapEnd
	}

	total := 0.0
	for refPos := start; refPos < end; refPos++ {
		base := haplotype[refPos-hapRefStart]
		channel, ok := baseToChannel[base]
		if !ok {
			continue
		}
		prob := pSeq.Prob(int(refPos-pSeq.RefStart), channel)
		if prob < minProbFloor {
			prob = minProbFloor
		}
		total += math.Log(prob)
	}
	return total
}
