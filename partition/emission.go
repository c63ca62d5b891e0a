// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package partition

import (
	"github.com/ajroetker/go-highway/hwy"
)

// BitPlanes is the per-position bit-sliced popcount table described in
// spec.md §4.2: for nucleotide channel c and probability bit b, the i-th
// bit of BitPlanes[c][b] is the i-th read's bit-b of its probability byte
// for channel c. Depth <= MaxDepth reads fit in one uint64 per plane.
//
// Building this table once per column amortizes what would otherwise be a
// per-cell, per-read scan: NumNucleotides*8 popcounts replace a depth-way
// sum for every partition evaluated against the column.
type BitPlanes [NumNucleotides][8]uint64

// ProbAt returns the probability byte (0..255, 255 == prob 1.0) for read
// readIdx, channel c, at some column-relative position. Implementations are
// expected to be a thin adapter over a profile.ProfileSequence's backing
// array; kept as a function type here so this package has no dependency on
// package profile.
type ProbAt func(readIdx, channel int) byte

// BuildBitPlanes accumulates the bit-plane table for one column position
// from depth reads. It OR-accumulates each read's bits into the shared
// word -- using AND here (as the original C source does) on the
// zero-initialized planes would leave every word zero; bit-plane
// accumulation is strictly additive across reads.
func BuildBitPlanes(depth int, probAt ProbAt) BitPlanes {
	var planes BitPlanes
	for i := 0; i < depth; i++ {
		for c := 0; c < NumNucleotides; c++ {
			v := probAt(i, c)
			for b := 0; b < 8; b++ {
				if (v>>uint(b))&1 != 0 {
					planes[c][b] |= uint64(1) << uint(i)
				}
			}
		}
	}
	return planes
}

// ExpectedCounts returns, for each of the NumNucleotides channels, the
// expected fraction of reads in partition p (out of depth reads) observed
// to carry that channel, reconstructed from the bit-sliced planes via
// vectorized AND+popcount passes over the NumNucleotides*8 words (batched
// to the SIMD register width) instead of NumNucleotides*8 independent
// scalar popcounts.
func ExpectedCounts(planes BitPlanes, depth int, p Partition) [NumNucleotides]float64 {
	var out [NumNucleotides]float64
	if depth <= 0 {
		return out
	}

	var words [NumNucleotides * 8]uint64
	idx := 0
	for c := 0; c < NumNucleotides; c++ {
		for b := 0; b < 8; b++ {
			words[idx] = planes[c][b]
			idx++
		}
	}

	// hwy.Vec wraps a fixed hardware-width register: hwy.Load truncates to
	// hwy.MaxLanes[uint64](), which can be as small as 2 words in scalar
	// dispatch. Process words[:] in MaxLanes-sized batches and accumulate
	// the popcounts back into a full-width array instead of handing the
	// whole 32-word table to a single Load/And/PopCount call.
	var counts [NumNucleotides * 8]uint64
	mask := hwy.Set(p)
	lanes := hwy.MaxLanes[uint64]()
	for start := 0; start < len(words); start += lanes {
		end := start + lanes
		if end > len(words) {
			end = len(words)
		}
		v := hwy.Load(words[start:end])
		masked := hwy.And(v, mask)
		copy(counts[start:end], hwy.PopCount(masked).Data())
	}

	denom := float64(FullProb) * float64(depth)
	idx = 0
	for c := 0; c < NumNucleotides; c++ {
		var raw uint64
		for b := 0; b < 8; b++ {
			raw += counts[idx] << uint(b)
			idx++
		}
		out[c] = float64(raw) / denom
	}
	return out
}

// LogProbOfReadCharacters returns the log probability of the observed
// channel counts given that the true (haplotype) character at this
// position is sourceChar, under the 4x4 log substitution matrix (row-major,
// [source*NumNucleotides+derived]).
func LogProbOfReadCharacters(expectedCounts [NumNucleotides]float64, logSubMatrix []float64, sourceChar int) float64 {
	total := 0.0
	for derived := 0; derived < NumNucleotides; derived++ {
		total += logSubMatrix[sourceChar*NumNucleotides+derived] * expectedCounts[derived]
	}
	return total
}

// ColumnIndexLogProb returns the log probability of the channel counts at a
// single column position for partition p, marginalized in log-space over
// the unknown source (haplotype) character.
func ColumnIndexLogProb(planes BitPlanes, depth int, p Partition, logSubMatrix []float64) float64 {
	expected := ExpectedCounts(planes, depth, p)
	logProb := LogProbOfReadCharacters(expected, logSubMatrix, 0)
	for source := 1; source < NumNucleotides; source++ {
		logProb = LogAdd(logProb, LogProbOfReadCharacters(expected, logSubMatrix, source))
	}
	return logProb
}

// ColumnLogProb sums ColumnIndexLogProb over every position in a column's
// bit-plane table for partition p. A depth-0 column (used as a bridge/
// filler between disjoint HMMs) carries no read data and contributes
// LogOne rather than dividing by a zero depth.
func ColumnLogProb(planesPerPos []BitPlanes, depth int, p Partition, logSubMatrix []float64) float64 {
	if depth <= 0 {
		return LogOne
	}
	total := 0.0
	for _, planes := range planesPerPos {
		total += ColumnIndexLogProb(planes, depth, p, logSubMatrix)
	}
	return total
}

// CellEmission returns the emission log-probability of a cell's partition,
// summing the column log-probability of the partition and its complement
// (spec.md §4.2: "the engine always evaluates both complements").
func CellEmission(planesPerPos []BitPlanes, depth int, p Partition, logSubMatrix []float64) float64 {
	complement := MaskPartition(^p, AcceptMask(depth))
	return ColumnLogProb(planesPerPos, depth, p, logSubMatrix) +
		ColumnLogProb(planesPerPos, depth, complement, logSubMatrix)
}
