// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package partition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPopcountEmissionEquivalence is testable property 10 from spec.md §8:
// for small depth, the bit-sliced expected count must agree with the naive
// per-read sum to within 1e-9.
func TestPopcountEmissionEquivalence(t *testing.T) {
	depth := 6
	probs := [][NumNucleotides]byte{
		{255, 0, 10, 3},
		{128, 64, 0, 0},
		{0, 255, 1, 2},
		{5, 5, 5, 5},
		{200, 30, 9, 0},
		{1, 2, 3, 255},
	}
	probAt := func(readIdx, channel int) byte { return probs[readIdx][channel] }
	planes := BuildBitPlanes(depth, probAt)

	for p := Partition(0); p < (1 << uint(depth)); p++ {
		got := ExpectedCounts(planes, depth, p)
		for c := 0; c < NumNucleotides; c++ {
			naive := 0.0
			for i := 0; i < depth; i++ {
				if SeqInHap1(p, i) {
					naive += float64(probs[i][c]) / float64(FullProb)
				}
			}
			naive /= float64(depth)
			assert.InDelta(t, naive, got[c], 1e-9)
		}
	}
}

func TestBuildBitPlanesOrAccumulates(t *testing.T) {
	// Two reads both setting bit 0 of channel 0's probability byte must
	// leave both read-bits set in the plane word -- an &= implementation
	// (the original source's bug, spec.md §9) would zero this out.
	probAt := func(readIdx, channel int) byte {
		if channel == 0 {
			return 1 // bit 0 set
		}
		return 0
	}
	planes := BuildBitPlanes(2, probAt)
	require.Equal(t, uint64(0b11), planes[0][0])
}

func TestColumnLogProbZeroDepthIsLogOne(t *testing.T) {
	got := ColumnLogProb(nil, 0, 0, nil)
	assert.Equal(t, LogOne, got)
}

func TestCellEmissionSymmetric(t *testing.T) {
	depth := 3
	probs := [][NumNucleotides]byte{
		{255, 0, 0, 0},
		{0, 255, 0, 0},
		{0, 0, 255, 0},
	}
	probAt := func(readIdx, channel int) byte { return probs[readIdx][channel] }
	planes := []BitPlanes{BuildBitPlanes(depth, probAt)}

	logSub := flatLogSubMatrix(0.9, 0.1)

	p := Partition(0b011)
	complement := MaskPartition(^p, AcceptMask(depth))
	a := CellEmission(planes, depth, p, logSub)
	b := CellEmission(planes, depth, complement, logSub)
	assert.True(t, math.Abs(a-b) < 1e-9, "emission must be symmetric under partition complement")
}

func flatLogSubMatrix(match, mismatchTotal float64) []float64 {
	mismatch := math.Log(mismatchTotal / 3)
	m := make([]float64, NumNucleotides*NumNucleotides)
	for s := 0; s < NumNucleotides; s++ {
		for d := 0; d < NumNucleotides; d++ {
			if s == d {
				m[s*NumNucleotides+d] = math.Log(match)
			} else {
				m[s*NumNucleotides+d] = mismatch
			}
		}
	}
	return m
}
