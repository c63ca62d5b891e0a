// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"testing"

	"github.com/grailbio/rphmm/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingleReadHMMHasTwoPartitionStates(t *testing.T) {
	pSeq, err := profile.NewProfileSequence("r1", "chr1", 10, 4, uniformProbs(4, profile.ChannelA, 255))
	require.NoError(t, err)

	hmm := NewSingleReadHMM(pSeq, flatLogSubMatrix())

	assert.Equal(t, hmm.FirstColumn, hmm.LastColumn)
	assert.Equal(t, int64(10), hmm.RefStart)
	assert.Equal(t, int64(4), hmm.RefLength)
	assert.Equal(t, 1, hmm.FirstColumn.Depth)

	cells := hmm.FirstColumn.cells()
	require.Len(t, cells, 2)
	assert.Equal(t, uint64(1), uint64(cells[0].Partition))
	assert.Equal(t, uint64(0), uint64(cells[1].Partition))
}

func TestOverlapOnReferenceIsSymmetric(t *testing.T) {
	logSub := flatLogSubMatrix()
	seqA, err := profile.NewProfileSequence("a", "chr1", 0, 5, uniformProbs(5, profile.ChannelA, 255))
	require.NoError(t, err)
	seqB, err := profile.NewProfileSequence("b", "chr1", 3, 5, uniformProbs(5, profile.ChannelA, 255))
	require.NoError(t, err)
	seqC, err := profile.NewProfileSequence("c", "chr2", 3, 5, uniformProbs(5, profile.ChannelA, 255))
	require.NoError(t, err)

	hmmA := NewSingleReadHMM(seqA, logSub)
	hmmB := NewSingleReadHMM(seqB, logSub)
	hmmC := NewSingleReadHMM(seqC, logSub)

	assert.True(t, OverlapOnReference(hmmA, hmmB))
	assert.True(t, OverlapOnReference(hmmB, hmmA))
	assert.False(t, OverlapOnReference(hmmA, hmmC), "different reference sequences never overlap")
}

func TestCompareFnOrdersByReferenceThenStartThenLength(t *testing.T) {
	logSub := flatLogSubMatrix()
	mk := func(ref string, start, length int64) *HMM {
		seq, err := profile.NewProfileSequence("r", ref, start, length, uniformProbs(length, profile.ChannelA, 255))
		require.NoError(t, err)
		return NewSingleReadHMM(seq, logSub)
	}

	a := mk("chr1", 0, 5)
	b := mk("chr1", 3, 5)
	c := mk("chr2", 0, 5)

	assert.Equal(t, 0, CompareFn(a, a))
	assert.Equal(t, -1, CompareFn(a, b))
	assert.Equal(t, 1, CompareFn(b, a))
	assert.Equal(t, -1, CompareFn(a, c))
}
