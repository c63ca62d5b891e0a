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

func TestFuseConcatenatesNonOverlappingHmmsWithGap(t *testing.T) {
	logSub := flatLogSubMatrix()

	leftSeq, err := profile.NewProfileSequence("left", "chr1", 0, 3, uniformProbs(3, profile.ChannelA, 255))
	require.NoError(t, err)
	rightSeq, err := profile.NewProfileSequence("right", "chr1", 5, 3, uniformProbs(3, profile.ChannelT, 255))
	require.NoError(t, err)

	left := NewSingleReadHMM(leftSeq, logSub)
	right := NewSingleReadHMM(rightSeq, logSub)

	fused, err := Fuse(left, right)
	require.NoError(t, err)

	assert.Equal(t, int64(0), fused.RefStart)
	assert.Equal(t, int64(8), fused.RefLength) // 5+3-0
	assert.Len(t, fused.ProfileSeqs, 2)
	// left column, gap column, right column.
	assert.Equal(t, int64(3), fused.ColumnNumber)

	gapColumn := fused.FirstColumn.Next.Next
	require.NotNil(t, gapColumn)
	assert.Equal(t, 0, gapColumn.Depth)
	assert.Equal(t, int64(3), gapColumn.RefStart)
	assert.Equal(t, int64(2), gapColumn.Length)
	assert.Equal(t, fused.LastColumn, gapColumn.Next.Next)
}

func TestFuseRejectsOverlappingHmms(t *testing.T) {
	logSub := flatLogSubMatrix()
	seq1, err := profile.NewProfileSequence("a", "chr1", 0, 4, uniformProbs(4, profile.ChannelA, 255))
	require.NoError(t, err)
	seq2, err := profile.NewProfileSequence("b", "chr1", 2, 4, uniformProbs(4, profile.ChannelA, 255))
	require.NoError(t, err)

	hmm1 := NewSingleReadHMM(seq1, logSub)
	hmm2 := NewSingleReadHMM(seq2, logSub)

	_, err = Fuse(hmm1, hmm2)
	assert.Error(t, err)
}

func TestFuseRejectsMismatchedSubstitutionMatrices(t *testing.T) {
	seq1, err := profile.NewProfileSequence("a", "chr1", 0, 2, uniformProbs(2, profile.ChannelA, 255))
	require.NoError(t, err)
	seq2, err := profile.NewProfileSequence("b", "chr1", 5, 2, uniformProbs(2, profile.ChannelA, 255))
	require.NoError(t, err)

	hmm1 := NewSingleReadHMM(seq1, flatLogSubMatrix())
	other := flatLogSubMatrix()
	other[0] = -1.0
	hmm2 := NewSingleReadHMM(seq2, other)

	_, err = Fuse(hmm1, hmm2)
	assert.Error(t, err)
}
