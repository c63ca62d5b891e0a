// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeUniformProbs(length int64, channel int, value byte) []byte {
	probs := make([]byte, length*NumChannels)
	for p := int64(0); p < length; p++ {
		probs[p*NumChannels+int64(channel)] = value
	}
	return probs
}

func TestNewProfileSequenceValidatesLength(t *testing.T) {
	_, err := NewProfileSequence("r1", "chr1", 0, 4, make([]byte, 10))
	assert.Error(t, err)

	probs := makeUniformProbs(4, ChannelA, 255)
	seq, err := NewProfileSequence("r1", "chr1", 0, 4, probs)
	require.NoError(t, err)
	assert.Equal(t, int64(4), seq.RefEnd()-seq.RefStart)
}

func TestNewEmptyProfileSequenceSizing(t *testing.T) {
	// spec.md §9: must allocate length*NumChannels bytes, not length.
	seq := NewEmptyProfileSequence("chr1", 10, 5)
	assert.Len(t, seq.Probs, 5*NumChannels)
}

func TestProbByteAndProb(t *testing.T) {
	probs := makeUniformProbs(3, ChannelG, 255)
	seq, err := NewProfileSequence("r", "chr1", 0, 3, probs)
	require.NoError(t, err)
	assert.Equal(t, byte(255), seq.ProbByte(1, ChannelG))
	assert.InDelta(t, 1.0, seq.Prob(1, ChannelG), 1e-9)
	assert.InDelta(t, 0.0, seq.Prob(1, ChannelA), 1e-9)
}

func TestReferencePriorHomozygousMarking(t *testing.T) {
	prior := NewReferencePrior("chr1", 100, 10)
	assert.False(t, prior.IsLikelyHomozygous(105))
	prior.MarkLikelyHomozygous(105)
	assert.True(t, prior.IsLikelyHomozygous(105))
	// Out of range queries are false, not panics.
	assert.False(t, prior.IsLikelyHomozygous(50))
	assert.False(t, prior.IsLikelyHomozygous(500))
}

func TestScoreAgainstHaplotypePrefersMatchingHaplotype(t *testing.T) {
	probs := makeUniformProbs(4, ChannelA, 255)
	seq, err := NewProfileSequence("r", "chr1", 0, 4, probs)
	require.NoError(t, err)

	matching := ScoreAgainstHaplotype(seq, "AAAA", 0)
	mismatching := ScoreAgainstHaplotype(seq, "TTTT", 0)
	assert.Greater(t, matching, mismatching)
}

func TestScoreAgainstHaplotypeClipsToOverlap(t *testing.T) {
	probs := makeUniformProbs(2, ChannelC, 255)
	seq, err := NewProfileSequence("r", "chr1", 10, 2, probs)
	require.NoError(t, err)

	// Haplotype string starts well before and ends well after the read;
	// only the overlapping "CC" should be scored.
	score := ScoreAgainstHaplotype(seq, "AAAACCAAAA", 6)
	assert.False(t, score < -100) // sanity: not blown up by out-of-range bases
}
