// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"math"
	"testing"

	"github.com/grailbio/rphmm/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForwardBackwardAgreeOnTotalProbability checks the standard HMM
// invariant: the total probability accumulated by Forward at the last
// column equals the total probability accumulated by Backward at the
// first column, since both describe the same sum over all paths.
func TestForwardBackwardAgreeOnTotalProbability(t *testing.T) {
	pSeq, err := profile.NewProfileSequence("r1", "chr1", 0, 2, uniformProbs(2, profile.ChannelA, 200))
	require.NoError(t, err)

	hmm := NewSingleReadHMM(pSeq, flatLogSubMatrix())
	hmm.FirstColumn.Split(1, hmm)

	hmm.Forward()
	hmm.Backward()

	assert.False(t, math.IsInf(hmm.ForwardLogProb, -1))
	assert.InDelta(t, hmm.ForwardLogProb, hmm.BackwardLogProb, 1e-6)
}

func TestPosteriorProbabilitiesAreWellFormed(t *testing.T) {
	pSeq, err := profile.NewProfileSequence("r1", "chr1", 0, 3, uniformProbs(3, profile.ChannelG, 255))
	require.NoError(t, err)

	hmm := NewSingleReadHMM(pSeq, flatLogSubMatrix())
	hmm.Forward()
	hmm.Backward()

	for cell := hmm.FirstColumn.Head; cell != nil; cell = cell.Next {
		p := cell.PosteriorProb(hmm.FirstColumn)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
