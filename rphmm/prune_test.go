// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"testing"

	"github.com/grailbio/rphmm/partition"
	"github.com/grailbio/rphmm/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneRemovesLowPosteriorCells(t *testing.T) {
	pSeq, err := profile.NewProfileSequence("r1", "chr1", 0, 2, uniformProbs(2, profile.ChannelA, 255))
	require.NoError(t, err)

	hmm := NewSingleReadHMM(pSeq, flatLogSubMatrix())
	hmm.Forward()
	hmm.Backward()

	// Force cell partition=0's posterior near zero and partition=1's near
	// one, directly, so Prune's threshold comparison is deterministic
	// regardless of the emission model's actual numbers.
	column := hmm.FirstColumn
	for cell := column.Head; cell != nil; cell = cell.Next {
		if cell.Partition == 1 {
			cell.ForwardLogProb = partition.LogOne
			cell.BackwardLogProb = partition.LogOne
		} else {
			cell.ForwardLogProb = -50
			cell.BackwardLogProb = -50
		}
	}
	column.ForwardLogProb = partition.LogAdd(partition.LogOne, -50)
	column.BackwardLogProb = column.ForwardLogProb

	hmm.Prune(0.5, 0)

	var partitions []partition.Partition
	for cell := hmm.FirstColumn.Head; cell != nil; cell = cell.Next {
		partitions = append(partitions, cell.Partition)
	}
	assert.Equal(t, []partition.Partition{1}, partitions)
}

func TestPruneNeverEmptiesAColumn(t *testing.T) {
	pSeq, err := profile.NewProfileSequence("r1", "chr1", 0, 2, uniformProbs(2, profile.ChannelA, 255))
	require.NoError(t, err)

	hmm := NewSingleReadHMM(pSeq, flatLogSubMatrix())
	hmm.Forward()
	hmm.Backward()

	// An impossibly high threshold would otherwise prune every cell.
	hmm.Prune(1.1, 0)

	assert.NotNil(t, hmm.FirstColumn.Head)
}
