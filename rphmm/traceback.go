// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/rphmm/partition"
	"github.com/grailbio/rphmm/profile"
)

// ForwardTraceback traces the most probable path of cells through the
// HMM's forward matrix, one cell per column (spec.md §4.9). Forward must
// have already been run. It fails with a fatal error if pruning removed a
// cell the optimal path would have needed.
func (hmm *HMM) ForwardTraceback() ([]*Cell, error) {
	column := hmm.LastColumn

	maxCell := column.Head
	maxProb := maxCell.ForwardLogProb
	for cell := column.Head.Next; cell != nil; cell = cell.Next {
		if cell.ForwardLogProb > maxProb {
			maxProb = cell.ForwardLogProb
			maxCell = cell
		}
	}

	path := []*Cell{maxCell}

	for column.Prev != nil {
		mCell := column.Prev.PreviousMergeCell(maxCell)
		if mCell == nil {
			return nil, errors.E(errors.Invalid,
				"rphmm.ForwardTraceback: traceback cell missing, pruning too aggressive")
		}

		column = column.Prev.Prev

		var next *Cell
		nextProb := partition.LogZero
		for cell := column.Head; cell != nil; cell = cell.Next {
			if column.Next.NextMergeCell(cell) == mCell && cell.ForwardLogProb > nextProb {
				nextProb = cell.ForwardLogProb
				next = cell
			}
		}
		if next == nil {
			return nil, errors.E(errors.Invalid,
				"rphmm.ForwardTraceback: no cell in previous column transitions to chosen merge cell")
		}

		maxCell = next
		path = append(path, maxCell)
	}

	// path was built last-to-first; reverse it into reference order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// PartitionSequencesByStatePath walks an HMM's column chain alongside a
// traceback path and returns the set of profile sequences assigned to
// haplotype 1 (spec.md §4.9). The complement, under the HMM's
// ProfileSeqs, is haplotype 2.
func PartitionSequencesByStatePath(hmm *HMM, path []*Cell) map[*profile.ProfileSequence]bool {
	seqsInHap1 := make(map[*profile.ProfileSequence]bool)

	column := hmm.FirstColumn
	for _, cell := range path {
		for j := 0; j < column.Depth; j++ {
			if partition.SeqInHap1(cell.Partition, j) {
				seqsInHap1[column.SeqHeaders[j]] = true
			}
		}
		if column.Next == nil {
			break
		}
		column = column.Next.Next
	}

	return seqsInHap1
}
