// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import "github.com/grailbio/rphmm/partition"

// Forward runs the forward algorithm over the HMM's column chain,
// populating ForwardLogProb on every Cell, MergeCell, Column, and on the
// HMM itself (spec.md §4.7).
func (hmm *HMM) Forward() {
	hmm.ForwardLogProb = partition.LogZero

	for column := hmm.FirstColumn; column != nil; {
		column.ForwardLogProb = partition.LogZero
		for cell := column.Head; cell != nil; cell = cell.Next {
			cell.ForwardLogProb = partition.LogZero
		}
		if column.Next == nil {
			break
		}
		for _, mCell := range column.Next.MergeCellsFrom {
			mCell.ForwardLogProb = partition.LogZero
		}
		column = column.Next.Next
	}

	for column := hmm.FirstColumn; column != nil; {
		planes := column.bitPlanes()

		for cell := column.Head; cell != nil; cell = cell.Next {
			if column.Prev != nil {
				if mCell := column.Prev.PreviousMergeCell(cell); mCell != nil {
					cell.ForwardLogProb = mCell.ForwardLogProb
				}
			} else {
				cell.ForwardLogProb = partition.LogOne
			}

			cell.ForwardLogProb += partition.CellEmission(planes, column.Depth, cell.Partition, hmm.LogSubMatrix)

			if column.Next != nil {
				if mCell := column.Next.NextMergeCell(cell); mCell != nil {
					mCell.ForwardLogProb = partition.LogAdd(cell.ForwardLogProb, mCell.ForwardLogProb)
				}
			} else {
				hmm.ForwardLogProb = partition.LogAdd(hmm.ForwardLogProb, cell.ForwardLogProb)
			}

			column.ForwardLogProb = partition.LogAdd(column.ForwardLogProb, cell.ForwardLogProb)
		}

		if column.Next == nil {
			break
		}
		column = column.Next.Next
	}
}

// Backward runs the backward algorithm over the HMM's column chain,
// populating BackwardLogProb on every Cell, MergeCell, Column, and on the
// HMM itself (spec.md §4.7).
func (hmm *HMM) Backward() {
	hmm.BackwardLogProb = partition.LogZero

	for column := hmm.FirstColumn; column != nil; {
		column.BackwardLogProb = partition.LogZero
		for cell := column.Head; cell != nil; cell = cell.Next {
			cell.BackwardLogProb = partition.LogZero
		}
		if column.Next == nil {
			break
		}
		for _, mCell := range column.Next.MergeCellsFrom {
			mCell.BackwardLogProb = partition.LogZero
		}
		column = column.Next.Next
	}

	for column := hmm.LastColumn; ; {
		planes := column.bitPlanes()

		for cell := column.Head; cell != nil; cell = cell.Next {
			if column.Next != nil {
				if mCell := column.Next.NextMergeCell(cell); mCell != nil {
					cell.BackwardLogProb = mCell.BackwardLogProb
				}
			} else {
				cell.BackwardLogProb = partition.LogOne
			}

			cell.BackwardLogProb += partition.CellEmission(planes, column.Depth, cell.Partition, hmm.LogSubMatrix)

			if column.Prev != nil {
				if mCell := column.Prev.PreviousMergeCell(cell); mCell != nil {
					mCell.BackwardLogProb = partition.LogAdd(cell.BackwardLogProb, mCell.BackwardLogProb)
				}
			} else {
				hmm.BackwardLogProb = partition.LogAdd(hmm.BackwardLogProb, cell.BackwardLogProb)
			}

			column.BackwardLogProb = partition.LogAdd(column.BackwardLogProb, cell.BackwardLogProb)
		}

		if column.Prev == nil {
			break
		}
		column = column.Prev.Prev
	}
}
