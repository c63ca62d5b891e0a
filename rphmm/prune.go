// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

// Prune removes cells and merge cells whose posterior probability falls
// below posteriorProbabilityThreshold, in columns/merge-columns at least
// minColumnDepthToFilter deep (spec.md §4.8). Forward and Backward must
// have already been run. Prune never removes the last surviving cell of a
// column even if it is below threshold, since every column must retain at
// least one live state for Forward/Backward/traceback to proceed.
func (hmm *HMM) Prune(posteriorProbabilityThreshold float64, minColumnDepthToFilter int64) {
	for column := hmm.FirstColumn; column != nil; {
		if int64(column.Depth) >= minColumnDepthToFilter {
			var survivors []*Cell
			for cell := column.Head; cell != nil; cell = cell.Next {
				if cell.PosteriorProb(column) >= posteriorProbabilityThreshold {
					survivors = append(survivors, cell)
				}
			}
			if len(survivors) == 0 {
				// Never prune every cell out of a column; keep the most
				// probable one even if it falls below threshold.
				best := column.Head
				for cell := column.Head; cell != nil; cell = cell.Next {
					if cell.PosteriorProb(column) > best.PosteriorProb(column) {
						best = cell
					}
				}
				survivors = []*Cell{best}
			}
			for i, cell := range survivors {
				if i+1 < len(survivors) {
					cell.Next = survivors[i+1]
				} else {
					cell.Next = nil
				}
			}
			column.Head = survivors[0]
		}

		mColumn := column.Next
		if mColumn == nil {
			break
		}

		if int64(mColumn.Depth()) >= minColumnDepthToFilter {
			for fromPartition, mCell := range mColumn.MergeCellsFrom {
				if mCell.PosteriorProb(mColumn) < posteriorProbabilityThreshold && len(mColumn.MergeCellsFrom) > 1 {
					delete(mColumn.MergeCellsFrom, fromPartition)
					delete(mColumn.MergeCellsTo, mCell.ToPartition)
				}
			}
		}

		column = mColumn.Next
	}
}
