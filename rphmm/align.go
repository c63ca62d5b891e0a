// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import "github.com/grailbio/base/errors"

// AlignColumns modifies hmm1 and hmm2 in place so that they (1) span the
// same reference interval, (2) have the same number of columns, and
// (3) have each pair of corresponding columns span the same interval
// (spec.md §4.5). It is a precondition of CrossProduct.
func AlignColumns(hmm1, hmm2 *HMM) error {
	if !OverlapOnReference(hmm1, hmm2) {
		return errors.E(errors.Invalid, "rphmm.AlignColumns: hmms do not overlap in reference coordinates")
	}

	if hmm1.RefStart > hmm2.RefStart {
		return AlignColumns(hmm2, hmm1)
	}

	if hmm1.RefStart < hmm2.RefStart {
		prefixLength := hmm2.RefStart - hmm1.RefStart
		column := newColumn(hmm1.RefStart, prefixLength, 0, nil, nil)
		column.Head = newCell(0)

		mColumn := newMergeColumn(0, 0)
		mColumn.addMergeCell(0, 0)

		hmm2.FirstColumn.Prev = mColumn
		mColumn.Next = hmm2.FirstColumn
		mColumn.Prev = column
		column.Next = mColumn
		hmm2.FirstColumn = column

		hmm2.RefLength += hmm2.RefStart - hmm1.RefStart
		hmm2.RefStart = hmm1.RefStart
		hmm2.ColumnNumber++
	}

	if hmm1.RefLength < hmm2.RefLength {
		return AlignColumns(hmm2, hmm1)
	}

	if hmm1.RefLength > hmm2.RefLength {
		suffixStart := hmm2.LastColumn.RefStart + hmm2.LastColumn.Length
		column := newColumn(suffixStart, hmm1.RefLength-hmm2.RefLength, 0, nil, nil)
		column.Head = newCell(0)

		mColumn := newMergeColumn(0, 0)
		mColumn.addMergeCell(0, 0)

		hmm2.LastColumn.Next = mColumn
		mColumn.Prev = hmm2.LastColumn
		mColumn.Next = column
		column.Prev = mColumn
		hmm2.LastColumn = column

		hmm2.RefLength = hmm1.RefLength
		hmm2.ColumnNumber++
	}

	// Both hmms now span the same reference interval. Walk the chains in
	// lockstep, splitting whichever column is longer at each step, until
	// every pair of corresponding columns spans the same interval.
	column1 := hmm1.FirstColumn
	column2 := hmm2.FirstColumn
	for {
		if column1.RefStart != column2.RefStart {
			return errors.E(errors.Invalid, "rphmm.AlignColumns: columns drifted out of sync")
		}

		if column1.Length > column2.Length {
			column1.Split(column2.Length, hmm1)
		} else if column1.Length < column2.Length {
			column2.Split(column1.Length, hmm2)
		}

		if column1.Next == nil {
			if column2.Next != nil {
				return errors.E(errors.Invalid, "rphmm.AlignColumns: column counts diverged")
			}
			break
		}
		if column2.Next == nil {
			return errors.E(errors.Invalid, "rphmm.AlignColumns: column counts diverged")
		}

		column1 = column1.Next.Next
		column2 = column2.Next.Next
	}

	if hmm1.ColumnNumber != hmm2.ColumnNumber {
		return errors.E(errors.Invalid, "rphmm.AlignColumns: column numbers diverged after alignment")
	}
	return nil
}
