// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"reflect"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/rphmm/partition"
	"github.com/grailbio/rphmm/profile"
)

// CrossProduct builds the HMM whose state at each column is the Cartesian
// product of hmm1's and hmm2's states there (spec.md §4.6). hmm1 and hmm2
// must already be aligned (see AlignColumns): same reference interval,
// same column count, each pair of corresponding columns spanning the same
// interval. hmm1's read slots occupy the high bits of every resulting
// partition, hmm2's the low bits (partition.MergeMasks). Both inputs are
// consumed.
func CrossProduct(hmm1, hmm2 *HMM) (*HMM, error) {
	if CompareFn(hmm1, hmm2) != 0 || hmm1.ColumnNumber != hmm2.ColumnNumber {
		return nil, errors.E(errors.Invalid, "rphmm.CrossProduct: hmms are not aligned")
	}
	if !reflect.DeepEqual(hmm1.LogSubMatrix, hmm2.LogSubMatrix) {
		return nil, errors.E(errors.Invalid, "rphmm.CrossProduct: substitution matrices differ")
	}

	hmm := &HMM{
		ReferenceName: hmm1.ReferenceName,
		RefStart:      hmm1.RefStart,
		RefLength:     hmm1.RefLength,
		ProfileSeqs:   append(append([]*profile.ProfileSequence{}, hmm1.ProfileSeqs...), hmm2.ProfileSeqs...),
		ColumnNumber:  hmm1.ColumnNumber,
		LogSubMatrix:  hmm1.LogSubMatrix,
	}

	column1 := hmm1.FirstColumn
	column2 := hmm2.FirstColumn
	var mColumn *MergeColumn

	for {
		if column1.RefStart != column2.RefStart || column1.Length != column2.Length {
			return nil, errors.E(errors.Invalid, "rphmm.CrossProduct: columns are not aligned")
		}

		newDepth := column1.Depth + column2.Depth
		if newDepth > hmm.MaxDepth {
			hmm.MaxDepth = newDepth
		}

		seqHeaders := make([]*profile.ProfileSequence, 0, newDepth)
		seqHeaders = append(seqHeaders, column1.SeqHeaders...)
		seqHeaders = append(seqHeaders, column2.SeqHeaders...)

		seqs := make([][]byte, 0, newDepth)
		seqs = append(seqs, column1.Seqs...)
		seqs = append(seqs, column2.Seqs...)

		column := newColumn(column1.RefStart, column1.Length, newDepth, seqHeaders, seqs)

		if mColumn != nil {
			mColumn.Next = column
			column.Prev = mColumn
		} else {
			hmm.FirstColumn = column
		}

		tail := &column.Head
		for _, cell1 := range column1.cells() {
			for _, cell2 := range column2.cells() {
				cell := newCell(partition.MergeMasks(cell1.Partition, cell2.Partition, column1.Depth, column2.Depth))
				*tail = cell
				tail = &cell.Next
			}
		}

		mColumn1 := column1.Next
		mColumn2 := column2.Next

		if mColumn1 == nil {
			if mColumn2 != nil {
				return nil, errors.E(errors.Invalid, "rphmm.CrossProduct: column chains diverged")
			}
			hmm.LastColumn = column
			break
		}
		if mColumn2 == nil {
			return nil, errors.E(errors.Invalid, "rphmm.CrossProduct: column chains diverged")
		}

		fromMask := partition.MergeMasks(mColumn1.MaskFrom, mColumn2.MaskFrom, mColumn1.Prev.Depth, mColumn2.Prev.Depth)
		toMask := partition.MergeMasks(mColumn1.MaskTo, mColumn2.MaskTo, mColumn1.Next.Depth, mColumn2.Next.Depth)

		mColumn = newMergeColumn(fromMask, toMask)
		mColumn.Prev = column

		for _, mCell1 := range mColumn1.MergeCellsFrom {
			for _, mCell2 := range mColumn2.MergeCellsFrom {
				fromPartition := partition.MergeMasks(mCell1.FromPartition, mCell2.FromPartition, mColumn1.Prev.Depth, mColumn2.Prev.Depth)
				toPartition := partition.MergeMasks(mCell1.ToPartition, mCell2.ToPartition, mColumn1.Next.Depth, mColumn2.Next.Depth)
				mColumn.addMergeCell(fromPartition, toPartition)
			}
		}

		column1 = mColumn1.Next
		column2 = mColumn2.Next
		if column1 == nil || column2 == nil {
			return nil, errors.E(errors.Invalid, "rphmm.CrossProduct: column chains diverged")
		}
	}

	return hmm, nil
}
