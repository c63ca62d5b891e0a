// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"github.com/grailbio/rphmm/partition"
	"github.com/grailbio/rphmm/profile"
)

// Split divides a column into two at offset firstHalfLength, inserting an
// identity MergeColumn between the halves whose masks accept every read
// slot and whose merge cells copy each existing partition onto itself
// (spec.md §4.3). Used by AlignColumns to bring two HMMs' column
// boundaries into agreement. col is truncated to firstHalfLength in place;
// the remainder becomes the span of the new right-hand column, which is
// linked in after the MergeColumn (and becomes hmm.LastColumn when col was
// the last column).
func (col *Column) Split(firstHalfLength int64, hmm *HMM) {
	seqHeaders := make([]*profile.ProfileSequence, col.Depth)
	copy(seqHeaders, col.SeqHeaders)

	rSeqs := make([][]byte, col.Depth)
	offset := int(firstHalfLength) * partition.NumChannels
	for i := range col.Seqs {
		rSeqs[i] = col.Seqs[i][offset:]
	}

	rColumn := newColumn(col.RefStart+firstHalfLength, col.Length-firstHalfLength, col.Depth, seqHeaders, rSeqs)
	col.Length = firstHalfLength

	accept := partition.AcceptMask(col.Depth)
	mColumn := newMergeColumn(accept, accept)

	rTail := &rColumn.Head
	for cell := col.Head; cell != nil; cell = cell.Next {
		newRCell := newCell(cell.Partition)
		*rTail = newRCell
		rTail = &newRCell.Next
		mColumn.addMergeCell(cell.Partition, cell.Partition)
	}

	rColumn.Prev = mColumn
	mColumn.Next = rColumn

	if col.Next == nil {
		hmm.LastColumn = rColumn
	} else {
		col.Next.Prev = rColumn
		rColumn.Next = col.Next
	}
	col.Next = mColumn
	mColumn.Prev = col

	hmm.ColumnNumber++
}
