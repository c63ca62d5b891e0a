// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"reflect"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/rphmm/profile"
)

// Fuse concatenates two non-overlapping HMMs on the same reference
// sequence, with left preceding right, into one HMM spanning their
// combined interval (spec.md §4.4). A gap between the two is bridged with
// a single depth-0 column so the column chain stays contiguous. Both
// input HMMs are consumed; callers must not use them after Fuse returns.
func Fuse(left, right *HMM) (*HMM, error) {
	if left.ReferenceName != right.ReferenceName {
		return nil, errors.E(errors.Invalid, "rphmm.Fuse: hmms are on different reference sequences")
	}
	if OverlapOnReference(left, right) {
		return nil, errors.E(errors.Invalid, "rphmm.Fuse: hmms overlap in reference coordinates")
	}
	if left.RefStart >= right.RefStart {
		return nil, errors.E(errors.Invalid, "rphmm.Fuse: left hmm does not precede right hmm")
	}
	if !reflect.DeepEqual(left.LogSubMatrix, right.LogSubMatrix) {
		return nil, errors.E(errors.Invalid, "rphmm.Fuse: substitution matrices differ")
	}

	hmm := &HMM{
		ReferenceName: left.ReferenceName,
		RefStart:      left.RefStart,
		RefLength:     right.RefStart + right.RefLength - left.RefStart,
		ProfileSeqs:   append(append([]*profile.ProfileSequence{}, left.ProfileSeqs...), right.ProfileSeqs...),
		ColumnNumber:  left.ColumnNumber + right.ColumnNumber,
		MaxDepth:      maxInt(left.MaxDepth, right.MaxDepth),
		LogSubMatrix:  left.LogSubMatrix,
		FirstColumn:   left.FirstColumn,
		LastColumn:    right.LastColumn,
	}

	mColumn := newMergeColumn(0, 0)
	left.LastColumn.Next = mColumn
	mColumn.Prev = left.LastColumn

	gapLength := right.RefStart - left.RefStart - left.RefLength
	if gapLength < 0 {
		return nil, errors.E(errors.Invalid, "rphmm.Fuse: negative gap between hmms")
	}
	if gapLength > 0 {
		gapColumn := newColumn(left.RefStart+left.RefLength, gapLength, 0, nil, nil)
		gapColumn.Head = newCell(0)
		mColumn.Next = gapColumn
		gapColumn.Prev = mColumn

		mColumn = newMergeColumn(0, 0)
		gapColumn.Next = mColumn
		mColumn.Prev = gapColumn

		hmm.ColumnNumber++
	}

	mColumn.Next = right.FirstColumn
	right.FirstColumn.Prev = mColumn

	return hmm, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
