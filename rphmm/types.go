// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import (
	"github.com/grailbio/rphmm/partition"
	"github.com/grailbio/rphmm/profile"
)

// Cell is a candidate bipartition of the reads active in a Column: a
// linked chain within the column, one node per partition currently alive
// there (spec.md §3).
type Cell struct {
	Partition       partition.Partition
	ForwardLogProb  float64
	BackwardLogProb float64
	Next            *Cell
}

func newCell(p partition.Partition) *Cell {
	return &Cell{Partition: p}
}

// PosteriorProb returns the posterior probability of visiting this cell,
// given that Forward and Backward have already been run on the owning
// HMM. Clamped to [0,1] to absorb floating point rounding (spec.md §9).
func (c *Cell) PosteriorProb(column *Column) float64 {
	p := expFloat(c.ForwardLogProb + c.BackwardLogProb - (column.ForwardLogProb + column.BackwardLogProb))
	return clampProb(p)
}

// Column is a maximal reference interval over which the same set of reads
// is active (spec.md §3). Its cells enumerate the partitions currently
// alive there.
type Column struct {
	RefStart int64
	Length   int64
	Depth    int

	SeqHeaders []*profile.ProfileSequence
	// Seqs[i] is the column-local re-slice of SeqHeaders[i].Probs, starting
	// at this column's reference offset into that read's profile.
	Seqs [][]byte

	Head *Cell

	ForwardLogProb  float64
	BackwardLogProb float64

	Prev *MergeColumn
	Next *MergeColumn
}

func newColumn(refStart, length int64, depth int, seqHeaders []*profile.ProfileSequence, seqs [][]byte) *Column {
	return &Column{
		RefStart:   refStart,
		Length:     length,
		Depth:      depth,
		SeqHeaders: seqHeaders,
		Seqs:       seqs,
	}
}

// probAt adapts a Column into the partition.ProbAt shape the emission
// kernel expects, for a given column-relative position.
func (col *Column) probAt(pos int) partition.ProbAt {
	return func(readIdx, channel int) byte {
		return col.Seqs[readIdx][pos*partition.NumChannels+channel]
	}
}

// bitPlanes builds the per-position bit-sliced popcount table for this
// column (spec.md §4.2), freed by the caller once the column's forward or
// backward pass has visited every cell.
func (col *Column) bitPlanes() []partition.BitPlanes {
	planes := make([]partition.BitPlanes, col.Length)
	for pos := 0; pos < int(col.Length); pos++ {
		planes[pos] = partition.BuildBitPlanes(col.Depth, col.probAt(pos))
	}
	return planes
}

// cells returns the column's cells as a slice, for callers that want
// indexable access instead of walking the linked chain by hand.
func (col *Column) cells() []*Cell {
	var out []*Cell
	for c := col.Head; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// MergeColumn sits between two Columns and describes which read slots
// carry across the boundary (spec.md §3).
type MergeColumn struct {
	MaskFrom partition.Partition
	MaskTo   partition.Partition

	MergeCellsFrom map[partition.Partition]*MergeCell
	MergeCellsTo   map[partition.Partition]*MergeCell

	Prev *Column
	Next *Column
}

func newMergeColumn(maskFrom, maskTo partition.Partition) *MergeColumn {
	return &MergeColumn{
		MaskFrom:       maskFrom,
		MaskTo:         maskTo,
		MergeCellsFrom: make(map[partition.Partition]*MergeCell),
		MergeCellsTo:   make(map[partition.Partition]*MergeCell),
	}
}

// addMergeCell constructs a MergeCell and registers it in both of the
// merge column's lookup maps.
func (mc *MergeColumn) addMergeCell(fromPartition, toPartition partition.Partition) *MergeCell {
	cell := &MergeCell{FromPartition: fromPartition, ToPartition: toPartition}
	mc.MergeCellsFrom[fromPartition] = cell
	mc.MergeCellsTo[toPartition] = cell
	return cell
}

// NextMergeCell returns the merge cell that cell feeds into.
func (mc *MergeColumn) NextMergeCell(cell *Cell) *MergeCell {
	return mc.MergeCellsFrom[partition.MaskPartition(cell.Partition, mc.MaskFrom)]
}

// PreviousMergeCell returns the merge cell that cell feeds from.
func (mc *MergeColumn) PreviousMergeCell(cell *Cell) *MergeCell {
	return mc.MergeCellsTo[partition.MaskPartition(cell.Partition, mc.MaskTo)]
}

// Depth returns the number of cells in the merge column.
func (mc *MergeColumn) Depth() int {
	return len(mc.MergeCellsFrom)
}

// MergeCell is the transition structure between two adjacent Cells across
// a MergeColumn boundary (spec.md §3).
type MergeCell struct {
	FromPartition   partition.Partition
	ToPartition     partition.Partition
	ForwardLogProb  float64
	BackwardLogProb float64
}

// PosteriorProb returns the posterior probability of visiting this merge
// cell, given that Forward and Backward have already run. mColumn.Next is
// the column that normalizes this merge cell's probability.
func (mc *MergeCell) PosteriorProb(mColumn *MergeColumn) float64 {
	next := mColumn.Next
	p := expFloat(mc.ForwardLogProb + mc.BackwardLogProb - (next.ForwardLogProb + next.BackwardLogProb))
	return clampProb(p)
}

// HMM is a read-partitioning hidden Markov model: a chain of Columns and
// MergeColumns whose hidden state at each reference column is a
// bipartition of the reads covering that column (spec.md §3).
type HMM struct {
	ReferenceName string
	RefStart      int64
	RefLength     int64

	ProfileSeqs []*profile.ProfileSequence

	FirstColumn  *Column
	LastColumn   *Column
	ColumnNumber int64
	MaxDepth     int

	LogSubMatrix []float64

	ForwardLogProb  float64
	BackwardLogProb float64
}

// NewSingleReadHMM wraps one ProfileSequence into a one-column HMM with
// the trivial two-cell state set {partition=1, partition=0} (spec.md §2
// item 2).
func NewSingleReadHMM(pSeq *profile.ProfileSequence, logSubMatrix []float64) *HMM {
	hmm := &HMM{
		ReferenceName: pSeq.ReferenceName,
		RefStart:      pSeq.RefStart,
		RefLength:     pSeq.Length,
		ProfileSeqs:   []*profile.ProfileSequence{pSeq},
		ColumnNumber:  1,
		MaxDepth:      1,
		LogSubMatrix:  logSubMatrix,
	}

	column := newColumn(hmm.RefStart, hmm.RefLength, 1,
		[]*profile.ProfileSequence{pSeq}, [][]byte{pSeq.Probs})
	hmm.FirstColumn = column
	hmm.LastColumn = column

	one := newCell(1)
	zero := newCell(0)
	one.Next = zero
	column.Head = one

	return hmm
}

// OverlapOnReference reports whether hmm1 and hmm2 are on the same
// reference sequence and their coordinate intervals overlap.
func OverlapOnReference(hmm1, hmm2 *HMM) bool {
	if hmm1.ReferenceName != hmm2.ReferenceName {
		return false
	}
	if hmm1.RefStart > hmm2.RefStart {
		return OverlapOnReference(hmm2, hmm1)
	}
	return hmm1.RefStart+hmm1.RefLength > hmm2.RefStart
}

// CompareFn orders two HMMs by reference coordinate: reference name, then
// start, then length (spec.md §4.10's stRPHmm_cmpFn).
func CompareFn(hmm1, hmm2 *HMM) int {
	if hmm1.ReferenceName != hmm2.ReferenceName {
		if hmm1.ReferenceName < hmm2.ReferenceName {
			return -1
		}
		return 1
	}
	if hmm1.RefStart != hmm2.RefStart {
		if hmm1.RefStart < hmm2.RefStart {
			return -1
		}
		return 1
	}
	if hmm1.RefLength != hmm2.RefLength {
		if hmm1.RefLength < hmm2.RefLength {
			return -1
		}
		return 1
	}
	return 0
}
