// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package partition implements the bit-packed read-partition representation
// and emission kernel at the core of the rphmm engine: a partition is a
// bitmask of up to MaxDepth reads, bit i set meaning "read i belongs to
// haplotype 1", and the column emission probability is computed by
// bit-slicing each read's per-channel probability byte across MaxDepth-wide
// words so that a single popcount amortizes the per-cell cost across every
// cell in a column.
package partition
