// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package rphmm implements the read-partitioning HMM: the column/
// merge-column graph, column alignment, cross-product construction, and
// forward/backward/prune/traceback inference described in spec.md §3-4.
//
// An HMM owns a doubly-linked chain alternating Columns and MergeColumns.
// Fuse and CrossProduct consume their input HMMs -- ownership of the column
// graph transfers to the returned HMM, and callers must not use the inputs
// afterward. AlignColumns returns no HMM; it mutates both inputs in place.
package rphmm
