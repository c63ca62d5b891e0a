// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package tiling builds and merges "tiling paths" of rphmm.HMMs: maximal
// chains of HMMs that do not overlap in reference coordinates. Merging two
// tiling paths fuses and aligns the HMMs in their overlapping connected
// components, producing a single tiling path that covers the union of
// both inputs.
package tiling
