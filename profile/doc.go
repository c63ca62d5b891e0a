// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package profile holds the read-side input types the rphmm core consumes:
// per-read probability profiles over reference positions, the 4x4
// substitution-matrix parameter, and a per-read likelihood scorer used when
// reassigning coverage-filtered reads to a haplotype.
package profile
