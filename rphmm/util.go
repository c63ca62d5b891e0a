// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rphmm

import "math"

func expFloat(x float64) float64 {
	return math.Exp(x)
}

// clampProb clamps a probability to [0,1] to absorb floating point
// rounding error in forward+backward-normalizer arithmetic (spec.md §9).
func clampProb(p float64) float64 {
	if p > 1.0 {
		return 1.0
	}
	if p < 0.0 {
		return 0.0
	}
	return p
}
