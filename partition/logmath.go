// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package partition

import "math"

// LogZero represents log(0) in the log-domain arithmetic used throughout
// the forward/backward/emission code.
var LogZero = math.Inf(-1)

// LogOne represents log(1).
const LogOne = 0.0

// LogAdd returns log(exp(a) + exp(b)) computed in a numerically stable way,
// short-circuiting on log-zero inputs so that -Inf never propagates into a
// NaN via -Inf - (-Inf).
func LogAdd(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a > b {
		return a + math.Log1p(math.Exp(b-a))
	}
	return b + math.Log1p(math.Exp(a-b))
}
