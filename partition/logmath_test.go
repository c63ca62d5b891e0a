// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package partition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogAddIdentities(t *testing.T) {
	assert.Equal(t, 5.0, LogAdd(LogZero, 5.0))
	assert.Equal(t, 5.0, LogAdd(5.0, LogZero))
	assert.True(t, math.IsInf(LogAdd(LogZero, LogZero), -1))
}

func TestLogAddMatchesNaive(t *testing.T) {
	a, b := -2.3, -7.1
	got := LogAdd(a, b)
	want := math.Log(math.Exp(a) + math.Exp(b))
	assert.InDelta(t, want, got, 1e-9)
}

func TestLogAddCommutative(t *testing.T) {
	a, b := -1.5, -100.2
	assert.InDelta(t, LogAdd(a, b), LogAdd(b, a), 1e-12)
}
