// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/grailbio/rphmm/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFixtureParsesRecords(t *testing.T) {
	input := "# comment\n" +
		"r1\tchr1\t0\tACGT\n" +
		"\n" +
		"r2\tchr1\t2\tACGN\n"

	seqs, err := readFixture(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, seqs, 2)

	assert.Equal(t, "r1", seqs[0].ReadName)
	assert.Equal(t, "chr1", seqs[0].ReferenceName)
	assert.Equal(t, int64(0), seqs[0].RefStart)
	assert.Equal(t, int64(4), seqs[0].Length)
	assert.Equal(t, byte(255), seqs[0].ProbByte(0, profile.ChannelA))
	assert.Equal(t, byte(255), seqs[0].ProbByte(3, profile.ChannelT))

	assert.Equal(t, int64(2), seqs[1].RefStart)
	assert.Equal(t, byte(255), seqs[1].ProbByte(3, profile.ChannelOther))
}

func TestReadFixtureNormalizesLowercaseBases(t *testing.T) {
	seqs, err := readFixture(strings.NewReader("r1\tchr1\t0\tacgn\n"))
	require.NoError(t, err)
	require.Len(t, seqs, 1)

	assert.Equal(t, byte(255), seqs[0].ProbByte(0, profile.ChannelA))
	assert.Equal(t, byte(255), seqs[0].ProbByte(1, profile.ChannelC))
	assert.Equal(t, byte(255), seqs[0].ProbByte(2, profile.ChannelG))
	assert.Equal(t, byte(255), seqs[0].ProbByte(3, profile.ChannelOther))
}

func TestReadFixtureRejectsMalformedLines(t *testing.T) {
	_, err := readFixture(strings.NewReader("r1\tchr1\tnotanumber\tACGT\n"))
	assert.Error(t, err)

	_, err = readFixture(strings.NewReader("r1\tchr1\t0\n"))
	assert.Error(t, err)
}
