// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/rphmm/biosimd"
	"github.com/grailbio/rphmm/profile"
)

// readFixture parses the demo's newline-delimited read format: one read
// per line, tab-separated as readName, referenceName, refStart, bases.
// biosimd.IsNonACGTPresent flags lines worth a debug note, then
// biosimd.CleanASCIISeqInplace upper-cases and folds anything outside
// ACGT to 'N' before the bases are recorded as full-confidence channel
// hits. There is no BAM/FASTA ingestion in this engine (non-goal); this
// format exists solely so the demo CLI has a profile-sequence source to
// read from.
func readFixture(r io.Reader) ([]*profile.ProfileSequence, error) {
	var seqs []*profile.ProfileSequence
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, errors.E("rphmm-phase: malformed fixture line", lineNum,
				"want 4 tab-separated fields (readName, referenceName, refStart, bases)")
		}
		readName, referenceName := fields[0], fields[1]
		bases := []byte(fields[3])
		refStart, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, errors.E(err, "rphmm-phase: malformed refStart on line", lineNum)
		}

		if biosimd.IsNonACGTPresent(bases) {
			log.Debug.Printf("rphmm-phase: line %d has lowercase or non-ACGT bases, normalizing", lineNum)
		}
		biosimd.CleanASCIISeqInplace(bases)
		probs := make([]byte, len(bases)*profile.NumChannels)
		for i, base := range bases {
			probs[i*profile.NumChannels+baseChannel(base)] = 255
		}

		seq, err := profile.NewProfileSequence(readName, referenceName, refStart, int64(len(bases)), probs)
		if err != nil {
			return nil, errors.E(err, "rphmm-phase: invalid read on line", lineNum)
		}
		seqs = append(seqs, seq)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "rphmm-phase: reading fixture")
	}
	return seqs, nil
}

func baseChannel(b byte) int {
	switch b {
	case 'A':
		return profile.ChannelA
	case 'C':
		return profile.ChannelC
	case 'G':
		return profile.ChannelG
	case 'T':
		return profile.ChannelT
	default:
		return profile.ChannelOther
	}
}
