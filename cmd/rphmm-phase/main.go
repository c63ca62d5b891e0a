// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.
package main

/*
rphmm-phase is a demo CLI for the read-partitioning HMM phasing engine: it
reads a fixture of aligned reads, partitions them into two haplotypes, and
prints the resulting read sets and haplotype strings.
*/

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/rphmm/phase"
)

var (
	maxCoverageDepth                = flag.Int("max-coverage-depth", 64, "Maximum simultaneous read depth to phase; excess reads are filtered then reassigned by best fit")
	posteriorProbabilityThreshold   = flag.Float64("posterior-probability-threshold", 0.4, "Cells/merge-cells below this posterior are pruned in deep columns")
	minColumnDepthToFilter          = flag.Int64("min-column-depth-to-filter", 10, "Minimum column depth before pruning is applied")
	roundsOfIterativeRefinement     = flag.Int("rounds-of-iterative-refinement", 0, "Rounds of re-deriving haplotype strings from the current read partition")
	filterLikelyHomozygousSites     = flag.Bool("filter-likely-homozygous-sites", false, "Collapse sites the input fixture has no way to mark; accepted for parity, always false without a reference-prior source")
	minSecondMostFrequentBaseFilter = flag.Int64("min-second-most-frequent-base-filter", 0, "Accepted for parity with the source parameter struct; unused without reference-prior construction")
	matchProb                      = flag.Float64("match-prob", 0.95, "Diagonal (match) probability of the flat substitution matrix built for this run")
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] fixture-path\n", os.Args[0])
	fmt.Printf("fixture-path is a newline-delimited file of readName<TAB>referenceName<TAB>refStart<TAB>bases records.\n")
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func flatLogSubMatrix(match float64) []float64 {
	mismatch := math.Log((1 - match) / 3)
	m := make([]float64, 16)
	for s := 0; s < 4; s++ {
		for d := 0; d < 4; d++ {
			if s == d {
				m[s*4+d] = math.Log(match)
			} else {
				m[s*4+d] = mismatch
			}
		}
	}
	return m
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("exactly one fixture-path argument required")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer f.Close()

	profileSeqs, err := readFixture(f)
	if err != nil {
		log.Fatalf("%v", err)
	}

	params := phase.Params{
		MaxCoverageDepth:                *maxCoverageDepth,
		PosteriorProbabilityThreshold:   *posteriorProbabilityThreshold,
		MinColumnDepthToFilter:          *minColumnDepthToFilter,
		RoundsOfIterativeRefinement:     *roundsOfIterativeRefinement,
		FilterLikelyHomozygousSites:     *filterLikelyHomozygousSites,
		MinSecondMostFrequentBaseFilter: *minSecondMostFrequentBaseFilter,
		LogSubstitutionMatrix:           flatLogSubMatrix(*matchProb),
	}

	hap1, hap2, fragment, err := phase.Run(profileSeqs, nil, params)
	if err != nil {
		log.Panicf("%v", err)
	}

	fmt.Printf("haplotype 1 reads (%d): %v\n", len(hap1), hap1)
	fmt.Printf("haplotype 2 reads (%d): %v\n", len(hap2), hap2)
	if fragment != nil {
		fmt.Printf("fragment %s:%d-%d\n", fragment.ReferenceName, fragment.RefStart, fragment.RefStart+fragment.Length)
		fmt.Printf("haplotype 1: %s\n", fragment.Haplotype1)
		fmt.Printf("haplotype 2: %s\n", fragment.Haplotype2)
	}
	log.Debug.Printf("exiting")
}
