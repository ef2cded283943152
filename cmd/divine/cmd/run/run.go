// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package run

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sixafter/divine"
	prng "github.com/sixafter/prng-chacha"
	"github.com/spf13/cobra"
)

var (
	seed0           string
	seed1           string
	baseLength      int
	corruptionBound int
	fragmentSpecs   []string
	verbose         bool
)

// NewRunCommand creates and returns the run command
func NewRunCommand() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "run",
		Short: "Run the attack against the built-in oracle simulator",
		Long: `Run the full divination protocol against the built-in oracle simulator.

The simulator and the attacker share one xorshift128+ stream seeded from
--s0/--s1 (a fresh random seed is drawn when omitted). The oracle hides
the fragments given by repeated --fragment flags, or the reference table
when none are given. On success, each recovered fragment is printed as its
table index, a colon and a comma-separated symbol list, one per line, in
table order.`,
		RunE: runDivine, // Use RunE to handle errors gracefully
	}

	// Define flags for the run command
	cmd.Flags().StringVar(&seed0, "s0", "", "First state word of the shared generator (decimal or 0x-prefixed; random if omitted)")
	cmd.Flags().StringVar(&seed1, "s1", "", "Second state word of the shared generator (decimal or 0x-prefixed; random if omitted)")
	cmd.Flags().IntVarP(&baseLength, "base-length", "b", 100, "Length of the oracle's base sequence")
	cmd.Flags().IntVarP(&corruptionBound, "corruption-bound", "c", 4, "Exclusive upper bound on corruption symbols per sample")
	cmd.Flags().StringArrayVarP(&fragmentSpecs, "fragment", "f", nil, "Hidden fragment as a comma-separated symbol list; repeatable")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

// runDivine is the main execution function for the run command
func runDivine(cmd *cobra.Command, args []string) error {
	if baseLength < 2 {
		return writeString(cmd, "--base-length must be at least 2")
	}

	if corruptionBound < 2 {
		return writeString(cmd, "--corruption-bound must be at least 2 for fragment lengths to be recoverable")
	}

	s0, err := parseSeed(seed0)
	if err != nil {
		return writeError(cmd, "invalid --s0", err)
	}

	s1, err := parseSeed(seed1)
	if err != nil {
		return writeError(cmd, "invalid --s1", err)
	}

	fragments, err := parseFragments(fragmentSpecs, baseLength)
	if err != nil {
		return writeError(cmd, "invalid --fragment", err)
	}

	base := make([]uint16, baseLength)
	for i := range base {
		base[i] = uint16(i)
	}

	gen := divine.NewSource(s0, s1)

	var draws uint64
	random := func() float64 {
		draws++
		return gen.Float64()
	}

	sim := &divine.Simulator{
		Random:          random,
		Base:            base,
		CorruptionBound: corruptionBound,
		Fragments:       fragments,
	}

	var oracleCalls uint64
	target := func() []uint16 {
		oracleCalls++
		return sim.Sample()
	}

	start := time.Now()

	recovered, err := divine.Divine(random, target)
	if err != nil {
		return writeError(cmd, "divination failed", err)
	}

	duration := time.Since(start)

	// Use a buffered writer for efficient writing
	writer := bufio.NewWriter(cmd.OutOrStdout())
	for i, fragment := range recovered {
		if _, err = writer.WriteString(fmt.Sprintf("%d: %s\n", i, formatFragment(fragment))); err != nil {
			return writeError(cmd, "error writing fragment", err)
		}
	}

	if err = writer.Flush(); err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStderr(), "Error flushing writer: %v\n", err)
	}

	if verbose {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "")
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Seed s0.................: %#x\n", s0)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Seed s1.................: %#x\n", s1)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Corruption bound........: %d\n", corruptionBound)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Base length.............: %d\n", baseLength)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Fragments recovered.....: %d\n", len(recovered))
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Oracle calls............: %s\n", humanize.Comma(int64(oracleCalls)))
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Random draws consumed...: %s\n", humanize.Comma(int64(draws)))
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Total time taken........: %s\n", duration)
	}

	return nil
}

// parseSeed parses a state word given as a decimal or 0x-prefixed flag
// value. An empty value draws a fresh random word.
func parseSeed(value string) (uint64, error) {
	if value == "" {
		var buf [8]byte
		if _, err := prng.Reader.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("drawing random seed: %w", err)
		}

		return binary.LittleEndian.Uint64(buf[:]), nil
	}

	seed, err := strconv.ParseUint(value, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", value, err)
	}

	return seed, nil
}

// parseFragments parses the repeated --fragment values. With none given,
// the reference table of the original driver is used.
func parseFragments(specs []string, baseLength int) ([][]uint16, error) {
	if len(specs) == 0 {
		return defaultFragments(), nil
	}

	fragments := make([][]uint16, 0, len(specs))
	for _, spec := range specs {
		fields := strings.Split(spec, ",")
		fragment := make([]uint16, 0, len(fields))
		for _, field := range fields {
			sym, err := strconv.ParseUint(strings.TrimSpace(field), 0, 16)
			if err != nil {
				return nil, fmt.Errorf("parsing symbol %q in %q: %w", field, spec, err)
			}
			fragment = append(fragment, uint16(sym))
		}

		if len(fragment) == 0 || len(fragment) >= baseLength {
			return nil, fmt.Errorf("fragment %q must have between 1 and %d symbols", spec, baseLength-1)
		}

		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

// defaultFragments is the fragment table of the reference driver.
func defaultFragments() [][]uint16 {
	return [][]uint16{
		{100, 101, 102, 103, 104, 105, 106, 107},
		{500, 501, 502, 503, 504, 505, 506},
		{500, 501, 502, 503, 504},
		{500, 501, 502, 503, 504, 505, 506},
		{102, 103, 104, 105, 106, 107},
		{400},
		{887, 400},
	}
}

// formatFragment renders a fragment as a comma-separated symbol list.
func formatFragment(fragment []uint16) string {
	fields := make([]string, len(fragment))
	for i, sym := range fragment {
		fields[i] = strconv.FormatUint(uint64(sym), 10)
	}

	return strings.Join(fields, ",")
}

func writeError(cmd *cobra.Command, msg string, err error) error {
	// Flush stdout if necessary
	if w, ok := cmd.OutOrStdout().(*bufio.Writer); ok {
		_ = w.Flush()
	}

	_, _ = fmt.Fprintf(cmd.OutOrStderr(), "%s: %v", msg, err)
	return fmt.Errorf("%s: %w", msg, err)
}

func writeString(cmd *cobra.Command, msg string) error {
	// Flush stdout if necessary
	if w, ok := cmd.OutOrStdout().(*bufio.Writer); ok {
		_ = w.Flush()
	}

	_, _ = fmt.Fprintf(cmd.OutOrStderr(), "%s", msg)
	return fmt.Errorf("%s", msg)
}
