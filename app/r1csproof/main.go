// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	"r1csproof/bilinear"
	"r1csproof/protocol"
	"r1csproof/r1cs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

const usageText = `usage: r1csproof <command> [flags]

commands:
  prove     execute the circuit on -x/-y and write proof artifacts
  verify    verify proof.json (or combined.json) from a directory
  pairings  re-check a two-line pairing record
  inspect   print the relation, its fingerprint and gnark's constraint count`

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usageText)
		return 2
	}

	switch args[0] {
	case "prove":
		return runProve(args[1:], stdout, stderr)
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "pairings":
		return runPairings(args[1:], stdout, stderr)
	case "inspect":
		return runInspect(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprintln(stdout, usageText)
		return 0
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n", args[0])
		fmt.Fprintln(stderr, usageText)
		return 2
	}
}

// common holds the flags shared by every subcommand.
type common struct {
	curve    string
	relation string
	workers  int
	verbose  bool
}

func (c *common) register(fs *flag.FlagSet, defaultCurve string) {
	fs.StringVar(&c.curve, "curve", defaultCurve, "pairing curve: bn254 or bls12-381")
	fs.StringVar(&c.relation, "relation", "", "relation JSON file (default: built-in x^3 + 4x^2 + y^2 = 67)")
	fs.IntVar(&c.workers, "workers", 0, "max concurrent rows/pairings (0 = GOMAXPROCS)")
	fs.BoolVar(&c.verbose, "v", false, "debug logging on stderr")
}

func (c *common) loadRelation() (*r1cs.Relation, error) {
	if c.relation == "" {
		return r1cs.Cubic(), nil
	}
	return r1cs.LoadRelation(c.relation)
}

// options builds the logger and protocol options. gnark's shared logger is
// pointed at the same sink so compiler output lands on stderr too.
func (c *common) options(stderr io.Writer) []protocol.Option {
	level := zerolog.WarnLevel
	if c.verbose {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()
	logger.Set(l)

	opts := []protocol.Option{protocol.WithLogger(l)}
	if c.workers > 0 {
		opts = append(opts, protocol.WithWorkers(c.workers))
	}
	return opts
}

func parseInt(name, s string) (*big.Int, error) {
	v := new(big.Int)
	if _, ok := v.SetString(s, 0); !ok {
		return nil, fmt.Errorf("could not parse -%s (must be an integer; decimal or 0x.. hex)", name)
	}
	return v, nil
}

func runProve(args []string, stdout, stderr io.Writer) int {
	proveCmd := flag.NewFlagSet("prove", flag.ContinueOnError)
	proveCmd.SetOutput(stderr)

	var c common
	var xStr, yStr, outDir string
	var crosscheck bool
	c.register(proveCmd, bilinear.NameBN254)
	proveCmd.StringVar(&xStr, "x", "", "secret integer x (decimal by default; or 0x... hex; may be negative)")
	proveCmd.StringVar(&yStr, "y", "", "secret integer y (decimal by default; or 0x... hex; may be negative)")
	proveCmd.StringVar(&outDir, "out", "out", "output directory for proof.json / combined.json / pairings.txt")
	proveCmd.BoolVar(&crosscheck, "crosscheck", false, "also solve the relation with gnark's R1CS solver before proving")
	if err := proveCmd.Parse(args); err != nil {
		return 2
	}

	missing := false
	if xStr == "" {
		fmt.Fprintln(stderr, "error: -x is required")
		missing = true
	}
	if yStr == "" {
		fmt.Fprintln(stderr, "error: -y is required")
		missing = true
	}
	if missing {
		proveCmd.Usage()
		return 2
	}

	x, err := parseInt("x", xStr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	y, err := parseInt("y", yStr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	if err := bilinear.CheckName(c.curve); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	rel, err := c.loadRelation()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	opts := c.options(stderr)
	if crosscheck {
		if !rel.Equal(r1cs.Cubic()) {
			fmt.Fprintln(stderr, "error: -crosscheck only supports the built-in relation")
			return 2
		}
		if err := crossCheck(c.curve, x, y, rel.Output); err != nil {
			fmt.Fprintln(stderr, "FAIL:", err)
			return 1
		}
	}

	var digest string
	switch c.curve {
	case bilinear.NameBN254:
		digest, err = prove(bilinear.BN254{}, rel, x, y, outDir, opts)
	case bilinear.NameBLS12381:
		digest, err = prove(bilinear.BLS12381{}, rel, x, y, outDir, opts)
	}
	if err != nil {
		fmt.Fprintln(stderr, "FAIL:", err)
		return 1
	}

	fmt.Fprintf(stdout, "SUCCESS: proof written to %s (curve %s, digest %s)\n", outDir, c.curve, digest)
	return 0
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	verifyCmd := flag.NewFlagSet("verify", flag.ContinueOnError)
	verifyCmd.SetOutput(stderr)

	var c common
	var inDir string
	var combined bool
	c.register(verifyCmd, "")
	verifyCmd.StringVar(&inDir, "in", "out", "directory holding proof.json / combined.json")
	verifyCmd.BoolVar(&combined, "combined", false, "verify combined.json (pairing check only) instead of proof.json")
	if err := verifyCmd.Parse(args); err != nil {
		return 2
	}

	rel, err := c.loadRelation()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	ok, err := verifyDir(&c, rel, inDir, combined, stderr)
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, "error:", err)
			return 2
		}
		fmt.Fprintln(stderr, "FAIL:", err)
		return 1
	}
	return report(stdout, ok)
}

func runPairings(args []string, stdout, stderr io.Writer) int {
	pairingsCmd := flag.NewFlagSet("pairings", flag.ContinueOnError)
	pairingsCmd.SetOutput(stderr)

	var c common
	var in string
	c.register(pairingsCmd, bilinear.NameBN254)
	pairingsCmd.StringVar(&in, "in", "", "pairing record (two lines: lhs ..., rhs ...)")
	if err := pairingsCmd.Parse(args); err != nil {
		return 2
	}
	if in == "" {
		fmt.Fprintln(stderr, "error: -in is required")
		pairingsCmd.Usage()
		return 2
	}
	if err := bilinear.CheckName(c.curve); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	rel, err := c.loadRelation()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	opts := c.options(stderr)
	var ok bool
	switch c.curve {
	case bilinear.NameBN254:
		ok, err = verifyRecord(bilinear.BN254{}, rel, in, opts)
	case bilinear.NameBLS12381:
		ok, err = verifyRecord(bilinear.BLS12381{}, rel, in, opts)
	}
	if err != nil {
		fmt.Fprintln(stderr, "FAIL:", err)
		return 1
	}
	return report(stdout, ok)
}

func runInspect(args []string, stdout, stderr io.Writer) int {
	inspectCmd := flag.NewFlagSet("inspect", flag.ContinueOnError)
	inspectCmd.SetOutput(stderr)

	var c common
	var asJSON bool
	c.register(inspectCmd, bilinear.NameBN254)
	inspectCmd.BoolVar(&asJSON, "json", false, "print the relation as JSON (loadable with -relation)")
	if err := inspectCmd.Parse(args); err != nil {
		return 2
	}
	if err := bilinear.CheckName(c.curve); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	rel, err := c.loadRelation()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	c.options(stderr)

	if err := inspect(stdout, c.curve, rel, asJSON); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func report(stdout io.Writer, ok bool) int {
	if ok {
		fmt.Fprintln(stdout, "VALID")
		return 0
	}
	fmt.Fprintln(stdout, "INVALID")
	return 1
}
