// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// pipeline.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"

	"r1csproof/bilinear"
	"r1csproof/proofio"
	"r1csproof/protocol"
	"r1csproof/r1cs"
	"r1csproof/reference"
)

var errUsage = errors.New("usage")

func curveID(name string) ecc.ID {
	switch name {
	case bilinear.NameBN254:
		return bilinear.BN254{}.ID()
	case bilinear.NameBLS12381:
		return bilinear.BLS12381{}.ID()
	}
	return ecc.UNKNOWN
}

// prove runs the prover, derives the combined vectors and the pairing record,
// and writes all three artifacts into outDir.
func prove[P1, P2, T any](
	c bilinear.Curve[P1, P2, T],
	rel *r1cs.Relation,
	x, y *big.Int,
	outDir string,
	opts []protocol.Option,
) (string, error) {
	prover, err := protocol.NewProver(c, rel, r1cs.CubicCircuit{}, opts...)
	if err != nil {
		return "", err
	}
	proof, err := prover.Prove(x, y)
	if err != nil {
		return "", err
	}
	cb, err := prover.Combine(proof)
	if err != nil {
		return "", err
	}
	rec, err := prover.Pairings(cb)
	if err != nil {
		return "", err
	}
	return proofio.ExportAll(c, proof, cb, rec, outDir)
}

// crossCheck solves the cubic with gnark's own R1CS builder and solver.
func crossCheck(curve string, x, y, out *big.Int) error {
	checker, err := reference.NewChecker(curveID(curve))
	if err != nil {
		return err
	}
	return checker.Check(x, y, out)
}

func verifyDir(c *common, rel *r1cs.Relation, dir string, combined bool, stderr io.Writer) (bool, error) {
	path := filepath.Join(dir, proofio.ProofFile)
	if combined {
		path = filepath.Join(dir, proofio.CombinedFile)
	}

	curve := c.curve
	if curve == "" {
		peeked, err := proofio.PeekCurve(path)
		if err != nil {
			return false, err
		}
		curve = peeked
	} else if err := bilinear.CheckName(curve); err != nil {
		return false, fmt.Errorf("%w: %v", errUsage, err)
	}

	opts := c.options(stderr)
	switch curve {
	case bilinear.NameBN254:
		return verifyFile(bilinear.BN254{}, rel, path, combined, opts)
	default:
		return verifyFile(bilinear.BLS12381{}, rel, path, combined, opts)
	}
}

func verifyFile[P1, P2, T any](
	c bilinear.Curve[P1, P2, T],
	rel *r1cs.Relation,
	path string,
	combined bool,
	opts []protocol.Option,
) (bool, error) {
	v, err := protocol.NewVerifier(c, rel, opts...)
	if err != nil {
		return false, err
	}
	if combined {
		cb, err := proofio.LoadCombined(c, path)
		if err != nil {
			return false, err
		}
		return v.VerifyCombined(cb)
	}
	proof, err := proofio.LoadProof(c, path)
	if err != nil {
		return false, err
	}
	return v.Verify(proof)
}

func verifyRecord[P1, P2, T any](
	c bilinear.Curve[P1, P2, T],
	rel *r1cs.Relation,
	path string,
	opts []protocol.Option,
) (bool, error) {
	v, err := protocol.NewVerifier(c, rel, opts...)
	if err != nil {
		return false, err
	}
	rec, err := proofio.LoadPairings(path, c.GT())
	if err != nil {
		return false, err
	}
	return v.VerifyPairings(rec)
}

func inspect(w io.Writer, curve string, rel *r1cs.Relation, asJSON bool) error {
	if asJSON {
		out, err := json.MarshalIndent(rel, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	fmt.Fprintf(w, "curve        %s\n", curve)
	fmt.Fprintf(w, "rows         %d\n", rel.Rows())
	fmt.Fprintf(w, "width        %d\n", rel.Width())
	fmt.Fprintf(w, "output       %s\n", rel.Output)
	fmt.Fprintf(w, "fingerprint  %s\n", rel.Fingerprint())

	if !rel.Equal(r1cs.Cubic()) {
		return nil
	}
	checker, err := reference.NewChecker(curveID(curve))
	if err != nil {
		return err
	}
	internal, secret, public := checker.Variables()
	fmt.Fprintf(w, "gnark        %d constraints (public %d, secret %d, internal %d)\n",
		checker.Constraints(), public, secret, internal)
	return nil
}
