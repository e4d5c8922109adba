// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// bls12381.go
package bilinear

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// BLS12381 is the BLS12-381 curve. Points use the 48/96-byte compressed
// encoding (ZCash layout), the same bytes Plutus' BLS builtins accept.
type BLS12381 struct{}

var _ Curve[bls12381.G1Affine, bls12381.G2Affine, bls12381.GT] = BLS12381{}

func (BLS12381) Name() string          { return NameBLS12381 }
func (BLS12381) ID() ecc.ID            { return ecc.BLS12_381 }
func (BLS12381) ScalarField() *big.Int { return ecc.BLS12_381.ScalarField() }

func (BLS12381) G1() Group[bls12381.G1Affine] { return bls12381G1{} }
func (BLS12381) G2() Group[bls12381.G2Affine] { return bls12381G2{} }
func (BLS12381) GT() Target[bls12381.GT]      { return bls12381GT{} }

func (BLS12381) Pair(q bls12381.G2Affine, p bls12381.G1Affine) (bls12381.GT, error) {
	return bls12381.Pair([]bls12381.G1Affine{p}, []bls12381.G2Affine{q})
}

type bls12381G1 struct{}

func (bls12381G1) Generator() bls12381.G1Affine {
	_, _, g1, _ := bls12381.Generators()
	return g1
}

func (bls12381G1) Identity() bls12381.G1Affine { return bls12381.G1Affine{} }

func (bls12381G1) Add(a, b bls12381.G1Affine) bls12381.G1Affine {
	var ja, jb bls12381.G1Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var out bls12381.G1Affine
	out.FromJacobian(&ja)
	return out
}

func (bls12381G1) ScalarMul(p bls12381.G1Affine, k *big.Int) bls12381.G1Affine {
	mustNonNegative(k)
	var out bls12381.G1Affine
	out.ScalarMultiplication(&p, new(big.Int).Set(k))
	return out
}

func (bls12381G1) Neg(p bls12381.G1Affine) bls12381.G1Affine {
	var out bls12381.G1Affine
	out.Neg(&p)
	return out
}

func (bls12381G1) Equal(a, b bls12381.G1Affine) bool { return a.Equal(&b) }

func (bls12381G1) Bytes(p bls12381.G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bls12381G1) SetBytes(raw []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(raw) != bls12381.SizeOfG1AffineCompressed {
		return p, fmt.Errorf("G1: want %d compressed bytes, got %d", bls12381.SizeOfG1AffineCompressed, len(raw))
	}
	// SetBytes rejects points off the curve or outside the prime-order subgroup.
	if _, err := p.SetBytes(raw); err != nil {
		return p, fmt.Errorf("G1.SetBytes: %w", err)
	}
	return p, nil
}

type bls12381G2 struct{}

func (bls12381G2) Generator() bls12381.G2Affine {
	_, _, _, g2 := bls12381.Generators()
	return g2
}

func (bls12381G2) Identity() bls12381.G2Affine { return bls12381.G2Affine{} }

func (bls12381G2) Add(a, b bls12381.G2Affine) bls12381.G2Affine {
	var ja, jb bls12381.G2Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var out bls12381.G2Affine
	out.FromJacobian(&ja)
	return out
}

func (bls12381G2) ScalarMul(p bls12381.G2Affine, k *big.Int) bls12381.G2Affine {
	mustNonNegative(k)
	var out bls12381.G2Affine
	out.ScalarMultiplication(&p, new(big.Int).Set(k))
	return out
}

func (bls12381G2) Neg(p bls12381.G2Affine) bls12381.G2Affine {
	var out bls12381.G2Affine
	out.Neg(&p)
	return out
}

func (bls12381G2) Equal(a, b bls12381.G2Affine) bool { return a.Equal(&b) }

func (bls12381G2) Bytes(p bls12381.G2Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bls12381G2) SetBytes(raw []byte) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if len(raw) != bls12381.SizeOfG2AffineCompressed {
		return p, fmt.Errorf("G2: want %d compressed bytes, got %d", bls12381.SizeOfG2AffineCompressed, len(raw))
	}
	if _, err := p.SetBytes(raw); err != nil {
		return p, fmt.Errorf("G2.SetBytes: %w", err)
	}
	return p, nil
}

// GT elements travel uncompressed (576 bytes).
type bls12381GT struct{}

func (bls12381GT) Equal(a, b bls12381.GT) bool { return a.Equal(&b) }

func (bls12381GT) Bytes(t bls12381.GT) []byte {
	b := t.Bytes()
	return b[:]
}

func (bls12381GT) SetBytes(raw []byte) (bls12381.GT, error) {
	var t bls12381.GT
	if len(raw) != bls12381.SizeOfGT {
		return t, fmt.Errorf("GT: want %d bytes, got %d", bls12381.SizeOfGT, len(raw))
	}
	if err := t.SetBytes(raw); err != nil {
		return t, fmt.Errorf("GT.SetBytes: %w", err)
	}
	if !t.IsInSubGroup() {
		return t, fmt.Errorf("GT element not in the r-torsion subgroup")
	}
	return t, nil
}
