// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package bilinear

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// BN254 is the BN254 (alt_bn128) curve.
type BN254 struct{}

var _ Curve[bn254.G1Affine, bn254.G2Affine, bn254.GT] = BN254{}

func (BN254) Name() string          { return NameBN254 }
func (BN254) ID() ecc.ID            { return ecc.BN254 }
func (BN254) ScalarField() *big.Int { return ecc.BN254.ScalarField() }

func (BN254) G1() Group[bn254.G1Affine] { return bn254G1{} }
func (BN254) G2() Group[bn254.G2Affine] { return bn254G2{} }
func (BN254) GT() Target[bn254.GT]      { return bn254GT{} }

func (BN254) Pair(q bn254.G2Affine, p bn254.G1Affine) (bn254.GT, error) {
	return bn254.Pair([]bn254.G1Affine{p}, []bn254.G2Affine{q})
}

type bn254G1 struct{}

func (bn254G1) Generator() bn254.G1Affine {
	_, _, g1, _ := bn254.Generators()
	return g1
}

// Identity is the zero value: gnark-crypto encodes infinity as (0, 0) in affine form.
func (bn254G1) Identity() bn254.G1Affine { return bn254.G1Affine{} }

func (bn254G1) Add(a, b bn254.G1Affine) bn254.G1Affine {
	var ja, jb bn254.G1Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var out bn254.G1Affine
	out.FromJacobian(&ja)
	return out
}

func (bn254G1) ScalarMul(p bn254.G1Affine, k *big.Int) bn254.G1Affine {
	mustNonNegative(k)
	var out bn254.G1Affine
	out.ScalarMultiplication(&p, new(big.Int).Set(k))
	return out
}

func (bn254G1) Neg(p bn254.G1Affine) bn254.G1Affine {
	var out bn254.G1Affine
	out.Neg(&p)
	return out
}

func (bn254G1) Equal(a, b bn254.G1Affine) bool { return a.Equal(&b) }

func (bn254G1) Bytes(p bn254.G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bn254G1) SetBytes(raw []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(raw) != bn254.SizeOfG1AffineCompressed {
		return p, fmt.Errorf("G1: want %d compressed bytes, got %d", bn254.SizeOfG1AffineCompressed, len(raw))
	}
	if _, err := p.SetBytes(raw); err != nil {
		return p, fmt.Errorf("G1.SetBytes: %w", err)
	}
	return p, nil
}

type bn254G2 struct{}

func (bn254G2) Generator() bn254.G2Affine {
	_, _, _, g2 := bn254.Generators()
	return g2
}

func (bn254G2) Identity() bn254.G2Affine { return bn254.G2Affine{} }

func (bn254G2) Add(a, b bn254.G2Affine) bn254.G2Affine {
	var ja, jb bn254.G2Jac
	ja.FromAffine(&a)
	jb.FromAffine(&b)
	ja.AddAssign(&jb)
	var out bn254.G2Affine
	out.FromJacobian(&ja)
	return out
}

func (bn254G2) ScalarMul(p bn254.G2Affine, k *big.Int) bn254.G2Affine {
	mustNonNegative(k)
	var out bn254.G2Affine
	out.ScalarMultiplication(&p, new(big.Int).Set(k))
	return out
}

func (bn254G2) Neg(p bn254.G2Affine) bn254.G2Affine {
	var out bn254.G2Affine
	out.Neg(&p)
	return out
}

func (bn254G2) Equal(a, b bn254.G2Affine) bool { return a.Equal(&b) }

func (bn254G2) Bytes(p bn254.G2Affine) []byte {
	b := p.Bytes()
	return b[:]
}

func (bn254G2) SetBytes(raw []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if len(raw) != bn254.SizeOfG2AffineCompressed {
		return p, fmt.Errorf("G2: want %d compressed bytes, got %d", bn254.SizeOfG2AffineCompressed, len(raw))
	}
	if _, err := p.SetBytes(raw); err != nil {
		return p, fmt.Errorf("G2.SetBytes: %w", err)
	}
	return p, nil
}

type bn254GT struct{}

func (bn254GT) Equal(a, b bn254.GT) bool { return a.Equal(&b) }

func (bn254GT) Bytes(t bn254.GT) []byte {
	b := t.Bytes()
	return b[:]
}

func (bn254GT) SetBytes(raw []byte) (bn254.GT, error) {
	var t bn254.GT
	if len(raw) != bn254.SizeOfGT {
		return t, fmt.Errorf("GT: want %d bytes, got %d", bn254.SizeOfGT, len(raw))
	}
	if err := t.SetBytes(raw); err != nil {
		return t, fmt.Errorf("GT.SetBytes: %w", err)
	}
	if !t.IsInSubGroup() {
		return t, fmt.Errorf("GT element not in the r-torsion subgroup")
	}
	return t, nil
}
