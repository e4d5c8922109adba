// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package protocol

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"

	"r1csproof/bilinear"
)

// modCurve is Z_q written additively for both source groups, with
// e(a, b) = ab mod q. It is bilinear and fast, and lets tests break Neg.
type (
	modG1 int64
	modG2 int64
	modGT int64
)

const modQ = 1_000_003

type modGroup[E ~int64] struct{ brokenNeg bool }

func (modGroup[E]) Generator() E { return 1 }
func (modGroup[E]) Identity() E  { return 0 }
func (modGroup[E]) Add(a, b E) E { return (a + b) % modQ }

func (modGroup[E]) ScalarMul(p E, k *big.Int) E {
	if k.Sign() < 0 {
		panic("negative scalar")
	}
	r := new(big.Int).Mul(big.NewInt(int64(p)), k)
	return E(r.Mod(r, big.NewInt(modQ)).Int64())
}

func (g modGroup[E]) Neg(p E) E {
	if g.brokenNeg {
		return p
	}
	return (modQ - p) % modQ
}

func (modGroup[E]) Equal(a, b E) bool            { return a == b }
func (modGroup[E]) Bytes(p E) []byte             { return big.NewInt(int64(p)).Bytes() }
func (modGroup[E]) SetBytes(b []byte) (E, error) { return E(new(big.Int).SetBytes(b).Int64()), nil }

type modTarget struct{}

func (modTarget) Equal(a, b modGT) bool { return a == b }
func (modTarget) Bytes(t modGT) []byte  { return big.NewInt(int64(t)).Bytes() }
func (modTarget) SetBytes(b []byte) (modGT, error) {
	return modGT(new(big.Int).SetBytes(b).Int64()), nil
}

type modCurve struct{ brokenNeg bool }

var _ bilinear.Curve[modG1, modG2, modGT] = modCurve{}

func (modCurve) Name() string          { return "mod" }
func (modCurve) ID() ecc.ID            { return ecc.UNKNOWN }
func (modCurve) ScalarField() *big.Int { return big.NewInt(modQ) }

func (c modCurve) G1() bilinear.Group[modG1] { return modGroup[modG1]{brokenNeg: c.brokenNeg} }
func (c modCurve) G2() bilinear.Group[modG2] { return modGroup[modG2]{brokenNeg: c.brokenNeg} }
func (modCurve) GT() bilinear.Target[modGT]  { return modTarget{} }

func (modCurve) Pair(q modG2, p modG1) (modGT, error) {
	if q < 0 || p < 0 {
		return 0, errors.New("negative element")
	}
	r := new(big.Int).Mul(big.NewInt(int64(q)), big.NewInt(int64(p)))
	return modGT(r.Mod(r, big.NewInt(modQ)).Int64()), nil
}
