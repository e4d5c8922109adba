// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package bilinear describes the pairing-friendly groups the proof protocol is
// written against, and provides gnark-crypto backed implementations for BN254
// and BLS12-381.
//
// Each group has its own Go element type, so handing a G2 point to a G1
// operation does not compile.
package bilinear

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

// Group is a prime-order additive group with elements of type E.
type Group[E any] interface {
	// Generator returns the fixed generator of the group.
	Generator() E
	// Identity returns the neutral element (point at infinity).
	Identity() E
	Add(a, b E) E
	// ScalarMul returns [k]p. k must be non-negative; sign handling belongs to
	// the caller.
	ScalarMul(p E, k *big.Int) E
	// Neg returns the additive inverse of p.
	Neg(p E) E
	Equal(a, b E) bool

	// Bytes returns the compressed encoding of p.
	Bytes(p E) []byte
	// SetBytes decodes a compressed point, checking curve and subgroup
	// membership.
	SetBytes(b []byte) (E, error)
}

// Target is the multiplicative target group of a pairing.
type Target[T any] interface {
	Equal(a, b T) bool
	Bytes(t T) []byte
	SetBytes(b []byte) (T, error)
}

// Curve bundles the two source groups, the target group and the pairing
// e: G2 x G1 -> GT.
type Curve[P1, P2, T any] interface {
	// Name is the stable identifier used in serialized artifacts.
	Name() string
	ID() ecc.ID
	// ScalarField returns the order r of G1 and G2.
	ScalarField() *big.Int

	G1() Group[P1]
	G2() Group[P2]
	GT() Target[T]

	// Pair computes e(q, p).
	Pair(q P2, p P1) (T, error)
}

// Curve names accepted by the command line and stored in artifacts.
const (
	NameBN254    = "bn254"
	NameBLS12381 = "bls12-381"
)

// Names lists the supported curves, default first.
func Names() []string {
	return []string{NameBN254, NameBLS12381}
}

// CheckName reports whether name is a supported curve.
func CheckName(name string) error {
	for _, n := range Names() {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("unsupported curve %q (want one of %v)", name, Names())
}

func mustNonNegative(k *big.Int) {
	if k.Sign() < 0 {
		panic("bilinear: negative scalar passed to ScalarMul")
	}
}
