// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package protocol

import (
	"fmt"
	"math/big"

	"r1csproof/bilinear"
	"r1csproof/r1cs"
)

// SignedScalarMul returns [k]p for any integer k.
//
// For k >= 0 this is plain scalar multiplication. For k < 0 the point [|k|]p
// is computed and reflected to its additive inverse, and the result must add
// back to the identity; otherwise ErrGroupInversion is returned.
func SignedScalarMul[E any](g bilinear.Group[E], p E, k *big.Int) (E, error) {
	if k.Sign() >= 0 {
		return g.ScalarMul(p, k), nil
	}
	pos := g.ScalarMul(p, new(big.Int).Neg(k))
	neg := g.Neg(pos)
	if !g.Equal(g.Add(pos, neg), g.Identity()) {
		var zero E
		return zero, fmt.Errorf("%w: reflection of [%s]P does not cancel", ErrGroupInversion, k)
	}
	return neg, nil
}

// Encode lifts k into g as [k]generator.
func Encode[E any](g bilinear.Group[E], k *big.Int) (E, error) {
	return SignedScalarMul(g, g.Generator(), k)
}

// EncodeVector lifts every witness entry into g. Entries are independent and
// computed on up to workers goroutines.
func EncodeVector[E any](g bilinear.Group[E], w r1cs.Witness, workers int) ([]E, error) {
	out := make([]E, len(w))
	err := forEach(len(w), workers, func(i int) error {
		e, err := Encode(g, w[i])
		if err != nil {
			return fmt.Errorf("witness[%d]: %w", i, err)
		}
		out[i] = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EncodedWitness is a witness lifted into both source groups. It is created
// once per proof and never modified.
type EncodedWitness[P1, P2 any] struct {
	G1 []P1
	G2 []P2
}

// Len returns the G1 length; a well-formed value has equal G1 and G2 lengths.
func (e *EncodedWitness[P1, P2]) Len() int { return len(e.G1) }

// EncodeWitness lifts w into G1 and G2 of c after checking every entry fits
// the scalar field.
func EncodeWitness[P1, P2, T any](c bilinear.Curve[P1, P2, T], w r1cs.Witness, workers int) (*EncodedWitness[P1, P2], error) {
	if err := w.CheckRange(c.ScalarField()); err != nil {
		return nil, err
	}
	g1, err := EncodeVector(c.G1(), w, workers)
	if err != nil {
		return nil, fmt.Errorf("encode G1: %w", err)
	}
	g2, err := EncodeVector(c.G2(), w, workers)
	if err != nil {
		return nil, fmt.Errorf("encode G2: %w", err)
	}
	return &EncodedWitness[P1, P2]{G1: g1, G2: g2}, nil
}
