// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package protocol

import (
	"fmt"
	"math/big"

	"r1csproof/bilinear"
	"r1csproof/r1cs"
)

// Combine computes, for every row i of m, Σ_j m[i][j]·w[j] in g using the
// signed scalar rule. Each row folds left to right from the identity; rows are
// independent and may run concurrently.
func Combine[E any](g bilinear.Group[E], m r1cs.Matrix, w []E, workers int) ([]E, error) {
	out := make([]E, len(m))
	err := forEach(len(m), workers, func(i int) error {
		row := m[i]
		if len(row) != len(w) {
			return fmt.Errorf("%w: row %d has %d columns, encoded witness has %d entries", ErrMalformedProof, i, len(row), len(w))
		}
		acc := g.Identity()
		for j, coeff := range row {
			if coeff == 0 {
				continue
			}
			term, err := SignedScalarMul(g, w[j], big.NewInt(coeff))
			if err != nil {
				return fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			acc = g.Add(acc, term)
		}
		out[i] = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Combined holds A·w₁, B·w₂ and C·w₁. A and C live in G1, B in G2, so that
// e(B·w₂, A·w₁) and e(g₂, C·w₁) land in the same target group.
type Combined[P1, P2 any] struct {
	A []P1
	B []P2
	C []P1
}

// Rows returns len(A).
func (c *Combined[P1, P2]) Rows() int { return len(c.A) }

func (c *Combined[P1, P2]) validate(m int) error {
	if c == nil {
		return fmt.Errorf("%w: nil combined vectors", ErrMalformedProof)
	}
	if len(c.A) != m || len(c.B) != m || len(c.C) != m {
		return fmt.Errorf("%w: combined lengths A=%d B=%d C=%d, want %d", ErrMalformedProof, len(c.A), len(c.B), len(c.C), m)
	}
	return nil
}

// CombineAll performs the three protocol combinations of rel against ew.
func CombineAll[P1, P2, T any](c bilinear.Curve[P1, P2, T], rel *r1cs.Relation, ew *EncodedWitness[P1, P2], workers int) (*Combined[P1, P2], error) {
	if ew == nil || len(ew.G1) != rel.Width() || len(ew.G2) != rel.Width() {
		return nil, fmt.Errorf("%w: encoded witness does not have %d entries per group", ErrMalformedProof, rel.Width())
	}
	a, err := Combine(c.G1(), rel.A, ew.G1, workers)
	if err != nil {
		return nil, fmt.Errorf("A·w: %w", err)
	}
	b, err := Combine(c.G2(), rel.B, ew.G2, workers)
	if err != nil {
		return nil, fmt.Errorf("B·w: %w", err)
	}
	cw, err := Combine(c.G1(), rel.C, ew.G1, workers)
	if err != nil {
		return nil, fmt.Errorf("C·w: %w", err)
	}
	return &Combined[P1, P2]{A: a, B: b, C: cw}, nil
}
