// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package protocol

import (
	"fmt"

	"r1csproof/bilinear"
)

// Pairings are the per-row target-group values of both sides of the check:
// LHS[i] = e(B[i], A[i]) and RHS[i] = e(g₂, C[i]).
type Pairings[T any] struct {
	LHS []T
	RHS []T
}

// Pair evaluates both sides for every row of cb. Rows are independent and may
// run concurrently.
func Pair[P1, P2, T any](c bilinear.Curve[P1, P2, T], cb *Combined[P1, P2], workers int) (*Pairings[T], error) {
	if cb == nil || cb.Rows() == 0 {
		return nil, fmt.Errorf("%w: no combined rows", ErrMalformedProof)
	}
	m := cb.Rows()
	if err := cb.validate(m); err != nil {
		return nil, err
	}
	g2 := c.G2().Generator()
	out := &Pairings[T]{LHS: make([]T, m), RHS: make([]T, m)}
	err := forEach(m, workers, func(i int) error {
		lhs, err := c.Pair(cb.B[i], cb.A[i])
		if err != nil {
			return fmt.Errorf("pair(B[%d], A[%d]): %w", i, i, err)
		}
		rhs, err := c.Pair(g2, cb.C[i])
		if err != nil {
			return fmt.Errorf("pair(g2, C[%d]): %w", i, err)
		}
		out.LHS[i], out.RHS[i] = lhs, rhs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Holds reports whether LHS == RHS elementwise. Unequal or empty lengths are
// ErrMalformedProof, not false.
func (p *Pairings[T]) Holds(gt bilinear.Target[T]) (bool, error) {
	if p == nil || len(p.LHS) == 0 || len(p.LHS) != len(p.RHS) {
		lhs, rhs := 0, 0
		if p != nil {
			lhs, rhs = len(p.LHS), len(p.RHS)
		}
		return false, fmt.Errorf("%w: pairing vectors have lengths %d and %d", ErrMalformedProof, lhs, rhs)
	}
	for i := range p.LHS {
		if !gt.Equal(p.LHS[i], p.RHS[i]) {
			return false, nil
		}
	}
	return true, nil
}
