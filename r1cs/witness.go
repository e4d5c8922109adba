// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package r1cs

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Witness is the full assignment: w[0] = 1, w[1] = public output, then
// secret inputs and intermediate values.
type Witness []*big.Int

// Output returns the public value at WireOut.
func (w Witness) Output() *big.Int {
	if len(w) <= WireOut {
		return nil
	}
	return w[WireOut]
}

// CheckRange verifies every entry satisfies |w[i]| < q.
func (w Witness) CheckRange(q *big.Int) error {
	for i, v := range w {
		if v == nil {
			return fmt.Errorf("%w: witness[%d] is nil", ErrShape, i)
		}
		if !inRange(v, q) {
			return fmt.Errorf("%w: witness[%d] = %s", ErrScalarRange, i, v)
		}
	}
	return nil
}

func (w Witness) String() string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Circuit evaluates a relation on secret inputs and returns the witness.
type Circuit interface {
	Execute(x, y *big.Int) (Witness, error)
}

// CubicCircuit computes x³ + 4x² + y² and lays out the witness as
// [1, out, x, y, x², x³, 4x²].
type CubicCircuit struct{}

var _ Circuit = CubicCircuit{}

func (CubicCircuit) Execute(x, y *big.Int) (Witness, error) {
	if x == nil || y == nil {
		return nil, errors.New("cubic circuit: nil input")
	}
	x2 := new(big.Int).Mul(x, x)
	x3 := new(big.Int).Mul(x2, x)
	fourX2 := new(big.Int).Mul(big.NewInt(4), x2)
	y2 := new(big.Int).Mul(y, y)

	out := new(big.Int).Add(x3, fourX2)
	out.Add(out, y2)

	return Witness{
		big.NewInt(1),
		out,
		new(big.Int).Set(x),
		new(big.Int).Set(y),
		x2,
		x3,
		fourX2,
	}, nil
}
