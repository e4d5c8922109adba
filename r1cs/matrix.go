// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package r1cs

import (
	"fmt"
	"math/big"
)

// Matrix is a dense constraint matrix: one row per constraint, one column per
// witness position.
type Matrix [][]int64

// Rows returns the number of constraints.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the row width, or 0 for an empty matrix. Callers that need a
// rectangular matrix should call Relation.Validate first.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// MulVec computes m·w over the integers.
func (m Matrix) MulVec(w Witness) ([]*big.Int, error) {
	out := make([]*big.Int, len(m))
	for i, row := range m {
		if len(row) != len(w) {
			return nil, fmt.Errorf("%w: row %d has %d columns, witness has %d entries", ErrShape, i, len(row), len(w))
		}
		acc := new(big.Int)
		var term big.Int
		for j, coeff := range row {
			if coeff == 0 {
				continue
			}
			term.Mul(big.NewInt(coeff), w[j])
			acc.Add(acc, &term)
		}
		out[i] = acc
	}
	return out, nil
}

// Equal reports whether both matrices have the same shape and coefficients.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

func (m Matrix) clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]int64(nil), row...)
	}
	return out
}
