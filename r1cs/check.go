// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package r1cs

import (
	"fmt"
	"math/big"
)

// Evaluate returns A·w, B·w and C·w.
func (r *Relation) Evaluate(w Witness) (aw, bw, cw []*big.Int, err error) {
	if len(w) != r.Width() {
		return nil, nil, nil, fmt.Errorf("%w: witness has %d entries, relation expects %d", ErrShape, len(w), r.Width())
	}
	if aw, err = r.A.MulVec(w); err != nil {
		return nil, nil, nil, fmt.Errorf("A: %w", err)
	}
	if bw, err = r.B.MulVec(w); err != nil {
		return nil, nil, nil, fmt.Errorf("B: %w", err)
	}
	if cw, err = r.C.MulVec(w); err != nil {
		return nil, nil, nil, fmt.Errorf("C: %w", err)
	}
	return aw, bw, cw, nil
}

// Check verifies C·w == (A·w)∘(B·w) over the integers. It reports the first
// failing row.
func (r *Relation) Check(w Witness) error {
	aw, bw, cw, err := r.Evaluate(w)
	if err != nil {
		return err
	}
	var prod big.Int
	for i := range aw {
		prod.Mul(aw[i], bw[i])
		if prod.Cmp(cw[i]) != 0 {
			return fmt.Errorf("%w: row %d: (A·w)(B·w) = %s, C·w = %s", ErrConstraintViolation, i, prod.String(), cw[i])
		}
	}
	return nil
}
