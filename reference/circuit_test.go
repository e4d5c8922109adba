// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package reference

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"r1csproof/r1cs"
)

func TestCubicCircuit_IsSolved(t *testing.T) {
	field := ecc.BN254.ScalarField()

	valid := CubicCircuit{X: 3, Y: 2, Out: 67}
	require.NoError(t, test.IsSolved(&CubicCircuit{}, &valid, field))

	negative := CubicCircuit{X: -1, Y: 8, Out: 67}
	require.NoError(t, test.IsSolved(&CubicCircuit{}, &negative, field))

	invalid := CubicCircuit{X: 1, Y: 1, Out: 67}
	require.Error(t, test.IsSolved(&CubicCircuit{}, &invalid, field))
}

func TestChecker_AgreesWithMatrices(t *testing.T) {
	for _, id := range []ecc.ID{ecc.BN254, ecc.BLS12_381} {
		chk, err := NewChecker(id)
		require.NoError(t, err)
		require.Positive(t, chk.Constraints())
		_, _, public := chk.Variables()
		require.Equal(t, 2, public, "one wire plus Out")

		rel := r1cs.Cubic()
		for x := int64(-4); x <= 4; x++ {
			for y := int64(-9); y <= 9; y++ {
				w, err := r1cs.CubicCircuit{}.Execute(big.NewInt(x), big.NewInt(y))
				require.NoError(t, err)
				want := rel.Check(w)
				got := chk.Check(big.NewInt(x), big.NewInt(y), rel.Output)
				if want == nil {
					require.NoError(t, got, "%s x=%d y=%d", id, x, y)
				} else {
					require.ErrorIs(t, got, r1cs.ErrConstraintViolation, "%s x=%d y=%d", id, x, y)
				}
			}
		}
	}
}
