// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package reference expresses x³ + 4x² + y² = out as a gnark circuit. It is
// compiled with gnark's own R1CS builder and used as an independent oracle
// for the hand-written matrices in package r1cs.
package reference

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	gnarkr1cs "github.com/consensys/gnark/frontend/cs/r1cs"

	"r1csproof/r1cs"
)

// CubicCircuit: X and Y are secret, Out is public.
type CubicCircuit struct {
	X   frontend.Variable
	Y   frontend.Variable
	Out frontend.Variable `gnark:",public"`
}

func (c *CubicCircuit) Define(api frontend.API) error {
	x2 := api.Mul(c.X, c.X)
	x3 := api.Mul(x2, c.X)
	fourX2 := api.Mul(4, x2)
	y2 := api.Mul(c.Y, c.Y)
	api.AssertIsEqual(api.Add(x3, fourX2, y2), c.Out)
	return nil
}

// Checker holds the compiled circuit for one scalar field.
type Checker struct {
	id  ecc.ID
	ccs constraint.ConstraintSystem
}

// NewChecker compiles CubicCircuit over the scalar field of id.
func NewChecker(id ecc.ID) (*Checker, error) {
	var circuit CubicCircuit
	ccs, err := frontend.Compile(id.ScalarField(), gnarkr1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return &Checker{id: id, ccs: ccs}, nil
}

// Constraints returns the number of R1CS constraints gnark produced.
func (c *Checker) Constraints() int { return c.ccs.GetNbConstraints() }

// Variables returns gnark's internal, secret and public variable counts.
func (c *Checker) Variables() (internal, secret, public int) { return c.ccs.GetNbVariables() }

// Check runs gnark's solver on (x, y, out). Arithmetic is modulo the scalar
// field, so it agrees with the integer check only for in-range witnesses.
func (c *Checker) Check(x, y, out *big.Int) error {
	assignment := CubicCircuit{X: x, Y: y, Out: out}
	w, err := frontend.NewWitness(&assignment, c.id.ScalarField())
	if err != nil {
		return fmt.Errorf("new witness: %w", err)
	}
	if _, err := c.ccs.Solve(w); err != nil {
		return fmt.Errorf("%w: gnark solver: %v", r1cs.ErrConstraintViolation, err)
	}
	return nil
}
