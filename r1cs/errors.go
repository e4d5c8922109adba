// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package r1cs

import "errors"

var (
	// ErrConstraintViolation means (A·w)∘(B·w) != C·w for some row.
	ErrConstraintViolation = errors.New("r1cs constraint violation")
	// ErrScalarRange means an integer does not fit the curve's scalar field.
	ErrScalarRange = errors.New("integer outside scalar field range")
	// ErrShape means matrices and witness disagree on dimensions.
	ErrShape = errors.New("r1cs shape mismatch")
)
