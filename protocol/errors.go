// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package protocol

import (
	"errors"

	"r1csproof/r1cs"
)

var (
	// ErrConstraintViolation aborts proof generation: the witness does not
	// satisfy the relation. No artifact is produced.
	ErrConstraintViolation = r1cs.ErrConstraintViolation
	// ErrScalarRange is returned when a witness entry or coefficient does not
	// fit the curve's scalar field.
	ErrScalarRange = r1cs.ErrScalarRange
	// ErrClaimRejected aborts verification before any pairing: the public
	// positions or the relation differ from what the verifier holds.
	ErrClaimRejected = errors.New("public claim rejected")
	// ErrMalformedProof is a structural mismatch in a received artifact.
	ErrMalformedProof = errors.New("malformed proof")
	// ErrGroupInversion means P + reflect(P) != identity. It indicates a
	// broken group implementation, not bad input.
	ErrGroupInversion = errors.New("group inversion inconsistency")
)
