// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package r1cs holds the rank-1 constraint system that Prover and Verifier
// agree on before any proof is produced, the witness it constrains, and the
// integer-domain satisfaction check.
package r1cs

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Fixed witness positions shared by every relation.
const (
	WireOne = 0
	WireOut = 1
)

// Relation is the agreed-upon constraint system (A·w)∘(B·w) = C·w together
// with the public output claimed at WireOut.
type Relation struct {
	A      Matrix   `json:"a"`
	B      Matrix   `json:"b"`
	C      Matrix   `json:"c"`
	Output *big.Int `json:"output"`
}

// Cubic returns the relation for x³ + 4x² + y² = 67 over the witness
// [1, out, x, y, x², x³, 4x²].
func Cubic() *Relation {
	return &Relation{
		A: Matrix{
			{0, 0, 1, 0, 0, 0, 0},
			{0, 0, 0, 0, 1, 0, 0},
			{0, 0, 4, 0, 0, 0, 0},
			{0, 0, 0, 1, 0, 0, 0},
		},
		B: Matrix{
			{0, 0, 1, 0, 0, 0, 0},
			{0, 0, 1, 0, 0, 0, 0},
			{0, 0, 1, 0, 0, 0, 0},
			{0, 0, 0, 1, 0, 0, 0},
		},
		C: Matrix{
			{0, 0, 0, 0, 1, 0, 0},
			{0, 0, 0, 0, 0, 1, 0},
			{0, 0, 0, 0, 0, 0, 1},
			{67, 0, 0, 0, 0, -1, -1},
		},
		Output: big.NewInt(67),
	}
}

// Rows is the number of constraints m.
func (r *Relation) Rows() int { return r.A.Rows() }

// Width is the witness length n.
func (r *Relation) Width() int { return r.A.Cols() }

// Validate checks that A, B and C are non-empty m×n matrices with n >= 2 and
// that an output is set.
func (r *Relation) Validate() error {
	if r == nil {
		return fmt.Errorf("%w: nil relation", ErrShape)
	}
	if r.Output == nil {
		return fmt.Errorf("%w: relation has no output", ErrShape)
	}
	m, n := r.A.Rows(), r.A.Cols()
	if m == 0 || n < 2 {
		return fmt.Errorf("%w: A is %dx%d, need at least 1x2", ErrShape, m, n)
	}
	for _, nm := range r.matrices() {
		name, mat := nm.name, nm.m
		if mat.Rows() != m {
			return fmt.Errorf("%w: %s has %d rows, want %d", ErrShape, name, mat.Rows(), m)
		}
		for i, row := range mat {
			if len(row) != n {
				return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrShape, name, i, len(row), n)
			}
		}
	}
	return nil
}

// Equal reports whether both relations have identical matrices and output.
func (r *Relation) Equal(o *Relation) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Output == nil || o.Output == nil {
		return r.Output == o.Output
	}
	return r.A.Equal(o.A) && r.B.Equal(o.B) && r.C.Equal(o.C) && r.Output.Cmp(o.Output) == 0
}

// Clone returns a deep copy.
func (r *Relation) Clone() *Relation {
	out := &Relation{A: r.A.clone(), B: r.B.clone(), C: r.C.clone()}
	if r.Output != nil {
		out.Output = new(big.Int).Set(r.Output)
	}
	return out
}

// CheckRange verifies every coefficient fits the scalar field of order q.
func (r *Relation) CheckRange(q *big.Int) error {
	for _, nm := range r.matrices() {
		for i, row := range nm.m {
			for j, c := range row {
				if !inRange(big.NewInt(c), q) {
					return fmt.Errorf("%w: %s[%d][%d] = %d", ErrScalarRange, nm.name, i, j, c)
				}
			}
		}
	}
	if !inRange(r.Output, q) {
		return fmt.Errorf("%w: output %s", ErrScalarRange, r.Output)
	}
	return nil
}

const fingerprintTag = "r1cs-relation-v1"

// Fingerprint is the lowercase hex blake2b-256 digest of the relation's
// canonical encoding. Two relations share a fingerprint iff they are Equal.
func (r *Relation) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write([]byte(fingerprintTag))

	var buf [8]byte
	writeInt := func(v int64) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeInt(int64(r.Rows()))
	writeInt(int64(r.Width()))
	for _, mat := range []Matrix{r.A, r.B, r.C} {
		for _, row := range mat {
			writeInt(int64(len(row)))
			for _, c := range row {
				writeInt(c)
			}
		}
	}

	out := r.Output
	if out == nil {
		out = new(big.Int)
	}
	sign := byte(0)
	if out.Sign() < 0 {
		sign = 1
	}
	mag := out.Bytes()
	_, _ = h.Write([]byte{sign})
	writeInt(int64(len(mag)))
	_, _ = h.Write(mag)

	return hex.EncodeToString(h.Sum(nil))
}

// ParseRelation decodes a JSON relation, rejecting unknown fields and
// malformed shapes.
func ParseRelation(data []byte) (*Relation, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var r Relation
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("decode relation: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadRelation reads a relation from a JSON file.
func LoadRelation(path string) (*Relation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	r, err := ParseRelation(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

type namedMatrix struct {
	name string
	m    Matrix
}

func (r *Relation) matrices() []namedMatrix {
	return []namedMatrix{{"A", r.A}, {"B", r.B}, {"C", r.C}}
}

// inRange reports |v| < q.
func inRange(v, q *big.Int) bool {
	return new(big.Int).Abs(v).Cmp(q) < 0
}
