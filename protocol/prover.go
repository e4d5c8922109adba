// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package protocol implements the encode-then-pair argument over an agreed
// R1CS relation: the prover executes the circuit, checks the witness over the
// integers and lifts it into G1 and G2; the verifier checks the public claim,
// combines the encoded witness with A, B and C and compares
// e(B·w₂, A·w₁) with e(g₂, C·w₁) row by row.
//
// No blinding is applied. The encoded witness reveals the witness to anyone
// able to solve small discrete logarithms.
package protocol

import (
	"fmt"
	"math/big"

	"r1csproof/bilinear"
	"r1csproof/r1cs"
)

// Proof is what the prover hands to the verifier: the relation it proved
// against and the witness encoded in both source groups.
type Proof[P1, P2 any] struct {
	Relation *r1cs.Relation
	Witness  *EncodedWitness[P1, P2]
}

// Prover generates proofs for one relation on one curve.
type Prover[P1, P2, T any] struct {
	curve   bilinear.Curve[P1, P2, T]
	rel     *r1cs.Relation
	circuit r1cs.Circuit
	cfg     config
}

// NewProver validates rel against the curve's scalar field. The prover keeps
// its own copy of rel.
func NewProver[P1, P2, T any](curve bilinear.Curve[P1, P2, T], rel *r1cs.Relation, circuit r1cs.Circuit, opts ...Option) (*Prover[P1, P2, T], error) {
	if err := rel.Validate(); err != nil {
		return nil, err
	}
	if err := rel.CheckRange(curve.ScalarField()); err != nil {
		return nil, err
	}
	if circuit == nil {
		return nil, fmt.Errorf("prover: nil circuit")
	}
	return &Prover[P1, P2, T]{
		curve:   curve,
		rel:     rel.Clone(),
		circuit: circuit,
		cfg:     newConfig("prover", opts),
	}, nil
}

// Relation returns a copy of the relation the prover was built with.
func (p *Prover[P1, P2, T]) Relation() *r1cs.Relation { return p.rel.Clone() }

// Witness executes the circuit and checks the result in the integer domain:
// shape, scalar range, every R1CS row, and the fixed public positions.
func (p *Prover[P1, P2, T]) Witness(x, y *big.Int) (r1cs.Witness, error) {
	w, err := p.circuit.Execute(x, y)
	if err != nil {
		return nil, fmt.Errorf("execute circuit: %w", err)
	}
	if err := w.CheckRange(p.curve.ScalarField()); err != nil {
		return nil, err
	}
	if err := p.rel.Check(w); err != nil {
		return nil, err
	}
	if w[r1cs.WireOne].Cmp(big.NewInt(1)) != 0 {
		return nil, fmt.Errorf("%w: witness[%d] = %s, want 1", ErrConstraintViolation, r1cs.WireOne, w[r1cs.WireOne])
	}
	if w.Output().Cmp(p.rel.Output) != 0 {
		return nil, fmt.Errorf("%w: output %s, relation claims %s", ErrConstraintViolation, w.Output(), p.rel.Output)
	}
	return w, nil
}

// Prove runs the full prover pipeline. A witness that fails the constraint
// check yields ErrConstraintViolation and no proof; no group operation is
// performed in that case.
func (p *Prover[P1, P2, T]) Prove(x, y *big.Int) (*Proof[P1, P2], error) {
	log := p.cfg.log
	w, err := p.Witness(x, y)
	if err != nil {
		log.Debug().Err(err).Msg("witness rejected")
		return nil, err
	}
	log.Debug().Int("width", len(w)).Str("curve", p.curve.Name()).Msg("witness satisfies relation")

	ew, err := EncodeWitness(p.curve, w, p.cfg.workers)
	if err != nil {
		return nil, err
	}
	log.Info().Str("curve", p.curve.Name()).Str("relation", p.rel.Fingerprint()).Msg("proof generated")

	return &Proof[P1, P2]{Relation: p.rel.Clone(), Witness: ew}, nil
}

// Combine computes the combined vectors for proof under the prover's relation.
func (p *Prover[P1, P2, T]) Combine(proof *Proof[P1, P2]) (*Combined[P1, P2], error) {
	if proof == nil {
		return nil, fmt.Errorf("%w: nil proof", ErrMalformedProof)
	}
	return CombineAll(p.curve, p.rel, proof.Witness, p.cfg.workers)
}

// Pairings evaluates both sides of the pairing check for cb, the record the
// prover publishes alongside the proof.
func (p *Prover[P1, P2, T]) Pairings(cb *Combined[P1, P2]) (*Pairings[T], error) {
	return Pair(p.curve, cb, p.cfg.workers)
}
