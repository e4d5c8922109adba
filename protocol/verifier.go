// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package protocol

import (
	"fmt"
	"math/big"

	"r1csproof/bilinear"
	"r1csproof/r1cs"
)

// Verifier checks proofs against the relation it independently holds.
// It never modifies a received artifact.
type Verifier[P1, P2, T any] struct {
	curve bilinear.Curve[P1, P2, T]
	rel   *r1cs.Relation
	cfg   config
}

// NewVerifier keeps its own copy of rel.
func NewVerifier[P1, P2, T any](curve bilinear.Curve[P1, P2, T], rel *r1cs.Relation, opts ...Option) (*Verifier[P1, P2, T], error) {
	if err := rel.Validate(); err != nil {
		return nil, err
	}
	if err := rel.CheckRange(curve.ScalarField()); err != nil {
		return nil, err
	}
	return &Verifier[P1, P2, T]{curve: curve, rel: rel.Clone(), cfg: newConfig("verifier", opts)}, nil
}

// CheckClaim verifies that proof was built for the verifier's relation and
// that positions 0 and 1 of the encoded witness are [1] and [output] in both
// groups. The verifier re-encodes those two values itself.
func (v *Verifier[P1, P2, T]) CheckClaim(proof *Proof[P1, P2]) error {
	if proof == nil || proof.Relation == nil || proof.Witness == nil {
		return fmt.Errorf("%w: incomplete proof", ErrMalformedProof)
	}
	if !v.rel.Equal(proof.Relation) {
		return fmt.Errorf("%w: relation %s does not match agreed relation %s", ErrClaimRejected, proof.Relation.Fingerprint(), v.rel.Fingerprint())
	}
	n := v.rel.Width()
	if len(proof.Witness.G1) != n || len(proof.Witness.G2) != n {
		return fmt.Errorf("%w: encoded witness lengths G1=%d G2=%d, want %d", ErrMalformedProof, len(proof.Witness.G1), len(proof.Witness.G2), n)
	}

	public := []*big.Int{r1cs.WireOne: big.NewInt(1), r1cs.WireOut: v.rel.Output}
	for pos, want := range public {
		e1, err := Encode(v.curve.G1(), want)
		if err != nil {
			return err
		}
		if !v.curve.G1().Equal(proof.Witness.G1[pos], e1) {
			return fmt.Errorf("%w: G1 witness[%d] does not encode %s", ErrClaimRejected, pos, want)
		}
		e2, err := Encode(v.curve.G2(), want)
		if err != nil {
			return err
		}
		if !v.curve.G2().Equal(proof.Witness.G2[pos], e2) {
			return fmt.Errorf("%w: G2 witness[%d] does not encode %s", ErrClaimRejected, pos, want)
		}
	}
	return nil
}

// Verify checks the public claim, combines the encoded witness with the
// verifier's own matrices and runs the pairing check.
func (v *Verifier[P1, P2, T]) Verify(proof *Proof[P1, P2]) (bool, error) {
	log := v.cfg.log
	if err := v.CheckClaim(proof); err != nil {
		log.Debug().Err(err).Msg("claim check failed")
		return false, err
	}
	log.Debug().Str("output", v.rel.Output.String()).Msg("public claim accepted")

	cb, err := CombineAll(v.curve, v.rel, proof.Witness, v.cfg.workers)
	if err != nil {
		return false, err
	}
	return v.VerifyCombined(cb)
}

// VerifyCombined runs the pairing check on already combined vectors.
func (v *Verifier[P1, P2, T]) VerifyCombined(cb *Combined[P1, P2]) (bool, error) {
	if err := cb.validate(v.rel.Rows()); err != nil {
		return false, err
	}
	p, err := Pair(v.curve, cb, v.cfg.workers)
	if err != nil {
		return false, err
	}
	return v.VerifyPairings(p)
}

// VerifyPairings compares a pairing record elementwise.
func (v *Verifier[P1, P2, T]) VerifyPairings(p *Pairings[T]) (bool, error) {
	if p != nil && (len(p.LHS) != v.rel.Rows() || len(p.RHS) != v.rel.Rows()) {
		return false, fmt.Errorf("%w: pairing vectors have lengths %d and %d, want %d", ErrMalformedProof, len(p.LHS), len(p.RHS), v.rel.Rows())
	}
	ok, err := p.Holds(v.curve.GT())
	if err != nil {
		return false, err
	}
	v.cfg.log.Info().Bool("valid", ok).Str("curve", v.curve.Name()).Msg("pairing check")
	return ok, nil
}
