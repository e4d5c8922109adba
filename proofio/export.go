// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package proofio serializes proof artifacts. Points are written as lowercase
// compressed hex and read back only through the curve's point decoders, which
// check curve and subgroup membership; nothing else is ever reconstructed.
package proofio

import (
	"encoding/hex"
	"fmt"

	"r1csproof/bilinear"
	"r1csproof/protocol"
	"r1csproof/r1cs"
)

// ---------- JSON shapes ----------

type ProofJSON struct {
	Curve       string         `json:"curve"`
	Fingerprint string         `json:"fingerprint"` // blake2b-256 of the relation
	Relation    *r1cs.Relation `json:"relation"`
	W1          []string       `json:"w1"` // encoded witness, G1 compressed hex
	W2          []string       `json:"w2"` // encoded witness, G2 compressed hex
}

type CombinedJSON struct {
	Curve string   `json:"curve"`
	A     []string `json:"a"` // A·w₁, G1 compressed hex
	B     []string `json:"b"` // B·w₂, G2 compressed hex
	C     []string `json:"c"` // C·w₁, G1 compressed hex
}

// ---------- proof ----------

func ExportProof[P1, P2, T any](c bilinear.Curve[P1, P2, T], p *protocol.Proof[P1, P2]) (ProofJSON, error) {
	if p == nil || p.Relation == nil || p.Witness == nil {
		return ProofJSON{}, fmt.Errorf("export proof: incomplete proof")
	}
	return ProofJSON{
		Curve:       c.Name(),
		Fingerprint: p.Relation.Fingerprint(),
		Relation:    p.Relation,
		W1:          pointsHex(c.G1(), p.Witness.G1),
		W2:          pointsHex(c.G2(), p.Witness.G2),
	}, nil
}

// ImportProof rebuilds a proof. The stored fingerprint must match the stored
// relation, and both witness vectors must have the relation's width.
func ImportProof[P1, P2, T any](c bilinear.Curve[P1, P2, T], pj ProofJSON) (*protocol.Proof[P1, P2], error) {
	if err := checkCurve(c, pj.Curve); err != nil {
		return nil, err
	}
	if err := pj.Relation.Validate(); err != nil {
		return nil, fmt.Errorf("%w: relation: %v", protocol.ErrMalformedProof, err)
	}
	if got := pj.Relation.Fingerprint(); got != pj.Fingerprint {
		return nil, fmt.Errorf("%w: fingerprint %q does not match relation (%s)", protocol.ErrMalformedProof, pj.Fingerprint, got)
	}
	n := pj.Relation.Width()
	if len(pj.W1) != n || len(pj.W2) != n {
		return nil, fmt.Errorf("%w: witness lengths w1=%d w2=%d, relation width %d", protocol.ErrMalformedProof, len(pj.W1), len(pj.W2), n)
	}
	w1, err := parsePoints(c.G1(), "w1", pj.W1)
	if err != nil {
		return nil, err
	}
	w2, err := parsePoints(c.G2(), "w2", pj.W2)
	if err != nil {
		return nil, err
	}
	return &protocol.Proof[P1, P2]{
		Relation: pj.Relation.Clone(),
		Witness:  &protocol.EncodedWitness[P1, P2]{G1: w1, G2: w2},
	}, nil
}

// ---------- combined vectors ----------

func ExportCombined[P1, P2, T any](c bilinear.Curve[P1, P2, T], cb *protocol.Combined[P1, P2]) (CombinedJSON, error) {
	if cb == nil {
		return CombinedJSON{}, fmt.Errorf("export combined: nil")
	}
	return CombinedJSON{
		Curve: c.Name(),
		A:     pointsHex(c.G1(), cb.A),
		B:     pointsHex(c.G2(), cb.B),
		C:     pointsHex(c.G1(), cb.C),
	}, nil
}

func ImportCombined[P1, P2, T any](c bilinear.Curve[P1, P2, T], cj CombinedJSON) (*protocol.Combined[P1, P2], error) {
	if err := checkCurve(c, cj.Curve); err != nil {
		return nil, err
	}
	if len(cj.A) == 0 || len(cj.A) != len(cj.B) || len(cj.A) != len(cj.C) {
		return nil, fmt.Errorf("%w: combined lengths a=%d b=%d c=%d", protocol.ErrMalformedProof, len(cj.A), len(cj.B), len(cj.C))
	}
	a, err := parsePoints(c.G1(), "a", cj.A)
	if err != nil {
		return nil, err
	}
	b, err := parsePoints(c.G2(), "b", cj.B)
	if err != nil {
		return nil, err
	}
	cc, err := parsePoints(c.G1(), "c", cj.C)
	if err != nil {
		return nil, err
	}
	return &protocol.Combined[P1, P2]{A: a, B: b, C: cc}, nil
}

// ---------- helpers ----------

func checkCurve[P1, P2, T any](c bilinear.Curve[P1, P2, T], name string) error {
	if name != c.Name() {
		return fmt.Errorf("%w: artifact is for curve %q, expected %q", protocol.ErrMalformedProof, name, c.Name())
	}
	return nil
}

func pointsHex[E any](g bilinear.Group[E], ps []E) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = hex.EncodeToString(g.Bytes(p))
	}
	return out
}

func parsePoints[E any](g bilinear.Group[E], field string, hs []string) ([]E, error) {
	out := make([]E, len(hs))
	for i, h := range hs {
		raw, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: decode hex: %v", protocol.ErrMalformedProof, field, i, err)
		}
		p, err := g.SetBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", protocol.ErrMalformedProof, field, i, err)
		}
		out[i] = p
	}
	return out, nil
}
