// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package proofio

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"r1csproof/bilinear"
	"r1csproof/protocol"
	"r1csproof/r1cs"
)

type artifacts struct {
	proof *protocol.Proof[bn254.G1Affine, bn254.G2Affine]
	cb    *protocol.Combined[bn254.G1Affine, bn254.G2Affine]
	rec   *protocol.Pairings[bn254.GT]
	v     *protocol.Verifier[bn254.G1Affine, bn254.G2Affine, bn254.GT]
}

func mustArtifacts(t *testing.T) artifacts {
	t.Helper()
	quiet := protocol.WithLogger(zerolog.Nop())
	c := bilinear.BN254{}
	p, err := protocol.NewProver(c, r1cs.Cubic(), r1cs.CubicCircuit{}, quiet)
	require.NoError(t, err)
	v, err := protocol.NewVerifier(c, r1cs.Cubic(), quiet)
	require.NoError(t, err)

	proof, err := p.Prove(big.NewInt(3), big.NewInt(2))
	require.NoError(t, err)
	cb, err := p.Combine(proof)
	require.NoError(t, err)
	rec, err := p.Pairings(cb)
	require.NoError(t, err)
	return artifacts{proof: proof, cb: cb, rec: rec, v: v}
}

func TestExportAll_RoundTrip(t *testing.T) {
	a := mustArtifacts(t)
	c := bilinear.BN254{}
	dir := t.TempDir()

	digest, err := ExportAll(c, a.proof, a.cb, a.rec, dir)
	require.NoError(t, err)
	require.Len(t, digest, 56)

	raw, err := os.ReadFile(filepath.Join(dir, ProofFile))
	require.NoError(t, err)
	require.Equal(t, Digest(raw), digest)

	curve, err := PeekCurve(filepath.Join(dir, ProofFile))
	require.NoError(t, err)
	require.Equal(t, bilinear.NameBN254, curve)

	proof, err := LoadProof(c, filepath.Join(dir, ProofFile))
	require.NoError(t, err)
	ok, err := a.v.Verify(proof)
	require.NoError(t, err)
	require.True(t, ok)

	cb, err := LoadCombined(c, filepath.Join(dir, CombinedFile))
	require.NoError(t, err)
	ok, err = a.v.VerifyCombined(cb)
	require.NoError(t, err)
	require.True(t, ok)

	rec, err := LoadPairings(filepath.Join(dir, PairingsFile), c.GT())
	require.NoError(t, err)
	ok, err = a.v.VerifyPairings(rec)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestExportProof_Deterministic(t *testing.T) {
	a := mustArtifacts(t)
	c := bilinear.BN254{}
	p1, err := ExportProof(c, a.proof)
	require.NoError(t, err)
	p2, err := ExportProof(c, a.proof)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
	require.Len(t, p1.W1, 7)
	require.Len(t, p1.W1[0], 2*bn254.SizeOfG1AffineCompressed)
	require.Len(t, p1.W2[0], 2*bn254.SizeOfG2AffineCompressed)
	require.Equal(t, strings.ToLower(p1.W1[2]), p1.W1[2])
}

func TestImportProof_Rejects(t *testing.T) {
	a := mustArtifacts(t)
	c := bilinear.BN254{}

	fresh := func() ProofJSON {
		pj, err := ExportProof(c, a.proof)
		require.NoError(t, err)
		// detach the relation so mutations stay local
		pj.Relation = pj.Relation.Clone()
		pj.W1 = append([]string(nil), pj.W1...)
		return pj
	}

	cases := map[string]func(pj *ProofJSON){
		"wrong curve":      func(pj *ProofJSON) { pj.Curve = bilinear.NameBLS12381 },
		"fingerprint":      func(pj *ProofJSON) { pj.Fingerprint = strings.Repeat("0", 64) },
		"relation edited":  func(pj *ProofJSON) { pj.Relation.C[3][0] = 68 },
		"missing relation": func(pj *ProofJSON) { pj.Relation = nil },
		"short witness":    func(pj *ProofJSON) { pj.W1 = pj.W1[:6] },
		"bad hex":          func(pj *ProofJSON) { pj.W1[3] = "zz" },
		"not a point":      func(pj *ProofJSON) { pj.W1[3] = strings.Repeat("ff", bn254.SizeOfG1AffineCompressed) },
		"g2 point as g1":   func(pj *ProofJSON) { pj.W1[3] = pj.W2[3] },
		"truncated g1 hex": func(pj *ProofJSON) { pj.W1[3] = pj.W1[3][:10] },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			pj := fresh()
			mutate(&pj)
			_, err := ImportProof(c, pj)
			require.ErrorIs(t, err, protocol.ErrMalformedProof)
		})
	}
}

func TestLoadProof_UnknownField(t *testing.T) {
	a := mustArtifacts(t)
	pj, err := ExportProof(bilinear.BN254{}, a.proof)
	require.NoError(t, err)

	var generic map[string]any
	data, err := json.Marshal(pj)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &generic))
	generic["eval"] = "__import__('os')"
	data, err = json.Marshal(generic)
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), ProofFile)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	_, err = LoadProof(bilinear.BN254{}, p)
	require.ErrorIs(t, err, protocol.ErrMalformedProof)
}

func TestImportCombined_Rejects(t *testing.T) {
	a := mustArtifacts(t)
	c := bilinear.BN254{}
	cj, err := ExportCombined(c, a.cb)
	require.NoError(t, err)

	bad := cj
	bad.B = bad.B[:2]
	_, err = ImportCombined(c, bad)
	require.ErrorIs(t, err, protocol.ErrMalformedProof)

	_, err = ImportCombined(c, CombinedJSON{Curve: c.Name()})
	require.ErrorIs(t, err, protocol.ErrMalformedProof)

	bad = cj
	bad.Curve = "bls12-381"
	_, err = ImportCombined(c, bad)
	require.ErrorIs(t, err, protocol.ErrMalformedProof)
}

func TestPairingRecord(t *testing.T) {
	a := mustArtifacts(t)
	gt := bilinear.BN254{}.GT()

	var buf bytes.Buffer
	require.NoError(t, WritePairings(&buf, gt, a.rec))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "lhs "))
	require.True(t, strings.HasPrefix(lines[1], "rhs "))

	rec, err := ReadPairings(strings.NewReader(buf.String()), gt)
	require.NoError(t, err)
	require.Len(t, rec.LHS, 4)
	for i := range rec.LHS {
		require.True(t, gt.Equal(rec.LHS[i], a.rec.LHS[i]))
		require.True(t, gt.Equal(rec.RHS[i], a.rec.RHS[i]))
	}

	// the record carries the equality: lhs and rhs lines are identical
	// modulo their tag for a valid proof
	require.Equal(t, strings.TrimPrefix(lines[0], "lhs "), strings.TrimPrefix(lines[1], "rhs "))
}

func TestPairingRecord_Malformed(t *testing.T) {
	a := mustArtifacts(t)
	gt := bilinear.BN254{}.GT()
	var buf bytes.Buffer
	require.NoError(t, WritePairings(&buf, gt, a.rec))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	for name, text := range map[string]string{
		"one line":     lines[0],
		"three lines":  buf.String() + lines[0] + "\n",
		"swapped tags": lines[1] + "\n" + lines[0],
		"no body":      "lhs\nrhs\n",
		"bad hex":      "lhs zz\n" + lines[1],
		"short gt":     "lhs 00ff\n" + lines[1],
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadPairings(strings.NewReader(text), gt)
			require.ErrorIs(t, err, protocol.ErrMalformedProof)
		})
	}
}

func TestPeekCurve_Rejects(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "x.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"curve":"secp256k1"}`), 0o644))
	_, err := PeekCurve(p)
	require.ErrorIs(t, err, protocol.ErrMalformedProof)

	require.NoError(t, os.WriteFile(p, []byte(`not json`), 0o644))
	_, err = PeekCurve(p)
	require.ErrorIs(t, err, protocol.ErrMalformedProof)

	_, err = PeekCurve(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
