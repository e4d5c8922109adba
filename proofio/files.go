// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package proofio

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"r1csproof/bilinear"
	"r1csproof/protocol"
)

// File names inside an artifact directory.
const (
	ProofFile    = "proof.json"
	CombinedFile = "combined.json"
	PairingsFile = "pairings.txt"
)

// Digest is the lowercase hex blake2b-224 of data, used to identify an
// artifact on the command line.
func Digest(data []byte) string {
	h, _ := blake2b.New(28, nil)
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ExportAll writes proof.json, combined.json and pairings.txt into dir and
// returns the digest of proof.json.
func ExportAll[P1, P2, T any](
	c bilinear.Curve[P1, P2, T],
	proof *protocol.Proof[P1, P2],
	cb *protocol.Combined[P1, P2],
	rec *protocol.Pairings[T],
	dir string,
) (string, error) {
	pj, err := ExportProof(c, proof)
	if err != nil {
		return "", err
	}
	cj, err := ExportCombined(c, cb)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	proofBytes, err := marshalIndent(pj)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, ProofFile), proofBytes, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", ProofFile, err)
	}
	if err := writeJSON(filepath.Join(dir, CombinedFile), cj); err != nil {
		return "", err
	}
	if err := SavePairings(filepath.Join(dir, PairingsFile), c.GT(), rec); err != nil {
		return "", err
	}
	return Digest(proofBytes), nil
}

// LoadProof reads and strictly decodes a proof file.
func LoadProof[P1, P2, T any](c bilinear.Curve[P1, P2, T], path string) (*protocol.Proof[P1, P2], error) {
	var pj ProofJSON
	if err := readJSON(path, &pj); err != nil {
		return nil, err
	}
	return ImportProof(c, pj)
}

// LoadCombined reads and strictly decodes a combined-vector file.
func LoadCombined[P1, P2, T any](c bilinear.Curve[P1, P2, T], path string) (*protocol.Combined[P1, P2], error) {
	var cj CombinedJSON
	if err := readJSON(path, &cj); err != nil {
		return nil, err
	}
	return ImportCombined(c, cj)
}

// PeekCurve returns the curve name recorded in a JSON artifact without
// decoding any point.
func PeekCurve(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	var head struct {
		Curve string `json:"curve"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("%w: %s: %v", protocol.ErrMalformedProof, path, err)
	}
	if err := bilinear.CheckName(head.Curve); err != nil {
		return "", fmt.Errorf("%w: %s: %v", protocol.ErrMalformedProof, path, err)
	}
	return head.Curve, nil
}

func SavePairings[T any](path string, gt bilinear.Target[T], rec *protocol.Pairings[T]) error {
	var buf bytes.Buffer
	if err := WritePairings(&buf, gt, rec); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func LoadPairings[T any](path string, gt bilinear.Target[T]) (*protocol.Pairings[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPairings(f, gt)
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(path string, v any) error {
	data, err := marshalIndent(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", protocol.ErrMalformedProof, path, err)
	}
	return nil
}
