// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package proofio

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"r1csproof/bilinear"
	"r1csproof/protocol"
)

// The pairing record is two lines:
//
//	lhs <hex>,<hex>,...
//	rhs <hex>,<hex>,...
//
// each hex string being a target-group element in gnark-crypto's canonical
// byte order.
const (
	tagLHS = "lhs"
	tagRHS = "rhs"
)

// maxRecordLine bounds a single record line; a BLS12-381 GT element is 1152
// hex chars.
const maxRecordLine = 1 << 20

func WritePairings[T any](w io.Writer, gt bilinear.Target[T], p *protocol.Pairings[T]) error {
	if p == nil {
		return fmt.Errorf("write pairings: nil record")
	}
	for _, line := range []struct {
		tag  string
		vals []T
	}{{tagLHS, p.LHS}, {tagRHS, p.RHS}} {
		hs := make([]string, len(line.vals))
		for i, v := range line.vals {
			hs[i] = hex.EncodeToString(gt.Bytes(v))
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", line.tag, strings.Join(hs, ",")); err != nil {
			return err
		}
	}
	return nil
}

// ReadPairings parses a pairing record. Anything other than exactly the lhs
// line followed by the rhs line is ErrMalformedProof. Equal lengths are not
// enforced here; that is the verifier's call.
func ReadPairings[T any](r io.Reader, gt bilinear.Target[T]) (*protocol.Pairings[T], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	var lines []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read record: %v", protocol.ErrMalformedProof, err)
	}
	if len(lines) != 2 {
		return nil, fmt.Errorf("%w: pairing record has %d lines, want 2", protocol.ErrMalformedProof, len(lines))
	}

	lhs, err := parseRecordLine(gt, tagLHS, lines[0])
	if err != nil {
		return nil, err
	}
	rhs, err := parseRecordLine(gt, tagRHS, lines[1])
	if err != nil {
		return nil, err
	}
	return &protocol.Pairings[T]{LHS: lhs, RHS: rhs}, nil
}

func parseRecordLine[T any](gt bilinear.Target[T], tag, line string) ([]T, error) {
	gotTag, body, ok := strings.Cut(line, " ")
	if !ok || gotTag != tag {
		return nil, fmt.Errorf("%w: expected %q line", protocol.ErrMalformedProof, tag)
	}
	parts := strings.Split(strings.TrimSpace(body), ",")
	out := make([]T, len(parts))
	for i, h := range parts {
		raw, err := hex.DecodeString(strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: decode hex: %v", protocol.ErrMalformedProof, tag, i, err)
		}
		v, err := gt.SetBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", protocol.ErrMalformedProof, tag, i, err)
		}
		out[i] = v
	}
	return out, nil
}
