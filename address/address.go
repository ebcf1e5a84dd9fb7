// Copyright 2021 github.com/gagliardetto
// This file has been modified by github.com/gagliardetto
//
// Copyright 2020 dfuse Platform Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package address implements the base-58/base-64 address codec (component
// A): converting wire-format addresses between encodings, and the
// tolerant instruction-payload decode every program parser relies on.
package address

import (
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/solana-tools/soltxs/errs"
)

// Length is the number of bytes in a Solana public key.
const Length = 32

// PublicKey is a 32-byte Solana address. The canonical data model
// (package model) represents addresses as base-58 strings; PublicKey
// and FromBase58 validate such a string by decoding it to its 32 raw
// bytes.
type PublicKey [Length]byte

// FromBase58 decodes a base-58 Solana address string.
func FromBase58(s string) (PublicKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %s", errs.ErrInvalidAddress, err)
	}
	if len(raw) != Length {
		return PublicKey{}, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrInvalidAddress, Length, len(raw))
	}
	var out PublicKey
	copy(out[:], raw)
	return out, nil
}

func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

func (p PublicKey) Equals(other PublicKey) bool {
	return p == other
}

// FromBase64 converts a base-64 wire address (as used by the
// streaming-feed envelope) into its canonical base-58 string. Fails
// with ErrInvalidAddress on malformed input or a decoded length other
// than 32 bytes.
func FromBase64(b64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidAddress, err)
	}
	if len(raw) != Length {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrInvalidAddress, Length, len(raw))
	}
	return base58.Encode(raw), nil
}

// DecodeBase64Bytes decodes an arbitrary base-64 byte string (used for
// inner-instruction `accounts` fields in the streaming envelope, which
// carry raw index bytes rather than an address).
func DecodeBase64Bytes(b64 string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidBase64, err)
	}
	return raw, nil
}

// TolerantDecode decodes an instruction payload that may arrive as
// either base-58 or base-64: base-58 is attempted first, falling back
// to base-64 on failure. Never panics; returns ErrInvalidBase64
// wrapped if both fail.
func TolerantDecode(data string) ([]byte, error) {
	if data == "" {
		return nil, nil
	}
	if raw, err := base58.Decode(data); err == nil {
		return raw, nil
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w (and not valid base58 either)", errs.ErrInvalidBase64)
	}
	return raw, nil
}

// Encode base-58-encodes raw bytes, the reverse of TolerantDecode's
// base-58 branch; SwapData uses it to render decoded mint and user
// addresses.
func Encode(raw []byte) string {
	return base58.Encode(raw)
}
