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

// Package parsers implements the per-program decoders dispatched by
// the registry: TokenProgram, RaydiumAMM, PumpFun, Mortem, System,
// and ComputeBudget.
package parsers

import (
	"fmt"

	bin "github.com/gagliardetto/binary"

	"github.com/solana-tools/soltxs/address"
	"github.com/solana-tools/soltxs/errs"
)

// SwapData is the shared Anchor-event Borsh schema used identically by
// the Mortem parser and the unknown-program heuristic fallback.
type SwapData struct {
	Mint        [32]byte
	SolAmount   uint64
	TokenAmount uint64
	IsBuy       bool
	User        [32]byte
}

// eventPrefixLen is the anchor event-log prefix every SwapData payload
// is wrapped in and must be skipped before decoding.
const eventPrefixLen = 16

// minSwapDataLen is the minimum payload length accepted before the
// prefix is even attempted: 16-byte prefix + 32 (mint) + 8 + 8 + 1 + 32
// (user) = 97, but upstream accepts any payload long enough to decode
// the fixed-size struct after the prefix, which bin.Decode itself
// enforces; callers additionally require len(raw) >= 48 to weed out
// obviously-truncated payloads before attempting it.
const minSwapDataLen = 48

// DecodeSwapData decodes a SwapData record from a tolerantly-decoded
// instruction payload, skipping the 16-byte anchor event prefix.
func DecodeSwapData(raw []byte) (SwapData, error) {
	if len(raw) < minSwapDataLen {
		return SwapData{}, errs.ErrTruncatedPayload
	}
	var sd SwapData
	if err := bin.NewBinDecoder(raw[eventPrefixLen:]).Decode(&sd); err != nil {
		return SwapData{}, fmt.Errorf("%w: %s", errs.ErrTruncatedPayload, err)
	}
	return sd, nil
}

// MintAddress returns the base-58 encoding of the decoded mint.
func (s SwapData) MintAddress() string { return address.Encode(s.Mint[:]) }

// UserAddress returns the base-58 encoding of the decoded user.
func (s SwapData) UserAddress() string { return address.Encode(s.User[:]) }
