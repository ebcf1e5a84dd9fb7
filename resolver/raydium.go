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

package resolver

import (
	"github.com/shopspring/decimal"

	"github.com/solana-tools/soltxs/parser/events"
)

const (
	wsolMint = "So11111111111111111111111111111111111111112"
	solMint  = "11111111111111111111111111111111"
)

// Raydium is the resolved summary of a RaydiumAMM swap, classified as
// a buy, sell, or plain swap depending on which side is SOL/WSOL.
type Raydium struct {
	Type             string // "swap", "buy", or "sell"
	Who              string
	FromToken        string
	FromAmount       decimal.Decimal
	ToToken          string
	ToAmount         decimal.Decimal
	MinimumAmountOut decimal.Decimal
	Signature        string

	PreTokenBalance  *decimal.Decimal
	PostTokenBalance *decimal.Decimal
	PreSolBalance    *decimal.Decimal
	PostSolBalance   *decimal.Decimal
}

func (Raydium) isResolve() {}

type raydiumResolver struct{}

// RaydiumResolver picks out the transaction's single RaydiumAMM Swap
// event. When more than one Swap event is present, it first narrows
// to those with nonzero amounts on both sides; if exactly one
// remains, it is resolved.
var RaydiumResolver Resolver = raydiumResolver{}

func (raydiumResolver) Resolve(evs []events.Event) (Resolve, bool) {
	var swaps []events.Swap
	for _, e := range evs {
		if s, ok := e.(events.Swap); ok {
			swaps = append(swaps, s)
		}
	}
	if len(swaps) > 1 {
		var nonzero []events.Swap
		for _, s := range swaps {
			if s.FromAmount > 0 && s.ToAmount > 0 {
				nonzero = append(nonzero, s)
			}
		}
		swaps = nonzero
	}
	if len(swaps) != 1 {
		return nil, false
	}
	t := swaps[0].Trade

	raydiumType := "swap"
	switch {
	case t.FromToken == wsolMint || t.FromToken == solMint:
		raydiumType = "buy"
	case t.ToToken == wsolMint || t.ToToken == solMint:
		raydiumType = "sell"
	}

	balanceDecimals := t.FromDecimals
	if raydiumType == "buy" {
		balanceDecimals = t.ToDecimals
	}

	scale := func(amount uint64, decimals uint8) decimal.Decimal {
		return decimal.NewFromInt(int64(amount)).Shift(-int32(decimals))
	}
	scalePtr := func(raw *uint64, decimals uint8) *decimal.Decimal {
		if raw == nil {
			return nil
		}
		d := scale(*raw, decimals)
		return &d
	}

	return Raydium{
		Type:             raydiumType,
		Who:              t.Who,
		FromToken:        t.FromToken,
		FromAmount:       scale(t.FromAmount, t.FromDecimals),
		ToToken:          t.ToToken,
		ToAmount:         scale(t.ToAmount, t.ToDecimals),
		MinimumAmountOut: scale(swaps[0].MinimumAmountOut, t.ToDecimals),
		Signature:        t.Signature,
		PreTokenBalance:  scalePtr(t.PreTokenBalance, balanceDecimals),
		PostTokenBalance: scalePtr(t.PostTokenBalance, balanceDecimals),
		PreSolBalance:    scalePtr(t.PreSolBalance, 9),
		PostSolBalance:   scalePtr(t.PostSolBalance, 9),
	}, true
}
