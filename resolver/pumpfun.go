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

// PumpFun is the resolved summary of a PumpFun Buy or Sell.
type PumpFun struct {
	Type      string // "buy" or "sell"
	Who       string
	FromToken string
	FromAmount decimal.Decimal
	ToToken    string
	ToAmount   decimal.Decimal
	Signature  string

	PreTokenBalance  *decimal.Decimal
	PostTokenBalance *decimal.Decimal
	PreSolBalance    *decimal.Decimal
	PostSolBalance   *decimal.Decimal
}

func (PumpFun) isResolve() {}

type pumpFunResolver struct{}

// PumpFunResolver picks out the transaction's single PumpFun Buy/Sell
// event, if exactly one exists, and scales its raw amounts to decimal
// units.
var PumpFunResolver Resolver = pumpFunResolver{}

func (pumpFunResolver) Resolve(evs []events.Event) (Resolve, bool) {
	var matches []events.Trade
	var kinds []string
	for _, e := range evs {
		switch v := e.(type) {
		case events.Buy:
			matches = append(matches, v.Trade)
			kinds = append(kinds, "buy")
		case events.Sell:
			matches = append(matches, v.Trade)
			kinds = append(kinds, "sell")
		}
	}
	if len(matches) != 1 {
		return nil, false
	}
	t := matches[0]
	if t.Origin != pumpFunProgramID {
		return nil, false
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

	return PumpFun{
		Type:             kinds[0],
		Who:              t.Who,
		FromToken:        t.FromToken,
		FromAmount:       scale(t.FromAmount, t.FromDecimals),
		ToToken:          t.ToToken,
		ToAmount:         scale(t.ToAmount, t.ToDecimals),
		Signature:        t.Signature,
		PreTokenBalance:  scalePtr(t.PreTokenBalance, t.FromDecimals),
		PostTokenBalance: scalePtr(t.PostTokenBalance, t.FromDecimals),
		PreSolBalance:    scalePtr(t.PreSolBalance, 9),
		PostSolBalance:   scalePtr(t.PostSolBalance, 9),
	}, true
}

// pumpFunProgramID must match the Buy/Sell event's Origin exactly:
// only genuine PumpFun instructions get a resolved summary, not the
// Mortem wrapper that merely replays PumpFun's own event log. Those
// stay as plain parsed events with no high-level summary; no Mortem
// resolver exists.
const pumpFunProgramID = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
