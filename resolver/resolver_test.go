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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/solana-tools/soltxs/parser/events"
)

// TestRaydiumResolver_Buy exercises the resolver half of scenario S1.
func TestRaydiumResolver_Buy(t *testing.T) {
	evs := []events.Event{
		events.Swap{
			Trade: events.Trade{
				Signature: "sig1", InstructionName: "swap", Who: "wallet",
				FromToken: wsolMint, FromDecimals: 9,
				ToToken: "dst_mint", ToDecimals: 6,
				FromAmount: 100_000_000, ToAmount: 123456,
			},
			MinimumAmountOut: 1,
		},
	}

	resolved, ok := RaydiumResolver.Resolve(evs)
	require.True(t, ok)
	r := resolved.(Raydium)
	require.Equal(t, "buy", r.Type)
	require.True(t, decimal.NewFromFloat(0.1).Equal(r.FromAmount), "from_amount: %s", r.FromAmount)
}

// TestRaydiumResolver_SellViaBalanceFallback exercises scenario S2.
func TestRaydiumResolver_SellViaBalanceFallback(t *testing.T) {
	evs := []events.Event{
		events.Swap{
			Trade: events.Trade{
				Signature: "sig2", InstructionName: "swap", Who: "wallet",
				FromToken: "src_mint", FromDecimals: 6,
				ToToken: wsolMint, ToDecimals: 9,
				FromAmount: 5_000, ToAmount: 2_000_000_000,
			},
			MinimumAmountOut: 1,
		},
	}

	resolved, ok := RaydiumResolver.Resolve(evs)
	require.True(t, ok)
	r := resolved.(Raydium)
	require.Equal(t, "sell", r.Type)
	require.True(t, decimal.NewFromInt(2).Equal(r.ToAmount), "to_amount: %s", r.ToAmount)
}

// TestRaydiumResolver_MultipleSwapsNarrowsToNonzero covers the ">1
// match, narrow to nonzero amounts" branch of Resolve.
func TestRaydiumResolver_MultipleSwapsNarrowsToNonzero(t *testing.T) {
	zero := events.Swap{Trade: events.Trade{Signature: "sig3", Who: "wallet", FromToken: "a", ToToken: "b", FromAmount: 0, ToAmount: 0}}
	real := events.Swap{Trade: events.Trade{Signature: "sig3", Who: "wallet", FromToken: wsolMint, ToToken: "b", FromAmount: 10, ToAmount: 20}}

	resolved, ok := RaydiumResolver.Resolve([]events.Event{zero, real})
	require.True(t, ok)
	r := resolved.(Raydium)
	require.Equal(t, "buy", r.Type)
}

func TestRaydiumResolver_NoMatch(t *testing.T) {
	_, ok := RaydiumResolver.Resolve([]events.Event{events.Unknown{ProgramID: "x"}})
	require.False(t, ok)
}

// TestPumpFunResolver_Buy exercises the resolver half of scenario S3.
func TestPumpFunResolver_Buy(t *testing.T) {
	evs := []events.Event{
		events.Buy{Trade: events.Trade{
			Signature: "sig4", Origin: pumpFunProgramID, InstructionName: "buy", Who: "user",
			FromToken: wsolMint, FromDecimals: 9,
			ToToken: "M", ToDecimals: 6,
			FromAmount: 500_000_000, ToAmount: 7000,
		}},
	}

	resolved, ok := PumpFunResolver.Resolve(evs)
	require.True(t, ok)
	pf := resolved.(PumpFun)
	require.Equal(t, "buy", pf.Type)
	require.True(t, decimal.NewFromFloat(0.5).Equal(pf.FromAmount))
	require.True(t, decimal.NewFromFloat(0.007).Equal(pf.ToAmount))
}

// TestPumpFunResolver_IgnoresMortemOrigin: Mortem replays PumpFun's
// event shape but has no resolver of its own (no grounding source
// defines one), so a Mortem-origin Buy must not resolve.
func TestPumpFunResolver_IgnoresMortemOrigin(t *testing.T) {
	evs := []events.Event{
		events.Buy{Trade: events.Trade{Signature: "sig5", Origin: "FAdo9NCw1ssek6Z6yeWzWjhLVsr8uiCwcWNUnKgzTnHe", Who: "user"}},
	}
	_, ok := PumpFunResolver.Resolve(evs)
	require.False(t, ok)
}

func TestPumpFunResolver_NoMatchOnMultiple(t *testing.T) {
	buy := events.Buy{Trade: events.Trade{Signature: "sig6", Origin: pumpFunProgramID, Who: "user"}}
	sell := events.Sell{Trade: events.Trade{Signature: "sig6", Origin: pumpFunProgramID, Who: "user"}}
	_, ok := PumpFunResolver.Resolve([]events.Event{buy, sell})
	require.False(t, ok)
}

// TestResolveAll_PumpFunOverUnknown exercises scenario S5's resolver
// half: the heuristic-deduped Buy resolves via PumpFunResolver.
func TestResolveAll_PumpFunOverUnknown(t *testing.T) {
	evs := []events.Event{
		events.Unknown{ProgramID: "x", InstructionIndex: 0},
		events.Buy{Trade: events.Trade{Signature: "sig7", Origin: pumpFunProgramID, Who: "user", FromToken: wsolMint, ToToken: "M", FromAmount: 1, ToAmount: 2}},
	}
	resolved, ok := ResolveAll(evs)
	require.True(t, ok)
	_, isPumpFun := resolved.(PumpFun)
	require.True(t, isPumpFun)
}

// TestResolve_PureFunction exercises property 10: resolvers depend
// only on the event list, not on any external or hidden state — the
// same input always yields the same output.
func TestResolve_PureFunction(t *testing.T) {
	evs := []events.Event{
		events.Swap{Trade: events.Trade{Signature: "sig8", Who: "wallet", FromToken: wsolMint, ToToken: "b", FromAmount: 10, ToAmount: 20}},
	}
	first, ok1 := RaydiumResolver.Resolve(evs)
	second, ok2 := RaydiumResolver.Resolve(evs)
	require.Equal(t, ok1, ok2)
	require.Equal(t, first, second)
}
