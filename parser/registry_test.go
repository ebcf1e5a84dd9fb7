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

package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/parser/events"
	"github.com/solana-tools/soltxs/parser/parsers"
)

const (
	testWallet    = "GfsJWjmGXMfct8JMR9Lm9ySUnniZbnGUTQDbT8ipWf9U"
	testSrcWSOL   = "3bCGPxy1g6K55LsxfvgmpPNjxrYDAjma4bEx6kUfeebY"
	testDstMint   = "92W3NAoknC4RT98DEreipctAr2U9duMQp6wLozkZDZfm"
	testMintM     = "bvgRxX4i3TVxu72eSGE1dkLjPMunReapc72mEmn3E6U"
	testUser      = "LQVcTQajEfHFgC7dJeWJ6R3uBsqZrSdp9rTzv344p4A"
	testRaydium   = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	testTokenProg = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	testMortem    = "FAdo9NCw1ssek6Z6yeWzWjhLVsr8uiCwcWNUnKgzTnHe"
	testPumpFun   = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
)

// TestRoute_RaydiumSwap exercises scenario S1: a minimal RPC Raydium
// buy with an inner TokenProgram transfer correlating the destination
// amount.
func TestRoute_RaydiumSwap(t *testing.T) {
	tx := &model.Transaction{
		Signatures: []string{"sig1"},
		Message: model.Message{
			AccountKeys: []string{testWallet, testRaydium, testSrcWSOL, testDstMint, testTokenProg},
			Instructions: []model.Instruction{
				{
					ProgramIDIndex: 1,
					Accounts:       []uint8{2, 3, 0},
					Data:           "5ucmhStLiAKrJ5MPSCP4zv3",
				},
			},
		},
		Meta: model.Meta{
			InnerInstructions: []model.InnerInstructionGroup{
				{
					Index: 0,
					Instructions: []model.Instruction{
						{ProgramIDIndex: 4, Accounts: []uint8{2, 3}, Data: "3QK1PgBtAWnb"},
					},
				},
			},
		},
	}

	ev := Route(tx, 0, events.Options{})
	swap, ok := ev.(events.Swap)
	require.True(t, ok, "expected a Swap event, got %T", ev)
	require.Equal(t, uint64(100_000_000), swap.FromAmount)
	require.Equal(t, uint64(1), swap.MinimumAmountOut)
	require.Equal(t, uint64(123456), swap.ToAmount)
	require.Equal(t, testWallet, swap.Who)
}

// TestRoute_MortemDefaultPrefersBuy exercises scenario S3: a Mortem
// "buy\0" tag whose inner PumpFun event carries is_buy=true.
func TestRoute_MortemDefaultPrefersBuy(t *testing.T) {
	innerData := "1111111111111111Rxcm2w1fc1xze7xCe7V4HdhKxKSabMYQ1ricaPv8yhyieMMYoUuQ2aCVZzoXBW37XAgqVfCR9ZVjwKQcydPSgnqQQLiTH6aK5YArSqhd9w5Wki"
	tx := &model.Transaction{
		Signatures: []string{"sig1"},
		Message: model.Message{
			AccountKeys: []string{testWallet, testMortem, testPumpFun},
			Instructions: []model.Instruction{
				{ProgramIDIndex: 1, Accounts: []uint8{0}, Data: "3WyFAo"},
			},
		},
		Meta: model.Meta{
			PreTokenBalances: []model.TokenBalance{
				{AccountIndex: 0, Mint: testMintM, UiTokenAmount: model.UiTokenAmount{Amount: "0", Decimals: 6}},
			},
			InnerInstructions: []model.InnerInstructionGroup{
				{
					Index: 0,
					Instructions: []model.Instruction{
						{ProgramIDIndex: 2, Accounts: nil, Data: innerData},
					},
				},
			},
		},
	}

	ev := Route(tx, 0, events.Options{})
	buy, ok := ev.(events.Buy)
	require.True(t, ok, "expected a Buy event, got %T", ev)
	require.Equal(t, testUser, buy.Who)
	require.Equal(t, parsers.WSOL_MINT, buy.FromToken)
	require.Equal(t, testMintM, buy.ToToken)
	require.Equal(t, uint64(500_000_000), buy.FromAmount)
	require.Equal(t, uint64(7000), buy.ToAmount)
}

// TestUnknownParser_DedupsDuplicatePumpFunEvents exercises scenario S5:
// two identical inner PumpFun Buy events under one unregistered
// program must collapse to a single Buy via the heuristic parser's own
// internal dedup, before the top-level deduplicator ever sees it.
func TestUnknownParser_DedupsDuplicatePumpFunEvents(t *testing.T) {
	innerData := "1111111111111111Rxcm2w1fc1xze7xCe7V4HdhKxKSabMYQ1ricaPv8yhyieMMYoUuQ2aCVZzoXBW37XAgqVfCR9ZVjwKQcydPSgnqQQLiTH6aK5YArSqhd9w5Wki"
	unregistered := testMintM // any address absent from the registry
	tx := &model.Transaction{
		Signatures: []string{"sig1"},
		Message: model.Message{
			AccountKeys: []string{testWallet, unregistered, testPumpFun},
			Instructions: []model.Instruction{
				{ProgramIDIndex: 1, Accounts: nil, Data: ""},
			},
		},
		Meta: model.Meta{
			InnerInstructions: []model.InnerInstructionGroup{
				{
					Index: 0,
					Instructions: []model.Instruction{
						{ProgramIDIndex: 2, Data: innerData},
						{ProgramIDIndex: 2, Data: innerData},
					},
				},
			},
		},
	}

	ev := Route(tx, 0, events.Options{})
	_, ok := ev.(events.Buy)
	require.True(t, ok, "expected a Buy event, got %T", ev)
}

// TestDeduplicate_CollapsesIdenticalTrades exercises the deduplicator,
// checking that it is idempotent and order-preserving.
func TestDeduplicate_CollapsesIdenticalTrades(t *testing.T) {
	buy := events.Buy{Trade: events.Trade{
		Signature: "sig1", InstructionName: "Buy", Who: testUser,
		FromToken: "WSOL", ToToken: testMintM, FromAmount: 1, ToAmount: 2,
	}}
	unknown := events.Unknown{ProgramID: "x", InstructionIndex: 1}

	once := Deduplicate([]events.Event{buy, buy, unknown})
	require.Len(t, once, 2)
	require.Equal(t, buy, once[0])
	require.Equal(t, unknown, once[1])

	twice := Deduplicate(once)
	require.Equal(t, once, twice)
}
