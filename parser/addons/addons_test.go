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

package addons

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solana-tools/soltxs/model"
)

func u64(v uint64) *uint64 { return &v }

// TestRun_PlatformIdentifier exercises scenario S6: a transaction whose
// account list contains the Photon router address.
func TestRun_PlatformIdentifier(t *testing.T) {
	tx := &model.Transaction{
		Message: model.Message{
			AccountKeys: []string{"GfsJWjmGXMfct8JMR9Lm9ySUnniZbnGUTQDbT8ipWf9U", "AVUCZyuT35YSuj4RH7fwiyPu82Djn2Hfg7y2ND2XcnZH"},
		},
	}

	out := Run(tx)
	platform, ok := out["platform_identifier"].(Platform)
	require.True(t, ok)
	require.Equal(t, "AVUCZyuT35YSuj4RH7fwiyPu82Djn2Hfg7y2ND2XcnZH", platform.Address)
	require.Equal(t, "Photon", platform.Name)
}

func TestRun_PlatformIdentifier_NoMatch(t *testing.T) {
	tx := &model.Transaction{
		Message: model.Message{AccountKeys: []string{"GfsJWjmGXMfct8JMR9Lm9ySUnniZbnGUTQDbT8ipWf9U"}},
	}

	out := Run(tx)
	_, ok := out["platform_identifier"]
	require.False(t, ok)
}

// TestRun_InstructionCount exercises property 6: instruction_count
// equals top-level instructions plus every inner group's instructions.
func TestRun_InstructionCount(t *testing.T) {
	tx := &model.Transaction{
		Message: model.Message{
			Instructions: []model.Instruction{{}, {}},
		},
		Meta: model.Meta{
			InnerInstructions: []model.InnerInstructionGroup{
				{Index: 0, Instructions: []model.Instruction{{}, {}, {}}},
				{Index: 1, Instructions: []model.Instruction{{}}},
			},
		},
	}

	out := Run(tx)
	require.Equal(t, 6, out["instruction_count"])
}

func TestRun_ComputeUnits(t *testing.T) {
	tx := &model.Transaction{Meta: model.Meta{ComputeUnitsConsumed: u64(12345)}}
	out := Run(tx)
	require.Equal(t, uint64(12345), out["compute_units"])

	txNoUnits := &model.Transaction{}
	out = Run(txNoUnits)
	_, ok := out["compute_units"]
	require.False(t, ok)
}

func TestRun_TokenTransferSummary(t *testing.T) {
	owner := "GfsJWjmGXMfct8JMR9Lm9ySUnniZbnGUTQDbT8ipWf9U"
	tx := &model.Transaction{
		Meta: model.Meta{
			PreTokenBalances: []model.TokenBalance{
				{AccountIndex: 0, Mint: "mintA", Owner: &owner, UiTokenAmount: model.UiTokenAmount{Amount: "1000", Decimals: 6}},
			},
			PostTokenBalances: []model.TokenBalance{
				{AccountIndex: 0, Mint: "mintA", Owner: &owner, UiTokenAmount: model.UiTokenAmount{Amount: "1500", Decimals: 6}},
			},
		},
	}

	out := Run(tx)
	summary, ok := out["token_transfer_summary"].([]TokenDelta)
	require.True(t, ok)
	require.Len(t, summary, 1)
	require.Equal(t, int64(500), summary[0].Delta)
	require.Equal(t, owner, summary[0].Owner)
}

func TestRun_LoadedAddresses(t *testing.T) {
	tx := &model.Transaction{
		LoadedAddresses: model.LoadedAddresses{Writable: []string{"w1"}, Readonly: []string{"r1"}},
	}
	out := Run(tx)
	require.Equal(t, model.LoadedAddresses{Writable: []string{"w1"}, Readonly: []string{"r1"}}, out["loaded_addresses"])
}
