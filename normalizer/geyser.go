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

package normalizer

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/solana-tools/soltxs/address"
	"github.com/solana-tools/soltxs/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// geyserEnvelope mirrors the nested streaming/geyser-feed shape:
// everything lives under transaction.transaction, addresses are
// base-64, and inner-instruction account lists arrive as a
// base64-encoded byte string rather than a JSON array of small ints.
type geyserEnvelope struct {
	Slot        uint64             `json:"slot"`
	Transaction geyserOuterWrapper `json:"transaction"`
}

type geyserOuterWrapper struct {
	Transaction geyserInnerTx `json:"transaction"`
	Meta        geyserMeta    `json:"meta"`
}

type geyserInnerTx struct {
	Signatures []string      `json:"signatures"`
	Message    geyserMessage `json:"message"`
}

type geyserMessage struct {
	AccountKeys         []string            `json:"accountKeys"`
	RecentBlockhash     string              `json:"recentBlockhash"`
	Instructions        []wireInstruction   `json:"instructions"`
	AddressTableLookups []wireAddressLookup `json:"addressTableLookups"`
}

// geyserInnerInstruction differs from wireInstruction only in how
// Accounts arrives on the wire: a base64 byte string, not an int array
// (per the upstream adapter's `list(base64.b64decode(_instr["accounts"]))`).
type geyserInnerInstruction struct {
	ProgramIDIndex uint8   `json:"programIdIndex"`
	Accounts       string  `json:"accounts"`
	Data           string  `json:"data"`
	StackHeight    *uint32 `json:"stackHeight,omitempty"`
}

type geyserInnerInstructionGroup struct {
	Index        uint32                    `json:"index"`
	Instructions []geyserInnerInstruction  `json:"instructions"`
}

type geyserMeta struct {
	Fee                     uint64                        `json:"fee"`
	PreBalances             []uint64                      `json:"preBalances"`
	PostBalances            []uint64                      `json:"postBalances"`
	PreTokenBalances        []wireTokenBalance             `json:"preTokenBalances"`
	PostTokenBalances       []wireTokenBalance             `json:"postTokenBalances"`
	InnerInstructions       []geyserInnerInstructionGroup   `json:"innerInstructions"`
	LogMessages             []string                        `json:"logMessages"`
	Err                     any                             `json:"err"`
	Status                  any                             `json:"status"`
	ComputeUnitsConsumed    *uint64                         `json:"computeUnitsConsumed"`
	LoadedWritableAddresses []string                        `json:"loadedWritableAddresses"`
	LoadedReadonlyAddresses []string                        `json:"loadedReadonlyAddresses"`
}

// fromGeyser normalizes a streaming/geyser-style transaction envelope
// into the canonical Transaction shape. BlockTime is never present on
// this feed, mirroring the upstream adapter which always emits None.
func fromGeyser(raw []byte) (*model.Transaction, error) {
	var env geyserEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("normalizer: decode geyser envelope: %w", err)
	}
	inner := env.Transaction.Transaction
	meta := env.Transaction.Meta

	accountKeys := make([]string, len(inner.Message.AccountKeys))
	for i, a := range inner.Message.AccountKeys {
		addr, err := address.FromBase64(a)
		if err != nil {
			return nil, fmt.Errorf("normalizer: account key %d: %w", i, err)
		}
		accountKeys[i] = addr
	}

	instructions := make([]model.Instruction, len(inner.Message.Instructions))
	for i, in := range inner.Message.Instructions {
		instructions[i] = toInstruction(in)
	}

	lookups := make([]model.AddressTableLookup, len(inner.Message.AddressTableLookups))
	for i, lu := range inner.Message.AddressTableLookups {
		key, err := address.FromBase64(lu.AccountKey)
		if err != nil {
			return nil, fmt.Errorf("normalizer: address lookup %d: %w", i, err)
		}
		lookups[i] = model.AddressTableLookup{
			AccountKey:      key,
			WritableIndexes: lu.WritableIndexes,
			ReadonlyIndexes: lu.ReadonlyIndexes,
		}
	}

	innerGroups := make([]model.InnerInstructionGroup, len(meta.InnerInstructions))
	for i, g := range meta.InnerInstructions {
		instrs := make([]model.Instruction, len(g.Instructions))
		for j, in := range g.Instructions {
			accountBytes, err := address.DecodeBase64Bytes(in.Accounts)
			if err != nil {
				return nil, fmt.Errorf("normalizer: inner instruction %d/%d accounts: %w", g.Index, j, err)
			}
			accounts := make([]uint8, len(accountBytes))
			copy(accounts, accountBytes)
			instrs[j] = model.Instruction{
				ProgramIDIndex: in.ProgramIDIndex,
				Accounts:       accounts,
				Data:           in.Data,
				StackHeight:    in.StackHeight,
			}
		}
		innerGroups[i] = model.InnerInstructionGroup{Index: g.Index, Instructions: instrs}
	}

	preTB := make([]model.TokenBalance, len(meta.PreTokenBalances))
	for i, tb := range meta.PreTokenBalances {
		preTB[i] = toTokenBalance(tb)
	}
	postTB := make([]model.TokenBalance, len(meta.PostTokenBalances))
	for i, tb := range meta.PostTokenBalances {
		postTB[i] = toTokenBalance(tb)
	}

	loadedWritable := make([]string, len(meta.LoadedWritableAddresses))
	for i, a := range meta.LoadedWritableAddresses {
		addr, err := address.FromBase64(a)
		if err != nil {
			return nil, fmt.Errorf("normalizer: loaded writable address %d: %w", i, err)
		}
		loadedWritable[i] = addr
	}
	loadedReadonly := make([]string, len(meta.LoadedReadonlyAddresses))
	for i, a := range meta.LoadedReadonlyAddresses {
		addr, err := address.FromBase64(a)
		if err != nil {
			return nil, fmt.Errorf("normalizer: loaded readonly address %d: %w", i, err)
		}
		loadedReadonly[i] = addr
	}

	return &model.Transaction{
		Slot:       env.Slot,
		BlockTime:  nil,
		Signatures: inner.Signatures,
		Message: model.Message{
			AccountKeys:         accountKeys,
			RecentBlockhash:     inner.Message.RecentBlockhash,
			Instructions:        instructions,
			AddressTableLookups: lookups,
		},
		Meta: model.Meta{
			Fee:                  meta.Fee,
			PreBalances:          meta.PreBalances,
			PostBalances:         meta.PostBalances,
			PreTokenBalances:     preTB,
			PostTokenBalances:    postTB,
			InnerInstructions:    innerGroups,
			LogMessages:          meta.LogMessages,
			Err:                  meta.Err,
			Status:               meta.Status,
			ComputeUnitsConsumed: meta.ComputeUnitsConsumed,
		},
		LoadedAddresses: model.LoadedAddresses{
			Writable: loadedWritable,
			Readonly: loadedReadonly,
		},
	}, nil
}
