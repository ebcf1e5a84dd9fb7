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

	"github.com/solana-tools/soltxs/model"
)

// rpcEnvelope mirrors a standard JSON-RPC `getTransaction` reply.
// Addresses are already base-58.
type rpcEnvelope struct {
	Slot        uint64    `json:"slot"`
	BlockTime   *uint64   `json:"blockTime"`
	Transaction rpcTxPart `json:"transaction"`
	Meta        rpcMeta   `json:"meta"`
}

type rpcTxPart struct {
	Signatures []string   `json:"signatures"`
	Message    rpcMessage `json:"message"`
}

type rpcMessage struct {
	AccountKeys         []string            `json:"accountKeys"`
	RecentBlockhash     string              `json:"recentBlockhash"`
	Instructions        []wireInstruction   `json:"instructions"`
	AddressTableLookups []wireAddressLookup `json:"addressTableLookups"`
}

type rpcInnerInstructionGroup struct {
	Index        uint32            `json:"index"`
	Instructions []wireInstruction `json:"instructions"`
}

type rpcMeta struct {
	Fee                     uint64                     `json:"fee"`
	PreBalances             []uint64                   `json:"preBalances"`
	PostBalances            []uint64                   `json:"postBalances"`
	PreTokenBalances        []wireTokenBalance         `json:"preTokenBalances"`
	PostTokenBalances       []wireTokenBalance         `json:"postTokenBalances"`
	InnerInstructions       []rpcInnerInstructionGroup `json:"innerInstructions"`
	LogMessages             []string                   `json:"logMessages"`
	Err                     any                        `json:"err"`
	Status                  any                        `json:"status"`
	ComputeUnitsConsumed    *uint64                    `json:"computeUnitsConsumed"`
	LoadedWritableAddresses []string                   `json:"loadedWritableAddresses"`
	LoadedReadonlyAddresses []string                   `json:"loadedReadonlyAddresses"`
}

// fromRPC normalizes a JSON-RPC-style transaction response into the
// canonical Transaction shape.
func fromRPC(raw []byte) (*model.Transaction, error) {
	var env rpcEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("normalizer: decode rpc envelope: %w", err)
	}

	instructions := make([]model.Instruction, len(env.Transaction.Message.Instructions))
	for i, in := range env.Transaction.Message.Instructions {
		instructions[i] = toInstruction(in)
	}

	lookups := make([]model.AddressTableLookup, len(env.Transaction.Message.AddressTableLookups))
	for i, lu := range env.Transaction.Message.AddressTableLookups {
		lookups[i] = toAddressLookup(lu)
	}

	innerGroups := make([]model.InnerInstructionGroup, len(env.Meta.InnerInstructions))
	for i, g := range env.Meta.InnerInstructions {
		instrs := make([]model.Instruction, len(g.Instructions))
		for j, in := range g.Instructions {
			instrs[j] = toInstruction(in)
		}
		innerGroups[i] = model.InnerInstructionGroup{Index: g.Index, Instructions: instrs}
	}

	preTB := make([]model.TokenBalance, len(env.Meta.PreTokenBalances))
	for i, tb := range env.Meta.PreTokenBalances {
		preTB[i] = toTokenBalance(tb)
	}
	postTB := make([]model.TokenBalance, len(env.Meta.PostTokenBalances))
	for i, tb := range env.Meta.PostTokenBalances {
		postTB[i] = toTokenBalance(tb)
	}

	return &model.Transaction{
		Slot:       env.Slot,
		BlockTime:  env.BlockTime,
		Signatures: env.Transaction.Signatures,
		Message: model.Message{
			AccountKeys:         env.Transaction.Message.AccountKeys,
			RecentBlockhash:     env.Transaction.Message.RecentBlockhash,
			Instructions:        instructions,
			AddressTableLookups: lookups,
		},
		Meta: model.Meta{
			Fee:                  env.Meta.Fee,
			PreBalances:          env.Meta.PreBalances,
			PostBalances:         env.Meta.PostBalances,
			PreTokenBalances:     preTB,
			PostTokenBalances:    postTB,
			InnerInstructions:    innerGroups,
			LogMessages:          env.Meta.LogMessages,
			Err:                  env.Meta.Err,
			Status:               env.Meta.Status,
			ComputeUnitsConsumed: env.Meta.ComputeUnitsConsumed,
		},
		LoadedAddresses: model.LoadedAddresses{
			Writable: env.Meta.LoadedWritableAddresses,
			Readonly: env.Meta.LoadedReadonlyAddresses,
		},
	}, nil
}
