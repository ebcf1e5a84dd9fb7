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

import "github.com/solana-tools/soltxs/model"

// wireInstruction is the shape shared by both adapters for a
// compiled instruction whose accounts are already an index array
// (every top-level instruction, and RPC-style inner instructions).
type wireInstruction struct {
	ProgramIDIndex uint8   `json:"programIdIndex"`
	Accounts       []uint8 `json:"accounts"`
	Data           string  `json:"data"`
	StackHeight    *uint32 `json:"stackHeight,omitempty"`
}

func toInstruction(w wireInstruction) model.Instruction {
	return model.Instruction{
		ProgramIDIndex: w.ProgramIDIndex,
		Accounts:       w.Accounts,
		Data:           w.Data,
		StackHeight:    w.StackHeight,
	}
}

type wireAddressLookup struct {
	AccountKey      string  `json:"accountKey"`
	WritableIndexes []uint8 `json:"writableIndexes"`
	ReadonlyIndexes []uint8 `json:"readonlyIndexes"`
}

func toAddressLookup(w wireAddressLookup) model.AddressTableLookup {
	return model.AddressTableLookup{
		AccountKey:      w.AccountKey,
		WritableIndexes: w.WritableIndexes,
		ReadonlyIndexes: w.ReadonlyIndexes,
	}
}

type wireUiTokenAmount struct {
	Amount         string   `json:"amount"`
	Decimals       uint8    `json:"decimals"`
	UiAmount       *float64 `json:"uiAmount"`
	UiAmountString string   `json:"uiAmountString"`
}

type wireTokenBalance struct {
	AccountIndex  uint32            `json:"accountIndex"`
	Mint          string            `json:"mint"`
	Owner         *string           `json:"owner"`
	ProgramID     *string           `json:"programId"`
	UiTokenAmount wireUiTokenAmount `json:"uiTokenAmount"`
}

// toTokenBalance normalizes a token balance entry. Mint/owner/programId
// are plain base-58 strings in both the RPC and streaming encodings;
// only the UiAmount is tolerated as missing.
func toTokenBalance(w wireTokenBalance) model.TokenBalance {
	return model.TokenBalance{
		AccountIndex: w.AccountIndex,
		Mint:         w.Mint,
		Owner:        w.Owner,
		ProgramID:    w.ProgramID,
		UiTokenAmount: model.UiTokenAmount{
			Amount:         w.UiTokenAmount.Amount,
			Decimals:       w.UiTokenAmount.Decimals,
			UiAmount:       w.UiTokenAmount.UiAmount,
			UiAmountString: w.UiTokenAmount.UiAmountString,
		},
	}
}
