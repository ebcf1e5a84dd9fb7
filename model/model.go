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

// Package model holds the canonical, encoding-independent transaction
// shape every upstream adapter normalizes into.
package model

// Transaction is the canonical representation of a decoded Solana
// transaction. All entities here are constructed once by the
// normalizer, are immutable afterwards, and are scoped to a single
// pipeline call.
type Transaction struct {
	Slot            uint64
	BlockTime       *uint64
	Signatures      []string
	Message         Message
	Meta            Meta
	LoadedAddresses LoadedAddresses
}

// Message mirrors the Solana transaction message: static account keys,
// the instruction list, and any address-table lookups.
type Message struct {
	AccountKeys         []string
	RecentBlockhash     string
	Instructions        []Instruction
	AddressTableLookups []AddressTableLookup
}

// Instruction is a single top-level or inner instruction. Data is kept
// as the wire string (base-58 or base-64); decoding is the parser's
// job so the normalizer never has to guess an encoding it can't
// disambiguate out of context.
type Instruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           string
	StackHeight    *uint32
}

// Meta mirrors the transaction status metadata: balances, inner
// instructions, logs, and the success/error status.
type Meta struct {
	Fee                  uint64
	PreBalances          []uint64
	PostBalances         []uint64
	PreTokenBalances     []TokenBalance
	PostTokenBalances    []TokenBalance
	InnerInstructions    []InnerInstructionGroup
	LogMessages          []string
	Err                  any
	Status               any
	ComputeUnitsConsumed *uint64
}

// TokenBalance is an SPL token balance snapshot for one account, taken
// either before or after the transaction executed.
type TokenBalance struct {
	AccountIndex  uint32
	Mint          string
	Owner         *string
	ProgramID     *string
	UiTokenAmount UiTokenAmount
}

// UiTokenAmount carries both the raw integer amount (as a decimal
// string, to avoid precision loss) and the decimals needed to scale it.
type UiTokenAmount struct {
	Amount         string
	Decimals       uint8
	UiAmount       *float64
	UiAmountString string
}

// InnerInstructionGroup groups the inner instructions spawned by a
// single top-level instruction, identified by its Index.
type InnerInstructionGroup struct {
	Index        uint32
	Instructions []Instruction
}

// LoadedAddresses holds the addresses resolved by the validator from
// the transaction's address-table lookups.
type LoadedAddresses struct {
	Writable []string
	Readonly []string
}

// AddressTableLookup references an on-chain lookup table and the
// indexes within it that this transaction resolves.
type AddressTableLookup struct {
	AccountKey      string
	WritableIndexes []uint8
	ReadonlyIndexes []uint8
}

// AllAccounts returns the full address universe for this transaction:
// the static account keys followed by the loaded writable and readonly
// addresses. Any program_id_index or instruction account index is an
// index into this slice.
func (t *Transaction) AllAccounts() []string {
	out := make([]string, 0, len(t.Message.AccountKeys)+len(t.LoadedAddresses.Writable)+len(t.LoadedAddresses.Readonly))
	out = append(out, t.Message.AccountKeys...)
	out = append(out, t.LoadedAddresses.Writable...)
	out = append(out, t.LoadedAddresses.Readonly...)
	return out
}

// AccountAt resolves an account-list index against AllAccounts,
// returning "" if the index is out of range rather than panicking:
// malformed upstream data should degrade to an Unknown event, not a
// crash.
func (t *Transaction) AccountAt(idx int) string {
	all := t.AllAccounts()
	if idx < 0 || idx >= len(all) {
		return ""
	}
	return all[idx]
}

// Signature returns the transaction's primary signature, or "" if the
// transaction carries none.
func (t *Transaction) Signature() string {
	if len(t.Signatures) == 0 {
		return ""
	}
	return t.Signatures[0]
}
