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

// Package events defines the closed event union produced by every
// program parser and the unknown-program heuristic fallback, plus the
// Options that tune the heuristic parser. It is a leaf package: both
// the parser registry and the individual program decoders depend on
// it, and it depends on nothing in this module.
package events

// Event is the closed tagged union every program parser and the
// heuristic fallback produce. Concrete members are Transfer, Buy,
// Sell, Swap, Descriptor, and Unknown.
type Event interface {
	isEvent()
	// Kind identifies the concrete event type for dedup and resolver
	// dispatch ("Transfer", "Buy", "Sell", "Swap", "Descriptor", "Unknown").
	Kind() string
}

// DedupKey is the composite identity used by the deduplicator and the
// unknown-parser's internal dedup pass. Only Buy/Sell/Swap events
// carry one.
type DedupKey struct {
	Signature       string
	InstructionName string
	Who             string
	FromToken       string
	ToToken         string
	FromDecimals    uint8
	ToDecimals      uint8
	FromAmount      uint64
	ToAmount        uint64
}

// Trade holds the fields shared by Buy, Sell, and Swap.
type Trade struct {
	Signature       string
	Origin          string // program id that actually produced this event
	ProgramName     string // human-readable name of Origin
	InstructionName string // "buy", "sell", or "swap"; the unknown-program fallback uses "Buy" or "Sell"
	Who             string
	FromToken       string
	FromDecimals    uint8
	ToToken         string
	ToDecimals      uint8
	FromAmount      uint64
	ToAmount        uint64

	PreTokenBalance  *uint64
	PostTokenBalance *uint64
	PreSolBalance    *uint64
	PostSolBalance   *uint64
}

// DedupKey builds the composite key used to collapse duplicate trades.
func (t Trade) DedupKey() DedupKey {
	return DedupKey{
		Signature:       t.Signature,
		InstructionName: t.InstructionName,
		Who:             t.Who,
		FromToken:       t.FromToken,
		ToToken:         t.ToToken,
		FromDecimals:    t.FromDecimals,
		ToDecimals:      t.ToDecimals,
		FromAmount:      t.FromAmount,
		ToAmount:        t.ToAmount,
	}
}

// Buy is a token purchase: SOL/WSOL (or another base token) in,
// FromToken out, ToToken in.
type Buy struct{ Trade }

func (Buy) isEvent()     {}
func (Buy) Kind() string { return "Buy" }

// Sell is the inverse of Buy.
type Sell struct{ Trade }

func (Sell) isEvent()     {}
func (Sell) Kind() string { return "Sell" }

// Swap is a generic AMM swap (RaydiumAMM and the heuristic fallback).
type Swap struct {
	Trade
	MinimumAmountOut uint64
}

func (Swap) isEvent()     {}
func (Swap) Kind() string { return "Swap" }

// Transfer is an SPL token-program Transfer or TransferChecked event.
type Transfer struct {
	ProgramID   string
	ProgramName string
	From        string
	To          string
	Authority   string
	Mint        string // only populated for TransferChecked
	Decimals    *uint8 // only populated for TransferChecked
	Amount      uint64
}

func (Transfer) isEvent()     {}
func (Transfer) Kind() string { return "Transfer" }

// Descriptor is a thin, program-tagged catch-all for instructions that
// carry no trading semantics of their own: System, ComputeBudget, the
// non-transfer SPL token-program instructions (MintTo, Burn,
// InitializeAccount, CloseAccount), and PumpFun's Create.
type Descriptor struct {
	ProgramID       string
	ProgramName     string
	InstructionName string
	Fields          map[string]any
}

func (Descriptor) isEvent()     {}
func (Descriptor) Kind() string { return "Descriptor" }

// Unknown is emitted by the heuristic fallback when none of its
// strategies decodes an instruction of an unregistered program.
// Registered parsers report undecodable payloads as Descriptor events
// instead. ProgramName and InstructionName are always "Unknown".
type Unknown struct {
	ProgramID        string
	ProgramName      string
	InstructionName  string
	InstructionIndex int
}

func (Unknown) isEvent()     {}
func (Unknown) Kind() string { return "Unknown" }

// IsTrade reports whether e is a Buy, Sell, or Swap and returns its
// dedup key.
func IsTrade(e Event) (DedupKey, bool) {
	switch v := e.(type) {
	case Buy:
		return v.DedupKey(), true
	case Sell:
		return v.DedupKey(), true
	case Swap:
		return v.DedupKey(), true
	default:
		return DedupKey{}, false
	}
}
