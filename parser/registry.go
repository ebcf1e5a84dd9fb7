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
	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/parser/events"
	"github.com/solana-tools/soltxs/parser/parsers"
)

// ProgramParser is the common contract every program-specific decoder
// satisfies. Implementations live in package parsers;
// ProgramParser is declared here, not there, so the registry can be
// built without parsers importing back into this package.
type ProgramParser interface {
	ProgramID() string
	ProgramName() string
	Parse(tx *model.Transaction, instructionIndex int, opts events.Options) events.Event
}

// registry is the static program_address → ProgramParser map, built
// once at package init and never mutated afterwards.
var registry = buildRegistry()

func buildRegistry() map[string]ProgramParser {
	known := []ProgramParser{
		parsers.SystemParser{},
		parsers.ComputeBudgetParser{},
		parsers.TokenProgramParser{},
		parsers.RaydiumAMMParser{},
		parsers.PumpFunParser{},
		parsers.MortemParser{},
	}
	out := make(map[string]ProgramParser, len(known))
	for _, p := range known {
		out[p.ProgramID()] = p
	}
	return out
}

// Route resolves the instruction's program via the transaction's full
// account list and dispatches to the matching registered parser,
// falling back to the unknown-program heuristic parser when the
// program id isn't registered.
func Route(tx *model.Transaction, instructionIndex int, opts events.Options) events.Event {
	instr := tx.Message.Instructions[instructionIndex]
	programID := tx.AccountAt(int(instr.ProgramIDIndex))

	if p, ok := registry[programID]; ok {
		return p.Parse(tx, instructionIndex, opts)
	}
	return parsers.NewUnknownParser(programID).Parse(tx, instructionIndex, opts)
}

// Parse walks every top-level instruction in wire order and routes
// each to its program parser, preserving instruction order in the
// returned event list.
func Parse(tx *model.Transaction, opts events.Options) []events.Event {
	out := make([]events.Event, len(tx.Message.Instructions))
	for i := range tx.Message.Instructions {
		out[i] = Route(tx, i, opts)
	}
	return out
}
