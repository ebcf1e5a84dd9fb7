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

// Package soltxs stitches the normalizer, parser, addons, and
// resolver stages into the single Process entry point most callers
// want. Each stage is independently importable for callers who only
// need one piece.
package soltxs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/solana-tools/soltxs/model"
	"github.com/solana-tools/soltxs/normalizer"
	"github.com/solana-tools/soltxs/parser"
	"github.com/solana-tools/soltxs/parser/addons"
	"github.com/solana-tools/soltxs/parser/events"
	"github.com/solana-tools/soltxs/resolver"
)

// Result is the Process output shape: signatures, the flat event
// list, the addon map, and an optional resolved high-level summary.
type Result struct {
	Signatures []string
	Events     []events.Event
	Addons     map[string]any
	Resolved   resolver.Resolve // nil when no resolver matched
}

// logger is the package-wide structured logger. It defaults to a
// no-op core; callers that want diagnostics call SetLogger.
var logger = zap.NewNop()

// SetLogger replaces the package-wide logger used for per-instruction
// diagnostics. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Normalize converts a raw upstream transaction payload (RPC or
// streaming/geyser shape) into the canonical model.Transaction. It
// fails loudly on an unrecognized envelope.
func Normalize(raw []byte) (*model.Transaction, error) {
	tx, err := normalizer.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("soltxs: normalize: %w", err)
	}
	return tx, nil
}

// Parse routes every top-level instruction through the program
// registry and collapses duplicate trades. It never fails: an
// instruction of an unregistered program that the heuristic fallback
// cannot decode surfaces as events.Unknown, and a registered program's
// parser reports a payload it cannot decode as a program-tagged
// events.Descriptor (e.g. "Malformed").
func Parse(tx *model.Transaction, opts events.Options) []events.Event {
	evs := parser.Parse(tx, opts)
	deduped := parser.Deduplicate(evs)
	if logger.Core().Enabled(zap.DebugLevel) {
		for _, e := range deduped {
			if u, ok := e.(events.Unknown); ok {
				logger.Debug("unparsed instruction",
					zap.String("program_id", u.ProgramID),
					zap.Int("instruction_index", u.InstructionIndex),
				)
			}
		}
	}
	return deduped
}

// Resolve reduces evs to a single high-level summary, if any resolver
// matches. Only one resolver is expected to match per transaction.
func Resolve(evs []events.Event) (resolver.Resolve, bool) {
	return resolver.ResolveAll(evs)
}

// Process runs the full pipeline: normalize, parse, enrich, resolve.
func Process(raw []byte, opts events.Options) (*Result, error) {
	tx, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	evs := Parse(tx, opts)
	addonValues := addons.Run(tx)
	resolved, ok := Resolve(evs)
	if !ok {
		resolved = nil
	} else {
		logger.Debug("resolved transaction", zap.String("signature", tx.Signature()))
	}

	return &Result{
		Signatures: tx.Signatures,
		Events:     evs,
		Addons:     addonValues,
		Resolved:   resolved,
	}, nil
}
