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

// Package resolver implements component I: reducing a transaction's
// parsed event list down to at most one high-level, human-readable
// summary. Only one resolver is expected to match per transaction;
// callers that need the first match across every known resolver
// should use ResolveAll.
package resolver

import "github.com/solana-tools/soltxs/parser/events"

// Resolve is satisfied by PumpFun and Raydium, the two resolved
// summary types. It exists purely so Resolve can return either without
// resorting to any.
type Resolve interface {
	isResolve()
}

// Resolver reduces a flat event list to at most one resolved summary.
type Resolver interface {
	Resolve(evs []events.Event) (Resolve, bool)
}

// All is the ordered set of resolvers tried by ResolveAll.
var All = []Resolver{
	PumpFunResolver,
	RaydiumResolver,
}

// ResolveAll runs every known resolver against evs and returns the
// first match. At most one resolver is expected to ever match a given
// transaction, so first-match is equivalent to only-match.
func ResolveAll(evs []events.Event) (Resolve, bool) {
	for _, r := range All {
		if resolved, ok := r.Resolve(evs); ok {
			return resolved, true
		}
	}
	return nil, false
}
