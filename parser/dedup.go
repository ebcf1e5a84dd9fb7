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

import "github.com/solana-tools/soltxs/parser/events"

// Deduplicate collapses duplicate Buy/Sell/Swap events by their
// composite key, keeping the first occurrence and preserving order.
// Every other event kind passes through unconditionally.
func Deduplicate(evs []events.Event) []events.Event {
	seen := make(map[events.DedupKey]bool, len(evs))
	out := make([]events.Event, 0, len(evs))
	for _, e := range evs {
		if e == nil {
			continue
		}
		key, isTrade := events.IsTrade(e)
		if !isTrade {
			out = append(out, e)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
