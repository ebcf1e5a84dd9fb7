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
	"sort"
	"strconv"

	"github.com/solana-tools/soltxs/model"
)

// TokenDelta is the net change of one (mint, owner) SPL token balance
// across the transaction.
type TokenDelta struct {
	Mint     string
	Owner    string
	Decimals uint8
	Pre      int64
	Post     int64
	Delta    int64
}

// TokenTransferSummary aggregates pre/post token balances into one net
// delta per (mint, owner) pair, independent of how many individual
// transfer instructions produced the movement.
type TokenTransferSummary struct{}

func (TokenTransferSummary) Name() string { return "token_transfer_summary" }

func (TokenTransferSummary) Enrich(tx *model.Transaction) (any, bool) {
	type key struct {
		mint, owner string
	}
	deltas := make(map[key]*TokenDelta)

	get := func(tb model.TokenBalance) (key, int64) {
		owner := ""
		if tb.Owner != nil {
			owner = *tb.Owner
		}
		amt, _ := strconv.ParseInt(tb.UiTokenAmount.Amount, 10, 64)
		return key{mint: tb.Mint, owner: owner}, amt
	}

	for _, tb := range tx.Meta.PreTokenBalances {
		k, amt := get(tb)
		d, ok := deltas[k]
		if !ok {
			d = &TokenDelta{Mint: k.mint, Owner: k.owner, Decimals: tb.UiTokenAmount.Decimals}
			deltas[k] = d
		}
		d.Pre += amt
	}
	for _, tb := range tx.Meta.PostTokenBalances {
		k, amt := get(tb)
		d, ok := deltas[k]
		if !ok {
			d = &TokenDelta{Mint: k.mint, Owner: k.owner, Decimals: tb.UiTokenAmount.Decimals}
			deltas[k] = d
		}
		d.Post += amt
	}

	if len(deltas) == 0 {
		return nil, false
	}

	out := make([]TokenDelta, 0, len(deltas))
	for _, d := range deltas {
		d.Delta = d.Post - d.Pre
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mint != out[j].Mint {
			return out[i].Mint < out[j].Mint
		}
		return out[i].Owner < out[j].Owner
	})
	return out, true
}
