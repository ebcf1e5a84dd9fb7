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

package soltxs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solana-tools/soltxs/errs"
	"github.com/solana-tools/soltxs/parser/events"
	"github.com/solana-tools/soltxs/resolver"
)

func rpcEnvelope(t *testing.T) []byte {
	t.Helper()
	payload := map[string]any{
		"slot":      12345,
		"blockTime": 1700000000,
		"transaction": map[string]any{
			"signatures": []string{"sig1"},
			"message": map[string]any{
				"accountKeys":      []string{"GfsJWjmGXMfct8JMR9Lm9ySUnniZbnGUTQDbT8ipWf9U", "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8", "3bCGPxy1g6K55LsxfvgmpPNjxrYDAjma4bEx6kUfeebY", "92W3NAoknC4RT98DEreipctAr2U9duMQp6wLozkZDZfm", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"},
				"recentBlockhash": "11111111111111111111111111111111111111111",
				"instructions": []map[string]any{
					{"programIdIndex": 1, "accounts": []int{2, 3, 0}, "data": "5ucmhStLiAKrJ5MPSCP4zv3"},
				},
			},
		},
		"meta": map[string]any{
			"fee":           5000,
			"preBalances":   []uint64{1000000000, 0, 0, 0, 0},
			"postBalances":  []uint64{999995000, 0, 0, 0, 0},
			"preTokenBalances": []map[string]any{
				{"accountIndex": 2, "mint": "So11111111111111111111111111111111111111112", "uiTokenAmount": map[string]any{"amount": "100000000", "decimals": 9}},
			},
			"innerInstructions": []map[string]any{
				{
					"index": 0,
					"instructions": []map[string]any{
						{"programIdIndex": 4, "accounts": []int{2, 3}, "data": "3QK1PgBtAWnb"},
					},
				},
			},
			"logMessages": []string{},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

// TestProcess_RaydiumBuy exercises scenario S1 end to end: normalize,
// parse, resolve.
func TestProcess_RaydiumBuy(t *testing.T) {
	result, err := Process(rpcEnvelope(t), events.Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"sig1"}, result.Signatures)
	require.Len(t, result.Events, 1)

	swap, ok := result.Events[0].(events.Swap)
	require.True(t, ok)
	require.Equal(t, uint64(100_000_000), swap.FromAmount)
	require.Equal(t, uint64(123456), swap.ToAmount)

	require.NotNil(t, result.Resolved)
	raydium, ok := result.Resolved.(resolver.Raydium)
	require.True(t, ok)
	require.Equal(t, "buy", raydium.Type)
}

func TestProcess_UnsupportedEnvelope(t *testing.T) {
	_, err := Process([]byte(`{"foo":"bar"}`), events.Options{})
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
}
