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
	"encoding/base64"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/solana-tools/soltxs/errs"
)

const raydiumProgram = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
const wallet = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func rpcPayload() []byte {
	return []byte(`{
		"slot": 1,
		"blockTime": 1700000000,
		"transaction": {
			"signatures": ["sig1"],
			"message": {
				"accountKeys": ["` + wallet + `", "` + raydiumProgram + `"],
				"recentBlockhash": "` + wallet + `",
				"instructions": [
					{"programIdIndex": 1, "accounts": [0, 1], "data": "abc"}
				],
				"addressTableLookups": []
			}
		},
		"meta": {
			"fee": 5000,
			"preBalances": [1, 2],
			"postBalances": [1, 2],
			"innerInstructions": [],
			"logMessages": [],
			"err": null,
			"status": null
		}
	}`)
}

func geyserPayload() []byte {
	walletB64 := base64.StdEncoding.EncodeToString(mustBase58Decode(wallet))
	programB64 := base64.StdEncoding.EncodeToString(mustBase58Decode(raydiumProgram))
	return []byte(`{
		"slot": 1,
		"transaction": {
			"transaction": {
				"signatures": ["sig1"],
				"message": {
					"accountKeys": ["` + walletB64 + `", "` + programB64 + `"],
					"recentBlockhash": "` + walletB64 + `",
					"instructions": [
						{"programIdIndex": 1, "accounts": [0, 1], "data": "abc"}
					],
					"addressTableLookups": []
				}
			},
			"meta": {
				"fee": 5000,
				"preBalances": [1, 2],
				"postBalances": [1, 2],
				"innerInstructions": [],
				"logMessages": [],
				"err": null,
				"status": null
			}
		}
	}`)
}

func mustBase58Decode(s string) []byte {
	raw, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	return raw
}

// TestNormalize_RPCAndGeyserAgree exercises scenario S4: an RPC payload
// and its streaming-feed equivalent (base-64 addresses, nested envelope)
// must normalize to the same account keys, instructions, signatures and
// fee (property 7). BlockTime is not compared: the streaming feed
// carries none.
func TestNormalize_RPCAndGeyserAgree(t *testing.T) {
	rpcTx, err := Normalize(rpcPayload())
	require.NoError(t, err)

	geyserTx, err := Normalize(geyserPayload())
	require.NoError(t, err)

	require.Equal(t, rpcTx.Message.AccountKeys, geyserTx.Message.AccountKeys)
	require.Equal(t, rpcTx.Message.Instructions, geyserTx.Message.Instructions)
	require.Equal(t, rpcTx.Signatures, geyserTx.Signatures)
	require.Equal(t, rpcTx.Meta.Fee, geyserTx.Meta.Fee)
}

func TestNormalize_GeyserHasNoBlockTime(t *testing.T) {
	tx, err := Normalize(geyserPayload())
	require.NoError(t, err)
	require.Nil(t, tx.BlockTime)
}

func TestNormalize_UnsupportedShape(t *testing.T) {
	_, err := Normalize([]byte(`{"foo": "bar"}`))
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
}

func TestNormalize_Deterministic(t *testing.T) {
	payload := rpcPayload()
	first, err := Normalize(payload)
	require.NoError(t, err)
	second, err := Normalize(payload)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
