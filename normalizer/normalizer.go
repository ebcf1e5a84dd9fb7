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

// Package normalizer implements component C: turning either of the two
// heterogeneous upstream transaction encodings (RPC JSON or streaming/
// geyser envelope) into the canonical model.Transaction shape. Both
// adapters funnel through shared.go's helpers so the actual
// canonicalization logic lives in exactly one place.
package normalizer

import (
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/solana-tools/soltxs/errs"
	"github.com/solana-tools/soltxs/model"
)

// Normalize sniffs the shape of a raw transaction payload and dispatches
// to the matching adapter. The two shapes are told apart by whether
// `transaction` nests a second `transaction` object: the streaming/
// geyser envelope does (`transaction.transaction.{message,meta}`), the
// plain RPC response doesn't (`transaction.message` directly).
func Normalize(raw []byte) (*model.Transaction, error) {
	if _, _, _, err := jsonparser.Get(raw, "transaction", "transaction"); err == nil {
		return fromGeyser(raw)
	}
	if _, _, _, err := jsonparser.Get(raw, "transaction", "message"); err == nil {
		return fromRPC(raw)
	}
	return nil, fmt.Errorf("normalizer: %w", errs.ErrUnsupportedEncoding)
}
