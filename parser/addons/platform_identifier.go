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

import "github.com/solana-tools/soltxs/model"

// platformTable maps well-known frontend router addresses to the
// platform name shown to end users.
var platformTable = map[string]string{
	"tro46jTMkb56A3wPepo5HT7JcvX9wFWvR8VaJzgdjEf": "Trojan",
	"9RYJ3qr5eU5xAooqVcbmdeusjcViL5Nkiq7Gske3tiKq": "BullX",
	"AVUCZyuT35YSuj4RH7fwiyPu82Djn2Hfg7y2ND2XcnZH": "Photon",
}

// Platform is the (address, name) pair returned when
// PlatformIdentifier finds a match.
type Platform struct {
	Address string
	Name    string
}

// PlatformIdentifier scans the transaction's full account list for a
// known frontend router address, returning the first match.
type PlatformIdentifier struct{}

func (PlatformIdentifier) Name() string { return "platform_identifier" }

func (PlatformIdentifier) Enrich(tx *model.Transaction) (any, bool) {
	for _, acct := range tx.AllAccounts() {
		if name, found := platformTable[acct]; found {
			return Platform{Address: acct, Name: name}, true
		}
	}
	return nil, false
}
