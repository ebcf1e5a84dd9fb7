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

// Package errs holds the sentinel error taxonomy shared by every stage
// of the decode pipeline (normalizer, parser, resolver).
package errs

import "errors"

var (
	// ErrUnsupportedEncoding is returned by the normalizer when the raw
	// envelope doesn't match any known upstream shape. Fatal for the
	// whole transaction.
	ErrUnsupportedEncoding = errors.New("soltxs: unsupported transaction encoding")

	// ErrInvalidAddress is returned by the address codec on malformed
	// wire addresses.
	ErrInvalidAddress = errors.New("soltxs: invalid address")

	// ErrInvalidBase64 is returned by the base-64 codec helpers, and by
	// TolerantDecode when neither base-58 nor base-64 accepts a payload.
	// No helper in this module returns ErrInvalidBase58.
	ErrInvalidBase58 = errors.New("soltxs: invalid base58 payload")
	ErrInvalidBase64 = errors.New("soltxs: invalid base64 payload")

	// ErrTruncatedPayload and ErrUnknownDiscriminator are per-instruction
	// conditions; they never fail the pipeline, they surface as Unknown
	// events.
	ErrTruncatedPayload     = errors.New("soltxs: truncated instruction payload")
	ErrUnknownDiscriminator = errors.New("soltxs: unknown discriminator")

	// ErrDecimalsUnknown names a condition of Mortem's strict handlers,
	// which report it as a Descriptor event named "DecimalsUnknown"; no
	// function returns this sentinel.
	ErrDecimalsUnknown = errors.New("soltxs: could not resolve mint decimals")

	// ErrNoSwapDataFound names a condition of Mortem's strict handlers,
	// which report it as a Descriptor event named "NoSwapDataFound"; no
	// function returns this sentinel.
	ErrNoSwapDataFound = errors.New("soltxs: no swap data found in inner instructions")
)
