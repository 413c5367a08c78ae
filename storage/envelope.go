// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

const envelopeVersion = 1

// envelope wraps a collection payload with the format version and a
// checksum of the payload bytes.
type envelope struct {
	Version  int             `json:"version"`
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

func payloadChecksum(payload []byte) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeEnvelope wraps a JSON payload for storage.
func EncodeEnvelope(payload []byte) ([]byte, error) {
	data, err := json.Marshal(envelope{
		Version:  envelopeVersion,
		Checksum: payloadChecksum(payload),
		Payload:  payload,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return data, nil
}

// DecodeEnvelope validates data and unwraps its payload. Any failure
// (not JSON, unsupported version, checksum mismatch) is reported as
// ErrCorruptPayload.
func DecodeEnvelope(data []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptPayload, err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptPayload, env.Version)
	}
	if payloadChecksum(env.Payload) != env.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptPayload)
	}
	return env.Payload, nil
}
