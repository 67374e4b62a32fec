// Copyright 2026 Marko Milivojevic
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
//
// SPDX-License-Identifier: Apache-2.0

package encrypt

import (
	"fmt"
	"io"

	"filippo.io/age"
)

// AgeEncryptor implements the Encryptor interface using age X25519 recipients
type AgeEncryptor struct {
	recipient *age.X25519Recipient
}

// NewAgeEncryptor parses cfg.Recipient as an age X25519 recipient (age1...).
func NewAgeEncryptor(cfg Config) (*AgeEncryptor, error) {
	if cfg.Recipient == "" {
		return nil, fmt.Errorf("age recipient not configured")
	}

	recipient, err := age.ParseX25519Recipient(cfg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to parse age recipient: %w", err)
	}

	return &AgeEncryptor{recipient: recipient}, nil
}

// Encrypt encrypts the plaintext stream using age encryption
func (e *AgeEncryptor) Encrypt(plaintext io.Reader) (io.Reader, error) {
	return encryptPipe(plaintext, "age", func(w io.Writer) (io.WriteCloser, error) {
		return age.Encrypt(w, e.recipient)
	}), nil
}

// Type returns the encryption type
func (e *AgeEncryptor) Type() Method {
	return AGE
}

// GenerateX25519Identity generates a new age X25519 identity (key pair).
// Returns the identity string (AGE-SECRET-KEY-1...) and recipient string (age1...).
func GenerateX25519Identity() (identityStr, recipientStr string, err error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate age identity: %w", err)
	}
	return identity.String(), identity.Recipient().String(), nil
}
