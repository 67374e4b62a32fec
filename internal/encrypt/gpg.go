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
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// GPGEncryptor implements the Encryptor interface using OpenPGP
type GPGEncryptor struct {
	keyring openpgp.EntityList
}

// NewGPGEncryptor loads the public keyring named by cfg.PublicKey
func NewGPGEncryptor(cfg Config) (*GPGEncryptor, error) {
	keyring, err := loadPublicKeyring(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load public keys: %w", err)
	}
	return &GPGEncryptor{keyring: keyring}, nil
}

// Encrypt encrypts the plaintext stream using binary OpenPGP format
func (e *GPGEncryptor) Encrypt(plaintext io.Reader) (io.Reader, error) {
	return encryptPipe(plaintext, "gpg", func(w io.Writer) (io.WriteCloser, error) {
		return openpgp.Encrypt(w, e.keyring, nil, nil, nil)
	}), nil
}

// Type returns the encryption type
func (e *GPGEncryptor) Type() Method {
	return GPG
}

// loadPublicKeyring reads an armored or binary public keyring from path
func loadPublicKeyring(path string) (openpgp.EntityList, error) {
	if path == "" {
		return nil, fmt.Errorf("public key path not configured")
	}

	keyFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open public key file %s: %w", path, err)
	}
	defer keyFile.Close()

	// Try armored format first
	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		if _, err := keyFile.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind public key file: %w", err)
		}
		keyring, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read public keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("no public keys found in %s", path)
	}

	return keyring, nil
}
