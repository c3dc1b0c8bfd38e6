// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto"
	cryptorand "crypto/rand"
	"io"
	"time"

	"github.com/openpgp-core/pgpcore/openpgp/s2k"
)

// Config collects a number of parameters along with sensible defaults.
// A nil *Config is valid and results in all default values.
type Config struct {
	// Rand provides the source of entropy for key generation, signing
	// and encryption. If nil, the crypto/rand package's Reader is used.
	Rand io.Reader
	// DefaultHash is the default hash function to be used. If zero,
	// SHA-256 is used.
	DefaultHash crypto.Hash
	// DefaultCipher is the cipher to be used. If zero, AES-128 is used.
	DefaultCipher CipherFunction
	// Time returns the time that should be used as the current time.
	// If nil, time.Now is used.
	Time func() time.Time
	// S2KConfig configures how the library creates string-to-key
	// specifiers when protecting private keys and symmetric session
	// keys with a passphrase. If nil, sensible defaults are used.
	S2KConfig *s2k.Config
}

func (c *Config) Random() io.Reader {
	if c == nil || c.Rand == nil {
		return cryptorand.Reader
	}
	return c.Rand
}

func (c *Config) Hash() crypto.Hash {
	if c == nil || uint(c.DefaultHash) == 0 {
		return crypto.SHA256
	}
	return c.DefaultHash
}

func (c *Config) Cipher() CipherFunction {
	if c == nil || uint8(c.DefaultCipher) == 0 {
		return CipherAES128
	}
	return c.DefaultCipher
}

func (c *Config) Now() time.Time {
	if c == nil || c.Time == nil {
		return time.Now()
	}
	return c.Time()
}

func (c *Config) S2K() *s2k.Config {
	if c == nil {
		return nil
	}
	return c.S2KConfig
}
