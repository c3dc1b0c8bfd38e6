// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"strconv"
	"strings"

	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

// wildcardKeyId is the sixteen ASCII zero key id that matches any key,
// per RFC 4880, section 5.1.
const wildcardKeyId = "0000000000000000"

// KeyRing is a read-only collection of public and private keys, indexed
// by key id for the signing, verification and decryption lookups the
// top-level operations perform. It holds no trust or revocation state:
// callers are responsible for deciding which keys belong in the ring.
type KeyRing struct {
	Public  []*packet.PublicKey
	Private []*packet.PrivateKey
}

// keyIdString renders a key id as the lowercase sixteen-hex-digit form
// used for key-id matching.
func keyIdString(id uint64) string {
	s := strconv.FormatUint(id, 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

// keyIdMatches reports whether keyID names candidate, comparing the
// trailing suffix of the hex key id as spec.md §4.3 describes ("key-id
// match compares the suffix of the fingerprint"). An empty keyID or the
// all-zero wildcard matches every key.
func keyIdMatches(keyID string, candidate uint64) bool {
	if keyID == "" || keyID == wildcardKeyId {
		return true
	}
	full := keyIdString(candidate)
	keyID = strings.ToLower(keyID)
	if len(keyID) > len(full) {
		return false
	}
	return strings.HasSuffix(full, keyID)
}

// DecryptionKeys returns every private key in the ring capable of
// asymmetric decryption (RSA only; DSA cannot decrypt) whose key id
// matches keyID.
func (kr *KeyRing) DecryptionKeys(keyID string) []*packet.PrivateKey {
	var matches []*packet.PrivateKey
	for _, priv := range kr.Private {
		if priv.PubKeyAlgo.CanEncrypt() && keyIdMatches(keyID, priv.KeyId) {
			matches = append(matches, priv)
		}
	}
	return matches
}

// SigningKey returns the first private key in the ring that can sign
// and whose key id matches keyID, or nil if none does.
func (kr *KeyRing) SigningKey(keyID string) *packet.PrivateKey {
	for _, priv := range kr.Private {
		if priv.CanSign() && keyIdMatches(keyID, priv.KeyId) {
			return priv
		}
	}
	return nil
}

// verificationKey returns the public key (standalone or the public half
// of a held private key) whose key id is exactly id, or nil.
func (kr *KeyRing) verificationKey(id uint64) *packet.PublicKey {
	for _, pub := range kr.Public {
		if pub.KeyId == id {
			return pub
		}
	}
	for _, priv := range kr.Private {
		if priv.KeyId == id {
			return &priv.PublicKey
		}
	}
	return nil
}
