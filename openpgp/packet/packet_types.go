// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto"
	"crypto/cipher"

	"github.com/openpgp-core/pgpcore/openpgp/internal/algorithm"
)

// PublicKeyAlgorithm represents the different public key system specified
// for OpenPGP. See RFC 4880, section 9.1. Only the entries the core
// supports (RSA variants and DSA) have a home in algorithmSpecificByteCount
// and friends; the rest of the RFC 4880 number space is recognized here
// for completeness of parsing error messages only.
type PublicKeyAlgorithm uint8

const (
	PubKeyAlgoRSA            PublicKeyAlgorithm = 1
	PubKeyAlgoRSAEncryptOnly PublicKeyAlgorithm = 2
	PubKeyAlgoRSASignOnly    PublicKeyAlgorithm = 3
	PubKeyAlgoElGamal        PublicKeyAlgorithm = 16
	PubKeyAlgoDSA            PublicKeyAlgorithm = 17
	PubKeyAlgoECDH           PublicKeyAlgorithm = 18
	PubKeyAlgoECDSA          PublicKeyAlgorithm = 19
	PubKeyAlgoEdDSA          PublicKeyAlgorithm = 22

	// ExperimentalPubKeyAlgoHMAC is used by some legacy software to mark
	// signatures made by a shared-secret HMAC rather than a signature
	// algorithm proper; unsupported here but recognized so parse errors
	// can name it.
	ExperimentalPubKeyAlgoHMAC PublicKeyAlgorithm = 0xf8
)

// CanSign returns true iff the algorithm is capable of signing.
func (pka PublicKeyAlgorithm) CanSign() bool {
	switch pka {
	case PubKeyAlgoRSA, PubKeyAlgoRSASignOnly, PubKeyAlgoDSA:
		return true
	}
	return false
}

// CanEncrypt returns true iff the algorithm is capable of encrypting.
func (pka PublicKeyAlgorithm) CanEncrypt() bool {
	switch pka {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly:
		return true
	}
	return false
}

// CipherFunction represents the different block ciphers specified for
// OpenPGP. See RFC 4880, section 9.2.
type CipherFunction uint8

const (
	Cipher3DES     CipherFunction = 2
	CipherCAST5    CipherFunction = 3
	CipherBlowfish CipherFunction = 4
	CipherAES128   CipherFunction = 7
	CipherAES192   CipherFunction = 8
	CipherAES256   CipherFunction = 9
)

// KeySize returns the key size, in bytes, of cipher.
func (cipherFunc CipherFunction) KeySize() int {
	if c, ok := algorithm.CipherById[uint8(cipherFunc)]; ok {
		return c.KeySize()
	}
	return 0
}

// blockSize returns the block size, in bytes, of cipher.
func (cipherFunc CipherFunction) blockSize() int {
	if c, ok := algorithm.CipherById[uint8(cipherFunc)]; ok {
		return c.BlockSize()
	}
	return 0
}

// IsSupported reports whether cipherFunc is one of the ciphers the core
// implements.
func (cipherFunc CipherFunction) IsSupported() bool {
	_, ok := algorithm.CipherById[uint8(cipherFunc)]
	return ok
}

// new returns a fresh cipher.Block for the given key, or nil if the
// cipher is not supported.
func (cipherFunc CipherFunction) new(key []byte) (block cipher.Block) {
	c, ok := algorithm.CipherById[uint8(cipherFunc)]
	if !ok {
		return nil
	}
	return c.New(key)
}

// SignatureType represents the different semantic meanings of an OpenPGP
// signature. See RFC 4880, section 5.2.1.
type SignatureType uint8

const (
	SigTypeBinary         SignatureType = 0x00
	SigTypeText           SignatureType = 0x01
	SigTypeGenericCert    SignatureType = 0x10
	SigTypePersonaCert    SignatureType = 0x11
	SigTypeCasualCert     SignatureType = 0x12
	SigTypePositiveCert   SignatureType = 0x13
	SigTypeSubkeyBinding  SignatureType = 0x18
	SigTypePrimaryKeyBinding SignatureType = 0x19
	SigTypeDirectSignature   SignatureType = 0x1F
	SigTypeKeyRevocation     SignatureType = 0x20
	SigTypeSubkeyRevocation  SignatureType = 0x28
	SigTypeCertificationRevocation SignatureType = 0x30
)

// hashIdToHash maps RFC 4880 section 9.4 hash ids to the stdlib
// crypto.Hash used for signing and verification.
func hashIdToHash(id byte) (crypto.Hash, bool) {
	h, ok := algorithm.HashById[id]
	if !ok {
		return 0, false
	}
	return h.HashFunc(), true
}

// hashToHashId is the inverse of hashIdToHash.
func hashToHashId(h crypto.Hash) (byte, bool) {
	a, ok := algorithm.FromCryptoHash(h)
	if !ok {
		return 0, false
	}
	return a.Id(), true
}
