// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"bytes"
	"io"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

// findSymmetricallyEncrypted returns the first SymmetricallyEncrypted
// packet in message, or nil.
func findSymmetricallyEncrypted(message []packet.Packet) *packet.SymmetricallyEncrypted {
	for _, p := range message {
		if se, ok := p.(*packet.SymmetricallyEncrypted); ok {
			return se
		}
	}
	return nil
}

// readPlaintextPackets reads the packets making up a decrypted message
// from r. Unlike packet.ReadMessage, it fully drains a LiteralData
// packet's Body into memory before asking r for the next packet: Read
// wraps r in a fresh bufio.Reader on every call, and any bytes that
// call has already buffered but a caller left unread in a streamed
// packet's Body would otherwise be skipped rather than handed to the
// next Read.
func readPlaintextPackets(r io.Reader) ([]packet.Packet, error) {
	var pkts []packet.Packet
	for {
		p, err := packet.Read(r)
		if err == io.EOF {
			return pkts, nil
		}
		if err != nil {
			return pkts, err
		}
		if ld, ok := p.(*packet.LiteralData); ok {
			body, err := io.ReadAll(ld.Body)
			if err != nil {
				return pkts, err
			}
			ld.Body = bytes.NewReader(body)
		}
		pkts = append(pkts, p)
	}
}

// openAndRead decrypts se with the given cipher and key, reads the
// resulting packets in full and, only once every byte has been
// consumed, closes the reader so the MDC check runs. A tampered or
// truncated stream is reported as an error here, not silently accepted.
func openAndRead(se *packet.SymmetricallyEncrypted, cipherFunc packet.CipherFunction, key []byte) ([]packet.Packet, error) {
	r, err := se.Decrypt(cipherFunc, key)
	if err != nil {
		return nil, err
	}
	pkts, err := readPlaintextPackets(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	if err := r.Close(); err != nil {
		return nil, err
	}
	return pkts, nil
}

// DecryptAsymmetric decrypts message using whichever of secretKeys
// unwraps one of its AsymmetricSessionKey packets. Per spec.md §7's
// propagation policy, a key that fails to decrypt a given session-key
// packet is tried against the rest before giving up; only once every
// combination has been exhausted is errors.KeyIncorrectError returned.
func DecryptAsymmetric(secretKeys []*packet.PrivateKey, message []packet.Packet) ([]packet.Packet, error) {
	se := findSymmetricallyEncrypted(message)
	if se == nil {
		return nil, errors.StructuralError("no symmetrically encrypted data packet found")
	}

	var encryptedKeys []*packet.EncryptedKey
	for _, p := range message {
		if ek, ok := p.(*packet.EncryptedKey); ok {
			encryptedKeys = append(encryptedKeys, ek)
		}
	}
	if len(encryptedKeys) == 0 {
		return nil, errors.StructuralError("no asymmetric session key packet found")
	}

	for _, ek := range encryptedKeys {
		for _, priv := range secretKeys {
			if priv == nil || priv.Encrypted || !priv.PubKeyAlgo.CanEncrypt() {
				continue
			}
			if err := ek.Decrypt(priv, nil); err != nil {
				continue
			}
			pkts, err := openAndRead(se, ek.CipherFunc, ek.Key)
			if err != nil {
				continue
			}
			return pkts, nil
		}
	}

	return nil, errors.KeyIncorrectError(0)
}

// DecryptSymmetric decrypts message using whichever of passphrases
// unwraps one of its SymmetricSessionKey packets. Errors from
// individual (passphrase, session-key packet) attempts are swallowed;
// only total failure surfaces errors.KeyIncorrectError.
func DecryptSymmetric(passphrases [][]byte, message []packet.Packet) ([]packet.Packet, error) {
	se := findSymmetricallyEncrypted(message)
	if se == nil {
		return nil, errors.StructuralError("no symmetrically encrypted data packet found")
	}

	var sessionKeyPackets []*packet.SymmetricKeyEncrypted
	for _, p := range message {
		if ske, ok := p.(*packet.SymmetricKeyEncrypted); ok {
			sessionKeyPackets = append(sessionKeyPackets, ske)
		}
	}
	if len(sessionKeyPackets) == 0 {
		return nil, errors.StructuralError("no symmetric session key packet found")
	}

	for _, ske := range sessionKeyPackets {
		for _, passphrase := range passphrases {
			key, cipherFunc, err := ske.Decrypt(passphrase)
			if err != nil {
				continue
			}
			pkts, err := openAndRead(se, cipherFunc, key)
			if err != nil {
				continue
			}
			return pkts, nil
		}
	}

	return nil, errors.KeyIncorrectError(0)
}
