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

// serializer is implemented by every packet type whose wire form is a
// fixed serialization of its fields (as opposed to LiteralData, whose
// body is an arbitrary-length stream).
type serializer interface {
	Serialize(io.Writer) error
}

func serializeSimple(w io.Writer, p packet.Packet) error {
	s, ok := p.(serializer)
	if !ok {
		return errors.InvalidArgumentError("message contains a packet type that cannot be serialized for encryption")
	}
	return s.Serialize(w)
}

// maxSessionKeyAttempts bounds the session-key generation retry loop;
// spec.md §4.5 calls for giving up after 1000 draws for ciphers whose
// keyspace can reject a candidate by construction. None of this core's
// ciphers (AES-128/192/256, Blowfish-128) have such a
// restriction, so the loop always succeeds on its first iteration, but
// the bound is kept to mirror the documented contract.
const maxSessionKeyAttempts = 1000

// Encrypt serializes message, symmetrically encrypts it under a freshly
// generated session key using symAlgo, and wraps that session key in an
// AsymmetricSessionKey packet for every key in publicKeys. The returned
// packet slice is the asymmetric session-key packets followed by the
// single SymmetricallyEncrypted data packet.
func Encrypt(publicKeys []*packet.PublicKey, symAlgo packet.CipherFunction, message []packet.Packet, rand io.Reader, config *packet.Config) ([]packet.Packet, error) {
	if len(publicKeys) == 0 {
		return nil, errors.InvalidArgumentError("no recipient keys given")
	}
	for _, pub := range publicKeys {
		if !pub.PubKeyAlgo.CanEncrypt() {
			return nil, errors.InvalidArgumentError("recipient key cannot encrypt")
		}
	}

	keySize := symAlgo.KeySize()
	if keySize == 0 {
		return nil, errors.UnsupportedError("unsupported symmetric cipher")
	}
	if config == nil {
		config = &packet.Config{}
	}
	if rand != nil {
		config.Rand = rand
	}

	var sessionKey []byte
	for attempt := 0; attempt < maxSessionKeyAttempts; attempt++ {
		candidate := make([]byte, keySize)
		if _, err := io.ReadFull(config.Random(), candidate); err != nil {
			return nil, err
		}
		sessionKey = candidate
		break
	}
	if sessionKey == nil {
		return nil, errors.InvalidArgumentError("could not generate a usable session key")
	}

	var plaintext bytes.Buffer
	for _, p := range message {
		if ld, ok := p.(*packet.LiteralData); ok {
			lw, err := packet.SerializeLiteral(nopWriteCloser{&plaintext}, ld.IsBinary, ld.FileName, ld.Time)
			if err != nil {
				return nil, err
			}
			if _, err := io.Copy(lw, ld.Body); err != nil {
				return nil, err
			}
			if err := lw.Close(); err != nil {
				return nil, err
			}
			continue
		}
		if err := serializeSimple(&plaintext, p); err != nil {
			return nil, err
		}
	}

	var out []packet.Packet
	for _, pub := range publicKeys {
		var ekBuf bytes.Buffer
		if err := packet.SerializeEncryptedKey(&ekBuf, pub, symAlgo, sessionKey, config); err != nil {
			return nil, err
		}
		ek, err := packet.Read(&ekBuf)
		if err != nil {
			return nil, err
		}
		out = append(out, ek)
	}

	var seBuf bytes.Buffer
	w, err := packet.SerializeSymmetricallyEncrypted(&seBuf, symAlgo, sessionKey, config)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(plaintext.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	se, err := packet.Read(&seBuf)
	if err != nil {
		return nil, err
	}
	out = append(out, se)

	return out, nil
}

// nopWriteCloser adapts an io.Writer to io.WriteCloser with a no-op
// Close, for callees that require a closable stream header writer but
// whose destination (an in-memory buffer) needs no closing of its own.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
