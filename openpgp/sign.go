// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"bytes"
	"crypto"
	"io"
	"time"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

// splitMessage partitions a flat packet list into the signatures it
// carries and every other packet, preserving relative order within each
// half. This is the "signatures_and_data" split spec.md §6 names.
func splitMessage(pkts []packet.Packet) (sigs []*packet.Signature, rest []packet.Packet) {
	for _, p := range pkts {
		if sig, ok := p.(*packet.Signature); ok {
			sigs = append(sigs, sig)
			continue
		}
		rest = append(rest, p)
	}
	return
}

// signatureTemplate returns the first Signature packet in message, or
// nil if none is present. spec.md §4.4 Signing step 3: when a message
// already carries a Signature packet, Sign reuses its version, type
// and subpackets rather than fabricating a fresh v4 signature.
func signatureTemplate(message []packet.Packet) *packet.Signature {
	sigs, _ := splitMessage(message)
	if len(sigs) == 0 {
		return nil
	}
	return sigs[0]
}

// signableTarget locates the thing sign() should hash: the first
// LiteralData packet in message, or failing that a PublicKey packet
// immediately followed by a UserId packet, which together make up a
// certification target.
func signableTarget(message []packet.Packet) (literal *packet.LiteralData, certKey *packet.PublicKey, certId *packet.UserId) {
	for _, p := range message {
		if ld, ok := p.(*packet.LiteralData); ok {
			return ld, nil, nil
		}
	}
	for i, p := range message {
		pk, ok := p.(*packet.PublicKey)
		if !ok || pk.IsSubkey {
			continue
		}
		if i+1 < len(message) {
			if id, ok := message[i+1].(*packet.UserId); ok {
				return nil, pk, id
			}
		}
	}
	return nil, nil, nil
}

// Sign locates the signing key named by keyID in keys, finds a signable
// target in message (the first LiteralData packet, or else a primary
// key's first user id, for a certification) and produces the resulting
// signature packet. If message already carries a Signature packet, that
// packet is updated in place and returned: its type and subpackets are
// kept, while the key and hash algorithm and the issuer are set from the
// signing key. Sign does not append the signature to message; callers
// append the returned packet themselves. A signed LiteralData's Body is
// read in full and replaced by a reader over the same bytes.
func Sign(keys *KeyRing, message []packet.Packet, hashAlgo crypto.Hash, keyID string, timestamp time.Time, rand io.Reader) (*packet.Signature, error) {
	signer := keys.SigningKey(keyID)
	if signer == nil {
		return nil, errors.InvalidArgumentError("no signing key found for key id " + keyID)
	}
	if signer.Encrypted {
		return nil, errors.InvalidArgumentError("signing key is still passphrase-encrypted")
	}
	if !hashAlgo.Available() {
		return nil, errors.UnsupportedError("requested hash function is not available")
	}

	literal, certKey, certId := signableTarget(message)
	if literal == nil && certKey == nil {
		return nil, errors.InvalidArgumentError("no signable literal data or user id found in message")
	}

	config := &packet.Config{Rand: rand, DefaultHash: hashAlgo, Time: func() time.Time { return timestamp }}

	sig := signatureTemplate(message)
	if sig != nil {
		// Reuse the template's version, type and subpackets; only the
		// key and hash algorithm are ours to choose.
		sig.PubKeyAlgo = signer.PubKeyAlgo
		sig.Hash = hashAlgo
	} else {
		sig = &packet.Signature{
			Version:      signer.PublicKey.Version,
			PubKeyAlgo:   signer.PubKeyAlgo,
			Hash:         hashAlgo,
			CreationTime: timestamp,
		}
		if literal != nil {
			if literal.IsBinary {
				sig.SigType = packet.SigTypeBinary
			} else {
				sig.SigType = packet.SigTypeText
			}
		} else {
			sig.SigType = packet.SigTypePositiveCert
		}
	}
	issuerKeyId := signer.KeyId
	sig.IssuerKeyId = &issuerKeyId

	if literal != nil {
		content, err := io.ReadAll(literal.Body)
		if err != nil {
			return nil, err
		}
		literal.Body = bytes.NewReader(content)
		h := hashAlgo.New()
		h.Write(content)
		if err := sig.Sign(h, signer, config); err != nil {
			return nil, err
		}
		return sig, nil
	}

	if err := sig.SignUserId(certId.Id, certKey, signer, config); err != nil {
		return nil, err
	}
	return sig, nil
}
