// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"io"

	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

// Verify reports whether signatures[sigIndex] in message is a valid
// signature, made by a key present in keys, of the first LiteralData
// packet found in message. Any internal error — unknown signer, missing
// literal data, unsupported algorithm, cryptographic mismatch — is
// reported as false rather than propagated, per spec.md §7's "returned
// as false/absent value; no log side effect" policy for verification
// failures.
func Verify(keys *KeyRing, message []packet.Packet, sigIndex int) bool {
	sigs, rest := splitMessage(message)
	if sigIndex < 0 || sigIndex >= len(sigs) {
		return false
	}
	sig := sigs[sigIndex]

	var literal *packet.LiteralData
	for _, p := range rest {
		if ld, ok := p.(*packet.LiteralData); ok {
			literal = ld
			break
		}
	}
	if literal == nil {
		return false
	}

	if sig.IssuerKeyId == nil {
		return false
	}
	signer := keys.verificationKey(*sig.IssuerKeyId)
	if signer == nil {
		return false
	}

	h, err := sig.PrepareVerify()
	if err != nil {
		return false
	}
	if _, err := io.Copy(h, literal.Body); err != nil {
		return false
	}

	return signer.VerifySignature(h, sig) == nil
}
