// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"encoding/hex"
	"strings"

	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

// Fingerprint returns key's fingerprint as uppercase hex: the output of
// SHA-1 over the canonical key material for a v4 key, or MD5 over the
// bare RSA modulus and exponent for a legacy v2/v3 key. See spec.md
// §4.3 and packet.PublicKey.setFingerprintAndKeyId.
func Fingerprint(key *packet.PublicKey) string {
	return strings.ToUpper(hex.EncodeToString(key.Fingerprint))
}
