// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"bytes"
	"crypto/dsa"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

func testRSAKey(t *testing.T, bits int) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %s", err)
	}
	return priv
}

func testDSAKey(t *testing.T) *dsa.PrivateKey {
	t.Helper()
	params := new(dsa.Parameters)
	if err := dsa.GenerateParameters(params, rand.Reader, dsa.L1024N160); err != nil {
		t.Fatalf("dsa.GenerateParameters: %s", err)
	}
	priv := new(dsa.PrivateKey)
	priv.Parameters = *params
	if err := dsa.GenerateKey(priv, rand.Reader); err != nil {
		t.Fatalf("dsa.GenerateKey: %s", err)
	}
	return priv
}

var testTime = time.Unix(1700000000, 0)

// literalMessage builds a one-element message slice carrying contents
// as a binary LiteralData packet, the shape Sign/Encrypt expect.
func literalMessage(contents []byte) []packet.Packet {
	return []packet.Packet{
		&packet.LiteralData{
			IsBinary: true,
			FileName: "msg.bin",
			Time:     uint32(testTime.Unix()),
			Body:     bytes.NewReader(contents),
		},
	}
}
