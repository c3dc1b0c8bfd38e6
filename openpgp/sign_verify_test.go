// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"crypto"
	"crypto/rand"
	"testing"

	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

func TestSignAndVerifyRSA(t *testing.T) {
	priv := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))

	keys := &KeyRing{
		Public:  []*packet.PublicKey{&priv.PublicKey},
		Private: []*packet.PrivateKey{priv},
	}

	message := literalMessage([]byte("a message signed for testing"))

	sig, err := Sign(keys, message, crypto.SHA256, priv.KeyIdString(), testTime, rand.Reader)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}

	full := append(append([]packet.Packet{}, message...), sig)
	if !Verify(keys, full, 0) {
		t.Fatalf("Verify rejected a genuine signature")
	}
}

func TestSignAndVerifyDSA(t *testing.T) {
	priv := packet.NewDSAPrivateKey(testTime, testDSAKey(t))

	keys := &KeyRing{
		Public:  []*packet.PublicKey{&priv.PublicKey},
		Private: []*packet.PrivateKey{priv},
	}

	message := literalMessage([]byte("another message"))

	sig, err := Sign(keys, message, crypto.SHA1, priv.KeyIdString(), testTime, rand.Reader)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}

	full := append(append([]packet.Packet{}, message...), sig)
	if !Verify(keys, full, 0) {
		t.Fatalf("Verify rejected a genuine DSA signature")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	priv := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	keys := &KeyRing{Private: []*packet.PrivateKey{priv}}

	message := literalMessage([]byte("original content"))
	sig, err := Sign(keys, message, crypto.SHA256, priv.KeyIdString(), testTime, rand.Reader)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}

	tampered := literalMessage([]byte("tampered content"))
	full := append(tampered, sig)
	if Verify(keys, full, 0) {
		t.Fatalf("Verify accepted a tampered message")
	}
}

func TestVerifyUnknownSigner(t *testing.T) {
	signerKey := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	otherKey := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))

	signingRing := &KeyRing{Private: []*packet.PrivateKey{signerKey}}
	message := literalMessage([]byte("hello"))
	sig, err := Sign(signingRing, message, crypto.SHA256, signerKey.KeyIdString(), testTime, rand.Reader)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}

	verifyRing := &KeyRing{Public: []*packet.PublicKey{&otherKey.PublicKey}}
	full := append(append([]packet.Packet{}, message...), sig)
	if Verify(verifyRing, full, 0) {
		t.Fatalf("Verify accepted a signature from a key not present in the ring")
	}
}

func TestSignNoMatchingKey(t *testing.T) {
	priv := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	keys := &KeyRing{Private: []*packet.PrivateKey{priv}}

	message := literalMessage([]byte("hi"))
	if _, err := Sign(keys, message, crypto.SHA256, "ffffffffffffffff", testTime, rand.Reader); err == nil {
		t.Fatalf("expected Sign to fail for an unknown key id")
	}
}

func TestSignReusesTemplate(t *testing.T) {
	priv := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	keys := &KeyRing{Private: []*packet.PrivateKey{priv}}

	message := literalMessage([]byte("templated message"))
	template := &packet.Signature{
		Version:      4,
		SigType:      packet.SigTypeBinary,
		CreationTime: testTime,
	}
	withTemplate := append(append([]packet.Packet{}, message...), template)

	sig, err := Sign(keys, withTemplate, crypto.SHA256, priv.KeyIdString(), testTime, rand.Reader)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	if sig != template {
		t.Fatalf("expected Sign to reuse and return the template packet in place")
	}
	if sig.SigType != packet.SigTypeBinary {
		t.Fatalf("expected the template's signature type to survive, got %v", sig.SigType)
	}
	if sig.PubKeyAlgo != priv.PubKeyAlgo {
		t.Fatalf("expected the template's key algorithm to be overridden to %v, got %v", priv.PubKeyAlgo, sig.PubKeyAlgo)
	}

	full := append(append([]packet.Packet{}, message...), sig)
	if !Verify(keys, full, 0) {
		t.Fatalf("Verify rejected a signature produced from a reused template")
	}
}

func TestSignUserIdCertification(t *testing.T) {
	priv := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	keys := &KeyRing{Private: []*packet.PrivateKey{priv}}

	message := []packet.Packet{&priv.PublicKey, packet.NewUserId("Test User", "", "test@pgpcore.dev")}
	sig, err := Sign(keys, message, crypto.SHA256, priv.KeyIdString(), testTime, rand.Reader)
	if err != nil {
		t.Fatalf("Sign: %s", err)
	}
	if sig.SigType != packet.SigTypePositiveCert {
		t.Fatalf("expected a positive certification signature type, got %v", sig.SigType)
	}

	if err := priv.PublicKey.VerifyUserIdSignature("Test User <test@pgpcore.dev>", &priv.PublicKey, sig); err != nil {
		t.Fatalf("VerifyUserIdSignature: %s", err)
	}
}
