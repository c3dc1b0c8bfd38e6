// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto"
	"testing"
	"time"
)

func TestSignatureRSASignVerifyRoundTrip(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)

	sig := &Signature{
		Version:      4,
		SigType:      SigTypeBinary,
		PubKeyAlgo:   PubKeyAlgoRSA,
		Hash:         crypto.SHA256,
		CreationTime: testTime,
	}

	msg := []byte("hello, openpgp")
	h := crypto.SHA256.New()
	h.Write(msg)
	if err := sig.Sign(h, priv, nil); err != nil {
		t.Fatalf("Sign: %s", err)
	}

	var buf bytes.Buffer
	if err := sig.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %s", err)
	}

	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	parsed, ok := p.(*Signature)
	if !ok || parsed.SigType != SigTypeBinary || parsed.PubKeyAlgo != PubKeyAlgoRSA || parsed.Hash != crypto.SHA256 {
		t.Fatalf("failed to parse, got: %#v", p)
	}

	h = crypto.SHA256.New()
	h.Write(msg)
	if err := priv.PublicKey.VerifySignature(h, parsed); err != nil {
		t.Fatalf("VerifySignature: %s", err)
	}
}

func TestSignatureDSASignVerifyRoundTrip(t *testing.T) {
	dsaPriv := testDSAKey(t)
	priv := NewDSAPrivateKey(testTime, dsaPriv)

	sig := &Signature{
		Version:      4,
		SigType:      SigTypeBinary,
		PubKeyAlgo:   PubKeyAlgoDSA,
		Hash:         crypto.SHA1,
		CreationTime: testTime,
	}

	msg := []byte("hello, openpgp")
	h := crypto.SHA1.New()
	h.Write(msg)
	if err := sig.Sign(h, priv, nil); err != nil {
		t.Fatalf("Sign: %s", err)
	}

	var buf bytes.Buffer
	if err := sig.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %s", err)
	}

	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	parsed := p.(*Signature)

	h = crypto.SHA1.New()
	h.Write(msg)
	if err := priv.PublicKey.VerifySignature(h, parsed); err != nil {
		t.Fatalf("VerifySignature: %s", err)
	}
}

func TestSignatureVerifyFailsOnTamperedData(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)

	sig := &Signature{
		Version:      4,
		SigType:      SigTypeBinary,
		PubKeyAlgo:   PubKeyAlgoRSA,
		Hash:         crypto.SHA256,
		CreationTime: testTime,
	}

	h := crypto.SHA256.New()
	h.Write([]byte("original message"))
	if err := sig.Sign(h, priv, nil); err != nil {
		t.Fatalf("Sign: %s", err)
	}

	h = crypto.SHA256.New()
	h.Write([]byte("tampered message"))
	if err := priv.PublicKey.VerifySignature(h, sig); err == nil {
		t.Fatalf("expected VerifySignature to fail on tampered data")
	}
}

func TestSignUserId(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)
	pub := &priv.PublicKey

	sig := &Signature{
		Version:      4,
		SigType:      SigTypeGenericCert,
		PubKeyAlgo:   PubKeyAlgoRSA,
		Hash:         0, // invalid hash function
		CreationTime: testTime,
	}

	if err := sig.SignUserId("test@pgpcore.dev", pub, priv, nil); err == nil {
		t.Errorf("did not receive an error when expected")
	}

	sig.Hash = crypto.SHA256
	if err := sig.SignUserId("test@pgpcore.dev", pub, priv, nil); err != nil {
		t.Errorf("failed to sign user id: %v", err)
	}

	if err := pub.VerifyUserIdSignature("test@pgpcore.dev", pub, sig); err != nil {
		t.Errorf("failed to verify user id signature: %v", err)
	}
}

func TestSignKey(t *testing.T) {
	primaryPriv := NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	subPriv := NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	subPriv.IsSubkey = true

	sig := &Signature{
		Version:      4,
		SigType:      SigTypeSubkeyBinding,
		PubKeyAlgo:   PubKeyAlgoRSA,
		Hash:         crypto.SHA256,
		CreationTime: testTime,
	}
	if err := sig.SignKey(&subPriv.PublicKey, primaryPriv, nil); err != nil {
		t.Fatalf("failed to sign subkey: %v", err)
	}

	if err := primaryPriv.PublicKey.VerifyKeySignature(&subPriv.PublicKey, sig); err != nil {
		t.Fatalf("failed to verify subkey binding signature: %v", err)
	}
}

func TestSignatureWithLifetime(t *testing.T) {
	lifeTime := uint32(3600 * 24 * 30) // 30 days
	priv := NewRSAPrivateKey(testTime, testRSAKey(t, 1024))

	sig := &Signature{
		SigType:         SigTypeGenericCert,
		PubKeyAlgo:      PubKeyAlgoRSA,
		Hash:            crypto.SHA256,
		SigLifetimeSecs: &lifeTime,
		CreationTime:    testTime,
	}

	if err := sig.SignUserId("test@pgpcore.dev", &priv.PublicKey, priv, nil); err != nil {
		t.Fatalf("failed to sign user id: %v", err)
	}

	buf := bytes.NewBuffer(nil)
	if err := sig.Serialize(buf); err != nil {
		t.Fatalf("failed to serialize signature: %v", err)
	}

	p, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to parse signature: %v", err)
	}
	parsed := p.(*Signature)
	if parsed.SigLifetimeSecs == nil || *parsed.SigLifetimeSecs != lifeTime {
		t.Fatalf("signature lifetime is wrong: %v instead of %d", parsed.SigLifetimeSecs, lifeTime)
	}

	found := false
	for _, subPacket := range parsed.rawSubpackets {
		if subPacket.subpacketType == signatureExpirationSubpacket {
			found = true
			if !subPacket.isCritical {
				t.Errorf("signature expiration subpacket is not marked as critical")
			}
		}
	}
	if !found {
		t.Errorf("signature expiration subpacket missing after roundtrip")
	}

	if !parsed.SigExpired(testTime.Add(time.Duration(lifeTime+1) * time.Second)) {
		t.Errorf("expected signature to be expired past its lifetime")
	}
	if parsed.SigExpired(testTime.Add(time.Hour)) {
		t.Errorf("signature reported expired within its lifetime")
	}
}

func TestSignatureWithPolicyURI(t *testing.T) {
	testPolicy := "https://example.com/policy"
	priv := NewRSAPrivateKey(testTime, testRSAKey(t, 1024))

	sig := &Signature{
		SigType:      SigTypeGenericCert,
		PubKeyAlgo:   PubKeyAlgoRSA,
		Hash:         crypto.SHA256,
		PolicyURI:    testPolicy,
		CreationTime: testTime,
	}

	if err := sig.SignUserId("test@pgpcore.dev", &priv.PublicKey, priv, nil); err != nil {
		t.Fatalf("failed to sign user id: %v", err)
	}

	buf := bytes.NewBuffer(nil)
	if err := sig.Serialize(buf); err != nil {
		t.Fatalf("failed to serialize signature: %v", err)
	}

	p, err := Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to parse signature: %v", err)
	}
	parsed := p.(*Signature)
	if parsed.PolicyURI != testPolicy {
		t.Errorf("signature policy is wrong: %s instead of %s", parsed.PolicyURI, testPolicy)
	}

	for _, subPacket := range parsed.rawSubpackets {
		if subPacket.subpacketType == policyUriSubpacket {
			if subPacket.isCritical {
				t.Errorf("policy URI subpacket is marked as critical")
			}
		}
	}
}
