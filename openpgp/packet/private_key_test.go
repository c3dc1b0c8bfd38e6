// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/openpgp-core/pgpcore/openpgp/s2k"
)

func TestRSAPrivateKeySerializeParse(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)

	var buf bytes.Buffer
	if err := priv.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %s", err)
	}

	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	parsed, ok := p.(*PrivateKey)
	if !ok {
		t.Fatalf("expected *PrivateKey, got %T", p)
	}
	if parsed.Encrypted {
		t.Fatalf("unencrypted private key parsed as encrypted")
	}
	if parsed.KeyId != priv.KeyId {
		t.Errorf("key id mismatch: got %x, want %x", parsed.KeyId, priv.KeyId)
	}

	sig := &Signature{Version: 4, PubKeyAlgo: PubKeyAlgoRSA, Hash: crypto.SHA256}
	msg := []byte("a message to sign")
	h := crypto.SHA256.New()
	h.Write(msg)
	if err := sig.Sign(h, parsed, nil); err != nil {
		t.Fatalf("Sign: %s", err)
	}
	h = crypto.SHA256.New()
	h.Write(msg)
	if err := parsed.VerifySignature(h, sig); err != nil {
		t.Fatalf("VerifySignature: %s", err)
	}
}

func TestDSAPrivateKeySerializeParse(t *testing.T) {
	dsaPriv := testDSAKey(t)
	priv := NewDSAPrivateKey(testTime, dsaPriv)

	var buf bytes.Buffer
	if err := priv.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %s", err)
	}

	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	parsed, ok := p.(*PrivateKey)
	if !ok {
		t.Fatalf("expected *PrivateKey, got %T", p)
	}
	if parsed.KeyId != priv.KeyId {
		t.Errorf("key id mismatch: got %x, want %x", parsed.KeyId, priv.KeyId)
	}

	sig := &Signature{Version: 4, PubKeyAlgo: PubKeyAlgoDSA, Hash: crypto.SHA1}
	msg := []byte("a message to sign")
	h := crypto.SHA1.New()
	h.Write(msg)
	if err := sig.Sign(h, parsed, nil); err != nil {
		t.Fatalf("Sign: %s", err)
	}
	h = crypto.SHA1.New()
	h.Write(msg)
	if err := parsed.VerifySignature(h, sig); err != nil {
		t.Fatalf("VerifySignature: %s", err)
	}
}

func TestPrivateKeyEncryptDecryptRoundTrip(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)
	passphrase := []byte("correct horse battery staple")

	if err := priv.Encrypt(passphrase); err != nil {
		t.Fatalf("Encrypt: %s", err)
	}
	if !priv.Encrypted {
		t.Fatalf("expected Encrypted to be true after Encrypt")
	}

	var buf bytes.Buffer
	if err := priv.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %s", err)
	}

	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	parsed := p.(*PrivateKey)
	if !parsed.Encrypted {
		t.Fatalf("expected parsed key to be encrypted")
	}

	if err := parsed.Decrypt([]byte("wrong passphrase")); err == nil {
		t.Fatalf("expected Decrypt to fail with wrong passphrase")
	}
	if !parsed.Encrypted {
		t.Fatalf("a failed Decrypt must not clear Encrypted")
	}

	if err := parsed.Decrypt(passphrase); err != nil {
		t.Fatalf("Decrypt: %s", err)
	}
	if parsed.Encrypted {
		t.Fatalf("expected Encrypted to be false after successful Decrypt")
	}
	if parsed.PrivateKey == nil {
		t.Fatalf("expected decrypted PrivateKey to carry the recovered key material")
	}
}

func TestPrivateKeyEncryptWithConfigIteratedS2K(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)
	passphrase := []byte("hunter2")
	config := &Config{S2KConfig: &s2k.Config{Mode: s2k.IteratedSaltedS2K, S2KCount: 1024}}

	if err := priv.EncryptWithConfig(passphrase, config); err != nil {
		t.Fatalf("EncryptWithConfig: %s", err)
	}

	var buf bytes.Buffer
	if err := priv.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %s", err)
	}
	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	parsed := p.(*PrivateKey)
	if err := parsed.Decrypt(passphrase); err != nil {
		t.Fatalf("Decrypt: %s", err)
	}
}

func TestDecryptPrivateKeysBatch(t *testing.T) {
	passphrase := []byte("hunter2")

	rsaPriv := NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	dsaPriv := NewDSAPrivateKey(testTime, testDSAKey(t))
	for _, pk := range []*PrivateKey{rsaPriv, dsaPriv} {
		if err := pk.Encrypt(passphrase); err != nil {
			t.Fatalf("Encrypt: %s", err)
		}
	}

	keys := []*PrivateKey{rsaPriv, dsaPriv}
	if err := DecryptPrivateKeys(keys, passphrase); err != nil {
		t.Fatalf("DecryptPrivateKeys: %s", err)
	}
	for i, pk := range keys {
		if pk.Encrypted {
			t.Errorf("key %d still encrypted after DecryptPrivateKeys", i)
		}
	}
}

func TestDSAValidation(t *testing.T) {
	priv := testDSAKey(t)
	if err := validateDSAParameters(priv); err != nil {
		t.Fatalf("valid key marked as invalid: %s", err)
	}

	g := new(big.Int).Set(priv.G)
	priv.G.SetInt64(1)
	if err := validateDSAParameters(priv); err == nil {
		t.Fatalf("failed to detect invalid key (g)")
	}
	priv.G.Set(g)

	q := new(big.Int).Set(priv.Q)
	priv.Q.Sub(priv.Q, big.NewInt(1))
	if err := validateDSAParameters(priv); err == nil {
		t.Fatalf("failed to detect invalid key (q)")
	}
	priv.Q.Set(q)
}

func TestRSAPrivateKeyWrongPassphraseDoesNotCorruptData(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)
	passphrase := make([]byte, 16)
	rand.Read(passphrase)

	if err := priv.Encrypt(passphrase); err != nil {
		t.Fatalf("Encrypt: %s", err)
	}

	wrong := make([]byte, 16)
	for bytes.Equal(wrong, passphrase) {
		rand.Read(wrong)
	}
	if err := priv.Decrypt(wrong); err == nil {
		t.Fatalf("expected Decrypt to fail with wrong passphrase")
	}
	if err := priv.Decrypt(passphrase); err != nil {
		t.Fatalf("Decrypt with correct passphrase after failed attempt: %s", err)
	}
}
