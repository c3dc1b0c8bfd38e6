// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"testing"
	"time"
)

func TestEncryptedKeyRSARoundTrip(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(testTime, rsaPriv)
	pub := &priv.PublicKey

	sessionKey := make([]byte, CipherAES256.KeySize())
	for i := range sessionKey {
		sessionKey[i] = byte(i)
	}

	var buf bytes.Buffer
	if err := SerializeEncryptedKey(&buf, pub, CipherAES256, sessionKey, nil); err != nil {
		t.Fatalf("SerializeEncryptedKey: %s", err)
	}

	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	ek, ok := p.(*EncryptedKey)
	if !ok {
		t.Fatalf("expected *EncryptedKey, got %T", p)
	}
	if ek.KeyId != pub.KeyId {
		t.Errorf("key id mismatch: got %x, want %x", ek.KeyId, pub.KeyId)
	}

	if err := ek.Decrypt(priv, nil); err != nil {
		t.Fatalf("Decrypt: %s", err)
	}
	if ek.CipherFunc != CipherAES256 {
		t.Errorf("cipher mismatch: got %d, want %d", ek.CipherFunc, CipherAES256)
	}
	if !bytes.Equal(ek.Key, sessionKey) {
		t.Errorf("session key mismatch: got %x, want %x", ek.Key, sessionKey)
	}
}

func TestEncryptedKeyWrongKeyId(t *testing.T) {
	rsaPriv := testRSAKey(t, 1024)
	priv := NewRSAPrivateKey(time.Now(), rsaPriv)

	otherPriv := testRSAKey(t, 1024)
	otherPub := NewRSAPublicKey(time.Now(), &otherPriv.PublicKey)

	var buf bytes.Buffer
	if err := SerializeEncryptedKey(&buf, otherPub, CipherAES128, make([]byte, CipherAES128.KeySize()), nil); err != nil {
		t.Fatalf("SerializeEncryptedKey: %s", err)
	}
	p, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}
	ek := p.(*EncryptedKey)
	if err := ek.Decrypt(priv, nil); err == nil {
		t.Fatalf("expected Decrypt to fail for mismatched key id")
	}
}
