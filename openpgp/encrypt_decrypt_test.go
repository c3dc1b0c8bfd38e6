// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openpgp

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/openpgp-core/pgpcore/openpgp/packet"
)

func readLiteralContents(t *testing.T, message []packet.Packet) []byte {
	t.Helper()
	for _, p := range message {
		if ld, ok := p.(*packet.LiteralData); ok {
			b, err := io.ReadAll(ld.Body)
			if err != nil {
				t.Fatalf("reading literal body: %s", err)
			}
			return b
		}
	}
	t.Fatalf("no literal data packet in decrypted message")
	return nil
}

func TestEncryptDecryptAsymmetricRoundTrip(t *testing.T) {
	priv := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	plaintext := []byte("the quick brown fox jumps over the lazy dog")

	out, err := Encrypt([]*packet.PublicKey{&priv.PublicKey}, packet.CipherAES256, literalMessage(plaintext), rand.Reader, nil)
	if err != nil {
		t.Fatalf("Encrypt: %s", err)
	}

	decrypted, err := DecryptAsymmetric([]*packet.PrivateKey{priv}, out)
	if err != nil {
		t.Fatalf("DecryptAsymmetric: %s", err)
	}

	if got := readLiteralContents(t, decrypted); !bytes.Equal(got, plaintext) {
		t.Errorf("decrypted contents mismatch: got %q, want %q", got, plaintext)
	}
}

func TestEncryptDecryptAsymmetricMultipleRecipients(t *testing.T) {
	privA := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	privB := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	plaintext := []byte("shared secret for two recipients")

	out, err := Encrypt([]*packet.PublicKey{&privA.PublicKey, &privB.PublicKey}, packet.CipherAES128, literalMessage(plaintext), rand.Reader, nil)
	if err != nil {
		t.Fatalf("Encrypt: %s", err)
	}

	// privC is not a recipient and must not be able to decrypt.
	privC := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	if _, err := DecryptAsymmetric([]*packet.PrivateKey{privC}, out); err == nil {
		t.Fatalf("expected DecryptAsymmetric to fail for a non-recipient key")
	}

	decrypted, err := DecryptAsymmetric([]*packet.PrivateKey{privC, privB}, out)
	if err != nil {
		t.Fatalf("DecryptAsymmetric with second recipient: %s", err)
	}
	if got := readLiteralContents(t, decrypted); !bytes.Equal(got, plaintext) {
		t.Errorf("decrypted contents mismatch: got %q, want %q", got, plaintext)
	}
}

func TestDecryptAsymmetricStillEncryptedKeyIsSkipped(t *testing.T) {
	priv := packet.NewRSAPrivateKey(testTime, testRSAKey(t, 1024))
	passphrase := []byte("hunter2")
	if err := priv.Encrypt(passphrase); err != nil {
		t.Fatalf("Encrypt: %s", err)
	}

	plaintext := []byte("protected by an encrypted private key")
	pub := priv.PublicKey
	out, err := Encrypt([]*packet.PublicKey{&pub}, packet.CipherAES128, literalMessage(plaintext), rand.Reader, nil)
	if err != nil {
		t.Fatalf("Encrypt: %s", err)
	}

	if _, err := DecryptAsymmetric([]*packet.PrivateKey{priv}, out); err == nil {
		t.Fatalf("expected DecryptAsymmetric to fail while the private key remains passphrase-encrypted")
	}

	if err := priv.Decrypt(passphrase); err != nil {
		t.Fatalf("Decrypt: %s", err)
	}
	if _, err := DecryptAsymmetric([]*packet.PrivateKey{priv}, out); err != nil {
		t.Fatalf("DecryptAsymmetric after unlocking the private key: %s", err)
	}
}

func TestEncryptDecryptSymmetricRoundTrip(t *testing.T) {
	plaintext := []byte("passphrase protected message")
	passphrase := []byte("correct horse battery staple")

	var seBuf bytes.Buffer
	config := &packet.Config{DefaultCipher: packet.CipherAES256}
	key, err := packet.SerializeSymmetricKeyEncrypted(&seBuf, passphrase, config)
	if err != nil {
		t.Fatalf("SerializeSymmetricKeyEncrypted: %s", err)
	}
	skePacket, err := packet.Read(&seBuf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}

	var dataBuf bytes.Buffer
	w, err := packet.SerializeSymmetricallyEncrypted(&dataBuf, packet.CipherAES256, key, config)
	if err != nil {
		t.Fatalf("SerializeSymmetricallyEncrypted: %s", err)
	}
	literal, err := packet.SerializeLiteral(w, true, "", 0)
	if err != nil {
		t.Fatalf("SerializeLiteral: %s", err)
	}
	if _, err := literal.Write(plaintext); err != nil {
		t.Fatalf("Write: %s", err)
	}
	if err := literal.Close(); err != nil {
		t.Fatalf("literal Close: %s", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	encryptedPacket, err := packet.Read(&dataBuf)
	if err != nil {
		t.Fatalf("Read: %s", err)
	}

	message := []packet.Packet{skePacket, encryptedPacket}

	if _, err := DecryptSymmetric([][]byte{[]byte("wrong passphrase")}, message); err == nil {
		t.Fatalf("expected DecryptSymmetric to fail with a wrong passphrase")
	}

	decrypted, err := DecryptSymmetric([][]byte{[]byte("another wrong guess"), passphrase}, message)
	if err != nil {
		t.Fatalf("DecryptSymmetric: %s", err)
	}
	if got := readLiteralContents(t, decrypted); !bytes.Equal(got, plaintext) {
		t.Errorf("decrypted contents mismatch: got %q, want %q", got, plaintext)
	}
}

func TestEncryptRejectsNonEncryptingKey(t *testing.T) {
	dsaPriv := packet.NewDSAPrivateKey(testTime, testDSAKey(t))
	_, err := Encrypt([]*packet.PublicKey{&dsaPriv.PublicKey}, packet.CipherAES128, literalMessage([]byte("x")), rand.Reader, nil)
	if err == nil {
		t.Fatalf("expected Encrypt to reject a DSA (sign-only) recipient key")
	}
}
