// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"bytes"
	"crypto/cipher"
	"io"
	"strconv"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
	"github.com/openpgp-core/pgpcore/openpgp/s2k"
)

// This is the largest session key that we'll support. Since no 512-bit
// cipher has ever been seriously used, this is comfortably large.
const maxSessionKeySizeInBytes = 64

// SymmetricKeyEncrypted represents a passphrase protected session key
// (the SymmetricSessionKey packet). See RFC 4880, section 5.3. Only
// version 4 is supported; there is no AEAD in this core.
type SymmetricKeyEncrypted struct {
	CipherFunc   CipherFunction
	s2kParams    *s2k.Params
	s2k          func(out, in []byte)
	encryptedKey []byte
}

func (ske *SymmetricKeyEncrypted) parse(r io.Reader) error {
	// RFC 4880, section 5.3.
	var buf [2]byte
	if _, err := readFull(r, buf[:]); err != nil {
		return err
	}
	if buf[0] != 4 {
		return errors.UnsupportedError("SymmetricKeyEncrypted version " + strconv.Itoa(int(buf[0])))
	}
	ske.CipherFunc = CipherFunction(buf[1])
	if !ske.CipherFunc.IsSupported() {
		return errors.UnsupportedError("unknown cipher: " + strconv.Itoa(int(buf[1])))
	}

	var err error
	ske.s2k, ske.s2kParams, err = s2k.Read(r)
	if err != nil {
		return err
	}

	encryptedKey := make([]byte, maxSessionKeySizeInBytes)
	// The session key may follow. We just have to try and read to find
	// out. If it exists then we limit it to maxSessionKeySizeInBytes.
	n, err := readFull(r, encryptedKey)
	if err != nil && err != io.ErrUnexpectedEOF {
		return err
	}

	if n != 0 {
		if n == maxSessionKeySizeInBytes {
			return errors.UnsupportedError("oversized encrypted session key")
		}
		ske.encryptedKey = encryptedKey[:n]
	}
	return nil
}

// Decrypt attempts to decrypt an encrypted session key and returns the key
// and the cipher to use when decrypting a subsequent SymmetricallyEncrypted
// packet.
func (ske *SymmetricKeyEncrypted) Decrypt(passphrase []byte) ([]byte, CipherFunction, error) {
	key := make([]byte, ske.CipherFunc.KeySize())
	ske.s2k(key, passphrase)
	if len(ske.encryptedKey) == 0 {
		return key, ske.CipherFunc, nil
	}

	// the IV is all zeros: the session key is wrapped with its own
	// passphrase-derived key, not with a random per-message IV.
	iv := make([]byte, ske.CipherFunc.blockSize())
	c := cipher.NewCFBDecrypter(ske.CipherFunc.new(key), iv)
	plaintextKey := make([]byte, len(ske.encryptedKey))
	c.XORKeyStream(plaintextKey, ske.encryptedKey)

	cipherFunc := CipherFunction(plaintextKey[0])
	if !cipherFunc.IsSupported() {
		return nil, ske.CipherFunc, errors.UnsupportedError(
			"unknown cipher: " + strconv.Itoa(int(cipherFunc)))
	}
	plaintextKey = plaintextKey[1:]

	if l, cipherKeySize := len(plaintextKey), cipherFunc.KeySize(); l != cipherKeySize {
		return nil, cipherFunc, errors.StructuralError(
			"length of decrypted key (" + strconv.Itoa(l) + ") " +
				"not equal to cipher keysize (" + strconv.Itoa(cipherKeySize) + ")")
	}
	return plaintextKey, cipherFunc, nil
}

// SerializeSymmetricKeyEncrypted serializes a symmetric key packet to w. The
// packet contains a random session key, encrypted by a key derived from the
// given passphrase. The session key is returned and must be passed to
// SerializeSymmetricallyEncrypted.
// If config is nil, sensible defaults will be used.
func SerializeSymmetricKeyEncrypted(w io.Writer, passphrase []byte, config *Config) (key []byte, err error) {
	cipherFunc := config.Cipher()
	keySize := cipherFunc.KeySize()
	if keySize == 0 {
		return nil, errors.UnsupportedError("unknown cipher: " + strconv.Itoa(int(cipherFunc)))
	}

	params, err := s2k.Generate(config.Random(), config.S2K())
	if err != nil {
		return
	}
	keyEncryptingKey := make([]byte, keySize)
	s2kFunc, err := params.Function()
	if err != nil {
		return
	}
	s2kFunc(keyEncryptingKey, passphrase)

	s2kBuf := new(bytes.Buffer)
	if err = params.Serialize(s2kBuf); err != nil {
		return
	}
	s2kBytes := s2kBuf.Bytes()

	packetLength := 2 /* version, cipher */ + len(s2kBytes) + 1 /* cipher type (again, encrypted) */ + keySize
	if err = serializeHeader(w, packetTypeSymmetricKeyEncrypted, packetLength); err != nil {
		return
	}

	var buf [2]byte
	buf[0] = 4
	buf[1] = byte(cipherFunc)
	if _, err = w.Write(buf[:]); err != nil {
		return
	}
	if _, err = w.Write(s2kBytes); err != nil {
		return
	}

	sessionKey := make([]byte, keySize)
	if _, err = io.ReadFull(config.Random(), sessionKey); err != nil {
		return
	}
	iv := make([]byte, cipherFunc.blockSize())
	c := cipher.NewCFBEncrypter(cipherFunc.new(keyEncryptingKey), iv)
	encryptedCipherAndKey := make([]byte, keySize+1)
	c.XORKeyStream(encryptedCipherAndKey, buf[1:])
	c.XORKeyStream(encryptedCipherAndKey[1:], sessionKey)
	if _, err = w.Write(encryptedCipherAndKey); err != nil {
		return
	}

	key = sessionKey
	return
}
