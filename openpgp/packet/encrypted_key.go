// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto"
	"crypto/rsa"
	"encoding/binary"
	"io"
	"strconv"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
	"github.com/openpgp-core/pgpcore/openpgp/internal/encoding"
)

// EncryptedKey represents a public-key encrypted session key (the
// AsymmetricSessionKey packet). See RFC 4880, section 5.1. Only
// version 3 (RSA) packets are supported; this is the core's one
// asymmetric transport mechanism.
type EncryptedKey struct {
	Version int
	KeyId   uint64
	Algo    PublicKeyAlgorithm
	// CipherFunc is only valid after a successful Decrypt.
	CipherFunc CipherFunction
	// Key is only valid after a successful Decrypt.
	Key []byte

	encryptedMPI encoding.Field
}

func (e *EncryptedKey) parse(r io.Reader) (err error) {
	var buf [10]byte
	_, err = readFull(r, buf[:1])
	if err != nil {
		return
	}
	e.Version = int(buf[0])
	if e.Version != 3 {
		return errors.UnsupportedError("encrypted key version " + strconv.Itoa(e.Version))
	}

	_, err = readFull(r, buf[:8])
	if err != nil {
		return
	}
	e.KeyId = binary.BigEndian.Uint64(buf[:8])

	_, err = readFull(r, buf[:1])
	if err != nil {
		return
	}
	e.Algo = PublicKeyAlgorithm(buf[0])
	switch e.Algo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly:
		e.encryptedMPI = new(encoding.MPI)
		if _, err = e.encryptedMPI.ReadFrom(r); err != nil {
			return
		}
	default:
		return errors.UnsupportedError("encrypted session key algorithm: " + strconv.Itoa(int(e.Algo)))
	}

	_, err = consumeAll(r)
	return
}

// checksumKeyMaterial computes the session-key checksum per RFC 4880
// section 5.1: the unsigned 16-bit sum of the key's octets, modulo
// 2^16.
func checksumKeyMaterial(key []byte) uint16 {
	var checksum uint16
	for _, v := range key {
		checksum += uint16(v)
	}
	return checksum
}

// Decrypt decrypts an encrypted session key with the given RSA private
// key. The private key must have been decrypted first.
func (e *EncryptedKey) Decrypt(priv *PrivateKey, config *Config) error {
	if e.KeyId != 0 && e.KeyId != priv.KeyId {
		return errors.InvalidArgumentError("cannot decrypt encrypted session key for key id " +
			strconv.FormatUint(e.KeyId, 16) + " with private key id " + strconv.FormatUint(priv.KeyId, 16))
	}
	if e.Algo != priv.PubKeyAlgo {
		return errors.InvalidArgumentError("cannot decrypt encrypted session key of type " +
			strconv.Itoa(int(e.Algo)) + " with private key of type " + strconv.Itoa(int(priv.PubKeyAlgo)))
	}

	var err error
	var b []byte

	switch priv.PubKeyAlgo {
	case PubKeyAlgoRSA, PubKeyAlgoRSAEncryptOnly:
		k := priv.PrivateKey.(crypto.Decrypter)
		b, err = k.Decrypt(config.Random(), padToKeySize(k.Public().(*rsa.PublicKey), e.encryptedMPI.Bytes()), nil)
	default:
		err = errors.InvalidArgumentError("cannot decrypt encrypted session key with private key of type " + strconv.Itoa(int(priv.PubKeyAlgo)))
	}
	if err != nil {
		return err
	}
	if len(b) < 3 {
		return errors.StructuralError("malformed session key blob")
	}

	e.CipherFunc = CipherFunction(b[0])
	if !e.CipherFunc.IsSupported() {
		return errors.UnsupportedError("unsupported encryption function")
	}

	e.Key = b[1 : len(b)-2]
	expectedChecksum := uint16(b[len(b)-2])<<8 | uint16(b[len(b)-1])
	if checksumKeyMaterial(e.Key) != expectedChecksum {
		return errors.StructuralError("EncryptedKey checksum incorrect")
	}

	return nil
}

// Serialize writes the encrypted key packet, e, to w.
func (e *EncryptedKey) Serialize(w io.Writer) error {
	if e.Algo != PubKeyAlgoRSA && e.Algo != PubKeyAlgoRSAEncryptOnly {
		return errors.InvalidArgumentError("don't know how to serialize encrypted key type " + strconv.Itoa(int(e.Algo)))
	}

	packetLen := 1 /* version */ + 8 /* key id */ + 1 /* algo */ + int(e.encryptedMPI.EncodedLength())

	if err := serializeHeader(w, packetTypeEncryptedKey, packetLen); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(e.Version)}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, e.KeyId); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(e.Algo)}); err != nil {
		return err
	}
	_, err := w.Write(e.encryptedMPI.EncodedBytes())
	return err
}

// SerializeEncryptedKey serializes an encrypted key packet to w that
// contains key, encrypted to pub. See spec.md §4.5 step 4: the session
// blob is wrapped as a canonical MPI (a two-byte bit-length prefix
// followed by the ciphertext), exactly the invariant encoding.MPI
// enforces.
func SerializeEncryptedKey(w io.Writer, pub *PublicKey, cipherFunc CipherFunction, key []byte, config *Config) error {
	if pub.PubKeyAlgo != PubKeyAlgoRSA && pub.PubKeyAlgo != PubKeyAlgoRSAEncryptOnly {
		return errors.InvalidArgumentError("cannot encrypt to public key of type " + strconv.Itoa(int(pub.PubKeyAlgo)))
	}

	keyBlock := make([]byte, 1+len(key)+2)
	keyBlock[0] = byte(cipherFunc)
	copy(keyBlock[1:], key)
	checksum := checksumKeyMaterial(key)
	keyBlock[1+len(key)] = byte(checksum >> 8)
	keyBlock[1+len(key)+1] = byte(checksum)

	cipherText, err := rsa.EncryptPKCS1v15(config.Random(), pub.PublicKey.(*rsa.PublicKey), keyBlock)
	if err != nil {
		return errors.InvalidArgumentError("RSA encryption failed: " + err.Error())
	}
	cipherMPI := encoding.NewMPI(cipherText)

	packetLen := 1 /* version */ + 8 /* key id */ + 1 /* algo */ + int(cipherMPI.EncodedLength())
	if err := serializeHeader(w, packetTypeEncryptedKey, packetLen); err != nil {
		return err
	}
	if _, err := w.Write([]byte{3}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, pub.KeyId); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(pub.PubKeyAlgo)}); err != nil {
		return err
	}
	_, err = w.Write(cipherMPI.EncodedBytes())
	return err
}
