// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package s2k implements the various OpenPGP string-to-key transforms as
// specified in RFC 4880 section 3.7.1. String-to-key expansion is an
// external collaborator of the cryptographic core (given a hash
// function it turns a passphrase into key bytes); this package gives
// that collaborator a concrete, testable body.
package s2k

import (
	"crypto"
	"hash"
	"io"
	"strconv"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
)

// Mode is the S2K algorithm, as defined by RFC 4880 section 3.7.1.
type Mode uint8

const (
	SimpleS2K          Mode = 0
	SaltedS2K          Mode = 1
	IteratedSaltedS2K  Mode = 3
	GnuS2K             Mode = 101
)

// Params holds a parsed S2K descriptor. Unlike a closure, Params is a
// plain comparable value so it can key a derived-key cache (see
// s2k_cache.go).
type Params struct {
	mode      Mode
	hashId    byte
	salt      [8]byte
	hasSalt   bool
	countByte byte
	hasCount  bool
}

// Function derives the transform function described by p. The caller
// writes derived key material into the out slice it passes the
// returned closure.
func (p *Params) Function() (f func(out, in []byte), err error) {
	hashFunc, ok := HashIdToHash(p.hashId)
	if !ok {
		return nil, errors.UnsupportedError("hash for S2K function: " + strconv.Itoa(int(p.hashId)))
	}
	if !hashFunc.Available() {
		return nil, errors.UnsupportedError("hash not available: " + strconv.Itoa(int(hashFunc)))
	}
	h := hashFunc.New()

	switch p.mode {
	case SimpleS2K:
		return func(out, in []byte) { Simple(out, h, in) }, nil
	case SaltedS2K:
		salt := p.salt
		return func(out, in []byte) { Salted(out, h, in, salt[:]) }, nil
	case IteratedSaltedS2K:
		salt := p.salt
		count := decodeCount(p.countByte)
		return func(out, in []byte) { Iterated(out, h, in, salt[:], count) }, nil
	}
	return nil, errors.UnsupportedError("S2K function")
}

// Serialize writes the S2K descriptor to w, in the exact form it was
// parsed or created in.
func (p *Params) Serialize(w io.Writer) error {
	if _, err := w.Write([]byte{byte(p.mode), p.hashId}); err != nil {
		return err
	}
	switch p.mode {
	case SimpleS2K:
		return nil
	case SaltedS2K:
		_, err := w.Write(p.salt[:])
		return err
	case IteratedSaltedS2K:
		if _, err := w.Write(p.salt[:]); err != nil {
			return err
		}
		_, err := w.Write([]byte{p.countByte})
		return err
	}
	return errors.UnsupportedError("S2K function")
}

// Config collects configuration parameters for S2K key-stretching
// transformations. A nil *Config is valid and results in all default
// values.
type Config struct {
	// Mode is the S2K type to be used. If 0, Iterated is used.
	Mode Mode
	// Hash is the default hash function to be used. If nil, SHA-256
	// is used.
	Hash crypto.Hash
	// S2KCount determines the strength of the passphrase stretching.
	// Should be between 1024 and 65011712, inclusive. If 0, the value
	// 65536 is used.
	S2KCount int
}

func (c *Config) hash() crypto.Hash {
	if c == nil || uint(c.Hash) == 0 {
		return crypto.SHA256
	}
	return c.Hash
}

func (c *Config) mode() Mode {
	if c == nil || c.Mode == 0 {
		return IteratedSaltedS2K
	}
	return c.Mode
}

func (c *Config) encodedCount() byte {
	if c == nil || c.S2KCount == 0 {
		return 96 // 65536, the common case.
	}
	i := c.S2KCount
	switch {
	case i < 1024:
		i = 1024
	case i > 65011712:
		i = 65011712
	}
	return encodeCount(i)
}

// encodeCount converts an iterative "count" in the range 1024 to
// 65011712, inclusive, to an encoded count. See RFC 4880 section
// 3.7.7.1.
func encodeCount(i int) byte {
	if i < 1024 || i > 65011712 {
		panic("s2k: count arg i outside the required range")
	}
	for encoded := 0; encoded < 256; encoded++ {
		count := decodeCount(byte(encoded))
		if count >= i {
			return byte(encoded)
		}
	}
	return 255
}

// decodeCount returns the mode-3 iterative "count" corresponding to the
// encoded octet c.
func decodeCount(c byte) int {
	return (16 + int(c&15)) << (uint32(c>>4) + 6)
}

var zero [1]byte

// Simple writes to out the result of computing the Simple S2K function
// (RFC 4880, section 3.7.1.1) using the given hash and passphrase.
func Simple(out []byte, h hash.Hash, in []byte) {
	Salted(out, h, in, nil)
}

// Salted writes to out the result of computing the Salted S2K function
// (RFC 4880, section 3.7.1.2) using the given hash, passphrase, and salt.
func Salted(out []byte, h hash.Hash, in []byte, salt []byte) {
	done := 0
	var digest []byte
	for i := 0; done < len(out); i++ {
		h.Reset()
		for j := 0; j < i; j++ {
			h.Write(zero[:])
		}
		h.Write(salt)
		h.Write(in)
		digest = h.Sum(digest[:0])
		done += copy(out[done:], digest)
	}
}

// Iterated writes to out the result of computing the Iterated and
// Salted S2K function (RFC 4880, section 3.7.1.3).
func Iterated(out []byte, h hash.Hash, in []byte, salt []byte, count int) {
	combined := make([]byte, len(in)+len(salt))
	copy(combined, salt)
	copy(combined[len(salt):], in)

	if count < len(combined) {
		count = len(combined)
	}

	done := 0
	var digest []byte
	for i := 0; done < len(out); i++ {
		h.Reset()
		for j := 0; j < i; j++ {
			h.Write(zero[:])
		}
		written := 0
		for written < count {
			if written+len(combined) > count {
				h.Write(combined[:count-written])
				written = count
			} else {
				h.Write(combined)
				written += len(combined)
			}
		}
		digest = h.Sum(digest[:0])
		done += copy(out[done:], digest)
	}
}

// Parse reads a binary S2K descriptor from r and returns the parsed
// Params. Use (*Params).Function to obtain the derivation closure.
func Parse(r io.Reader) (*Params, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}

	p := &Params{mode: Mode(buf[0]), hashId: buf[1]}
	switch p.mode {
	case SimpleS2K:
		return p, nil
	case SaltedS2K:
		if _, err := io.ReadFull(r, p.salt[:]); err != nil {
			return nil, err
		}
		p.hasSalt = true
		return p, nil
	case IteratedSaltedS2K:
		if _, err := io.ReadFull(r, p.salt[:]); err != nil {
			return nil, err
		}
		p.hasSalt = true
		var count [1]byte
		if _, err := io.ReadFull(r, count[:]); err != nil {
			return nil, err
		}
		p.countByte = count[0]
		p.hasCount = true
		return p, nil
	case GnuS2K:
		return nil, errors.UnsupportedError("GNU-dummy S2K extension")
	}
	return nil, errors.UnsupportedError("S2K function mode: " + strconv.Itoa(int(p.mode)))
}

// Generate creates a new Params from rand according to c (which may be
// nil for sensible defaults), suitable for protecting a new
// passphrase-derived key.
func Generate(rand io.Reader, c *Config) (*Params, error) {
	hashId, ok := HashToHashId(c.hash())
	if !ok {
		return nil, errors.InvalidArgumentError("no hash id found for hash")
	}
	p := &Params{mode: c.mode(), hashId: hashId}
	switch p.mode {
	case SimpleS2K:
		return p, nil
	case SaltedS2K:
		if _, err := io.ReadFull(rand, p.salt[:]); err != nil {
			return nil, err
		}
		p.hasSalt = true
		return p, nil
	case IteratedSaltedS2K:
		if _, err := io.ReadFull(rand, p.salt[:]); err != nil {
			return nil, err
		}
		p.hasSalt = true
		p.countByte = c.encodedCount()
		p.hasCount = true
		return p, nil
	}
	return nil, errors.UnsupportedError("S2K mode")
}

// Read is a convenience wrapper returning a ready-to-use derivation
// function along with the parsed Params, mirroring the
// historical golang.org/x/crypto/openpgp/s2k.Read signature.
func Read(r io.Reader) (f func(out, in []byte), p *Params, err error) {
	p, err = Parse(r)
	if err != nil {
		return nil, nil, err
	}
	f, err = p.Function()
	return f, p, err
}

// hashToHashIdMapping contains pairs relating OpenPGP's hash identifier
// with Go's crypto.Hash type. See RFC 4880, section 9.4.
var hashToHashIdMapping = []struct {
	id   byte
	hash crypto.Hash
}{
	{1, crypto.MD5},
	{2, crypto.SHA1},
	{3, crypto.RIPEMD160},
	{8, crypto.SHA256},
	{9, crypto.SHA384},
	{10, crypto.SHA512},
	{11, crypto.SHA224},
}

// HashIdToHash returns a crypto.Hash which corresponds to the given
// OpenPGP hash id.
func HashIdToHash(id byte) (h crypto.Hash, ok bool) {
	for _, m := range hashToHashIdMapping {
		if m.id == id {
			return m.hash, true
		}
	}
	return 0, false
}

// HashToHashId returns an OpenPGP hash id which corresponds to the
// given Hash.
func HashToHashId(h crypto.Hash) (id byte, ok bool) {
	for _, m := range hashToHashIdMapping {
		if m.hash == h {
			return m.id, true
		}
	}
	return 0, false
}
