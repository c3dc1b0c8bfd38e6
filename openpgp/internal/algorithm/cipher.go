// Package algorithm holds OpenPGP algorithm-tag-to-implementation
// tables used by the packet package.
package algorithm

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/blowfish"
)

// Cipher is an official symmetric key cipher algorithm. See RFC 4880,
// section 9.2.
type Cipher interface {
	// Id returns the algorithm ID, as a byte, of the cipher.
	Id() uint8
	// KeySize returns the key size, in bytes, of the cipher.
	KeySize() int
	// BlockSize returns the block size, in bytes, of the cipher.
	BlockSize() int
	// New returns a fresh instance of the given cipher.
	New(key []byte) cipher.Block
}

// The following constants mirror the CipherFunction values used by the
// packet package; they are duplicated here (rather than imported, to
// avoid a cyclic dependency) and kept in lock-step by convention.
const (
	cipher3DES     = 2
	cipherCAST5    = 3
	cipherAES128   = 7
	cipherAES192   = 8
	cipherAES256   = 9
	cipherBlowfish = 4
)

type aes128 int
type aes192 int
type aes256 int
type blowfish128 int

func (aes128) Id() uint8        { return cipherAES128 }
func (aes128) KeySize() int     { return 16 }
func (aes128) BlockSize() int   { return aes.BlockSize }
func (aes128) New(key []byte) cipher.Block {
	block, _ := aes.NewCipher(key)
	return block
}

func (aes192) Id() uint8      { return cipherAES192 }
func (aes192) KeySize() int   { return 24 }
func (aes192) BlockSize() int { return aes.BlockSize }
func (aes192) New(key []byte) cipher.Block {
	block, _ := aes.NewCipher(key)
	return block
}

func (aes256) Id() uint8      { return cipherAES256 }
func (aes256) KeySize() int   { return 32 }
func (aes256) BlockSize() int { return aes.BlockSize }
func (aes256) New(key []byte) cipher.Block {
	block, _ := aes.NewCipher(key)
	return block
}

// blowfish128 commits to a 128-bit key regardless of the larger
// variable-length keys RFC 4880 permits; see spec design note on
// Blowfish.
func (blowfish128) Id() uint8      { return cipherBlowfish }
func (blowfish128) KeySize() int   { return 16 }
func (blowfish128) BlockSize() int { return blowfish.BlockSize }
func (blowfish128) New(key []byte) cipher.Block {
	block, _ := blowfish.NewCipher(key)
	return block
}

var (
	// AES128 is AES with a 128-bit key.
	AES128 Cipher = aes128(0)
	// AES192 is AES with a 192-bit key.
	AES192 Cipher = aes192(0)
	// AES256 is AES with a 256-bit key.
	AES256 Cipher = aes256(0)
	// Blowfish128 is Blowfish fixed at a 128-bit key.
	Blowfish128 Cipher = blowfish128(0)
)

// CipherById represents the different block ciphers supported by the
// core, keyed by the OpenPGP algorithm tag (RFC 4880, section 9.2).
var CipherById = map[uint8]Cipher{
	AES128.Id():      AES128,
	AES192.Id():      AES192,
	AES256.Id():      AES256,
	Blowfish128.Id(): Blowfish128,
}
