package algorithm

import (
	"crypto"
	// Ensure hash implementations are linked in.
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	_ "golang.org/x/crypto/ripemd160"
)

// Hash is an official hash function algorithm. See RFC 4880, section 9.4.
type Hash interface {
	// Id returns the algorithm ID, as a byte, of the hash.
	Id() uint8
	// Available reports whether the underlying hash function is linked
	// into the binary.
	Available() bool
	// HashFunc simplifies the transition to crypto.Hash.
	HashFunc() crypto.Hash
	// New returns a fresh instance of the given hash.
	New() interface{ Write([]byte) (int, error) }
	// Size returns the size, in bytes, of the hash function's output.
	Size() int
	// DigestInfoPrefix returns the DigestInfo prefix (RFC 3447,
	// section 9.2 notes; RFC 4880, section 5.2.2) that, prepended to a
	// raw digest, forms the value PKCS#1 v1.5 RSA signing covers.
	DigestInfoPrefix() []byte
}

type hashAlgorithm struct {
	id                uint8
	hashFunc          crypto.Hash
	digestInfoPrefix  []byte
}

func (h hashAlgorithm) Id() uint8 { return h.id }
func (h hashAlgorithm) Available() bool { return h.hashFunc.Available() }
func (h hashAlgorithm) HashFunc() crypto.Hash { return h.hashFunc }
func (h hashAlgorithm) New() interface{ Write([]byte) (int, error) } {
	return h.hashFunc.New()
}
func (h hashAlgorithm) Size() int { return h.hashFunc.Size() }
func (h hashAlgorithm) DigestInfoPrefix() []byte { return h.digestInfoPrefix }

// The ASN.1 DER encoded DigestInfo prefixes, per RFC 3447 section 9.2
// (as reproduced in RFC 4880 section 5.2.2).
var (
	prefixMD5 = []byte{0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00, 0x04, 0x10}
	prefixSHA1 = []byte{0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14}
	prefixRIPEMD160 = []byte{0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x24, 0x03, 0x02, 0x01, 0x05, 0x00, 0x04, 0x14}
	prefixSHA256 = []byte{0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20}
	prefixSHA384 = []byte{0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30}
	prefixSHA512 = []byte{0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40}
	prefixSHA224 = []byte{0x30, 0x2d, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x04, 0x05, 0x00, 0x04, 0x1c}
)

var (
	MD5       Hash = hashAlgorithm{1, crypto.MD5, prefixMD5}
	SHA1      Hash = hashAlgorithm{2, crypto.SHA1, prefixSHA1}
	RIPEMD160 Hash = hashAlgorithm{3, crypto.RIPEMD160, prefixRIPEMD160}
	SHA256    Hash = hashAlgorithm{8, crypto.SHA256, prefixSHA256}
	SHA384    Hash = hashAlgorithm{9, crypto.SHA384, prefixSHA384}
	SHA512    Hash = hashAlgorithm{10, crypto.SHA512, prefixSHA512}
	SHA224    Hash = hashAlgorithm{11, crypto.SHA224, prefixSHA224}
)

// HashById represents the different hash functions supported by the
// core, keyed by the OpenPGP algorithm tag (RFC 4880, section 9.4).
var HashById = map[uint8]Hash{
	MD5.Id():       MD5,
	SHA1.Id():      SHA1,
	RIPEMD160.Id(): RIPEMD160,
	SHA256.Id():    SHA256,
	SHA384.Id():    SHA384,
	SHA512.Id():    SHA512,
	SHA224.Id():    SHA224,
}

// hashesByCryptoHash maps crypto.Hash to its OpenPGP-official Hash value.
var hashesByCryptoHash = map[crypto.Hash]Hash{
	crypto.MD5:       MD5,
	crypto.SHA1:      SHA1,
	crypto.RIPEMD160: RIPEMD160,
	crypto.SHA256:    SHA256,
	crypto.SHA384:    SHA384,
	crypto.SHA512:    SHA512,
	crypto.SHA224:    SHA224,
}

// FromCryptoHash looks up the OpenPGP Hash value for a crypto.Hash.
func FromCryptoHash(h crypto.Hash) (Hash, bool) {
	a, ok := hashesByCryptoHash[h]
	return a, ok
}
