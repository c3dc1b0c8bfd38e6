// Package errors contains common error types for the openpgp packages.
package errors

import (
	"strconv"
)

// A StructuralError is returned when OpenPGP data is found to be
// syntactically invalid.
type StructuralError string

func (s StructuralError) Error() string {
	return "openpgp: invalid data: " + string(s)
}

// UnsupportedError indicates that, although the OpenPGP data is valid,
// it makes use of currently unimplemented features.
type UnsupportedError string

func (s UnsupportedError) Error() string {
	return "openpgp: unsupported feature: " + string(s)
}

// InvalidArgumentError indicates that a function was given an invalid
// argument.
type InvalidArgumentError string

func (i InvalidArgumentError) Error() string {
	return "openpgp: invalid argument: " + string(i)
}

// SignatureError indicates that a signature verification failed.
type SignatureError string

func (b SignatureError) Error() string {
	return "openpgp: invalid signature: " + string(b)
}

// KeyInvalidError indicates that the public key parameters are invalid,
// as determined by cross-checking with the private key.
type KeyInvalidError string

func (k KeyInvalidError) Error() string {
	return "openpgp: invalid key: " + string(k)
}

// KeyIncorrectError is returned when a decryption or signing operation
// cannot proceed because of a mismatch between key material and the
// intended operation: no key with a matching key-id, or a passphrase
// that fails to decrypt any candidate.
type KeyIncorrectError int

func (ki KeyIncorrectError) Error() string {
	return "openpgp: incorrect key"
}

// UnknownIssuerError is returned when a signature is signed by a public
// key that is not found locally.
type UnknownIssuerError int

func (k UnknownIssuerError) Error() string {
	return "openpgp: signature made by unknown entity"
}

// UnknownPacketTypeError is returned for packet types that we do not
// understand.
type UnknownPacketTypeError uint8

func (upte UnknownPacketTypeError) Error() string {
	return "openpgp: unknown packet type: " + strconv.Itoa(int(upte))
}

// ErrMDCMissing is returned when a MDC packet is expected but absent.
var ErrMDCMissing = StructuralError("MDC packet not found")

// ErrMDCHashMismatch is returned when the computed MDC hash does not
// match the received MDC hash.
var ErrMDCHashMismatch = StructuralError("MDC hash mismatch")

// ErrSignatureMismatch is returned when a signature is well-formed but
// the cryptographic verification failed.
var ErrSignatureMismatch = SignatureError("signature verification failed")

// ErrUnsupportedVersion is returned for packet versions the core does
// not implement (e.g. un-MDC'd v0 encrypted data).
var ErrUnsupportedVersion = UnsupportedError("unsupported packet version")
