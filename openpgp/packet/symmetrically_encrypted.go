// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"crypto/cipher"
	"crypto/sha1"
	"crypto/subtle"
	"hash"
	"io"
	"strconv"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
)

const symmetricallyEncryptedVersionMdc = 1

// SymmetricallyEncrypted represents a symmetrically encrypted byte string.
// The encrypted Contents will consist of more OpenPGP packets. See RFC
// 4880, sections 5.7 and 5.13. Only the version 1, MDC-protected form is
// supported: un-MDC'd (version 0) encrypted data is rejected outright,
// since an attacker can tamper with it undetected.
type SymmetricallyEncrypted struct {
	MDC      bool // true if this is a version 1 packet (MDC is mandatory in this core)
	Contents io.Reader
	prefix   []byte
}

func (se *SymmetricallyEncrypted) parse(r io.Reader) error {
	if !se.MDC {
		// The MDC-less (version 0) packet format can't be decrypted safely:
		// an attacker can alter the ciphertext and the recipient has no way
		// to detect the tampering. Reject it rather than decrypt unsafely.
		return errors.UnsupportedError("non-integrity-protected symmetrically encrypted data")
	}

	var buf [1]byte
	_, err := readFull(r, buf[:])
	if err != nil {
		return err
	}
	if buf[0] != symmetricallyEncryptedVersionMdc {
		return errors.UnsupportedError("unknown SymmetricallyEncrypted version")
	}
	se.Contents = r
	return nil
}

// Decrypt returns a ReadCloser which yields the decrypted data, given a
// cipher function and a key derived from a passphrase or a decrypted
// asymmetric session key. An incorrect key is usually caught at once by
// the OCFB quick check and reported as errors.KeyIncorrectError; a key
// that passes it is caught when the Close method verifies the integrity
// checksum.
func (se *SymmetricallyEncrypted) Decrypt(c CipherFunction, key []byte) (io.ReadCloser, error) {
	if !c.IsSupported() {
		return nil, errors.UnsupportedError("unsupported cipher: " + strconv.Itoa(int(c)))
	}
	if len(key) != c.KeySize() {
		return nil, errors.InvalidArgumentError("SymmetricallyEncrypted: incorrect key length")
	}

	if se.prefix == nil {
		se.prefix = make([]byte, c.blockSize()+2)
		if _, err := readFull(se.Contents, se.prefix); err != nil {
			return nil, err
		}
	} else if len(se.prefix) != c.blockSize()+2 {
		return nil, errors.InvalidArgumentError("can't try ciphers with different block lengths")
	}

	// MDC packets use the no-resync form of OCFB mode; see RFC 4880,
	// section 13.9.
	s := NewOCFBDecrypter(c.new(key), se.prefix, OCFBNoResync)
	if s == nil {
		return nil, errors.KeyIncorrectError(0)
	}
	plaintext := cipher.StreamReader{S: s, R: se.Contents}

	h := sha1.New()
	h.Write(se.prefix)
	return &seMDCReader{in: plaintext, h: h}, nil
}

const mdcTrailerSize = 1 /* tag byte */ + 1 /* length byte */ + sha1.Size

// seMDCReader wraps an io.Reader, maintains a running hash and holds back
// the most recent mdcTrailerSize bytes. At EOF those bytes are the MDC
// packet; Close verifies its hash against the running hash. See RFC 4880,
// section 5.13.
type seMDCReader struct {
	in          io.Reader
	h           hash.Hash
	trailer     [mdcTrailerSize]byte
	scratch     [mdcTrailerSize]byte
	trailerUsed int
	error       bool
	eof         bool
}

func (ser *seMDCReader) Read(buf []byte) (n int, err error) {
	if ser.error {
		err = io.ErrUnexpectedEOF
		return
	}
	if ser.eof {
		err = io.EOF
		return
	}

	// If we haven't yet filled the trailer buffer then we must do that
	// first.
	for ser.trailerUsed < mdcTrailerSize {
		n, err = ser.in.Read(ser.trailer[ser.trailerUsed:])
		ser.trailerUsed += n
		if err == io.EOF {
			if ser.trailerUsed != mdcTrailerSize {
				n = 0
				err = io.ErrUnexpectedEOF
				ser.error = true
				return
			}
			ser.eof = true
			n = 0
			return
		}

		if err != nil {
			n = 0
			return
		}
	}

	// If it's a short read then we read into a temporary buffer and shift
	// the data into the caller's buffer.
	if len(buf) <= mdcTrailerSize {
		n, err = readFull(ser.in, ser.scratch[:len(buf)])
		copy(buf, ser.trailer[:n])
		ser.h.Write(buf[:n])
		copy(ser.trailer[:], ser.trailer[n:])
		copy(ser.trailer[mdcTrailerSize-n:], ser.scratch[:])
		if n < len(buf) {
			ser.eof = true
			err = io.EOF
		}
		return
	}

	n, err = ser.in.Read(buf[mdcTrailerSize:])
	copy(buf, ser.trailer[:])
	ser.h.Write(buf[:n])
	copy(ser.trailer[:], buf[n:])

	if err == io.EOF {
		ser.eof = true
	}
	return
}

// mdcPacketTagByte is the new-format packet tag byte for a type 19
// (Modification Detection Code) packet.
const mdcPacketTagByte = byte(0x80) | 0x40 | 19

func (ser *seMDCReader) Close() error {
	if ser.error {
		return errors.ErrMDCHashMismatch
	}

	for !ser.eof {
		// We haven't seen EOF so we need to read to the end
		var buf [1024]byte
		_, err := ser.Read(buf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.ErrMDCHashMismatch
		}
	}

	ser.h.Write(ser.trailer[:2])

	final := ser.h.Sum(nil)
	if subtle.ConstantTimeCompare(final, ser.trailer[2:]) != 1 {
		return errors.ErrMDCHashMismatch
	}
	// The hash already includes the MDC header, but we still check its
	// value to confirm encryption correctness.
	if ser.trailer[0] != mdcPacketTagByte || ser.trailer[1] != sha1.Size {
		return errors.ErrMDCHashMismatch
	}
	return nil
}

// seMDCWriter writes through to an io.WriteCloser while maintaining a
// running hash of the data written. On close, it emits an MDC packet
// containing the running hash.
type seMDCWriter struct {
	w io.WriteCloser
	h hash.Hash
}

func (w *seMDCWriter) Write(buf []byte) (n int, err error) {
	w.h.Write(buf)
	return w.w.Write(buf)
}

func (w *seMDCWriter) Close() (err error) {
	var buf [mdcTrailerSize]byte

	buf[0] = mdcPacketTagByte
	buf[1] = sha1.Size
	w.h.Write(buf[:2])
	digest := w.h.Sum(nil)
	copy(buf[2:], digest)

	if _, err = w.w.Write(buf[:]); err != nil {
		return
	}
	return w.w.Close()
}

// noOpCloser turns an io.Writer into an io.WriteCloser whose Close is a
// no-op, for wrapping writers (like the packet header stream) that must
// not be closed early.
type noOpCloser struct {
	w io.Writer
}

func (c noOpCloser) Write(data []byte) (n int, err error) {
	return c.w.Write(data)
}

func (c noOpCloser) Close() error {
	return nil
}

// SerializeSymmetricallyEncrypted serializes a symmetrically encrypted
// packet to w, using the given cipher function and key, and returns a
// WriteCloser to which the to-be-encrypted packets should be written. If
// config is nil, sensible defaults will be used.
func SerializeSymmetricallyEncrypted(w io.Writer, c CipherFunction, key []byte, config *Config) (contents io.WriteCloser, err error) {
	if !c.IsSupported() {
		return nil, errors.InvalidArgumentError("invalid mdc cipher function")
	}
	if c.KeySize() != len(key) {
		return nil, errors.InvalidArgumentError("SymmetricallyEncrypted: bad key length")
	}

	// The length of the plaintext is unknown up front, so the packet is
	// emitted in new-format partial-length chunks.
	ciphertext, err := serializeStreamHeader(noOpCloser{w}, packetTypeSymmetricallyEncryptedMDC)
	if err != nil {
		return
	}

	if _, err = ciphertext.Write([]byte{symmetricallyEncryptedVersionMdc}); err != nil {
		return
	}

	block := c.new(key)
	blockSize := block.BlockSize()
	iv := make([]byte, blockSize)
	if _, err = io.ReadFull(config.Random(), iv); err != nil {
		return nil, err
	}
	s, prefix := NewOCFBEncrypter(block, iv, OCFBNoResync)
	if _, err = ciphertext.Write(prefix); err != nil {
		return
	}
	plaintext := cipher.StreamWriter{S: s, W: ciphertext}

	h := sha1.New()
	h.Write(iv)
	h.Write(iv[blockSize-2:])
	contents = &seMDCWriter{w: plaintext, h: h}
	return
}
