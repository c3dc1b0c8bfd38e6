// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package packet implements parsing and serialization of OpenPGP packets,
// as specified in RFC 4880, restricted to the packet types and
// algorithms the core crypto layer supports: RSA and DSA keys, v4
// signatures (plus v2/v3 fingerprinting), literal data, user ids,
// asymmetric and symmetric session keys, and MDC-protected (v1)
// symmetrically encrypted data.
package packet

import (
	"bufio"
	"crypto/rsa"
	"io"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
)

// readFull is the same as io.ReadFull except that reading zero bytes
// returns ErrUnexpectedEOF rather than EOF when that occurs before any
// bytes are read.
func readFull(r io.Reader, buf []byte) (n int, err error) {
	n, err = io.ReadFull(r, buf)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

// readLength reads an OpenPGP length from r. See RFC 4880, section
// 4.2.2.
func readLength(r io.Reader) (length int64, isPartial bool, err error) {
	var buf [5]byte
	if _, err = readFull(r, buf[:1]); err != nil {
		return
	}
	switch {
	case buf[0] < 192:
		length = int64(buf[0])
	case buf[0] < 224:
		if _, err = readFull(r, buf[1:2]); err != nil {
			return
		}
		length = int64(buf[0]-192)<<8 + int64(buf[1]) + 192
	case buf[0] < 255:
		length = int64(1) << (buf[0] & 0x1f)
		isPartial = true
	default:
		if _, err = readFull(r, buf[1:5]); err != nil {
			return
		}
		length = int64(buf[1])<<24 | int64(buf[2])<<16 | int64(buf[3])<<8 | int64(buf[4])
	}
	return
}

// partialLengthReader wraps an io.Reader that contains a stream of
// packets. It returns EOF at the end of the stream and handles
// "partial length" encoding.
type partialLengthReader struct {
	r         io.Reader
	remaining int64
	isPartial bool
}

func (r *partialLengthReader) Read(p []byte) (n int, err error) {
	for r.remaining == 0 {
		if !r.isPartial {
			return 0, io.EOF
		}
		r.remaining, r.isPartial, err = readLength(r.r)
		if err != nil {
			return 0, err
		}
	}

	toRead := int64(len(p))
	if toRead > r.remaining {
		toRead = r.remaining
	}

	n, err = r.r.Read(p[:int(toRead)])
	r.remaining -= int64(n)
	if n < int(toRead) && err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

// partialLengthWriter writes a stream of data using OpenPGP partial
// lengths. See RFC 4880, section 4.2.2.4.
type partialLengthWriter struct {
	w          io.WriteCloser
	lengthByte [1]byte
}

func (w *partialLengthWriter) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		chunkSize := len(p)
		if chunkSize > 1<<30 {
			chunkSize = 1 << 30
		}
		power := uint(0)
		for (1 << (power + 1)) <= chunkSize {
			power++
		}
		chunkSize = 1 << power
		w.lengthByte[0] = 224 + byte(power)
		if _, err = w.w.Write(w.lengthByte[:]); err != nil {
			return
		}
		var m int
		m, err = w.w.Write(p[:chunkSize])
		n += m
		if err != nil {
			return
		}
		p = p[chunkSize:]
	}
	return
}

func (w *partialLengthWriter) Close() error {
	buf := []byte{0} // zero length octet, i.e. no more partial chunks.
	if _, err := w.w.Write(buf); err != nil {
		return err
	}
	return w.w.Close()
}

// spanReader is an io.LimitedReader that satisfies io.Closer.
type spanReader struct {
	r io.Reader
	n int64
}

func (l *spanReader) Read(p []byte) (n int, err error) {
	if l.n <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > l.n {
		p = p[0:l.n]
	}
	n, err = l.r.Read(p)
	l.n -= int64(n)
	if l.n > 0 && err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}

func (l *spanReader) Close() error {
	if l.n != 0 {
		_, err := io.Copy(io.Discard, l)
		return err
	}
	return nil
}

func isOldFormat(tag byte) bool {
	return tag&0xc0 == 0x80
}

// packetType represents the second least-significant 6 bits of the
// packet tag, see RFC 4880, section 4.3.
type packetType uint8

const (
	packetTypeEncryptedKey              packetType = 1
	packetTypeSignature                 packetType = 2
	packetTypeSymmetricKeyEncrypted     packetType = 3
	packetTypeOnePassSignature          packetType = 4
	packetTypePrivateKey                packetType = 5
	packetTypePublicKey                 packetType = 6
	packetTypePrivateSubkey             packetType = 7
	packetTypeCompressed                packetType = 8
	packetTypeSymmetricallyEncrypted    packetType = 9
	packetTypeMarker                    packetType = 10
	packetTypeLiteralData               packetType = 11
	packetTypeTrust                     packetType = 12
	packetTypeUserId                    packetType = 13
	packetTypePublicSubkey              packetType = 14
	packetTypeUserAttribute             packetType = 17
	packetTypeSymmetricallyEncryptedMDC packetType = 18
	packetTypeModificationDetectionCode packetType = 19
)

// peekHeader reads the packet header and returns its tag, whether it
// was encoded in "new" format, and the length of the packet body.
func peekHeader(r *bufio.Reader) (tag packetType, newFormat bool, contentsReader io.Reader, err error) {
	var buf [1]byte
	if _, err = io.ReadFull(r, buf[:]); err != nil {
		return
	}
	if buf[0]&0x80 == 0 {
		err = errors.StructuralError("tag byte does not have MSB set")
		return
	}
	newFormat = buf[0]&0x40 != 0
	var length int64
	var isPartial bool
	if newFormat {
		tag = packetType(buf[0] & 0x3f)
		length, isPartial, err = readLength(r)
	} else {
		tag = packetType((buf[0] & 0x3f) >> 2)
		lengthType := buf[0] & 3
		if lengthType == 3 {
			length = -1
		} else {
			lengthBytes := make([]byte, 1<<lengthType)
			if _, err = readFull(r, lengthBytes); err != nil {
				return
			}
			for _, b := range lengthBytes {
				length <<= 8
				length |= int64(b)
			}
		}
	}
	if err != nil {
		return
	}

	if length == -1 {
		contentsReader = r
	} else if isPartial {
		contentsReader = &partialLengthReader{
			remaining: length,
			isPartial: true,
			r:         r,
		}
	} else {
		contentsReader = &spanReader{r, length}
	}
	return
}

// Packet represents an OpenPGP packet. Its type corresponds to the
// parsed OpenPGP packet type, and its contents are stored in the
// polymorphic value.
type Packet interface {
	parse(io.Reader) error
}

// consumeAll reads from the given Reader until error, returning the
// number of bytes read.
func consumeAll(r io.Reader) (n int64, err error) {
	var m int
	var buf [1024]byte
	for {
		m, err = r.Read(buf[:])
		n += int64(m)
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// Read reads a single OpenPGP packet from r. If the packet is
// unsupported, an error implementing UnsupportedError is returned.
func Read(r io.Reader) (p Packet, err error) {
	tag, _, contents, err := peekHeader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}

	switch tag {
	case packetTypeEncryptedKey:
		p = new(EncryptedKey)
	case packetTypeSignature:
		p = new(Signature)
	case packetTypeSymmetricKeyEncrypted:
		p = new(SymmetricKeyEncrypted)
	case packetTypePrivateKey, packetTypePrivateSubkey:
		pk := new(PrivateKey)
		if tag == packetTypePrivateSubkey {
			pk.IsSubkey = true
		}
		p = pk
	case packetTypePublicKey, packetTypePublicSubkey:
		pk := new(PublicKey)
		if tag == packetTypePublicSubkey {
			pk.IsSubkey = true
		}
		p = pk
	case packetTypeLiteralData:
		p = new(LiteralData)
	case packetTypeUserId:
		p = new(UserId)
	case packetTypeSymmetricallyEncryptedMDC:
		se := new(SymmetricallyEncrypted)
		se.MDC = true
		p = se
	case packetTypeSymmetricallyEncrypted:
		p = new(SymmetricallyEncrypted)
	default:
		return nil, errors.UnsupportedError("unknown packet type: " + itoa(int(tag)))
	}
	if p != nil {
		err = p.parse(contents)
	}
	if err != nil {
		consumeAll(contents)
	}
	return
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// ReadMessage reads every packet in r into a slice.
func ReadMessage(r io.Reader) (pkts []Packet, err error) {
	for {
		p, err := Read(r)
		if err == io.EOF {
			return pkts, nil
		}
		if err != nil {
			return pkts, err
		}
		pkts = append(pkts, p)
	}
}

const (
	versionSize   = 1
	timestampSize = 4
	algorithmSize = 1
)

// serializeHeader writes an OpenPGP packet header to w, in new format,
// for a packet of the given type and (already known) length.
func serializeHeader(w io.Writer, ptype packetType, length int) (err error) {
	var buf [6]byte
	var n int

	buf[0] = 0x80 | 0x40 | byte(ptype)
	if length < 192 {
		buf[1] = byte(length)
		n = 2
	} else if length < 8384 {
		length -= 192
		buf[1] = 192 + byte(length>>8)
		buf[2] = byte(length)
		n = 3
	} else {
		buf[1] = 255
		buf[2] = byte(length >> 24)
		buf[3] = byte(length >> 16)
		buf[4] = byte(length >> 8)
		buf[5] = byte(length)
		n = 6
	}

	_, err = w.Write(buf[:n])
	return
}

// serializeStreamHeader writes an OpenPGP packet header to w, for a
// packet whose length is not known ahead of time. The caller must
// Close the returned io.WriteCloser once done writing the packet body.
func serializeStreamHeader(w io.WriteCloser, ptype packetType) (out io.WriteCloser, err error) {
	var buf [1]byte
	buf[0] = 0x80 | 0x40 | byte(ptype)
	if _, err = w.Write(buf[:]); err != nil {
		return
	}
	out = &partialLengthWriter{w: w}
	return
}

// padToKeySize left-pads a MPI-derived signature value with zeroes up
// to the byte size of the given RSA public key, as required before
// handing the value to rsa.VerifyPKCS1v15.
func padToKeySize(pub *rsa.PublicKey, b []byte) []byte {
	k := (pub.N.BitLen() + 7) / 8
	if len(b) >= k {
		return b
	}
	bb := make([]byte, k)
	copy(bb[len(bb)-len(b):], b)
	return bb
}
