// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package encoding

import (
	"io"
	"math/big"
)

// An MPI is used to store the contents of a big integer, along with the
// bit length that was specified in the original input. This allows the
// MPI to be reserialized exactly.
type MPI struct {
	bytes         []byte
	bitLength     uint16
}

// NewMPI returns a MPI initialized with bytes.
func NewMPI(bytes []byte) *MPI {
	// Strip leading zero bytes, mirroring RFC 4880's "minimum number of
	// bytes" requirement, then derive the bit length from the first
	// remaining byte.
	for len(bytes) > 0 && bytes[0] == 0 {
		bytes = bytes[1:]
	}
	if len(bytes) == 0 {
		return &MPI{bytes: bytes, bitLength: 0}
	}
	mpi := &MPI{bytes: bytes}
	mpi.bitLength = uint16(8*(len(bytes)-1)) + uint16(bitLengthOf(bytes[0]))
	return mpi
}

func bitLengthOf(b byte) int {
	n := 0
	for b != 0 {
		n++
		b >>= 1
	}
	return n
}

// Bytes returns the decoded data.
func (n *MPI) Bytes() []byte {
	return n.bytes
}

// BitLength is the size in bits of the decoded data.
func (n *MPI) BitLength() uint16 {
	return n.bitLength
}

// EncodedBytes returns the encoded data.
func (n *MPI) EncodedBytes() []byte {
	return append(encodedMPILength(n.bitLength), n.bytes...)
}

func encodedMPILength(bitLength uint16) []byte {
	return []byte{byte(bitLength >> 8), byte(bitLength)}
}

// EncodedLength is the size in bytes of the encoded data.
func (n *MPI) EncodedLength() uint16 {
	return uint16(2 + len(n.bytes))
}

// SetBig initializes the MPI from a big.Int.
func (n *MPI) SetBig(b *big.Int) *MPI {
	n.bytes = b.Bytes()
	n.bitLength = uint16(b.BitLen())
	return n
}

// ReadFrom reads into n the next MPI from r.
func (n *MPI) ReadFrom(r io.Reader) (int64, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	n.bitLength = uint16(buf[0])<<8 | uint16(buf[1])

	numBytes := (int(n.bitLength) + 7) / 8
	n.bytes = make([]byte, numBytes)
	nn, err := io.ReadFull(r, n.bytes)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return int64(nn) + 2, err
}
