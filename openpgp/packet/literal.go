// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"encoding/binary"
	"io"

	"github.com/openpgp-core/pgpcore/openpgp/errors"
)

// LiteralData represents an encrypted file. See RFC 4880, section 5.9.
type LiteralData struct {
	IsBinary bool
	FileName string
	// Time is the creation or modification time of the file, in Unix
	// epoch seconds. 0 means undefined.
	Time uint32
	Body io.Reader
}

// ForEyesOnly returns whether the contents of the LiteralData packet are
// intended for human viewing only, rather than storage or processing.
func (l *LiteralData) ForEyesOnly() bool {
	return l.FileName == "_CONSOLE"
}

func (l *LiteralData) parse(r io.Reader) (err error) {
	var buf [4]byte
	if _, err = readFull(r, buf[:2]); err != nil {
		return
	}

	switch buf[0] {
	case 'u', 't':
		l.IsBinary = false
	case 'b':
		l.IsBinary = true
	default:
		return errors.UnsupportedError("unsupported literal data format: " + string(buf[0]))
	}

	fileNameLen := int(buf[1])
	fileName := make([]byte, fileNameLen)
	if _, err = readFull(r, fileName); err != nil {
		return
	}
	l.FileName = string(fileName)

	if _, err = readFull(r, buf[:4]); err != nil {
		return
	}
	l.Time = binary.BigEndian.Uint32(buf[:4])
	l.Body = r
	return
}

// SerializeLiteral serializes a literal data packet to w and returns a
// WriteCloser to which the literal data itself should be written. Since
// the literal data's length is not known up front, it's emitted as a
// stream of new-format partial-length chunks; Close must be called when
// done writing.
func SerializeLiteral(w io.WriteCloser, isBinary bool, fileName string, time uint32) (plaintext io.WriteCloser, err error) {
	var buf [4]byte
	buf[0] = 't'
	if isBinary {
		buf[0] = 'b'
	}
	if len(fileName) > 255 {
		fileName = fileName[:255]
	}
	buf[1] = byte(len(fileName))

	inner, err := serializeStreamHeader(w, packetTypeLiteralData)
	if err != nil {
		return
	}

	_, err = inner.Write(buf[:2])
	if err != nil {
		return
	}
	_, err = inner.Write([]byte(fileName))
	if err != nil {
		return
	}
	binary.BigEndian.PutUint32(buf[:], time)
	_, err = inner.Write(buf[:])
	if err != nil {
		return
	}
	plaintext = inner
	return
}
