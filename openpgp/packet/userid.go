// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package packet

import (
	"io"
	"strings"
)

// UserId contains text that is intended to represent the name and email
// address of the key holder. See RFC 4880, section 5.11. By convention,
// this takes the form "Full Name (Comment) <email@example.com>".
type UserId struct {
	Id string // By convention, this takes the form "Full Name (Comment) <email@example.com>"

	// The following fields are extracted from Id.
	Name, Comment, Email string
}

// NewUserId returns a UserId or nil if the constituent parts contain
// invalid characters.
func NewUserId(name, comment, email string) *UserId {
	// RFC 4880, section 5.11: a user ID is a UTF-8 string. None of the
	// constituent parts may contain the characters that delimit the
	// others: '(', ')', '<', '>'.
	for _, r := range name {
		if r == '(' || r == ')' || r == '<' || r == '>' {
			return nil
		}
	}
	for _, r := range comment {
		if r == '(' || r == ')' || r == '<' || r == '>' {
			return nil
		}
	}
	for _, r := range email {
		if r == '(' || r == ')' || r == '<' || r == '>' {
			return nil
		}
	}

	uid := new(UserId)
	uid.Name, uid.Comment, uid.Email = name, comment, email
	uid.Id = name
	if len(comment) > 0 {
		if len(uid.Id) > 0 {
			uid.Id += " "
		}
		uid.Id += "(" + comment + ")"
	}
	if len(email) > 0 {
		if len(uid.Id) > 0 {
			uid.Id += " "
		}
		uid.Id += "<" + email + ">"
	}
	return uid
}

func (uid *UserId) parse(r io.Reader) (err error) {
	// RFC 4880, section 5.11
	b, err := io.ReadAll(r)
	if err != nil {
		return
	}
	uid.Id = string(b)
	uid.Name, uid.Comment, uid.Email = parseUserId(uid.Id)
	return
}

// Serialize marshals uid to w in the form of an OpenPGP packet, including
// header.
func (uid *UserId) Serialize(w io.Writer) error {
	err := serializeHeader(w, packetTypeUserId, len(uid.Id))
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(uid.Id))
	return err
}

// parseUserId extracts the name, comment and email parts from a user ID
// string of the form "name (comment) <email>", any of which may be
// absent. It is forgiving of malformed input: unparsed text is simply
// dropped rather than treated as an error, since a user ID is free text
// by specification.
func parseUserId(id string) (name, comment, email string) {
	n := strings.Index(id, "<")
	if n >= 0 {
		m := strings.Index(id[n:], ">")
		if m >= 0 {
			email = id[n+1 : n+m]
			id = id[:n] + id[n+m+1:]
		}
	}

	n = strings.Index(id, "(")
	if n >= 0 {
		m := strings.Index(id[n:], ")")
		if m >= 0 {
			comment = id[n+1 : n+m]
			id = id[:n] + id[n+m+1:]
		}
	}

	id = strings.TrimSpace(id)
	if len(id) > 0 {
		name = id
	}
	return
}
