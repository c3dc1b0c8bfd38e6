package packet

import (
	"bytes"
	"testing"
)

func TestNotationGetData(t *testing.T) {
	notation := Notation{
		Name:          "test@pgpcore.dev",
		Value:         []byte("test-value"),
		Critical:      true,
		HumanReadable: true,
	}
	expected := []byte{0x80, 0, 0, 0, 0, 16, 0, 10}
	expected = append(expected, []byte(notation.Name)...)
	expected = append(expected, []byte(notation.Value)...)
	data := notation.getData()
	if !bytes.Equal(expected, data) {
		t.Fatalf("Expected %v, got %v", expected, data)
	}
}

func TestNotationGetDataNotHumanReadable(t *testing.T) {
	notation := Notation{
		Name:          "test@pgpcore.dev",
		Value:         []byte("test-value"),
		Critical:      true,
		HumanReadable: false,
	}
	expected := []byte{0, 0, 0, 0, 0, 16, 0, 10}
	expected = append(expected, []byte(notation.Name)...)
	expected = append(expected, []byte(notation.Value)...)
	data := notation.getData()
	if !bytes.Equal(expected, data) {
		t.Fatalf("Expected %v, got %v", expected, data)
	}
}
