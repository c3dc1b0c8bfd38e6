package packet

import (
	"crypto/dsa"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"
)

func testRSAKey(t *testing.T, bits int) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %s", err)
	}
	return priv
}

func testDSAKey(t *testing.T) *dsa.PrivateKey {
	t.Helper()
	params := new(dsa.Parameters)
	if err := dsa.GenerateParameters(params, rand.Reader, dsa.L1024N160); err != nil {
		t.Fatalf("dsa.GenerateParameters: %s", err)
	}
	priv := new(dsa.PrivateKey)
	priv.Parameters = *params
	if err := dsa.GenerateKey(priv, rand.Reader); err != nil {
		t.Fatalf("dsa.GenerateKey: %s", err)
	}
	return priv
}

var testTime = time.Unix(1700000000, 0)
