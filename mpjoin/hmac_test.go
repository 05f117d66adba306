package mpjoin

import "testing"

func TestTruncatedHMACRoundTrip(t *testing.T) {
	mac := TruncatedHMAC(1, 2, 10, 20)
	if !VerifyTruncatedHMAC(1, 2, 10, 20, mac) {
		t.Fatal("expected TruncatedHMAC to verify against itself")
	}
	if VerifyTruncatedHMAC(1, 2, 10, 21, mac) {
		t.Fatal("expected a different nonce to fail verification")
	}
}

func TestFullHMACRoundTrip(t *testing.T) {
	mac := ComputeHMAC(3, 4, 100, 200)
	if !VerifyFullHMAC(3, 4, 100, 200, mac) {
		t.Fatal("expected ComputeHMAC to verify against itself")
	}
}

func TestTruncatedHMACIsPrefixOfFull(t *testing.T) {
	full := ComputeHMAC(5, 6, 1, 2)
	trunc := TruncatedHMAC(5, 6, 1, 2)
	for i := range trunc {
		if full[i] != trunc[i] {
			t.Fatalf("TruncatedHMAC byte %d = %#x, want %#x (prefix of full HMAC)", i, trunc[i], full[i])
		}
	}
}

func TestKeysOrderMatters(t *testing.T) {
	a := ComputeHMAC(1, 2, 10, 20)
	b := ComputeHMAC(2, 1, 10, 20)
	if a == b {
		t.Error("expected swapping key order to change the HMAC")
	}
}
