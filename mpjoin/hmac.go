package mpjoin

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
)

// ComputeHMAC computes the MPTCP join HMAC: HMAC-SHA1 keyed by the two
// peers' 64-bit keys concatenated, over their two 32-bit nonces
// concatenated, as declared by mptcp_hmac_sha1 in
// original_source/include/net/mptcp.h and specified in spec.md §4.8.
//
// Callers pass key1/rand1 for "self" and key2/rand2 for "peer" in
// whichever order the handshake leg requires: the responder's
// SYN-ACK keys with (receiver_key, sender_key) and nonces with
// (receiver_rand, sender_rand); the initiator's third ACK swaps both
// pairs back.
func ComputeHMAC(key1, key2 uint64, rand1, rand2 uint32) [20]byte {
	var keyBuf [16]byte
	binary.BigEndian.PutUint64(keyBuf[0:8], key1)
	binary.BigEndian.PutUint64(keyBuf[8:16], key2)

	var msgBuf [8]byte
	binary.BigEndian.PutUint32(msgBuf[0:4], rand1)
	binary.BigEndian.PutUint32(msgBuf[4:8], rand2)

	mac := hmac.New(sha1.New, keyBuf[:])
	mac.Write(msgBuf[:])

	var out [20]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// TruncatedHMAC returns the leftmost 8 bytes of ComputeHMAC, the form
// carried in the SYN-ACK's MP_JOIN suboption (spec.md §4.8, §6 length
// table).
func TruncatedHMAC(key1, key2 uint64, rand1, rand2 uint32) [8]byte {
	full := ComputeHMAC(key1, key2, rand1, rand2)
	var out [8]byte
	copy(out[:], full[:8])
	return out
}

// VerifyTruncatedHMAC reports whether got matches the HMAC this side
// would have computed for the SYN-ACK leg.
func VerifyTruncatedHMAC(key1, key2 uint64, rand1, rand2 uint32, got [8]byte) bool {
	want := TruncatedHMAC(key1, key2, rand1, rand2)
	return hmac.Equal(want[:], got[:])
}

// VerifyFullHMAC reports whether got matches the HMAC this side would
// have computed for the third-ACK leg.
func VerifyFullHMAC(key1, key2 uint64, rand1, rand2 uint32, got [20]byte) bool {
	want := ComputeHMAC(key1, key2, rand1, rand2)
	return hmac.Equal(want[:], got[:])
}
