package mpopt

import "testing"

func TestMPJoinSynRoundTrip(t *testing.T) {
	out := OutJoin{
		Stage: StageSyn,
		SynJoin: SynJoin{
			Backup: true,
			AddrID: 3,
			Token:  0xdeadbeef,
			Nonce:  0xcafef00d,
		},
	}
	encoded := encodeMPJoin(&out)

	var meta SegmentMeta
	var acc ReceiveOptions
	ParseOption(encoded, 0, &meta, &acc)

	if meta.Join == nil {
		t.Fatal("expected MP_JOIN to be parsed")
	}
	if meta.Join.Stage != StageSyn {
		t.Fatalf("stage = %v, want StageSyn", meta.Join.Stage)
	}
	if meta.Join.Token != out.Token {
		t.Errorf("token = %#x, want %#x", meta.Join.Token, out.Token)
	}
	if meta.Join.Nonce != out.Nonce {
		t.Errorf("nonce = %#x, want %#x", meta.Join.Nonce, out.Nonce)
	}
	if meta.Join.AddrID != out.AddrID {
		t.Errorf("addr id = %d, want %d", meta.Join.AddrID, out.AddrID)
	}
	if !meta.Join.Backup {
		t.Error("expected backup bit to survive round trip")
	}
	if acc.ReceivedToken != out.Token {
		t.Errorf("accumulator token = %#x, want %#x", acc.ReceivedToken, out.Token)
	}
}

func TestMPJoinSynAckRoundTrip(t *testing.T) {
	out := OutJoin{
		Stage: StageSynAck,
		SynAckJoin: SynAckJoin{
			AddrID:        9,
			TruncatedHMAC: [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
			Nonce:         0x1234,
		},
	}
	encoded := encodeMPJoin(&out)

	var meta SegmentMeta
	var acc ReceiveOptions
	ParseOption(encoded, 0, &meta, &acc)

	if meta.Join == nil || meta.Join.Stage != StageSynAck {
		t.Fatalf("expected SynAck MP_JOIN, got %+v", meta.Join)
	}
	if meta.Join.TruncatedHMAC != out.TruncatedHMAC {
		t.Errorf("hmac = %x, want %x", meta.Join.TruncatedHMAC, out.TruncatedHMAC)
	}
}

func TestMPJoinAckRoundTrip(t *testing.T) {
	var hmac [20]byte
	for i := range hmac {
		hmac[i] = byte(i)
	}
	out := OutJoin{Stage: StageAck, AckJoin: AckJoin{HMAC: hmac}}
	encoded := encodeMPJoin(&out)

	var meta SegmentMeta
	var acc ReceiveOptions
	ParseOption(encoded, 0, &meta, &acc)

	if meta.Join == nil || meta.Join.Stage != StageAck {
		t.Fatalf("expected Ack MP_JOIN, got %+v", meta.Join)
	}
	if meta.Join.HMAC != hmac {
		t.Errorf("hmac = %x, want %x", meta.Join.HMAC, hmac)
	}
}
