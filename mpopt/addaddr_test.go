package mpopt

import "testing"

func TestAddAddrV4RoundTrip(t *testing.T) {
	out := OutAddAddr{RemoteAddr{ID: 2, IP: [16]byte{192, 168, 1, 1}, Port: 6000}}
	encoded := encodeAddAddr(&out)

	var meta SegmentMeta
	var acc ReceiveOptions
	ParseOption(encoded, 0, &meta, &acc)

	if len(acc.RemoteAddrs) != 1 {
		t.Fatalf("len(RemoteAddrs) = %d, want 1", len(acc.RemoteAddrs))
	}
	got := acc.RemoteAddrs[0]
	if got.ID != 2 || got.IP != out.IP || got.Port != 6000 || got.IsV6 {
		t.Errorf("remote addr = %+v, want %+v", got, out.RemoteAddr)
	}
}

func TestAddAddrV6NoPort(t *testing.T) {
	var ip [16]byte
	for i := range ip {
		ip[i] = byte(i + 1)
	}
	out := OutAddAddr{RemoteAddr{ID: 5, IP: ip, IsV6: true}}
	encoded := encodeAddAddr(&out)

	var meta SegmentMeta
	var acc ReceiveOptions
	ParseOption(encoded, 0, &meta, &acc)

	if len(acc.RemoteAddrs) != 1 {
		t.Fatalf("len(RemoteAddrs) = %d, want 1", len(acc.RemoteAddrs))
	}
	got := acc.RemoteAddrs[0]
	if !got.IsV6 || got.IP != ip || got.Port != 0 {
		t.Errorf("remote addr = %+v, want v6 %+v", got, ip)
	}
}

func TestAddAddrNATUpdatesExistingID(t *testing.T) {
	var acc ReceiveOptions
	acc.addRemoteAddr(RemoteAddr{ID: 1, IP: [16]byte{10, 0, 0, 1}})

	// Same id, different observed source IP: NAT case, update in place.
	acc.addRemoteAddr(RemoteAddr{ID: 1, IP: [16]byte{203, 0, 113, 5}})

	if len(acc.RemoteAddrs) != 1 {
		t.Fatalf("len(RemoteAddrs) = %d, want 1 (update, not append)", len(acc.RemoteAddrs))
	}
	if acc.RemoteAddrs[0].IP != [16]byte{203, 0, 113, 5} {
		t.Errorf("remote addr not updated: %+v", acc.RemoteAddrs[0])
	}
}

func TestAddAddrExactMatchIsNoOp(t *testing.T) {
	var acc ReceiveOptions
	ra := RemoteAddr{ID: 1, IP: [16]byte{10, 0, 0, 1}, Port: 5000}
	acc.addRemoteAddr(ra)
	acc.addRemoteAddr(ra)

	if len(acc.RemoteAddrs) != 1 {
		t.Fatalf("len(RemoteAddrs) = %d, want 1 (exact match is a no-op)", len(acc.RemoteAddrs))
	}
}
