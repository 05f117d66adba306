package mpnl

import (
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
)

func TestAttrsFromAddressV4(t *testing.T) {
	a := Address{Token: 1, AddrID: 2, IP: net.ParseIP("10.0.0.1"), Port: 6000, PathIndex: 3, Backup: true}
	attrs := attrsFromAddress(a)

	back, err := parseAddresses([]genetlink.Message{{Data: mustMarshal(t, attrs)}})
	if err != nil {
		t.Fatalf("parseAddresses: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("len(back) = %d, want 1", len(back))
	}
	got := back[0]
	if got.Token != a.Token || got.AddrID != a.AddrID || !got.IP.Equal(a.IP) ||
		got.Port != a.Port || got.PathIndex != a.PathIndex || !got.Backup || got.IsV6 {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, a)
	}
}

func TestAttrsFromAddressV6(t *testing.T) {
	a := Address{Token: 5, AddrID: 9, IsV6: true, IP: net.ParseIP("2001:db8::1")}
	attrs := attrsFromAddress(a)

	back, err := parseAddresses([]genetlink.Message{{Data: mustMarshal(t, attrs)}})
	if err != nil {
		t.Fatalf("parseAddresses: %v", err)
	}
	if len(back) != 1 || !back[0].IsV6 || !back[0].IP.Equal(a.IP) {
		t.Fatalf("round trip mismatch: got %+v", back)
	}
}

func mustMarshal(t *testing.T, attrs []netlink.Attribute) []byte {
	t.Helper()
	data, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		t.Fatalf("MarshalAttributes: %v", err)
	}
	return data
}

func TestParseAddressesEmpty(t *testing.T) {
	got, err := parseAddresses(nil)
	if err != nil {
		t.Fatalf("parseAddresses: %v", err)
	}
	if diff := cmp.Diff([]Address{}, got); diff != "" {
		t.Errorf("parseAddresses(nil) mismatch (-want +got):\n%s", diff)
	}
}
