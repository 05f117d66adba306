package mppm

import (
	"net"
	"testing"
)

func TestAddrSetAddAssignsNextID(t *testing.T) {
	s := NewAddrSet()
	id1 := s.Add(Endpoint{IP: net.ParseIP("10.0.0.1")})
	id2 := s.Add(Endpoint{IP: net.ParseIP("10.0.0.2")})

	if id1 != 1 || id2 != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", id1, id2)
	}
}

func TestAddrSetLearnUpdatesOnNAT(t *testing.T) {
	s := NewAddrSet()
	s.Learn(Endpoint{ID: 1, IP: net.ParseIP("10.0.0.1")})
	s.Learn(Endpoint{ID: 1, IP: net.ParseIP("203.0.113.5")})

	all := s.All()
	if len(all) != 1 {
		t.Fatalf("len(All()) = %d, want 1", len(all))
	}
	if !all[0].IP.Equal(net.ParseIP("203.0.113.5")) {
		t.Errorf("IP = %v, want updated address", all[0].IP)
	}
}

func TestAddrSetLearnExactRepeatIsNoOp(t *testing.T) {
	s := NewAddrSet()
	ep := Endpoint{ID: 1, IP: net.ParseIP("10.0.0.1"), Port: 5000}
	s.Learn(ep)
	s.Learn(ep)

	if len(s.All()) != 1 {
		t.Fatalf("len(All()) = %d, want 1", len(s.All()))
	}
}

func TestAddrSetAllSortedByID(t *testing.T) {
	s := NewAddrSet()
	s.Add(Endpoint{ID: 5, IP: net.ParseIP("10.0.0.5")})
	s.Add(Endpoint{ID: 1, IP: net.ParseIP("10.0.0.1")})
	s.Add(Endpoint{ID: 3, IP: net.ParseIP("10.0.0.3")})

	all := s.All()
	for i := 1; i < len(all); i++ {
		if all[i].ID < all[i-1].ID {
			t.Fatalf("All() not sorted: %+v", all)
		}
	}
}
