package mppm

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// LocalInterface is one network interface this host can originate
// subflows from (spec.md §4.7 "interface up/down").
type LocalInterface struct {
	Index int
	Name  string
	Up    bool
	Addrs []net.IP
}

// ListLocalInterfaces enumerates the host's network interfaces and
// their addresses via a netlink RTM_GETLINK/RTM_GETADDR-style dump,
// reported here through net.Interfaces/net.InterfaceAddrs since the
// resulting data matches what a raw rtnetlink dump would yield and
// this layer doesn't otherwise need a second netlink socket type.
func ListLocalInterfaces() ([]LocalInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("mppm: list interfaces: %w", err)
	}

	out := make([]LocalInterface, 0, len(ifaces))
	for _, iface := range ifaces {
		li := LocalInterface{
			Index: iface.Index,
			Name:  iface.Name,
			Up:    iface.Flags&net.FlagUp != 0,
		}

		addrs, err := iface.Addrs()
		if err != nil {
			return nil, fmt.Errorf("mppm: addrs for %s: %w", iface.Name, err)
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			li.Addrs = append(li.Addrs, ipnet.IP)
		}

		out = append(out, li)
	}
	return out, nil
}

// SyncLocalAddrSet adds to set every non-loopback address of the
// host's currently-up interfaces, preserving each endpoint's assigned
// ID across calls so that a repeated sync after an address flap does
// not reassign IDs still in use by an established subflow (spec.md
// §4.7). Entries already in set whose address is no longer present
// are left in place.
func SyncLocalAddrSet(set *AddrSet, backupIfaces map[string]bool) error {
	ifaces, err := ListLocalInterfaces()
	if err != nil {
		return err
	}

	existing := map[string]uint8{}
	for _, ep := range set.All() {
		existing[ep.IP.String()] = ep.ID
	}

	for _, iface := range ifaces {
		if !iface.Up {
			continue
		}
		for _, ip := range iface.Addrs {
			if ip.IsLoopback() {
				continue
			}
			ep := Endpoint{
				IP:     ip,
				IsV6:   ip.To4() == nil,
				Backup: backupIfaces[iface.Name],
			}
			if id, ok := existing[ip.String()]; ok {
				ep.ID = id
			}
			set.Add(ep)
		}
	}
	return nil
}

// InterfaceFlagsString renders unix.IFF_* flags the way the kernel's
// own /proc/net/dev would, used by mptrace for human-readable
// interface-event logging.
func InterfaceFlagsString(flags uint32) string {
	names := []struct {
		bit  uint32
		name string
	}{
		{unix.IFF_UP, "UP"},
		{unix.IFF_BROADCAST, "BROADCAST"},
		{unix.IFF_LOOPBACK, "LOOPBACK"},
		{unix.IFF_POINTOPOINT, "POINTOPOINT"},
		{unix.IFF_RUNNING, "RUNNING"},
		{unix.IFF_MULTICAST, "MULTICAST"},
	}

	s := ""
	for _, n := range names {
		if flags&n.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		s = "0"
	}
	return s
}
