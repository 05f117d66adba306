package mpnl

import (
	"net"

	"github.com/mdlayher/genetlink"
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// A PMService provides access to methods which interact with the
// "mptcp_pm" generic netlink family (spec.md §4.7, §4.8).
type PMService struct {
	c *Client
	f genetlink.Family
}

// An Address is one local or remote endpoint carried in a PM netlink
// message.
type Address struct {
	Token     uint32
	AddrID    uint8
	IsV6      bool
	IP        net.IP
	Port      uint16
	PathIndex uint8
	Backup    bool
}

func attrsFromAddress(a Address) []netlink.Attribute {
	attrs := []netlink.Attribute{
		{Type: mptcph.PMAttrToken, Data: nlenc.Uint32Bytes(a.Token)},
		{Type: mptcph.PMAttrAddrID, Data: []byte{a.AddrID}},
	}

	if a.IsV6 {
		attrs = append(attrs, netlink.Attribute{Type: mptcph.PMAttrFamily, Data: []byte{6}})
		attrs = append(attrs, netlink.Attribute{Type: mptcph.PMAttrAddr6, Data: a.IP.To16()})
	} else {
		attrs = append(attrs, netlink.Attribute{Type: mptcph.PMAttrFamily, Data: []byte{4}})
		attrs = append(attrs, netlink.Attribute{Type: mptcph.PMAttrAddr4, Data: a.IP.To4()})
	}

	if a.Port != 0 {
		attrs = append(attrs, netlink.Attribute{Type: mptcph.PMAttrPort, Data: nlenc.Uint16Bytes(a.Port)})
	}
	if a.PathIndex != 0 {
		attrs = append(attrs, netlink.Attribute{Type: mptcph.PMAttrPathIndex, Data: []byte{a.PathIndex}})
	}
	if a.Backup {
		attrs = append(attrs, netlink.Attribute{Type: mptcph.PMAttrBackup, Data: []byte{1}})
	}
	return attrs
}

// AnnounceAddr sends an ADD_ADDR announcement request for a locally
// owned address (spec.md §4.7).
func (s *PMService) AnnounceAddr(a Address) error {
	data, err := netlink.MarshalAttributes(attrsFromAddress(a))
	if err != nil {
		return err
	}

	req := genetlink.Message{
		Header: genetlink.Header{
			Command: mptcph.PMCmdAnnounce,
			Version: uint8(s.f.Version),
		},
		Data: data,
	}

	_, err = s.c.c.Execute(req, s.f.ID, netlink.HeaderFlagsRequest|netlink.HeaderFlagsAcknowledge)
	return err
}

// AddAddr registers a to the kernel's local address set, making it
// eligible for outbound subflow initiation (spec.md §4.7).
func (s *PMService) AddAddr(a Address) error {
	data, err := netlink.MarshalAttributes(attrsFromAddress(a))
	if err != nil {
		return err
	}

	req := genetlink.Message{
		Header: genetlink.Header{
			Command: mptcph.PMCmdAddAddr,
			Version: uint8(s.f.Version),
		},
		Data: data,
	}

	_, err = s.c.c.Execute(req, s.f.ID, netlink.HeaderFlagsRequest|netlink.HeaderFlagsAcknowledge)
	return err
}

// DelAddr removes addrID from the kernel's local address set for the
// connection identified by token.
func (s *PMService) DelAddr(token uint32, addrID uint8) error {
	attrs := []netlink.Attribute{
		{Type: mptcph.PMAttrToken, Data: nlenc.Uint32Bytes(token)},
		{Type: mptcph.PMAttrAddrID, Data: []byte{addrID}},
	}
	data, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		return err
	}

	req := genetlink.Message{
		Header: genetlink.Header{
			Command: mptcph.PMCmdDelAddr,
			Version: uint8(s.f.Version),
		},
		Data: data,
	}

	_, err = s.c.c.Execute(req, s.f.ID, netlink.HeaderFlagsRequest|netlink.HeaderFlagsAcknowledge)
	return err
}

// GetAddr lists the local addresses the kernel currently knows about
// for token.
func (s *PMService) GetAddr(token uint32) ([]Address, error) {
	attrs := []netlink.Attribute{
		{Type: mptcph.PMAttrToken, Data: nlenc.Uint32Bytes(token)},
	}
	data, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		return nil, err
	}

	req := genetlink.Message{
		Header: genetlink.Header{
			Command: mptcph.PMCmdGetAddr,
			Version: uint8(s.f.Version),
		},
		Data: data,
	}

	flags := netlink.HeaderFlagsRequest | netlink.HeaderFlagsDump
	msgs, err := s.c.c.Execute(req, s.f.ID, flags)
	if err != nil {
		return nil, err
	}

	return parseAddresses(msgs)
}

// SubflowCreate requests that the kernel initiate a new subflow from
// local to remote (spec.md §4.7 "subflow initiation").
func (s *PMService) SubflowCreate(token uint32, local, remote Address) error {
	attrs := []netlink.Attribute{
		{Type: mptcph.PMAttrToken, Data: nlenc.Uint32Bytes(token)},
	}
	attrs = append(attrs, attrsFromAddress(local)...)
	attrs = append(attrs, attrsFromAddress(remote)...)

	data, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		return err
	}

	req := genetlink.Message{
		Header: genetlink.Header{
			Command: mptcph.PMCmdSubflowCreate,
			Version: uint8(s.f.Version),
		},
		Data: data,
	}

	_, err = s.c.c.Execute(req, s.f.ID, netlink.HeaderFlagsRequest|netlink.HeaderFlagsAcknowledge)
	return err
}

// SubflowDestroy requests that the kernel tear down the subflow at
// pathIndex on the connection identified by token.
func (s *PMService) SubflowDestroy(token uint32, pathIndex uint8) error {
	attrs := []netlink.Attribute{
		{Type: mptcph.PMAttrToken, Data: nlenc.Uint32Bytes(token)},
		{Type: mptcph.PMAttrPathIndex, Data: []byte{pathIndex}},
	}
	data, err := netlink.MarshalAttributes(attrs)
	if err != nil {
		return err
	}

	req := genetlink.Message{
		Header: genetlink.Header{
			Command: mptcph.PMCmdSubflowDestroy,
			Version: uint8(s.f.Version),
		},
		Data: data,
	}

	_, err = s.c.c.Execute(req, s.f.ID, netlink.HeaderFlagsRequest|netlink.HeaderFlagsAcknowledge)
	return err
}

// parseAddresses decodes a slice of generic netlink messages into
// Addresses, following the same attribute-switch shape as ovsnl's
// parseDatapaths/parseFlows.
func parseAddresses(msgs []genetlink.Message) ([]Address, error) {
	out := make([]Address, 0, len(msgs))

	for _, m := range msgs {
		attrs, err := netlink.UnmarshalAttributes(m.Data)
		if err != nil {
			return nil, err
		}

		var a Address
		var v6 bool

		for _, attr := range attrs {
			switch attr.Type {
			case mptcph.PMAttrToken:
				a.Token = nlenc.Uint32(attr.Data)
			case mptcph.PMAttrAddrID:
				if len(attr.Data) > 0 {
					a.AddrID = attr.Data[0]
				}
			case mptcph.PMAttrFamily:
				if len(attr.Data) > 0 && attr.Data[0] == 6 {
					v6 = true
				}
			case mptcph.PMAttrAddr4:
				a.IP = net.IP(attr.Data).To4()
			case mptcph.PMAttrAddr6:
				a.IP = net.IP(attr.Data).To16()
			case mptcph.PMAttrPort:
				a.Port = nlenc.Uint16(attr.Data)
			case mptcph.PMAttrPathIndex:
				if len(attr.Data) > 0 {
					a.PathIndex = attr.Data[0]
				}
			case mptcph.PMAttrBackup:
				a.Backup = len(attr.Data) > 0 && attr.Data[0] != 0
			}
		}
		a.IsV6 = v6

		out = append(out, a)
	}

	return out, nil
}
