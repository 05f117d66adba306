package mpnl

import (
	"fmt"

	"github.com/mdlayher/genetlink"
	"github.com/mptcp-tools/go-mptcp/internal/mptcph"
)

// A Client is a generic-netlink client bound to the "mptcp_pm"
// family.
type Client struct {
	PM *PMService

	c *genetlink.Conn
	f genetlink.Family
}

// New dials the generic-netlink socket and resolves the mptcp_pm
// family, returning an error if the running kernel does not advertise
// it.
func New() (*Client, error) {
	conn, err := genetlink.Dial(nil)
	if err != nil {
		return nil, err
	}
	return newClient(conn)
}

func newClient(conn *genetlink.Conn) (*Client, error) {
	families, err := conn.ListFamilies()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	client := &Client{c: conn}
	if err := client.init(families); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return client, nil
}

func (c *Client) init(families []genetlink.Family) error {
	for _, f := range families {
		if f.Name != mptcph.PMGenlFamily {
			continue
		}
		c.f = f
		c.PM = &PMService{c: c, f: f}
		return nil
	}
	return fmt.Errorf("mpnl: generic netlink family %q not found", mptcph.PMGenlFamily)
}

// Close closes the underlying generic-netlink connection.
func (c *Client) Close() error {
	return c.c.Close()
}
