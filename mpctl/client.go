package mpctl

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"strconv"
	"sync/atomic"

	"github.com/mptcp-tools/go-mptcp/mpctl/internal/jsonrpc"
)

// A Client is an mpctl debug client.
type Client struct {
	c    *jsonrpc.Conn
	ll   *log.Logger
	next uint64
}

// An OptionFunc configures a Client.
type OptionFunc func(c *Client) error

// Debug enables wire-level debug logging for a Client.
func Debug(ll *log.Logger) OptionFunc {
	return func(c *Client) error {
		c.ll = ll
		return nil
	}
}

// Dial dials addr (typically a Unix socket path) and returns a
// Client.
func Dial(network, addr string, options ...OptionFunc) (*Client, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, err
	}
	return New(conn, options...)
}

// New wraps an existing connection to an mpctl server.
func New(conn net.Conn, options ...OptionFunc) (*Client, error) {
	c := &Client{}
	for _, o := range options {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	c.c = jsonrpc.NewConn(conn, c.ll)
	return c, nil
}

// Close closes the Client's connection.
func (c *Client) Close() error {
	return c.c.Close()
}

// ListConnections returns a summary of every MCB the server currently
// tracks.
func (c *Client) ListConnections() ([]ConnSummary, error) {
	var out []ConnSummary
	if err := c.rpc("list_connections", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DescribeConnection returns the detailed subflow/sequence state for
// the MCB identified by token.
func (c *Client) DescribeConnection(token uint32) (*ConnDetail, error) {
	var out ConnDetail
	if err := c.rpc("describe_connection", &out, token); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) rpc(method string, out interface{}, args ...interface{}) error {
	id := strconv.FormatUint(atomic.AddUint64(&c.next, 1), 10)

	req := jsonrpc.Request{
		ID:     id,
		Method: method,
		Params: args,
	}
	if err := c.c.SendRequest(req); err != nil {
		return err
	}

	res, err := c.c.ReceiveResponse()
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	if out == nil || len(res.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Result, out); err != nil {
		return fmt.Errorf("mpctl: decode %s result: %w", method, err)
	}
	return nil
}
