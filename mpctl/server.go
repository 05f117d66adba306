package mpctl

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/mptcp-tools/go-mptcp/mpctl/internal/jsonrpc"
)

// A Provider answers the queries mpctl's RPC methods need, decoupling
// the server from any one concrete MCB registry so tests can supply a
// fake.
type Provider interface {
	ListConnections() []ConnSummary
	DescribeConnection(token uint32) (ConnDetail, bool)
}

// A Server serves mpctl's RPC methods over accepted connections.
type Server struct {
	p  Provider
	ll *log.Logger
}

// NewServer constructs a Server backed by p.
func NewServer(p Provider) *Server {
	return &Server{p: p}
}

// SetLogger enables wire-level debug logging for every connection the
// Server serves from this point on.
func (s *Server) SetLogger(ll *log.Logger) {
	s.ll = ll
}

// Serve accepts connections from l until it returns an error (for
// example because l was closed), serving each on its own goroutine.
func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return err
		}
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()
	c := jsonrpc.NewConn(conn, s.ll)

	for {
		req, err := c.ReceiveRequest()
		if err != nil {
			if err != io.EOF {
				if s.ll != nil {
					s.ll.Printf("mpctl: receive request: %v", err)
				}
			}
			return
		}

		res := s.handle(req)
		if err := c.SendResponse(res); err != nil {
			if s.ll != nil {
				s.ll.Printf("mpctl: send response: %v", err)
			}
			return
		}
	}
}

func (s *Server) handle(req *jsonrpc.Request) jsonrpc.Response {
	res := jsonrpc.Response{ID: req.ID}

	switch req.Method {
	case "list_connections":
		data, err := json.Marshal(s.p.ListConnections())
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Result = data

	case "describe_connection":
		token, ok := firstUint32Param(req.Params)
		if !ok {
			res.Error = "describe_connection: expected a single token parameter"
			return res
		}
		detail, found := s.p.DescribeConnection(token)
		if !found {
			res.Error = fmt.Sprintf("describe_connection: no connection for token %d", token)
			return res
		}
		data, err := json.Marshal(detail)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Result = data

	default:
		res.Error = fmt.Sprintf("unknown method %q", req.Method)
	}

	return res
}

// firstUint32Param extracts the first element of an RPC params slice
// as a uint32, tolerating the float64 numeric type json.Unmarshal
// produces for interface{}-typed params.
func firstUint32Param(params interface{}) (uint32, bool) {
	slice, ok := params.([]interface{})
	if !ok || len(slice) == 0 {
		return 0, false
	}
	f, ok := slice[0].(float64)
	if !ok {
		return 0, false
	}
	return uint32(f), true
}
