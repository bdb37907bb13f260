package wire

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Handler answers one request. It must not return nil.
type Handler func(ctx context.Context, req *Request) *Response

// Serve reads a stream of msgpack Requests from r and writes one Response
// per request to w, flushing after each so the host can pipeline. It
// returns nil when r is exhausted and ctx.Err() when cancelled.
func Serve(ctx context.Context, r io.Reader, w io.Writer, h Handler) error {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	bw := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(bw)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode request: %w", err)
		}
		resp := h(ctx, &req)
		resp.ID = req.ID
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode response %d: %w", req.ID, err)
		}
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("flush response %d: %w", req.ID, err)
		}
	}
}

// Client is the host side of Serve; tests and tools use it to drive a
// server over a pipe.
type Client struct {
	enc *msgpack.Encoder
	dec *msgpack.Decoder
	id  uint64
}

func NewClient(r io.Reader, w io.Writer) *Client {
	return &Client{enc: msgpack.NewEncoder(w), dec: msgpack.NewDecoder(r)}
}

// Send writes req, assigning the next ID when req.ID is zero.
func (c *Client) Send(req *Request) error {
	if req.ID == 0 {
		c.id++
		req.ID = c.id
	}
	return c.enc.Encode(req)
}

func (c *Client) Receive() (*Response, error) {
	var resp Response
	if err := c.dec.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
