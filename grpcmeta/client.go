// Package grpcmeta serves the metadata decoder over gRPC and provides a
// matching client.
package grpcmeta

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/solcmeta/metadata"
	"xdao.co/solcmeta/model"
)

var errClosed = errors.New("grpcmeta: client not connected")

// Client decodes bytecode through a Metadata gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client MetadataClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout is copied to Client.Timeout.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

// Dial creates a client for target. The connection is established lazily
// on the first RPC.
func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	cc, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewMetadataClient(cc), Timeout: opts.Timeout}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// DecodeView returns the server's JSON view of the decoded trailer.
func (c *Client) DecodeView(code []byte) (model.Metadata, error) {
	if c == nil || c.client == nil {
		return model.Metadata{}, errClosed
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Decode(ctx, wrapperspb.Bytes(code))
	if err != nil {
		return model.Metadata{}, mapRPC(err)
	}
	return fromStruct(reply)
}

// Decode has the same contract as metadata.Decode (under the server's
// compliance mode).
func (c *Client) Decode(code []byte) (metadata.Metadata, error) {
	view, err := c.DecodeView(code)
	if err != nil {
		return metadata.Metadata{}, err
	}
	return view.ToMetadata()
}

// Digest returns the canonical digest URI, or "" when the trailer has none.
func (c *Client) Digest(code []byte) (string, error) {
	if c == nil || c.client == nil {
		return "", errClosed
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Digest(ctx, wrapperspb.Bytes(code))
	if err != nil {
		return "", mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
