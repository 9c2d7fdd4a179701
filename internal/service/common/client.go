//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/oshokin/almanac/internal/api/grpc/almanac"
	"github.com/oshokin/almanac/internal/codec"
	"github.com/oshokin/almanac/internal/config"
	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/table"
)

// Client wraps the AlmanacService gRPC client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the almanac server.
	conn *grpc.ClientConn
	// api is the AlmanacService client stub.
	api api.AlmanacServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// withStub replaces the client stub, used by tests.
func withStub(stub api.AlmanacServiceClient) Option {
	return func(c *Client) {
		c.api = stub
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial establishes a gRPC connection to the almanac server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial almanac server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewAlmanacServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// ComputeEvent asks the server for one event. It also returns the name of
// the provider that answered.
func (c *Client) ComputeEvent(ctx context.Context, q solar.Query) (solar.Result, string, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.ComputeEvent(callCtx, codec.QueryToStruct(q))
	if err != nil {
		return solar.Result{}, "", fmt.Errorf("compute event: %w", err)
	}

	result, err := codec.ResultFromStruct(response)
	if err != nil {
		return solar.Result{}, "", fmt.Errorf("decode event: %w", err)
	}

	return result, response.GetFields()[codec.FieldProvider].GetStringValue(), nil
}

// ComputeDay asks the server for both events of q.Date.
func (c *Client) ComputeDay(ctx context.Context, q solar.Query) (table.Row, string, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.ComputeDay(callCtx, codec.QueryToStruct(q))
	if err != nil {
		return table.Row{}, "", fmt.Errorf("compute day: %w", err)
	}

	row, err := codec.RowFromStruct(response)
	if err != nil {
		return table.Row{}, "", fmt.Errorf("decode day: %w", err)
	}

	return row, response.GetFields()[codec.FieldProvider].GetStringValue(), nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
