package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Start requests the daemon to start watching.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("Siro.Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop watching.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Siro.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Siro.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScanNow asks the daemon to run a scan cycle immediately.
func (c *Client) ScanNow() (*ScanNowResponse, error) {
	var resp ScanNowResponse
	if err := c.client.Call("Siro.ScanNow", ScanNowRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StateList retrieves every deduplication record.
func (c *Client) StateList() (*StateListResponse, error) {
	var resp StateListResponse
	if err := c.client.Call("Siro.StateList", StateListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StateReset clears deduplication records. Empty kinds clears all.
func (c *Client) StateReset(kinds []string) (*StateResetResponse, error) {
	var resp StateResetResponse
	if err := c.client.Call("Siro.StateReset", StateResetRequest{Kinds: kinds}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Siro.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
