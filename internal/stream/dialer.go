package stream

import (
	"context"
	"donosync/internal/stream/interfaces"
	"donosync/internal/structures"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

type WebsocketDialer struct {
	dialer    *websocket.Dialer
	readLimit int64
}

func NewWebsocketDialer(conf *structures.Config) interfaces.DialerInterface {
	return &WebsocketDialer{
		dialer: &websocket.Dialer{
			Proxy:             http.ProxyFromEnvironment,
			HandshakeTimeout:  conf.Stream.DialTimeout,
			EnableCompression: conf.Stream.Compression,
		},
		readLimit: conf.Stream.MaxFrameSize,
	}
}

func (d *WebsocketDialer) Dial(ctx context.Context, address string) (interfaces.Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, address, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("handshake failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, err
	}
	if d.readLimit > 0 {
		conn.SetReadLimit(d.readLimit)
	}
	return conn, nil
}
