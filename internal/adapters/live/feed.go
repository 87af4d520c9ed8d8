// Package live implements the WebSocket feed announcing record changes.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.trai.ch/courseware/internal/build"
	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// Time allowed to write the close frame.
	writeWait = 5 * time.Second

	// Maximum message size accepted from the server.
	maxMessageSize = 512 * 1024

	handshakeTimeout = 10 * time.Second
)

var _ ports.LiveFeed = (*Feed)(nil)

// Feed implements ports.LiveFeed over a single gorilla/websocket connection.
// It does not reconnect: once Done is closed, call Connect again to resume.
type Feed struct {
	url    string
	tokens ports.TokenStore
	logger ports.Logger
	dialer *websocket.Dialer

	mu      sync.Mutex
	conn    *websocket.Conn
	done    chan struct{}
	closing bool
}

// New creates a Feed for the endpoint at rawURL.
func New(rawURL string, tokens ports.TokenStore, logger ports.Logger) *Feed {
	return &Feed{
		url:    rawURL,
		tokens: tokens,
		logger: logger,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		done: closedChan(),
	}
}

// Connect dials the feed and dispatches messages from a background goroutine
// until the connection drops, ctx is done or Close is called.
func (f *Feed) Connect(ctx context.Context, handlers ports.LiveHandlers) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn != nil {
		return nil
	}

	target, err := f.endpoint()
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("User-Agent", build.UserAgent())

	conn, resp, err := f.dialer.DialContext(ctx, target, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrLiveConnectFailed.Error()), "url", f.url)
		if resp != nil {
			err = zerr.With(err, "status_code", resp.StatusCode)
		}
		return err
	}

	conn.SetReadLimit(maxMessageSize)

	done := make(chan struct{})
	f.conn = conn
	f.done = done
	f.closing = false

	stop := context.AfterFunc(ctx, func() { _ = f.Close() })
	go f.readPump(conn, done, stop, handlers)

	return nil
}

// Done is closed when the current connection ends. Without a connection it is already closed.
func (f *Feed) Done() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Connected reports whether a socket is open.
func (f *Feed) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conn != nil
}

// Close sends a close frame, closes the socket and waits for dispatch to stop.
func (f *Feed) Close() error {
	f.mu.Lock()
	conn, done := f.conn, f.done
	f.conn = nil
	f.closing = conn != nil
	f.mu.Unlock()

	if conn == nil {
		return nil
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	err := conn.Close()
	<-done
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func (f *Feed) readPump(conn *websocket.Conn, done chan struct{}, stop func() bool, handlers ports.LiveHandlers) {
	defer func() {
		stop()
		_ = conn.Close()

		f.mu.Lock()
		if f.conn == conn {
			f.conn = nil
		}
		f.mu.Unlock()
		close(done)
	}()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			f.mu.Lock()
			closing := f.closing
			f.mu.Unlock()
			if !closing && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				f.logger.Warn(fmt.Sprintf("live updates disconnected: %v", err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		f.dispatch(message, handlers)
	}
}

func (f *Feed) dispatch(raw []byte, handlers ports.LiveHandlers) {
	var msg domain.LiveMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		f.logger.Warn(zerr.Wrap(err, domain.ErrLiveMessageInvalid.Error()).Error())
		return
	}

	update := domain.LiveUpdate{
		Kind:     msg.Kind(),
		Resource: msg.Target(),
		Data:     msg.Data,
	}

	var handler func(domain.LiveUpdate)
	switch update.Kind {
	case domain.UpdateCreated:
		handler = handlers.OnCreated
	case domain.UpdateUpdated:
		handler = handlers.OnUpdated
	case domain.UpdateDeleted:
		handler = handlers.OnDeleted
	case domain.UpdateUnknown:
	}
	if handler != nil {
		handler(update)
	}
}

// endpoint appends the stored token as the "token" query parameter.
func (f *Feed) endpoint() (string, error) {
	u, err := url.Parse(f.url)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrLiveConnectFailed.Error()), "url", f.url)
	}
	if token, ok := f.tokens.Token(); ok {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
