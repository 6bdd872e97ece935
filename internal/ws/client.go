package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/auth"
)

const (
	writeTimeout         = 10 * time.Second
	wsReadLimit          = 4096
	clientSendBuffer     = 256
	tokenRecheckInterval = time.Minute
	pingInterval         = 30 * time.Second
	pingTimeout          = 10 * time.Second
	maxMissedPongs       = int32(2)
)

// TokenValidator re-checks the token a connection was opened with.
type TokenValidator interface {
	Parse(token string) (*auth.Claims, error)
}

// Client wraps a single WebSocket connection managed by the Hub. The
// connection lives only as long as its token: it is closed once the token
// expires or stops validating.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	log       *logrus.Logger
	TenantID  string
	token     string
	expiresAt time.Time
	validator TokenValidator
	closeOnce sync.Once
}

// NewClient creates a Client for conn authenticated by token and claims.
func NewClient(hub *Hub, conn *websocket.Conn, validator TokenValidator, token string, claims *auth.Claims) *Client {
	c := &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, clientSendBuffer),
		log:       hub.log,
		TenantID:  claims.TenantID,
		token:     token,
		validator: validator,
	}

	if claims.ExpiresAt != nil {
		c.expiresAt = claims.ExpiresAt.Time
	}

	return c
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// trySend queues msg without blocking. It reports false when the buffer is full.
func (c *Client) trySend(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// ReadPump reads client messages until the connection closes.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.CloseNow() //nolint:errcheck // best-effort close on teardown
	}()

	c.conn.SetReadLimit(wsReadLimit)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				c.log.WithField("status", status).Debug("client disconnected")
			}

			return
		}

		c.handleMessage(data)
	}
}

// handleMessage answers a subscribe request with a replay, or with a reset
// when the missed events are gone.
func (c *Client) handleMessage(data []byte) {
	var msg SubscribeMsg
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "subscribe" {
		return
	}

	if c.hub.replay(c, msg.LastEventID) {
		return
	}

	reset, err := json.Marshal(ResetMsg{
		Type:   "reset",
		Reason: "requested events no longer available, perform full refresh",
	})
	if err == nil {
		c.trySend(reset)
	}
}

// WritePump writes queued messages, pings the peer and re-validates the token.
func (c *Client) WritePump(ctx context.Context) {
	defer c.conn.CloseNow() //nolint:errcheck // best-effort close on teardown

	var expiry <-chan time.Time
	if !c.expiresAt.IsZero() {
		timer := time.NewTimer(time.Until(c.expiresAt))
		defer timer.Stop()
		expiry = timer.C
	}

	recheck := time.NewTicker(tokenRecheckInterval)
	defer recheck.Stop()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	var missedPongs atomic.Int32

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				c.conn.Close(websocket.StatusGoingAway, "") //nolint:errcheck // best-effort
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()

			if err != nil {
				c.log.WithError(err).Debug("write failed")
				return
			}
		case <-ping.C:
			if c.missedPing(ctx, &missedPongs) {
				return
			}
		case <-recheck.C:
			if !c.tokenValid() {
				return
			}
		case <-expiry:
			c.log.WithField("tenant_id", c.TenantID).Info("closing WebSocket: token expired")
			c.conn.Close(websocket.StatusPolicyViolation, "authentication expired") //nolint:errcheck // best-effort

			return
		}
	}
}

// missedPing pings the peer and reports whether the connection should close.
func (c *Client) missedPing(ctx context.Context, missed *atomic.Int32) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := c.conn.Ping(pingCtx)
	cancel()

	if err == nil {
		missed.Store(0)
		return false
	}

	if missed.Add(1) >= maxMissedPongs {
		c.log.Debug("closing: consecutive missed pongs")
		return true
	}

	return false
}

// tokenValid re-parses the token. A token that no longer validates, or now
// names another tenant, closes the connection.
func (c *Client) tokenValid() bool {
	if c.validator == nil {
		return true
	}

	claims, err := c.validator.Parse(c.token)
	if err == nil && claims.TenantID == c.TenantID {
		return true
	}

	c.log.WithField("tenant_id", c.TenantID).Info("closing WebSocket: token no longer valid")
	c.conn.Close(websocket.StatusPolicyViolation, "authentication expired") //nolint:errcheck // best-effort

	return false
}
