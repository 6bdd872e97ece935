// Package ws pushes per-tenant change events to console clients over WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/metrics"
)

// Hub channel buffer sizes.
const (
	broadcastBuffer = 256
	registerBuffer  = 64
)

// Limits bounds the hub's connections.
type Limits struct {
	MaxClients   int
	MaxPerTenant int
	MaxPayload   int
}

// DefaultLimits are used for zero Limits fields.
var DefaultLimits = Limits{MaxClients: 1000, MaxPerTenant: 50, MaxPayload: 16 << 10}

type tenantBroadcast struct {
	tenantID string
	msg      []byte
}

// Hub tracks connected clients and fans events out to those of the event's
// tenant. All client map mutations happen in the Run goroutine.
type Hub struct {
	clients     map[*Client]struct{}
	tenantCount map[string]int
	register    chan *Client
	unregister  chan *Client
	broadcast   chan tenantBroadcast
	shutdown    chan struct{}
	done        chan struct{}
	count       atomic.Int64
	limits      Limits
	events      *EventLog
	log         *logrus.Logger
}

// NewHub creates a Hub. Zero fields of limits take DefaultLimits values.
func NewHub(log *logrus.Logger, limits Limits) *Hub {
	if limits.MaxClients <= 0 {
		limits.MaxClients = DefaultLimits.MaxClients
	}

	if limits.MaxPerTenant <= 0 {
		limits.MaxPerTenant = DefaultLimits.MaxPerTenant
	}

	if limits.MaxPayload <= 0 {
		limits.MaxPayload = DefaultLimits.MaxPayload
	}

	return &Hub{
		clients:     make(map[*Client]struct{}),
		tenantCount: make(map[string]int),
		register:    make(chan *Client, registerBuffer),
		unregister:  make(chan *Client, registerBuffer),
		broadcast:   make(chan tenantBroadcast, broadcastBuffer),
		shutdown:    make(chan struct{}),
		done:        make(chan struct{}),
		limits:      limits,
		events:      NewEventLog(defaultLogMaxLen, defaultLogMaxAge),
		log:         log,
	}
}

// drainTimeout is how long the hub waits for clients to flush after shutdown.
const drainTimeout = 3 * time.Second

// Run is the hub event loop. It returns after Shutdown is called or ctx is
// cancelled, once connected clients have been drained.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.drainClients()
			return
		case <-h.shutdown:
			h.drainClients()
			return
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				h.log.WithFields(logrus.Fields{"tenant_id": c.TenantID, "total": len(h.clients)}).Debug("client unregistered")
			}
		case b := <-h.broadcast:
			for c := range h.clients {
				if c.TenantID != b.tenantID {
					continue
				}

				select {
				case c.send <- b.msg:
				default:
					h.log.WithField("tenant_id", c.TenantID).Warn("client send buffer full, disconnecting")
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) add(c *Client) {
	if len(h.clients) >= h.limits.MaxClients {
		h.log.Warn("global connection limit reached, dropping client")
		c.closeSend()

		return
	}

	if h.tenantCount[c.TenantID] >= h.limits.MaxPerTenant {
		h.log.WithField("tenant_id", c.TenantID).Warn("per-tenant connection limit reached, dropping client")
		c.closeSend()

		return
	}

	h.clients[c] = struct{}{}
	h.tenantCount[c.TenantID]++
	h.updateCount()
	h.log.WithFields(logrus.Fields{"tenant_id": c.TenantID, "total": len(h.clients)}).Debug("client registered")
}

func (h *Hub) remove(c *Client) {
	delete(h.clients, c)
	c.closeSend()

	h.tenantCount[c.TenantID]--
	if h.tenantCount[c.TenantID] <= 0 {
		delete(h.tenantCount, c.TenantID)
	}

	h.updateCount()
}

func (h *Hub) updateCount() {
	h.count.Store(int64(len(h.clients)))
	metrics.WSConnections.Set(float64(len(h.clients)))
}

// Publish records a change event for the tenant and broadcasts it to the
// tenant's clients. Events whose encoding exceeds the payload limit are
// recorded with a null data field so replay numbering stays gap-free.
func (h *Hub) Publish(tenantID, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.WithError(err).WithField("type", eventType).Error("failed to encode event payload")
		return
	}

	if len(data) > h.limits.MaxPayload {
		h.log.WithFields(logrus.Fields{
			"tenant_id":    tenantID,
			"type":         eventType,
			"payload_size": len(data),
		}).Warn("event payload too large, sending without data")

		data = json.RawMessage("null")
	}

	evt := h.events.Append(tenantID, eventType, data)

	msg, err := json.Marshal(evt)
	if err != nil {
		h.log.WithError(err).Error("failed to encode event")
		return
	}

	select {
	case h.broadcast <- tenantBroadcast{tenantID: tenantID, msg: msg}:
	default:
		h.log.WithField("tenant_id", tenantID).Warn("broadcast channel full, dropping event")
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	default:
		h.log.Warn("register channel full, dropping client")
		c.closeSend()
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Shutdown drains connected clients and stops Run. It blocks until Run returns.
func (h *Hub) Shutdown() {
	close(h.shutdown)
	<-h.done
}

// drainClients tells every client the server is going away, waits for
// their send buffers to flush, then disconnects them.
func (h *Hub) drainClients() {
	if len(h.clients) > 0 {
		h.log.WithField("clients", len(h.clients)).Info("draining WebSocket clients")

		shutdownMsg := []byte(`{"type":"shutdown","message":"server shutting down"}`)
		for c := range h.clients {
			select {
			case c.send <- shutdownMsg:
			default:
			}
		}

		h.waitFlushed(drainTimeout)
	}

	for c := range h.clients {
		h.remove(c)
	}
}

func (h *Hub) waitFlushed(timeout time.Duration) {
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		pending := false
		for c := range h.clients {
			if len(c.send) > 0 {
				pending = true
				break
			}
		}

		if !pending {
			return
		}

		select {
		case <-deadline:
			h.log.Warn("WebSocket drain timeout, closing remaining clients")
			return
		case <-ticker.C:
		}
	}
}

// replay queues the events the client missed since lastEventID. It returns
// false when the gap can no longer be filled.
func (h *Hub) replay(c *Client, lastEventID uint64) bool {
	events, ok := h.events.Since(c.TenantID, lastEventID)
	if !ok {
		return false
	}

	for _, evt := range events {
		msg, err := json.Marshal(evt)
		if err != nil {
			continue
		}

		if !c.trySend(msg) {
			break
		}
	}

	return true
}
