package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/pkg/auth"
	"github.com/epicurean/epicurean/pkg/response"
	"github.com/epicurean/epicurean/pkg/sse"
	"github.com/epicurean/epicurean/pkg/ws"
)

// sseHeartbeat keeps idle SSE connections alive through proxies.
const sseHeartbeat = 15 * time.Second

// StreamController serves the realtime transports: the notification
// WebSocket and the SSE order feed.
type StreamController struct {
	orders *repositories.OrderRepository
	users  *repositories.UserRepository
	hub    *ws.Hub
}

func NewStreamController(orders *repositories.OrderRepository, users *repositories.UserRepository, hub *ws.Hub) *StreamController {
	return &StreamController{orders: orders, users: users, hub: hub}
}

// wsToken pulls the session token from the query string or the
// Authorization header. Browsers cannot set headers on a WebSocket
// upgrade, so ?token= is the usual path.
func wsToken(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// Connect upgrades to a WebSocket on the notification hub, tagged with the
// caller's identity so alerts can be targeted by user or role.
func (c *StreamController) Connect(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ValidateToken(wsToken(r))
	if err != nil {
		response.Unauthorized(w)
		return
	}
	ws.Upgrade(w, r, c.hub, claims.UserID, claims.Role)
}

// OrderFeed streams scoped order snapshots over SSE: every order for
// admins, the caller's own otherwise. Each feed delivery becomes one
// "orders" event.
func (c *StreamController) OrderFeed(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}

	scope := repositories.FeedScope{CustomerID: actor.UserID}
	if actor.IsAdmin() {
		scope.CustomerID = 0
	}

	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	feed := c.orders.Subscribe(r.Context(), scope)
	defer feed.Stop()

	heartbeat := time.NewTicker(sseHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			stream.Comment("ping")
		case orders, open := <-feed.C:
			if !open {
				return
			}
			if err := stream.Send("orders", orders); err != nil {
				return
			}
		}
		if stream.IsClosed() {
			return
		}
	}
}
