package handler

import (
	"net/http"
	"time"

	"flower-storefront/internal/store"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	cartPingInterval = 30 * time.Second
	cartWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type cartEvent struct {
	Type string `json:"type"`
	Cart any    `json:"cart,omitempty"`
}

// CartFeed pushes every cart snapshot to connected clients. A client that
// falls behind only gets the latest snapshot.
type CartFeed struct {
	cart *store.CartStore
}

func NewCartFeed(cart *store.CartStore) *CartFeed {
	return &CartFeed{cart: cart}
}

func (h *CartFeed) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		c.Logger().Warnf("cart websocket upgrade: %v", err)
		return nil
	}
	defer conn.Close()

	updates, cancel := h.cart.Subscribe()
	defer cancel()

	// The client never sends anything we use; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, cartEvent{Type: "connected"}); err != nil {
		return nil
	}

	ticker := time.NewTicker(cartPingInterval)
	defer ticker.Stop()
	for {
		select {
		case cart, ok := <-updates:
			if !ok {
				return nil
			}
			if err := h.write(conn, cartEvent{Type: "cart_updated", Cart: cartView(cart)}); err != nil {
				c.Logger().Debugf("cart websocket write: %v", err)
				return nil
			}
		case <-ticker.C:
			deadline := time.Now().Add(cartWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return nil
			}
		case <-closed:
			return nil
		case <-c.Request().Context().Done():
			return nil
		}
	}
}

func (h *CartFeed) write(conn *websocket.Conn, ev cartEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(cartWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}
