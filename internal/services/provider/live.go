package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"PropSight/internal/domain/models"
	drepo "PropSight/internal/domain/repository"
	xhttp "PropSight/pkg/http"
)

// LiveFeed implements ListingFeed backed by a provider WebSocket stream with
// an HTTP backfill of the current market inventory on subscribe.
type LiveFeed struct {
	apiKey         string
	baseURL        string
	websocketURL   string
	markets        []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	http      *xhttp.Client
	conn      *websocket.Conn
	backlog   []*models.Listing
	connected bool
}

// NewLiveFeed creates a live provider feed.
func NewLiveFeed(apiKey, baseURL, websocketURL string, markets []string, reconnectDelay, pingInterval time.Duration) drepo.ListingFeed {
	if reconnectDelay <= 0 {
		reconnectDelay = 3 * time.Second
	}
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &LiveFeed{
		apiKey:         apiKey,
		baseURL:        baseURL,
		websocketURL:   websocketURL,
		markets:        markets,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		http:           xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
	}
}

// Connect establishes the WebSocket connection.
func (c *LiveFeed) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("provider connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("provider: connected")
	return nil
}

// Subscribe subscribes to configured markets and backfills current inventory
// over HTTP so the pipeline starts from a full picture instead of waiting for
// updates to trickle in.
func (c *LiveFeed) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("provider not connected")
	}
	for _, m := range c.markets {
		msg := map[string]string{"type": "subscribe", "city": m}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", m, err)
		}
		log.Printf("provider: subscribed %s", m)
	}

	c.backlog = c.backlog[:0]
	for _, m := range c.markets {
		page, err := c.fetchInventory(ctx, m)
		if err != nil {
			// backfill is best-effort; the stream still delivers updates
			log.Printf("provider: backfill %s failed: %v", m, err)
			continue
		}
		c.backlog = append(c.backlog, page...)
	}
	return nil
}

func (c *LiveFeed) fetchInventory(ctx context.Context, city string) ([]*models.Listing, error) {
	if c.baseURL == "" {
		return nil, nil
	}
	var resp struct {
		Listings []*models.Listing `json:"listings"`
	}
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/v1/listings",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		QueryParams: map[string][]string{"city": {city}},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Listings, nil
}

type wsMessage struct {
	Type string            `json:"type"`
	Data []*models.Listing `json:"data"`
}

// Read streams listing events and errors.
func (c *LiveFeed) Read(ctx context.Context) (<-chan *models.Listing, <-chan error) {
	listings := make(chan *models.Listing, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(listings)
		defer close(errs)

		// drain backfilled inventory first
		for _, l := range c.backlog {
			select {
			case <-ctx.Done():
				return
			case listings <- l:
			}
		}
		c.backlog = nil

		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("provider conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("provider read: %w", err)
					return
				}
				var m wsMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-listing frames
					continue
				}
				if m.Type != "listing" {
					continue
				}
				for _, l := range m.Data {
					if l == nil {
						continue
					}
					select {
					case listings <- l:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return listings, errs
}

// Reconnect closes and reconnects.
func (c *LiveFeed) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *LiveFeed) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *LiveFeed) IsConnected() bool { return c.connected }
