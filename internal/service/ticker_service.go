package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/placement-cell/placetrack-api/internal/dto"
	"github.com/placement-cell/placetrack-api/internal/models"
)

const (
	tickerListKey       = "ticker:entries:v1"
	tickerChannel       = "ticker:events"
	tickerSendBuffer    = 16
	tickerPingInterval  = 30 * time.Second
	tickerRetentionDays = 14
)

// ErrTickerEntryNotFound indicates the headline does not exist.
var ErrTickerEntryNotFound = errors.New("ticker entry not found")

// TickerService keeps the scrolling headline feed. Entries live in Redis, new
// ones are pushed to connected websocket clients and fanned across nodes via
// pub/sub.
type TickerService interface {
	List(ctx context.Context) ([]dto.TickerEntry, error)
	Publish(ctx context.Context, req dto.TickerCreateRequest) (dto.TickerEntry, error)
	Delete(ctx context.Context, id string) error
	ServeConnection(conn *websocket.Conn)
	Start(ctx context.Context)
}

type tickerService struct {
	redis      *redis.Client
	maxEntries int
	validator  *validator.Validate
	logger     zerolog.Logger
	hub        *tickerHub
	nodeID     string
}

type tickerHub struct {
	mu      sync.RWMutex
	clients map[*tickerClient]struct{}
	log     zerolog.Logger
}

type tickerClient struct {
	conn    *websocket.Conn
	send    chan dto.TickerEntry
	service *tickerService
	closed  chan struct{}
	once    sync.Once
}

type tickerEvent struct {
	Source string          `json:"source"`
	Entry  dto.TickerEntry `json:"entry"`
	SentAt time.Time       `json:"sent_at"`
}

// NewTickerService constructs the ticker service.
func NewTickerService(redisClient *redis.Client, maxEntries int, validate *validator.Validate, logger zerolog.Logger) TickerService {
	if maxEntries <= 0 {
		maxEntries = 20
	}
	return &tickerService{
		redis:      redisClient,
		maxEntries: maxEntries,
		validator:  validate,
		logger:     logger.With().Str("component", "ticker_service").Logger(),
		hub: &tickerHub{
			clients: make(map[*tickerClient]struct{}),
			log:     logger.With().Str("component", "ticker_hub").Logger(),
		},
		nodeID: uuid.NewString(),
	}
}

func (s *tickerService) Start(ctx context.Context) {
	if s.redis != nil {
		go s.consume(ctx)
	}
}

// List returns entries newest first, capped at the configured maximum.
func (s *tickerService) List(ctx context.Context) ([]dto.TickerEntry, error) {
	if s.redis == nil {
		return []dto.TickerEntry{}, nil
	}

	raw, err := s.redis.LRange(ctx, tickerListKey, 0, int64(s.maxEntries-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]dto.TickerEntry, 0, len(raw))
	for _, payload := range raw {
		var entry dto.TickerEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			s.logger.Warn().Err(err).Msg("skipping corrupt ticker entry")
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *tickerService) Publish(ctx context.Context, req dto.TickerCreateRequest) (dto.TickerEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TickerEntry{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	entry := dto.TickerEntry{
		ID:        uuid.NewString(),
		Text:      req.Text,
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}

	if s.redis != nil {
		payload, err := json.Marshal(entry)
		if err != nil {
			return dto.TickerEntry{}, err
		}

		pipe := s.redis.TxPipeline()
		pipe.LPush(ctx, tickerListKey, payload)
		pipe.LTrim(ctx, tickerListKey, 0, int64(s.maxEntries-1))
		pipe.Expire(ctx, tickerListKey, tickerRetentionDays*24*time.Hour)
		if _, err := pipe.Exec(ctx); err != nil {
			return dto.TickerEntry{}, err
		}

		event := tickerEvent{Source: s.nodeID, Entry: entry, SentAt: time.Now().UTC()}
		if eventPayload, err := json.Marshal(event); err == nil {
			if err := s.redis.Publish(ctx, tickerChannel, eventPayload).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to publish ticker event")
			}
		}
	}

	s.hub.broadcast(entry)
	s.logger.Info().Str("entry_id", entry.ID).Str("priority", entry.Priority).Msg("ticker entry published")

	return entry, nil
}

// Delete rewrites the stored list without the named entry.
func (s *tickerService) Delete(ctx context.Context, id string) error {
	if s.redis == nil {
		return ErrTickerEntryNotFound
	}

	raw, err := s.redis.LRange(ctx, tickerListKey, 0, -1).Result()
	if err != nil {
		return err
	}

	kept := make([]interface{}, 0, len(raw))
	found := false
	for _, payload := range raw {
		var entry dto.TickerEntry
		if err := json.Unmarshal([]byte(payload), &entry); err == nil && entry.ID == id {
			found = true
			continue
		}
		kept = append(kept, payload)
	}

	if !found {
		return ErrTickerEntryNotFound
	}

	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, tickerListKey)
	if len(kept) > 0 {
		pipe.RPush(ctx, tickerListKey, kept...)
		pipe.Expire(ctx, tickerListKey, tickerRetentionDays*24*time.Hour)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	return nil
}

func (s *tickerService) ServeConnection(conn *websocket.Conn) {
	client := &tickerClient{
		conn:    conn,
		send:    make(chan dto.TickerEntry, tickerSendBuffer),
		service: s,
		closed:  make(chan struct{}),
	}

	s.hub.register(client)

	go client.writer()
	client.reader()
}

func (s *tickerService) consume(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, tickerChannel)
	defer func() {
		_ = pubsub.Close()
	}()
	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("ticker redis subscription closed")
			return
		}

		var event tickerEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			s.logger.Warn().Err(err).Msg("invalid ticker event")
			continue
		}
		if event.Source == s.nodeID {
			continue
		}
		s.hub.broadcast(event.Entry)
	}
}

func (h *tickerHub) register(client *tickerClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	h.log.Debug().Int("clients", len(h.clients)).Msg("ticker client connected")
}

func (h *tickerHub) unregister(client *tickerClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
	h.log.Debug().Int("clients", len(h.clients)).Msg("ticker client disconnected")
}

func (h *tickerHub) broadcast(entry dto.TickerEntry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- entry:
		default:
			h.log.Warn().Msg("dropping ticker entry for slow client")
		}
	}
}

// reader drains the connection so control frames are processed; the ticker
// feed is one-directional and inbound payloads are discarded.
func (c *tickerClient) reader() {
	defer c.close()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.service.logger.Debug().Err(err).Msg("ticker read loop ended")
			return
		}
	}
}

func (c *tickerClient) writer() {
	defer c.close()

	for {
		select {
		case entry, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(entry); err != nil {
				c.service.logger.Debug().Err(err).Msg("ticker write loop terminated")
				return
			}
		case <-time.After(tickerPingInterval):
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				c.service.logger.Debug().Err(err).Msg("ticker ping failed")
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *tickerClient) close() {
	c.once.Do(func() {
		close(c.closed)
		c.service.hub.unregister(c)
		_ = c.conn.Close()
	})
}
