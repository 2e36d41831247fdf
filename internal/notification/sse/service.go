// Package sse provides the Server-Sent Events hub behind the continuous
// subscription model: clients subscribe to topics and re-fetch the full
// snapshot whenever a change notification arrives.
package sse

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/platform/logger"

	"github.com/gin-gonic/gin"
)

// Collection-level topics. Document-level topics are "lead/{id}" and
// "property/{id}".
const (
	TopicLeads          = "leads"
	TopicProperties     = "properties"
	TopicStatusSettings = "settings.statuses"
	TopicTargetSettings = "settings.targets"
	TopicAgents         = "agents"
)

var collectionTopics = []string{
	TopicLeads, TopicProperties, TopicStatusSettings, TopicTargetSettings, TopicAgents,
}

// LeadTopic is the per-document topic for one lead.
func LeadTopic(id string) string { return "lead/" + id }

// PropertyTopic is the per-document topic for one property.
func PropertyTopic(id string) string { return "property/" + id }

// Event is one change notification. It carries the entity id, never the
// entity itself; subscribers re-fetch the snapshot.
type Event struct {
	Topic     string    `json:"topic"`
	Type      string    `json:"type"`
	EntityID  string    `json:"entityId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// client signals shutdown through done instead of closing events: a
// Publish racing a disconnect may still send into the buffer, which is
// harmless on an open channel and a panic on a closed one.
type client struct {
	topics map[string]struct{}
	events chan Event
	done   chan struct{}
}

// Service manages SSE connections and topic fan-out.
type Service struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	log     *logger.Logger
}

func New(log *logger.Logger) *Service {
	return &Service{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.done)
	}
}

// Publish fans the event out to every subscriber of its topic. Slow
// clients drop events; they resynchronize on their next snapshot fetch.
func (s *Service) Publish(event Event) {
	event.Timestamp = time.Now()

	s.mu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		if _, ok := c.topics[event.Topic]; ok {
			targets = append(targets, c)
		}
	}
	s.mu.Unlock()

	for _, c := range targets {
		select {
		case c.events <- event:
		default:
			s.log.Warn("sse event buffer full, dropping", "topic", event.Topic)
		}
	}
}

// Handler returns the gin handler for the SSE endpoint. Topics come from
// the ?topics= query parameter (comma-separated); absent means every
// collection topic.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		topics := parseTopics(c.Query("topics"))

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{
			topics: topics,
			events: make(chan Event, 32),
			done:   make(chan struct{}),
		}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"topics": topicList(topics)})
		c.Writer.Flush()

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				return
			case <-cl.done:
				return
			case event := <-cl.events:
				data, _ := json.Marshal(event)
				c.SSEvent(event.Type, string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close disconnects every client.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		close(c.done)
	}
	s.clients = make(map[*client]struct{})
}

func parseTopics(raw string) map[string]struct{} {
	topics := make(map[string]struct{})
	if strings.TrimSpace(raw) == "" {
		for _, t := range collectionTopics {
			topics[t] = struct{}{}
		}
		return topics
	}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics[t] = struct{}{}
		}
	}
	return topics
}

func topicList(topics map[string]struct{}) []string {
	out := make([]string, 0, len(topics))
	for t := range topics {
		out = append(out, t)
	}
	return out
}
