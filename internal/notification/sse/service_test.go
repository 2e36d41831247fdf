package sse

import (
	"sync"
	"testing"

	"github.com/Kento03Onodera/pick-re-crm/platform/logger"
)

func newTestService() *Service {
	return New(logger.New("test"))
}

func TestPublishFansOutToSubscribedTopics(t *testing.T) {
	s := newTestService()

	leads := &client{
		topics: map[string]struct{}{TopicLeads: {}},
		events: make(chan Event, 32),
		done:   make(chan struct{}),
	}
	agents := &client{
		topics: map[string]struct{}{TopicAgents: {}},
		events: make(chan Event, 32),
		done:   make(chan struct{}),
	}
	s.addClient(leads)
	s.addClient(agents)

	s.Publish(Event{Topic: TopicLeads, Type: "lead.updated", EntityID: "abc"})

	select {
	case event := <-leads.events:
		if event.Type != "lead.updated" || event.EntityID != "abc" {
			t.Errorf("unexpected event: %+v", event)
		}
		if event.Timestamp.IsZero() {
			t.Error("timestamp not set on publish")
		}
	default:
		t.Fatal("subscribed client received nothing")
	}

	select {
	case event := <-agents.events:
		t.Errorf("unsubscribed client received %+v", event)
	default:
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	s := newTestService()

	slow := &client{
		topics: map[string]struct{}{TopicLeads: {}},
		events: make(chan Event, 1),
		done:   make(chan struct{}),
	}
	s.addClient(slow)

	s.Publish(Event{Topic: TopicLeads, Type: "lead.created"})
	s.Publish(Event{Topic: TopicLeads, Type: "lead.created"})

	if got := len(slow.events); got != 1 {
		t.Errorf("buffered events = %d, want 1", got)
	}
}

func TestPublishDuringDisconnectDoesNotPanic(t *testing.T) {
	s := newTestService()

	const rounds = 200
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		cl := &client{
			topics: map[string]struct{}{TopicLeads: {}},
			events: make(chan Event, 1),
			done:   make(chan struct{}),
		}
		s.addClient(cl)

		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Publish(Event{Topic: TopicLeads, Type: "lead.updated"})
		}()
		go func(c *client) {
			defer wg.Done()
			s.removeClient(c)
		}(cl)
	}
	wg.Wait()

	if got := len(s.clients); got != 0 {
		t.Errorf("clients left registered = %d, want 0", got)
	}
}

func TestRemoveClientTwice(t *testing.T) {
	s := newTestService()

	cl := &client{
		topics: map[string]struct{}{TopicLeads: {}},
		events: make(chan Event, 1),
		done:   make(chan struct{}),
	}
	s.addClient(cl)
	s.removeClient(cl)
	s.removeClient(cl)

	select {
	case <-cl.done:
	default:
		t.Error("done not closed after remove")
	}
}

func TestParseTopics(t *testing.T) {
	all := parseTopics("")
	if len(all) != len(collectionTopics) {
		t.Fatalf("default topics = %d, want %d", len(all), len(collectionTopics))
	}

	some := parseTopics(" leads , lead/42 ,")
	if len(some) != 2 {
		t.Fatalf("parsed topics = %d, want 2", len(some))
	}
	if _, ok := some[TopicLeads]; !ok {
		t.Error("missing leads topic")
	}
	if _, ok := some[LeadTopic("42")]; !ok {
		t.Error("missing lead document topic")
	}
}
