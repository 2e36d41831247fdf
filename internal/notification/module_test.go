package notification

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	"github.com/Kento03Onodera/pick-re-crm/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Opens a real SSE stream and checks that bus events reach it with the
// expected topic routing.
func TestModuleForwardsLeadEventsToStream(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.New("test")

	m := NewModule(log)
	defer m.Close()
	bus := events.NewInMemoryBus(log)
	m.RegisterHandlers(bus)

	router := gin.New()
	router.GET("/events", m.sse.Handler())
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?topics=leads", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	waitForEvent(t, reader, "connected")

	leadID := uuid.New()
	if err := bus.PublishSync(context.Background(), events.LeadSearchRequested{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Frequency: "1week",
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	waitForEvent(t, reader, events.LeadSearchRequested{}.EventName())

	if err := bus.PublishSync(context.Background(), events.LeadReassigned{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Dimension: "status",
		From:      "New",
		To:        "Sent",
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	waitForEvent(t, reader, events.LeadReassigned{}.EventName())
}

// waitForEvent reads stream lines until an event of the given name
// arrives. The request context deadline bounds the wait.
func waitForEvent(t *testing.T, reader *bufio.Reader, name string) {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("stream ended while waiting for %q: %v", name, err)
		}
		if strings.HasPrefix(line, "event:") && strings.TrimSpace(strings.TrimPrefix(line, "event:")) == name {
			return
		}
	}
}
