package natsbridge

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/yeremiapane/restaurant-floor/services"
	"github.com/yeremiapane/restaurant-floor/utils"
)

const SubjectPrefix = "floor."

type conn interface {
	Publish(subject string, data []byte) error
}

// Publisher forwards floor events to NATS so other services (kitchen, host
// stand) can react to seating and status changes.
type Publisher struct {
	conn conn
	nc   *nats.Conn

	// Ping events fire twice a second per pinged table and are skipped unless set.
	IncludePing bool
}

func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("restaurant-floor"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	utils.InfoLogger.Printf("Publishing floor events to NATS at %s", url)
	return &Publisher{conn: nc, nc: nc}, nil
}

func Subject(event services.EventType) string {
	return SubjectPrefix + string(event)
}

func (p *Publisher) Notify(event services.Event) {
	if event.Type == services.EventPing && !p.IncludePing {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s event: %v", event.Type, err)
		return
	}
	if err := p.conn.Publish(Subject(event.Type), data); err != nil {
		utils.ErrorLogger.Printf("Error publishing %s event: %v", event.Type, err)
	}
}

// Close flushes pending messages and drops the connection.
func (p *Publisher) Close() error {
	if p.nc == nil {
		return nil
	}
	return p.nc.Drain()
}
