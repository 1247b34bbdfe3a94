package messaging

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Event is the envelope published on every subject.
type Event struct {
	Id         string      `json:"id"`
	Subject    string      `json:"subject"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// NatsPublisher publishes domain events. A publisher without a connection drops events.
type NatsPublisher struct {
	nc *nats.Conn
}

// ConnectNats connects to url. An empty url yields a disabled publisher.
func ConnectNats(url string) (*NatsPublisher, error) {
	if url == "" {
		log.Println("[nats] NATS_URL not set; events disabled")
		return &NatsPublisher{}, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("stock-tracker-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	log.Println("[nats] connected")
	return &NatsPublisher{nc: nc}, nil
}

// NewNatsPublisher wraps an existing connection.
func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func NewEvent(subject string, data interface{}) Event {
	return Event{
		Id:         uuid.NewString(),
		Subject:    subject,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publish hands the event to the client's outbound buffer; it does not wait for delivery.
func (p *NatsPublisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	if p.nc == nil {
		return nil
	}
	if !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}

	data, err := json.Marshal(NewEvent(subject, payload))
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, data)
}

func (p *NatsPublisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.nc.Close()
		}
		log.Println("[nats] connection closed")
	}
}
