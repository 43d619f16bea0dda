package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/config"
	"github.com/syncura360/api/pkg/metrics"
)

type EventType string

const (
	PatientAdmitted   EventType = "patient.admitted"
	PatientDischarged EventType = "patient.discharged"
	RoomAssigned      EventType = "room.assigned"
	RoomReleased      EventType = "room.released"
)

// ADTEvent is one admission/discharge/transfer notification on the event
// feed. Downstream consumers (billing, reporting) key on hospital and
// patient.
type ADTEvent struct {
	Type       EventType `json:"type"`
	HospitalID uint      `json:"hospital_id"`
	PatientID  uint      `json:"patient_id"`
	Room       string    `json:"room,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits ADT events after the owning transaction commits. Publishing
// is best-effort: a broker outage never fails a clinical operation.
type Publisher interface {
	Publish(ev ADTEvent)
	Close() error
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ADTEvent) {}
func (NopPublisher) Close() error     { return nil }

type kafkaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	log      *zap.Logger
	metrics  *metrics.Metrics
	done     chan struct{}
}

func NewPublisher(cfg config.KafkaConfig, log *zap.Logger, m *metrics.Metrics) (Publisher, error) {
	if !cfg.Enabled() {
		log.Info("event feed disabled, no brokers configured")
		return NopPublisher{}, nil
	}

	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	sc.Producer.Compression = sarama.CompressionSnappy
	sc.Producer.Flush.Frequency = 500 * time.Millisecond
	sc.Producer.Return.Errors = true
	sc.Producer.Return.Successes = false

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	p := &kafkaPublisher{
		producer: producer,
		topic:    cfg.Topic,
		log:      log,
		metrics:  m,
		done:     make(chan struct{}),
	}
	go p.drainErrors()

	log.Info("event feed enabled",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return p, nil
}

func (p *kafkaPublisher) drainErrors() {
	defer close(p.done)
	for perr := range p.producer.Errors() {
		p.log.Warn("event publish failed", zap.Error(perr.Err))
		p.metrics.ADTEventsTotal.WithLabelValues("unknown", "error").Inc()
	}
}

func (p *kafkaPublisher) Publish(ev ADTEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("encoding event", zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%d:%d", ev.HospitalID, ev.PatientID)),
		Value: sarama.ByteEncoder(payload),
	}

	// Drop rather than block when the producer's buffer is saturated.
	select {
	case p.producer.Input() <- msg:
		p.metrics.ADTEventsTotal.WithLabelValues(string(ev.Type), "sent").Inc()
	default:
		p.metrics.ADTEventsTotal.WithLabelValues(string(ev.Type), "dropped").Inc()
		p.log.Warn("event feed saturated, dropping event", zap.String("type", string(ev.Type)))
	}
}

func (p *kafkaPublisher) Close() error {
	err := p.producer.Close()
	<-p.done
	return err
}
