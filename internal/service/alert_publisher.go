package service

import (
	"context"
	"time"

	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CriticalAlertEvent is published when a new health record crosses a
// critical threshold.
type CriticalAlertEvent struct {
	PatientID   uuid.UUID      `json:"patient_id"`
	PatientName string         `json:"patient_name"`
	RecordID    uuid.UUID      `json:"record_id"`
	Timestamp   time.Time      `json:"timestamp"`
	Alerts      []metric.Alert `json:"alerts"`
}

// MessagePublisher is satisfied by messaging.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, contentType string, body []byte) error
}

type AlertPublisher interface {
	PublishCritical(ctx context.Context, event CriticalAlertEvent) error
}

type alertPublisher struct {
	publisher MessagePublisher
	log       *logrus.Logger
}

// NewAlertPublisher returns a publisher that only logs when publisher is nil.
func NewAlertPublisher(publisher MessagePublisher, log *logrus.Logger) AlertPublisher {
	return &alertPublisher{
		publisher: publisher,
		log:       log,
	}
}

func (p *alertPublisher) PublishCritical(ctx context.Context, event CriticalAlertEvent) error {
	if len(event.Alerts) == 0 {
		return nil
	}

	if p.publisher == nil {
		p.log.WithField("patient_id", event.PatientID).Infof("Critical values recorded: %+v", event.Alerts)
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(ctx, "application/json", body); err != nil {
		p.log.Warnf("Failed to publish critical alert: %+v", err)
		return err
	}
	return nil
}
