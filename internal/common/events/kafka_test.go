package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pbf-marketplace/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishRequirementCreated(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w)

	req := models.NewRequirement(42, models.RequirementCandidate{
		Product:      "potato",
		Quantity:     models.NewQuantity(10),
		DeliveryDate: "2026-11-01",
	}, time.Now())

	require.NoError(t, p.PublishRequirementCreated(context.Background(), NewRequirementCreated(req, time.Now())))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, TypeRequirementCreated, string(msg.Headers[0].Value))

	var decoded RequirementCreated
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(42), decoded.Requirement.ID)
	assert.Equal(t, "potato", decoded.Requirement.Product)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("leader not available")})

	err := p.PublishRequirementCreated(context.Background(), RequirementCreated{Type: TypeRequirementCreated})
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishRequirementCreated(context.Background(), RequirementCreated{}))
	assert.NoError(t, p.Close())
}
