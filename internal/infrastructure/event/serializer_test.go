package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce/backend/internal/domain/channel"
)

func TestSerializerRoundTrip(t *testing.T) {
	s := NewSerializer()

	sc, err := channel.NewSalesChannel("Webshop", "", false)
	require.NoError(t, err)
	original := channel.NewSalesChannelCreatedEvent(sc)

	payload, err := s.Serialize(original)
	require.NoError(t, err)

	decoded, err := s.Deserialize(channel.EventTypeSalesChannelCreated, payload)
	require.NoError(t, err)

	created, ok := decoded.(*channel.SalesChannelCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, original.EventID(), created.EventID())
	assert.Equal(t, sc.ID, created.ChannelID)
	assert.Equal(t, channel.EventTypeSalesChannelCreated, created.EventType())
	assert.Equal(t, channel.AggregateTypeSalesChannel, created.AggregateType())
}

func TestSerializerUnknownType(t *testing.T) {
	s := NewSerializer()

	_, err := s.Deserialize("inventory.adjusted", []byte(`{}`))

	assert.ErrorContains(t, err, "unknown event type")
}

func TestSerializerRegistersAllChannelEvents(t *testing.T) {
	s := NewSerializer()

	for _, eventType := range []string{
		channel.EventTypeSalesChannelCreated,
		channel.EventTypeSalesChannelUpdated,
		channel.EventTypeSalesChannelDeleted,
	} {
		_, err := s.Deserialize(eventType, []byte(`{}`))
		assert.NoError(t, err, eventType)
	}
}
