//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"devicegate/internal/integrity/events"
	"devicegate/pkg/testutil/containers"
)

func TestKafkaPublisher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	broker := containers.GetManager().GetRedpanda(t).Broker
	topic := "integrity-events-" + uuid.NewString()

	adminClient, err := kgo.NewClient(kgo.SeedBrokers(broker))
	require.NoError(t, err)
	defer adminClient.Close()

	_, err = kadm.NewClient(adminClient).CreateTopics(ctx, 1, 1, nil, topic)
	require.NoError(t, err)

	publisher, err := events.NewKafkaPublisher([]string{broker}, topic)
	require.NoError(t, err)
	defer publisher.Close()

	event := events.New(events.IntegrityLogCreatedData{
		IDFA:      "device-1",
		BanStatus: "banned",
		IP:        "203.0.113.7",
		VPN:       true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	})
	require.NoError(t, publisher.Publish(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(pollCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "device-1", string(records[0].Key), "records must be keyed by idfa")

	var got events.IntegrityLogCreated
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, events.EventName, got.Name)
	assert.Equal(t, events.EventVersion, got.Version)
	assert.Equal(t, event.Data, got.Data)
}
