package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-system/internal/services/inventory"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "inventory:events:low_stock", Channel(inventory.EventLowStock))
	assert.Equal(t, "inventory:events:all", ChannelAll)
}

func TestRedisPublisher_Publish(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, Channel(inventory.EventOutOfStock), ChannelAll)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := inventory.StockEvent{
		Type:           inventory.EventOutOfStock,
		ProductID:      "2",
		ProductSKU:     "ELEC-002",
		PreviousStock:  8,
		NewStock:       0,
		PreviousStatus: inventory.StatusLowStock,
		Status:         inventory.StatusOutOfStock,
	}
	require.NoError(t, NewRedisPublisher(client).Publish(ctx, event))

	channels := map[string]bool{}
	for i := 0; i < 2; i++ {
		msg, err := sub.ReceiveMessage(ctx)
		require.NoError(t, err)
		channels[msg.Channel] = true

		var got inventory.StockEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event.ProductSKU, got.ProductSKU)
		assert.Equal(t, inventory.StatusOutOfStock, got.Status)
	}
	assert.True(t, channels[Channel(inventory.EventOutOfStock)])
	assert.True(t, channels[ChannelAll])
}
