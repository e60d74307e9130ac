package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_DrainReturnsAndClears(t *testing.T) {
	c := NewCenter()
	c.Success("u1", "Added to cart")
	c.Info("u1", "Cart cleared")

	feed := c.Drain("u1")
	require.Len(t, feed, 2)
	assert.Equal(t, LevelSuccess, feed[0].Level)
	assert.Equal(t, "Added to cart", feed[0].Message)
	assert.Equal(t, LevelInfo, feed[1].Level)

	assert.Empty(t, c.Drain("u1"))
}

func TestCenter_FeedsArePerUser(t *testing.T) {
	c := NewCenter()
	c.Error("alice", "Please login")

	assert.Empty(t, c.Drain("bob"))
	require.Len(t, c.Drain("alice"), 1)
}

func TestCenter_FeedIsBounded(t *testing.T) {
	c := NewCenter()
	for i := 0; i < feedLimit+10; i++ {
		c.Info("u1", fmt.Sprintf("message %d", i))
	}

	feed := c.Drain("u1")
	require.Len(t, feed, feedLimit)
	// Oldest entries dropped, newest kept
	assert.Equal(t, fmt.Sprintf("message %d", feedLimit+9), feed[len(feed)-1].Message)
}

func TestCenter_SubscribeReceivesNotifications(t *testing.T) {
	c := NewCenter()
	ch, cancel := c.Subscribe("u1")
	defer cancel()

	c.Success("u1", "Added to favorites")

	n := <-ch
	assert.Equal(t, LevelSuccess, n.Level)
	assert.Equal(t, "Added to favorites", n.Message)
}

func TestCenter_CancelStopsDelivery(t *testing.T) {
	c := NewCenter()
	ch, cancel := c.Subscribe("u1")
	cancel()

	// Channel is closed after cancel
	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic
	c.Info("u1", "still fine")
}

func TestCenter_SlowSubscriberDoesNotBlock(t *testing.T) {
	c := NewCenter()
	_, cancel := c.Subscribe("u1")
	defer cancel()

	// More messages than the channel buffers; publish must not block
	for i := 0; i < 64; i++ {
		c.Info("u1", "burst")
	}
}
