package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationPublisherErrors(t *testing.T) {
	ctx := context.Background()

	err := NewNotificationPublisher(nil).Publish(ctx, "report_cards.published", map[string]string{"id": "rc-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no redis client")

	publisher := NewNotificationPublisher(unreachableRedis(t))

	err = publisher.Publish(ctx, "report_cards.published", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal notification for report_cards.published")

	err = publisher.Publish(ctx, "report_cards.published", map[string]string{"id": "rc-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis publish report_cards.published")
}
