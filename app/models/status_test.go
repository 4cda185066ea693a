package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownStatus(t *testing.T) {
	for _, code := range []string{
		StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled,
	} {
		assert.True(t, KnownStatus(code), code)
	}
	assert.False(t, KnownStatus("shipped"))
	assert.False(t, KnownStatus(""))
	assert.False(t, KnownStatus("Pending"), "codes are case sensitive")
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "Out for Delivery", StatusLabel(StatusOutForDelivery))
	assert.Equal(t, "shipped", StatusLabel("shipped"), "unknown codes display as-is")

	assert.Equal(t, "#f59e0b", StatusColor(StatusPending))
	assert.Equal(t, "#3b82f6", StatusColor(StatusConfirmed))
	assert.Equal(t, "#8b5cf6", StatusColor(StatusPreparing))
	assert.Equal(t, "#f97316", StatusColor(StatusOutForDelivery))
	assert.Equal(t, "#10b981", StatusColor(StatusDelivered))
	assert.Equal(t, "#ef4444", StatusColor(StatusCancelled))
	assert.Equal(t, "#6b7280", StatusColor("shipped"), "unknown codes fall back to grey")
}

func TestStatusPhrases(t *testing.T) {
	assert.Equal(t, "received", StatusPhrase(StatusPending))
	assert.Equal(t, "being prepared", StatusPhrase(StatusPreparing))
	assert.Equal(t, "out for delivery", StatusPhrase(StatusOutForDelivery))
}

func TestStatusRank(t *testing.T) {
	prev := -1
	for _, code := range []string{
		StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered,
	} {
		rank, ok := StatusRank(code)
		assert.True(t, ok, code)
		assert.Greater(t, rank, prev, "%s should rank after its predecessor", code)
		prev = rank
	}

	_, ok := StatusRank(StatusCancelled)
	assert.False(t, ok, "cancelled carries no progress rank")
}
