package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("Legal edges", func(t *testing.T) {
		legal := [][2]string{
			{StatusPending, StatusPaid},
			{StatusPending, StatusCancelled},
			{StatusPaid, StatusProcessing},
			{StatusPaid, StatusRefunded},
			{StatusProcessing, StatusShipped},
			{StatusShipped, StatusDelivered},
			{StatusPaid, StatusCancelled},
		}
		for _, edge := range legal {
			assert.True(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
		}
	})

	t.Run("Illegal edges", func(t *testing.T) {
		illegal := [][2]string{
			{StatusPending, StatusShipped},
			{StatusPending, StatusDelivered},
			{StatusShipped, StatusCancelled},
			{StatusDelivered, StatusRefunded},
			{StatusDelivered, StatusPending},
			{StatusCancelled, StatusPaid},
			{StatusRefunded, StatusPaid},
		}
		for _, edge := range illegal {
			assert.False(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
		}
	})

	t.Run("Same status is not a transition", func(t *testing.T) {
		assert.False(t, CanTransition(StatusPending, StatusPending))
	})
}

func TestValidCombination(t *testing.T) {
	t.Run("Allowed combinations", func(t *testing.T) {
		allowed := [][2]string{
			{StatusPending, PaymentPending},
			{StatusPaid, PaymentPaid},
			{StatusProcessing, PaymentPaid},
			{StatusShipped, PaymentPaid},
			{StatusDelivered, PaymentPaid},
			// cash on delivery: fulfilment proceeds before payment
			{StatusProcessing, PaymentPending},
			{StatusShipped, PaymentPending},
			{StatusCancelled, PaymentFailed},
			{StatusCancelled, PaymentPending},
			{StatusRefunded, PaymentRefunded},
		}
		for _, pair := range allowed {
			assert.True(t, ValidCombination(pair[0], pair[1]), "%s / %s", pair[0], pair[1])
		}
	})

	t.Run("Forbidden combinations", func(t *testing.T) {
		forbidden := [][2]string{
			{StatusPending, PaymentPaid},
			{StatusPending, PaymentFailed},
			{StatusPaid, PaymentPending},
			{StatusPaid, PaymentFailed},
			{StatusDelivered, PaymentFailed},
			{StatusRefunded, PaymentPaid},
		}
		for _, pair := range forbidden {
			assert.False(t, ValidCombination(pair[0], pair[1]), "%s / %s", pair[0], pair[1])
		}
	})
}
