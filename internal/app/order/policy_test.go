package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchenpos/internal/domain"
)

func TestPolicyFor(t *testing.T) {
	t.Run("eat-in requires a table", func(t *testing.T) {
		policy, err := PolicyFor(domain.OrderTypeEatIn)
		require.NoError(t, err)
		assert.True(t, policy.RequiresTable)
		assert.False(t, policy.RequiresAddress)
	})

	t.Run("delivery requires an address", func(t *testing.T) {
		policy, err := PolicyFor(domain.OrderTypeDelivery)
		require.NoError(t, err)
		assert.True(t, policy.RequiresAddress)
		assert.False(t, policy.RequiresTable)
	})

	t.Run("takeout requires nothing extra", func(t *testing.T) {
		policy, err := PolicyFor(domain.OrderTypeTakeout)
		require.NoError(t, err)
		assert.False(t, policy.RequiresTable)
		assert.False(t, policy.RequiresAddress)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		_, err := PolicyFor(domain.OrderType("DRIVE_THROUGH"))
		require.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestPolicyNext(t *testing.T) {
	tests := []struct {
		name      string
		orderType domain.OrderType
		action    Action
		current   domain.OrderStatus
		want      domain.OrderStatus
		wantErr   bool
	}{
		{
			name:      "accept a waiting takeout order",
			orderType: domain.OrderTypeTakeout,
			action:    ActionAccept,
			current:   domain.OrderStatusWaiting,
			want:      domain.OrderStatusAccepted,
		},
		{
			name:      "serve an accepted eat-in order",
			orderType: domain.OrderTypeEatIn,
			action:    ActionServe,
			current:   domain.OrderStatusAccepted,
			want:      domain.OrderStatusServed,
		},
		{
			name:      "complete a served takeout order",
			orderType: domain.OrderTypeTakeout,
			action:    ActionComplete,
			current:   domain.OrderStatusServed,
			want:      domain.OrderStatusCompleted,
		},
		{
			name:      "start delivery on a served delivery order",
			orderType: domain.OrderTypeDelivery,
			action:    ActionStartDelivery,
			current:   domain.OrderStatusServed,
			want:      domain.OrderStatusDelivering,
		},
		{
			name:      "complete delivery while delivering",
			orderType: domain.OrderTypeDelivery,
			action:    ActionCompleteDelivery,
			current:   domain.OrderStatusDelivering,
			want:      domain.OrderStatusDelivered,
		},
		{
			name:      "complete a delivered delivery order",
			orderType: domain.OrderTypeDelivery,
			action:    ActionComplete,
			current:   domain.OrderStatusDelivered,
			want:      domain.OrderStatusCompleted,
		},
		{
			name:      "delivery orders cannot skip the delivery leg",
			orderType: domain.OrderTypeDelivery,
			action:    ActionComplete,
			current:   domain.OrderStatusServed,
			wantErr:   true,
		},
		{
			name:      "start delivery on an eat-in order",
			orderType: domain.OrderTypeEatIn,
			action:    ActionStartDelivery,
			current:   domain.OrderStatusServed,
			wantErr:   true,
		},
		{
			name:      "start delivery on a takeout order",
			orderType: domain.OrderTypeTakeout,
			action:    ActionStartDelivery,
			current:   domain.OrderStatusServed,
			wantErr:   true,
		},
		{
			name:      "start delivery before serving",
			orderType: domain.OrderTypeDelivery,
			action:    ActionStartDelivery,
			current:   domain.OrderStatusAccepted,
			wantErr:   true,
		},
		{
			name:      "accept an already accepted order",
			orderType: domain.OrderTypeTakeout,
			action:    ActionAccept,
			current:   domain.OrderStatusAccepted,
			wantErr:   true,
		},
		{
			name:      "no action moves a completed order",
			orderType: domain.OrderTypeTakeout,
			action:    ActionAccept,
			current:   domain.OrderStatusCompleted,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := PolicyFor(tt.orderType)
			require.NoError(t, err)

			next, err := policy.Next(tt.action, tt.current)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrIllegalState)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}
