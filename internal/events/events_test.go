package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/carcare-storefront/internal/model"
)

func TestLocalPublisher_DeliversToHandler(t *testing.T) {
	var got []model.OrderMessage
	p := NewLocalPublisher(func(_ context.Context, msg model.OrderMessage) error {
		got = append(got, msg)
		return nil
	})

	msg := model.OrderMessage{OrderID: uuid.New(), UserID: uuid.New(), Phone: "9812345678"}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), msg))
	assert.Equal(t, []model.OrderMessage{msg}, got)
}

func TestLocalPublisher_PropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	p := NewLocalPublisher(func(context.Context, model.OrderMessage) error { return boom })
	assert.ErrorIs(t, p.PublishOrderPlaced(context.Background(), model.OrderMessage{}), boom)
}

func TestLocalPublisher_NilHandler(t *testing.T) {
	assert.NoError(t, NewLocalPublisher(nil).PublishOrderPlaced(context.Background(), model.OrderMessage{}))
}
