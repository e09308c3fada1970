package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"batepapo/internal/app/model"
	"batepapo/internal/app/store/mocks"
)

func TestRegistry_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and announces", func(t *testing.T) {
		req := require.New(t)
		svc, st, clock := newTestService(t)

		p, err := svc.Registry.Join(ctx, "bob")
		req.NoError(err)
		req.Equal("bob", p.Name)
		req.Equal(clock.Now().UnixMilli(), p.LastStatus)
		req.NotEmpty(p.ID)

		list, err := svc.Registry.List(ctx)
		req.NoError(err)
		req.Len(list, 1)
		req.Equal(p, list[0])

		messages, err := st.ListMessages(ctx)
		req.NoError(err)
		req.Len(messages, 1)
		req.Equal("bob", messages[0].From)
		req.Equal(model.Broadcast, messages[0].To)
		req.Equal(model.TextJoined, messages[0].Text)
		req.Equal(model.TypeStatus, messages[0].Type)
		req.Equal("02:30:00", messages[0].Time)
	})

	t.Run("rejects duplicates without a second notice", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newTestService(t)

		_, err := svc.Registry.Join(ctx, "alice")
		req.NoError(err)
		_, err = svc.Registry.Join(ctx, "alice")
		req.ErrorIs(err, ErrNameTaken)

		list, err := svc.Registry.List(ctx)
		req.NoError(err)
		req.Len(list, 1)

		messages, err := st.ListMessages(ctx)
		req.NoError(err)
		req.Len(messages, 1)
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		req := require.New(t)
		svc, _, _ := newTestService(t)

		_, err := svc.Registry.Join(ctx, "alice")
		req.NoError(err)
		_, err = svc.Registry.Join(ctx, "Alice")
		req.NoError(err)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newTestService(t)

		_, err := svc.Registry.Join(ctx, "")
		req.ErrorIs(err, ErrInvalidName)

		list, err := st.ListParticipants(ctx)
		req.NoError(err)
		req.Empty(list)
	})
}

func TestRegistry_JoinKeepsParticipantWhenNoticeFails(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	participants := mocks.NewMockParticipants(ctrl)
	messages := mocks.NewMockMessages(ctrl)
	clock := newFakeClock()
	registry := NewRegistry(participants, NewMessageLog(participants, messages, clock.Now), clock.Now)

	participants.EXPECT().InsertParticipant(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	messages.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(1)
	participants.EXPECT().DeleteParticipant(gomock.Any(), gomock.Any()).Times(0)

	p, err := registry.Join(ctx, "bob")
	req.Error(err)
	req.ErrorContains(err, "disk full")
	req.Equal("bob", p.Name)
}

func TestRegistry_Heartbeat(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, st, clock := newTestService(t)

	req.ErrorIs(svc.Registry.Heartbeat(ctx, "ghost"), ErrParticipantNotFound)

	joined, err := svc.Registry.Join(ctx, "carol")
	req.NoError(err)

	clock.Advance(7 * time.Second)
	req.NoError(svc.Registry.Heartbeat(ctx, "carol"))

	p, err := st.GetParticipant(ctx, "carol")
	req.NoError(err)
	req.Equal(joined.LastStatus+7000, p.LastStatus)
	req.Equal(joined.ID, p.ID)
	req.Equal("carol", p.Name)
}

func TestRegistry_Remove(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.Registry.Join(ctx, "dave")
	req.NoError(err)

	req.NoError(svc.Registry.Remove(ctx, "dave"))
	req.ErrorIs(svc.Registry.Remove(ctx, "dave"), ErrParticipantNotFound)

	list, err := svc.Registry.List(ctx)
	req.NoError(err)
	req.NotNil(list)
	req.Empty(list)
}

func TestRegistry_StoreFailuresAreWrapped(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	participants := mocks.NewMockParticipants(ctrl)
	messages := mocks.NewMockMessages(ctrl)
	clock := newFakeClock()
	registry := NewRegistry(participants, NewMessageLog(participants, messages, clock.Now), clock.Now)

	down := errors.New("connection refused")
	participants.EXPECT().InsertParticipant(gomock.Any(), gomock.Any()).Return(down)
	participants.EXPECT().TouchParticipant(gomock.Any(), "bob", gomock.Any()).Return(down)
	participants.EXPECT().ListParticipants(gomock.Any()).Return(nil, down)

	_, err := registry.Join(ctx, "bob")
	req.ErrorIs(err, down)
	req.NotErrorIs(err, ErrNameTaken)

	err = registry.Heartbeat(ctx, "bob")
	req.ErrorIs(err, down)
	req.NotErrorIs(err, ErrParticipantNotFound)

	_, err = registry.List(ctx)
	req.ErrorIs(err, down)
}
