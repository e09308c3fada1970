package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"batepapo/internal/app/model"
	"batepapo/internal/pkg/randx"
)

// runStoreContract exercises the behavior every driver must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("participants lifecycle", func(t *testing.T) {
		req := require.New(t)
		s := newStore(t)

		list, err := s.ListParticipants(ctx)
		req.NoError(err)
		req.NotNil(list)
		req.Empty(list)

		alice := model.Participant{ID: randx.RecordID(), Name: "alice", LastStatus: 1000}
		req.NoError(s.InsertParticipant(ctx, alice))

		got, err := s.GetParticipant(ctx, "alice")
		req.NoError(err)
		req.Equal(alice, got)

		_, err = s.GetParticipant(ctx, "Alice")
		req.ErrorIs(err, ErrNotFound)

		req.NoError(s.TouchParticipant(ctx, "alice", 5000))
		got, err = s.GetParticipant(ctx, "alice")
		req.NoError(err)
		req.Equal(int64(5000), got.LastStatus)
		req.Equal(alice.ID, got.ID)

		req.NoError(s.DeleteParticipant(ctx, "alice"))
		req.ErrorIs(s.DeleteParticipant(ctx, "alice"), ErrNotFound)
		req.ErrorIs(s.TouchParticipant(ctx, "alice", 6000), ErrNotFound)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		req := require.New(t)
		s := newStore(t)

		req.NoError(s.InsertParticipant(ctx, model.Participant{ID: randx.RecordID(), Name: "alice", LastStatus: 1}))
		req.ErrorIs(s.InsertParticipant(ctx, model.Participant{ID: randx.RecordID(), Name: "alice", LastStatus: 2}), ErrDuplicate)

		list, err := s.ListParticipants(ctx)
		req.NoError(err)
		req.Len(list, 1)
		req.Equal(int64(1), list[0].LastStatus)
	})

	t.Run("concurrent inserts of one name admit exactly one", func(t *testing.T) {
		req := require.New(t)
		s := newStore(t)

		var ok atomic.Int32
		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.InsertParticipant(ctx, model.Participant{ID: randx.RecordID(), Name: "race"}); err == nil {
					ok.Add(1)
				}
			}()
		}
		wg.Wait()

		req.Equal(int32(1), ok.Load())
		list, err := s.ListParticipants(ctx)
		req.NoError(err)
		req.Len(list, 1)
	})

	t.Run("messages keep insertion order", func(t *testing.T) {
		req := require.New(t)
		s := newStore(t)

		list, err := s.ListMessages(ctx)
		req.NoError(err)
		req.NotNil(list)
		req.Empty(list)

		var want []model.Message
		for i := range 12 {
			m := model.Message{
				ID:   randx.RecordID(),
				From: "alice",
				To:   model.Broadcast,
				Text: fmt.Sprintf("message %d", i),
				Type: model.TypeMessage,
				Time: "09:00:00",
			}
			req.NoError(s.InsertMessage(ctx, m))
			want = append(want, m)
		}

		got, err := s.ListMessages(ctx)
		req.NoError(err)
		req.Equal(want, got)
	})
}
