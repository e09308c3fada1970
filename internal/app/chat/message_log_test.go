package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"batepapo/internal/app/model"
	"batepapo/internal/app/store/mocks"
)

func TestMessageLog_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("appends with server time", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newTestService(t)
		_, err := svc.Registry.Join(ctx, "alice")
		req.NoError(err)

		m, err := svc.Log.Post(ctx, "alice", "bob", "oi bob", model.TypePrivateMessage)
		req.NoError(err)
		req.Equal("02:30:00", m.Time)

		messages, err := st.ListMessages(ctx)
		req.NoError(err)
		req.Len(messages, 2)
		req.Equal(m, messages[1])
	})

	t.Run("rejects unknown senders without writing", func(t *testing.T) {
		req := require.New(t)
		svc, st, _ := newTestService(t)

		_, err := svc.Log.Post(ctx, "ghost", model.Broadcast, "boo", model.TypeMessage)
		req.ErrorIs(err, ErrSenderUnknown)

		messages, err := st.ListMessages(ctx)
		req.NoError(err)
		req.Empty(messages)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Registry.Join(ctx, "alice")
		require.NoError(t, err)

		cases := []struct {
			to, text    string
			messageType model.MessageType
		}{
			{"", "hi", model.TypeMessage},
			{model.Broadcast, "", model.TypeMessage},
			{model.Broadcast, "hi", model.TypeStatus},
			{model.Broadcast, "hi", "shout"},
		}
		for _, tc := range cases {
			_, err := svc.Log.Post(ctx, "alice", tc.to, tc.text, tc.messageType)
			require.ErrorIs(t, err, ErrInvalidMessage)
		}
	})
}

func TestMessageLog_PostStoreFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	participants := mocks.NewMockParticipants(ctrl)
	messages := mocks.NewMockMessages(ctrl)
	log := NewMessageLog(participants, messages, newFakeClock().Now)

	down := errors.New("timeout")
	participants.EXPECT().GetParticipant(gomock.Any(), "alice").Return(model.Participant{}, down)
	messages.EXPECT().InsertMessage(gomock.Any(), gomock.Any()).Times(0)

	_, err := log.Post(context.Background(), "alice", model.Broadcast, "hi", model.TypeMessage)
	req.ErrorIs(err, down)
	req.NotErrorIs(err, ErrSenderUnknown)
}

// seedConversation writes a fixed history and returns the service.
func seedConversation(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.Registry.Join(ctx, name)
		require.NoError(t, err)
	}

	posts := []struct {
		from, to, text string
		messageType    model.MessageType
	}{
		{"alice", model.Broadcast, "bom dia", model.TypeMessage},
		{"alice", "bob", "public reply to bob", model.TypeMessage},
		{"bob", "alice", "secret for alice", model.TypePrivateMessage},
		{"alice", "carol", "secret for carol", model.TypePrivateMessage},
		{"carol", "bob", "secret for bob", model.TypePrivateMessage},
		{"bob", model.Broadcast, "tchau", model.TypeMessage},
	}
	for _, p := range posts {
		_, err := svc.Log.Post(ctx, p.from, p.to, p.text, p.messageType)
		require.NoError(t, err)
	}
	return svc
}

func texts(messages []model.Message) []string {
	return lo.Map(messages, func(m model.Message, _ int) string { return m.Text })
}

func TestMessageLog_ListVisible(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := seedConversation(t)

	carol, err := svc.Log.ListVisible(ctx, "carol", 0)
	req.NoError(err)
	req.Equal([]string{
		model.TextJoined, model.TextJoined, model.TextJoined,
		"bom dia",
		"public reply to bob",
		"secret for carol",
		"tchau",
	}, texts(carol))

	for _, m := range carol {
		if m.Type == model.TypePrivateMessage {
			req.Equal("carol", m.To)
		}
	}

	// carol's own private message to bob is not returned to her
	req.NotContains(texts(carol), "secret for bob")

	anonymous, err := svc.Log.ListVisible(ctx, "", 0)
	req.NoError(err)
	req.Len(anonymous, 6)

	all, err := svc.Log.ListAll(ctx)
	req.NoError(err)
	req.Len(all, 9)
}

func TestMessageLog_ListVisibleLimit(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := seedConversation(t)

	last2, err := svc.Log.ListVisible(ctx, "carol", 2)
	req.NoError(err)
	req.Equal([]string{"secret for carol", "tchau"}, texts(last2))

	huge, err := svc.Log.ListVisible(ctx, "carol", 100)
	req.NoError(err)
	req.Len(huge, 7)

	none, err := svc.Log.ListVisible(ctx, "carol", 0)
	req.NoError(err)
	req.Len(none, 7)
}

func TestParseLimit(t *testing.T) {
	cases := map[string]int{
		"":    0,
		"2":   2,
		"0":   0,
		"-3":  0,
		"abc": 0,
		"1.5": 0,
		"50":  50,
	}
	for raw, want := range cases {
		require.Equal(t, want, ParseLimit(raw), raw)
	}
}
