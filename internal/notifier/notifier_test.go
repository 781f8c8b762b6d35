package notifier

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink logs shows and dismissals in order.
type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (s *recordingSink) Show(_ context.Context, n Notice) (func(), error) {
	s.add("show " + n.Message)
	return func() { s.add("dismiss " + n.Message) }, nil
}

func (s *recordingSink) add(e string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func TestQueue_OneVisibleAtATime(t *testing.T) {
	sink := &recordingSink{}
	q := NewQueue(20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)), sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	q.Notify("first", KindSuccess)
	q.Notify("second", KindInfo)

	want := []string{"show first", "dismiss first", "show second", "dismiss second"}
	assert.Eventually(t, func() bool { return len(sink.snapshot()) == len(want) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, want, sink.snapshot())
}

func TestQueue_DropsWhenFull(t *testing.T) {
	var buf bytes.Buffer
	q := NewQueue(time.Second, slog.New(slog.NewJSONHandler(&buf, nil)))

	for i := 0; i < queueSize+1; i++ {
		q.Notify("x", KindInfo)
	}

	assert.Len(t, q.notices, queueSize)
	assert.Contains(t, buf.String(), "notice dropped")
}

type failingSink struct{}

func (failingSink) Show(context.Context, Notice) (func(), error) {
	return nil, errors.New("boom")
}

func TestQueue_SinkFailureDoesNotBlockOthers(t *testing.T) {
	sink := &recordingSink{}
	q := NewQueue(10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)), failingSink{}, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	q.Notify("saved", KindSuccess)
	assert.Eventually(t, func() bool { return len(sink.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestCurrentSink(t *testing.T) {
	s := NewCurrentSink()
	_, ok := s.Current()
	assert.False(t, ok)

	n := Notice{Message: "Diet saved", Kind: KindSuccess, At: time.Now()}
	dismiss, err := s.Show(context.Background(), n)
	require.NoError(t, err)

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "Diet saved", got.Message)

	dismiss()
	_, ok = s.Current()
	assert.False(t, ok)
}

type fakeDiscord struct {
	sent    []string
	deleted []string
	sendErr error
}

func (f *fakeDiscord) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, content)
	return &discordgo.Message{ID: "msg-1", ChannelID: channelID, Content: content}, nil
}

func (f *fakeDiscord) ChannelMessageDelete(_, messageID string, _ ...discordgo.RequestOption) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func TestDiscordSink(t *testing.T) {
	api := &fakeDiscord{}
	sink := newDiscordSink(api, "chan", nil)

	dismiss, err := sink.Show(context.Background(), Notice{Message: "Diet updated", Kind: KindSuccess})
	require.NoError(t, err)
	require.Len(t, api.sent, 1)
	assert.Contains(t, api.sent[0], "Diet updated")
	assert.Contains(t, api.sent[0], "✅")

	dismiss()
	assert.Equal(t, []string{"msg-1"}, api.deleted)
}

func TestDiscordSink_SendError(t *testing.T) {
	sink := newDiscordSink(&fakeDiscord{sendErr: errors.New("offline")}, "chan", nil)

	_, err := sink.Show(context.Background(), Notice{Message: "x", Kind: KindError})
	assert.ErrorContains(t, err, "offline")
}

func TestNewDiscordSink_RequiresConfig(t *testing.T) {
	_, err := NewDiscordSink("", "chan", nil)
	assert.Error(t, err)
	_, err = NewDiscordSink("token", "", nil)
	assert.Error(t, err)
}
