package host

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakePublisher struct {
	subject    string
	data       []byte
	publishErr error
	flushed    bool
}

func (f *fakePublisher) Publish(subj string, data []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.subject = subj
	f.data = data
	return nil
}

func (f *fakePublisher) FlushWithContext(context.Context) error {
	f.flushed = true
	return nil
}

type recordingNotifier struct {
	got []Completion
	err error
}

func (r *recordingNotifier) Notify(_ context.Context, msg Completion) error {
	r.got = append(r.got, msg)
	return r.err
}

func TestCompletion_JSON(t *testing.T) {
	data, err := json.Marshal(NewCompletion("race-track-designer"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"BLOCK_COMPLETION","blockId":"race-track-designer","completed":true}`,
		string(data))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := LogNotifier{Logger: zap.New(core)}

	require.NoError(t, n.Notify(context.Background(), NewCompletion("b1")))
	entries := logs.FilterMessage("block completion").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "b1", entries[0].ContextMap()["blockId"])
}

func TestNATSNotifier(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNATSNotifier(pub, "")

	require.NoError(t, n.Notify(context.Background(), NewCompletion("b1")))
	assert.Equal(t, DefaultSubject, pub.subject)
	assert.True(t, pub.flushed)

	var got Completion
	require.NoError(t, json.Unmarshal(pub.data, &got))
	assert.Equal(t, NewCompletion("b1"), got)
}

func TestNATSNotifier_PublishError(t *testing.T) {
	boom := errors.New("boom")
	n := NewNATSNotifier(&fakePublisher{publishErr: boom}, "shell.blocks")

	err := n.Notify(context.Background(), NewCompletion("b1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "shell.blocks")
}

func TestBroadcaster_NotifiesAllTargets(t *testing.T) {
	boom := errors.New("boom")
	failing := &recordingNotifier{err: boom}
	ok := &recordingNotifier{}
	core, logs := observer.New(zapcore.WarnLevel)

	b := NewBroadcaster(zap.New(core), failing, ok)
	err := b.Broadcast(context.Background(), NewCompletion("b1"))

	assert.True(t, errors.Is(err, boom))
	assert.Len(t, failing.got, 1)
	assert.Len(t, ok.got, 1, "a failing target does not stop the next one")
	assert.Equal(t, 1, logs.Len())
}

func TestBroadcaster_Announce(t *testing.T) {
	target := &recordingNotifier{}
	b := NewBroadcaster(nil, target)

	<-b.Announce(NewCompletion("b1"))
	require.Len(t, target.got, 1)
	assert.Equal(t, "b1", target.got[0].BlockID)
}
