package host

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CompletionType tags completion messages for the hosting shell.
const CompletionType = "BLOCK_COMPLETION"

// DefaultBlockID identifies the designer to the hosting shell.
const DefaultBlockID = "race-track-designer"

// DefaultSubject is the NATS subject completion messages are published on.
const DefaultSubject = "blocks.completion"

// Completion is the message broadcast when the designer mounts
type Completion struct {
	Type      string `json:"type"`
	BlockID   string `json:"blockId"`
	Completed bool   `json:"completed"`
}

// NewCompletion builds the completion message for a block.
func NewCompletion(blockID string) Completion {
	return Completion{
		Type:      CompletionType,
		BlockID:   blockID,
		Completed: true,
	}
}

// Notifier delivers a completion message to one target.
type Notifier interface {
	Notify(ctx context.Context, msg Completion) error
}

// LogNotifier writes the completion message to the log.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify logs msg at info level.
func (n LogNotifier) Notify(_ context.Context, msg Completion) error {
	n.Logger.Info("block completion",
		zap.String("type", msg.Type),
		zap.String("blockId", msg.BlockID),
		zap.Bool("completed", msg.Completed))
	return nil
}

// Publisher is the subset of *nats.Conn used for notifications.
type Publisher interface {
	Publish(subj string, data []byte) error
	FlushWithContext(ctx context.Context) error
}

// NATSNotifier publishes completion messages as JSON on a NATS subject.
type NATSNotifier struct {
	pub     Publisher
	subject string
}

// NewNATSNotifier publishes on subject through pub.
func NewNATSNotifier(pub Publisher, subject string) *NATSNotifier {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSNotifier{pub: pub, subject: subject}
}

// DialNATS connects to a NATS server for notifications.
func DialNATS(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(0))
	if err != nil {
		return nil, errors.Wrapf(err, "connect to nats at %s", url)
	}
	return nc, nil
}

// Notify publishes msg and waits for the server to acknowledge the flush.
func (n *NATSNotifier) Notify(ctx context.Context, msg Completion) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "encode completion")
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		return errors.Wrapf(err, "publish to %s", n.subject)
	}
	if err := n.pub.FlushWithContext(ctx); err != nil {
		return errors.Wrapf(err, "flush %s", n.subject)
	}
	return nil
}

// Broadcaster sends a completion message to several targets, the way the
// original block posted to both its own window and its parent frame.
type Broadcaster struct {
	targets []Notifier
	logger  *zap.Logger
	timeout time.Duration
}

// NewBroadcaster creates a broadcaster over targets.
func NewBroadcaster(logger *zap.Logger, targets ...Notifier) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{
		targets: targets,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Broadcast notifies every target in turn. Failures are logged and do not
// stop later targets. The returned error is the first failure.
func (b *Broadcaster) Broadcast(ctx context.Context, msg Completion) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var first error
	for _, t := range b.targets {
		if err := t.Notify(ctx, msg); err != nil {
			b.logger.Warn("completion notification failed", zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Announce broadcasts msg in the background and returns a channel closed
// when delivery has finished.
func (b *Broadcaster) Announce(msg Completion) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = b.Broadcast(context.Background(), msg)
	}()
	return done
}
