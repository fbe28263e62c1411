package pubsub

import "context"

// Pack is the unit published to a topic. Key is used for partitioning, Msg
// carries the serialized payload.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Stop(ctx context.Context) error
}
