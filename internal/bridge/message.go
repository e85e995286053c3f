// internal/bridge/message.go
package bridge

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tg-tower-defense/internal/event"
)

// SnapshotType — тип сообщения с полным состоянием сессии.
const SnapshotType = "snapshot"

// Envelope is the frame sent to clients: the event type, the sim time in
// milliseconds and the event itself.
type Envelope struct {
	Type string `msgpack:"type"`
	AtMs int64  `msgpack:"at_ms"`
	Data any    `msgpack:"data"`
}

// EncodeEvent packs e as a binary frame.
func EncodeEvent(e event.Event, at time.Duration) ([]byte, error) {
	return encode(string(e.Type()), e, at)
}

func encode(typ string, data any, at time.Duration) ([]byte, error) {
	return msgpack.Marshal(&Envelope{Type: typ, AtMs: at.Milliseconds(), Data: data})
}

// Decode unpacks a frame. Data comes back as generic msgpack values.
func Decode(b []byte) (Envelope, error) {
	var env Envelope
	err := msgpack.Unmarshal(b, &env)
	return env, err
}
