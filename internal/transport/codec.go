package transport

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// gobCodecName is the gRPC content-subtype this codec registers under.
// Every Dial in this package requests it explicitly, so the default
// protobuf codec is never consulted for these connections.
const gobCodecName = "gob"

// gobCodec gob-encodes *Envelope values instead of marshaling protobuf
// messages. This keeps the wire format exactly what spec.md commits to
// (raw ints/floats, no protobuf framing) while still riding on grpc-go's
// connection management and streaming.
type gobCodec struct{}

func (gobCodec) Name() string { return gobCodecName }

func (gobCodec) Marshal(v interface{}) ([]byte, error) {
	env, ok := v.(*Envelope)
	if !ok {
		return nil, fmt.Errorf("transport: gobCodec cannot marshal %T", v)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v interface{}) error {
	env, ok := v.(*Envelope)
	if !ok {
		return fmt.Errorf("transport: gobCodec cannot unmarshal into %T", v)
	}
	return gob.NewDecoder(bytes.NewReader(data)).Decode(env)
}

func init() {
	encoding.RegisterCodec(gobCodec{})
}
