package transport

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
)

var errTransportClosed = errors.New("transport: closed while waiting for a message")

// channelServiceDesc describes a single client-streaming RPC: a rank opens
// one of these per peer it sends to, streams envelopes for the lifetime of
// the run, and the peer acknowledges with an empty Envelope when the
// stream closes. There's no protoc-generated stub here — Envelope isn't a
// protobuf message — so the ServiceDesc and client helper below are
// written by hand against grpc-go's low-level streaming API, the same API
// generated code calls into.
var channelServiceDesc = grpc.ServiceDesc{
	ServiceName: "transport.Channel",
	HandlerType: (*channelHandler)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Send",
			Handler:       channelSendHandler,
			ClientStreams: true,
		},
	},
	Metadata: "raytracecluster/internal/transport",
}

// channelHandler is implemented by the per-rank server side of the mesh.
type channelHandler interface {
	deliver(source int, env *Envelope)
}

// channelSendHandler reads a handshake envelope (the sender's rank) off a
// freshly accepted stream, then relays every subsequent envelope to the
// handler's inbox until the client closes the stream.
func channelSendHandler(srv interface{}, stream grpc.ServerStream) error {
	h := srv.(channelHandler)

	var handshake Envelope
	if err := stream.RecvMsg(&handshake); err != nil {
		return err
	}
	source := int(handshake.Ints[0])

	for {
		var env Envelope
		err := stream.RecvMsg(&env)
		if err == io.EOF {
			return stream.SendMsg(&Envelope{})
		}
		if err != nil {
			return err
		}
		h.deliver(source, &env)
	}
}

// dialChannel opens the client side of a channelServiceDesc stream and
// immediately sends the handshake envelope identifying this rank.
func dialChannel(conn *grpc.ClientConn, selfRank int) (grpc.ClientStream, error) {
	desc := &grpc.StreamDesc{
		StreamName:    "Send",
		ClientStreams: true,
	}
	stream, err := conn.NewStream(context.Background(), desc, "/transport.Channel/Send", grpc.CallContentSubtype(gobCodecName))
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&Envelope{Ints: []int32{int32(selfRank)}}); err != nil {
		return nil, err
	}
	return stream, nil
}
