package oxapi

import "context"

// Transport performs one synchronous remote procedure call. Arguments arrive
// already reduced to wire values: integers, floats, bools, strings,
// time.Time, []byte, map[string]any and []any.
//
// A transport reports a protocol fault as a *RemoteFault and any other
// failure (connectivity, timeout, decoding) as an ordinary error. Timeouts,
// TLS and connection reuse are the transport's business.
type Transport interface {
	Call(ctx context.Context, method string, args []any) (any, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, method string, args []any) (any, error)

func (f TransportFunc) Call(ctx context.Context, method string, args []any) (any, error) {
	return f(ctx, method, args)
}
