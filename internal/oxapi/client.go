// Package oxapi is a session-scoped client for the ad server's "ox" remote
// procedure API. Every operation funnels through Send, which serializes
// entity records to wire maps, hands the call to an injected Transport and
// turns remote faults into *RemoteFault errors.
package oxapi

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/middleware"
	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/observability"
)

const (
	MethodLogon  = "ox.logon"
	MethodLogoff = "ox.logoff"
)

// call outcomes recorded in metrics
const (
	outcomeOK       = "ok"
	outcomeFault    = "fault"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

// State is the session state of a Client.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Client holds a transport and the session token obtained by Logon.
//
// A Client is not safe for concurrent use: a call racing a Logon or Logoff
// could read a token that is being replaced. Callers sharing one must
// serialize access.
type Client struct {
	transport Transport
	logger    *zap.Logger
	metrics   observability.MetricsRegistry
	tracer    trace.Tracer
	now       func() time.Time

	state State
	token string
}

// NewClient creates an unauthenticated client over transport. logger and
// metrics may be nil.
func NewClient(transport Transport, logger *zap.Logger, metrics observability.MetricsRegistry) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Client{
		transport: transport,
		logger:    logger,
		metrics:   metrics,
		tracer:    observability.GetTracer("oxapi"),
		now:       time.Now,
		state:     StateUnauthenticated,
	}
}

// State returns the current session state.
func (c *Client) State() State { return c.state }

// Token returns the session token, or "" outside the authenticated state.
func (c *Client) Token() string { return c.token }

// Logon authenticates with plain credentials and stores the returned session
// token. A rejected logon leaves the client unauthenticated and returns an
// *AuthenticationError carrying the remote fault.
func (c *Client) Logon(ctx context.Context, username, password string) (string, error) {
	if c.state == StateAuthenticated {
		c.metrics.IncrementCalls(MethodLogon, outcomeRejected)
		return "", &StateError{Method: MethodLogon, State: c.state}
	}

	result, err := c.Send(ctx, MethodLogon, username, password)
	if err != nil {
		var fault *RemoteFault
		if errors.As(err, &fault) {
			return "", &AuthenticationError{Fault: fault}
		}
		return "", err
	}

	token, ok := result.(string)
	if !ok || token == "" {
		return "", unexpected(MethodLogon, result)
	}
	c.token = token
	c.transition(StateAuthenticated)
	return token, nil
}

// Resume attaches a session token obtained earlier, e.g. by another process,
// without calling the service. It is valid whenever the client is not
// already authenticated.
func (c *Client) Resume(token string) error {
	if c.state == StateAuthenticated {
		return &StateError{Method: "resume", State: c.state}
	}
	if token == "" {
		return fmt.Errorf("resume: empty session token")
	}
	c.token = token
	c.transition(StateAuthenticated)
	return nil
}

// Logoff ends the session. The client is closed afterwards whatever the
// service answered, so a stale token is never reused; only a fresh Logon or
// Resume makes it usable again.
func (c *Client) Logoff(ctx context.Context) (bool, error) {
	result, err := c.SendWithSession(ctx, MethodLogoff)
	var stateErr *StateError
	if errors.As(err, &stateErr) {
		return false, err
	}
	c.token = ""
	c.transition(StateClosed)
	if err != nil {
		return false, err
	}
	return decodeBool(MethodLogoff, result)
}

// SendWithSession dispatches method with the session token prepended to args.
// It fails fast with a *StateError unless the client is authenticated.
func (c *Client) SendWithSession(ctx context.Context, method string, args ...any) (any, error) {
	if c.state != StateAuthenticated {
		c.metrics.IncrementCalls(method, outcomeRejected)
		return nil, &StateError{Method: method, State: c.state}
	}
	withToken := make([]any, 0, len(args)+1)
	withToken = append(withToken, c.token)
	withToken = append(withToken, args...)
	return c.Send(ctx, method, withToken...)
}

// Send is the call-dispatch primitive. Entity arguments are serialized with
// ToArray; values that cannot travel on the wire are rejected with an
// *UnsupportedEncodingError before anything is sent. Remote faults come back
// as *RemoteFault; transport errors are returned unchanged.
func (c *Client) Send(ctx context.Context, method string, args ...any) (any, error) {
	encoded := make([]any, len(args))
	for i, arg := range args {
		v, err := encodeArg(arg)
		if err != nil {
			c.metrics.IncrementCalls(method, outcomeRejected)
			return nil, fmt.Errorf("%s: argument %d: %w", method, i, err)
		}
		encoded[i] = v
	}
	return c.dispatch(ctx, method, encoded)
}

func (c *Client) dispatch(ctx context.Context, method string, args []any) (any, error) {
	callID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "ox.call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("rpc.system", "xmlrpc"),
			attribute.String("rpc.method", method),
			attribute.String("ox.call_id", callID),
		),
	)
	defer span.End()

	logger := middleware.LoggerFromContext(ctx, c.logger).With(
		zap.String("method", method),
		zap.String("call_id", callID),
	)

	start := time.Now()
	outcome := outcomeOK
	defer func() {
		c.metrics.RecordCallLatency(method, time.Since(start))
		c.metrics.IncrementCalls(method, outcome)
	}()

	result, err := c.transport.Call(ctx, method, args)
	if err != nil {
		span.RecordError(err)
		var fault *RemoteFault
		if errors.As(err, &fault) {
			outcome = outcomeFault
			if fault.Method == "" {
				fault.Method = method
			}
			span.SetStatus(codes.Error, fault.Message)
			logger.Warn("remote fault",
				zap.Int("code", fault.Code),
				zap.String("message", fault.Message))
			return nil, fault
		}
		outcome = outcomeError
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("transport error", zap.Error(err))
		return nil, err
	}

	logger.Debug("call completed",
		zap.Int("args", len(args)),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}

func (c *Client) transition(s State) {
	c.state = s
	c.metrics.IncrementSessionTransitions(s.String())
	c.logger.Debug("session state changed", zap.Stringer("state", s))
}

// encodeArg reduces a call argument to wire values.
func encodeArg(arg any) (any, error) {
	switch v := arg.(type) {
	case nil:
		return nil, &models.UnsupportedEncodingError{Value: arg}
	case models.Entity:
		if isNilPointer(v) {
			return nil, &models.UnsupportedEncodingError{Value: arg}
		}
		return v.AsRecord().ToArray(), nil
	case models.Image:
		return v.Wire(), nil
	case bool, string, int, int8, int16, int32, int64, uint8, uint16, uint32,
		float32, float64, time.Time, []byte:
		return v, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			enc, err := encodeArg(elem)
			if err != nil {
				return nil, err
			}
			out[k] = enc
		}
		return out, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = elem
		}
		return out, nil
	case []any:
		return encodeSlice(v)
	case []*models.Targeting:
		return encodeSlice(v)
	case []models.Entity:
		return encodeSlice(v)
	case []map[string]any:
		return encodeSlice(v)
	case []int:
		return encodeSlice(v)
	case []string:
		return encodeSlice(v)
	}
	return nil, &models.UnsupportedEncodingError{Value: arg}
}

func encodeSlice[T any](in []T) ([]any, error) {
	out := make([]any, len(in))
	for i, elem := range in {
		enc, err := encodeArg(elem)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func decodeBool(method string, v any) (bool, error) {
	b, ok := models.AsBool(v)
	if !ok {
		return false, unexpected(method, v)
	}
	return b, nil
}

// decodeID accepts only positive identifiers.
func decodeID(method string, v any) (int, error) {
	id, ok := models.AsInt(v)
	if !ok || id <= 0 {
		return 0, unexpected(method, v)
	}
	return id, nil
}

func decodeStruct(method string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, unexpected(method, v)
	}
	return m, nil
}

func decodeList(method string, v any) ([]map[string]any, error) {
	switch list := v.(type) {
	case []map[string]any:
		return list, nil
	case []any:
		rows := make([]map[string]any, len(list))
		for i, elem := range list {
			m, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: element %d: %w", method, i, unexpected(method, elem))
			}
			rows[i] = m
		}
		return rows, nil
	}
	return nil, unexpected(method, v)
}
