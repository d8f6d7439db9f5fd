// Package xmlrpc is an XML-RPC over HTTP transport for the ox API client.
package xmlrpc

import (
	"errors"
	"math"
	"time"

	"github.com/patrickwarner/oxclient/internal/models"
)

// ErrMalformedResponse is returned when a response body is not a valid
// methodResponse.
var ErrMalformedResponse = errors.New("malformed xml-rpc response")

// checkValue rejects what XML-RPC cannot carry before anything is sent:
// integers outside <int>'s 32-bit range, NaN and infinite doubles, and types
// other than integers, floats, bools, strings, time.Time, []byte,
// map[string]any and []any.
func checkValue(v any) error {
	switch x := v.(type) {
	case bool, string, time.Time, []byte, float32:
		return nil
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		n, _ := models.AsInt(x)
		if n < math.MinInt32 || n > math.MaxInt32 {
			return &models.UnsupportedEncodingError{Value: v}
		}
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return &models.UnsupportedEncodingError{Value: v}
		}
		return nil
	case map[string]any:
		for _, elem := range x {
			if err := checkValue(elem); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, elem := range x {
			if err := checkValue(elem); err != nil {
				return err
			}
		}
		return nil
	}
	return &models.UnsupportedEncodingError{Value: v}
}

// normalize converts the int64 integers the decoder produces to int, the
// integer type oxapi.Transport results carry.
func normalize(v any) any {
	switch x := v.(type) {
	case int64:
		return int(x)
	case map[string]any:
		for k, elem := range x {
			x[k] = normalize(elem)
		}
		return x
	case []any:
		for i, elem := range x {
			x[i] = normalize(elem)
		}
		return x
	}
	return v
}
