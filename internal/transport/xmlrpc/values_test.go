package xmlrpc

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/oxclient/internal/models"
)

// respondWith serves body to every call and records the last request body.
func respondWith(t *testing.T, body string) (*Client, *string) {
	t.Helper()
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second, nil), &got
}

const okResponse = `<?xml version="1.0"?><methodResponse><params><param><value><boolean>1</boolean></value></param></params></methodResponse>`

func TestCallEncodesArguments(t *testing.T) {
	c, got := respondWith(t, okResponse)

	_, err := c.Call(context.Background(), "ox.addCampaign", []any{
		"T",
		map[string]any{"campaignName": "Spring & Summer", "advertiserId": 12},
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		[]any{1, "x"},
	})
	require.NoError(t, err)

	doc := *got
	assert.Contains(t, doc, "<methodName>ox.addCampaign</methodName>")
	assert.Contains(t, doc, "<param><value><string>T</string></value></param>")
	assert.Contains(t, doc, "<name>advertiserId</name><value><int>12</int></value>")
	assert.Contains(t, doc, "Spring &amp; Summer")
	assert.Contains(t, doc, "20240501T00:00:00")
	assert.Contains(t, doc, "<int>1</int>")
}

func TestCallRejectsUnsupportedArguments(t *testing.T) {
	c, got := respondWith(t, okResponse)

	for _, arg := range []any{
		struct{}{},
		int64(1) << 40,
		math.NaN(),
		map[string]any{"x": nil},
		[]any{math.Inf(1)},
	} {
		_, err := c.Call(context.Background(), "ox.echo", []any{arg})
		assert.ErrorIs(t, err, models.ErrUnsupportedEncoding, "%#v", arg)
	}
	assert.Empty(t, *got, "nothing may be sent")
}

func TestCallDecodesResult(t *testing.T) {
	c, _ := respondWith(t, `<?xml version="1.0"?>
<methodResponse>
  <params>
    <param>
      <value>
        <array><data>
          <value><struct>
            <member><name>zoneId</name><value><int>7</int></value></member>
            <member><name>zoneName</name><value><string>Sidebar</string></value></member>
            <member><name>revenue</name><value><double>2.25</double></value></member>
            <member><name>day</name><value><dateTime.iso8601>20240502T00:00:00</dateTime.iso8601></value></member>
            <member><name>active</name><value><boolean>1</boolean></value></member>
            <member><name>count</name><value><i4>3</i4></value></member>
          </struct></value>
        </data></array>
      </value>
    </param>
  </params>
</methodResponse>`)

	result, err := c.Call(context.Background(), "ox.getZoneListByPublisherId", []any{"T", 3})
	require.NoError(t, err)

	list, ok := result.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	row, ok := list[0].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, 7, row["zoneId"])
	assert.Equal(t, 3, row["count"])
	assert.Equal(t, "Sidebar", row["zoneName"])
	assert.Equal(t, 2.25, row["revenue"])
	assert.Equal(t, true, row["active"])
	day, ok := row["day"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, "2024-05-02", day.Format(models.DayLayout))
}

func TestCallMalformedResponse(t *testing.T) {
	c, _ := respondWith(t, "not xml")
	_, err := c.Call(context.Background(), "ox.getZone", []any{"T", 7})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNormalize(t *testing.T) {
	in := map[string]any{"a": int64(1), "b": []any{int64(2), "x"}, "c": 1.5}
	assert.Equal(t, map[string]any{"a": 1, "b": []any{2, "x"}, "c": 1.5}, normalize(in))
}
