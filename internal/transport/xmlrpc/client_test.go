package xmlrpc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/oxapi"
)

func TestClientCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/www/api/v2/xmlrpc/", r.URL.Path)
		assert.Equal(t, "text/xml", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(body), "<methodName>ox.logon</methodName>")
		assert.Contains(t, string(body), "<string>alice</string>")

		w.Header().Set("Content-Type", "text/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0"?><methodResponse><params><param><value><string>T</string></value></param></params></methodResponse>`)
	}))
	defer server.Close()

	c := NewClient(server.URL+"/www/api/v2/xmlrpc/", time.Second, zap.NewNop())
	result, err := c.Call(context.Background(), "ox.logon", []any{"alice", "secret"})
	require.NoError(t, err)
	assert.Equal(t, "T", result)
}

func TestClientCallFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>801</int></value></member>
<member><name>faultString</name><value><string>Username or password is incorrect</string></value></member>
</struct></value></fault></methodResponse>`)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, nil)
	_, err := c.Call(context.Background(), "ox.logon", []any{"alice", "wrong"})

	var fault *oxapi.RemoteFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "ox.logon", fault.Method)
	assert.Equal(t, 801, fault.Code)
}

func TestClientCallHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second, nil)
	_, err := c.Call(context.Background(), "ox.getZone", []any{"T", 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 503")
	assert.NotErrorIs(t, err, oxapi.ErrRemoteFault)
}

func TestClientCallTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := NewClient(server.URL, 20*time.Millisecond, nil)
	_, err := c.Call(context.Background(), "ox.getZone", []any{"T", 7})
	require.Error(t, err)
}

func TestClientThroughOxapi(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch {
		case strings.Contains(string(body), "ox.logon"):
			_, _ = io.WriteString(w, `<methodResponse><params><param><value><string>T</string></value></param></params></methodResponse>`)
		case strings.Contains(string(body), "ox.getZone"):
			assert.Contains(t, string(body), "<param><value><string>T</string></value></param><param><value><int>7</int></value></param>")
			_, _ = io.WriteString(w, `<methodResponse><params><param><value><struct>
<member><name>zoneId</name><value><int>7</int></value></member>
<member><name>agencyId</name><value><int>2</int></value></member>
<member><name>zoneName</name><value><string>Sidebar</string></value></member>
</struct></value></param></params></methodResponse>`)
		}
	}))
	defer server.Close()

	client := oxapi.NewClient(NewClient(server.URL, time.Second, nil), nil, nil)
	ctx := context.Background()
	_, err := client.Logon(ctx, "alice", "secret")
	require.NoError(t, err)

	zone, err := client.GetZone(ctx, 7)
	require.NoError(t, err)
	name, ok, err := zone.GetString("zoneName")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Sidebar", name)
	set, _ := zone.IsSet("websiteId")
	assert.False(t, set)
}
