package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/httpapi"
	"github.com/pawurb/channels-console-go/stats"
)

const (
	secondsTimeout = time.Second
	pollInterval   = 5 * time.Millisecond
)

func newTestServer(t *testing.T) (*httptest.Server, *collector.Collector) {
	c := collector.New()
	t.Cleanup(c.Close)
	s := httpapi.New(c)
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts, c
}

func TestChannelsEndpointReturnsJSON(t *testing.T) {
	ts, c := newTestServer(t)

	c.Emit(collector.Created{ID: 1, Source: "a.go:1", Kind: stats.KindChannel, Channel: stats.Bounded(4)})
	waitForEndpoint(t, c, 1)

	resp, err := http.Get(ts.URL + "/channels")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body collector.ChannelsJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Channels, 1)
	assert.Equal(t, uint64(1), body.Channels[0].ID)
}

func TestStreamsEndpointReturnsJSON(t *testing.T) {
	ts, c := newTestServer(t)

	c.Emit(collector.Created{ID: 1, Source: "a.go:1", Kind: stats.KindStream})
	waitForEndpoint(t, c, 1)

	resp, err := http.Get(ts.URL + "/streams")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body collector.StreamsJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Streams, 1)
}

func TestChannelLogsNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/channels/999/logs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestChannelLogsBadID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/channels/not-a-number/logs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChannelLogsFound(t *testing.T) {
	ts, c := newTestServer(t)

	c.Emit(collector.Created{ID: 1, Source: "a.go:1", Kind: stats.KindChannel, Channel: stats.Bounded(4)})
	c.Emit(collector.MessageSent{ID: 1, Timestamp: 1})
	waitForEndpoint(t, c, 1)

	resp, err := http.Get(ts.URL + "/channels/1/logs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body collector.ChannelLogs
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "1", body.ID)
}

func waitForEndpoint(t *testing.T, c *collector.Collector, id uint64) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, cs := range c.SortedChannelStats() {
			if cs.ID == id {
				return true
			}
		}
		for _, ss := range c.SortedStreamStats() {
			if ss.ID == id {
				return true
			}
		}
		return false
	}, secondsTimeout, pollInterval)
}
