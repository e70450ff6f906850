package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pawurb/channels-console-go/collector"
)

var httpClient = &http.Client{Timeout: 1500 * time.Millisecond}

func (a *App) baseURL() string {
	return fmt.Sprintf("http://127.0.0.1:%s", a.metricsPort)
}

func fetchJSON(url string, out any) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var errNotFound = fmt.Errorf("not found")

func (a *App) fetchChannels() ([]collector.ChannelStat, error) {
	var body collector.ChannelsJSON
	if err := fetchJSON(a.baseURL()+"/channels", &body); err != nil {
		return nil, fmt.Errorf("failed to fetch metrics: %w", err)
	}
	return body.Channels, nil
}

func (a *App) fetchChannelLogs(id uint64) (collector.ChannelLogs, error) {
	var body collector.ChannelLogs
	if err := fetchJSON(fmt.Sprintf("%s/channels/%d/logs", a.baseURL(), id), &body); err != nil {
		return collector.ChannelLogs{}, fmt.Errorf("failed to fetch logs: %w", err)
	}
	return body, nil
}
