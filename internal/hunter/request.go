package hunter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const contentType = "application/json"

// getJSON makes a GET request and decodes the body into a generic document.
func (c *Client) getJSON(rawURL string, q url.Values) (map[string]any, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.Redacted()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}

	return decoded, nil
}

// decodeDomainSearch walks the data.emails path of a raw payload. Entries
// that do not decode into a record are dropped; missing fields stay empty.
func decodeDomainSearch(raw map[string]any) *DomainSearchResponse {
	resp := &DomainSearchResponse{}
	if raw == nil {
		return resp
	}

	data, ok := raw["data"].(map[string]any)
	if !ok {
		return resp
	}

	entries, ok := data["emails"].([]any)
	if !ok {
		return resp
	}

	for _, entry := range entries {
		var record *EmailRecord
		cfg := &mapstructure.DecoderConfig{
			Metadata: nil,
			Result:   &record,
			TagName:  "json",
		}
		decoder, _ := mapstructure.NewDecoder(cfg)
		if err := decoder.Decode(entry); err != nil || record == nil {
			continue
		}
		resp.Emails = append(resp.Emails, record)
	}

	return resp
}
