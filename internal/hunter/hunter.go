// Package hunter is a client for the Hunter.io domain-search API and the
// classification of the email records it returns.
package hunter

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL = "https://api.hunter.io"

	searchPath = "/v2/domain-search"

	// Hunter bills per result; ten is plenty for a contact section.
	searchLimit = "10"
)

type Client struct {
	// ctx used only for http requests right now
	ctx    context.Context
	apiKey string
	logger *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, apiKey string) *Client {
	return &Client{
		ctx:    ctx,
		apiKey: apiKey,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// DomainSearch looks up published email addresses for the given domain. A
// response without the data.emails path means "no emails found", not an error.
func (c *Client) DomainSearch(domain string) (*DomainSearchResponse, error) {
	q := url.Values{}
	q.Set("domain", domain)
	q.Set("api_key", c.apiKey)
	q.Set("limit", searchLimit)

	raw, err := c.getJSON(c.APIURL+searchPath, q)
	if err != nil {
		return nil, err
	}

	resp := decodeDomainSearch(raw)

	c.logger.Debug("got response from hunter.io",
		zap.String("domain", domain),
		zap.Int("emails", len(resp.Emails)),
	)

	return resp, nil
}
