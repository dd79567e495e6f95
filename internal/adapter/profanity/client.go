// Package profanity implements the network profanity oracle against the
// purgomalum web service.
package profanity

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kitchenpos/internal/interfaces"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

var _ interfaces.ProfanityClient = (*Client)(nil)

// ContainsProfanity asks the oracle whether the text contains profanity. Any
// transport or protocol failure is returned as an error; callers fail the
// enclosing operation rather than assume an answer.
func (c *Client) ContainsProfanity(ctx context.Context, text string) (bool, error) {
	endpoint := fmt.Sprintf("%s/containsprofanity?text=%s", c.baseURL, url.QueryEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build profanity request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("profanity service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("profanity service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read profanity response: %w", err)
	}

	result, err := strconv.ParseBool(strings.TrimSpace(string(body)))
	if err != nil {
		return false, fmt.Errorf("unexpected profanity response %q: %w", string(body), err)
	}
	return result, nil
}
