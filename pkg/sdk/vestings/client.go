package vestings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const vestingQuery = `
query getVesting($address: String!) {
  vestings(where: { id: $address }) {
    id
    version
    token
    beneficiary
    start
    duration
    total
    released
    revoked
    paused
    releaseLogs(orderBy: timestamp, orderDirection: desc) {
      id
      timestamp
      amount
    }
  }
}`

var ErrVestingNotFound = errors.New("vesting not found")

type (
	Client struct {
		client   *http.Client
		endpoint string
	}
)

func NewClient(endpoint string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		client:   client,
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}
}

// GetVesting returns the vesting contract details with its release logs
func (c *Client) GetVesting(ctx context.Context, address string) (*Vesting, error) {
	req, err := c.buildRequest(ctx, "get-vesting", graphQLRequest{
		Query: vestingQuery,
		Variables: map[string]any{
			"address": strings.ToLower(address),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request do: %w", err)
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data vestingsResponse
	if err = json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal body: %w", err)
	}

	if len(data.Errors) > 0 {
		return nil, fmt.Errorf("graphql: %s", data.Errors[0].Message)
	}

	if len(data.Data.Vestings) == 0 {
		return nil, ErrVestingNotFound
	}

	return &data.Data.Vestings[0], nil
}

func (c *Client) buildRequest(ctx context.Context, alias string, payload graphQLRequest) (*http.Request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("alias", alias)

	return req, nil
}
