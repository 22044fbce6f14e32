package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is a read-only PostgREST client for a single Supabase project.
type Client struct {
	base string
	key  string
	http *http.Client
}

func NewClient(base, key string) *Client {
	return &Client{
		base: strings.TrimSuffix(strings.TrimSpace(base), "/"),
		key:  key,
		http: http.DefaultClient,
	}
}

// Fetch retrieves the full contents of a table in one 'select=*' query - no
// filtering and no pagination. A zero length result set is not an error.
func (c *Client) Fetch(ctx context.Context, table string) ([]Record, error) {
	url := fmt.Sprintf("%s/rest/v1/%s?select=*", c.base, table)

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	rq.Header.Set("apikey", c.key)
	rq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.key))

	response, err := c.http.Do(rq)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &FetchError{
			Status: response.StatusCode,
			Body:   body,
		}
	}

	records := []Record{}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return records, nil
}
