// Package dfam is a minimal client for the Dfam families API.
package dfam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"secondarymetabolites.org/dfam-cds/internal/data"
)

const (
	DefaultBaseURL = "https://dfam.org/api"
	// DefaultLimit is the result ceiling sent with every search. Dfam does not
	// paginate past it.
	DefaultLimit = 10000
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	Limit      int
}

// New returns a client for baseURL. A zero timeout means requests never time
// out on their own.
func New(baseURL string, limit int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  "dfam-cds",
		Limit:      limit,
	}
}

func (c *Client) SearchURL(clade string, relatives data.Relatives) string {
	params := url.Values{
		"format":          {"summary"},
		"limit":           {strconv.Itoa(c.Limit)},
		"clade":           {clade},
		"clade_relatives": {string(relatives)},
	}
	return c.BaseURL + "/families?" + params.Encode()
}

func (c *Client) FamilyURL(accession string) string {
	return c.BaseURL + "/families/" + url.PathEscape(accession)
}

// Search lists the summaries of all families in clade, subject to the
// client's limit.
func (c *Client) Search(ctx context.Context, clade string, relatives data.Relatives) (*data.SearchResult, error) {
	raw, err := c.get(ctx, c.SearchURL(clade, relatives))
	if err != nil {
		return nil, err
	}

	var result data.SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parsing Dfam search response: %w", err)
	}
	return &result, nil
}

// Fetch returns the raw JSON body of one family record.
func (c *Client) Fetch(ctx context.Context, accession string) ([]byte, error) {
	return c.get(ctx, c.FamilyURL(accession))
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Dfam API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("Dfam API returned HTTP %d for %s: %w", resp.StatusCode, reqURL, data.ErrUnexpectedStatus)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading Dfam response: %w", err)
	}
	return raw, nil
}
