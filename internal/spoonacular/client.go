// Package spoonacular is a thin client for the Spoonacular recipe-search
// API, the external provider recipes can be imported from.
//
// The server owns none of the provider's logic — no ranking, no rate-limit
// handling. It only consumes two endpoints:
//
//	GET /recipes/complexSearch?query=...&addRecipeInformation=true
//	GET /recipes/{id}/information
//
// and maps the response shapes into the app's own types. The API key travels
// as a query parameter, per the provider's scheme.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

const defaultBaseURL = "https://api.spoonacular.com"

// searchPageSize is how many results a search requests from the provider.
const searchPageSize = 10

// SearchResult is one hit from complexSearch, reduced to the fields the app
// shows: id, title, image, and a plain-text summary.
type SearchResult struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Image   string `json:"image"`
	Summary string `json:"summary"`
}

// RecipeDetails is the portion of the /information response needed to build
// a recipe. The provider returns a much larger object; only these fields are
// unmarshalled.
type RecipeDetails struct {
	Title               string       `json:"title"`
	Image               string       `json:"image"`
	Instructions        string       `json:"instructions"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
}

// Ingredient carries the provider's pre-formatted ingredient line
// ("2 cups of flour").
type Ingredient struct {
	Original string `json:"original"`
}

// Client calls the provider. Base URL and HTTP client are injectable so
// tests can point it at an httptest server.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a complexSearch for the query and returns up to ten results
// with plain-text summaries.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("number", fmt.Sprint(searchPageSize))
	q.Set("addRecipeInformation", "true")
	q.Set("apiKey", c.apiKey)

	var body struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.getJSON(ctx, "/recipes/complexSearch?"+q.Encode(), &body); err != nil {
		return nil, err
	}

	for i := range body.Results {
		body.Results[i].Summary = stripHTML(body.Results[i].Summary)
	}
	if body.Results == nil {
		body.Results = []SearchResult{}
	}

	return body.Results, nil
}

// GetDetails fetches the full information for one provider recipe id.
func (c *Client) GetDetails(ctx context.Context, id int64) (*RecipeDetails, error) {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)

	var details RecipeDetails
	path := fmt.Sprintf("/recipes/%d/information?%s", id, q.Encode())
	if err := c.getJSON(ctx, path, &details); err != nil {
		return nil, err
	}

	return &details, nil
}

func (c *Client) getJSON(ctx context.Context, pathAndQuery string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return fmt.Errorf("spoonacular: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spoonacular: calling provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spoonacular: provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("spoonacular: decoding provider response: %w", err)
	}

	return nil
}

var htmlTag = regexp.MustCompile(`<[^>]+>`)

// stripHTML removes the markup the provider embeds in summaries.
func stripHTML(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, ""))
}
