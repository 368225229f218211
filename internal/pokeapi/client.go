// Package pokeapi is a read-only client for the PokeAPI REST service.
//
// The client is deliberately thin: one method per endpoint, JSON decoded into
// the wire types in types.go, every request paced by a shared rate limiter so
// a burst of list pages or move lookups stays inside PokeAPI's fair-use policy.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public PokeAPI v2 endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrNotFound is returned (wrapped in a *StatusError) for 404 responses.
var ErrNotFound = errors.New("pokeapi: not found")

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: HTTP %d %s", e.Code, e.URL)
}

// Is lets errors.Is(err, ErrNotFound) match 404s.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client talks to PokeAPI. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GenerationCount returns the number of generations (GET /generation/).
func (c *Client) GenerationCount(ctx context.Context) (int, error) {
	var out ResourceList
	if err := c.get(ctx, "/generation/", nil, &out); err != nil {
		return 0, fmt.Errorf("generation count: %w", err)
	}
	return out.Count, nil
}

// Generation fetches /generation/{n}.
func (c *Client) Generation(ctx context.Context, n int) (*Generation, error) {
	var out Generation
	if err := c.get(ctx, "/generation/"+strconv.Itoa(n)+"/", nil, &out); err != nil {
		return nil, fmt.Errorf("generation %d: %w", n, err)
	}
	return &out, nil
}

// ListPokemon fetches one page of /pokemon/?offset={o}&limit={l}.
func (c *Client) ListPokemon(ctx context.Context, offset, limit int) ([]NamedResource, error) {
	var out ResourceList
	if err := c.get(ctx, "/pokemon/", pageQuery(offset, limit), &out); err != nil {
		return nil, fmt.Errorf("list pokemon [%d,+%d): %w", offset, limit, err)
	}
	return out.Results, nil
}

// SpeciesIndex fetches the full species name index in a single request.
func (c *Client) SpeciesIndex(ctx context.Context, total int) ([]NamedResource, error) {
	var out ResourceList
	if err := c.get(ctx, "/pokemon-species/", pageQuery(0, total), &out); err != nil {
		return nil, fmt.Errorf("species index: %w", err)
	}
	return out.Results, nil
}

// Types lists the type catalog (GET /type/).
func (c *Client) Types(ctx context.Context) ([]NamedResource, error) {
	var out ResourceList
	if err := c.get(ctx, "/type/", nil, &out); err != nil {
		return nil, fmt.Errorf("types: %w", err)
	}
	return out.Results, nil
}

// Type fetches /type/{name}: membership list and damage relations.
func (c *Client) Type(ctx context.Context, name string) (*TypeDetail, error) {
	var out TypeDetail
	if err := c.get(ctx, "/type/"+url.PathEscape(name)+"/", nil, &out); err != nil {
		return nil, fmt.Errorf("type %s: %w", name, err)
	}
	return &out, nil
}

// Pokemon fetches /pokemon/{id}.
func (c *Client) Pokemon(ctx context.Context, id int) (*Pokemon, error) {
	var out Pokemon
	if err := c.get(ctx, "/pokemon/"+strconv.Itoa(id)+"/", nil, &out); err != nil {
		return nil, fmt.Errorf("pokemon %d: %w", id, err)
	}
	return &out, nil
}

// Species fetches a species by the reference URL carried on a Pokemon.
func (c *Client) Species(ctx context.Context, ref string) (*Species, error) {
	var out Species
	if err := c.getURL(ctx, ref, &out); err != nil {
		return nil, fmt.Errorf("species: %w", err)
	}
	return &out, nil
}

// EvolutionChain fetches a chain by the reference URL carried on a Species.
func (c *Client) EvolutionChain(ctx context.Context, ref string) (*EvolutionChain, error) {
	var out EvolutionChain
	if err := c.getURL(ctx, ref, &out); err != nil {
		return nil, fmt.Errorf("evolution chain: %w", err)
	}
	return &out, nil
}

// Ability fetches /ability/{name}.
func (c *Client) Ability(ctx context.Context, name string) (*Ability, error) {
	var out Ability
	if err := c.get(ctx, "/ability/"+url.PathEscape(name)+"/", nil, &out); err != nil {
		return nil, fmt.Errorf("ability %s: %w", name, err)
	}
	return &out, nil
}

// Move fetches /move/{name}.
func (c *Client) Move(ctx context.Context, name string) (*Move, error) {
	var out Move
	if err := c.get(ctx, "/move/"+url.PathEscape(name)+"/", nil, &out); err != nil {
		return nil, fmt.Errorf("move %s: %w", name, err)
	}
	return &out, nil
}

func pageQuery(offset, limit int) url.Values {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.do(ctx, u, out)
}

// getURL follows a reference URL. Relative references resolve against the
// base URL.
func (c *Client) getURL(ctx context.Context, ref string, out any) error {
	if ref == "" {
		return errors.New("empty reference url")
	}
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		ref = c.baseURL + "/" + strings.TrimLeft(ref, "/")
	}
	return c.do(ctx, ref, out)
}

func (c *Client) do(ctx context.Context, u string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dex/0.1 (https://github.com/abelbrown/dex)")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
