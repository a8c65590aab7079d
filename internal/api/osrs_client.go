package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultHiscoreURL   = "https://secure.runescape.com/m=hiscore_oldschool"
	DefaultCatalogueURL = "https://secure.runescape.com/m=itemdb_oldschool"

	// The catalogue is always queried for category 1 (all items), first page.
	catalogueCategory = "1"
	cataloguePage     = "1"

	opPlayerStats = "player stats"
	opItems       = "items"
)

// ErrPlayerNotFound is wrapped by the FetchError returned when the hiscore
// endpoint answers 404, which is how it reports unknown or unranked names.
var ErrPlayerNotFound = errors.New("player not found")

// OSRSClient talks to the Old School RuneScape hiscore and Grand Exchange
// catalogue endpoints. It holds no per-call state and is safe for concurrent
// use.
type OSRSClient struct {
	httpClient   *http.Client
	hiscoreURL   string
	catalogueURL string
}

// NewOSRSClient returns a client for the given base URLs. Empty URLs fall
// back to the public endpoints; a zero timeout keeps the transport default.
func NewOSRSClient(hiscoreURL, catalogueURL string, timeout time.Duration) *OSRSClient {
	if hiscoreURL == "" {
		hiscoreURL = DefaultHiscoreURL
	}
	if catalogueURL == "" {
		catalogueURL = DefaultCatalogueURL
	}

	return &OSRSClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		hiscoreURL:   strings.TrimRight(hiscoreURL, "/"),
		catalogueURL: strings.TrimRight(catalogueURL, "/"),
	}
}

// LookupPlayer fetches the hiscore entry for playerName and returns its
// skills in the order the endpoint lists them.
func (c *OSRSClient) LookupPlayer(ctx context.Context, playerName string) ([]Skill, error) {
	body, err := c.get(ctx, opPlayerStats, c.hiscoreEndpoint(playerName))
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
			fe.Err = fmt.Errorf("%w (status %d)", ErrPlayerNotFound, fe.StatusCode)
		}
		return nil, err
	}

	var parsed hiscoreResponse
	if err := decodeEnvelope(opPlayerStats, body, &parsed); err != nil {
		return nil, err
	}

	return mapHiscoreToSkills(parsed), nil
}

// SearchItems lists the first catalogue page of items whose name starts
// with letter. The letter is lower-cased because the catalogue only
// matches lower-case alpha values.
func (c *OSRSClient) SearchItems(ctx context.Context, letter string) ([]Item, error) {
	body, err := c.get(ctx, opItems, c.catalogueEndpoint(letter))
	if err != nil {
		return nil, err
	}

	var parsed catalogueResponse
	if err := decodeEnvelope(opItems, body, &parsed); err != nil {
		return nil, err
	}

	return mapCatalogueToItems(parsed), nil
}

// hiscoreEndpoint embeds playerName as-is; query escaping only keeps the
// request line valid, the server decodes back the exact name.
func (c *OSRSClient) hiscoreEndpoint(playerName string) string {
	return fmt.Sprintf("%s/index_lite.json?player=%s", c.hiscoreURL, url.QueryEscape(playerName))
}

func (c *OSRSClient) catalogueEndpoint(letter string) string {
	return fmt.Sprintf("%s/api/catalogue/items.json?category=%s&alpha=%s&page=%s",
		c.catalogueURL, catalogueCategory, url.QueryEscape(strings.ToLower(letter)), cataloguePage)
}

// get performs a single GET and returns the full body. Every failure before
// the body is in hand is reported as a *FetchError.
func (c *OSRSClient) get(ctx context.Context, op, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	return body, nil
}
