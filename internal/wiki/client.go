// Package wiki implements a minimal MediaWiki Action API client covering
// topic search and external-reference retrieval.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Searcher returns page titles related to a free-text query. Fewer titles
// than requested may be returned; an empty result is not an error.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// PageFetcher resolves a title and returns its external references.
type PageFetcher interface {
	FetchPage(ctx context.Context, title string, autoSuggest bool) (Page, error)
}

// Page is the normalized result of a page fetch. Title is the resolved page
// title, which may differ from the requested one after redirects.
type Page struct {
	Title      string
	References []string
}

// DefaultAPIURL is the English Wikipedia Action API endpoint.
const DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

const defaultTimeout = 15 * time.Second

// Config controls the API client.
type Config struct {
	APIURL    string
	UserAgent string
	Timeout   time.Duration
}

// Client talks to a MediaWiki Action API endpoint over plain HTTP GETs.
type Client struct {
	apiURL string
	ua     string
	http   *http.Client
	logger *zap.Logger
}

// NewClient constructs a Client, falling back to the English Wikipedia
// endpoint and a default request timeout where the config is silent.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiURL: cfg.APIURL,
		ua:     cfg.UserAgent,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type apiPage struct {
	Title     string            `json:"title"`
	Missing   bool              `json:"missing"`
	Invalid   bool              `json:"invalid"`
	PageProps map[string]string `json:"pageprops"`
	ExtLinks  []struct {
		URL string `json:"url"`
	} `json:"extlinks"`
	Links []struct {
		Title string `json:"title"`
	} `json:"links"`
}

type apiResponse struct {
	Error    *apiError         `json:"error"`
	Continue map[string]string `json:"continue"`
	Query    struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
		Pages []apiPage `json:"pages"`
	} `json:"query"`
}

// Search queries the full-text search endpoint and returns matching titles
// in ranking order, at most limit of them.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("srprop", "")

	resp, err := c.do(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// FetchPage resolves title and returns its external links in API order,
// following continuation until the list is exhausted. With autoSuggest set,
// the title is first replaced by the top search suggestion; without it the
// literal title must match exactly (redirects are still followed).
//
// Missing pages yield a *PageError and disambiguation pages a
// *DisambiguationError; every other failure is returned wrapped.
func (c *Client) FetchPage(ctx context.Context, title string, autoSuggest bool) (Page, error) {
	if autoSuggest {
		suggestions, err := c.Search(ctx, title, 1)
		if err != nil {
			return Page{}, fmt.Errorf("suggest title for %q: %w", title, err)
		}
		if len(suggestions) > 0 {
			title = suggestions[0]
		}
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("redirects", "1")
	params.Set("prop", "info|pageprops|extlinks")
	params.Set("ppprop", "disambiguation")
	params.Set("ellimit", "max")

	var page Page
	for {
		resp, err := c.do(ctx, params)
		if err != nil {
			return Page{}, fmt.Errorf("fetch page %q: %w", title, err)
		}
		if len(resp.Query.Pages) == 0 {
			return Page{}, &PageError{Title: title}
		}
		p := resp.Query.Pages[0]
		if p.Missing || p.Invalid {
			return Page{}, &PageError{Title: title}
		}
		if _, ok := p.PageProps["disambiguation"]; ok {
			options, err := c.disambiguationOptions(ctx, p.Title)
			if err != nil {
				c.logger.Warn("could not list disambiguation options",
					zap.String("title", title),
					zap.Error(err),
				)
			}
			return Page{}, &DisambiguationError{Title: title, Options: options}
		}

		if page.Title == "" {
			page.Title = p.Title
		}
		for _, link := range p.ExtLinks {
			page.References = append(page.References, link.URL)
		}

		cont, ok := resp.Continue["elcontinue"]
		if !ok {
			break
		}
		params.Set("elcontinue", cont)
		params.Set("continue", resp.Continue["continue"])
	}
	return page, nil
}

// disambiguationOptions lists the article-namespace links of a
// disambiguation page, which are its candidate resolutions.
func (c *Client) disambiguationOptions(ctx context.Context, title string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "links")
	params.Set("plnamespace", "0")
	params.Set("pllimit", "max")

	resp, err := c.do(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Query.Pages) == 0 {
		return nil, nil
	}
	page := resp.Query.Pages[0]
	options := make([]string, 0, len(page.Links))
	for _, link := range page.Links {
		options = append(options, link.Title)
	}
	return options, nil
}

func (c *Client) do(ctx context.Context, params url.Values) (*apiResponse, error) {
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	defer res.Body.Close() //nolint:errcheck // read-only body

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api status %d", res.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode api response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", parsed.Error.Code, parsed.Error.Info)
	}
	return &parsed, nil
}
