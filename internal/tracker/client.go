package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/torrust-index/internal/model"
)

// maxResponseBytes caps how much of a tracker response is read.
const maxResponseBytes = 1 << 20

// TorrentStats is the swarm summary the tracker reports for one torrent.
type TorrentStats struct {
	InfoHash  string `json:"info_hash"`
	Seeders   int64  `json:"seeders"`
	Completed int64  `json:"completed"`
	Leechers  int64  `json:"leechers"`
}

// keyResponse is the body returned by the key generation endpoint.
type keyResponse struct {
	Key        string `json:"key"`
	ValidUntil int64  `json:"valid_until"`
}

// Client is a REST client for the tracker API.
// It is safe for concurrent use.
type Client struct {
	// baseURL is the API root, e.g. "http://localhost:1212".
	baseURL *url.URL

	// token is the admin access token appended to every request.
	token string

	// httpClient performs the requests.
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	timeout    time.Duration
	proxyAddr  string
	httpClient *http.Client
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithProxy routes requests through a SOCKS5 proxy at "host:port".
// An empty address means a direct connection.
func WithProxy(address string) ClientOption {
	return func(o *clientOptions) {
		o.proxyAddr = address
	}
}

// WithHTTPClient replaces the HTTP client. Timeout and proxy options are
// ignored when it is set.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient creates a client for the tracker API at apiURL.
// It does not contact the tracker.
func NewClient(apiURL, token string, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiURL) == "" {
		return nil, ErrNoTrackerURL
	}
	base, err := url.Parse(strings.TrimRight(apiURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid tracker api url: %w", err)
	}

	o := clientOptions{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient, err = newHTTPClient(o.proxyAddr, o.timeout)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		baseURL:    base,
		token:      token,
		httpClient: httpClient,
	}, nil
}

// newHTTPClient builds an HTTP client, optionally dialing through SOCKS5.
func newHTTPClient(proxyAddr string, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	}

	if proxyAddr != "" {
		if !isValidProxyAddress(proxyAddr) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

// isValidProxyAddress checks if the address is in "host:port" form with a
// port between 1 and 65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

// GetTorrentStats returns the tracker's statistics for infoHash.
// It returns ErrTorrentNotTracked if the tracker does not know the torrent.
func (c *Client) GetTorrentStats(ctx context.Context, infoHash string) (*TorrentStats, error) {
	infoHash = model.NormalizeInfoHash(infoHash)
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/torrent/"+url.PathEscape(infoHash))
	if err != nil {
		return nil, err
	}

	var stats TorrentStats
	if err := c.do(req, &stats); err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrTorrentNotTracked, infoHash)
		}
		return nil, err
	}
	if stats.InfoHash == "" {
		stats.InfoHash = infoHash
	}
	return &stats, nil
}

// GenerateKey asks the tracker for a new key valid for ttl.
func (c *Client) GenerateKey(ctx context.Context, ttl time.Duration) (model.TrackerKey, error) {
	seconds := int64(ttl / time.Second)
	if seconds <= 0 {
		return model.TrackerKey{}, fmt.Errorf("key ttl must be at least one second, got %v", ttl)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/key/"+strconv.FormatInt(seconds, 10))
	if err != nil {
		return model.TrackerKey{}, err
	}

	var resp keyResponse
	if err := c.do(req, &resp); err != nil {
		return model.TrackerKey{}, err
	}
	if resp.Key == "" {
		return model.TrackerKey{}, errors.New("tracker returned an empty key")
	}

	return model.TrackerKey{
		Key:        resp.Key,
		ValidUntil: time.Unix(resp.ValidUntil, 0).UTC(),
	}, nil
}

// newRequest builds a request for path with the access token attached.
func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	q := u.Query()
	if c.token != "" {
		q.Set("token", c.token)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tracker request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// statusError carries a non-success HTTP status.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.code)
	}
	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatus, e.code, e.body)
}

func (e *statusError) Unwrap() error { return ErrUnexpectedStatus }

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.code == http.StatusNotFound
}

// do sends req and decodes a JSON body into out.
// The request URL is not included in errors because it carries the token.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			return fmt.Errorf("tracker request failed: %w", ue.Err)
		}
		return fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read tracker response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode tracker response: %w", err)
	}
	return nil
}
