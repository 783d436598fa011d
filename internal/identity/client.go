// Package identity resolves external user ids to display profiles.
// Accounts live in a separate identity service; this package is a thin
// HTTP client over its REST API with a Redis cache in front, so that
// listing reservations does not hammer the remote directory.
package identity

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/url"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/room-reservation/internal/model"
)

// ErrNotFound is returned when the identity service has no account for
// a requested user id.
var ErrNotFound = fmt.Errorf("identity: user not found")

const (
    defaultTimeout = 10 * time.Second
    cacheTTL       = 5 * time.Minute
)

// Client talks to the identity service. A nil Redis client disables
// caching; every lookup then goes to the remote API.
type Client struct {
    baseURL string
    apiKey  string
    httpc   *http.Client
    cache   *redis.Client
    ttl     time.Duration
}

// New constructs a Client for the given base URL (scheme and host, no
// trailing slash required) and bearer API key.
func New(baseURL, apiKey string, cache *redis.Client) *Client {
    return &Client{
        baseURL: baseURL,
        apiKey:  apiKey,
        httpc:   &http.Client{Timeout: defaultTimeout},
        cache:   cache,
        ttl:     cacheTTL,
    }
}

// profile is the wire shape the identity service returns per user.
type profile struct {
    ID        string `json:"id"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
}

func (p profile) toUser() (model.User, error) {
    id, err := model.NewUserID(p.ID)
    if err != nil {
        return model.User{}, fmt.Errorf("identity: bad user id in response: %w", err)
    }
    return model.User{UserID: id, FirstName: p.FirstName, LastName: p.LastName}, nil
}

// User resolves a single user id, consulting the cache first.
func (c *Client) User(ctx context.Context, id model.UserID) (model.User, error) {
    if usr, ok := c.fromCache(ctx, id); ok {
        return usr, nil
    }
    var p profile
    if err := c.get(ctx, "/v1/users/"+url.PathEscape(string(id)), nil, &p); err != nil {
        return model.User{}, err
    }
    usr, err := p.toUser()
    if err != nil {
        return model.User{}, err
    }
    c.toCache(ctx, usr)
    return usr, nil
}

// Users resolves a batch of user ids. Ids already cached are served
// from Redis; the rest are fetched in one request. When any requested
// id cannot be resolved the whole call fails, so callers never see a
// partial result.
func (c *Client) Users(ctx context.Context, ids []model.UserID) ([]model.User, error) {
    out := make([]model.User, 0, len(ids))
    missing := make([]model.UserID, 0)
    for _, id := range ids {
        if usr, ok := c.fromCache(ctx, id); ok {
            out = append(out, usr)
            continue
        }
        missing = append(missing, id)
    }
    if len(missing) == 0 {
        return out, nil
    }

    q := url.Values{}
    for _, id := range missing {
        q.Add("user_id", string(id))
    }
    var body struct {
        Users      []profile `json:"users"`
        TotalCount int       `json:"total_count"`
    }
    if err := c.get(ctx, "/v1/users", q, &body); err != nil {
        return nil, err
    }

    fetched := make(map[model.UserID]model.User, len(body.Users))
    for _, p := range body.Users {
        usr, err := p.toUser()
        if err != nil {
            return nil, err
        }
        fetched[usr.UserID] = usr
        c.toCache(ctx, usr)
    }
    for _, id := range missing {
        usr, ok := fetched[id]
        if !ok {
            return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
        }
        out = append(out, usr)
    }
    return out, nil
}

// get performs an authenticated GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
    u := c.baseURL + path
    if len(q) > 0 {
        u += "?" + q.Encode()
    }
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
    if err != nil {
        return fmt.Errorf("identity: build request: %w", err)
    }
    req.Header.Set("Authorization", "Bearer "+c.apiKey)
    req.Header.Set("Accept", "application/json")

    resp, err := c.httpc.Do(req)
    if err != nil {
        return fmt.Errorf("identity: request failed: %w", err)
    }
    defer resp.Body.Close()

    switch {
    case resp.StatusCode == http.StatusNotFound:
        return ErrNotFound
    case resp.StatusCode != http.StatusOK:
        return fmt.Errorf("identity: unexpected status %d from %s", resp.StatusCode, path)
    }
    if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
        return fmt.Errorf("identity: decode response: %w", err)
    }
    return nil
}

func cacheKey(id model.UserID) string {
    return "identity:user:" + string(id)
}

func (c *Client) fromCache(ctx context.Context, id model.UserID) (model.User, bool) {
    if c.cache == nil {
        return model.User{}, false
    }
    raw, err := c.cache.Get(ctx, cacheKey(id)).Bytes()
    if err != nil {
        return model.User{}, false
    }
    var usr model.User
    if err := json.Unmarshal(raw, &usr); err != nil {
        return model.User{}, false
    }
    return usr, true
}

func (c *Client) toCache(ctx context.Context, usr model.User) {
    if c.cache == nil {
        return
    }
    raw, err := json.Marshal(usr)
    if err != nil {
        return
    }
    // Cache write failures are not worth failing the lookup over.
    _ = c.cache.Set(ctx, cacheKey(usr.UserID), raw, c.ttl).Err()
}
