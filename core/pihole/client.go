package pihole

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client defines the remote operations the reconciler performs against one
// Pi-hole instance.
type Client interface {
	// FetchConfig returns the instance's configuration document.
	FetchConfig(ctx context.Context) (map[string]any, error)
	// FetchLists returns all subscribed lists.
	FetchLists(ctx context.Context) ([]List, error)
	// FetchDomains returns all domain entries.
	FetchDomains(ctx context.Context) ([]Domain, error)
	// FetchGroups returns all groups.
	FetchGroups(ctx context.Context) ([]Group, error)
	// FetchClients returns all client definitions.
	FetchClients(ctx context.Context) ([]ClientEntry, error)
	// PatchConfig applies a nested configuration patch in one call.
	PatchConfig(ctx context.Context, patch map[string]any) error
	// CreateList subscribes a new list.
	CreateList(ctx context.Context, list List) error
	// ReplaceList overwrites the list stored under the same address.
	ReplaceList(ctx context.Context, list List) error
	// DeleteLists removes the given lists in one batch call.
	DeleteLists(ctx context.Context, lists []List) error
	// CreateDomain adds a new domain entry under its type and kind.
	CreateDomain(ctx context.Context, domain Domain) error
	// ReplaceDomain overwrites the entry stored under the same identity.
	ReplaceDomain(ctx context.Context, domain Domain) error
	// DeleteDomains removes the given domain entries in one batch call.
	DeleteDomains(ctx context.Context, domains []Domain) error
	// CreateGroup adds a new group.
	CreateGroup(ctx context.Context, group Group) error
	// ReplaceGroup overwrites the group stored under the same name.
	ReplaceGroup(ctx context.Context, group Group) error
	// DeleteGroup removes one group; the API has no batch endpoint for groups.
	DeleteGroup(ctx context.Context, group Group) error
	// CreateClient adds a new client definition.
	CreateClient(ctx context.Context, client ClientEntry) error
	// ReplaceClient overwrites the client stored under the same identifier.
	ReplaceClient(ctx context.Context, client ClientEntry) error
	// DeleteClients removes the given clients in one batch call.
	DeleteClients(ctx context.Context, clients []ClientEntry) error
	// RunGravity rebuilds the gravity database from the subscribed lists.
	RunGravity(ctx context.Context) error
	// Close releases the API session. Safe to call more than once.
	Close(ctx context.Context) error
}

// NewClient creates a client for one Pi-hole instance based on the
// configuration. No network traffic happens until the first call.
func NewClient(cfg Config) (Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("pihole: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("pihole: invalid base url %q: %w", cfg.BaseURL, err)
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}
	if !cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &restClient{
		baseURL:  baseURL,
		password: cfg.Password,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

type restClient struct {
	baseURL  string
	password string
	http     *http.Client

	mu  sync.Mutex
	sid string
}

type errorEnvelope struct {
	Error struct {
		Key     string `json:"key"`
		Message string `json:"message"`
	} `json:"error"`
}

// session returns the session id, authenticating on first use.
func (c *restClient) session(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sid != "" {
		return c.sid, nil
	}

	var out struct {
		Session struct {
			Valid bool   `json:"valid"`
			SID   string `json:"sid"`
		} `json:"session"`
	}
	payload := map[string]any{"password": c.password}
	if err := c.send(ctx, http.MethodPost, "/api/auth", "", payload, &out); err != nil {
		return "", fmt.Errorf("authenticate against %s: %w", c.baseURL, err)
	}
	if !out.Session.Valid || out.Session.SID == "" {
		return "", &APIError{StatusCode: http.StatusUnauthorized, Message: "session rejected, check the configured password"}
	}
	c.sid = out.Session.SID
	return c.sid, nil
}

// do performs one authenticated API call.
func (c *restClient) do(ctx context.Context, method, path string, payload, out any) error {
	sid, err := c.session(ctx)
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, sid, payload, out)
}

// send performs one HTTP round trip and decodes the response into out when
// out is non-nil. Non-2xx responses become *APIError.
func (c *restClient) send(ctx context.Context, method, path, sid string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.Header.Set("X-FTL-SID", sid)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Key = envelope.Error.Key
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *restClient) FetchConfig(ctx context.Context) (map[string]any, error) {
	var out struct {
		Config map[string]any `json:"config"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/config", nil, &out); err != nil {
		return nil, err
	}
	return out.Config, nil
}

func (c *restClient) FetchLists(ctx context.Context) ([]List, error) {
	var out struct {
		Lists []List `json:"lists"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/lists", nil, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

func (c *restClient) FetchDomains(ctx context.Context) ([]Domain, error) {
	var out struct {
		Domains []Domain `json:"domains"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/domains", nil, &out); err != nil {
		return nil, err
	}
	return out.Domains, nil
}

func (c *restClient) FetchGroups(ctx context.Context) ([]Group, error) {
	var out struct {
		Groups []Group `json:"groups"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

func (c *restClient) FetchClients(ctx context.Context) ([]ClientEntry, error) {
	var out struct {
		Clients []ClientEntry `json:"clients"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/clients", nil, &out); err != nil {
		return nil, err
	}
	return out.Clients, nil
}

func (c *restClient) PatchConfig(ctx context.Context, patch map[string]any) error {
	payload := map[string]any{"config": patch}
	return c.do(ctx, http.MethodPatch, "/api/config", payload, nil)
}

func (c *restClient) CreateList(ctx context.Context, list List) error {
	payload := map[string]any{
		"address": list.Address,
		"type":    list.Type,
		"comment": list.Comment,
		"groups":  list.EffectiveGroups(),
		"enabled": list.IsEnabled(),
	}
	return c.do(ctx, http.MethodPost, "/api/lists", payload, nil)
}

func (c *restClient) ReplaceList(ctx context.Context, list List) error {
	payload := map[string]any{
		"type":    list.Type,
		"comment": list.Comment,
		"groups":  list.EffectiveGroups(),
		"enabled": list.IsEnabled(),
	}
	return c.do(ctx, http.MethodPut, "/api/lists/"+url.PathEscape(list.Address), payload, nil)
}

func (c *restClient) DeleteLists(ctx context.Context, lists []List) error {
	if len(lists) == 0 {
		return nil
	}
	items := make([]batchDeleteItem, 0, len(lists))
	for _, list := range lists {
		items = append(items, batchDeleteItem{Item: list.Address, Type: list.Type})
	}
	return c.do(ctx, http.MethodPost, "/api/lists:batchDelete", items, nil)
}

func (c *restClient) CreateDomain(ctx context.Context, domain Domain) error {
	payload := map[string]any{
		"domain":  domain.Domain,
		"comment": domain.Comment,
		"groups":  domain.EffectiveGroups(),
		"enabled": domain.IsEnabled(),
	}
	return c.do(ctx, http.MethodPost, domainPath(domain, false), payload, nil)
}

func (c *restClient) ReplaceDomain(ctx context.Context, domain Domain) error {
	payload := map[string]any{
		"comment": domain.Comment,
		"groups":  domain.EffectiveGroups(),
		"enabled": domain.IsEnabled(),
	}
	return c.do(ctx, http.MethodPut, domainPath(domain, true), payload, nil)
}

func (c *restClient) DeleteDomains(ctx context.Context, domains []Domain) error {
	if len(domains) == 0 {
		return nil
	}
	items := make([]batchDeleteItem, 0, len(domains))
	for _, domain := range domains {
		items = append(items, batchDeleteItem{Item: domain.Domain, Type: domain.Type, Kind: domain.Kind})
	}
	return c.do(ctx, http.MethodPost, "/api/domains:batchDelete", items, nil)
}

func (c *restClient) CreateGroup(ctx context.Context, group Group) error {
	payload := map[string]any{
		"name":    group.Name,
		"comment": group.Comment,
		"enabled": group.IsEnabled(),
	}
	return c.do(ctx, http.MethodPost, "/api/groups", payload, nil)
}

func (c *restClient) ReplaceGroup(ctx context.Context, group Group) error {
	payload := map[string]any{
		"comment": group.Comment,
		"enabled": group.IsEnabled(),
	}
	return c.do(ctx, http.MethodPut, "/api/groups/"+url.PathEscape(group.Name), payload, nil)
}

func (c *restClient) DeleteGroup(ctx context.Context, group Group) error {
	return c.do(ctx, http.MethodDelete, "/api/groups/"+url.PathEscape(group.Name), nil, nil)
}

func (c *restClient) CreateClient(ctx context.Context, client ClientEntry) error {
	payload := map[string]any{
		"client":  client.Client,
		"comment": client.Comment,
		"groups":  client.EffectiveGroups(),
	}
	return c.do(ctx, http.MethodPost, "/api/clients", payload, nil)
}

func (c *restClient) ReplaceClient(ctx context.Context, client ClientEntry) error {
	payload := map[string]any{
		"comment": client.Comment,
		"groups":  client.EffectiveGroups(),
	}
	return c.do(ctx, http.MethodPut, "/api/clients/"+url.PathEscape(client.Client), payload, nil)
}

func (c *restClient) DeleteClients(ctx context.Context, clients []ClientEntry) error {
	if len(clients) == 0 {
		return nil
	}
	items := make([]batchDeleteItem, 0, len(clients))
	for _, client := range clients {
		items = append(items, batchDeleteItem{Item: client.Client})
	}
	return c.do(ctx, http.MethodPost, "/api/clients:batchDelete", items, nil)
}

func (c *restClient) RunGravity(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/action/gravity", nil, nil)
}

func (c *restClient) Close(ctx context.Context) error {
	c.mu.Lock()
	sid := c.sid
	c.sid = ""
	c.mu.Unlock()

	if sid == "" {
		return nil
	}
	return c.send(ctx, http.MethodDelete, "/api/auth", sid, nil, nil)
}

// batchDeleteItem is the shape shared by the :batchDelete endpoints; lists
// need item+type, domains item+type+kind, clients item only.
type batchDeleteItem struct {
	Item string `json:"item"`
	Type string `json:"type,omitempty"`
	Kind string `json:"kind,omitempty"`
}

func domainPath(domain Domain, withValue bool) string {
	path := "/api/domains/" + url.PathEscape(domain.Type) + "/" + url.PathEscape(domain.Kind)
	if withValue {
		path += "/" + url.PathEscape(domain.Domain)
	}
	return path
}
