// Package mocks contains hand written mocks for the pihole interfaces.
package mocks

import (
	"context"

	"pihole-manager/core/pihole"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of pihole.Client
type Client struct {
	mock.Mock
}

func (m *Client) FetchConfig(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	var config map[string]any
	if v, ok := args.Get(0).(map[string]any); ok {
		config = v
	}
	return config, args.Error(1)
}

func (m *Client) FetchLists(ctx context.Context) ([]pihole.List, error) {
	args := m.Called(ctx)
	var lists []pihole.List
	if v, ok := args.Get(0).([]pihole.List); ok {
		lists = v
	}
	return lists, args.Error(1)
}

func (m *Client) FetchDomains(ctx context.Context) ([]pihole.Domain, error) {
	args := m.Called(ctx)
	var domains []pihole.Domain
	if v, ok := args.Get(0).([]pihole.Domain); ok {
		domains = v
	}
	return domains, args.Error(1)
}

func (m *Client) FetchGroups(ctx context.Context) ([]pihole.Group, error) {
	args := m.Called(ctx)
	var groups []pihole.Group
	if v, ok := args.Get(0).([]pihole.Group); ok {
		groups = v
	}
	return groups, args.Error(1)
}

func (m *Client) FetchClients(ctx context.Context) ([]pihole.ClientEntry, error) {
	args := m.Called(ctx)
	var clients []pihole.ClientEntry
	if v, ok := args.Get(0).([]pihole.ClientEntry); ok {
		clients = v
	}
	return clients, args.Error(1)
}

func (m *Client) PatchConfig(ctx context.Context, patch map[string]any) error {
	args := m.Called(ctx, patch)
	return args.Error(0)
}

func (m *Client) CreateList(ctx context.Context, list pihole.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *Client) ReplaceList(ctx context.Context, list pihole.List) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *Client) DeleteLists(ctx context.Context, lists []pihole.List) error {
	args := m.Called(ctx, lists)
	return args.Error(0)
}

func (m *Client) CreateDomain(ctx context.Context, domain pihole.Domain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *Client) ReplaceDomain(ctx context.Context, domain pihole.Domain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *Client) DeleteDomains(ctx context.Context, domains []pihole.Domain) error {
	args := m.Called(ctx, domains)
	return args.Error(0)
}

func (m *Client) CreateGroup(ctx context.Context, group pihole.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *Client) ReplaceGroup(ctx context.Context, group pihole.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *Client) DeleteGroup(ctx context.Context, group pihole.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *Client) CreateClient(ctx context.Context, client pihole.ClientEntry) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *Client) ReplaceClient(ctx context.Context, client pihole.ClientEntry) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *Client) DeleteClients(ctx context.Context, clients []pihole.ClientEntry) error {
	args := m.Called(ctx, clients)
	return args.Error(0)
}

func (m *Client) RunGravity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Client) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
