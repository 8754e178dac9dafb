// Package flowform wires the FlowForm client: query executor, caches,
// execution launcher, catalog lookups, and the form evaluator.
package flowform

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/flowform/flowform-go/pkg/cache"
	"github.com/flowform/flowform-go/pkg/catalog"
	"github.com/flowform/flowform-go/pkg/execution"
	"github.com/flowform/flowform-go/pkg/forms"
	"github.com/flowform/flowform-go/pkg/gqlclient"
	"github.com/flowform/flowform-go/pkg/models"
)

// Config is the explicit configuration for one client instance. There are
// no ambient defaults: endpoint and organization identity always come from
// the hosting environment through this struct.
type Config struct {
	// Endpoint is the URL of the remote query endpoint.
	Endpoint string `validate:"required,url"`
	// OrganizationID is sent with every launch and catalog lookup.
	OrganizationID string `validate:"required"`
	// DisableCache is the global result-cache opt-out. Per-call options
	// can still override it.
	DisableCache bool
	// Timeout bounds each individual request; zero keeps the default.
	Timeout time.Duration
	// Store backs the result cache. Defaults to an in-memory store.
	Store cache.Store
}

// Client is the top-level entry point.
type Client struct {
	gql       *gqlclient.Client
	results   *cache.ResultCache
	launcher  *execution.Launcher
	catalog   *catalog.Service
	evaluator *forms.Evaluator
}

// New validates cfg and builds a fully wired client.
func New(cfg Config) (*Client, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store := cfg.Store
	if store == nil {
		memory, err := cache.NewMemoryStore(0)
		if err != nil {
			return nil, err
		}

		store = memory
	}

	var gqlOpts []gqlclient.Option
	if cfg.Timeout > 0 {
		gqlOpts = append(gqlOpts, gqlclient.WithTimeout(cfg.Timeout))
	}

	gql := gqlclient.New(cfg.Endpoint, gqlOpts...)
	results := cache.NewResultCache(store)
	poller := execution.NewPoller(gql)
	launcher := execution.NewLauncher(gql, poller, results, cfg.OrganizationID, cfg.DisableCache)

	return &Client{
		gql:       gql,
		results:   results,
		launcher:  launcher,
		catalog:   catalog.NewService(gql, cfg.OrganizationID),
		evaluator: forms.NewEvaluator(),
	}, nil
}

// Launcher exposes workflow launch and poll operations.
func (c *Client) Launcher() *execution.Launcher {
	return c.launcher
}

// Catalog exposes workflow and organization lookups.
func (c *Client) Catalog() *catalog.Service {
	return c.catalog
}

// Evaluator exposes visibility computation and validation.
func (c *Client) Evaluator() *forms.Evaluator {
	return c.evaluator
}

// Results exposes the fingerprint result cache for explicit invalidation.
func (c *Client) Results() *cache.ResultCache {
	return c.results
}

// NewSubmitter builds a form submitter bound to this client's launcher.
func (c *Client) NewSubmitter(provider models.FormStateProvider, sink models.VisibilitySink) *forms.Submitter {
	return forms.NewSubmitter(c.evaluator, provider, sink, c.launcher)
}

// SetOrganization switches the organization identity and clears every
// cache scoped to the previous one.
func (c *Client) SetOrganization(ctx context.Context, orgID string) {
	c.launcher.SetOrganization(orgID)
	c.catalog.SetOrganization(orgID)
	c.results.Clear(ctx)
}
