// Package catalog provides thin reads over workflow and organization
// metadata, backed by single-slot list caches.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/flowform/flowform-go/pkg/cache"
	"github.com/flowform/flowform-go/pkg/execution"
	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/models"
)

// ErrWorkflowNotFound is returned by the find operations.
var ErrWorkflowNotFound = errors.New("workflow not found")

const workflowsQuery = `query Workflows($orgId: ID!, $optionGenerators: Boolean) {
  workflows(orgId: $orgId, optionGenerators: $optionGenerators) {
    id
    name
  }
}`

const subOrganizationsQuery = `query SubOrganizations($parentId: ID!) {
  subOrganizations(parentId: $parentId) {
    id
    name
  }
}`

// Service issues catalog lookups for one organization. No retry logic:
// these are plain reads through the query executor.
type Service struct {
	exec      execution.Executor
	orgID     string
	workflows *cache.ListCache
	optionGen *cache.ListCache
	logger    *slog.Logger
}

// NewService creates a catalog service for the given organization.
func NewService(exec execution.Executor, orgID string) *Service {
	return &Service{
		exec:      exec,
		orgID:     orgID,
		workflows: cache.NewListCache(),
		optionGen: cache.NewListCache(),
		logger:    log.WithModule("catalog"),
	}
}

// SetOrganization switches the organization and drops both cached lists.
func (s *Service) SetOrganization(orgID string) {
	s.orgID = orgID
	s.workflows.Clear()
	s.optionGen.Clear()
}

// ListWorkflows returns the runnable workflows of the organization.
func (s *Service) ListWorkflows(ctx context.Context, useCache bool) ([]models.WorkflowRef, error) {
	return s.list(ctx, s.workflows, useCache, false)
}

// ListOptionGeneratorWorkflows returns the workflows that generate select
// options for form fields.
func (s *Service) ListOptionGeneratorWorkflows(ctx context.Context, useCache bool) ([]models.WorkflowRef, error) {
	return s.list(ctx, s.optionGen, useCache, true)
}

func (s *Service) list(ctx context.Context, slot *cache.ListCache, useCache, optionGenerators bool) ([]models.WorkflowRef, error) {
	if useCache {
		if cached, ok := slot.Get(); ok {
			return cached, nil
		}
	}

	data, err := s.exec.Execute(ctx, workflowsQuery, map[string]any{
		"orgId":            s.orgID,
		"optionGenerators": optionGenerators,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Workflows []models.WorkflowRef `json:"workflows"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	slot.Set(payload.Workflows)
	s.logger.DebugContext(ctx, "Workflow list refreshed",
		"count", len(payload.Workflows), "optionGenerators", optionGenerators)

	return payload.Workflows, nil
}

// FindByName resolves a workflow by exact name, preferring the cached list.
func (s *Service) FindByName(ctx context.Context, name string) (*models.WorkflowRef, error) {
	workflows, err := s.ListWorkflows(ctx, true)
	if err != nil {
		return nil, err
	}

	for _, workflow := range workflows {
		if workflow.Name == name {
			return &workflow, nil
		}
	}

	return nil, ErrWorkflowNotFound
}

// FindByID resolves a workflow by id, preferring the cached list.
func (s *Service) FindByID(ctx context.Context, id string) (*models.WorkflowRef, error) {
	workflows, err := s.ListWorkflows(ctx, true)
	if err != nil {
		return nil, err
	}

	for _, workflow := range workflows {
		if workflow.ID == id {
			return &workflow, nil
		}
	}

	return nil, ErrWorkflowNotFound
}

// ListSubOrganizations returns the direct children of parentID. Results
// are not cached: the hierarchy is browsed, not re-read in a loop.
func (s *Service) ListSubOrganizations(ctx context.Context, parentID string) ([]models.Organization, error) {
	data, err := s.exec.Execute(ctx, subOrganizationsQuery, map[string]any{"parentId": parentID})
	if err != nil {
		return nil, err
	}

	var payload struct {
		SubOrganizations []models.Organization `json:"subOrganizations"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	return payload.SubOrganizations, nil
}
