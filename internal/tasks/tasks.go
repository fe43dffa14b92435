// package tasks implements multi-request catalog operations.
//
// The core abstraction is [CatalogEngine], which drives the page-at-a-time
// catalog synchronizer to completion for exports and state dumps.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/services"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
)

// CatalogSource is the subset of the catalog synchronizer the engine
// drives. The guard semantics (serialized fetches, cursor advance only
// after a page lands) belong to the implementation; the engine just walks.
type CatalogSource interface {
	Reset(userID, query string)
	FetchNextPage(ctx context.Context)
	Snapshot() services.CatalogSnapshot
}

// AccountClient is the subset of the account service the engine needs for
// dumps.
type AccountClient interface {
	EnrolledCourses(ctx context.Context, userID string) ([]models.Course, error)
	InstructorCourses(ctx context.Context, instructorID string) ([]models.Course, error)
}

// DumpResult contains the client-visible backend state for one user.
type DumpResult struct {
	Identity   *models.User    `json:"identity,omitempty"`
	Catalog    []models.Course `json:"catalog"`
	TotalCount int             `json:"total_count"`
	Enrolled   []models.Course `json:"enrolled,omitempty"`
	Instructor []models.Course `json:"instructor,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
}

// CatalogEngine orchestrates multi-page catalog operations.
type CatalogEngine struct {
	catalog CatalogSource
	account AccountClient
}

// NewCatalogEngine creates a new CatalogEngine over the given collaborators.
func NewCatalogEngine(catalog CatalogSource, account AccountClient) *CatalogEngine {
	return &CatalogEngine{catalog: catalog, account: account}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// SyncAll walks the catalog page by page until the server reports no more
// pages, returning every item in server order. A failed page aborts the
// walk with the items loaded so far.
func (e *CatalogEngine) SyncAll(ctx context.Context, progress chan<- ProgressUpdate, userID, query string) ([]models.Course, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog synchronizer not initialized", shared.ErrAPIRequest)
	}

	e.catalog.Reset(userID, query)

	for {
		if err := ctx.Err(); err != nil {
			return e.catalog.Snapshot().Items, err
		}

		before := e.catalog.Snapshot()
		if !before.HasMore {
			break
		}

		e.catalog.FetchNextPage(ctx)

		snap := e.catalog.Snapshot()
		if snap.LastError != nil {
			return snap.Items, fmt.Errorf("page %d failed: %w", snap.NextPage, snap.LastError)
		}
		if snap.NextPage == before.NextPage {
			// No progress and no error: a concurrent reset superseded us.
			return snap.Items, nil
		}

		e.sendProgress(progress, fetchPageUpdate(snap.NextPage-1, len(snap.Items), snap.Total))
	}

	return e.catalog.Snapshot().Items, nil
}

// Dump gathers everything the client can see for one user: identity, the
// full catalog, enrollments, and instructor courses. Endpoint failures are
// collected rather than aborting the dump.
func (e *CatalogEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate, user *models.User, query string) (*DumpResult, error) {
	result := &DumpResult{}

	e.sendProgress(progress, fetchIdentityUpdate(user))
	result.Identity = user

	userID := models.AnonymousUserID
	if user != nil {
		userID = user.ID
	}

	courses, err := e.SyncAll(ctx, progress, userID, query)
	result.Catalog = courses
	result.TotalCount = e.catalog.Snapshot().Total
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("catalog: %v", err))
	}

	if user == nil || e.account == nil {
		return result, nil
	}

	if enrolled, err := e.account.EnrolledCourses(ctx, user.ID); err == nil {
		result.Enrolled = enrolled
		e.sendProgress(progress, fetchEnrolledUpdate(len(enrolled)))
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("enrolled: %v", err))
	}

	if user.Role == "instructor" {
		if created, err := e.account.InstructorCourses(ctx, user.ID); err == nil {
			result.Instructor = created
			e.sendProgress(progress, fetchInstructorUpdate(len(created)))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("instructor: %v", err))
		}
	}

	return result, nil
}
