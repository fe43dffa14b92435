package tasks

import (
	"fmt"

	"github.com/ebaadraheem/skillmorph-cli/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase (0 when unknown)
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchIdentity Phase = iota
	FetchPage
	FetchEnrolled
	FetchInstructor
	Export
)

func (p Phase) String() string {
	switch p {
	case FetchIdentity:
		return "fetch_identity"
	case FetchPage:
		return "fetch_page"
	case FetchEnrolled:
		return "fetch_enrolled"
	case FetchInstructor:
		return "fetch_instructor"
	case Export:
		return "export"
	default:
		return "unknown"
	}
}

// fetchPageUpdate is the constructor for [FetchPage] progress events.
func fetchPageUpdate(page, loaded, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    page,
		Total:   total,
		Message: fmt.Sprintf("fetched page %d (%d of %d items)", page, loaded, total),
	}
}

// fetchIdentityUpdate is the constructor for [FetchIdentity] progress events.
func fetchIdentityUpdate(user *models.User) ProgressUpdate {
	msg := "browsing anonymously"
	if user != nil {
		msg = fmt.Sprintf("resolved identity: %s", user.DisplayName)
	}
	return ProgressUpdate{Phase: FetchIdentity, Step: 1, Total: 1, Message: msg, Data: user}
}

// fetchEnrolledUpdate is the constructor for [FetchEnrolled] progress events.
func fetchEnrolledUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEnrolled,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("fetched %d enrolled courses", count),
	}
}

// fetchInstructorUpdate is the constructor for [FetchInstructor] progress events.
func fetchInstructorUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchInstructor,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("fetched %d instructor courses", count),
	}
}
