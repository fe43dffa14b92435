// package models defines the data model for the SkillMorph client
package models

// AnonymousUserID is the user-context sentinel the catalog endpoint expects
// when no one is logged in.
const AnonymousUserID = "not_authenticated"

// User represents the authenticated identity returned by /user/info.
// Field tags match the backend's JSON.
type User struct {
	ID              string `json:"user_id"`
	DisplayName     string `json:"username"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	StripeAccountID string `json:"stripe_account_id,omitempty"`
}

// Course represents a catalog item.
type Course struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Instructor      string `json:"instructor,omitempty"`
	Thumbnail       string `json:"thumbnail,omitempty"`
	Price           string `json:"price"`
	Duration        int    `json:"duration,omitempty"`
	StripeAccountID string `json:"stripe_account_id,omitempty"`
	IsEnrolled      bool   `json:"is_enrolled,omitempty"`
}

// CatalogPage is one page of the paginated catalog endpoint.
type CatalogPage struct {
	Success     bool     `json:"success"`
	Items       []Course `json:"items"`
	HasMore     bool     `json:"hasMore"`
	CurrentPage int      `json:"currentPage"`
	TotalCount  int      `json:"totalCount"`
}

// LoginResult is the /auth/login response envelope.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	Error       string `json:"error,omitempty"`
}

// RefreshResult is the /auth/refresh response envelope.
// The backend capitalizes the token field.
type RefreshResult struct {
	Token string `json:"Token"`
	Error string `json:"error,omitempty"`
}

// CheckoutResult is the /payment/process-payment response envelope.
type CheckoutResult struct {
	Success   bool   `json:"success"`
	URL       string `json:"url,omitempty"`
	SessionID string `json:"id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Video represents a lecture video within a course.
type Video struct {
	ID       int    `json:"id"`
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration,omitempty"`
}

// CourseData is the /course/coursedata response: a course plus its videos.
type CourseData struct {
	Success bool    `json:"success"`
	Course  Course  `json:"course"`
	Videos  []Video `json:"videos"`
	Error   string  `json:"error,omitempty"`
}

// CourseList is the envelope for instructor-courses and enrolled-courses.
type CourseList struct {
	Success bool     `json:"success"`
	Courses []Course `json:"courses"`
	Error   string   `json:"error,omitempty"`
}
