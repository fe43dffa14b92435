// Typed request/response calls for the routine backend surface: auth forms,
// enrolled/instructor course management, lecture videos, payments.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
)

// AccountService wraps the stateless backend endpoints. Every method is a
// single request/response call; session state lives in [SessionService] and
// collection state in [CatalogService].
type AccountService struct {
	gateway *Gateway
	logger  *log.Logger
}

// NewAccountService creates a new account service over the given gateway.
func NewAccountService(gateway *Gateway, logger *log.Logger) *AccountService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AccountService{gateway: gateway, logger: logger}
}

// Login exchanges credentials for an access token. The refresh credential
// arrives as a cookie and stays in the gateway's jar.
func (a *AccountService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	resp, err := a.gateway.Post(ctx, "/auth/login", "", payload)
	if err != nil {
		return nil, err
	}

	var result models.LoginResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode login response: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() || result.AccessToken == "" {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAuthFailed, msg)
	}

	return &result, nil
}

// Register creates a new account.
func (a *AccountService) Register(ctx context.Context, username, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal register request: %w", err)
	}

	resp, err := a.gateway.Post(ctx, "/auth/register", "", payload)
	if err != nil {
		return err
	}

	return a.check(resp, "registration")
}

// ForgotPassword requests a password-reset email.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	payload, _ := json.Marshal(map[string]string{"email": email})

	resp, err := a.gateway.Post(ctx, "/auth/forgot-password", "", payload)
	if err != nil {
		return err
	}

	return a.check(resp, "forgot-password")
}

// ResetPassword sets a new password using an emailed reset token.
func (a *AccountService) ResetPassword(ctx context.Context, resetToken, password string) error {
	payload, _ := json.Marshal(map[string]string{"token": resetToken, "password": password})

	resp, err := a.gateway.Post(ctx, "/auth/reset-password", "", payload)
	if err != nil {
		return err
	}

	return a.check(resp, "reset-password")
}

// InstructorCourses lists courses created by the given instructor.
func (a *AccountService) InstructorCourses(ctx context.Context, instructorID string) ([]models.Course, error) {
	return a.courseList(ctx, "/course/instructor-courses/"+instructorID)
}

// EnrolledCourses lists courses the given student is enrolled in.
func (a *AccountService) EnrolledCourses(ctx context.Context, userID string) ([]models.Course, error) {
	return a.courseList(ctx, "/course/enrolled-courses/"+userID)
}

// Disenroll removes the user's enrollment from a course.
func (a *AccountService) Disenroll(ctx context.Context, token string, courseID int, userID string) error {
	payload, _ := json.Marshal(map[string]string{"user_id": userID})

	resp, err := a.gateway.Post(ctx, fmt.Sprintf("/course/disenroll/%d", courseID), token, payload)
	if err != nil {
		return err
	}

	return a.check(resp, "disenroll")
}

// CourseData fetches one course with its lecture videos.
func (a *AccountService) CourseData(ctx context.Context, courseID int) (*models.CourseData, error) {
	resp, err := a.gateway.Get(ctx, fmt.Sprintf("/course/coursedata/%d", courseID), "")
	if err != nil {
		return nil, err
	}

	if err := a.check(resp, "coursedata"); err != nil {
		return nil, err
	}

	var result models.CourseData
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode course data: %v", shared.ErrAPIRequest, err)
	}

	return &result, nil
}

// CreateCourse creates a new course owned by the authenticated instructor.
func (a *AccountService) CreateCourse(ctx context.Context, token string, course models.Course) error {
	payload, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("failed to marshal course: %w", err)
	}

	resp, err := a.gateway.Post(ctx, "/course/create-course", token, payload)
	if err != nil {
		return err
	}

	return a.check(resp, "create-course")
}

// UpdateCourse updates an existing course.
func (a *AccountService) UpdateCourse(ctx context.Context, token string, course models.Course) error {
	payload, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("failed to marshal course: %w", err)
	}

	resp, err := a.gateway.Put(ctx, fmt.Sprintf("/course/update-course/%d", course.ID), token, payload)
	if err != nil {
		return err
	}

	return a.check(resp, "update-course")
}

// DeleteCourse removes a course and its videos.
func (a *AccountService) DeleteCourse(ctx context.Context, token string, courseID int) error {
	resp, err := a.gateway.Delete(ctx, fmt.Sprintf("/course/delete-course/%d", courseID), token)
	if err != nil {
		return err
	}

	return a.check(resp, "delete-course")
}

// AddVideo attaches a lecture video to a course.
func (a *AccountService) AddVideo(ctx context.Context, token string, video models.Video) error {
	payload, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}

	resp, err := a.gateway.Post(ctx, "/videos/add-video", token, payload)
	if err != nil {
		return err
	}

	return a.check(resp, "add-video")
}

// UpdateVideo updates a lecture video's metadata.
func (a *AccountService) UpdateVideo(ctx context.Context, token string, video models.Video) error {
	payload, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}

	resp, err := a.gateway.Put(ctx, fmt.Sprintf("/videos/update-video/%d", video.ID), token, payload)
	if err != nil {
		return err
	}

	return a.check(resp, "update-video")
}

// DeleteVideo removes a lecture video.
func (a *AccountService) DeleteVideo(ctx context.Context, token string, videoID int) error {
	resp, err := a.gateway.Delete(ctx, fmt.Sprintf("/videos/deletevideo/%d", videoID), token)
	if err != nil {
		return err
	}

	return a.check(resp, "delete-video")
}

// Balance fetches the instructor's payment-account balance as raw JSON.
func (a *AccountService) Balance(ctx context.Context, accountID string) (any, error) {
	return a.paymentInfo(ctx, "/payment/balance/"+accountID)
}

// Payments fetches recent payments into the instructor's account.
func (a *AccountService) Payments(ctx context.Context, accountID string) (any, error) {
	return a.paymentInfo(ctx, "/payment/payments/"+accountID)
}

// Payouts fetches recent payouts from the instructor's account.
func (a *AccountService) Payouts(ctx context.Context, accountID string) (any, error) {
	return a.paymentInfo(ctx, "/payment/payouts/"+accountID)
}

// ProcessPayment initializes an enrollment checkout and returns the
// checkout session; the caller redirects the user to the returned URL.
func (a *AccountService) ProcessPayment(ctx context.Context, course models.Course, studentID string) (*models.CheckoutResult, error) {
	payload, err := json.Marshal(map[string]any{
		"courseId":         course.ID,
		"amount":           course.Price,
		"creatorConnectId": course.StripeAccountID,
		"student_id":       studentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment request: %w", err)
	}

	resp, err := a.gateway.Post(ctx, "/payment/process-payment", "", payload)
	if err != nil {
		return nil, err
	}

	var result models.CheckoutResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode checkout response: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() || !result.Success {
		msg := result.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}

	return &result, nil
}

func (a *AccountService) courseList(ctx context.Context, path string) ([]models.Course, error) {
	resp, err := a.gateway.Get(ctx, path, "")
	if err != nil {
		return nil, err
	}

	if err := a.check(resp, path); err != nil {
		return nil, err
	}

	var result models.CourseList
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode course list: %v", shared.ErrAPIRequest, err)
	}

	return result.Courses, nil
}

func (a *AccountService) paymentInfo(ctx context.Context, path string) (any, error) {
	resp, err := a.gateway.Get(ctx, path, "")
	if err != nil {
		return nil, err
	}

	if err := a.check(resp, path); err != nil {
		return nil, err
	}

	return resp.JSONData, nil
}

// check maps a non-success response to a typed error.
func (a *AccountService) check(resp *APIResponse, op string) error {
	if resp.OK() && resp.ErrField() == "" {
		return nil
	}

	msg := resp.ErrField()
	if msg == "" {
		msg = fmt.Sprintf("status %d", resp.StatusCode)
	}

	switch {
	case resp.StatusCode == 400 || resp.StatusCode == 422:
		return fmt.Errorf("%w: %s: %s", shared.ErrValidation, op, msg)
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return fmt.Errorf("%w: %s: %s", shared.ErrUnauthorized, op, msg)
	default:
		return fmt.Errorf("%w: %s: %s", shared.ErrAPIRequest, op, msg)
	}
}
