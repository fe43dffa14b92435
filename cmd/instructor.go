package main

import (
	"context"
	"fmt"

	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// requireInstructor resumes the session and fails unless the authenticated
// user has the instructor role.
func (r *Runner) requireInstructor(ctx context.Context) error {
	if err := r.requireUser(ctx); err != nil {
		return err
	}
	if r.session.CurrentUser().Role != "instructor" {
		return fmt.Errorf("%w: instructor account required", shared.ErrUnauthorized)
	}
	return nil
}

// InstructorCourses lists courses created by the authenticated instructor.
func (r *Runner) InstructorCourses(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireInstructor(ctx); err != nil {
		return err
	}

	courses, err := r.account.InstructorCourses(ctx, r.session.UserID())
	if err != nil {
		return err
	}

	if len(courses) == 0 {
		return r.writePlain("You have not created any courses\n")
	}

	return r.printCourses(courses, cmd.Bool("json"), cmd.Bool("pretty"))
}

// InstructorCreate creates a new course from flags.
func (r *Runner) InstructorCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireInstructor(ctx); err != nil {
		return err
	}

	course := courseFromFlags(cmd)
	if course.Title == "" || course.Price == "" {
		return fmt.Errorf("%w: --title and --price are required", shared.ErrMissingArgument)
	}

	if err := r.account.CreateCourse(ctx, r.session.Token(), course); err != nil {
		return err
	}

	return r.writePlain("✓ Course %q created\n", course.Title)
}

// InstructorUpdate updates an existing course.
func (r *Runner) InstructorUpdate(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.IntArg("course-id")
	if courseID == 0 {
		return fmt.Errorf("%w: course-id argument is required", shared.ErrMissingArgument)
	}

	if err := r.requireInstructor(ctx); err != nil {
		return err
	}

	course := courseFromFlags(cmd)
	course.ID = courseID

	if err := r.account.UpdateCourse(ctx, r.session.Token(), course); err != nil {
		return err
	}

	return r.writePlain("✓ Course %d updated\n", courseID)
}

// InstructorDelete removes a course and its videos.
func (r *Runner) InstructorDelete(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.IntArg("course-id")
	if courseID == 0 {
		return fmt.Errorf("%w: course-id argument is required", shared.ErrMissingArgument)
	}

	if err := r.requireInstructor(ctx); err != nil {
		return err
	}

	if err := r.account.DeleteCourse(ctx, r.session.Token(), courseID); err != nil {
		return err
	}

	return r.writePlain("✓ Course %d deleted\n", courseID)
}

// VideoAdd attaches a lecture video to one of the instructor's courses.
func (r *Runner) VideoAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireInstructor(ctx); err != nil {
		return err
	}

	video := models.Video{
		CourseID: cmd.Int("course-id"),
		Title:    cmd.String("title"),
		URL:      cmd.String("url"),
		Duration: cmd.Int("duration"),
	}
	if video.CourseID == 0 || video.Title == "" || video.URL == "" {
		return fmt.Errorf("%w: --course-id, --title and --url are required", shared.ErrMissingArgument)
	}

	if err := r.account.AddVideo(ctx, r.session.Token(), video); err != nil {
		return err
	}

	return r.writePlain("✓ Video %q added to course %d\n", video.Title, video.CourseID)
}

// VideoUpdate updates a lecture video's metadata.
func (r *Runner) VideoUpdate(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.IntArg("video-id")
	if videoID == 0 {
		return fmt.Errorf("%w: video-id argument is required", shared.ErrMissingArgument)
	}

	if err := r.requireInstructor(ctx); err != nil {
		return err
	}

	video := models.Video{
		ID:       videoID,
		Title:    cmd.String("title"),
		URL:      cmd.String("url"),
		Duration: cmd.Int("duration"),
	}

	if err := r.account.UpdateVideo(ctx, r.session.Token(), video); err != nil {
		return err
	}

	return r.writePlain("✓ Video %d updated\n", videoID)
}

// VideoDelete removes a lecture video.
func (r *Runner) VideoDelete(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.IntArg("video-id")
	if videoID == 0 {
		return fmt.Errorf("%w: video-id argument is required", shared.ErrMissingArgument)
	}

	if err := r.requireInstructor(ctx); err != nil {
		return err
	}

	if err := r.account.DeleteVideo(ctx, r.session.Token(), videoID); err != nil {
		return err
	}

	return r.writePlain("✓ Video %d deleted\n", videoID)
}

// InstructorBalance shows the payment-account balance.
func (r *Runner) InstructorBalance(ctx context.Context, cmd *cli.Command) error {
	accountID, err := r.paymentAccount(ctx)
	if err != nil {
		return err
	}

	balance, err := r.account.Balance(ctx, accountID)
	if err != nil {
		return err
	}

	return r.writeJSON(balance, true)
}

// InstructorPayments lists recent payments into the account.
func (r *Runner) InstructorPayments(ctx context.Context, cmd *cli.Command) error {
	accountID, err := r.paymentAccount(ctx)
	if err != nil {
		return err
	}

	payments, err := r.account.Payments(ctx, accountID)
	if err != nil {
		return err
	}

	return r.writeJSON(payments, true)
}

// InstructorPayouts lists recent payouts from the account.
func (r *Runner) InstructorPayouts(ctx context.Context, cmd *cli.Command) error {
	accountID, err := r.paymentAccount(ctx)
	if err != nil {
		return err
	}

	payouts, err := r.account.Payouts(ctx, accountID)
	if err != nil {
		return err
	}

	return r.writeJSON(payouts, true)
}

func (r *Runner) paymentAccount(ctx context.Context) (string, error) {
	if err := r.requireInstructor(ctx); err != nil {
		return "", err
	}

	accountID := r.session.CurrentUser().StripeAccountID
	if accountID == "" {
		return "", fmt.Errorf("%w: no payment account linked", shared.ErrMissingConfig)
	}
	return accountID, nil
}

func courseFromFlags(cmd *cli.Command) models.Course {
	return models.Course{
		Title:       cmd.String("title"),
		Description: cmd.String("description"),
		Category:    cmd.String("category"),
		Price:       cmd.String("price"),
		Duration:    cmd.Int("duration"),
		Thumbnail:   cmd.String("thumbnail"),
	}
}
