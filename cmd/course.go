package main

import (
	"context"
	"fmt"

	"github.com/ebaadraheem/skillmorph-cli/internal/formatter"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// CourseEnrolled lists the authenticated user's enrollments.
func (r *Runner) CourseEnrolled(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireUser(ctx); err != nil {
		return err
	}

	courses, err := r.account.EnrolledCourses(ctx, r.session.UserID())
	if err != nil {
		return err
	}

	if len(courses) == 0 {
		return r.writePlain("You are not enrolled in any courses\n")
	}

	return r.printCourses(courses, cmd.Bool("json"), cmd.Bool("pretty"))
}

// CourseInfo shows one course with its lecture videos.
func (r *Runner) CourseInfo(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.IntArg("course-id")
	if courseID == 0 {
		return fmt.Errorf("%w: course-id argument is required", shared.ErrMissingArgument)
	}

	data, err := r.account.CourseData(ctx, courseID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(data, cmd.Bool("pretty"))
	}

	course := data.Course
	r.writePlainHeader(course.Title)
	r.writePlain("Category: %s\n", course.Category)
	r.writePlain("Price: $%s\n", course.Price)
	if course.Instructor != "" {
		r.writePlain("Instructor: %s\n", course.Instructor)
	}
	if course.Duration > 0 {
		r.writePlain("Duration: %s\n", formatter.FormatDuration(course.Duration))
	}
	if course.Description != "" {
		r.writePlainln("%s", course.Description)
	}

	if len(data.Videos) > 0 {
		r.writePlain("\nLectures:\n")
		for i, video := range data.Videos {
			r.writePlain("  %d. %s\n", i+1, video.Title)
		}
	}

	return nil
}

// CourseEnroll starts an enrollment checkout and opens it in the browser.
func (r *Runner) CourseEnroll(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.IntArg("course-id")
	if courseID == 0 {
		return fmt.Errorf("%w: course-id argument is required", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	data, err := r.account.CourseData(ctx, courseID)
	if err != nil {
		return err
	}
	if data.Course.IsEnrolled {
		return r.writePlain("Already enrolled in %q\n", data.Course.Title)
	}

	result, err := r.account.ProcessPayment(ctx, data.Course, r.session.UserID())
	if err != nil {
		return err
	}

	r.logger.Info("checkout session created", "session", result.SessionID)

	if err := shared.OpenBrowser(result.URL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
		return r.writePlain("Open %s to complete enrollment\n", result.URL)
	}

	return r.writePlain("✓ Checkout opened in browser\n")
}

// CourseDisenroll drops an enrollment.
func (r *Runner) CourseDisenroll(ctx context.Context, cmd *cli.Command) error {
	courseID := cmd.IntArg("course-id")
	if courseID == 0 {
		return fmt.Errorf("%w: course-id argument is required", shared.ErrMissingArgument)
	}

	if err := r.requireUser(ctx); err != nil {
		return err
	}

	if err := r.account.Disenroll(ctx, r.session.Token(), courseID, r.session.UserID()); err != nil {
		return err
	}

	return r.writePlain("✓ Disenrolled from course %d\n", courseID)
}
