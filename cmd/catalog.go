package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ebaadraheem/skillmorph-cli/internal/formatter"
	"github.com/ebaadraheem/skillmorph-cli/internal/models"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"github.com/ebaadraheem/skillmorph-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CatalogList fetches catalog pages from the current cursor and prints them.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	r.resume(ctx)

	if cmd.Bool("all") {
		courses, err := r.syncAll(ctx, "")
		if err != nil {
			return err
		}
		return r.printCourses(courses, cmd.Bool("json"), cmd.Bool("pretty"))
	}

	pages := cmd.Int("pages")
	if pages < 1 {
		pages = 1
	}

	for i := 0; i < pages; i++ {
		r.catalog.FetchNextPage(ctx)
		snap := r.catalog.Snapshot()
		if snap.LastError != nil {
			return snap.LastError
		}
		if !snap.HasMore {
			break
		}
	}

	snap := r.catalog.Snapshot()
	if err := r.printCourses(snap.Items, cmd.Bool("json"), cmd.Bool("pretty")); err != nil {
		return err
	}

	if snap.HasMore {
		r.writePlain("... %d of %d courses loaded\n", len(snap.Items), snap.Total)
	}
	return nil
}

// CatalogSearch commits a server-side search and prints the first page, or
// every matching page with --all.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	r.resume(ctx)

	if cmd.Bool("all") {
		courses, err := r.syncAll(ctx, query)
		if err != nil {
			return err
		}
		return r.printCourses(courses, cmd.Bool("json"), cmd.Bool("pretty"))
	}

	r.catalog.Search(ctx, query)
	snap := r.catalog.Snapshot()
	if snap.LastError != nil {
		return snap.LastError
	}

	if len(snap.Items) == 0 {
		return r.writePlain("No courses match %q\n", query)
	}

	if err := r.printCourses(snap.Items, cmd.Bool("json"), cmd.Bool("pretty")); err != nil {
		return err
	}

	if snap.HasMore {
		r.writePlain("... %d of %d matches loaded, use --all for the rest\n", len(snap.Items), snap.Total)
	}
	return nil
}

// CatalogExport walks every catalog page and writes the result as csv,
// markdown, or text.
func (r *Runner) CatalogExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	outputPath := cmd.String("output")
	query := cmd.String("search")

	r.resume(ctx)

	courses, err := r.syncAll(ctx, query)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(courses)
	case "markdown", "md":
		title := "Course Catalog"
		if query != "" {
			title = fmt.Sprintf("Course Catalog: %q", query)
		}
		data, err = formatter.ExportToMarkdown(courses, title)
	case "text", "txt":
		data, err = formatter.ExportToText(courses)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}

	if outputPath == "" {
		return r.writePlain("%s", string(data))
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	r.logger.Info("catalog exported", "path", outputPath, "courses", len(courses))
	return r.writePlain("✓ Exported %d courses to %s\n", len(courses), outputPath)
}

// CatalogDump gathers everything the backend exposes for the current user
// and prints it as one JSON document.
func (r *Runner) CatalogDump(ctx context.Context, cmd *cli.Command) error {
	r.resume(ctx)

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step)
		}
	}()

	result, err := r.engine.Dump(ctx, progress, r.session.CurrentUser(), cmd.String("search"))
	close(progress)
	<-done

	if err != nil {
		return err
	}

	return r.writeJSON(result, cmd.Bool("pretty"))
}

// CatalogHistory prints recent committed search queries.
func (r *Runner) CatalogHistory(ctx context.Context, cmd *cli.Command) error {
	if r.searches == nil {
		return fmt.Errorf("%w: run 'skillmorph setup database' first", shared.ErrMissingConfig)
	}

	entries, err := r.searches.Recent(cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to read search history: %w", err)
	}

	if len(entries) == 0 {
		return r.writePlain("No search history\n")
	}

	for _, entry := range entries {
		r.writePlain("%s  %s\n", entry.SearchedAt.Format("2006-01-02 15:04"), entry.Query)
	}
	return nil
}

// syncAll drains the catalog through the engine, logging progress updates.
func (r *Runner) syncAll(ctx context.Context, query string) ([]models.Course, error) {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step)
		}
	}()

	courses, err := r.engine.SyncAll(ctx, progress, r.session.UserID(), query)
	close(progress)
	<-done

	return courses, err
}

func (r *Runner) printCourses(courses []models.Course, asJSON, pretty bool) error {
	if asJSON {
		return r.writeJSON(courses, pretty)
	}

	if len(courses) == 0 {
		return r.writePlain("No courses\n")
	}

	for _, course := range courses {
		enrolled := ""
		if course.IsEnrolled {
			enrolled = " ✓"
		}
		r.writePlain("%4d  %-40s %-16s $%-8s %s%s\n",
			course.ID, course.Title, course.Category, course.Price,
			formatter.FormatDuration(course.Duration), enrolled)
	}
	return nil
}
