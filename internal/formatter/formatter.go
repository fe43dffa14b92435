// package formatter provides functions to export course listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ebaadraheem/skillmorph-cli/internal/models"
)

// FormatDuration renders a duration in whole hours as "Nh", with "-" for unknown.
func FormatDuration(hours int) string {
	if hours <= 0 {
		return "-"
	}
	return fmt.Sprintf("%dh", hours)
}

// ExportToCSV converts a course listing to CSV with columns: ID, Title, Category, Instructor, Price, Duration
func ExportToCSV(courses []models.Course) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Category", "Instructor", "Price", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, course := range courses {
		record := []string{
			strconv.Itoa(course.ID),
			course.Title,
			course.Category,
			course.Instructor,
			course.Price,
			FormatDuration(course.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a course listing to Markdown with an optional title
func ExportToMarkdown(courses []models.Course, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Courses"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Courses**: %d\n\n", len(courses)))

	for i, course := range courses {
		buf.WriteString(fmt.Sprintf("%d. **%s** (%s)", i+1, course.Title, course.Category))
		if course.Instructor != "" {
			buf.WriteString(fmt.Sprintf(" by %s", course.Instructor))
		}
		buf.WriteString(fmt.Sprintf(" - $%s [%s]\n", course.Price, FormatDuration(course.Duration)))
		if course.Description != "" {
			buf.WriteString(fmt.Sprintf("   %s\n", course.Description))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a course listing to plain text format
func ExportToText(courses []models.Course) ([]byte, error) {
	var buf bytes.Buffer

	for _, course := range courses {
		enrolled := ""
		if course.IsEnrolled {
			enrolled = " [enrolled]"
		}
		buf.WriteString(fmt.Sprintf("%-6d %-40s %-16s $%-8s %s%s\n",
			course.ID, course.Title, course.Category, course.Price,
			FormatDuration(course.Duration), enrolled))
	}

	return buf.Bytes(), nil
}
