package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/ebaadraheem/skillmorph-cli/internal/models"
)

var _ list.Item = courseItem{}

// courseItem wraps [models.Course] to implement [list.Item].
type courseItem struct {
	course models.Course
}

func (i courseItem) FilterValue() string { return i.course.Title }
func (i courseItem) Title() string {
	title := i.course.Title
	if i.course.IsEnrolled {
		title = fmt.Sprintf("%s ✓", title)
	}
	return title
}
func (i courseItem) Description() string {
	desc := fmt.Sprintf("%s • $%s", i.course.Category, i.course.Price)
	if i.course.Instructor != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.course.Instructor)
	}
	return desc
}
