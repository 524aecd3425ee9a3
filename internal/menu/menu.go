// Package menu holds the menu item model and the built-in catalog.
package menu

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Course identifies which menu screen an item is offered on.
type Course string

const (
	CourseEntree        Course = "entree"
	CourseSide          Course = "side"
	CourseAccompaniment Course = "accompaniment"
)

// Courses lists courses in the order they are picked.
func Courses() []Course {
	return []Course{CourseEntree, CourseSide, CourseAccompaniment}
}

func (c Course) Valid() bool {
	switch c {
	case CourseEntree, CourseSide, CourseAccompaniment:
		return true
	}
	return false
}

// Label is the human name used in summaries.
func (c Course) Label() string {
	switch c {
	case CourseEntree:
		return "Entree"
	case CourseSide:
		return "Side Dish"
	case CourseAccompaniment:
		return "Accompaniment"
	}
	return string(c)
}

// ParseCourse accepts a stored course value.
func ParseCourse(s string) (Course, error) {
	c := Course(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("menu: unknown course %q", s)
	}
	return c, nil
}

// Item is a single menu entry. Items are treated as immutable once loaded.
type Item struct {
	ID          string
	Course      Course
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string // opaque reference, e.g. an asset name
	SortOrder   int
}

// ItemID derives a stable id so reseeding the catalog updates rows in place.
func ItemID(course Course, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("menu:"+string(course)+":"+name)).String()
}

// Group splits items by course, preserving input order within each course.
func Group(items []Item) map[Course][]Item {
	out := make(map[Course][]Item, len(Courses()))
	for _, it := range items {
		out[it.Course] = append(out[it.Course], it)
	}
	return out
}
