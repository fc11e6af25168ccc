package entity

import (
	"strings"
	"unicode/utf8"

	"github.com/Shubh-Pi/Transaction-management/internal/errs"
)

const maxNameLen = 100

// Person is a stored person record. Beyond the validated id and name the
// object carries whatever extra fields the client sent, stored opaquely.
type Person map[string]any

// ID returns the store key for the person.
func (p Person) ID() string {
	return asString(p["id"])
}

// Normalize ensures the record meets all requirements and sanitizes the
// name in place.
func (p Person) Normalize() error {
	if !present(p["id"]) || !present(p["name"]) {
		return errs.NewBadRequest("Missing required fields: id and name")
	}

	name := strings.TrimSpace(asString(p["name"]))
	if n := utf8.RuneCountInString(name); n == 0 || n > maxNameLen {
		return errs.NewBadRequest("Name must be between 1 and 100 characters")
	}
	p["name"] = name

	return nil
}
