package models

import (
	"fmt"
	"html/template"
)

// PageView is the render-ready composition of a page with its modules.
// It is produced by the composer and consumed either by the template
// registry (display route) or serialized as-is by the JSON API.
//
// Fields holds every flat module keyed by title; ArrayFields holds every
// categorized module list keyed by category title, member order preserved
// as returned by the store.
type PageView struct {
	Page Page `json:"page"`

	Fields map[string]Module `json:"fields"`

	ArrayFields map[string][]Module `json:"array_fields"`
}

// Get returns the content of the flat field with the given title.
//
// A missing field does not abort rendering: the returned HTML is an
// inline notice naming the unbound field, so a template author can see
// what is missing on the rendered page itself.
func (v PageView) Get(title string) template.HTML {
	module, ok := v.Fields[title]
	if !ok {
		// visible on the page instead of failing the render
		return template.HTML(template.HTMLEscapeString(
			fmt.Sprintf("Field `%s` does not exist on the page.", title)))
	}

	return template.HTML(module.Content)
}

// GetArray returns the modules grouped under the category with the given
// title. A missing group yields an empty slice, never an error, so
// templates can range over the result unconditionally.
func (v PageView) GetArray(title string) []Module {
	return v.ArrayFields[title]
}
