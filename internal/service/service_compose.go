package service

import (
	"github.com/pagesmith/pagesmith/models"
)

// ComposePageView assembles a render-ready view from a page, its flat
// modules and its categorized module groups.
//
// Flat modules are keyed by title; when two flat modules share a title
// the one appearing later in the slice wins, so the store's ordering
// decides the outcome. Each category contributes one array field keyed
// by the category title, preserving member order.
//
// A page with no modules yields empty, non-nil maps.
func ComposePageView(page models.Page, flat []models.Module, groups []models.CategoryModules) models.PageView {
	view := models.PageView{
		Page:        page,
		Fields:      make(map[string]models.Module, len(flat)),
		ArrayFields: make(map[string][]models.Module, len(groups)),
	}

	for _, module := range flat {
		view.Fields[module.Title] = module
	}

	for _, group := range groups {
		view.ArrayFields[group.Category.Title] = group.Modules
	}

	return view
}
