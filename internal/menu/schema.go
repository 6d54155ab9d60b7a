package menu

import (
	"slices"

	"front-auditor/internal/apperr"
)

// Category is what a choice does when picked.
type Category string

const (
	Categories    Category = "category"
	SubCategories Category = "subCategory"
	Actions       Category = "action"
)

// Schema groups every valid choice by category.
type Schema struct {
	Categories    []string
	SubCategories []string
	Actions       []string
}

// DefaultSchema is the menu tree of the tool.
func DefaultSchema() Schema {
	return Schema{
		Categories:    []string{ChoiceReports},
		SubCategories: []string{},
		Actions:       []string{ChoiceLogin, ChoiceCheckPIT, ChoiceAudit, ChoiceCorte, ChoiceCobro},
	}
}

// Classify returns the first category that lists choice.
func (s Schema) Classify(choice string) (Category, error) {
	switch {
	case slices.Contains(s.Categories, choice):
		return Categories, nil
	case slices.Contains(s.SubCategories, choice):
		return SubCategories, nil
	case slices.Contains(s.Actions, choice):
		return Actions, nil
	}
	return "", apperr.New(apperr.KindInvalidChoice, "classify "+choice, nil)
}
