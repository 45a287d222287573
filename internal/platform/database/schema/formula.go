// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the record store so that
// repositories never spell them out by hand.
package schema

// FormulaTable represents the 'formulary.formula' table.
type FormulaTable struct {
	Table                string
	ID                   string
	CreatedAt            string
	TitleEN              string
	TitleMY              string
	CategoryEN           string
	CategoryMY           string
	ShortDescriptionEN   string
	ShortDescriptionMY   string
	LongDescriptionEN    string
	LongDescriptionMY    string
	Syntax               string
	Example              string
	ExampleExplanationEN string
	ExampleExplanationMY string
	ImageURL             string
}

// Formula is the schema definition for formulary.formula.
var Formula = FormulaTable{
	Table:                "formulary.formula",
	ID:                   "id",
	CreatedAt:            "created_at",
	TitleEN:              "title_en",
	TitleMY:              "title_my",
	CategoryEN:           "category_en",
	CategoryMY:           "category_my",
	ShortDescriptionEN:   "short_description_en",
	ShortDescriptionMY:   "short_description_my",
	LongDescriptionEN:    "long_description_en",
	LongDescriptionMY:    "long_description_my",
	Syntax:               "syntax",
	Example:              "example",
	ExampleExplanationEN: "example_explanation_en",
	ExampleExplanationMY: "example_explanation_my",
	ImageURL:             "image_url",
}

// Columns lists every column in declaration order.
func (t FormulaTable) Columns() []string {
	return []string{
		t.ID, t.CreatedAt,
		t.TitleEN, t.TitleMY, t.CategoryEN, t.CategoryMY,
		t.ShortDescriptionEN, t.ShortDescriptionMY, t.LongDescriptionEN, t.LongDescriptionMY,
		t.Syntax, t.Example, t.ExampleExplanationEN, t.ExampleExplanationMY,
		t.ImageURL,
	}
}

// Writable lists the columns a client may set; id and created_at are store-assigned.
func (t FormulaTable) Writable() []string {
	return t.Columns()[2:]
}
