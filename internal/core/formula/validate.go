// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula

import (
	"github.com/taibuivan/formulary/internal/platform/validate"
)

const maxTextLen = 500

func requireText(v *validate.Validator, field string, text LocalizedText) {
	v.Required(field+".en", text.EN).MaxLen(field+".en", text.EN, maxTextLen)
	v.Required(field+".my", text.MY).MaxLen(field+".my", text.MY, maxTextLen)
}

// validateFormula checks a complete entry: every bilingual text in both
// languages, plus syntax and example.
func validateFormula(f Formula) error {
	v := &validate.Validator{}
	requireText(v, FieldTitle, f.Title)
	requireText(v, FieldCategory, f.Category)
	requireText(v, FieldShortDescription, f.ShortDescription)
	requireText(v, FieldExampleExplanation, f.ExampleExplanation)
	v.Required(FieldSyntax, f.Syntax)
	v.Required(FieldExample, f.Example)
	return v.Err()
}

// validatePatch applies the same rules to present fields only.
func validatePatch(p Patch) error {
	v := &validate.Validator{}
	if p.Title != nil {
		requireText(v, FieldTitle, *p.Title)
	}
	if p.Category != nil {
		requireText(v, FieldCategory, *p.Category)
	}
	if p.ShortDescription != nil {
		requireText(v, FieldShortDescription, *p.ShortDescription)
	}
	if p.ExampleExplanation != nil {
		requireText(v, FieldExampleExplanation, *p.ExampleExplanation)
	}
	if p.Syntax != nil {
		v.Required(FieldSyntax, *p.Syntax)
	}
	if p.Example != nil {
		v.Required(FieldExample, *p.Example)
	}
	return v.Err()
}
