// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package formula is the bilingual formula catalog.

Each entry documents one formula in English and Myanmar, with an optional
explanatory image. Three pieces cooperate:

  - Mapper: pure translation between [Formula] and flat record-store rows.
  - Service: the mutation workflow keeping the record store and the object
    store consistent without a distributed transaction.
  - Catalog: the in-memory view served to readers, updated only through its
    Apply methods after a mutation succeeds.
*/
package formula

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/taibuivan/formulary/pkg/pointer"
	"github.com/taibuivan/formulary/pkg/slice"
)

// # Languages

// Language is a supported content language.
type Language string

const (
	LangEN Language = "en"
	LangMY Language = "my"
)

var languageMatcher = language.NewMatcher([]language.Tag{language.English, language.Burmese})

/*
ParseLanguage resolves a BCP 47 tag (or an Accept-Language style value) to a
supported language. An empty value means English.

Tags that match neither language with at least high confidence are rejected,
so "my-MM" resolves to Myanmar while "fr" is an error.
*/
func ParseLanguage(raw string) (Language, error) {
	if raw == "" {
		return LangEN, nil
	}

	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return "", fmt.Errorf("unsupported language %q", raw)
	}

	_, index, confidence := languageMatcher.Match(tags...)
	if confidence < language.High {
		return "", fmt.Errorf("unsupported language %q", raw)
	}

	if index == 1 {
		return LangMY, nil
	}
	return LangEN, nil
}

// # Value Types

// LocalizedText is a string in both languages.
type LocalizedText struct {
	EN string `json:"en"`
	MY string `json:"my"`
}

// In returns the text for lang. Unknown languages fall back to English.
func (t LocalizedText) In(lang Language) string {
	if lang == LangMY {
		return t.MY
	}
	return t.EN
}

// LocalizedParagraphs is an ordered list of paragraphs in both languages.
type LocalizedParagraphs struct {
	EN []string `json:"en"`
	MY []string `json:"my"`
}

// Clone copies both paragraph lists. The result never holds nil slices.
func (p LocalizedParagraphs) Clone() LocalizedParagraphs {
	return LocalizedParagraphs{EN: slice.Copy(p.EN), MY: slice.Copy(p.MY)}
}

// VisualExplanation references the entry's image in the object store.
type VisualExplanation struct {
	ImageURL string `json:"image_url"`
}

// # Entity

// Formula is one catalog entry.
type Formula struct {
	ID                 int64               `json:"id"`
	CreatedAt          time.Time           `json:"created_at"`
	Title              LocalizedText       `json:"title"`
	Category           LocalizedText       `json:"category"`
	ShortDescription   LocalizedText       `json:"short_description"`
	LongDescription    LocalizedParagraphs `json:"long_description"`
	Syntax             string              `json:"syntax"`
	Example            string              `json:"example"`
	ExampleExplanation LocalizedText       `json:"example_explanation"`
	VisualExplanation  *VisualExplanation  `json:"visual_explanation"`
}

// ImageURL returns the image reference, or "" when the entry has none.
func (f Formula) ImageURL() string {
	if f.VisualExplanation == nil {
		return ""
	}
	return f.VisualExplanation.ImageURL
}

// Clone returns a deep copy that shares no memory with f.
func (f Formula) Clone() Formula {
	clone := f
	clone.LongDescription = f.LongDescription.Clone()
	clone.VisualExplanation = pointer.Clone(f.VisualExplanation)
	return clone
}

// # Partial Updates

/*
Patch is a partial entry. A nil field is absent and leaves the stored column
untouched; a non-nil field is present and overwrites it.

A present VisualExplanation with an empty ImageURL asks for the image to be
removed.
*/
type Patch struct {
	Title              *LocalizedText
	Category           *LocalizedText
	ShortDescription   *LocalizedText
	LongDescription    *LocalizedParagraphs
	Syntax             *string
	Example            *string
	ExampleExplanation *LocalizedText
	VisualExplanation  *VisualExplanation
}

// IsEmpty reports whether no field is present.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

/*
UnmarshalJSON decodes a patch from a JSON object, keyed like [Formula].

Key presence defines field presence. A null value leaves a field absent,
except for "visual_explanation" where null is an explicit request to clear
the image, the same as {"image_url": ""}.
*/
func (p *Patch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = Patch{}
	for key, raw := range fields {
		isNull := bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

		var err error
		switch key {
		case "title":
			p.Title, err = decodePresent[LocalizedText](raw, isNull)
		case "category":
			p.Category, err = decodePresent[LocalizedText](raw, isNull)
		case "short_description":
			p.ShortDescription, err = decodePresent[LocalizedText](raw, isNull)
		case "long_description":
			p.LongDescription, err = decodePresent[LocalizedParagraphs](raw, isNull)
		case "syntax":
			p.Syntax, err = decodePresent[string](raw, isNull)
		case "example":
			p.Example, err = decodePresent[string](raw, isNull)
		case "example_explanation":
			p.ExampleExplanation, err = decodePresent[LocalizedText](raw, isNull)
		case "visual_explanation":
			if isNull {
				p.VisualExplanation = &VisualExplanation{}
				continue
			}
			p.VisualExplanation, err = decodePresent[VisualExplanation](raw, false)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return nil
}

func decodePresent[T any](raw json.RawMessage, isNull bool) (*T, error) {
	if isNull {
		return nil, nil
	}
	value := new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		return nil, err
	}
	return value, nil
}

// # Uploads

// Upload is an image file attached to a mutation.
type Upload struct {
	Filename string
	Data     []byte
}

// # Field Identifiers

const (
	FieldTitle              = "title"
	FieldCategory           = "category"
	FieldShortDescription   = "short_description"
	FieldLongDescription    = "long_description"
	FieldSyntax             = "syntax"
	FieldExample            = "example"
	FieldExampleExplanation = "example_explanation"
	FieldVisualExplanation  = "visual_explanation"
	FieldImage              = "image"
	FieldFormula            = "formula"
	FieldID                 = "id"
)
