// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula

import (
	"fmt"
	"time"

	"github.com/taibuivan/formulary/internal/platform/apperr"
	"github.com/taibuivan/formulary/internal/platform/database/schema"
	"github.com/taibuivan/formulary/pkg/pointer"
	"github.com/taibuivan/formulary/pkg/slice"
)

// Row is a flat record-store row keyed by column name.
//
// A key mapped to nil is an explicit SQL NULL; a missing key is "not set".
type Row map[string]any

// # Row → Entity

/*
ToEntity translates a stored row into a [Formula].

Null or missing text columns become "", null or missing paragraph arrays
become empty lists, and a null or empty image_url yields no
VisualExplanation. An empty row is rejected with VALIDATION_ERROR.
*/
func ToEntity(row Row) (*Formula, error) {
	if len(row) == 0 {
		return nil, apperr.ValidationError("Empty formula record")
	}

	col := schema.Formula
	id, err := int64Of(row[col.ID])
	if err != nil {
		return nil, apperr.ValidationError(fmt.Sprintf("Malformed %s column: %v", col.ID, err))
	}

	paragraphsEN, err := stringsOf(row[col.LongDescriptionEN])
	if err != nil {
		return nil, apperr.ValidationError(fmt.Sprintf("Malformed %s column: %v", col.LongDescriptionEN, err))
	}
	paragraphsMY, err := stringsOf(row[col.LongDescriptionMY])
	if err != nil {
		return nil, apperr.ValidationError(fmt.Sprintf("Malformed %s column: %v", col.LongDescriptionMY, err))
	}

	entity := &Formula{
		ID:        id,
		CreatedAt: timeOf(row[col.CreatedAt]),
		Title: LocalizedText{
			EN: stringOf(row[col.TitleEN]),
			MY: stringOf(row[col.TitleMY]),
		},
		Category: LocalizedText{
			EN: stringOf(row[col.CategoryEN]),
			MY: stringOf(row[col.CategoryMY]),
		},
		ShortDescription: LocalizedText{
			EN: stringOf(row[col.ShortDescriptionEN]),
			MY: stringOf(row[col.ShortDescriptionMY]),
		},
		LongDescription: LocalizedParagraphs{EN: paragraphsEN, MY: paragraphsMY},
		Syntax:          stringOf(row[col.Syntax]),
		Example:         stringOf(row[col.Example]),
		ExampleExplanation: LocalizedText{
			EN: stringOf(row[col.ExampleExplanationEN]),
			MY: stringOf(row[col.ExampleExplanationMY]),
		},
	}

	if imageURL := stringOf(row[col.ImageURL]); imageURL != "" {
		entity.VisualExplanation = &VisualExplanation{ImageURL: imageURL}
	}

	return entity, nil
}

// # Entity → Row

/*
ToRow translates the present fields of a patch into columns.

Absent fields produce no column. A present VisualExplanation produces
image_url: the URL, or nil (SQL NULL) when the URL is empty.
*/
func ToRow(patch Patch) Row {
	col := schema.Formula
	row := Row{}

	putText := func(text *LocalizedText, en, my string) {
		if text != nil {
			row[en] = text.EN
			row[my] = text.MY
		}
	}

	putText(patch.Title, col.TitleEN, col.TitleMY)
	putText(patch.Category, col.CategoryEN, col.CategoryMY)
	putText(patch.ShortDescription, col.ShortDescriptionEN, col.ShortDescriptionMY)
	putText(patch.ExampleExplanation, col.ExampleExplanationEN, col.ExampleExplanationMY)

	if patch.LongDescription != nil {
		row[col.LongDescriptionEN] = slice.OrEmpty(patch.LongDescription.EN)
		row[col.LongDescriptionMY] = slice.OrEmpty(patch.LongDescription.MY)
	}
	if patch.Syntax != nil {
		row[col.Syntax] = *patch.Syntax
	}
	if patch.Example != nil {
		row[col.Example] = *patch.Example
	}

	if patch.VisualExplanation != nil {
		if patch.VisualExplanation.ImageURL == "" {
			row[col.ImageURL] = nil
		} else {
			row[col.ImageURL] = patch.VisualExplanation.ImageURL
		}
	}

	return row
}

// PatchOf returns a patch with every field of f present. Slices are copied.
func PatchOf(f Formula) Patch {
	clone := f.Clone()
	return Patch{
		Title:              &clone.Title,
		Category:           &clone.Category,
		ShortDescription:   &clone.ShortDescription,
		LongDescription:    &clone.LongDescription,
		Syntax:             &clone.Syntax,
		Example:            &clone.Example,
		ExampleExplanation: &clone.ExampleExplanation,
		VisualExplanation:  clone.VisualExplanation,
	}
}

// # Column Decoding

func stringOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case *string:
		return pointer.Val(v)
	}
	return ""
}

func stringsOf(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return slice.Copy(v), nil
	case []any:
		// pgx.RowToMap decodes text[] as []any.
		result := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				result = append(result, s)
			case nil:
				result = append(result, "")
			default:
				return nil, fmt.Errorf("unexpected element type %T", item)
			}
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected type %T", value)
	}
}

func int64Of(value any) (int64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", value)
	}
}

func timeOf(value any) time.Time {
	if t, ok := value.(time.Time); ok {
		return t
	}
	return time.Time{}
}
