// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package formula_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/formulary/internal/core/formula"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		raw     string
		want    formula.Language
		wantErr bool
	}{
		{"", formula.LangEN, false},
		{"en", formula.LangEN, false},
		{"en-US", formula.LangEN, false},
		{"my", formula.LangMY, false},
		{"my-MM", formula.LangMY, false},
		{"fr", "", true},
		{"!!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := formula.ParseLanguage(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalizedText_In(t *testing.T) {
	text := formula.LocalizedText{EN: "Sum", MY: "ပေါင်းလဒ်"}
	assert.Equal(t, "Sum", text.In(formula.LangEN))
	assert.Equal(t, "ပေါင်းလဒ်", text.In(formula.LangMY))
}

func TestFormula_Clone(t *testing.T) {
	original := withImage("u")
	clone := original.Clone()

	clone.LongDescription.MY[0] = "changed"
	clone.VisualExplanation.ImageURL = "changed"

	assert.Equal(t, "ပထမ အပိုဒ်။", original.LongDescription.MY[0])
	assert.Equal(t, "u", original.ImageURL())
}

/*
TestPatch_UnmarshalJSON checks that key presence decides field presence.
*/
func TestPatch_UnmarshalJSON(t *testing.T) {
	t.Run("absent keys", func(t *testing.T) {
		var patch formula.Patch
		require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))
		assert.True(t, patch.IsEmpty())
	})

	t.Run("present fields", func(t *testing.T) {
		var patch formula.Patch
		require.NoError(t, json.Unmarshal([]byte(`{
			"title": {"en": "SUM", "my": "ပေါင်း"},
			"long_description": {"en": ["a"], "my": []},
			"syntax": "=SUM()",
			"unknown": true
		}`), &patch))

		require.NotNil(t, patch.Title)
		assert.Equal(t, "SUM", patch.Title.EN)
		require.NotNil(t, patch.LongDescription)
		assert.Equal(t, []string{"a"}, patch.LongDescription.EN)
		require.NotNil(t, patch.Syntax)
		assert.Equal(t, "=SUM()", *patch.Syntax)
		assert.Nil(t, patch.Example)
		assert.Nil(t, patch.VisualExplanation)
	})

	t.Run("null text is absent", func(t *testing.T) {
		var patch formula.Patch
		require.NoError(t, json.Unmarshal([]byte(`{"title": null, "example": null}`), &patch))
		assert.True(t, patch.IsEmpty())
	})

	t.Run("clearing the image", func(t *testing.T) {
		for _, body := range []string{
			`{"visual_explanation": {"image_url": ""}}`,
			`{"visual_explanation": {}}`,
			`{"visual_explanation": null}`,
		} {
			var patch formula.Patch
			require.NoError(t, json.Unmarshal([]byte(body), &patch), body)
			require.NotNil(t, patch.VisualExplanation, body)
			assert.Empty(t, patch.VisualExplanation.ImageURL, body)
			assert.Equal(t, formula.Row{"image_url": nil}, formula.ToRow(patch), body)
		}
	})

	t.Run("type errors", func(t *testing.T) {
		var patch formula.Patch
		assert.Error(t, json.Unmarshal([]byte(`{"syntax": 12}`), &patch))
		assert.Error(t, json.Unmarshal([]byte(`[]`), &patch))
	})
}
