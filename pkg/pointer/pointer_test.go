// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/formulary/pkg/pointer"
)

func TestPointer(t *testing.T) {
	var absent *string
	empty := pointer.To("")

	assert.Equal(t, "", pointer.Val(absent))
	assert.Equal(t, "", pointer.Val(empty))
	assert.Nil(t, pointer.Clone(absent))

	clone := pointer.Clone(empty)
	*clone = "changed"
	assert.Equal(t, "", *empty)
}
