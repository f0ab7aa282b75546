package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"1000-epic-foo", "1000"},
		{"1014-task-bar.spec.md", "1014"},
		{"42", "42"},
		{"epic-1000", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractID(tt.name), "ExtractID(%q)", tt.name)
	}
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "specs/1000", NormalizePath("./specs/1000/"))
	assert.Equal(t, "specs", NormalizePath("specs/x/.."))
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("1000"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("10a0"))
	assert.False(t, isDigits("index"))
}

func TestIsContextName(t *testing.T) {
	assert.True(t, isContextName("context.md"))
	assert.True(t, isContextName("1014.context.md"))
	assert.False(t, isContextName("1014.md"))
	assert.False(t, isContextName("spec.md"))
}
