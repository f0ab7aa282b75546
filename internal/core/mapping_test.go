package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkMappingsKeepInsertionOrder(t *testing.T) {
	var m LinkMappings
	m.Add("specs/b.spec.md", "new/2.md")
	m.Add("specs/a.spec.md", "new/1.md")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"specs/b.spec.md":"new/2.md","specs/a.spec.md":"new/1.md"}`, string(data))

	var back LinkMappings
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}

func TestLinkMappingsEmpty(t *testing.T) {
	data, err := json.Marshal(LinkMappings{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestLinkMappingsUnmarshalRejectsNonObject(t *testing.T) {
	var m LinkMappings
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"a"`), &m))
}
