package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	type info struct{ Name string }
	data := Data{
		"author": map[string]any{"name": "Ada"},
		"deps":   map[string][]string{"go": {"cobra"}},
		"labels": map[string]string{"tier": "gold"},
		"ptr":    &map[string]any{"x": "y"},
		"typed":  map[string]info{"a": {Name: "n"}},
	}

	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{"author.name", "Ada", true},
		{"author.missing", nil, false},
		{"deps.go", []string{"cobra"}, true},
		{"labels.tier", "gold", true},
		{"ptr.x", "y", true},
		{"typed.a", info{Name: "n"}, true},
		{"typed.a.Name", nil, false},
		{"", nil, false},
		{"nope", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Lookup(data, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruthy(t *testing.T) {
	var nilPtr *string
	s := "x"

	assert.False(t, Truthy(nilPtr))
	assert.True(t, Truthy(&s))
	assert.False(t, Truthy(Data{}))
	assert.True(t, Truthy(Data{"a": 1}))
	assert.False(t, Truthy(map[string]string{}))
	assert.True(t, Truthy([1]int{0}))
	assert.False(t, Truthy(0.0))
	assert.True(t, Truthy(int64(-1)))
}

func TestData_Merge(t *testing.T) {
	d := Data{
		"description": "local",
		"license":     "MIT",
		"stars":       0,
	}
	d.Merge(Data{
		"description": "remote",
		"license":     "",
		"stars":       12,
		"topics":      []string{},
		"homepage":    "https://example.com",
	})

	assert.Equal(t, "remote", d["description"])
	assert.Equal(t, "MIT", d["license"], "falsy values must not clobber")
	assert.Equal(t, 12, d["stars"])
	assert.Equal(t, "https://example.com", d["homepage"])
	assert.NotContains(t, d, "topics")
}

func TestListPolicy(t *testing.T) {
	items := []string{"a", "b"}

	tests := []struct {
		policy ListPolicy
		want   string
	}{
		{PolicyBullets, "- a\n- b"},
		{PolicyLines, "a\nb"},
		{PolicyComma, "a, b"},
		{PolicyInline, "a b"},
		{ListPolicy("bogus"), "- a\n- b"},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Join(items))
		})
	}

	assert.Equal(t, "", PolicyBullets.Join(nil))
}

func TestParseListPolicy(t *testing.T) {
	p, err := ParseListPolicy(" Comma ")
	require.NoError(t, err)
	assert.Equal(t, PolicyComma, p)

	_, err = ParseListPolicy("table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown list policy")

	assert.Len(t, ValidListPolicies(), 4)
	for _, name := range ValidListPolicies() {
		assert.True(t, ListPolicy(name).IsValid())
	}
}

func TestDefaultListPolicies_ReturnsCopy(t *testing.T) {
	a := DefaultListPolicies()
	a["languages"] = PolicyLines
	assert.Equal(t, PolicyComma, DefaultListPolicies()["languages"])
}
