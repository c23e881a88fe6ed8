package rules

import (
	"os"
	"path/filepath"
	"testing"

	"whereismymoney/wimm/internal/patterns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathUsesBuiltins(t *testing.T) {
	rules, err := NewRuleStore("").Load()
	require.NoError(t, err)
	assert.Equal(t, patterns.DefaultCategoryRules(), rules)
}

func TestLoad_MissingFileUsesBuiltins(t *testing.T) {
	rules, err := NewRuleStore(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, patterns.DefaultCategoryRules(), rules)
}

func TestLoad_FileOverridesBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := `categories:
  - name: 饮品
    keywords:
      - 咖啡
      - 奶茶
  - name: 日用
    keywords:
      - 超市
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := NewRuleStore(path).Load()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "饮品", rules[0].Name)
	assert.Equal(t, []string{"咖啡", "奶茶"}, rules[0].Keywords)
	assert.Equal(t, "日用", rules[1].Name)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [broken"), 0o644))

	_, err := NewRuleStore(path).Load()
	assert.Error(t, err)
}

func TestLoad_EmptyRuleListUsesBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []"), 0o644))

	rules, err := NewRuleStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, patterns.DefaultCategoryRules(), rules)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "categories.yaml")
	store := NewRuleStore(path)

	custom := []patterns.CategoryRule{
		{Name: "饮品", Keywords: []string{"咖啡"}},
	}
	require.NoError(t, store.Save(custom))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, custom, loaded)
}

func TestSave_RequiresPath(t *testing.T) {
	err := NewRuleStore("").Save(patterns.DefaultCategoryRules())
	assert.Error(t, err)
}
