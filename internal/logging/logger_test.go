package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetForTest(t *testing.T) {
	t.Helper()
	CloseAll()
	logsDir = ""
	settings = Settings{}
	logLevel = LevelInfo
	t.Cleanup(func() {
		CloseAll()
		logsDir = ""
		settings = Settings{}
	})
}

// TestAllCategoriesLog tests that all categories create log files when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	resetForTest(t)
	tempDir := t.TempDir()

	require.NoError(t, Initialize(tempDir, Settings{DebugMode: true, Level: "debug"}))
	assert.True(t, IsDebugMode())

	for _, cat := range AllCategories {
		require.True(t, IsCategoryEnabled(cat), "category %s should be enabled", cat)
		Get(cat).Info("info message for %s", cat)
		Get(cat).Debug("debug message for %s", cat)
	}
	Taxonomy("convenience taxonomy log")
	Journal("convenience journal log")

	CloseAll()

	entries, err := os.ReadDir(filepath.Join(tempDir, ".feel", "logs"))
	require.NoError(t, err)

	for _, cat := range AllCategories {
		found := false
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), "_"+string(cat)+".log") {
				found = true
				content, err := os.ReadFile(filepath.Join(tempDir, ".feel", "logs", entry.Name()))
				require.NoError(t, err)
				assert.NotEmpty(t, content, "log file for %s is empty", cat)
			}
		}
		assert.True(t, found, "no log file found for category %s", cat)
	}
}

// TestDebugModeDisabled tests that no logs are created when debug_mode is false
func TestDebugModeDisabled(t *testing.T) {
	resetForTest(t)
	tempDir := t.TempDir()

	require.NoError(t, Initialize(tempDir, Settings{DebugMode: false}))
	Get(CategoryWizard).Error("should not be written")

	_, err := os.Stat(filepath.Join(tempDir, ".feel", "logs"))
	assert.True(t, os.IsNotExist(err), "logs directory should not exist in production mode")
}

func TestCategoryFilter(t *testing.T) {
	resetForTest(t)
	tempDir := t.TempDir()

	require.NoError(t, Initialize(tempDir, Settings{
		DebugMode:  true,
		Categories: map[string]bool{"ui": false},
	}))

	assert.False(t, IsCategoryEnabled(CategoryUI))
	assert.True(t, IsCategoryEnabled(CategoryShare), "unlisted categories default to enabled")
}

func TestJSONFormat(t *testing.T) {
	resetForTest(t)
	tempDir := t.TempDir()

	require.NoError(t, Initialize(tempDir, Settings{DebugMode: true, Level: "info", JSONFormat: true}))
	Get(CategorySuggest).Info("hello %s", "json")
	Get(CategorySuggest).Debug("filtered by level")
	CloseAll()

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(tempDir, ".feel", "logs", date+"_suggest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello json"`)
	assert.Contains(t, string(data), `"cat":"suggest"`)
	assert.NotContains(t, string(data), "filtered by level")
}

func TestInitializeRequiresWorkspace(t *testing.T) {
	resetForTest(t)
	assert.Error(t, Initialize("", Settings{}))
}

func TestTimer(t *testing.T) {
	resetForTest(t)
	timer := StartTimer(CategoryTaxonomy, "fetch")
	assert.GreaterOrEqual(t, timer.StopWithThreshold(time.Hour), time.Duration(0))
}

func TestStructuredLogAndSlowTimer(t *testing.T) {
	resetForTest(t)
	tempDir := t.TempDir()

	require.NoError(t, Initialize(tempDir, Settings{DebugMode: true, Level: "info", JSONFormat: true}))
	Get(CategoryJournal).StructuredLog("info", "recorded journey", map[string]interface{}{"tertiary": 2})
	StartTimer(CategoryJournal, "record").StopWithThreshold(-time.Second)
	CloseAll()

	date := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(tempDir, ".feel", "logs", date+"_journal.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"recorded journey"`)
	assert.Contains(t, string(data), `"fields":{"tertiary":2}`)
	assert.Contains(t, string(data), "record took")
}
