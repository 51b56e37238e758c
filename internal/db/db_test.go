package db

import (
	"path/filepath"
	"testing"

	"github.com/pysugar/code-facts/internal/providers/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("FACTS_PROVIDERS_FILE", "")
	catalog.ResetForTest()
	t.Cleanup(catalog.ResetForTest)

	db, err := InitDB(filepath.Join(t.TempDir(), "facts.db"), logger.Silent)
	require.NoError(t, err)
	return db
}

func TestInitDB_UnopenablePath(t *testing.T) {
	_, err := InitDB(filepath.Join(t.TempDir(), "missing", "dir", "facts.db"), logger.Silent)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, ParseLogLevel(" info "))
	assert.Equal(t, logger.Warn, ParseLogLevel(""))
	assert.Equal(t, logger.Warn, ParseLogLevel("verbose"))
}
