package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("Warning").String())
	assert.Panics(t, func() { parseLevel("verbose") })
}

func TestNew_InvalidEncodingPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New("tarot_bot", &Config{Encoding: "xml"}) })
	assert.NotPanics(t, func() { New("tarot_bot", nil) })
}

func TestDailyFile_RotatesByDay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2025, time.May, 1, 23, 59, 0, 0, time.UTC)
	f := NewDailyFile(dir)
	f.now = func() time.Time { return now }
	t.Cleanup(func() { _ = f.Close() })

	_, err := f.Write([]byte("first\n"))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = f.Write([]byte("second\n"))
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(dir, "bot_2025-05-01.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "bot_2025-05-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(second))
}
