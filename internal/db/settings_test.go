package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_SetGetRoundTrip(t *testing.T) {
	s := NewSettings(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySelectedProvider, "openai"))
	require.NoError(t, s.Set(ctx, "theme", map[string]any{"dark": true, "size": 3}))

	v, ok, err := s.Get(ctx, KeySelectedProvider)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "openai", v)

	v, ok, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"dark": true, "size": float64(3)}, v)
}

func TestSettings_MissingKey(t *testing.T) {
	s := NewSettings(newTestDB(t))

	v, ok, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	str, err := s.GetString(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, str)
}

func TestSettings_LastWriteWins(t *testing.T) {
	s := NewSettings(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeyAPIKey, "first"))
	require.NoError(t, s.Set(ctx, KeyAPIKey, "second"))

	got, err := s.GetString(ctx, KeyAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSettings_GetStringIgnoresNonStrings(t *testing.T) {
	s := NewSettings(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySelectedModel, 42))
	got, err := s.GetString(ctx, KeySelectedModel)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSettings_SetDefaultDoesNotOverwrite(t *testing.T) {
	s := NewSettings(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.SetDefault(ctx, KeyBaseURL, "http://seeded"))
	got, err := s.GetString(ctx, KeyBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "http://seeded", got)

	require.NoError(t, s.Set(ctx, KeyBaseURL, "http://user"))
	require.NoError(t, s.SetDefault(ctx, KeyBaseURL, "http://seeded"))
	got, err = s.GetString(ctx, KeyBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "http://user", got)
}

func TestSettings_GetAllSnapshot(t *testing.T) {
	s := NewSettings(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySelectedProvider, "ollama"))
	require.NoError(t, s.Set(ctx, KeyBaseURL, "http://localhost:11434"))

	snapshot, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		KeySelectedProvider: "ollama",
		KeyBaseURL:          "http://localhost:11434",
	}, snapshot)

	require.NoError(t, s.Set(ctx, KeySelectedProvider, "openai"))
	assert.Equal(t, "ollama", snapshot[KeySelectedProvider])
}

func TestSettings_AnyJSONValueRoundTrips(t *testing.T) {
	s := NewSettings(newTestDB(t))
	ctx := context.Background()

	values := map[string]any{
		"int":    float64(42),
		"float":  3.5,
		"zero":   float64(0),
		"bool":   true,
		"null":   nil,
		"string": "42",
		"object": map[string]any{"n": float64(5), "nested": []any{"a", float64(1)}},
		"array":  []any{float64(1), "two", false},
	}
	for key, value := range values {
		require.NoError(t, s.Set(ctx, key, value), key)
	}

	for key, want := range values {
		got, ok, err := s.Get(ctx, key)
		require.NoError(t, err, key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, values, all)
}

func TestSettings_NumericModelDoesNotBreakReads(t *testing.T) {
	s := NewSettings(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, KeySelectedProvider, "openai"))
	require.NoError(t, s.Set(ctx, KeySelectedModel, 5))

	provider, err := s.GetString(ctx, KeySelectedProvider)
	require.NoError(t, err)
	assert.Equal(t, "openai", provider)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(5), all[KeySelectedModel])
}
