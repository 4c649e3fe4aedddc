package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTools(t *testing.T) {
	tools, err := LocalTools()
	require.NoError(t, err)

	weather, ok := tools["get_local_weather"]
	require.True(t, ok)
	assert.NotEmpty(t, weather.Description)

	props, ok := weather.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "city")

	required, ok := weather.Parameters["required"].([]any)
	require.True(t, ok)
	assert.Contains(t, required, "city")

	assert.NotContains(t, weather.Parameters, "$schema")
	assert.NotContains(t, weather.Parameters, "$id")
}

func TestToolMetadata(t *testing.T) {
	meta := ToolMetadata()

	tools, ok := meta["custom_tools"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, tools, "get_local_weather")
}

func TestGetLocalWeather(t *testing.T) {
	result := GetLocalWeather("Paris")
	assert.Contains(t, result, "Paris")
	assert.Contains(t, result, "22°C")
}
