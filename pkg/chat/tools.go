package chat

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// weatherArgs describes the arguments accepted by get_local_weather.
type weatherArgs struct {
	City string `json:"city" jsonschema:"required,description=The city to get weather for"`
}

// ToolDescriptor advertises a locally implemented tool to the remote agent.
type ToolDescriptor struct {
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// LocalTools returns the tool descriptors this client advertises.
func LocalTools() (map[string]ToolDescriptor, error) {
	params, err := argsSchema[weatherArgs]()
	if err != nil {
		return nil, fmt.Errorf("failed to build get_local_weather schema: %w", err)
	}
	return map[string]ToolDescriptor{
		"get_local_weather": {
			Description: "Get the local weather for a city",
			Parameters:  params,
		},
	}, nil
}

// ToolMetadata wraps the local tool descriptors for attachment to an
// outgoing message's metadata. A schema failure here would be a programming
// error in the descriptor structs, so it panics rather than returning.
func ToolMetadata() map[string]any {
	tools, err := LocalTools()
	if err != nil {
		panic(err)
	}
	descriptors := make(map[string]any, len(tools))
	for name, tool := range tools {
		descriptors[name] = tool
	}
	return map[string]any{"custom_tools": descriptors}
}

// GetLocalWeather is the client-side implementation backing the advertised
// get_local_weather descriptor. In a real deployment this would hit a local
// sensor or a specific API.
func GetLocalWeather(city string) string {
	return fmt.Sprintf("The weather in %s is currently 22°C and sunny (fetched via Client Tool).", city)
}

// argsSchema generates a JSON schema for a tool argument struct using
// jsonschema struct tags.
func argsSchema[T any]() (map[string]any, error) {
	reflector := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(T))

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	delete(result, "$schema")
	delete(result, "$id")
	return result, nil
}
