package core

import "github.com/hupe1980/agentchat/internal/util"

// FunctionContract declaratively describes a callable function exposed to an
// agent. Parameters is a minimal JSON-Schema-like map (type, properties,
// required) matching what LLM providers accept as tool definitions.
type FunctionContract struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// NewFunctionContractFromStruct derives the parameter schema from a struct
// using reflection. It is a convenience for simple argument containers.
//
// Example:
//
//	type WeatherArgs struct {
//	  City string `json:"city" description:"City to look up"`
//	}
//
//	contract := NewFunctionContractFromStruct(
//	  "get_weather",
//	  "Look up the current weather for a city",
//	  WeatherArgs{},
//	)
func NewFunctionContractFromStruct(name, description string, structType any) FunctionContract {
	return FunctionContract{
		Name:        name,
		Description: description,
		Parameters:  util.CreateSchema(structType),
	}
}

// ValidateArguments checks parsed arguments against the contract's schema.
func (c FunctionContract) ValidateArguments(args map[string]any) error {
	if c.Parameters == nil {
		return nil
	}
	return util.ValidateParameters(args, c.Parameters)
}
