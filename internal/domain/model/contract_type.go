package model

// ParameterType enumerates the value kinds a contract parameter may take.
type ParameterType string

const (
	ParameterText    ParameterType = "text"
	ParameterNumber  ParameterType = "number"
	ParameterDate    ParameterType = "date"
	ParameterSelect  ParameterType = "select"
	ParameterBoolean ParameterType = "boolean"
)

// ContractParameterSpec describes one input field of a contract type.
// If Type is ParameterSelect, Options must be non-empty.
type ContractParameterSpec struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         ParameterType `json:"type"`
	Required     bool          `json:"required"`
	Description  string        `json:"description"`
	Options      []string      `json:"options,omitempty"`
	DefaultValue any           `json:"defaultValue,omitempty"`
}

// ContractTypeDefinition is an immutable catalog entry. Definitions are fixed
// at process start and never persisted.
type ContractTypeDefinition struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Parameters  []ContractParameterSpec `json:"parameters"`
}
