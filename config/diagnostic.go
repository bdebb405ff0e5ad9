package config

import "fmt"

// Diagnostic is a non-fatal note produced while resolving configuration.
type Diagnostic struct {
	// PropertyName is the configuration key the note is about.
	PropertyName string `json:"propertyName"`
	Message      string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.PropertyName == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.PropertyName, d.Message)
}
