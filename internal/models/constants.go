// Package models contains data types and constants for the Gemini API.
package models

import "strings"

// Endpoints for the Gemini generative-language API
const (
	EndpointBase = "https://generativelanguage.googleapis.com/v1beta"
)

// HeaderAPIKey carries the API key on every request
const HeaderAPIKey = "x-goog-api-key"

// Model represents a Gemini model addressed by name in the request path
type Model struct {
	Name        string
	Description string
}

// Available models
var (
	Model25Flash = Model{
		Name:        "gemini-2.5-flash",
		Description: "Fast general-purpose model",
	}

	Model25FlashLite = Model{
		Name:        "gemini-2.5-flash-lite",
		Description: "Lowest latency model",
	}

	Model25Pro = Model{
		Name:        "gemini-2.5-pro",
		Description: "Most capable reasoning model",
	}

	// DefaultModel is the recommended default
	DefaultModel = Model25Flash
)

// AllModels returns a list of all known models
func AllModels() []Model {
	return []Model{Model25Flash, Model25FlashLite, Model25Pro}
}

// ModelFromName returns a Model by its name. Short aliases ("fast", "lite",
// "pro") are accepted; any other non-empty name is passed through so newer or
// older models (for example "gemini-pro") can still be addressed.
func ModelFromName(name string) Model {
	name = strings.TrimSpace(strings.TrimPrefix(name, "models/"))
	switch name {
	case "", "fast":
		return DefaultModel
	case "lite":
		return Model25FlashLite
	case "pro":
		return Model25Pro
	}

	for _, m := range AllModels() {
		if m.Name == name {
			return m
		}
	}
	return Model{Name: name}
}

// GenerateEndpoint returns the generateContent URL for the model
func (m Model) GenerateEndpoint() string {
	return EndpointBase + "/models/" + m.Name + ":generateContent"
}

// DefaultHeaders returns the default headers for API requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "geminichat/" + UserAgentVersion,
	}
}

// UserAgentVersion is reported in the User-Agent header
var UserAgentVersion = "0.1.0"
