// Package plugin provides the public API for contrastcraft exporter plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this contrastcraft version can work with.
	MinCompatibleVersion = "0.1.0"
)

// Handshake is the handshake configuration for go-plugin protocol.
// The go-plugin ProtocolVersion is the major version of ProtocolVersion; the
// full version is checked separately via --plugin-info.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0,
	MagicCookieKey:   "CONTRASTCRAFT_PLUGIN",
	MagicCookieValue: "contrastcraft_accent_scale",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)

// Command line arguments the host passes to plugin executables.
const (
	ArgPluginInfo  = "--plugin-info"
	ArgPreExecute  = "--pre-execute"
	ArgPostExecute = "--post-execute"
)
