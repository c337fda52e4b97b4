package protocol

import (
	"github.com/jmylchreest/contrastcraft/pkg/plugin"
)

// Handshake is the go-plugin handshake shared with plugin binaries.
var Handshake = plugin.Handshake

// PluginType defines the type of plugin communication protocol.
type PluginType = plugin.PluginType

const (
	PluginTypeGoPlugin = plugin.PluginTypeGoPlugin
	PluginTypeJSON     = plugin.PluginTypeJSON
)

// PluginInfo is the metadata a plugin prints for --plugin-info.
type PluginInfo = plugin.PluginInfo

// PaletteData is the payload sent to output plugins.
type PaletteData = plugin.PaletteData
