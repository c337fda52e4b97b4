package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/jmylchreest/contrastcraft/pkg/plugin"
)

// DetectTimeout bounds the --plugin-info query.
const DetectTimeout = 5 * time.Second

// DetectorResult contains information about a detected plugin protocol.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type PluginType

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo PluginInfo
}

// DetectProtocol runs the plugin with --plugin-info and detects its protocol.
func DetectProtocol(ctx context.Context, pluginPath string) (*DetectorResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DetectTimeout)
	defer cancel()

	// #nosec G204 -- path is an absolute plugin path validated at registration
	cmd := exec.CommandContext(ctx, pluginPath, plugin.ArgPluginInfo)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}

	return ParsePluginInfo(output)
}

// ParsePluginInfo decodes --plugin-info output. An empty plugin_protocol
// means json-stdio.
func ParsePluginInfo(data []byte) (*DetectorResult, error) {
	var info PluginInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	result := &DetectorResult{PluginInfo: info}

	switch PluginType(info.PluginProtocol) {
	case PluginTypeGoPlugin:
		result.Type = PluginTypeGoPlugin
	case PluginTypeJSON, "":
		result.Type = PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	return result, nil
}

// CheckCompatible returns an error if the plugin's protocol version is not
// usable. Plugins that omit protocol_version are accepted.
func (r *DetectorResult) CheckCompatible() error {
	if r.PluginInfo.ProtocolVersion == "" {
		return nil
	}
	if ok, err := IsCompatible(r.PluginInfo.ProtocolVersion); !ok {
		return fmt.Errorf("plugin %q protocol version %s is incompatible with %s: %w",
			r.PluginInfo.Name, r.PluginInfo.ProtocolVersion, ProtocolVersion, err)
	}
	return nil
}
