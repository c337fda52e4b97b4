package plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as a go-plugin output plugin. Invoked with --plugin-info it
// prints the plugin metadata as JSON and exits instead.
func Serve(impl OutputPlugin) {
	if len(os.Args) > 1 && os.Args[1] == ArgPluginInfo {
		if err := WritePluginInfo(os.Stdout, impl.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: plugin.PluginSet{
			PluginSetKey: &OutputPluginRPC{Impl: impl},
		},
	})
}

// WritePluginInfo writes info as indented JSON. Empty protocol fields are
// filled with the current ProtocolVersion and go-plugin.
func WritePluginInfo(w io.Writer, info PluginInfo) error {
	if info.ProtocolVersion == "" {
		info.ProtocolVersion = ProtocolVersion
	}
	if info.PluginProtocol == "" {
		info.PluginProtocol = string(PluginTypeGoPlugin)
	}
	if info.Type == "" {
		info.Type = "output"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

// ReadPaletteData decodes the palette a json-stdio plugin receives on stdin.
func ReadPaletteData(r io.Reader) (PaletteData, error) {
	var data PaletteData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return PaletteData{}, fmt.Errorf("failed to decode palette: %w", err)
	}
	return data, nil
}

// WriteFiles writes files as a FileResponse document for the host to store.
func WriteFiles(w io.Writer, files map[string][]byte) error {
	resp := FileResponse{Files: make(map[string]string, len(files))}
	for name, content := range files {
		resp.Files[name] = string(content)
	}
	return json.NewEncoder(w).Encode(resp)
}
