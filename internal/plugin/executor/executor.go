// Package executor runs external exporter plugins regardless of their
// underlying protocol (go-plugin RPC or JSON-stdio).
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/contrastcraft/internal/plugin/protocol"
	"github.com/jmylchreest/contrastcraft/pkg/plugin"
)

// Hook timeouts for json-stdio plugins.
const (
	PreExecuteTimeout  = 5 * time.Second
	PostExecuteTimeout = 10 * time.Second
)

// ErrUnsupportedProtocol is returned for plugins with an unknown protocol type.
var ErrUnsupportedProtocol = errors.New("unsupported protocol type")

// PluginExecutor runs a single plugin binary.
type PluginExecutor struct {
	path         string
	name         string
	protocolType protocol.PluginType
	runner       ProcessRunner
	logger       hclog.Logger

	client    *goplugin.Client
	rpcClient *plugin.OutputPluginRPCClient
}

// Option configures a PluginExecutor.
type Option func(*PluginExecutor)

// WithLogger sets the logger used for plugin diagnostics and go-plugin output.
func WithLogger(logger hclog.Logger) Option {
	return func(e *PluginExecutor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRunner sets the process runner used for json-stdio plugins.
func WithRunner(runner ProcessRunner) Option {
	return func(e *PluginExecutor) {
		if runner != nil {
			e.runner = runner
		}
	}
}

// WithName sets the name used for raw output files. Defaults to the binary name.
func WithName(name string) Option {
	return func(e *PluginExecutor) {
		if name != "" {
			e.name = name
		}
	}
}

// New creates a PluginExecutor by querying the plugin's protocol.
func New(ctx context.Context, pluginPath string, opts ...Option) (*PluginExecutor, error) {
	result, err := protocol.DetectProtocol(ctx, pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	if result.PluginInfo.Name != "" {
		opts = append([]Option{WithName(result.PluginInfo.Name)}, opts...)
	}
	return NewWithProtocol(pluginPath, result.Type, opts...), nil
}

// NewWithProtocol creates a PluginExecutor for a plugin whose protocol is already known.
func NewWithProtocol(pluginPath string, protocolType protocol.PluginType, opts ...Option) *PluginExecutor {
	e := &PluginExecutor{
		path:         pluginPath,
		name:         strings.TrimSuffix(filepath.Base(pluginPath), filepath.Ext(pluginPath)),
		protocolType: protocolType,
		runner:       NewRealProcessRunner(),
		logger:       hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Protocol returns the plugin's protocol type.
func (e *PluginExecutor) Protocol() protocol.PluginType {
	return e.protocolType
}

// ExecuteOutput runs an output plugin and returns generated files.
func (e *PluginExecutor) ExecuteOutput(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.outputRPCClient()
		if err != nil {
			return nil, err
		}
		return client.Generate(ctx, palette)
	case protocol.PluginTypeJSON:
		return e.executeOutputJSON(ctx, palette)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, e.protocolType)
	}
}

// PreExecute runs the output plugin's pre-execution hook.
func (e *PluginExecutor) PreExecute(ctx context.Context) (skip bool, reason string, err error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.outputRPCClient()
		if err != nil {
			return false, "", err
		}
		return client.PreExecute(ctx)
	case protocol.PluginTypeJSON:
		return e.preExecuteJSON(ctx)
	default:
		return false, "", fmt.Errorf("%w: %s", ErrUnsupportedProtocol, e.protocolType)
	}
}

// PostExecute runs the output plugin's post-execution hook.
func (e *PluginExecutor) PostExecute(ctx context.Context, writtenFiles []string) error {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.outputRPCClient()
		if err != nil {
			return err
		}
		return client.PostExecute(ctx, writtenFiles)
	case protocol.PluginTypeJSON:
		return e.postExecuteJSON(ctx, writtenFiles)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedProtocol, e.protocolType)
	}
}

// Close kills the plugin process, if one is running. It is safe to call more than once.
func (e *PluginExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// outputRPCClient starts the plugin process on first use and keeps it for
// the executor's lifetime.
func (e *PluginExecutor) outputRPCClient() (*plugin.OutputPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: goplugin.PluginSet{
			plugin.PluginSetKey: &plugin.OutputPluginRPC{},
		},
		// #nosec G204 -- path is an absolute plugin path validated at registration
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger.Named(e.name),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginSetKey)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*plugin.OutputPluginRPCClient)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("unexpected plugin client type %T", raw)
	}
	e.rpcClient = client
	return client, nil
}

func (e *PluginExecutor) executeOutputJSON(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	paletteJSON, err := json.Marshal(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}
	e.logger.Trace("sending palette to plugin", "plugin", e.name, "bytes", len(paletteJSON))

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(paletteJSON))
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w%s", err, stderrSuffix(stderr))
	}

	return e.parseOutput(stdout)
}

// parseOutput accepts either a FileResponse document or raw bytes, which are
// stored as <name>-output.txt.
func (e *PluginExecutor) parseOutput(stdout []byte) (map[string][]byte, error) {
	result := make(map[string][]byte)

	trimmed := bytes.TrimSpace(stdout)
	if len(trimmed) == 0 {
		return result, nil
	}

	if trimmed[0] == '{' {
		var resp plugin.FileResponse
		if err := json.Unmarshal(trimmed, &resp); err == nil && resp.Files != nil {
			for name, content := range resp.Files {
				result[name] = []byte(content)
			}
			return result, nil
		}
	}

	result[e.name+"-output.txt"] = stdout
	return result, nil
}

func (e *PluginExecutor) preExecuteJSON(ctx context.Context) (bool, string, error) {
	execCtx, cancel := context.WithTimeout(ctx, PreExecuteTimeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(execCtx, e.path, []string{plugin.ArgPreExecute}, nil)
	if err == nil {
		return false, "", nil
	}

	// Exit code 0 = continue, 1 = skip, 2+ = error.
	var exitErr ExitCoder
	if !errors.As(err, &exitErr) {
		return false, "", fmt.Errorf("pre-execute failed: %w", err)
	}

	if exitErr.ExitCode() == 1 {
		reason := strings.TrimSpace(string(stdout))
		if reason == "" {
			reason = "plugin requested skip"
		}
		return true, reason, nil
	}

	errMsg := strings.TrimSpace(string(stderr))
	if errMsg == "" {
		errMsg = fmt.Sprintf("exit code %d", exitErr.ExitCode())
	}
	return false, "", fmt.Errorf("pre-execute failed: %s", errMsg)
}

func (e *PluginExecutor) postExecuteJSON(ctx context.Context, writtenFiles []string) error {
	execCtx, cancel := context.WithTimeout(ctx, PostExecuteTimeout)
	defer cancel()

	filesJSON, err := json.Marshal(map[string]any{
		"written_files": writtenFiles,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal files: %w", err)
	}

	_, stderr, err := e.runner.Run(execCtx, e.path, []string{plugin.ArgPostExecute}, bytes.NewReader(filesJSON))
	if err != nil {
		return fmt.Errorf("post-execute failed: %w%s", err, stderrSuffix(stderr))
	}
	return nil
}

func stderrSuffix(stderr []byte) string {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return ""
	}
	return ": " + msg
}
