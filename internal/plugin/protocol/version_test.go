package protocol

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		version     string
		expectError bool
		major       int
		minor       int
		patch       int
	}{
		{"0.1.0", false, 0, 1, 0},
		{"1.0.0", false, 1, 0, 0},
		{"v2.5.3", false, 2, 5, 3},
		{"10.99.42", false, 10, 99, 42},
		{"invalid", true, 0, 0, 0},
		{"1", true, 0, 0, 0},
		{"1.2", true, 0, 0, 0},
		{"1.-2.0", true, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			v, err := Parse(tt.version)
			if tt.expectError {
				if err == nil {
					t.Errorf("Parse(%q) expected error but got none", tt.version)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.version, err)
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Errorf("Parse(%q) = %s, want %d.%d.%d", tt.version, v, tt.major, tt.minor, tt.patch)
			}
		})
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		pluginVersion string
		compatible    bool
		errorContains string
	}{
		{"0.1.0", true, ""},
		{"0.1.7", true, ""},
		{"0.4.2", true, ""},
		{"0.0.9", false, "too old"},
		{"1.0.0", false, "incompatible major version"},
		{"2.0.0", false, "incompatible major version"},
		{"invalid", false, "failed to parse"},
		{"1.2", false, "invalid version format"},
	}

	for _, tt := range tests {
		t.Run(tt.pluginVersion, func(t *testing.T) {
			compatible, err := IsCompatible(tt.pluginVersion)
			if compatible != tt.compatible {
				t.Fatalf("IsCompatible(%q) = %v, want %v (err %v)", tt.pluginVersion, compatible, tt.compatible, err)
			}
			if tt.compatible {
				if err != nil {
					t.Errorf("IsCompatible(%q) unexpected error: %v", tt.pluginVersion, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("IsCompatible(%q) error = %v, want error containing %q", tt.pluginVersion, err, tt.errorContains)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"0.1.0", "0.1.0", 0},
		{"0.1.1", "0.1.0", 1},
		{"0.1.0", "0.2.0", -1},
		{"1.0.0", "0.9.9", 1},
	}

	for _, tt := range tests {
		a, _ := Parse(tt.a)
		b, _ := Parse(tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGetCurrentVersion(t *testing.T) {
	if got := GetCurrentVersion().String(); got != ProtocolVersion {
		t.Errorf("GetCurrentVersion() = %s, want %s", got, ProtocolVersion)
	}
	if uint(GetCurrentVersion().Major) != Handshake.ProtocolVersion {
		t.Errorf("handshake version %d does not match major of %s", Handshake.ProtocolVersion, ProtocolVersion)
	}
}

func TestParsePluginInfo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType PluginType
		wantErr  bool
	}{
		{name: "go-plugin", input: `{"name":"figma","plugin_protocol":"go-plugin"}`, wantType: PluginTypeGoPlugin},
		{name: "json-stdio", input: `{"name":"figma","plugin_protocol":"json-stdio"}`, wantType: PluginTypeJSON},
		{name: "missing protocol defaults to json", input: `{"name":"figma"}`, wantType: PluginTypeJSON},
		{name: "unknown protocol", input: `{"plugin_protocol":"grpc"}`, wantErr: true},
		{name: "not json", input: `figma 1.0`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePluginInfo([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePluginInfo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.Type != tt.wantType {
				t.Errorf("ParsePluginInfo().Type = %s, want %s", got.Type, tt.wantType)
			}
		})
	}
}

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"", false},
		{ProtocolVersion, false},
		{"9.0.0", true},
	}

	for _, tt := range tests {
		r := &DetectorResult{PluginInfo: PluginInfo{Name: "x", ProtocolVersion: tt.version}}
		if err := r.CheckCompatible(); (err != nil) != tt.wantErr {
			t.Errorf("CheckCompatible(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
		}
	}
}
