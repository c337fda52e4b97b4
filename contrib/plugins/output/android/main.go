// Command android is an example contrastcraft exporter that writes an Android
// colors.xml resource over the go-plugin RPC protocol.
package main

import (
	"github.com/jmylchreest/contrastcraft/pkg/plugin"
)

const (
	Version = "0.1.0"
	Name    = "android"
)

func main() {
	plugin.Serve(&Exporter{})
}
