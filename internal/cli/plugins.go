package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/plugin/manager"
)

func newPluginsCmd(a *app) *cobra.Command {
	pluginsCmd := &cobra.Command{
		Use:     "plugins",
		Aliases: []string{"plugin"},
		Short:   "Inspect output plugins",
		Long: `Inspect the built-in output plugins and any external plugins declared in the
config file under "plugins.external".

External plugins are disabled until they are listed in "plugins.enabled".`,
	}

	pluginsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List output plugins and whether they are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadConfig(cmd.Context(), nil); err != nil {
				return err
			}
			defer a.plugins.Close()

			fmt.Fprint(cmd.OutOrStdout(), pluginTable(a.plugins).Render())
			return nil
		},
	})

	return pluginsCmd
}

// pluginTable lists every registered plugin with its source and status.
func pluginTable(m *manager.Manager) *Table {
	t := NewTable("NAME", "TYPE", "STATUS", "VERSION", "DESCRIPTION")
	t.SetColumnMaxWidth(4, 60)

	for _, name := range m.Registry().List() {
		p, _ := m.Get(name)

		kind, ver := "builtin", "-"
		if ext, ok := p.(*manager.ExternalOutputPlugin); ok {
			kind, ver = "external", ext.Version()
		}

		status := "disabled"
		if m.IsEnabled(p) {
			status = "enabled"
		}

		t.AddRow(name, kind, status, ver, p.Description())
	}
	return t
}
