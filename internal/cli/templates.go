package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/contrastcraft/internal/plugin/manager"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output"
	"github.com/jmylchreest/contrastcraft/internal/plugin/output/template"
)

type templateOptions struct {
	plugins  []string
	force    bool
	location string
}

func newTemplatesCmd(a *app) *cobra.Command {
	opts := &templateOptions{}

	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `List and dump the embedded templates used by the css, scss and tailwind plugins.

Dumped templates are written to <user config dir>/contrastcraft/templates/{plugin-name}/
and are used instead of the embedded ones.

Examples:
  contrastcraft templates list
  contrastcraft templates dump -p css,tailwind
  contrastcraft templates dump -p css --force
  contrastcraft templates dump -l ./templates`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available plugin templates",
		Long: `List the embedded templates of every output plugin that has them.

Templates with an active custom override are marked with an asterisk (*).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesList(cmd.OutOrStdout(), a.plugins, opts)
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump embedded templates to files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplatesDump(cmd.OutOrStdout(), cmd.ErrOrStderr(), a.plugins, opts)
		},
	}

	templatesCmd.PersistentFlags().StringSliceVarP(&opts.plugins, "plugins", "p", nil, "comma-separated list of output plugins (default: all)")
	dumpCmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing custom templates")
	dumpCmd.Flags().StringVarP(&opts.location, "location", "l", "", "directory to dump templates to (default: the user config dir)")

	templatesCmd.AddCommand(listCmd, dumpCmd)
	return templatesCmd
}

// templateLoaders returns a loader per requested plugin that ships templates,
// keyed and ordered by plugin name.
func templateLoaders(m *manager.Manager, names []string, customBase string) ([]string, map[string]*template.Loader, error) {
	if len(names) == 0 {
		names = m.Registry().List()
	}

	var (
		order   []string
		loaders = make(map[string]*template.Loader)
	)
	for _, name := range names {
		p, ok := m.Get(name)
		if !ok {
			return nil, nil, fmt.Errorf("plugin %q not found", name)
		}
		provider, ok := p.(output.TemplateProvider)
		if !ok {
			continue
		}
		loader := template.New(p.Name(), provider.GetEmbeddedFS())
		if customBase != "" {
			loader = loader.WithCustomBase(customBase)
		}
		order = append(order, p.Name())
		loaders[p.Name()] = loader
	}
	return order, loaders, nil
}

func runTemplatesList(w io.Writer, m *manager.Manager, opts *templateOptions) error {
	names, loaders, err := templateLoaders(m, opts.plugins, "")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "No plugin templates available")
		return nil
	}

	hasCustom := false
	t := NewTable("PLUGIN", "TEMPLATE", "SOURCE")
	for _, name := range names {
		loader := loaders[name]
		templates, err := loader.ListEmbeddedTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates for %s: %w", name, err)
		}
		for _, tmpl := range templates {
			info := loader.GetInfo(tmpl)
			source := "embedded"
			if info.CustomExists {
				tmpl += "*"
				source = info.CustomPath
				hasCustom = true
			}
			t.AddRow(name, tmpl, source)
		}
	}

	fmt.Fprint(w, t.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "To customize a template, use: contrastcraft templates dump -p <plugin-name>")
	if hasCustom {
		fmt.Fprintln(w, "Templates with active overrides are shown with an asterisk (*).")
	}
	return nil
}

func runTemplatesDump(w, errw io.Writer, m *manager.Manager, opts *templateOptions) error {
	customBase, err := expandHome(strings.TrimSpace(opts.location))
	if err != nil {
		return err
	}
	names, loaders, err := templateLoaders(m, opts.plugins, customBase)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no matching plugins with templates")
	}

	total := 0
	for _, name := range names {
		fmt.Fprintf(w, "Dumping templates for %s...\n", name)

		dumped, err := loaders[name].DumpAllTemplates(opts.force)
		for _, path := range dumped {
			fmt.Fprintf(w, "  ├─ %s\n", path)
			total++
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, template.ErrTemplateExists) {
			return fmt.Errorf("failed to dump templates for %s: %w", name, err)
		}
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(errw, "  ⊘ %s\n", line)
		}
	}

	fmt.Fprintln(w)
	if total == 0 {
		fmt.Fprintln(w, "No templates were dumped. Use --force to overwrite existing templates.")
		return nil
	}
	fmt.Fprintf(w, "✓ Dumped %d template(s)\n", total)
	return nil
}
