package commands

import (
	"strconv"

	"git.home.luguber.info/inful/confdocs/internal/config"
	"git.home.luguber.info/inful/confdocs/internal/conformance"
	"git.home.luguber.info/inful/confdocs/internal/markdown"
	"git.home.luguber.info/inful/confdocs/internal/table"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Directory string `short:"d" help:"Reports directory (overrides reports.directory)" type:"path"`
}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if d.Directory != "" {
		cfg.Reports.Directory = d.Directory
	}
	return RunDiscover(g, cfg)
}

// RunDiscover loads every report and prints one line per (report, profile).
func RunDiscover(g *Global, cfg *config.Config) error {
	files, err := conformance.Discover(cfg.Reports.Directory, cfg.Reports.Pattern)
	if err != nil {
		return err
	}
	reports, err := conformance.LoadAll(files)
	if err != nil {
		return err
	}

	t := table.New("Report", "Organization", "Project", "Version", "Category", "Core", "Extended", "Supported Features")
	for _, r := range conformance.Flatten(reports) {
		if err := t.Append(r.Source, r.Organization, r.Project, r.Version, r.Category,
			r.CoreResult, r.ExtendedResult, strconv.Itoa(len(r.SupportedFeatures))); err != nil {
			return err
		}
	}
	_, err = g.Out.Write(markdown.RenderTable(t))
	return err
}
