package commands

// GenerateCmd implements the 'generate' command: tables only, no static copy.
type GenerateCmd struct {
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path" type:"path"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	return RunBuild(g, cfg, true, c.MetricsFile)
}
