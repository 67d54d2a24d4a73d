package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"mavi/internal/models"
)

func (a *App) runConfig(args []string) error {
	if len(args) == 0 {
		return a.configShow()
	}
	if isHelpToken(args[0]) {
		printHelp(a.stdout, "config", a.cfgPath)
		return nil
	}

	sub := strings.ToLower(strings.TrimSpace(args[0]))
	switch sub {
	case "show":
		return a.configShow()
	case "set-model":
		if len(args) != 2 {
			return usageError("mavi config set-model <%s>", models.Names())
		}
		return a.configSetModel(args[1])
	case "markdown":
		if len(args) != 2 {
			return usageError("mavi config markdown on|off")
		}
		return a.configMarkdown(args[1])
	default:
		return fmt.Errorf("unknown config subcommand %q", sub)
	}
}

func (a *App) configShow() error {
	tw := tabwriter.NewWriter(a.stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "config:\t%s\n", a.cfgPath)
	fmt.Fprintf(tw, "default model:\t%s\n", a.cfg.DefaultModel)
	fmt.Fprintf(tw, "markdown:\t%v\n", a.cfg.RenderMarkdown)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MODEL\tMODEL ID\tBASE URL")
	for _, key := range models.Supported() {
		base := a.cfg.BaseURL(key)
		if base == "" {
			defaults, _ := models.DefaultsFor(key)
			base = defaults.BaseURL
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, a.cfg.ModelID(key), base)
	}
	return tw.Flush()
}

func (a *App) configSetModel(name string) error {
	key, err := models.Parse(name)
	if err != nil {
		return err
	}
	a.cfg.SetDefaultModel(key)
	if err := a.saveConfig(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "default model set to %s\n", key)
	return nil
}

func (a *App) configMarkdown(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true":
		a.cfg.RenderMarkdown = true
	case "off", "false":
		a.cfg.RenderMarkdown = false
	default:
		return usageError("mavi config markdown on|off")
	}
	if err := a.saveConfig(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "markdown rendering %v\n", a.cfg.RenderMarkdown)
	return nil
}
