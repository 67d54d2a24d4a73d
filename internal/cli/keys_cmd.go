package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"mavi/internal/models"
)

func (a *App) runKeys(args []string) error {
	opts, err := parseKeysArgs(args)
	if err != nil {
		if errors.Is(err, errShowHelp) {
			printHelp(a.stdout, "keys", a.cfgPath)
			return nil
		}
		return err
	}

	switch {
	case opts.Set:
		return a.keysSet(opts.Model)
	case opts.Delete:
		return a.keysDelete(opts.Model)
	default:
		return a.keysStatus()
	}
}

func (a *App) keysStatus() error {
	entries, err := a.store.Status()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tAPI KEY")
	for _, entry := range entries {
		status := "not set"
		if entry.Present {
			status = "set"
		}
		fmt.Fprintf(tw, "%s\t%s\n", entry.Model, status)
	}
	return tw.Flush()
}

func (a *App) keysSet(modelFlag string) error {
	key, err := a.resolveKey(modelFlag, "Select a model to set the API key:")
	if err != nil {
		return err
	}

	secret, err := a.readSecret(fmt.Sprintf("API key for %s: ", key))
	if err != nil {
		return err
	}
	if err := a.store.Set(key, secret); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "saved API key for %s\n", key)
	return nil
}

func (a *App) keysDelete(modelFlag string) error {
	key, err := a.resolveKey(modelFlag, "Select a model to delete the API key:")
	if err != nil {
		return err
	}
	if err := a.store.Delete(key); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "deleted API key for %s\n", key)
	return nil
}

// resolveKey parses the --model flag or falls back to a numbered prompt
// over the supported keys.
func (a *App) resolveKey(modelFlag string, header string) (models.Key, error) {
	if modelFlag != "" {
		return models.Parse(modelFlag)
	}

	supported := models.Supported()
	fmt.Fprintln(a.stdout, header)
	for i, key := range supported {
		fmt.Fprintf(a.stdout, "%d. %s\n", i+1, key)
	}

	for {
		line, err := a.promptLine("Enter the number of the model: ")
		if err != nil {
			return "", err
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(supported) {
			fmt.Fprintln(a.stdout, "invalid choice, please try again")
			continue
		}
		return supported[n-1], nil
	}
}
