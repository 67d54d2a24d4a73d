// Package cli implements the mavi command surface.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mavi/internal/assistant"
	"mavi/internal/config"
	"mavi/internal/keystore"
	"mavi/internal/models"
	"mavi/internal/providers"
	"mavi/internal/render"

	"golang.org/x/term"
)

var errShowHelp = errors.New("show help")

// App encapsulates CLI runtime dependencies and loaded configuration.
type App struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	reader  *bufio.Reader
	cfgPath string
	cfg     *config.Config
	store   keystore.Store

	// newClient and newLineReader are swappable for tests.
	newClient     func(key models.Key, opts providers.ClientOptions) (providers.Client, error)
	newLineReader func() (lineReader, error)
}

// Run executes the mavi CLI with the provided process arguments and streams.
func Run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	global, rest, err := parseGlobalArgs(args)
	if err != nil {
		return err
	}

	cfgPath, err := config.ResolvePath(global.ConfigPath)
	if err != nil {
		return err
	}
	cfg, loadErr := config.Load(cfgPath)
	if loadErr != nil && !errors.Is(loadErr, config.ErrConfigNotFound) {
		return loadErr
	}
	if errors.Is(loadErr, config.ErrConfigNotFound) {
		if err := config.Save(cfgPath, cfg); err != nil {
			return err
		}
	}

	app := &App{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		reader:    bufio.NewReader(stdin),
		cfgPath:   cfgPath,
		cfg:       cfg,
		store:     keystore.New(),
		newClient: providers.New,
	}
	app.newLineReader = app.readlineReader

	if global.ShowVersion {
		fmt.Fprintln(app.stdout, version)
		return nil
	}
	if global.ShowHelp {
		helpArgs := append([]string{"help"}, rest...)
		return app.dispatch(helpArgs)
	}
	return app.dispatch(rest)
}

func (a *App) dispatch(args []string) error {
	if len(args) == 0 {
		printHelp(a.stdout, "", a.cfgPath)
		return nil
	}

	sub := strings.ToLower(strings.TrimSpace(args[0]))
	switch sub {
	case "help":
		topic := ""
		if len(args) > 1 {
			topic = strings.ToLower(strings.TrimSpace(args[1]))
		}
		printHelp(a.stdout, topic, a.cfgPath)
		return nil
	case "-h", "--help":
		printHelp(a.stdout, "", a.cfgPath)
		return nil
	case "version", "--version", "-v":
		fmt.Fprintln(a.stdout, version)
		return nil
	case "keys", "key":
		return a.runKeys(args[1:])
	case "chat":
		return a.runChat(args[1:])
	case "ask":
		return a.runAsk(args[1:])
	case "config":
		return a.runConfig(args[1:])
	default:
		return fmt.Errorf("unknown command %q (use --help)", sub)
	}
}

func (a *App) runAsk(args []string) error {
	opts, question, err := parseAskArgs(args)
	if err != nil {
		if errors.Is(err, errShowHelp) {
			printHelp(a.stdout, "ask", a.cfgPath)
			return nil
		}
		return err
	}

	var key models.Key
	if opts.Model != "" {
		key, err = models.Parse(opts.Model)
	} else {
		key, err = a.cfg.DefaultModelKey()
	}
	if err != nil {
		return err
	}

	client, err := a.clientFor(key)
	if err != nil {
		return err
	}

	renderMarkdown := a.cfg.RenderMarkdown && !opts.NoMarkdown
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	stop := startSpinner(isTerminalWriter(a.stdout), a.stdout, "Thinking")
	resp, err := client.Chat(ctx, providers.ChatRequest{
		Model:    a.cfg.ModelID(key),
		System:   assistant.BuildPrompt(renderMarkdown),
		Messages: []providers.Message{{Role: providers.RoleUser, Content: question}},
	})
	stop()
	if err != nil {
		return err
	}

	text := resp.Text
	if renderMarkdown {
		text = render.Markdown(text, terminalWidth(a.stdout))
	}
	fmt.Fprintln(a.stdout, text)
	return nil
}

// clientFor fetches the model's credential and builds its provider client.
func (a *App) clientFor(key models.Key) (providers.Client, error) {
	secret, err := a.store.Get(key)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return nil, fmt.Errorf("%w; run `mavi keys --set --model %s`", err, key)
		}
		return nil, err
	}
	return a.newClient(key, providers.ClientOptions{
		APIKey:  secret,
		BaseURL: a.cfg.BaseURL(key),
	})
}

func (a *App) saveConfig() error {
	return config.Save(a.cfgPath, a.cfg)
}

// promptLine reads one line from the shared stdin reader.
func (a *App) promptLine(prompt string) (string, error) {
	fmt.Fprint(a.stdout, prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a credential without echo when stdin is a terminal.
func (a *App) readSecret(prompt string) (string, error) {
	file, ok := a.stdin.(interface{ Fd() uintptr })
	if ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(a.stdout, prompt)
		raw, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(a.stdout)
		if err != nil {
			return "", fmt.Errorf("read api key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return a.promptLine(prompt)
}

func terminalWidth(w io.Writer) int {
	const fallback = 100
	fdw, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallback
	}
	fd := int(fdw.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
