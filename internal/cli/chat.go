package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"mavi/internal/assistant"
	"mavi/internal/models"
	"mavi/internal/providers"
	"mavi/internal/render"

	"github.com/chzyer/readline"
)

const banner = `
███╗   ███╗ █████╗ ██╗   ██╗██╗
████╗ ████║██╔══██╗██║   ██║██║
██╔████╔██║███████║██║   ██║██║
██║╚██╔╝██║██╔══██║╚██╗ ██╔╝██║
██║ ╚═╝ ██║██║  ██║ ╚████╔╝ ██║
╚═╝     ╚═╝╚═╝  ╚═╝  ╚═══╝  ╚═╝
`

const chatRequestTimeout = 90 * time.Second

// modelSwitchDirective, typed as a literal line mid-session,
// re-prompts for the active model.
const modelSwitchDirective = "--model"

// lineReader abstracts the interactive input loop so tests can script it.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type readlineLineReader struct {
	rl *readline.Instance
}

func (a *App) readlineReader() (lineReader, error) {
	cfg := &readline.Config{
		Prompt:          "you> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		Stdout:          a.stdout,
		Stderr:          a.stderr,
	}
	if in, ok := a.stdin.(io.ReadCloser); ok {
		cfg.Stdin = in
	} else if a.stdin != nil {
		cfg.Stdin = io.NopCloser(a.stdin)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("init chat prompt: %w", err)
	}
	return &readlineLineReader{rl: rl}, nil
}

func (r *readlineLineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *readlineLineReader) Close() error { return r.rl.Close() }

func (a *App) runChat(args []string) error {
	if len(args) > 0 {
		if isHelpToken(args[0]) {
			printHelp(a.stdout, "chat", a.cfgPath)
			return nil
		}
		return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
	}

	available, err := a.availableModels()
	if err != nil {
		return err
	}
	if len(available) == 0 {
		return fmt.Errorf("no API keys stored; run `mavi keys --set` first")
	}

	reader, err := a.newLineReader()
	if err != nil {
		return err
	}
	defer reader.Close()

	fmt.Fprint(a.stdout, banner+"\n")
	active, err := a.selectModel(reader, available)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Using model: %s\n", active)
	fmt.Fprintf(a.stdout, "Type 'exit' or 'quit' to leave. Type '%s' to switch models.\n\n", modelSwitchDirective)

	var history []providers.Message
	for {
		line, err := reader.ReadLine("you> ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			fmt.Fprintln(a.stdout, "\nShutting down!")
			return nil
		case modelSwitchDirective:
			next, err := a.selectModel(reader, available)
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			active = next
			fmt.Fprintf(a.stdout, "Switched to model: %s\n", active)
			continue
		}

		reply, err := a.chatTurn(active, history, line)
		if err != nil {
			// Non-fatal: report and keep the session going.
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			continue
		}
		history = append(history,
			providers.Message{Role: providers.RoleUser, Content: line},
			providers.Message{Role: providers.RoleAssistant, Content: reply},
		)

		text := reply
		if a.cfg.RenderMarkdown {
			text = render.Markdown(text, terminalWidth(a.stdout))
		}
		fmt.Fprintf(a.stdout, "mavi> %s\n", text)
	}
	return nil
}

// chatTurn sends the session history plus the new prompt to the active model.
func (a *App) chatTurn(active models.Key, history []providers.Message, prompt string) (string, error) {
	client, err := a.clientFor(active)
	if err != nil {
		return "", err
	}

	messages := make([]providers.Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, providers.Message{Role: providers.RoleUser, Content: prompt})

	ctx, cancel := context.WithTimeout(context.Background(), chatRequestTimeout)
	defer cancel()

	stop := startSpinner(isTerminalWriter(a.stdout), a.stdout, "Thinking")
	resp, err := client.Chat(ctx, providers.ChatRequest{
		Model:    a.cfg.ModelID(active),
		System:   assistant.BuildPrompt(a.cfg.RenderMarkdown),
		Messages: messages,
	})
	stop()
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// availableModels lists keys that currently have a stored credential.
func (a *App) availableModels() ([]models.Key, error) {
	entries, err := a.store.Status()
	if err != nil {
		return nil, err
	}
	available := make([]models.Key, 0, len(entries))
	for _, entry := range entries {
		if entry.Present {
			available = append(available, entry.Model)
		}
	}
	return available, nil
}

// selectModel prompts until the user picks one of the available keys,
// by number or by name. An empty line picks the first.
func (a *App) selectModel(reader lineReader, available []models.Key) (models.Key, error) {
	fmt.Fprintln(a.stdout, "Available models with API keys:")
	for i, key := range available {
		fmt.Fprintf(a.stdout, "%d. %s\n", i+1, key)
	}

	prompt := fmt.Sprintf("Select a model [default: %s]: ", available[0])
	for {
		line, err := reader.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if line == "" {
			return available[0], nil
		}
		if n, err := strconv.Atoi(line); err == nil {
			if n >= 1 && n <= len(available) {
				return available[n-1], nil
			}
			fmt.Fprintln(a.stdout, "invalid choice, try again")
			continue
		}
		for _, key := range available {
			if strings.EqualFold(line, string(key)) {
				return key, nil
			}
		}
		fmt.Fprintln(a.stdout, "invalid choice, try again")
	}
}
