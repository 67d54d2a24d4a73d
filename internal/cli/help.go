package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"mavi/internal/models"
)

const version = "0.1.0"

func printHelp(w io.Writer, topic string, cfgPath string) {
	switch topic {
	case "", "root":
		printRootHelp(w, cfgPath)
	case "keys", "key":
		printKeysHelp(w)
	case "chat":
		printChatHelp(w)
	case "ask":
		printAskHelp(w)
	case "config":
		printConfigHelp(w, cfgPath)
	default:
		fmt.Fprintf(w, "unknown help topic %q\n\n", topic)
		printRootHelp(w, cfgPath)
	}
}

func printRootHelp(w io.Writer, cfgPath string) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "mavi v%s\n", version)
	fmt.Fprintln(tw, "Terminal Q&A companion for coding questions, backed by hosted models.")
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "USAGE")
	fmt.Fprintln(tw, "  mavi [global flags] <command> [flags]")
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "GLOBAL FLAGS")
	fmt.Fprintln(tw, "  -c, --config <path>\tconfig file path (or MAVI_CONFIG)")
	fmt.Fprintln(tw, "  -h, --help\tshow help")
	fmt.Fprintln(tw, "  -v, --version\tshow version")
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "COMMANDS")
	fmt.Fprintln(tw, "  keys\tlist/set/delete API keys in the OS keyring")
	fmt.Fprintln(tw, "  chat\tinteractive chat session")
	fmt.Fprintln(tw, "  ask\tone-shot question")
	fmt.Fprintln(tw, "  config\tshow or change defaults")
	fmt.Fprintln(tw, "  help [topic]\tshow topic help")
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "EXAMPLES")
	fmt.Fprintln(tw, "  mavi keys --set --model openai")
	fmt.Fprintln(tw, "  mavi ask \"command to remove a commit from git\"")
	fmt.Fprintln(tw, "  mavi chat")
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "MODELS\n  %s\n\n", models.Names())

	fmt.Fprintln(tw, "CONFIG")
	fmt.Fprintf(tw, "  File:\t%s\n", cfgPath)
	fmt.Fprintln(tw, "  MAVI_CONFIG_DIR:\tdefault config directory override")

	_ = tw.Flush()
}

func printKeysHelp(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "USAGE")
	fmt.Fprintln(tw, "  mavi keys\tlist API key status per model")
	fmt.Fprintln(tw, "  mavi keys --set [--model <name>]\tstore an API key")
	fmt.Fprintln(tw, "  mavi keys --delete [--model <name>]\tremove an API key")
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "NOTES")
	fmt.Fprintln(tw, "  Keys are stored in the OS credential store, never on disk")
	fmt.Fprintln(tw, "  Without --model, the model is chosen interactively")
	_ = tw.Flush()
}

func printChatHelp(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "USAGE")
	fmt.Fprintln(tw, "  mavi chat")
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "NOTES")
	fmt.Fprintln(tw, "  Only models with a stored API key are offered")
	fmt.Fprintln(tw, "  Type '--model' mid-session to switch the active model")
	fmt.Fprintln(tw, "  Type 'exit' or 'quit' (or Ctrl+D) to leave")
	_ = tw.Flush()
}

func printAskHelp(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "USAGE")
	fmt.Fprintln(tw, "  mavi ask \"question\" [options]")
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "OPTIONS")
	fmt.Fprintln(tw, "  -m, --model <name>\tmodel to use for this question")
	fmt.Fprintln(tw, "  --timeout <dur|sec>\trequest timeout (default: 90s)")
	fmt.Fprintln(tw, "  --no-markdown\tdisable markdown rendering for this call")
	_ = tw.Flush()
}

func printConfigHelp(w io.Writer, cfgPath string) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "USAGE")
	fmt.Fprintln(tw, "  mavi config [show]")
	fmt.Fprintf(tw, "  mavi config set-model <%s>\n", models.Names())
	fmt.Fprintln(tw, "  mavi config markdown on|off")
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "CONFIG FILE\n  %s\n", cfgPath)
	_ = tw.Flush()
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}
