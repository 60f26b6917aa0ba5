package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ternarybob/scrutor/internal/app"
	"github.com/ternarybob/scrutor/internal/common"
	"github.com/ternarybob/scrutor/internal/models"
)

const usage = `Usage: scrutor [flags] <command> [arguments]

Commands:
  research <name>   Research a politician and print the dossier
  chat <name>       Research a politician, then answer questions interactively
  version           Print version information

Flags:
  -config <path>    Configuration file (default: scrutor.toml if present)
  -prompts <path>   YAML prompt template overrides
  -position <text>  Position the politician is running for
  -force            Ignore cached results and research from scratch
  -export <format>  Write the dossier to a file: md, html, or pdf
  -out <path>       Output path for -export (default: <name>.<format>)
`

var (
	configPath  = flag.String("config", "", "Configuration file path")
	promptsPath = flag.String("prompts", "", "YAML prompt template overrides")
	position    = flag.String("position", "", "Position the politician is running for")
	force       = flag.Bool("force", false, "Ignore cached results")
	exportFmt   = flag.String("export", "", "Export format: md, html, or pdf")
	outPath     = flag.String("out", "", "Output path for export")
	showVersion = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if *showVersion || flag.Arg(0) == "version" {
		fmt.Printf("Scrutor version %s\n", common.GetFullVersion())
		return
	}

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)
	name := strings.TrimSpace(strings.Join(flag.Args()[1:], " "))
	if name == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *configPath == "" {
		if _, err := os.Stat("scrutor.toml"); err == nil {
			*configPath = "scrutor.toml"
		}
	}

	config, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	application, err := app.New(config, *promptsPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "research":
		err = runResearch(ctx, application, name)
	case "chat":
		err = runChat(ctx, application, name)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func runResearch(ctx context.Context, application *app.App, name string) error {
	outcome := application.Research.Research(ctx, name, *position, models.ResearchOptions{
		ForceRefresh: *force,
	})

	switch outcome.Status {
	case models.OutcomeSuccess:
		printDossier(outcome)
	case models.OutcomePartial:
		fmt.Printf("Research incomplete for %s: %s\n", outcome.Name, outcome.Error)
		fmt.Printf("Gathered %d sources before failing:\n", len(outcome.Sources))
		for _, source := range outcome.Sources {
			fmt.Printf("  - %s\n", source.URL)
		}
		return fmt.Errorf("analysis did not complete")
	case models.OutcomeFailure:
		return fmt.Errorf("research failed: %s", outcome.Error)
	}

	if *exportFmt != "" {
		return exportDossier(ctx, application, outcome)
	}
	return nil
}

func printDossier(outcome *models.ResearchOutcome) {
	result := outcome.Result
	if outcome.CacheHit {
		fmt.Printf("(cached result from %s)\n\n", result.CreatedAt.Format("2 Jan 2006"))
	}
	fmt.Printf("=== %s ===\n\n", outcome.Name)
	fmt.Printf("SUMMARY\n%s\n\n", result.Summary)
	fmt.Printf("BACKGROUND\n%s\n\n", result.Background)
	fmt.Printf("ACCOMPLISHMENTS\n%s\n\n", result.Accomplishments)
	fmt.Printf("CRITICISMS\n%s\n\n", result.Criticisms)
	fmt.Printf("SOURCES (%d)\n", len(result.Sources))
	for _, source := range result.Sources {
		fmt.Printf("  - %s\n", source.URL)
	}
}

func exportDossier(ctx context.Context, application *app.App, outcome *models.ResearchOutcome) error {
	politician, err := application.Storage.PoliticianStorage().FindByName(ctx, outcome.Name)
	if err != nil {
		return err
	}
	if politician == nil {
		return fmt.Errorf("politician not found: %s", outcome.Name)
	}

	path := *outPath
	if path == "" {
		path = strings.ReplaceAll(strings.ToLower(outcome.Name), " ", "-") + "." + *exportFmt
	}

	var data []byte
	switch *exportFmt {
	case "md":
		data = []byte(application.Exporter.Markdown(politician, outcome.Result))
	case "html":
		html, err := application.Exporter.HTML(politician, outcome.Result)
		if err != nil {
			return err
		}
		data = []byte(html)
	case "pdf":
		data, err = application.Exporter.PDF(politician, outcome.Result)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q: use md, html, or pdf", *exportFmt)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Dossier written to %s\n", path)
	return nil
}

func runChat(ctx context.Context, application *app.App, name string) error {
	if err := application.Purger.Start(); err != nil {
		return err
	}

	fmt.Printf("Researching %s...\n", name)
	chat, err := application.Chat.CreateChat(ctx, name, *position, "")
	if err != nil {
		return err
	}
	fmt.Printf("Ready. Ask questions about %s (Ctrl+D to quit).\n\n", chat.Politician)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		qa, err := application.Chat.Ask(ctx, chat.ID, question)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("\n%s\n\n", qa.Answer)
	}
	return scanner.Err()
}
