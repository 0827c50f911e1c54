package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/groupie/internal/audio"
	"github.com/nikbrunner/groupie/internal/cards"
	"github.com/nikbrunner/groupie/internal/catalog"
	"github.com/nikbrunner/groupie/internal/config"
	"github.com/nikbrunner/groupie/internal/filter"
	"github.com/nikbrunner/groupie/internal/itunes"
	"github.com/nikbrunner/groupie/internal/logging"
	"github.com/nikbrunner/groupie/internal/modal"
	"github.com/nikbrunner/groupie/internal/model"
	"github.com/nikbrunner/groupie/internal/picker"
	"github.com/nikbrunner/groupie/internal/preview"
	"github.com/nikbrunner/groupie/internal/search"
	"github.com/nikbrunner/groupie/internal/tracker"
	"github.com/nikbrunner/groupie/internal/tui"
)

const fetchTimeout = time.Minute

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches the subcommand and returns the exit code.
func run(argv []string) int {
	args, cardsFile := splitCardsFlag(argv)

	if len(args) >= 1 {
		switch args[0] {
		case "help", "--help", "-h":
			printHelp()
			return 0
		}
	}

	cfg, log, closeLog, err := setup(cardsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		return 1
	}
	defer closeLog()

	if len(args) >= 1 {
		switch args[0] {
		case "cards":
			// Export with optional path
			var outputPath string
			if len(args) >= 2 {
				outputPath = args[1]
			}
			err = runCards(cfg, outputPath)
		default:
			// Treat as search query (join all remaining args)
			err = runQuickSearch(cfg, strings.Join(args, " "))
		}
	} else {
		// No args - run full TUI
		err = runTUI(cfg, log)
	}

	if err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		return 1
	}
	return 0
}

// splitCardsFlag removes "--cards <file>" from args.
func splitCardsFlag(args []string) ([]string, string) {
	var rest []string
	var file string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--cards" && i+1 < len(args):
			file = args[i+1]
			i++
		case strings.HasPrefix(args[i], "--cards="):
			file = strings.TrimPrefix(args[i], "--cards=")
		default:
			rest = append(rest, args[i])
		}
	}
	return rest, file
}

func printHelp() {
	help := `groupie - browse artist cards, hear a preview

Usage:
  groupie                  Open interactive TUI
  groupie <query>          Quick search → print artist details
  groupie cards [path]     Write the card markup to HTML
  groupie help             Show this help

Options:
  --cards <file>           Read card markup from a file instead of the API

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    mouse       Hover a card to preview it

  Filtering:
    /           Search artist names
    c/C         Next/previous country
    o           Cycle sort mode
    Esc         Clear search

  Actions:
    l/Enter     Open artist details
    Esc/q       Close details
    Y           Copy the previewed track

  Other:
    ?           Show help overlay
    q           Quit

Configuration:
  ~/.config/groupie/config.json
  GROUPIE_TRACKER_URL, GROUPIE_SEARCH_URL, GROUPIE_PLAYER, GROUPIE_LOCALE,
  GROUPIE_PREVIEW_DELAY_MS, GROUPIE_LOG_LEVEL, GROUPIE_LOG_FILE, GROUPIE_CARDS
`
	fmt.Print(help)
}

// setup loads .env, the config file and the environment, then opens the log.
func setup(cardsFile string) (*config.Config, zerolog.Logger, func(), error) {
	_ = godotenv.Load()

	configPath, err := config.DefaultConfigFilePath()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("getting config path: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("reading environment: %w", err)
	}
	if cardsFile != "" {
		cfg.CardsFile = cardsFile
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath, err = config.DefaultLogFilePath()
		if err != nil {
			return nil, zerolog.Nop(), nil, fmt.Errorf("getting log path: %w", err)
		}
	}

	var out io.Writer
	closeLog := func() {}
	if f, err := logging.OpenFile(logPath); err == nil {
		out = f
		closeLog = func() { _ = f.Close() }
	} else {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	log := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: out,
	})
	return cfg, log, closeLog, nil
}

// fetchDetails reads every artist from the tracker API.
func fetchDetails(cfg *config.Config) ([]model.Detail, error) {
	client, err := tracker.NewClient(tracker.ClientParams{BaseURL: cfg.TrackerURL})
	if err != nil {
		return nil, fmt.Errorf("creating tracker client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	details, err := client.LoadDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading artists: %w", err)
	}
	return details, nil
}

// loadEntries extracts the card entries from the configured markup source.
func loadEntries(cfg *config.Config) ([]*model.ArtistEntry, error) {
	var src io.Reader
	if cfg.CardsFile != "" {
		file, err := os.Open(cfg.CardsFile)
		if err != nil {
			return nil, fmt.Errorf("opening file: %w", err)
		}
		defer file.Close()
		src = file
	} else {
		details, err := fetchDetails(cfg)
		if err != nil {
			return nil, err
		}
		src = strings.NewReader(cards.RenderHTML(details))
	}

	entries, err := catalog.Extract(src)
	if err != nil {
		return nil, fmt.Errorf("parsing cards: %w", err)
	}
	return entries, nil
}

// runTUI runs the full interactive TUI.
func runTUI(cfg *config.Config, log zerolog.Logger) error {
	entries, err := loadEntries(cfg)
	if err != nil {
		return err
	}
	log.Info().Int("cards", len(entries)).Msg("catalog loaded")

	scheduler := preview.NewScheduler(preview.Params{
		Searcher: itunes.NewClient(itunes.ClientParams{
			BaseURL: cfg.SearchURL,
			Limit:   cfg.SearchLimit,
		}),
		Player: audio.NewMPV(audio.MPVParams{Binary: cfg.Player}),
		Delay:  cfg.PreviewDelay(),
		Logger: &log,
	})
	defer scheduler.StopPlayback()

	app := tui.NewApp(tui.AppParams{
		Entries: entries,
		Preview: scheduler,
		Engine:  filter.NewEngine(cfg.Locale),
		Logger:  &log,
	})

	// Motion events drive the hover preview.
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}

// runQuickSearch fuzzy-matches an artist and prints its details.
func runQuickSearch(cfg *config.Config, query string) error {
	entries, err := loadEntries(cfg)
	if err != nil {
		return err
	}

	results := search.FuzzySearchArtists(entries, query)
	if len(results) == 0 {
		fmt.Printf("No artists found for '%s'\n", query)
		return nil
	}

	var selected *model.ArtistEntry
	if exact, ok := search.Exact(results, query); ok {
		selected = exact.Entry
	} else if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Entry
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.Selected()
	}

	if selected == nil {
		return nil
	}

	fmt.Print(modal.BuildView(selected.Card.Detail).String())
	return nil
}

// runCards handles the cards subcommand.
func runCards(cfg *config.Config, outputPath string) error {
	// Determine output path
	if outputPath == "" {
		var err error
		outputPath, err = cards.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("getting default export path: %w", err)
		}
	}

	details, err := fetchDetails(cfg)
	if err != nil {
		return err
	}
	html := cards.RenderHTML(details)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Printf("Exported %d artists to %s\n", len(details), outputPath)
	return nil
}
