package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Kerem-Haeger/filmhive/internal/api"
	"github.com/Kerem-Haeger/filmhive/internal/blend"
	"github.com/Kerem-Haeger/filmhive/internal/collections"
	"github.com/Kerem-Haeger/filmhive/internal/config"
	"github.com/Kerem-Haeger/filmhive/internal/domain"
	"github.com/Kerem-Haeger/filmhive/internal/log"
	"github.com/Kerem-Haeger/filmhive/internal/session"
	"github.com/Kerem-Haeger/filmhive/internal/store"
	"github.com/Kerem-Haeger/filmhive/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var setup bool
	var address string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&setup, "setup", false, "run the setup flow again")
	flag.StringVar(&address, "at", "", "start with a shareable filter address (e.g. 'sort=year_desc&genres=Drama')")
	flag.Parse()

	if showVersion {
		fmt.Printf("filmhive %s\n", Version)
		return
	}

	if err := run(setup, address); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(forceSetup bool, address string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting filmhive", "version", Version)

	if forceSetup || !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
		// Reload so the TUI sees what setup persisted.
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}

	sess := session.NewService(cfg, logger)
	client := api.NewClient(cfg.Server.URL, sess, logger)
	sess.Bind(client)

	cache, err := store.NewStore(config.GetCachePath(), cfg.Server.URL)
	if err != nil {
		logger.Warn("cache unavailable, continuing without it", "error", err)
		cache = nil
	}
	if cache != nil {
		defer cache.Close()
	}

	favorites := collections.NewFavorites(client, cache, sess, logger)
	watchlists := collections.NewWatchlists(client, cache, sess, logger)
	blendSvc := blend.NewService(client, logger)

	model := tui.NewModel(cfg, logger, sess, client, cache, favorites, watchlists, blendSvc)
	model.SetInitialAddress(address)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to FilmHive!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var serverURL string
	for {
		fmt.Printf("Enter your FilmHive server URL [%s]: ", cfg.Server.URL)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)
		if serverURL == "" {
			serverURL = cfg.Server.URL
		}
		if strings.HasPrefix(serverURL, "http://") || strings.HasPrefix(serverURL, "https://") {
			break
		}
		fmt.Println("The URL must start with http:// or https://. Please try again.")
	}

	cfg.Server.URL = serverURL
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	// Optional login. Browsing works without an account, so an empty
	// username just skips this.
	fmt.Println()
	fmt.Print("Username (leave empty to browse as a guest): ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	username := strings.TrimSpace(input)

	if username != "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		sess := session.NewService(cfg, logger)
		client := api.NewClient(cfg.Server.URL, sess, logger)
		sess.Bind(client)

		creds := domain.Credentials{Username: username, Password: string(pwBytes)}
		if err := sess.Login(context.Background(), creds); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Printf("✓ Logged in as %s\n", username)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run filmhive again to start the application.")

	return nil
}
