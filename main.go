// Command klondike plays Klondike solitaire in the terminal or serves it to
// other programs.
//
// Commands:
//  1. "play" (default) – interactive game in the terminal
//  2. "serve" – HTTP server exposing the REST API, WebSocket updates and an /mcp endpoint
//  3. "mcp" – MCP stdio server; uses a running API server or starts an internal one
//  4. "validate" – checks game configuration files
//
// Flags can also be set from the environment or a .env file, and serve can
// publish itself through an ngrok tunnel during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/klondike/api"
	"github.com/wricardo/klondike/console"
	"github.com/wricardo/klondike/game/config"
	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/game/service"
	"github.com/wricardo/klondike/game/session"
	"github.com/wricardo/klondike/transport/mcp"
	"github.com/wricardo/klondike/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Klondike Solitaire"
)

const (
	defaultPort       = 8080
	defaultHost       = "localhost"
	defaultConfigDir  = "configs"
	defaultAPIURL     = "http://localhost:8080"
	defaultSessionTTL = 24 * time.Hour
	cleanupInterval   = time.Hour
	shutdownTimeout   = 10 * time.Second
)

// main loads .env, then runs the selected command.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("Error loading .env file: %v", err)
		}
	} else {
		logrus.Debug("Loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// newApp builds the command tree. Flags on the root apply to every command.
func newApp() *cli.Command {
	return &cli.Command{
		Name:           "klondike",
		Usage:          AppName,
		Version:        Version,
		DefaultCommand: "play",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   defaultConfigDir,
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("SOLITAIRE_DEBUG"),
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			playCommand(),
			serveCommand(),
			mcpCommand(),
			validateCommand(),
		},
	}
}

// setupLogging configures the standard logrus logger used across the app
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cmd.Bool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return ctx, nil
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play in the terminal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "deal-size",
				Usage: "Cards per deal, 1 or 3 (asks when not set)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration name from the config directory",
			},
		},
		Action: runPlay,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"server", "http"},
		Usage:   "Run the HTTP server with REST API, WebSocket and MCP endpoint",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   defaultPort,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   defaultHost,
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.DurationFlag{
				Name:    "session-ttl",
				Value:   defaultSessionTTL,
				Usage:   "Drop sessions idle for longer than this",
				Sources: cli.EnvVars("SESSION_TTL"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServe,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "Run an MCP stdio server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   defaultAPIURL,
				Usage:   "API server to use when it is running",
				Sources: cli.EnvVars("SOLITAIRE_API_URL"),
			},
		},
		Action: runStdioMCP,
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check game configuration files",
		ArgsUsage: "FILE...",
		Action:    runValidate,
	}
}

// initializeServices wires the config and session managers into the game service
func initializeServices(configDir string, logger logrus.FieldLogger) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager(logger)
	return service.NewGameService(sessionManager, configManager, logger), sessionManager, nil
}

// runPlay starts the terminal game. A missing config directory falls back
// to the built-in configuration unless a config was asked for by name.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	logger := logrus.StandardLogger()
	root := cmd.Root()

	var opts []console.Option
	if n := cmd.Int("deal-size"); n != 0 {
		size, err := engine.ParseDealSize(n)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		opts = append(opts, console.WithDealSize(size))
	}

	if name := cmd.String("config"); name != "" {
		configs, err := config.NewManager(cmd.String("config-dir"))
		if err != nil {
			return err
		}
		cfg, err := configs.LoadConfig(name)
		if err != nil {
			return fmt.Errorf("config %s: %w", name, err)
		}
		opts = append(opts, console.WithConfig(cfg))
	}

	if _, isFile := root.Writer.(*os.File); !isFile {
		opts = append(opts, console.WithClearScreen(false))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return console.New(root.Reader, root.Writer, logger, opts...).Run(ctx)
}

// newHandler mounts the API at the root and the MCP endpoint at /mcp.
// baseURL is where the MCP tools reach the API.
func newHandler(apiServer http.Handler, baseURL string) http.Handler {
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient.GetMCPServer()))
	return mainRouter
}

// mcpHandler answers one JSON-RPC message per POST
func mcpHandler(mcpServer *server.MCPServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// runServe starts the HTTP server and, when enabled, an ngrok tunnel serving
// the same handler. It stops on SIGINT or SIGTERM.
func runServe(ctx context.Context, cmd *cli.Command) error {
	logger := logrus.StandardLogger()

	gameService, sessions, err := initializeServices(cmd.String("config-dir"), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	handler := newHandler(api.NewServer(gameService, hub, logger), "http://"+addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessionCleanupRoutine(ctx, sessions, cmd.Duration("session-ttl"), logger)
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server listening on %s", addr)
		logger.Infof("REST API: http://%s/api", addr)
		logger.Infof("WebSocket: ws://%s/ws?session=<session_id>", addr)
		logger.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, handler, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), logger)
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutting down...")
	case err := <-serveErr:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP server shutdown error")
	}

	wg.Wait()
	logger.Info("Server stopped")
	return nil
}

// runNgrok serves handler through an ngrok tunnel until ctx is done
func runNgrok(ctx context.Context, handler http.Handler, authToken, domain string, logger logrus.FieldLogger) {
	if authToken == "" {
		logger.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	logger.Info("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.Infof("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.WithError(err).Error("Failed to start ngrok tunnel")
		return
	}

	ngrokURL := tun.URL()
	logger.Infof("Ngrok tunnel established: %s", ngrokURL)
	logger.Infof("  REST API (ngrok): %s/api", ngrokURL)
	logger.Infof("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	logger.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close ngrok tunnel")
		}
	}()

	if err := http.Serve(tun, handler); err != nil && ctx.Err() == nil {
		logger.WithError(err).Error("Ngrok server error")
	}
	logger.Info("Ngrok tunnel closed")
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within ttl.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl time.Duration, logger logrus.FieldLogger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(ttl); removed > 0 {
				logger.Infof("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

// apiAvailable reports whether an API server answers its health check
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// startInternalServer serves the API on a random loopback port and returns its URL
func startInternalServer(ctx context.Context, configDir string, logger logrus.FieldLogger) (string, func(), error) {
	gameService, _, err := initializeServices(configDir, logger)
	if err != nil {
		return "", nil, err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to get available port: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	httpServer := &http.Server{Handler: api.NewServer(gameService, hub, logger)}
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Internal HTTP server error")
		}
	}()

	shutdown := func() {
		cancel()
		httpServer.Close()
	}
	return "http://" + listener.Addr().String(), shutdown, nil
}

// runStdioMCP runs an MCP stdio server. It reuses the API at --api-url when
// it is up, otherwise it starts an internal one.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	logger := logrus.StandardLogger()

	baseURL := cmd.String("api-url")
	logger.Infof("Checking for external API server at %s...", baseURL)

	if apiAvailable(ctx, baseURL) {
		logger.Infof("External API server found at %s, using it for MCP", baseURL)
	} else {
		logger.Info("No external API server found, starting internal HTTP server")

		internalURL, shutdown, err := startInternalServer(ctx, cmd.String("config-dir"), logger)
		if err != nil {
			return fmt.Errorf("failed to start internal server: %w", err)
		}
		defer shutdown()

		logger.Infof("Internal HTTP server on %s for MCP stdio", internalURL)
		baseURL = internalURL
	}

	mcpClient := mcp.NewClient(baseURL, mcp.WithLogger(logger))
	logger.Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// runValidate loads every file given and reports which ones are usable
func runValidate(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return cli.Exit("validate needs at least one config file", 2)
	}

	out := cmd.Root().Writer
	failed := 0
	for _, path := range cmd.Args().Slice() {
		cfg, err := config.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%s, deal size %d)\n", path, cfg.Name, cfg.DealSize)
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d config files are invalid", failed, cmd.NArg()), 1)
	}
	return nil
}
