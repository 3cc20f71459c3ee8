// Command solitaire starts the Klondike solitaire server.
//
// It has two commands:
//  1. "serve" (default) runs the HTTP server exposing the REST API, WebSocket and an /mcp endpoint
//  2. "mcp" runs an MCP stdio server, starting an internal HTTP API if none is reachable
//
// Flags (each with an environment variable) control the listen address,
// layout directory, default layout, session expiry, debug logging and
// optional ngrok tunneling.
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
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/solitaire/api"
	"github.com/wricardo/solitaire/game/config"
	"github.com/wricardo/solitaire/game/service"
	"github.com/wricardo/solitaire/game/session"
	"github.com/wricardo/solitaire/transport/mcp"
	"github.com/wricardo/solitaire/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Solitaire Server"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flags on the root are shared by every
// command.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "solitaire",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing layout configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "layout",
				Usage:   "default layout for new sessions (config ID)",
				Sources: cli.EnvVars("SOLITAIRE_LAYOUT"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "run the HTTP server with REST API, WebSocket and MCP endpoint",
				Flags:   serveFlags(),
				Action:  runServer,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "run an MCP stdio server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-url",
						Value:   "http://localhost:8080",
						Usage:   "REST API to proxy to; an internal server starts when it is unreachable",
						Sources: cli.EnvVars("SOLITAIRE_API_URL"),
					},
				},
				Action: runStdioMCP,
			},
		},
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Value:   "localhost:8080",
			Usage:   "HTTP listen address",
			Sources: cli.EnvVars("ADDR"),
		},
		&cli.DurationFlag{
			Name:    "session-ttl",
			Value:   24 * time.Hour,
			Usage:   "remove sessions not accessed for this long",
			Sources: cli.EnvVars("SESSION_TTL"),
		},
		&cli.DurationFlag{
			Name:    "cleanup-interval",
			Value:   time.Hour,
			Usage:   "how often expired sessions are removed",
			Sources: cli.EnvVars("SESSION_CLEANUP_INTERVAL"),
		},
		&cli.BoolFlag{
			Name:    "ngrok",
			Usage:   "expose the server through an ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    "ngrok-auth",
			Usage:   "ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    "ngrok-domain",
			Usage:   "custom ngrok domain",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
	}
}

// newLogger returns a development logger under --debug and a production
// logger otherwise. Both write to stderr, which keeps stdout free for MCP.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// initializeServices wires the config and session managers into the game
// service.
func initializeServices(configDir, layout string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if layout != "" {
		if err := configManager.SetDefault(layout); err != nil {
			return nil, nil, fmt.Errorf("default layout %q: %w", layout, err)
		}
	}

	sessionManager := session.NewManager()
	return service.NewGameService(sessionManager, configManager), sessionManager, nil
}

// newRouter mounts the API at / and the MCP JSON-RPC endpoint at /mcp.
func newRouter(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	router := http.NewServeMux()
	router.Handle("/", apiServer)

	router.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
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

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)
		if response == nil {
			// notifications have no reply
			w.WriteHeader(http.StatusAccepted)
			return
		}

		data, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	return router
}

// runServer wires the services and serves them over HTTP and, when
// enabled, an ngrok tunnel.
func runServer(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	gameService, sessions, err := initializeServices(cmd.String("config-dir"), cmd.String("layout"))
	if err != nil {
		return err
	}

	addr := cmd.String("addr")
	logger.Info("starting",
		zap.String("app", AppName),
		zap.String("version", Version),
		zap.String("addr", addr))

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	go sessionCleanupRoutine(ctx, sessions, cmd.Duration("session-ttl"), cmd.Duration("cleanup-interval"), logger)

	apiServer := api.NewServer(gameService, hub, logger)
	mcpClient := mcp.NewClient("http://" + addr)
	handler := newRouter(apiServer, mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var tunnel func(context.Context) error
	if cmd.Bool("ngrok") {
		authToken, domain := cmd.String("ngrok-auth"), cmd.String("ngrok-domain")
		tunnel = func(ctx context.Context) error {
			return serveTunnel(ctx, handler, authToken, domain, logger)
		}
	}

	return serve(ctx, httpServer, tunnel, logger)
}

// serve runs httpServer and the optional tunnel until ctx is cancelled or
// the listener fails. Either way both are stopped before it returns.
func serve(ctx context.Context, httpServer *http.Server, tunnel func(context.Context) error, logger *zap.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	var wg sync.WaitGroup
	errc := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		addr := httpServer.Addr
		logger.Info("HTTP server listening",
			zap.String("api", "http://"+addr+"/api"),
			zap.String("ws", "ws://"+addr+"/ws?session=<session_id>"),
			zap.String("mcp", "http://"+addr+"/mcp"))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if tunnel != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tunnel(ctx); err != nil {
				logger.Error("ngrok tunnel failed", zap.Error(err))
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case runErr = <-errc:
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown error", zap.Error(err))
	}

	wg.Wait()
	logger.Info("server stopped")
	return runErr
}

// serveTunnel serves handler through ngrok until ctx is cancelled.
func serveTunnel(ctx context.Context, handler http.Handler, authToken, domain string, logger *zap.Logger) error {
	if authToken == "" {
		return errors.New("no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN)")
	}

	var endpoint ngrokConfig.Tunnel
	if domain != "" {
		endpoint = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	} else {
		endpoint = ngrokConfig.HTTPEndpoint()
	}

	logger.Info("starting ngrok tunnel", zap.String("domain", domain))
	tun, err := ngrok.Listen(ctx, endpoint, ngrok.WithAuthtoken(authToken))
	if err != nil {
		return err
	}

	url := tun.URL()
	logger.Info("ngrok tunnel established",
		zap.String("url", url),
		zap.String("api", url+"/api"),
		zap.String("mcp", url+"/mcp"))

	go func() {
		<-ctx.Done()
		tun.Close()
	}()

	if err := http.Serve(tun, handler); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("ngrok tunnel closed")
	return nil
}

// sessionCleanupRoutine removes sessions that have not been accessed
// within ttl, checking every interval until ctx is cancelled.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, ttl, interval time.Duration, logger *zap.Logger) {
	if ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupSessions(manager, ttl, logger)
		}
	}
}

func cleanupSessions(manager *session.Manager, ttl time.Duration, logger *zap.Logger) int {
	removed := manager.CleanupExpiredSessions(ttl)
	if len(removed) > 0 {
		logger.Info("cleaned up expired sessions", zap.Strings("sessions", removed))
	}
	return len(removed)
}

// runStdioMCP serves MCP over stdio. It proxies to --api-url when that
// server answers, otherwise it starts an internal API on a loopback port.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	baseURL := cmd.String("api-url")
	if apiReachable(ctx, baseURL) {
		logger.Info("using external API server", zap.String("url", baseURL))
	} else {
		logger.Info("no external API server found, starting internal HTTP server", zap.String("tried", baseURL))

		gameService, _, err := initializeServices(cmd.String("config-dir"), cmd.String("layout"))
		if err != nil {
			return err
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub(logger)
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub, logger)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("internal HTTP server error", zap.Error(err))
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
		logger.Info("internal HTTP server listening", zap.String("url", baseURL))
	}

	mcpClient := mcp.NewClient(baseURL)
	logger.Info("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiReachable reports whether baseURL answers its health check.
func apiReachable(ctx context.Context, baseURL string) bool {
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
