package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/relaychat/relay/config"
	"github.com/relaychat/relay/src/history"
	"github.com/relaychat/relay/src/hub"
	"github.com/relaychat/relay/src/presence"
	"github.com/relaychat/relay/src/service"
)

func main() {
	logger := newLogger()
	cfg := config.FromEnv()

	store := openStore(logger)
	defer store.Close()

	h := hub.New(presence.NewRegistry(), store, cfg.HistoryLimit, logger)
	go h.Run()

	svc := service.New(h, store, logger)

	app := fiber.New()
	app.Get("/info", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"websocket": true,
			"endpoint":  "/ws",
			"clients":   svc.ClientCount(),
			"online":    svc.OnlineCount(),
			"users":     svc.Roster(),
		})
	})
	app.Get("/history", func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		window, err := svc.History(ctx, cfg.HistoryLimit)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "history unavailable"})
		}
		return c.JSON(window)
	})

	// Fiber v3 does not expose *fasthttp.RequestCtx, so the WebSocket
	// upgrade is dispatched ahead of the app handler.
	wsHandler := websocketHandler(h, cfg, logger)
	appHandler := app.Handler()
	srv := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			if string(ctx.Path()) == "/ws" {
				wsHandler(ctx)
				return
			}
			appHandler(ctx)
		},
	}

	go func() {
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()
	logger.Info().Str("addr", cfg.Addr).Msg("relay listening")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}
	h.Stop()
}

// websocketHandler returns the raw fasthttp handler for /ws upgrades.
func websocketHandler(h *hub.Hub, cfg *config.Config, logger zerolog.Logger) fasthttp.RequestHandler {
	upgrader := websocket.FastHTTPUpgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
	}

	return func(ctx *fasthttp.RequestCtx) {
		upgrade := string(ctx.Request.Header.Peek("Upgrade"))
		if !strings.EqualFold(upgrade, "websocket") {
			ctx.SetStatusCode(fasthttp.StatusUpgradeRequired)
			ctx.SetBodyString(`{"error":"upgrade_required","message":"WebSocket upgrade required"}`)
			return
		}

		clientID := uuid.New().String()

		err := upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
			client := hub.NewClient(clientID, &wsConn{conn}, h)
			h.Register(client)
			go client.WritePump()
			client.ReadPump()
		})
		if err != nil {
			logger.Error().Err(err).Msg("websocket upgrade failed")
		}
	}
}

// openStore connects to Redis for durable history, falling back to the
// in-memory store when Redis is unreachable.
func openStore(logger zerolog.Logger) history.Store {
	cfg := history.RedisConfigFromEnv()
	rs := history.NewRedisStore(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rs.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory history (data lost on restart)")
		_ = rs.Close()
		return history.NewMemoryStore(int(cfg.MaxLen))
	}

	logger.Info().Str("redis_addr", cfg.Addr).Msg("redis history store connected")
	return rs
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// wsConn wraps fasthttp/websocket.Conn to satisfy types.Conn.
type wsConn struct {
	conn *websocket.Conn
}

func (w *wsConn) WriteJSON(v any) error { return w.conn.WriteJSON(v) }
func (w *wsConn) ReadJSON(v any) error  { return w.conn.ReadJSON(v) }
func (w *wsConn) Close() error          { return w.conn.Close() }
