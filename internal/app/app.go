// Package app assembles the kernelbot runtime: configuration, logging,
// the GitHub Actions client, the build service, and the Telegram
// wiring consumed by core/cmd.
package app

import (
	"fmt"

	"github.com/zyexro/kernelbot/core/logger"
	coretelegram "github.com/zyexro/kernelbot/core/telegram"
	"github.com/zyexro/kernelbot/core/telegram/router"
	"github.com/zyexro/kernelbot/core/telegram/state"
	"github.com/zyexro/kernelbot/internal/build"
	"github.com/zyexro/kernelbot/internal/ghactions"
	"github.com/zyexro/kernelbot/internal/handlers"
	"github.com/zyexro/kernelbot/internal/service"

	tele "gopkg.in/telebot.v4"
)

// App holds the assembled components of the bot.
type App struct {
	cfg *Config

	states state.Manager
	builds *service.Builds
	h      *handlers.Handlers
}

// Bootstrap initializes logging and constructs all components.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	if err := logger.InitLogger(&cfg.Core); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	gh := ghactions.New(cfg.GitHub)
	builds := &service.Builds{
		GH:        gh,
		Store:     build.NewMemoryStore(),
		Recipient: cfg.Notify.Recipient,
	}
	states := state.NewMemoryManager()

	return &App{
		cfg:    cfg,
		states: states,
		builds: builds,
		h:      handlers.New(states, builds, cfg.Defaults),
	}, nil
}

// TelegramRunOptions wires the registry, routes and middleware chain.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	if err := a.h.Register(reg); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("app: handler registration failed: %w", err)
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoute(a.states, reg, router.TextOptions{}))
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	onLimited := func(c tele.Context) error {
		return c.Send("⏳ Slow down a little, please.")
	}

	return coretelegram.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Core, onLimited),
		Routes:      routes,
	}, nil
}
