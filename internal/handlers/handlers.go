// Package handlers implements the bot's commands, the guided build
// configuration conversation, and the confirm/cancel callbacks.
package handlers

import (
	tg "github.com/zyexro/kernelbot/core/telegram"
	"github.com/zyexro/kernelbot/core/telegram/commands"
	"github.com/zyexro/kernelbot/core/telegram/state"
	"github.com/zyexro/kernelbot/internal/build"
	"github.com/zyexro/kernelbot/internal/service"

	tele "gopkg.in/telebot.v4"
)

const (
	// tempConfigKey holds the in-progress build.Config in the session.
	tempConfigKey = "build_config"

	statePrefix  = "build_"
	stateConfirm = state.State(statePrefix + "confirm")

	cbConfirm = "build_confirm"
	cbCancel  = "build_cancel"
)

// Handlers wires the conversation layer to its dependencies.
type Handlers struct {
	States   state.Manager
	Builds   *service.Builds
	Defaults build.Config
}

// New returns Handlers with normalized defaults.
func New(states state.Manager, builds *service.Builds, defaults build.Config) *Handlers {
	defaults.Normalize()
	return &Handlers{States: states, Builds: builds, Defaults: defaults}
}

// Register binds all commands, conversation steps and callbacks.
func (h *Handlers) Register(reg *tg.Registry) error {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Welcome message and overview",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.Help,
		Description: "Show help message",
	})
	reg.RegisterCommand("/build", commands.Command{
		Handler:     h.BuildStart,
		Description: "Start a new kernel build",
	})
	reg.RegisterCommand("/status", commands.Command{
		Handler:     h.Status,
		Description: "Check build status",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     h.Cancel,
		Description: "Cancel build configuration",
	})
	reg.RegisterCommand("/builds", commands.Command{
		Handler:     h.AdminBuilds,
		Description: "List all recorded builds",
		AdminOnly:   true,
		Hidden:      true,
	})

	flow := build.Flow()
	for i, step := range flow {
		var next *build.Step
		if i+1 < len(flow) {
			next = &flow[i+1]
		}
		state.RegisterHandler(stateFor(step), h.stepHandler(step, next))
	}

	if err := reg.RegisterCallback(cbConfirm, h.ConfirmBuild); err != nil {
		return err
	}
	if err := reg.RegisterCallback(cbCancel, h.CancelBuild); err != nil {
		return err
	}
	reg.SetTextFallback(h.UnknownText)
	return nil
}

func stateFor(s build.Step) state.State {
	return state.State(statePrefix + s.Name)
}

// sessionConfig reads the in-progress configuration for the user,
// falling back to the defaults when the session has none.
func (h *Handlers) sessionConfig(userID int64) build.Config {
	if v, ok := h.States.GetTemp(userID, tempConfigKey); ok {
		if cfg, ok := v.(build.Config); ok {
			return cfg
		}
	}
	return h.Defaults
}

func (h *Handlers) saveSessionConfig(userID int64, cfg build.Config) {
	h.States.SetTemp(userID, tempConfigKey, cfg)
}

func (h *Handlers) discardSession(userID int64) {
	h.States.ClearTemp(userID, tempConfigKey)
	h.States.ClearState(userID)
}

// UnknownText answers free text outside of an active conversation.
func (h *Handlers) UnknownText(c tele.Context) error {
	return replyMD(c, "Unknown command. Use `/help` to see available commands.")
}
