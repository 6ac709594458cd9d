package handlers

import (
	"fmt"
	"strings"

	"github.com/zyexro/kernelbot/core/telegram/format"
	tghelpers "github.com/zyexro/kernelbot/core/telegram/helpers"
	"github.com/zyexro/kernelbot/core/telegram/keyboard"
	"github.com/zyexro/kernelbot/internal/build"

	tele "gopkg.in/telebot.v4"
)

// BuildStart handles /build: (re)seeds the session from the defaults
// and enters the first configuration step. A /build during an active
// conversation restarts it.
func (h *Handlers) BuildStart(c tele.Context) error {
	userID := c.Sender().ID
	cfg := h.Defaults
	h.saveSessionConfig(userID, cfg)

	flow := build.Flow()
	first := flow[0]
	h.States.SetState(userID, stateFor(first))

	msg := "🔧 *Starting Kernel Build Configuration*\n\n" +
		"I'll guide you through setting up your kernel build. " +
		"You can use default values or customize them.\n\n" +
		first.PromptText(&cfg)
	return replyMD(c, msg)
}

// stepHandler builds the FSM handler for one flow step: apply the
// reply, echo the accepted value, and move to the next step or the
// confirmation screen.
func (h *Handlers) stepHandler(step build.Step, next *build.Step) tele.HandlerFunc {
	return func(c tele.Context) error {
		userID := c.Sender().ID
		cfg := h.sessionConfig(userID)
		step.Apply(&cfg, c.Text())
		h.saveSessionConfig(userID, cfg)

		accepted := step.Get(&cfg)
		if accepted == "" {
			accepted = "None"
		}
		echo := fmt.Sprintf("✅ %s: %s", step.Label, format.Code(accepted))

		if next == nil {
			h.States.SetState(userID, stateConfirm)
			return h.sendConfirmation(c, cfg)
		}

		h.States.SetState(userID, stateFor(*next))

		var sections []string
		sections = append(sections, echo)
		if next.Optional && !step.Optional {
			sections = append(sections,
				"**Optional Parameters**\nYou can configure additional optional parameters or skip to confirmation.")
		}
		sections = append(sections, next.PromptText(&cfg))
		return replyMD(c, strings.Join(sections, "\n\n"))
	}
}

func (h *Handlers) sendConfirmation(c tele.Context, cfg build.Config) error {
	orNone := func(v string) string {
		if v == "" {
			return format.Code("None")
		}
		return format.Code(v)
	}

	summary := "🔍 *Build Configuration Summary*\n\n" +
		fmt.Sprintf("**Compiler:** %s\n", format.Code(cfg.Compiler)) +
		fmt.Sprintf("**Repository:** %s\n", format.Code(cfg.KernelRepo)) +
		fmt.Sprintf("**Branch:** %s\n", format.Code(cfg.KernelBranch)) +
		fmt.Sprintf("**Container:** %s\n", format.Code(cfg.Container)) +
		fmt.Sprintf("**Notes:** %s\n", orNone(cfg.Notes)) +
		fmt.Sprintf("**KernelSU:** %s\n\n", orNone(cfg.KSU)) +
		"Is this configuration correct?"

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "✅ Confirm & Start Build", Unique: cbConfirm},
		{Text: "❌ Cancel", Unique: cbCancel},
	})
	return replyMD(c, summary, markup)
}

// ConfirmBuild handles the confirm callback. The FSM state is cleared
// before the dispatch, so a repeated press of a stale button is a
// polite no-op instead of a duplicate build.
func (h *Handlers) ConfirmBuild(c tele.Context) error {
	userID := c.Sender().ID

	if h.States.GetState(userID) != stateConfirm {
		return tghelpers.EditOrSendMD(c, "This build request is no longer active. Use `/build` to start a new one.")
	}

	cfg := h.sessionConfig(userID)
	h.discardSession(userID)

	ctx := tghelpers.BuildContext(c)
	ok, msg := h.Builds.Trigger(ctx, userID, cfg)
	if ok {
		return tghelpers.EditOrSendMD(c, fmt.Sprintf("🚀 *Build Started Successfully!*\n\n%s", msg))
	}
	return tghelpers.EditOrSendMD(c, fmt.Sprintf("❌ *Build Failed to Start*\n\n%s", msg))
}

// CancelBuild handles the cancel callback on the confirmation screen.
func (h *Handlers) CancelBuild(c tele.Context) error {
	h.discardSession(c.Sender().ID)
	return tghelpers.EditOrSendMD(c, "❌ Build cancelled.")
}

// Cancel handles /cancel from any conversation step.
func (h *Handlers) Cancel(c tele.Context) error {
	userID := c.Sender().ID
	if !h.States.InProgress(userID) {
		return replyMD(c, "Nothing to cancel. Use `/build` to start a new build.")
	}
	h.discardSession(userID)
	return replyMD(c, "❌ Build configuration cancelled.")
}
