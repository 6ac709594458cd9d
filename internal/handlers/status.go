package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyexro/kernelbot/core/telegram/format"
	tghelpers "github.com/zyexro/kernelbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Status handles /status: renders the latest workflow run for the
// user's recorded build, or points at /build when none exists.
func (h *Handlers) Status(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	msg, found := h.Builds.Status(ctx, c.Sender().ID)
	if !found {
		return replyMD(c, "❌ No active builds found. Use `/build` to start a new build.")
	}
	return replyMD(c, msg)
}

// AdminBuilds handles the hidden admin-only /builds command and lists
// every recorded build in the store.
func (h *Handlers) AdminBuilds(c tele.Context) error {
	all := h.Builds.Store.All()
	if len(all) == 0 {
		return replyMD(c, "No builds recorded.")
	}

	sort.Slice(all, func(i, j int) bool { return all[i].StartedAt.After(all[j].StartedAt) })

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 *Recorded Builds* (%d)\n", len(all)))
	for _, rec := range all {
		b.WriteString(fmt.Sprintf("\n• user %d — %s — %s — %s\n  %s @ %s\n",
			rec.UserID,
			rec.Status,
			rec.StartedAt.UTC().Format("2006-01-02 15:04:05"),
			rec.ID.String()[:8],
			format.Code(rec.Config.KernelRepo),
			format.Code(rec.Config.KernelBranch),
		))
	}
	return replyMD(c, b.String())
}
