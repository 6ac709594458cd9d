// Package service glues the conversation layer to the GitHub Actions
// client and the per-user build store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/zyexro/kernelbot/core/logger"
	"github.com/zyexro/kernelbot/internal/build"
	"github.com/zyexro/kernelbot/internal/ghactions"
)

// Actions is the GitHub surface Builds depends on.
type Actions interface {
	Dispatch(ctx context.Context, inputs map[string]string) error
	LatestRun(ctx context.Context) (ghactions.Run, bool, error)
}

// Builds triggers kernel builds and answers status queries.
type Builds struct {
	GH    Actions
	Store build.Store
	// Recipient is the Telegram chat the workflow notifies, forwarded
	// as the TG_RECIPIENT input when set.
	Recipient string
}

// Trigger dispatches the workflow for cfg and records the build for the
// user. The returned text is user-facing; ok distinguishes a started
// build from a failed dispatch. The dispatch itself is never retried.
func (b *Builds) Trigger(ctx context.Context, userID int64, cfg build.Config) (bool, string) {
	inputs := cfg.Inputs(b.Recipient)

	start := time.Now()
	if err := b.GH.Dispatch(ctx, inputs); err != nil {
		var remote *ghactions.RemoteError
		if errors.As(err, &remote) {
			logger.LogEvent(ctx, logger.SVCBuilds, slog.LevelWarn, "dispatch.rejected",
				slog.Int64("user_id", userID),
				slog.Int("http_code", remote.Status),
				slog.Duration("duration", logger.RoundMS(time.Since(start))),
			)
			return false, fmt.Sprintf("GitHub API error: %d - %s", remote.Status, remote.Body)
		}
		logger.LogEvent(ctx, logger.SVCBuilds, slog.LevelError, "dispatch.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
		return false, fmt.Sprintf("Error triggering workflow: %s", err)
	}

	record := build.ActiveBuild{
		ID:        uuid.New(),
		UserID:    userID,
		Config:    cfg,
		StartedAt: time.Now().UTC(),
		Status:    build.StatusRunning,
	}
	b.Store.Put(record)

	logger.LogEvent(ctx, logger.SVCBuilds, slog.LevelInfo, "dispatch.ok",
		slog.Int64("user_id", userID),
		slog.String("build_id", record.ID.String()),
		slog.Int("inputs", len(inputs)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)

	// Best effort: the run link is a convenience, its absence never
	// downgrades a successful dispatch.
	run, ok, err := b.GH.LatestRun(ctx)
	if err != nil || !ok || run.HTMLURL == "" {
		if err != nil {
			logger.LogEvent(ctx, logger.SVCBuilds, slog.LevelDebug, "run_link.unavailable",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return true, "Workflow triggered successfully! Check the Actions tab in the GitHub repository."
	}
	return true, fmt.Sprintf("Monitor your build progress at:\n%s", run.HTMLURL)
}

// Status renders the status reply for a user. found is false when no
// build is recorded, in which case no GitHub call is made.
func (b *Builds) Status(ctx context.Context, userID int64) (string, bool) {
	record, found := b.Store.Get(userID)
	if !found {
		return "", false
	}

	startedAt := record.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC")

	run, ok, err := b.GH.LatestRun(ctx)
	if err != nil {
		var remote *ghactions.RemoteError
		if errors.As(err, &remote) {
			return fmt.Sprintf("❌ Error fetching status: %d", remote.Status), true
		}
		return fmt.Sprintf("❌ Error checking status: %s", err), true
	}
	if !ok {
		return "❌ No workflow runs found.", true
	}

	conclusion := titleCase(run.Conclusion)
	if conclusion == "" {
		conclusion = "In Progress"
	}

	msg := fmt.Sprintf(
		"📊 *Build Status*\n\n"+
			"**Started:** %s\n"+
			"**Status:** %s\n"+
			"**Conclusion:** %s\n\n"+
			"[View on GitHub](%s)",
		startedAt, titleCase(run.Status), conclusion, run.HTMLURL,
	)
	return msg, true
}

// titleCase turns GitHub's snake_case run statuses into readable
// words: "in_progress" -> "In Progress".
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
