package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command describes a registered bot command: its handler plus the
// metadata the registry uses for menu setup and access control.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
