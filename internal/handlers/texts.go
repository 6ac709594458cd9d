package handlers

import (
	tghelpers "github.com/zyexro/kernelbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const welcomeText = "🔧 *Kernel Builder Bot*\n\n" +
	"Welcome! This bot helps you build custom kernels using GitHub Actions.\n\n" +
	"Available commands:\n" +
	"• `/build` - Start a new kernel build\n" +
	"• `/status` - Check build status\n" +
	"• `/help` - Show this help message\n\n" +
	"To get started, use `/build` to configure and start a new kernel build."

const helpText = "🔧 *Kernel Builder Bot Help*\n\n" +
	"*Commands:*\n" +
	"• `/start` - Welcome message and overview\n" +
	"• `/build` - Start a new kernel build process\n" +
	"• `/status` - Check the status of your last build\n" +
	"• `/cancel` - Abort the build configuration\n" +
	"• `/help` - Show this help message\n\n" +
	"*Build Process:*\n" +
	"1. Use `/build` to start\n" +
	"2. Configure build parameters (compiler, repo, branch, etc.)\n" +
	"3. Confirm your settings\n" +
	"4. Monitor the build progress\n\n" +
	"*Required Setup:*\n" +
	"• GitHub repository with kernel builder workflow\n" +
	"• Valid GitHub token with repo access\n" +
	"• Telegram bot token from @BotFather\n\n" +
	"For more information about the kernel builder workflow, " +
	"visit: https://github.com/zyexro/kernel_builder"

func replyMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return tghelpers.SendMD(c, text, markup...)
}

// Start handles /start.
func (h *Handlers) Start(c tele.Context) error {
	return replyMD(c, welcomeText)
}

// Help handles /help.
func (h *Handlers) Help(c tele.Context) error {
	return replyMD(c, helpText)
}
