package config

import (
	"strings"
	"testing"
)

func validLongpoll() Config {
	return Config{
		Telegram: TelegramConfig{
			Token:   "123456:AAtest",
			RunMode: "longpoll",
		},
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validLongpoll()
	cfg.Telegram.Token = "   "

	if err := Normalize(&cfg); err == nil {
		t.Fatal("missing token must fail normalization")
	}
}

func TestNormalizeRunModes(t *testing.T) {
	cases := []struct {
		name    string
		mode    string
		wantErr bool
		want    string
	}{
		{"empty defaults to longpoll", "", false, RunModeLongpoll},
		{"polling alias", "polling", false, RunModeLongpoll},
		{"mixed case", "LongPoll", false, RunModeLongpoll},
		{"unknown rejected", "carrier-pigeon", true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validLongpoll()
			cfg.Telegram.RunMode = tc.mode
			err := Normalize(&cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("run_mode %q must be rejected", tc.mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if cfg.Telegram.RunMode != tc.want {
				t.Errorf("run_mode = %q, want %q", cfg.Telegram.RunMode, tc.want)
			}
		})
	}
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	base := validLongpoll()
	base.Telegram.RunMode = RunModeWebhook
	base.Webhook = WebhookConfig{URL: "https://bot.example.com/hook", Listen: "0.0.0.0", Port: 8443}

	if err := Normalize(&base); err != nil {
		t.Fatalf("complete webhook config rejected: %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing url", func(c *Config) { c.Webhook.URL = "" }},
		{"missing listen", func(c *Config) { c.Webhook.Listen = " " }},
		{"zero port", func(c *Config) { c.Webhook.Port = 0 }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			cfg := base
			m.mutate(&cfg)
			if err := Normalize(&cfg); err == nil {
				t.Error("incomplete webhook config must be rejected")
			}
		})
	}
}

func TestNormalizeExcludeUpdates(t *testing.T) {
	cfg := validLongpoll()
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", "MESSAGE"}

	if err := Normalize(&cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback || cfg.RateLimit.ExcludeUpdates[1] != UpdateMessage {
		t.Errorf("exclude_updates not normalized: %v", cfg.RateLimit.ExcludeUpdates)
	}

	cfg = validLongpoll()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	err := Normalize(&cfg)
	if err == nil {
		t.Fatal("unknown exclude_updates value must be rejected")
	}
	if !strings.Contains(err.Error(), "inline_query") {
		t.Errorf("error should name the bad value: %v", err)
	}
}
