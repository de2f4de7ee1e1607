package cmdutil

import (
	"errors"
	"testing"

	"github.com/mfigueredo/boardctl/internal/apierr"
	"github.com/mfigueredo/boardctl/internal/config"
)

func TestResolveProject(t *testing.T) {
	tests := []struct {
		name      string
		flagValue string
		cfgValue  string
		want      string
		wantErr   bool
	}{
		{name: "flag wins", flagValue: "p-flag", cfgValue: "p-cfg", want: "p-flag"},
		{name: "config fallback", flagValue: "", cfgValue: "p-cfg", want: "p-cfg"},
		{name: "whitespace flag ignored", flagValue: "   ", cfgValue: "p-cfg", want: "p-cfg"},
		{name: "nothing set", flagValue: "", cfgValue: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.API.Project = tt.cfgValue

			got, err := ResolveProject(cfg, tt.flagValue)
			if tt.wantErr {
				if !errors.Is(err, apierr.ErrInvalidInput) {
					t.Errorf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresAuth(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.Default()
	_, err := NewClient(cfg, nil, true)
	if !errors.Is(err, apierr.ErrNotLoggedIn) {
		t.Errorf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestNewClientWithoutAuth(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.Default()
	client, err := NewClient(cfg, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Error("client is nil")
	}
}
