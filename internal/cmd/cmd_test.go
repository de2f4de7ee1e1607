package cmd

import (
	"testing"
)

func TestRootCommandTree(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd is nil")
	}
	if rootCmd.Use != "boardctl" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "boardctl")
	}

	// Check for expected subcommands (compare by Name(), not Use which includes args)
	expected := []string{"login", "logout", "project", "backlog", "sprint", "task", "plan"}
	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, name := range expected {
		if !cmdMap[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestProjectSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range projectCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "show", "team"} {
		if !names[want] {
			t.Errorf("project subcommand %q not registered", want)
		}
	}
}

func TestSprintSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range sprintCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "create", "assign"} {
		if !names[want] {
			t.Errorf("sprint subcommand %q not registered", want)
		}
	}
}
