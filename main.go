package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/habitr/internal/export"
	"github.com/sadopc/habitr/internal/store"
	"github.com/sadopc/habitr/internal/tui"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path." type:"path"`

	Tui    TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Export ExportCmd `cmd:"" help:"Export all logged sessions."`
}

type TuiCmd struct{}

func (c *TuiCmd) Run(s *store.Store) error {
	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type ExportCmd struct {
	Format string `help:"Export format." enum:"csv,json" default:"csv"`
	Output string `help:"Output file path." type:"path"`
}

func (c *ExportCmd) Run(s *store.Store) error {
	logs, err := s.ListLogs(store.LogFilter{})
	if err != nil {
		return err
	}

	habits := make(map[string]*store.Habit)
	hlist, err := s.ListHabits(true)
	if err != nil {
		return err
	}
	for i := range hlist {
		habits[hlist[i].ID] = &hlist[i]
	}

	path := c.Output
	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, fmt.Sprintf("habitr-export-%s.%s", time.Now().Format("2006-01-02"), c.Format))
	}

	if c.Format == "json" {
		err = export.ToJSON(logs, habits, path)
	} else {
		err = export.ToCSV(logs, habits, path)
	}
	if err != nil {
		return err
	}
	fmt.Println("exported to", path)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitr"),
		kong.Description("Habit time tracker with daily attribution and weekly/monthly views"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	dbPath := CLI.DB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	ctx.Bind(s)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
