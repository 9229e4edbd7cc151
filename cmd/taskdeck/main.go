package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/taskdeck/internal/audit"
	"github.com/jask/taskdeck/internal/config"
	"github.com/jask/taskdeck/internal/database"
	"github.com/jask/taskdeck/internal/database/repository"
	"github.com/jask/taskdeck/internal/identity"
	"github.com/jask/taskdeck/internal/service"
	"github.com/jask/taskdeck/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	logger, err := audit.NewLogger(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	tasks := &service.TaskService{
		DB:      db,
		Records: repository.NewTaskRepo(db),
		Index:   repository.NewOwnerIndexRepo(db),
		Events:  audit.NewZapSink(logger),
	}

	resolver := identity.EnvResolver{Override: cfg.Owner.Override}
	owner, err := resolver.Current()
	if err != nil {
		log.Fatalf("resolve owner: %v", err)
	}

	if len(os.Args) > 1 {
		if err := runCommand(ctx, tasks, owner, os.Args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(tui.New(ctx, tasks, owner), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// runCommand handles the one-shot scripting surface: list, add, status.
func runCommand(ctx context.Context, tasks *service.TaskService, owner string, args []string) error {
	switch args[0] {
	case "list":
		list, err := tasks.List(ctx, owner)
		if err != nil {
			return err
		}
		for _, t := range list {
			fmt.Printf("%-8s %s\n", "["+t.Status+"]", t.Name)
		}
		return nil
	case "add":
		if len(args) < 2 {
			return errors.New("usage: taskdeck add <name>")
		}
		t, err := tasks.Create(ctx, owner, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("created %s [%s]\n", t.Name, t.Status)
		return nil
	case "status":
		if len(args) < 3 {
			return errors.New("usage: taskdeck status <name> <status>")
		}
		t, err := tasks.ChangeStatus(ctx, owner, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", t.Name, t.Status)
		return nil
	default:
		return fmt.Errorf("unknown command %q (want list, add or status)", args[0])
	}
}
