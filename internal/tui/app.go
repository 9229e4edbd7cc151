package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/taskdeck/internal/database/repository"
	"github.com/jask/taskdeck/internal/prefs"
	"github.com/jask/taskdeck/internal/service"
)

// App is the interactive task list for a single owner.
type App struct {
	ctx      context.Context
	tasks    *service.TaskService
	owner    string
	list     []repository.Task
	cursor   int
	status   string
	modal    modalState
	input    string
	hideDone bool
}

type modalState string

const (
	modalNone    modalState = ""
	modalNewTask modalState = "newTask"
)

func New(ctx context.Context, tasks *service.TaskService, owner string) *App {
	view, _ := prefs.LoadView()
	return &App{
		ctx:      ctx,
		tasks:    tasks,
		owner:    owner,
		hideDone: view.HideDone,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadTasks()
}

func (a *App) loadTasks() tea.Cmd {
	return func() tea.Msg {
		list, err := a.tasks.List(a.ctx, a.owner)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg(list)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.visible())-1 {
				a.cursor++
			}
		case "a":
			a.modal = modalNewTask
			a.input = ""
			a.status = ""
		case "enter", "s":
			if t, ok := a.selected(); ok {
				a.status = "updating..."
				return a, a.changeStatusCmd(t.Name, nextStatus(t.Status))
			}
		case "h":
			a.hideDone = !a.hideDone
			a.cursor = 0
			_ = prefs.SaveView(prefs.View{HideDone: a.hideDone})
		case "r":
			return a, a.loadTasks()
		}
	case tasksMsg:
		a.list = []repository.Task(m)
		if a.cursor >= len(a.visible()) {
			a.cursor = 0
		}
	case statusMsg:
		a.status = string(m)
		return a, a.loadTasks()
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
		a.input = ""
		return a, nil
	case "enter":
		name := strings.TrimSpace(a.input)
		a.modal = modalNone
		a.input = ""
		if name == "" {
			a.status = "no task name given"
			return a, nil
		}
		a.status = "creating..."
		return a, a.createCmd(name)
	case "backspace", "ctrl+h":
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
		return a, nil
	}
	switch m.Type {
	case tea.KeyRunes:
		a.input += string(m.Runes)
	case tea.KeySpace:
		a.input += " "
	}
	return a, nil
}

// commands
func (a *App) createCmd(name string) tea.Cmd {
	return func() tea.Msg {
		t, err := a.tasks.Create(a.ctx, a.owner, name)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg("created " + t.Name)
	}
}

func (a *App) changeStatusCmd(name, status string) tea.Cmd {
	return func() tea.Msg {
		t, err := a.tasks.ChangeStatus(a.ctx, a.owner, name, status)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("%s -> %s", t.Name, t.Status))
	}
}

func nextStatus(current string) string {
	switch current {
	case service.StatusTodo:
		return service.StatusDoing
	case service.StatusDoing:
		return service.StatusDone
	default:
		return service.StatusTodo
	}
}

func (a *App) visible() []repository.Task {
	if !a.hideDone {
		return a.list
	}
	out := make([]repository.Task, 0, len(a.list))
	for _, t := range a.list {
		if t.Status != service.StatusDone {
			out = append(out, t)
		}
	}
	return out
}

func (a *App) selected() (repository.Task, bool) {
	vis := a.visible()
	if len(vis) == 0 || a.cursor >= len(vis) {
		return repository.Task{}, false
	}
	return vis[a.cursor], true
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("taskdeck — %s", a.owner)))
	b.WriteString("\n\n")

	vis := a.visible()
	if len(vis) == 0 {
		b.WriteString(dimStyle.Render("no tasks yet — press 'a' to add one"))
		b.WriteString("\n")
	}
	for i, t := range vis {
		cursor := "  "
		if i == a.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, badge(t.Status), t.Name)
		if i == a.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if a.modal == modalNewTask {
		b.WriteString("\n")
		b.WriteString(modalStyle.Render("new task: " + a.input + "▏"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(statusStyle.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("a add · enter/s cycle status · h hide done · r reload · q quit"))
	b.WriteString("\n")
	return b.String()
}

func badge(status string) string {
	switch status {
	case service.StatusDone:
		return doneStyle.Render("[" + status + "]")
	case service.StatusDoing:
		return doingStyle.Render("[" + status + "]")
	default:
		return todoStyle.Render("[" + status + "]")
	}
}

// messages
type tasksMsg []repository.Task

type statusMsg string

type errMsg struct{ error }

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Italic(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	todoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	doingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
