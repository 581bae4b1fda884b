package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mastery/internal/level"
	"mastery/internal/mastery"
	"mastery/internal/timefmt"
	"mastery/internal/tracker"
)

// refreshInterval is how often the dashboard re-reads the tracker snapshot.
const refreshInterval = 250 * time.Millisecond

// mode is the input state of the dashboard.
type mode int

const (
	modeNormal mode = iota
	modeAddSkill
	modeLogHours
	modeRenameUser
)

type tickMsg time.Time

// Model is the bubbletea model for the dashboard. All state mutation goes
// through the tracker; the model only renders snapshots.
type Model struct {
	tracker *tracker.Tracker
	timer   *tracker.Timer

	snaps  []mastery.Snapshot
	cursor int
	bar    progress.Model
	input  textinput.Model
	mode   mode
	status string
	isErr  bool
	width  int
	styles Styles
}

// New builds the dashboard model.
func New(tr *tracker.Tracker, tm *tracker.Timer) Model {
	input := textinput.New()
	input.CharLimit = 64

	return Model{
		tracker: tr,
		timer:   tm,
		snaps:   tr.Snapshot(),
		bar:     progress.New(progress.WithDefaultGradient()),
		input:   input,
		styles:  DefaultStyles(),
		width:   80,
	}
}

// Run starts the dashboard and blocks until the user quits. The practice
// timer is stopped before returning.
func Run(tr *tracker.Tracker, tm *tracker.Timer) error {
	p := tea.NewProgram(New(tr, tm), tea.WithAltScreen())
	_, err := p.Run()
	if tm.Running() {
		_ = tm.Stop()
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 46
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
		return m, nil

	case tickMsg:
		m.snaps = m.tracker.Snapshot()
		m.clampCursor()
		return m, tick()

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snaps) {
		m.cursor = len(m.snaps) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedName() (string, bool) {
	if len(m.snaps) == 0 {
		return "", false
	}
	return m.snaps[m.cursor].Name, true
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.timer.Running() {
			_ = m.timer.Stop()
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snaps)-1 {
			m.cursor++
		}

	case "a":
		return m.enterInput(modeAddSkill, "skill name"), nil

	case "l":
		if _, ok := m.selectedName(); !ok {
			return m.report("no skill selected", true), nil
		}
		return m.enterInput(modeLogHours, "hours.minutes (e.g. 2.30)"), nil

	case "u":
		return m.enterInput(modeRenameUser, "new username"), nil

	case "d":
		name, ok := m.selectedName()
		if !ok {
			return m.report("no skill selected", true), nil
		}
		if m.timer.Running() && m.timer.Target() == name {
			_ = m.timer.Stop()
		}
		if err := m.tracker.DeleteContainer(name); err != nil {
			return m.report(err.Error(), true), nil
		}
		m.snaps = m.tracker.Snapshot()
		m.clampCursor()
		return m.report(fmt.Sprintf("deleted %q", name), false), nil

	case "t":
		return m.toggleTimer(), nil
	}
	return m, nil
}

func (m Model) toggleTimer() Model {
	if m.timer.Running() {
		_ = m.timer.Stop()
		return m.report(fmt.Sprintf("timer stopped at %s", timefmt.FormatClock(m.timer.Elapsed())), false)
	}
	name, ok := m.selectedName()
	if !ok {
		return m.report("no skill selected for timer", true)
	}
	if err := m.timer.Start(name); err != nil {
		return m.report(err.Error(), true)
	}
	return m.report(fmt.Sprintf("timer running on %q", name), false)
}

func (m Model) enterInput(mo mode, placeholder string) Model {
	m.mode = mo
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	m.status = ""
	m.isErr = false
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		mo := m.mode
		m.mode = modeNormal
		return m.commitInput(mo, value), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitInput applies the entered value. Every failure is reported in the
// status line and the dashboard keeps running.
func (m Model) commitInput(mo mode, value string) Model {
	if value == "" {
		return m.report("empty input ignored", true)
	}

	switch mo {
	case modeAddSkill:
		snap, err := m.tracker.CreateContainer(value)
		if err != nil {
			return m.report(err.Error(), true)
		}
		m.snaps = m.tracker.Snapshot()
		return m.report(fmt.Sprintf("tracking %q", snap.Name), false)

	case modeLogHours:
		name, ok := m.selectedName()
		if !ok {
			return m.report("no skill selected", true)
		}
		snap, err := m.tracker.AddHoursString(name, value)
		if err != nil {
			return m.report(err.Error(), true)
		}
		m.snaps = m.tracker.Snapshot()
		return m.report(fmt.Sprintf("%s: %s", snap.Name, timefmt.FormatHoursMinutes(snap.Hours)), false)

	case modeRenameUser:
		if err := m.tracker.RenameUser(value); err != nil {
			return m.report(err.Error(), true)
		}
		return m.report(fmt.Sprintf("username changed to %q", value), false)
	}
	return m
}

func (m Model) report(msg string, isErr bool) Model {
	m.status = msg
	m.isErr = isErr
	return m
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Mastery Tracker"))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Username.Render(m.tracker.Username()))
	sb.WriteString("\n\n")

	if len(m.snaps) == 0 {
		sb.WriteString(m.styles.Status.Render("No skills yet. Press 'a' to add one."))
		sb.WriteString("\n")
	}

	for i, snap := range m.snaps {
		cursor := "  "
		nameStyle := m.styles.Row
		if i == m.cursor {
			cursor = "> "
			nameStyle = m.styles.Selected
		}

		ratio := snap.Hours / level.MaxHours
		if ratio > 1 {
			ratio = 1
		}

		sb.WriteString(cursor)
		sb.WriteString(nameStyle.Render(fmt.Sprintf("%-15s", snap.Name)))
		sb.WriteString(" ")
		sb.WriteString(m.bar.ViewAs(ratio))
		sb.WriteString(" ")
		sb.WriteString(m.styles.Level.Render(fmt.Sprintf("%-17s", string(snap.Level))))
		sb.WriteString(" ")
		sb.WriteString(m.styles.Hours.Render(timefmt.FormatHoursMinutes(snap.Hours)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.timer.Running() {
		sb.WriteString(m.styles.Timer.Render(fmt.Sprintf("⏱ %s on %q",
			timefmt.FormatClock(m.timer.Elapsed()), m.timer.Target())))
		sb.WriteString("\n")
	}

	if m.mode != modeNormal {
		sb.WriteString(m.styles.Prompt.Render(m.inputLabel()))
		sb.WriteString(" ")
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	} else if m.status != "" {
		style := m.styles.Status
		if m.isErr {
			style = m.styles.Error
		}
		sb.WriteString(style.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(
		"a add · l log hours · d delete · t timer · u username · ↑/↓ select · q quit"))
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) inputLabel() string {
	switch m.mode {
	case modeAddSkill:
		return "New skill:"
	case modeLogHours:
		name, _ := m.selectedName()
		return fmt.Sprintf("Log time on %q:", name)
	case modeRenameUser:
		return "New username:"
	}
	return ""
}
