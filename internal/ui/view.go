package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"telos/internal/config"
	"telos/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	todayStyle   = dayStyle.Underline(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	expiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.header()))
	b.WriteString("\n\n")

	if m.snap.CurrentView == model.ViewWeek {
		b.WriteString(m.renderWeek())
	} else {
		b.WriteString(m.renderDay())
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Goals"))
	b.WriteString("\n")
	b.WriteString(m.renderGoals())

	b.WriteString("\n---\n")

	switch {
	case m.form != nil:
		b.WriteString(m.form.title())
		b.WriteString("\n\n")
		b.WriteString(panelStyle.Render(m.renderForm()))
		b.WriteString("\n")
		b.WriteString("Field: " + m.form.currentLabel())
		b.WriteString("\n")
		b.WriteString(m.input.View())
	case m.mode == modeAdd:
		b.WriteString(m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) header() string {
	if m.snap.CurrentView == model.ViewWeek {
		r := m.snap.WeekRange()
		return fmt.Sprintf("Week %s to %s", r.Start, r.End)
	}
	return "Day " + m.snap.SelectedDate
}

func (m Model) renderDay() string {
	tasks := m.snap.DayTasks(m.snap.SelectedDate)
	if len(tasks) == 0 {
		return emptyStyle.Render("No tasks for this day. Press 'a' to add one.") + "\n"
	}
	var b strings.Builder
	for i, t := range tasks {
		b.WriteString(m.renderTask(i, t))
	}
	return b.String()
}

func (m Model) renderWeek() string {
	today := model.TodayString(m.now())
	var b strings.Builder
	idx := 0
	for _, day := range m.snap.WeekDays() {
		label := day
		if d, err := model.ParseDate(day); err == nil {
			label = d.Format("Mon 02 Jan")
		}
		style := dayStyle
		if day == today {
			style = todayStyle
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		tasks := m.snap.DayTasks(day)
		if len(tasks) == 0 {
			b.WriteString("  " + emptyStyle.Render("-") + "\n")
		}
		for _, t := range tasks {
			b.WriteString(m.renderTask(idx, t))
			idx++
		}
	}
	return b.String()
}

func (m Model) renderTask(i int, t model.Task) string {
	cursor := " "
	if m.cursor == i && m.mode == modeList && m.focus == focusTasks {
		cursor = ">"
	}

	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	title := t.Title
	if t.StartTime != "" {
		title = t.StartTime + " " + title
	}
	if t.Completed {
		title = doneStyle.Render(title)
	}

	body := fmt.Sprintf("%s %s %s", cursor, checkbox, title)
	if g, ok := m.snap.Goal(t.GoalID); ok {
		body += " " + lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color)).Render("● "+g.Title)
	}
	return body + "\n"
}

func (m Model) renderGoals() string {
	if len(m.snap.Goals) == 0 {
		return emptyStyle.Render("No goals yet. Press 'g' to add one.") + "\n"
	}
	now := m.now()
	var b strings.Builder
	for i, g := range m.snap.Goals {
		cursor := " "
		if m.goalCursor == i && m.mode == modeList && m.focus == focusGoals {
			cursor = ">"
		}

		bar := m.bar
		if g.Color != "" {
			bar.FullColor = g.Color
		}

		line := fmt.Sprintf("%s %s %s %d/%d", cursor, g.Title, bar.ViewAs(g.Progress()/100), g.CurrentCount, g.TargetCount)
		if days, ok := g.RemainingDays(now); ok {
			if g.Expired(now) {
				line += " " + expiredStyle.Render("ended")
			} else {
				line += fmt.Sprintf(" %d days left", days)
			}
		}
		if g.Complete() {
			line += " ✓"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, label := range m.form.labels {
		marker := " "
		if i == m.form.index {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %s: %s", marker, label, emptyPlaceholder(m.form.values[i]))
		if i < len(m.form.labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s delete • %s edit • %s/%s reorder • %s/%s day • %s today • %s view • %s goals • %s new goal • %s check-in • %s quit",
		k.Up, k.Down, k.Add, keyName(k.Toggle), k.Delete, k.Edit, k.MoveUp, k.MoveDown,
		k.PrevDay, k.NextDay, k.Today, k.SwitchView, k.FocusGoals, k.AddGoal, k.IncrementGoal, k.Quit)
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return emptyStyle.Render("(empty)")
	}
	return v
}
