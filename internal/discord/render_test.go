package discord

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weekplan/internal/date"
	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

func weekOf(t *testing.T, tasks []task.Task) planning.View {
	t.Helper()
	ref, err := date.Parse("13/03/2024")
	require.NoError(t, err)
	return planning.BuildWeek(tasks, date.Week(ref, 0), 0)
}

func buttons(t *testing.T, c discordgo.MessageComponent) []discordgo.Button {
	t.Helper()
	row, ok := c.(discordgo.ActionsRow)
	require.True(t, ok, "expected an actions row, got %T", c)
	out := make([]discordgo.Button, 0, len(row.Components))
	for _, b := range row.Components {
		btn, ok := b.(discordgo.Button)
		require.True(t, ok)
		out = append(out, btn)
	}
	return out
}

func TestRender_Week(t *testing.T) {
	v := weekOf(t, []task.Task{
		task.New(1, "Buy milk", "12/03/2024"),
		{ID: 2, Title: "Call mom", Date: "13/03/2024", Done: true, ValidatedBy: "Bob"},
	})

	m := Render(v)
	assert.Zero(t, m.Dropped)
	assert.Equal(t, "📅 Tasks for the week (11/03 → 17/03)", m.Embed.Title)
	assert.Equal(t, planning.WeekColor, m.Embed.Color)
	require.Len(t, m.Embed.Fields, 2)
	assert.Equal(t, "[ID 1] 12/03/2024 – Buy milk", m.Embed.Fields[0].Name)
	assert.Equal(t, "❌ Pending", m.Embed.Fields[0].Value)
	assert.Equal(t, "✅ Completed (by Bob)", m.Embed.Fields[1].Value)

	require.Len(t, m.Components, 2)
	done := buttons(t, m.Components[0])
	require.Len(t, done, 1)
	assert.Equal(t, "✅ Buy milk", done[0].Label)
	assert.Equal(t, discordgo.SuccessButton, done[0].Style)
	assert.True(t, strings.HasPrefix(done[0].CustomID, "wp:done:1:"))

	nav := buttons(t, m.Components[1])
	require.Len(t, nav, 2)
	assert.Equal(t, "wp:prev:-1", nav[0].CustomID)
	assert.Equal(t, "wp:next:1", nav[1].CustomID)
	assert.Equal(t, discordgo.PrimaryButton, nav[0].Style)
}

func TestRender_EmptyWeekKeepsNavigation(t *testing.T) {
	m := Render(weekOf(t, nil))
	assert.Equal(t, "📭 No tasks planned this week.", m.Embed.Description)
	assert.Empty(t, m.Embed.Fields)
	require.Len(t, m.Components, 1)
	assert.Len(t, buttons(t, m.Components[0]), 2)
}

func TestRender_EnforcesLimits(t *testing.T) {
	var tasks []task.Task
	for i := 1; i <= 30; i++ {
		tasks = append(tasks, task.New(i, fmt.Sprintf("task %d", i), "13/03/2024"))
	}

	m := Render(weekOf(t, tasks))
	assert.Len(t, m.Embed.Fields, maxFields)
	require.NotNil(t, m.Embed.Footer)
	assert.Equal(t, "…and 5 more", m.Embed.Footer.Text)

	require.Len(t, m.Components, maxRows)
	total := 0
	for _, c := range m.Components[:maxRows-1] {
		row := buttons(t, c)
		assert.LessOrEqual(t, len(row), maxPerRow)
		total += len(row)
	}
	assert.Equal(t, maxTaskButtons, total)
	assert.Equal(t, "wp:prev:-1", buttons(t, m.Components[maxRows-1])[0].CustomID)

	// 5 fields and 10 buttons could not be shown.
	assert.Equal(t, 15, m.Dropped)
}

func TestRender_TruncatesLongLabels(t *testing.T) {
	long := strings.Repeat("é", 120)
	m := Render(weekOf(t, []task.Task{task.New(1, long, "13/03/2024")}))

	label := buttons(t, m.Components[0])[0].Label
	assert.Equal(t, maxLabelLen, utf8.RuneCountInString(label))
	assert.True(t, strings.HasSuffix(label, "…"))
}

func TestRender_ListHasNoButtons(t *testing.T) {
	m := Render(planning.BuildList([]task.Task{task.New(1, "A", "01/01/2030")}))
	assert.Equal(t, planning.ListColor, m.Embed.Color)
	assert.Len(t, m.Embed.Fields, 1)
	assert.Empty(t, m.Components)
}

func TestCommands_Shape(t *testing.T) {
	names := map[string]*discordgo.ApplicationCommand{}
	for _, c := range Commands() {
		names[c.Name] = c
	}
	assert.Len(t, names, 7)

	edit := names[cmdEdit]
	require.NotNil(t, edit)
	require.Len(t, edit.Options, 3)
	assert.True(t, edit.Options[0].Required)
	assert.False(t, edit.Options[1].Required)
	assert.False(t, edit.Options[2].Required)

	channel := names[cmdChannel]
	require.NotNil(t, channel)
	assert.Equal(t, discordgo.ApplicationCommandOptionChannel, channel.Options[0].Type)
}
