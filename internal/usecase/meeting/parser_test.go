package meeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a|Person", "b|Tool"}, SplitLines("  a|Person\n\n\tb|Tool  \n"))
	assert.Empty(t, SplitLines(" \n \n"))
}

func TestActionItemParser(t *testing.T) {
	p := NewActionItemParser()
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

	t.Run("bullet and assignee", func(t *testing.T) {
		item, ok := p.Parse(`- "Sarah to schedule follow-up meeting with stakeholders"`, base)
		require.True(t, ok)
		assert.Equal(t, "Sarah to schedule follow-up meeting with stakeholders", item.Description)
		require.NotNil(t, item.Assignee)
		assert.Equal(t, "Sarah", *item.Assignee)
	})

	t.Run("numbered with two word assignee and due date", func(t *testing.T) {
		item, ok := p.Parse("2. John Smith will send the proposal tomorrow", base)
		require.True(t, ok)
		assert.Equal(t, "John Smith will send the proposal tomorrow", item.Description)
		require.NotNil(t, item.Assignee)
		assert.Equal(t, "John Smith", *item.Assignee)
		require.NotNil(t, item.DueDate)
		y, m, d := item.DueDate.Date()
		assert.Equal(t, 2024, y)
		assert.Equal(t, time.March, m)
		assert.Equal(t, 5, d)
	})

	t.Run("no assignee", func(t *testing.T) {
		item, ok := p.Parse("* Review the budget document and provide feedback", base)
		require.True(t, ok)
		assert.Nil(t, item.Assignee)
		assert.Nil(t, item.DueDate)
	})

	t.Run("pronouns are not assignees", func(t *testing.T) {
		item, ok := p.Parse("We should revisit pricing", base)
		require.True(t, ok)
		assert.Nil(t, item.Assignee)
	})

	t.Run("empty after stripping", func(t *testing.T) {
		_, ok := p.Parse(` - "" `, base)
		assert.False(t, ok)
	})
}
