package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMention(t *testing.T) {
	got := Mention(42, "Alice")
	assert.Equal(t, `<a href="tg://user?id=42">Alice</a> `, got)
	// завершающий пробел позволяет сразу дописывать предложение
	assert.True(t, strings.HasSuffix(got, " "))
}

func TestMentionEscapesName(t *testing.T) {
	got := Mention(7, `<b>&"evil"`)
	assert.NotContains(t, got, "<b>")
	assert.Contains(t, got, "&lt;b&gt;")
}
