package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSection(t *testing.T, dir, slug, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, slug+".md"), []byte(content), 0644)
	require.NoError(t, err)
}

func TestContentLoadOrdersSections(t *testing.T) {
	dir := t.TempDir()
	writeSection(t, dir, "faq", "---\ntitle: FAQ\norder: 7\n---\n\nQuestions.\n")
	writeSection(t, dir, "hero", "---\ntitle: Your wishes, honoured\nsubtitle: Plan today\norder: 1\n---\n\nWelcome.\n")
	writeSection(t, dir, "about", "---\ntitle: About us\norder: 2\n---\n\nWho we are.\n")

	svc := NewContentService(dir)
	require.NoError(t, svc.Load())

	sections := svc.Sections()
	require.Len(t, sections, 3)
	assert.Equal(t, "hero", sections[0].Slug)
	assert.Equal(t, "about", sections[1].Slug)
	assert.Equal(t, "faq", sections[2].Slug)

	assert.Equal(t, "Plan today", sections[0].Subtitle)
	assert.Contains(t, sections[0].HTMLContent, "<p>Welcome.</p>")
}

func TestContentSectionBySlug(t *testing.T) {
	dir := t.TempDir()
	writeSection(t, dir, "hero", "---\ntitle: Hero\norder: 1\n---\n\nBody.\n")

	svc := NewContentService(dir)
	require.NoError(t, svc.Load())

	section, err := svc.Section("hero")
	require.NoError(t, err)
	assert.Equal(t, "Hero", section.Title)

	_, err = svc.Section("missing")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestContentTitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writeSection(t, dir, "our-impact", "---\norder: 8\n---\n\nNumbers.\n")

	svc := NewContentService(dir)
	require.NoError(t, svc.Load())

	section, err := svc.Section("our-impact")
	require.NoError(t, err)
	assert.Equal(t, "our impact", section.Title)
}

func TestContentMissingDirIsNotFatal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist-yet")

	svc := NewContentService(dir)
	require.NoError(t, svc.Load())
	assert.Empty(t, svc.Sections())
}
