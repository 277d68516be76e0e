package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bookmylastwishes/portal/internal/markdown"
	"github.com/bookmylastwishes/portal/internal/model"
)

var ErrSectionNotFound = fmt.Errorf("content section not found")

// ContentService serves the marketing site sections (hero, about, services,
// methodology, timeline, testimonials, FAQ) from markdown files on disk.
type ContentService struct {
	contentDir string
	parser     *markdown.Parser

	mu       sync.RWMutex
	sections map[string]*model.ContentSection
	ordered  []*model.ContentSection
}

func NewContentService(contentDir string) *ContentService {
	return &ContentService{
		contentDir: contentDir,
		parser:     markdown.NewParser(),
		sections:   make(map[string]*model.ContentSection),
	}
}

// Load reads every .md file in the content directory. The slug is the file
// name; title, subtitle and order come from frontmatter.
func (s *ContentService) Load() error {
	files, err := os.ReadDir(s.contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			err = os.MkdirAll(s.contentDir, 0755)
			if err != nil {
				return fmt.Errorf("failed to create content directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to read content directory: %w", err)
	}

	sections := make(map[string]*model.ContentSection)
	var ordered []*model.ContentSection

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
			continue
		}

		slug := strings.TrimSuffix(file.Name(), ".md")
		section, err := s.loadSection(slug)
		if err != nil {
			return fmt.Errorf("failed to load section %s: %w", slug, err)
		}

		sections[slug] = section
		ordered = append(ordered, section)
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].Slug < ordered[j].Slug
	})

	s.mu.Lock()
	s.sections = sections
	s.ordered = ordered
	s.mu.Unlock()

	return nil
}

func (s *ContentService) loadSection(slug string) (*model.ContentSection, error) {
	filePath := filepath.Join(s.contentDir, slug+".md")
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		title = strings.ReplaceAll(slug, "-", " ")
	}
	subtitle, _ := meta["subtitle"].(string)

	order := 0
	switch v := meta["order"].(type) {
	case int:
		order = v
	case int64:
		order = int(v)
	case float64:
		order = int(v)
	}

	return &model.ContentSection{
		Slug:        slug,
		Title:       title,
		Subtitle:    subtitle,
		Order:       order,
		HTMLContent: string(html),
	}, nil
}

// Sections returns every section in display order.
func (s *ContentService) Sections() []*model.ContentSection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordered
}

// Section returns one section by slug.
func (s *ContentService) Section(slug string) (*model.ContentSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	section, ok := s.sections[slug]
	if !ok {
		return nil, ErrSectionNotFound
	}
	return section, nil
}
