package docs

import (
	"bufio"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TestTopics keeps the documentation in sync with itself: every topic listed
// in readme.md must load, and every topic file must be listed in readme.md.
func TestTopics(t *testing.T) {
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	if len(topicsInReadme) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, topic := range topicsInReadme {
		if _, err := Topic(topic); err != nil {
			t.Errorf("topic %q is listed in readme.md but cannot be loaded: %v", topic, err)
		}
	}

	all, err := AllTopics()
	if err != nil {
		t.Fatalf("AllTopics() error: %v", err)
	}
	listed := make(map[string]bool)
	for _, topic := range topicsInReadme {
		listed[topic] = true
	}
	for _, topic := range all {
		if !listed[topic] {
			t.Errorf("topic %q exists but is not listed in readme.md", topic)
		}
	}
}

// TestTopicsAreValidMarkdown parses each topic and checks it opens with a
// level-1 heading, which the terminal renderer relies on.
func TestTopicsAreValidMarkdown(t *testing.T) {
	all, err := AllTopics()
	if err != nil {
		t.Fatalf("AllTopics() error: %v", err)
	}
	all = append(all, "readme")

	md := goldmark.New()
	for _, topic := range all {
		content, err := Topic(topic)
		if err != nil {
			t.Fatalf("Topic(%q) error: %v", topic, err)
		}
		source := []byte(content)
		doc := md.Parser().Parse(text.NewReader(source))

		first := doc.FirstChild()
		heading, ok := first.(*ast.Heading)
		if !ok {
			t.Errorf("topic %q does not start with a heading, got %T", topic, first)
			continue
		}
		if heading.Level != 1 {
			t.Errorf("topic %q starts with a level %d heading, want level 1", topic, heading.Level)
		}
	}
}

func TestTopicNotFound(t *testing.T) {
	if _, err := Topic("no-such-topic"); err == nil {
		t.Error("Topic() on a missing topic succeeded, want error")
	}
}

func TestTopicsStar(t *testing.T) {
	doc, err := Topics("*")
	if err != nil {
		t.Fatalf("Topics(*) error: %v", err)
	}
	for _, want := range []string{"# Budgets", "# Importing Transactions", "# Welcome to efx"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Topics(*) does not contain %q", want)
		}
	}
}
