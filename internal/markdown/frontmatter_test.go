package markdown

import (
	"testing"
	"time"
)

func TestParseFrontMatterTOML(t *testing.T) {
	source := []byte(`+++
title = "Hello"
description = "Greeting post"
date = 2024-03-01T10:00:00Z
tags = ["go", "markdown"]
draft = true
+++

Body text.
`)

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "Hello" || meta.Description != "Greeting post" {
		t.Fatalf("metadata mismatch: %#v", meta)
	}
	if !meta.Draft {
		t.Fatalf("draft flag should be set")
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "go" {
		t.Fatalf("tags mismatch: %#v", meta.Tags)
	}
	if want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC); !meta.Date.Equal(want) {
		t.Fatalf("date mismatch: %v", meta.Date)
	}
	if string(body) != "\nBody text.\n" {
		t.Fatalf("body mismatch: %q", body)
	}
}

func TestParseFrontMatterYAML(t *testing.T) {
	source := []byte("---\ntitle: Yaml Post\ncategories: [notes]\n---\nBody.\n")

	meta, _, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "Yaml Post" {
		t.Fatalf("title mismatch: %q", meta.Title)
	}
	if len(meta.Categories) != 1 || meta.Categories[0] != "notes" {
		t.Fatalf("categories mismatch: %#v", meta.Categories)
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("Just a body.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "" || meta.Draft {
		t.Fatalf("expected zero metadata, got %#v", meta)
	}
	if string(body) != "Just a body.\n" {
		t.Fatalf("body mismatch: %q", body)
	}
}

func TestBuildDocumentSummary(t *testing.T) {
	source := []byte("+++\ntitle = \"Post\"\n+++\nIntro paragraph.\n<!--more-->\nThe rest.\n")

	doc, err := BuildDocument("posts/post.md", source, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Summary != "Intro paragraph." {
		t.Fatalf("summary mismatch: %q", doc.Summary)
	}
}

func TestDeriveSlug(t *testing.T) {
	cases := []struct {
		path string
		slug string
		want string
	}{
		{"posts/hello-world.md", "", "hello-world"},
		{"posts/my-post/index.md", "", "my-post"},
		{"posts/Some File.md", "", "some-file"},
		{"posts/anything.md", "Custom Slug", "custom-slug"},
	}
	for _, tc := range cases {
		meta := frontMatterEnvelope{Slug: tc.slug}
		got := DeriveSlug(tc.path, envelopeToFrontMatter(meta))
		if got != tc.want {
			t.Errorf("DeriveSlug(%q, slug=%q) = %q, want %q", tc.path, tc.slug, got, tc.want)
		}
	}
}
