// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultSeedParses(t *testing.T) {
	seed := DefaultSeed()
	if len(seed.Projects) != 5 || len(seed.Tracks) != 5 || len(seed.Repos) != 5 {
		t.Fatalf("unexpected seed sizes: %d projects, %d tracks, %d repos",
			len(seed.Projects), len(seed.Tracks), len(seed.Repos))
	}
	for _, p := range seed.Projects {
		if p.SnippetFile == "" || p.Snippet == "" {
			t.Fatalf("project %q missing its sample", p.Name)
		}
	}
}

func TestParseSeedRejectsMissingProfile(t *testing.T) {
	if _, err := ParseSeed([]byte("projects: []\n")); err == nil {
		t.Fatalf("expected error for seed without profile")
	}
	if _, err := ParseSeed([]byte("profile: [")); err == nil {
		t.Fatalf("expected YAML error")
	}
}

func TestStoreServesSeed(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	p, err := s.Profile(ctx)
	if err != nil || p.Name != "Yassine Developer" || p.Email == "" {
		t.Fatalf("Profile() = %+v, %v", p, err)
	}
	a, err := s.Account(ctx)
	if err != nil || a.Followers != 120 || a.PublicRepos != 25 {
		t.Fatalf("Account() = %+v, %v", a, err)
	}

	about, err := s.Sections(ctx, "about")
	if err != nil || len(about) != 3 || about[0].Heading != "Who I Am" {
		t.Fatalf("Sections(about) = %+v, %v", about, err)
	}
	if len(about[2].Lines) != 6 {
		t.Fatalf("list lines not preserved: %q", about[2].Lines)
	}

	jobs, err := s.Jobs(ctx)
	if err != nil || len(jobs) != 3 || len(jobs[0].Highlights) != 4 {
		t.Fatalf("Jobs() = %+v, %v", jobs, err)
	}
	edu, _ := s.Education(ctx)
	certs, _ := s.Certifications(ctx)
	if len(edu) != 1 || len(certs) != 3 {
		t.Fatalf("education=%d certifications=%d", len(edu), len(certs))
	}
}

func TestProjectsFilterAndLookup(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	all, err := s.Projects(ctx, false)
	if err != nil || len(all) != 5 {
		t.Fatalf("Projects(all) = %d, %v", len(all), err)
	}
	featured, err := s.Projects(ctx, true)
	if err != nil || len(featured) != 3 {
		t.Fatalf("Projects(featured) = %d, %v", len(featured), err)
	}
	for _, p := range featured {
		if !p.Featured {
			t.Fatalf("non-featured project %q in featured list", p.Name)
		}
	}

	p, err := s.Project(ctx, "weather dashboard")
	if err != nil || p.SnippetFile != "forecast.go" || len(p.Technologies) != 3 {
		t.Fatalf("Project() = %+v, %v", p, err)
	}
	if _, err := s.Project(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReposTracksCommands(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	repos, err := s.Repos(ctx)
	if err != nil || len(repos) != 5 || repos[0].Name != "react-component-library" {
		t.Fatalf("Repos() not ordered by stars: %+v, %v", repos, err)
	}
	if repos[0].Updated != "2023-02-10" || len(repos[0].Topics) != 4 {
		t.Fatalf("repo fields lost: %+v", repos[0])
	}
	tracks, err := s.Tracks(ctx)
	if err != nil || len(tracks) != 5 || tracks[0].Seconds != 243 {
		t.Fatalf("Tracks() = %+v, %v", tracks, err)
	}
	out, err := s.Command(ctx, "HELP")
	if err != nil || out == "" {
		t.Fatalf("Command(help) = %q, %v", out, err)
	}
	if _, err := s.Command(ctx, "rm"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreSeedsOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "content.db")

	custom := DefaultSeed()
	custom.Profile.Name = "Test Person"
	s, err := Open(ctx, path, custom)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()

	s, err = Open(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	p, _ := s.Profile(ctx)
	if p.Name != "Test Person" {
		t.Fatalf("existing catalog was reseeded: %q", p.Name)
	}
	all, _ := s.Projects(ctx, false)
	if len(all) != 5 {
		t.Fatalf("projects duplicated on reopen: %d", len(all))
	}
}
