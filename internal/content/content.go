// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/content/content.go
// Summary: Portfolio records shown by the desktop panels.
// Usage: Panels read these through Store; Seed describes the embedded
//   YAML document the store is populated from.

package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a named record does not exist.
var ErrNotFound = errors.New("content: not found")

//go:embed seed.yaml
var defaultSeed []byte

type Profile struct {
	Name       string `yaml:"name" json:"name"`
	Role       string `yaml:"role" json:"role"`
	Email      string `yaml:"email" json:"email"`
	Phone      string `yaml:"phone" json:"phone"`
	Location   string `yaml:"location" json:"location"`
	Company    string `yaml:"company" json:"company"`
	Experience string `yaml:"experience" json:"experience"`
	GitHub     string `yaml:"github" json:"github"`
	LinkedIn   string `yaml:"linkedin" json:"linkedin"`
	Twitter    string `yaml:"twitter" json:"twitter"`
}

// Account is the code-hosting profile shown by the GitHub panel.
type Account struct {
	Login       string `yaml:"login" json:"login"`
	Bio         string `yaml:"bio" json:"bio"`
	Followers   int    `yaml:"followers" json:"followers"`
	Following   int    `yaml:"following" json:"following"`
	PublicRepos int    `yaml:"public_repos" json:"public_repos"`
	URL         string `yaml:"url" json:"url"`
}

// Section is a headed block of prose belonging to one panel.
type Section struct {
	Panel   string   `yaml:"panel" json:"panel"`
	Heading string   `yaml:"heading" json:"heading"`
	Lines   []string `yaml:"lines" json:"lines"`
}

type Job struct {
	Title      string   `yaml:"title" json:"title"`
	Company    string   `yaml:"company" json:"company"`
	Period     string   `yaml:"period" json:"period"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type Degree struct {
	Degree string `yaml:"degree" json:"degree"`
	School string `yaml:"school" json:"school"`
	Period string `yaml:"period" json:"period"`
}

// Project is a portfolio entry with a short source sample.
type Project struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	GitHub       string   `yaml:"github" json:"github"`
	Demo         string   `yaml:"demo" json:"demo"`
	Featured     bool     `yaml:"featured" json:"featured"`
	SnippetFile  string   `yaml:"snippet_file" json:"snippet_file"`
	Snippet      string   `yaml:"snippet" json:"snippet"`
}

type Repo struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	URL         string   `yaml:"url" json:"url"`
	Stars       int      `yaml:"stars" json:"stars"`
	Forks       int      `yaml:"forks" json:"forks"`
	Updated     string   `yaml:"updated" json:"updated"`
	Language    string   `yaml:"language" json:"language"`
	Topics      []string `yaml:"topics" json:"topics"`
}

type Track struct {
	Title   string `yaml:"title" json:"title"`
	Artist  string `yaml:"artist" json:"artist"`
	Album   string `yaml:"album" json:"album"`
	Seconds int    `yaml:"seconds" json:"seconds"`
}

// Command is a canned reply of the simulated terminal.
type Command struct {
	Name   string `yaml:"name" json:"name"`
	Output string `yaml:"output" json:"output"`
}

// Seed is the full content document.
type Seed struct {
	Profile        Profile   `yaml:"profile"`
	Account        Account   `yaml:"account"`
	Sections       []Section `yaml:"sections"`
	Jobs           []Job     `yaml:"jobs"`
	Education      []Degree  `yaml:"education"`
	Certifications []string  `yaml:"certifications"`
	Projects       []Project `yaml:"projects"`
	Repos          []Repo    `yaml:"repos"`
	Tracks         []Track   `yaml:"tracks"`
	Commands       []Command `yaml:"commands"`
}

// ParseSeed decodes a YAML content document.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse content seed: %w", err)
	}
	if s.Profile.Name == "" {
		return nil, fmt.Errorf("parse content seed: profile name is required")
	}
	return &s, nil
}

// DefaultSeed returns the embedded content document.
func DefaultSeed() *Seed {
	s, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return s
}
