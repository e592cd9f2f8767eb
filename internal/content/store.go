// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/content/store.go
// Summary: SQLite-backed portfolio catalog.
// Notes: The default database lives in memory and is seeded on open, so a
//   session never persists anything. A file path keeps the catalog between
//   runs and is only seeded when empty.

package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath selects a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS profile (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
    id      INTEGER PRIMARY KEY,
    panel   TEXT NOT NULL,
    heading TEXT NOT NULL,
    lines   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sections_panel ON sections(panel);

CREATE TABLE IF NOT EXISTS jobs (
    id         INTEGER PRIMARY KEY,
    title      TEXT NOT NULL,
    company    TEXT NOT NULL,
    period     TEXT NOT NULL,
    highlights TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS education (
    id     INTEGER PRIMARY KEY,
    degree TEXT NOT NULL,
    school TEXT NOT NULL,
    period TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS certifications (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL UNIQUE COLLATE NOCASE,
    description  TEXT NOT NULL,
    technologies TEXT NOT NULL,
    github       TEXT NOT NULL,
    demo         TEXT NOT NULL,
    featured     INTEGER NOT NULL DEFAULT 0,
    snippet_file TEXT NOT NULL,
    snippet      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS repos (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL,
    url         TEXT NOT NULL,
    stars       INTEGER NOT NULL,
    forks       INTEGER NOT NULL,
    updated     TEXT NOT NULL,
    language    TEXT NOT NULL,
    topics      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tracks (
    id      INTEGER PRIMARY KEY,
    title   TEXT NOT NULL,
    artist  TEXT NOT NULL,
    album   TEXT NOT NULL,
    seconds INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS commands (
    name   TEXT PRIMARY KEY,
    output TEXT NOT NULL
);
`

// Store serves portfolio content from SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the catalog at path, creating the schema and loading seed when
// the catalog is empty. A nil seed uses the embedded document.
func Open(ctx context.Context, path string, seed *Seed) (*Store, error) {
	if path == "" {
		path = MemoryPath
	}
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create content dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open content db: %w", err)
	}
	// Every pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect content db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create content schema: %w", err)
	}

	s := &Store{db: db}
	empty, err := s.empty(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if empty {
		if seed == nil {
			seed = DefaultSeed()
		}
		if err := s.load(ctx, seed); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profile`).Scan(&n); err != nil {
		return false, fmt.Errorf("count profile rows: %w", err)
	}
	return n == 0, nil
}

func (s *Store) load(ctx context.Context, seed *Seed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	exec := func(query string, args ...any) {
		if err != nil {
			return
		}
		_, err = tx.ExecContext(ctx, query, args...)
	}

	p := seed.Profile
	a := seed.Account
	for k, v := range map[string]string{
		"name": p.Name, "role": p.Role, "email": p.Email, "phone": p.Phone,
		"location": p.Location, "company": p.Company, "experience": p.Experience,
		"github": p.GitHub, "linkedin": p.LinkedIn, "twitter": p.Twitter,
		"account.login": a.Login, "account.bio": a.Bio, "account.url": a.URL,
		"account.followers": fmt.Sprint(a.Followers), "account.following": fmt.Sprint(a.Following),
		"account.public_repos": fmt.Sprint(a.PublicRepos),
	} {
		exec(`INSERT INTO profile(key, value) VALUES (?, ?)`, k, v)
	}
	for _, sec := range seed.Sections {
		exec(`INSERT INTO sections(panel, heading, lines) VALUES (?, ?, ?)`,
			sec.Panel, sec.Heading, joinList(sec.Lines))
	}
	for _, j := range seed.Jobs {
		exec(`INSERT INTO jobs(title, company, period, highlights) VALUES (?, ?, ?, ?)`,
			j.Title, j.Company, j.Period, joinList(j.Highlights))
	}
	for _, d := range seed.Education {
		exec(`INSERT INTO education(degree, school, period) VALUES (?, ?, ?)`, d.Degree, d.School, d.Period)
	}
	for _, c := range seed.Certifications {
		exec(`INSERT INTO certifications(name) VALUES (?)`, c)
	}
	for _, pr := range seed.Projects {
		exec(`INSERT INTO projects(name, description, technologies, github, demo, featured, snippet_file, snippet)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			pr.Name, pr.Description, joinList(pr.Technologies), pr.GitHub, pr.Demo, pr.Featured, pr.SnippetFile, pr.Snippet)
	}
	for _, r := range seed.Repos {
		exec(`INSERT INTO repos(name, description, url, stars, forks, updated, language, topics)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Name, r.Description, r.URL, r.Stars, r.Forks, r.Updated, r.Language, joinList(r.Topics))
	}
	for _, t := range seed.Tracks {
		exec(`INSERT INTO tracks(title, artist, album, seconds) VALUES (?, ?, ?, ?)`, t.Title, t.Artist, t.Album, t.Seconds)
	}
	for _, c := range seed.Commands {
		exec(`INSERT INTO commands(name, output) VALUES (?, ?)`, strings.ToLower(c.Name), strings.TrimRight(c.Output, "\n"))
	}
	if err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// Profile returns the owner's profile.
func (s *Store) Profile(ctx context.Context) (Profile, error) {
	kv, err := s.profileMap(ctx)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Name: kv["name"], Role: kv["role"], Email: kv["email"], Phone: kv["phone"],
		Location: kv["location"], Company: kv["company"], Experience: kv["experience"],
		GitHub: kv["github"], LinkedIn: kv["linkedin"], Twitter: kv["twitter"],
	}, nil
}

// Account returns the code-hosting profile.
func (s *Store) Account(ctx context.Context) (Account, error) {
	kv, err := s.profileMap(ctx)
	if err != nil {
		return Account{}, err
	}
	var a Account
	a.Login, a.Bio, a.URL = kv["account.login"], kv["account.bio"], kv["account.url"]
	fmt.Sscan(kv["account.followers"], &a.Followers)
	fmt.Sscan(kv["account.following"], &a.Following)
	fmt.Sscan(kv["account.public_repos"], &a.PublicRepos)
	return a, nil
}

func (s *Store) profileMap(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM profile`)
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	defer rows.Close()
	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		kv[k] = v
	}
	return kv, rows.Err()
}

// Sections returns the prose blocks of panel in seed order.
func (s *Store) Sections(ctx context.Context, panel string) ([]Section, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT panel, heading, lines FROM sections WHERE panel = ? ORDER BY id`, panel)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()
	var out []Section
	for rows.Next() {
		var sec Section
		var lines string
		if err := rows.Scan(&sec.Panel, &sec.Heading, &lines); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sec.Lines = splitList(lines)
		out = append(out, sec)
	}
	return out, rows.Err()
}

// Jobs returns work history, most recent first.
func (s *Store) Jobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, company, period, highlights FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()
	var out []Job
	for rows.Next() {
		var j Job
		var hl string
		if err := rows.Scan(&j.Title, &j.Company, &j.Period, &hl); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		j.Highlights = splitList(hl)
		out = append(out, j)
	}
	return out, rows.Err()
}

func (s *Store) Education(ctx context.Context) ([]Degree, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT degree, school, period FROM education ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query education: %w", err)
	}
	defer rows.Close()
	var out []Degree
	for rows.Next() {
		var d Degree
		if err := rows.Scan(&d.Degree, &d.School, &d.Period); err != nil {
			return nil, fmt.Errorf("scan degree: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Certifications(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM certifications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query certifications: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan certification: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const projectColumns = `name, description, technologies, github, demo, featured, snippet_file, snippet`

// Projects returns portfolio entries; featuredOnly filters to highlighted ones.
func (s *Store) Projects(ctx context.Context, featuredOnly bool) ([]Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects`
	if featuredOnly {
		q += ` WHERE featured = 1`
	}
	rows, err := s.db.QueryContext(ctx, q+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()
	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Project looks up a single project by name, ignoring case.
func (s *Store) Project(ctx context.Context, name string) (Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE name = ?`, name)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, fmt.Errorf("project %q: %w", name, ErrNotFound)
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(r scanner) (Project, error) {
	var p Project
	var tech string
	if err := r.Scan(&p.Name, &p.Description, &tech, &p.GitHub, &p.Demo, &p.Featured, &p.SnippetFile, &p.Snippet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scan project: %w", err)
	}
	p.Technologies = splitList(tech)
	return p, nil
}

// Repos returns repositories ordered by star count, highest first.
func (s *Store) Repos(ctx context.Context) ([]Repo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, description, url, stars, forks, updated, language, topics FROM repos ORDER BY stars DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query repos: %w", err)
	}
	defer rows.Close()
	var out []Repo
	for rows.Next() {
		var r Repo
		var topics string
		if err := rows.Scan(&r.Name, &r.Description, &r.URL, &r.Stars, &r.Forks, &r.Updated, &r.Language, &topics); err != nil {
			return nil, fmt.Errorf("scan repo: %w", err)
		}
		r.Topics = splitList(topics)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Tracks(ctx context.Context) ([]Track, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, artist, album, seconds FROM tracks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()
	var out []Track
	for rows.Next() {
		var t Track
		if err := rows.Scan(&t.Title, &t.Artist, &t.Album, &t.Seconds); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Command returns the canned output of a terminal command.
func (s *Store) Command(ctx context.Context, name string) (string, error) {
	var out string
	err := s.db.QueryRowContext(ctx, `SELECT output FROM commands WHERE name = ?`, strings.ToLower(name)).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("command %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("query command: %w", err)
	}
	return out, nil
}

func joinList(items []string) string {
	return strings.Join(items, "\n")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
