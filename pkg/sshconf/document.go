// document.go
// Copyright (C) Andrew Woodlee 2023
// License: Apache-2.0

// Package sshconf edits Host blocks in an SSH client config file. Only
// the Host and HostName directives are interpreted; every other line is
// passed through untouched. Host names are matched by exact
// case-insensitive token equality, never as ssh(1) patterns.
package sshconf

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

var (
	ErrHostNotFound = errors.New("host not found in ssh config")
	ErrHostExists   = errors.New("host already exists in ssh config")
)

// PlaceholderIP is written into new host blocks so a later
// UpdateHostname always finds a HostName line to rewrite.
const PlaceholderIP = "1.1.1.1"

var (
	hostRe     = regexp.MustCompile(`(?i)^\s*Host\s+(.+?)\s*$`)
	hostNameRe = regexp.MustCompile(`(?i)^(\s*HostName\s+)(.*)$`)
)

// hostDeclRe matches a Host declaration for exactly name: anchored,
// whitespace-tolerant, no extra tokens after the name.
func hostDeclRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*Host\s+` + regexp.QuoteMeta(name) + `\s*$`)
}

// scanState tracks where a forward pass over the lines currently is
// relative to the host block being edited.
type scanState int

const (
	outsideBlock scanState = iota
	insideTarget
	insideOther
)

// Document is an SSH config file held in memory as an ordered sequence
// of raw lines. It is loaded once per command invocation, mutated in
// place and fully rewritten to disk on Save.
type Document struct {
	path  string
	lines []string
	noEOL bool
}

// Load reads the SSH config at path into a Document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read ssh config %s", path)
	}
	return Parse(path, string(data)), nil
}

// Parse builds a Document from content. Save will write it back to path.
func Parse(path, content string) *Document {
	d := &Document{path: path}
	if content == "" {
		return d
	}
	d.noEOL = !strings.HasSuffix(content, "\n")
	d.lines = strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	return d
}

// String renders the document exactly as it will be written to disk.
func (d *Document) String() string {
	if len(d.lines) == 0 {
		return ""
	}
	out := strings.Join(d.lines, "\n")
	if !d.noEOL {
		out += "\n"
	}
	return out
}

// Save rewrites the whole file. There is no partial write and no lock
// against concurrent editors.
func (d *Document) Save() error {
	if err := os.WriteFile(d.path, []byte(d.String()), 0600); err != nil {
		return errors.Wrapf(err, "could not write ssh config %s", d.path)
	}
	return nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// ListHostnames returns one "host -> ip" entry per HostName line, in
// file order. Repeated HostName lines under one host each produce an
// entry; nothing is deduplicated.
func (d *Document) ListHostnames() []string {
	var pairs []string
	currentHost := ""
	for _, line := range d.lines {
		if m := hostRe.FindStringSubmatch(line); m != nil {
			currentHost = m[1]
			continue
		}
		if m := hostNameRe.FindStringSubmatch(line); m != nil && currentHost != "" {
			pairs = append(pairs, currentHost+" -> "+strings.TrimSpace(m[2]))
		}
	}
	return pairs
}

// UpdateHostname rewrites the value of the first HostName line inside
// the block named host, preserving the line's leading whitespace and
// directive text. A matched block without a HostName line is a
// successful no-op. Returns ErrHostNotFound when no block matches.
func (d *Document) UpdateHostname(host, newIP string) error {
	targetRe := hostDeclRe(host)
	state := outsideBlock
	found := false
	patched := false

	for i, line := range d.lines {
		if hostRe.MatchString(line) {
			if targetRe.MatchString(line) {
				state = insideTarget
				found = true
			} else {
				state = insideOther
			}
			continue
		}
		if state != insideTarget || patched {
			continue
		}
		if m := hostNameRe.FindStringSubmatch(line); m != nil {
			d.lines[i] = m[1] + newIP
			patched = true
		}
	}

	if !found {
		return errors.Wrapf(ErrHostNotFound, "%q", host)
	}
	return nil
}

// AddHost appends a new host block with the placeholder address and the
// Google Compute Engine key and known-hosts files. Returns ErrHostExists
// when a block named name is already present.
func (d *Document) AddHost(name, user string) error {
	declRe := hostDeclRe(name)
	for _, line := range d.lines {
		if declRe.MatchString(line) {
			return errors.Wrapf(ErrHostExists, "%q", name)
		}
	}

	dir := sshDir()
	d.lines = append(d.lines,
		"",
		"Host "+name,
		"    HostName "+PlaceholderIP,
		"    IdentityFile "+filepath.Join(dir, "google_compute_engine"),
		"    UserKnownHostsFile="+filepath.Join(dir, "google_compute_known_hosts"),
		"    IdentitiesOnly=yes",
		"    CheckHostIP=no",
		"    User "+user,
	)
	d.noEOL = false
	return nil
}

func sshDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return ".ssh"
	}
	return filepath.Join(home, ".ssh")
}
