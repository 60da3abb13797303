// settings.go
// Copyright (C) Andrew Woodlee 2023
// License: Apache-2.0

package vmup

import (
	"os"
	"path/filepath"

	ini "github.com/go-ini/ini"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/amarzullo24/vmup/pkg/gcloud"
)

const (
	settingsSection = "settings"
	defaultUser     = "default_user"
)

// Settings holds the values read from the vmup settings file. The zero
// value is usable: every accessor falls back to a default. Settings are
// not mutated after load; the file is re-read on every invocation.
type Settings struct {
	sshConfig string
	user      string
	project   string
	zone      string
	gcloudCmd string
}

// LoadSettings reads the [settings] section of the file at path. A
// missing or empty path yields all-default settings, never an error.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read settings file %s", path)
	}

	sec := cfg.Section(settingsSection)
	s.sshConfig = sec.Key("ssh_config").String()
	s.user = sec.Key("user").String()
	s.project = sec.Key("project").String()
	s.zone = sec.Key("zone").String()
	s.gcloudCmd = sec.Key("gcloud").String()
	return s, nil
}

// DefaultSettingsPath returns the first settings file that exists out of
// the default candidates, or "" when none do.
func DefaultSettingsPath() string {
	candidates := []string{"./vmup_config"}
	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "vmup", "settings"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// SSHConfigPath returns the configured ssh config path with ~ expanded,
// or ~/.ssh/config.
func (s *Settings) SSHConfigPath() string {
	if s.sshConfig != "" {
		if expanded, err := homedir.Expand(s.sshConfig); err == nil {
			return expanded
		}
		return s.sshConfig
	}
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".ssh", "config")
	}
	return filepath.Join(home, ".ssh", "config")
}

// User returns the configured SSH user or "default_user".
func (s *Settings) User() string {
	if s.user == "" {
		return defaultUser
	}
	return s.user
}

// ProjectZone returns the configured project and zone. Both are
// required for any cloud call; this is the only hard validation in the
// tool.
func (s *Settings) ProjectZone() (string, string, error) {
	if s.project == "" || s.zone == "" {
		return "", "", errors.New("project and zone must be set in the settings file")
	}
	return s.project, s.zone, nil
}

// GcloudCommand returns the command used to invoke the compute CLI.
func (s *Settings) GcloudCommand() string {
	if s.gcloudCmd == "" {
		return gcloud.DefaultCommand
	}
	return s.gcloudCmd
}
