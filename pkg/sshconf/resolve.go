package sshconf

import (
	"os"

	"github.com/kevinburke/ssh_config"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// ResolvedHost is the effective client configuration for one host after
// ssh_config pattern matching has been applied.
type ResolvedHost struct {
	Host         string
	HostName     string
	User         string
	Port         string
	IdentityFile string
}

// Resolve returns the effective settings for host from the config at
// path, honoring Host patterns the way ssh(1) does. This is a read-only
// view; the editing operations in this package never interpret patterns.
func Resolve(host, path string) (*ResolvedHost, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read ssh config %s", path)
	}
	defer f.Close()

	cfg, err := ssh_config.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse ssh config %s", path)
	}

	r := &ResolvedHost{Host: host}
	r.HostName, _ = cfg.Get(host, "HostName")
	if r.HostName == "" {
		r.HostName = host
	}
	r.User, _ = cfg.Get(host, "User")
	r.Port, _ = cfg.Get(host, "Port")
	if r.Port == "" {
		r.Port = "22"
	}

	identity, _ := cfg.Get(host, "IdentityFile")
	if identity != "" {
		if expanded, expandErr := homedir.Expand(identity); expandErr == nil {
			identity = expanded
		}
	}
	r.IdentityFile = identity

	return r, nil
}
