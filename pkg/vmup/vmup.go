// vmup.go
// Copyright (C) Andrew Woodlee 2023
// License: Apache-2.0

// Package vmup composes the settings file, the compute CLI and the SSH
// config editor into the commands the CLI exposes.
package vmup

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/amarzullo24/vmup/pkg/gcloud"
	"github.com/amarzullo24/vmup/pkg/sshconf"
)

// CloudClient is the slice of the gcloud client the orchestrator needs.
type CloudClient interface {
	Start(instance string) gcloud.Result
	Stop(instance string) gcloud.Result
	PublicIP(instance string) (string, gcloud.Result)
}

// Manager ties the settings, the compute CLI and the ssh config editor
// together for one command invocation.
type Manager struct {
	Settings *Settings
	Logger   zerolog.Logger

	sshConfigOverride string
	newCloudClient    func(project, zone string) CloudClient
}

type Option func(*Manager)

// WithSSHConfig overrides the ssh config path from the settings file.
func WithSSHConfig(path string) Option {
	return func(m *Manager) {
		m.sshConfigOverride = path
	}
}

// WithCloudClient replaces the compute CLI client factory. Used in tests.
func WithCloudClient(factory func(project, zone string) CloudClient) Option {
	return func(m *Manager) {
		m.newCloudClient = factory
	}
}

func NewManager(settings *Settings, logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		Settings: settings,
		Logger:   logger,
	}
	m.newCloudClient = func(project, zone string) CloudClient {
		return gcloud.NewClient(project, zone, gcloud.WithCommand(settings.GcloudCommand()))
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// SSHConfigPath returns the ssh config file every operation edits.
func (m *Manager) SSHConfigPath() string {
	if m.sshConfigOverride != "" {
		return m.sshConfigOverride
	}
	return m.Settings.SSHConfigPath()
}

// ListHostnames returns "host -> ip" pairs from the ssh config in file
// order.
func (m *Manager) ListHostnames() ([]string, error) {
	doc, err := sshconf.Load(m.SSHConfigPath())
	if err != nil {
		return nil, err
	}
	return doc.ListHostnames(), nil
}

// UpdateHostname patches the HostName of one host block and rewrites
// the file.
func (m *Manager) UpdateHostname(host, newIP string) error {
	doc, err := sshconf.Load(m.SSHConfigPath())
	if err != nil {
		return err
	}
	if err := doc.UpdateHostname(host, newIP); err != nil {
		return err
	}
	return doc.Save()
}

// AddHost appends a new host block with the placeholder address and
// rewrites the file.
func (m *Manager) AddHost(name string) error {
	doc, err := sshconf.Load(m.SSHConfigPath())
	if err != nil {
		return err
	}
	if err := doc.AddHost(name, m.Settings.User()); err != nil {
		return err
	}
	return doc.Save()
}

// StartVM starts the instance, asks gcloud for its public IP and patches
// the instance's HostName entry in the ssh config. The host block is
// created with the placeholder address when missing, so the patch step
// always has a line to rewrite. The document is loaded once and written
// once; a crash mid-sequence leaves at most the pre-existing file.
func (m *Manager) StartVM(instance string) error {
	project, zone, err := m.Settings.ProjectZone()
	if err != nil {
		return err
	}
	client := m.newCloudClient(project, zone)

	m.Logger.Info().
		Str("instance", instance).
		Str("project", project).
		Str("zone", zone).
		Msg("starting VM")
	if res := client.Start(instance); res.Failed() {
		return errors.Errorf("failed to start instance %s: %s", instance, res.ErrorText())
	}

	m.Logger.Info().Str("instance", instance).Msg("retrieving public IP")
	ip, res := client.PublicIP(instance)
	if res.Failed() {
		return errors.Errorf("failed to retrieve the public IP of %s: %s", instance, res.ErrorText())
	}
	if ip == "" {
		return errors.Errorf("instance %s has no external IP", instance)
	}
	m.Logger.Info().Str("instance", instance).Str("ip", ip).Msg("public IP obtained")

	doc, err := sshconf.Load(m.SSHConfigPath())
	if err != nil {
		return err
	}
	if err := doc.AddHost(instance, m.Settings.User()); err != nil {
		if !errors.Is(err, sshconf.ErrHostExists) {
			return err
		}
		m.Logger.Debug().Str("host", instance).Msg("host block already present")
	}
	if err := doc.UpdateHostname(instance, ip); err != nil {
		return err
	}
	if err := doc.Save(); err != nil {
		return err
	}

	m.Logger.Info().Str("host", instance).Str("ip", ip).Msg("ssh config updated")
	return nil
}

// StopVM stops the instance. The ssh config is left alone; the stale
// HostName is rewritten on the next start.
func (m *Manager) StopVM(instance string) error {
	project, zone, err := m.Settings.ProjectZone()
	if err != nil {
		return err
	}
	client := m.newCloudClient(project, zone)

	m.Logger.Info().
		Str("instance", instance).
		Str("project", project).
		Str("zone", zone).
		Msg("stopping VM")
	if res := client.Stop(instance); res.Failed() {
		return errors.Errorf("failed to stop instance %s: %s", instance, res.ErrorText())
	}
	m.Logger.Info().Str("instance", instance).Msg("VM stopped")
	return nil
}
