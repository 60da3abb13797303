// gcloud.go
// Copyright (C) Andrew Woodlee 2023
// License: Apache-2.0

// Package gcloud shells out to the Google Cloud CLI to start, stop and
// describe compute instances. Each call is a single blocking invocation
// with no retry and no timeout; failure is carried by the exit code and
// the captured stderr, never by scraping stdout.
package gcloud

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"mvdan.cc/sh/v3/shell"
)

// DefaultCommand is the compute CLI invoked when no override is set.
const DefaultCommand = "gcloud"

// natIPFormat selects the external IP of the first network interface.
const natIPFormat = "--format=get(networkInterfaces[0].accessConfigs[0].natIP)"

// Result holds the outcome of one compute CLI invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether the invocation exited non-zero.
func (r Result) Failed() bool {
	return r.ExitCode != 0
}

// Output returns stdout with surrounding whitespace trimmed.
func (r Result) Output() string {
	return strings.TrimSpace(r.Stdout)
}

// ErrorText returns stderr with surrounding whitespace trimmed.
func (r Result) ErrorText() string {
	return strings.TrimSpace(r.Stderr)
}

// Runner executes the compute CLI. Swapped out in tests.
type Runner interface {
	Run(name string, args ...string) Result
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) Result {
	cmd := exec.Command(name, args...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	res := Result{Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}
	if err != nil {
		res.ExitCode = 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else if res.Stderr == "" {
			// The binary could not be run at all.
			res.Stderr = err.Error()
		}
	}
	return res
}

// Client drives the compute CLI for one project and zone pair.
type Client struct {
	project string
	zone    string
	argv    []string
	runner  Runner
}

type ClientOption func(*Client)

// WithCommand overrides the compute CLI invocation. The command string
// is split into fields the way a shell would, so overrides such as
// "gcloud --quiet" work.
func WithCommand(command string) ClientOption {
	return func(c *Client) {
		fields, err := shell.Fields(command, os.Getenv)
		if err != nil || len(fields) == 0 {
			return
		}
		c.argv = fields
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(r Runner) ClientOption {
	return func(c *Client) {
		c.runner = r
	}
}

func NewClient(project, zone string, opts ...ClientOption) *Client {
	c := &Client{
		project: project,
		zone:    zone,
		argv:    []string{DefaultCommand},
		runner:  execRunner{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// instanceArgs returns the command and arguments for one instance
// operation.
func (c *Client) instanceArgs(op, instance string, extra ...string) (string, []string) {
	args := append([]string{}, c.argv[1:]...)
	args = append(args, "compute", "instances", op, instance,
		"--project", c.project, "--zone", c.zone)
	args = append(args, extra...)
	return c.argv[0], args
}

// Start starts the named instance.
func (c *Client) Start(instance string) Result {
	name, args := c.instanceArgs("start", instance)
	return c.runner.Run(name, args...)
}

// Stop stops the named instance.
func (c *Client) Stop(instance string) Result {
	name, args := c.instanceArgs("stop", instance)
	return c.runner.Run(name, args...)
}

// PublicIP returns the instance's external IP via describe. The IP is
// empty when the instance has no external address.
func (c *Client) PublicIP(instance string) (string, Result) {
	name, args := c.instanceArgs("describe", instance, natIPFormat)
	res := c.runner.Run(name, args...)
	return res.Output(), res
}
