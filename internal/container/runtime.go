// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container starts and stops local search engine containers through
// docker or podman.
package container

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdiddy/omnimind/pkg/types"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Spec describes a detached engine container.
type Spec struct {
	// Engine is the search backend the container serves.
	Engine types.EngineID

	// Name is the container name; it doubles as the handle for Stop.
	Name  string
	Image string

	// Ports are host:container mappings.
	Ports []string

	// Volumes are name:path mappings that keep engine state across restarts.
	Volumes []string

	// URL is the base URL the engine answers on once started.
	URL string
}

// YaCy runs a local peer of the distributed index on port 8090.
var YaCy = Spec{
	Engine:  types.EngineYaCy,
	Name:    "omnimind-yacy",
	Image:   "docker.io/yacy/yacy_search_server:latest",
	Ports:   []string{"8090:8090", "8443:8443"},
	Volumes: []string{"omnimind-yacy-data:/opt/yacy_search_server/DATA"},
	URL:     "http://localhost:8090",
}

// Specs lists the engines that can run locally.
var Specs = []Spec{YaCy}

// Lookup returns the spec for engine.
func Lookup(engine types.EngineID) (Spec, bool) {
	for _, s := range Specs {
		if s.Engine == engine {
			return s, true
		}
	}
	return Spec{}, false
}

// Runtime provides container operations.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Start runs s detached. Starting a running container is a no-op.
	Start(s Spec) error

	// Stop stops and removes the named container. Stopping a container
	// that is not running is a no-op.
	Stop(name string) error

	// Running reports whether the named container is up.
	Running(name string) (bool, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// runtime implements Runtime for one container binary. Docker and Podman
// differ only in binary name and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Start(s Spec) error {
	up, err := r.Running(s.Name)
	if err != nil {
		return err
	}
	if up {
		return nil
	}
	// A stopped container with the same name blocks run --name.
	_ = r.exec.RunSilent(r.bin, "rm", "-f", s.Name)

	if err := r.exec.RunSilent(r.bin, runArgs(s)...); err != nil {
		return fmt.Errorf("starting %s container %s: %w", r.bin, s.Name, err)
	}
	return nil
}

func runArgs(s Spec) []string {
	args := []string{"run", "-d", "--name", s.Name}
	for _, p := range s.Ports {
		args = append(args, "-p", p)
	}
	for _, v := range s.Volumes {
		args = append(args, "-v", v)
	}
	return append(args, s.Image)
}

func (r *runtime) Stop(name string) error {
	up, err := r.Running(name)
	if err != nil {
		return err
	}
	if !up {
		return nil
	}
	if err := r.exec.RunSilent(r.bin, "rm", "-f", name); err != nil {
		return fmt.Errorf("stopping %s container %s: %w", r.bin, name, err)
	}
	return nil
}

func (r *runtime) Running(name string) (bool, error) {
	out, err := r.exec.Output(r.bin, "ps", "--filter", "name=^"+name+"$", "--format", "{{.Names}}")
	if err != nil {
		return false, fmt.Errorf("listing %s containers: %w", r.bin, err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
