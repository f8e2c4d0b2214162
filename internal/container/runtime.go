// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container locates a local container runtime and pipes deck PDFs
// through text conversion images.
package container

import (
	"fmt"
	"io"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// commandRunner abstracts command execution so tests can fake the runtime.
type commandRunner interface {
	look(file string) (string, error)
	silent(name string, args ...string) error
	piped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osRunner struct{}

func (osRunner) look(file string) (string, error) {
	return exec.LookPath(file)
}

func (osRunner) silent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osRunner) piped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	return cmd.Run()
}

// Runtime wraps one container binary. Docker and Podman share the same
// invocation shape; they differ only in the image existence subcommand.
type Runtime struct {
	bin        string
	imageCheck []string
	run        commandRunner
}

// Name returns the runtime binary name ("docker" or "podman").
func (r *Runtime) Name() string { return r.bin }

func (r *Runtime) available() bool {
	if _, err := r.run.look(r.bin); err != nil {
		return false
	}
	return r.run.silent(r.bin, "info") == nil
}

// HasImage reports whether the named conversion image exists locally.
func (r *Runtime) HasImage(image string) error {
	args := append(append([]string{}, r.imageCheck...), image)
	if err := r.run.silent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

// Pipe runs the image with stdin connected to the deck bytes and stdout
// collecting the converted text.
func (r *Runtime) Pipe(image string, stdin io.Reader, stdout io.Writer) error {
	if err := r.run.piped(r.bin, []string{"run", "--rm", "-i", image}, stdin, stdout); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

var defaultRunner commandRunner = osRunner{}

// Detect tries docker first, then podman. Returns an error when neither
// binary is on PATH and operational.
func Detect() (*Runtime, error) {
	return detect(defaultRunner)
}

func detect(run commandRunner) (*Runtime, error) {
	candidates := []*Runtime{
		{bin: binDocker, imageCheck: []string{"image", "inspect"}, run: run},
		{bin: binPodman, imageCheck: []string{"image", "exists"}, run: run},
	}
	for _, rt := range candidates {
		if rt.available() {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: neither %s nor %s found or operational", binDocker, binPodman)
}
