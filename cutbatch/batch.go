// Copyright 2021 The Hypercut Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cutbatch drives k-core decomposition over an archive of
// hypergraph instances: it extracts each instance from a tar file,
// smallest first, and invokes the external decomposition binary on
// it, tolerating per-instance failures.
package cutbatch

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// A Config describes one batch decomposition run.
type Config struct {
	// Archive is the tar file containing the hypergraph instances.
	Archive string `yaml:"archive"`
	// Binary is the external decomposition binary, invoked as
	// "<binary> <instance path> <out dir>" once per instance.
	Binary string `yaml:"binary"`
	// OutDir receives the decomposition artifacts. It must exist
	// before the batch starts.
	OutDir string `yaml:"out_dir"`
	// WorkDir is the shared extraction directory. Empty means a
	// fresh temporary directory.
	WorkDir string `yaml:"work_dir"`
	// KeepArtifacts retains every extracted instance in WorkDir
	// for the whole batch instead of removing each after its
	// decomposition finishes. Off by default: retaining them
	// grows the directory by the sum of all extracted sizes.
	KeepArtifacts bool `yaml:"keep_artifacts"`
}

// LoadConfig reads a batch configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	if cfg.Archive == "" || cfg.Binary == "" || cfg.OutDir == "" {
		return nil, fmt.Errorf("%s: archive, binary, and out_dir are required", path)
	}
	return cfg, nil
}

// A Runner executes one batch sequentially. Instances are processed
// smallest first by archive entry size; a non-zero exit from the
// external process is reported through Warn and the batch continues
// with the next instance. There is no retry and no rollback.
type Runner struct {
	Config *Config

	// Warn reports non-fatal per-instance failures. Nil silences
	// them.
	Warn func(format string, args ...interface{})

	// execute runs the decomposition once; tests replace it.
	execute func(ctx context.Context, bin, instance, outDir string) error
}

// NewRunner returns a Runner for cfg that invokes the configured
// binary through os/exec.
func NewRunner(cfg *Config) *Runner {
	return &Runner{Config: cfg, execute: runBinary}
}

func runBinary(ctx context.Context, bin, instance, outDir string) error {
	cmd := exec.CommandContext(ctx, bin, instance, outDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *Runner) warnf(format string, args ...interface{}) {
	if r.Warn != nil {
		r.Warn(format, args...)
	}
}

// an entry is one file in the archive, remembered for size ordering.
type entry struct {
	name string
	size int64
}

// Run processes the whole batch. It fails before any work begins if
// the output directory is missing; afterwards only I/O errors on the
// archive itself abort the batch.
func (r *Runner) Run(ctx context.Context) error {
	cfg := r.Config

	fi, err := os.Stat(cfg.OutDir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", cfg.OutDir, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", cfg.OutDir)
	}

	workDir := cfg.WorkDir
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "cutbatch")
		if err != nil {
			return err
		}
		defer os.RemoveAll(workDir)
	}

	entries, err := listEntries(cfg.Archive)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].size < entries[j].size })

	execute := r.execute
	if execute == nil {
		execute = runBinary
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := extract(cfg.Archive, e.name, workDir)
		if err != nil {
			return err
		}
		if err := execute(ctx, cfg.Binary, path, cfg.OutDir); err != nil {
			r.warnf("%s: decomposition failed: %v\n", e.name, err)
		}
		if !cfg.KeepArtifacts {
			if err := os.Remove(path); err != nil {
				r.warnf("%s: removing extracted instance: %v\n", e.name, err)
			}
		}
	}
	return nil
}

// listEntries returns the regular file entries of the archive.
func listEntries(archive string) ([]entry, error) {
	f, err := os.Open(archive)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []entry
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg {
			entries = append(entries, entry{name: hdr.Name, size: hdr.Size})
		}
	}
}

// extract writes the named archive entry into dir and returns the
// extracted path. Entry names must stay inside dir.
func extract(archive, name, dir string) (string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, filepath.Base(name))
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return "", fmt.Errorf("%s: entry %s vanished from archive", archive, name)
		}
		if err != nil {
			return "", err
		}
		if hdr.Name != name {
			continue
		}
		out, err := os.Create(path)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return "", err
		}
		return path, out.Close()
	}
}
