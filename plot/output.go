// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/aclements/go-gnuplot/svg"
)

// resolvedOutput is the output name in effect for scene index: the
// `set output` value captured when the scene was assembled, or the
// script's base name with a .svg extension.
func (ex *Executor) resolvedOutput(index int) string {
	if name := ex.outputs[index]; name != "" {
		return name
	}
	base := filepath.Base(ex.scriptName)
	if base == "." || base == "" || base == string(filepath.Separator) {
		base = "plot"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".svg"
}

// outputName numbers repeated output names: the first scene using a
// name keeps it, later ones insert _002, _003, ... before the
// extension.
func (ex *Executor) outputName(index int) string {
	name := ex.resolvedOutput(index)
	seq := 1
	for j := 0; j < index; j++ {
		if ex.resolvedOutput(j) == name {
			seq++
		}
	}
	if seq == 1 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%03d%s", strings.TrimSuffix(name, ext), seq, ext)
}

// WriteSVG renders every accumulated scene into dir and returns the
// file paths written.
func (ex *Executor) WriteSVG(dir string) ([]string, error) {
	r := &svg.Renderer{}
	var paths []string
	for i, sc := range ex.scenes {
		path := filepath.Join(dir, ex.outputName(i))
		f, err := os.Create(path)
		if err != nil {
			return paths, errors.Wrapf(err, "cannot write output %q", path)
		}
		rerr := r.Render(sc, f)
		cerr := f.Close()
		if rerr != nil {
			return paths, errors.Wrapf(rerr, "rendering %q", path)
		}
		if cerr != nil {
			return paths, errors.Wrapf(cerr, "writing %q", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// RunFile executes the script at path and writes the resulting scenes
// into the current directory (or into outDir when non-empty).
func (ex *Executor) RunFile(path, outDir string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read script %q", path)
	}
	if ex.scriptName == "" {
		ex.scriptName = path
	}
	if err := ex.ExecuteString(string(src)); err != nil {
		return nil, err
	}
	return ex.WriteSVG(outDir)
}
