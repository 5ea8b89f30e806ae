// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aclements/go-gnuplot/scene"
)

// resolveDataFile searches the candidate directories for a data file
// reference. Absolute paths and paths that resolve from the current
// directory are used as-is.
func (ex *Executor) resolveDataFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	for _, dir := range ex.searchDirs {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", errors.Errorf("cannot find data file %q (searched %s)",
		name, strings.Join(ex.searchDirs, ", "))
}

// readDataFile2D reads whitespace-separated numeric columns, taking
// the first two fields of each line as (x, y). Comment and blank
// lines are skipped; malformed lines are warned about and dropped.
func (ex *Executor) readDataFile2D(name string) ([]scene.Point, error) {
	var pts []scene.Point
	err := ex.readDataFile(name, 2, func(fields []float64) {
		pts = append(pts, scene.Point{X: fields[0], Y: fields[1]})
	})
	return pts, err
}

// readDataFile3D is readDataFile2D for three columns.
func (ex *Executor) readDataFile3D(name string) ([]scene.Point3, error) {
	var pts []scene.Point3
	err := ex.readDataFile(name, 3, func(fields []float64) {
		pts = append(pts, scene.Point3{X: fields[0], Y: fields[1], Z: fields[2]})
	})
	return pts, err
}

func (ex *Executor) readDataFile(name string, ncols int, emit func([]float64)) error {
	path, err := ex.resolveDataFile(name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "cannot read data file %q", path)
	}
	defer f.Close()

	vals := make([]float64, ncols)
	sc := bufio.NewScanner(f)
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < ncols {
			ex.logger.Warnf("%s:%d: expected %d columns, got %d; skipping line",
				path, lineno, ncols, len(fields))
			continue
		}
		ok := true
		for i := 0; i < ncols; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				ex.logger.Warnf("%s:%d: malformed field %q; skipping line",
					path, lineno, fields[i])
				ok = false
				break
			}
			vals[i] = v
		}
		if ok {
			emit(vals)
		}
	}
	return errors.Wrapf(sc.Err(), "reading %q", path)
}
