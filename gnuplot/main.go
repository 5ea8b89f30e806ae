// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gnuplot runs gnuplot scripts and writes their plots as SVG
// documents.
//
// Each script argument is executed in its own session; output files
// default to the script's base name with a .svg extension ("-" reads
// the script from stdin). The GNUPLOT_LIB environment variable (also
// honoured from a .env file) extends the data-file search path.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/joho/godotenv"

	"github.com/aclements/go-gnuplot/plot"
)

func main() {
	log.SetPrefix("gnuplot: ")
	log.SetFlags(0)

	var (
		flagOut     = flag.String("o", "", "write output files to `dir` (default: current directory)")
		flagExpr    = flag.String("e", "", "execute `commands` before any script")
		flagVerbose = flag.Bool("v", false, "log execution warnings")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [scripts...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Optional .env provides GNUPLOT_LIB in development setups.
	_ = godotenv.Load()

	logger := golog.NewDevelopmentLogger("gnuplot")
	if !*flagVerbose {
		logger = golog.NewLogger("gnuplot")
	}

	paths := flag.Args()
	if len(paths) == 0 && *flagExpr == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	for _, path := range paths {
		opts := []plot.Option{plot.WithLogger(logger)}
		if lib := os.Getenv("GNUPLOT_LIB"); lib != "" {
			opts = append(opts, plot.WithSearchDirs(filepath.SplitList(lib)...))
		}
		ex := plot.New(opts...)

		if *flagExpr != "" {
			if err := ex.ExecuteString(*flagExpr); err != nil {
				log.Fatal(err)
			}
		}

		var written []string
		var err error
		if path == "-" {
			var src []byte
			src, err = io.ReadAll(os.Stdin)
			if err != nil {
				log.Fatal(err)
			}
			if err = ex.ExecuteString(string(src)); err == nil {
				written, err = ex.WriteSVG(*flagOut)
			}
		} else {
			written, err = ex.RunFile(path, *flagOut)
		}
		if err != nil {
			log.Fatal(err)
		}
		for _, w := range written {
			fmt.Println(w)
		}
	}
}
