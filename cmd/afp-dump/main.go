/*******************************************************************************
*
* Copyright 2016 Stefan Majewsky <majewsky@gmx.net>
*
* This file is part of Holo.
*
* Holo is free software: you can redistribute it and/or modify it under the
* terms of the GNU General Public License as published by the Free Software
* Foundation, either version 3 of the License, or (at your option) any later
* version.
*
* Holo is distributed in the hope that it will be useful, but WITHOUT ANY
* WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR
* A PARTICULAR PURPOSE. See the GNU General Public License for more details.
*
* You should have received a copy of the GNU General Public License along with
* Holo. If not, see <http://www.gnu.org/licenses/>.
*
*******************************************************************************/

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/holocm/afp-dump/afp"
	"github.com/holocm/afp-dump/filter"
	"github.com/holocm/afp-dump/internal/logging"
	"github.com/holocm/afp-dump/sink"
)

var logger = logging.New(logging.Options{FilePath: os.Getenv("AFP_DUMP_LOG_FILE")})

func main() {
	os.Exit(run())
}

func run() int {
	fileFlag := pflag.StringP("file", "f", "", "input AFP file (additional files may follow as positional arguments)")
	typeFlag := pflag.StringP("type", "t", "afp", `input type (only "afp" is recognized)`)
	configFlag := pflag.StringP("config", "c", "", "path to an SF filter configuration (TOML)")
	outputFormatFlag := pflag.StringP("output-format", "o", "json", `output format (only "json" is recognized)`)
	outputFlag := pflag.StringP("output", "O", "-", `output path, or "-" for stdout`)
	flushEveryFlag := pflag.IntP("flush-every", "n", 0, "flush the sink every N sealed documents (0 = only at close)")
	pflag.Parse()

	if *typeFlag != "afp" {
		showError(fmt.Errorf("unrecognized input type %q (only \"afp\" is supported)", *typeFlag))
		return 2
	}
	if *outputFormatFlag != "json" {
		showError(fmt.Errorf("unrecognized output format %q (only \"json\" is supported)", *outputFormatFlag))
		return 2
	}

	var files []string
	if *fileFlag != "" {
		files = append(files, *fileFlag)
	}
	files = append(files, pflag.Args()...)
	if len(files) == 0 {
		showError(errors.New("no input file specified (use -f/--file or a positional argument)"))
		return 2
	}

	f, err := buildFilter(*configFlag)
	if err != nil {
		showError(err)
		return 2
	}

	if len(files) == 1 {
		if err := processFile(files[0], f, *outputFlag, *flushEveryFlag); err != nil {
			showError(err)
			return 1
		}
		return 0
	}
	return runFanOut(files, f, *flushEveryFlag)
}

func buildFilter(configPath string) (*filter.Filter, error) {
	if configPath == "" {
		return filter.All(), nil
	}
	return filter.Load(configPath)
}

// runFanOut processes more than one input file concurrently, one
// Decoder+Projector+Sink triple per file (see SPEC_FULL.md §5). Since a
// single "-" stdout destination cannot meaningfully receive several
// documents' worth of independent JSON at once, each file's output is
// written next to its input as "<file>.json".
func runFanOut(files []string, f *filter.Filter, flushEvery int) int {
	g := new(errgroup.Group)
	g.SetLimit(4)
	for _, path := range files {
		path := path
		g.Go(func() error {
			return processFile(path, f, path+".json", flushEvery)
		})
	}
	if err := g.Wait(); err != nil {
		showError(err)
		return 1
	}
	return 0
}

func processFile(path string, f *filter.Filter, outPath string, flushEvery int) error {
	logger.Debug("processing file", "path", path, "output", outPath)
	var buf bytes.Buffer
	s := sink.NewJSONSink(&buf, filepath.Base(path), flushEvery)
	if err := s.Open(); err != nil {
		return err
	}

	file, err := afp.Process(path, f, func(ev afp.Event) {
		if ev.Kind != afp.EventDocumentSealed {
			return
		}
		if werr := s.Write(ev.Document); werr != nil {
			showWarning(werr.Error())
		}
	})
	if err != nil {
		return err
	}
	if err := s.Write(file); err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}

	for _, w := range file.Warnings {
		showWarning(fmt.Sprintf("%s: %s", path, w))
		logger.Warn(w, "path", path)
	}

	return writeOutput(buf.Bytes(), outPath)
}
