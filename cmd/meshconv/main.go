package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gl-animation/libscn"

	"golang.org/x/exp/slices"
)

type args struct {
	lz4   bool
	out   string
	quiet bool
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [arguments] <files...>\n\n", exe)
	fmt.Fprintf(os.Stderr, "Converts .obj meshes to the packed .geo format.\n\n")
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	flag.PrintDefaults()
}

func main() {
	a := args{lz4: true}
	flag.BoolVar(&a.lz4, "lz4", a.lz4, "compress vertex and index data")
	flag.StringVar(&a.out, "out", a.out, "the output directory, defaults to the input file's directory")
	flag.StringVar(&a.out, "o", a.out, "shorthand for out")
	flag.BoolVar(&a.quiet, "quiet", a.quiet, "disables informational logging")
	flag.BoolVar(&a.quiet, "q", a.quiet, "shorthand for quiet")
	flag.Usage = usage
	flag.Parse()

	files := gatherInputFiles(flag.Args())
	if len(files) == 0 {
		usage()
		os.Exit(1)
	}

	if a.out != "" {
		_, err := os.Stat(a.out)
		if err != nil {
			harderr(fmt.Errorf("cannot stat output directory: %w", err))
		}
	}

	compression := libscn.GeoCompressionNone
	if a.lz4 {
		compression = libscn.GeoCompressionLz4
	}

	failed := 0
	for _, file := range files {
		out, err := convert(file, a.out, compression)
		if err != nil {
			log.Printf("Conversion of %v failed: %v\n", file, err)
			failed++
			continue
		}
		if !a.quiet {
			log.Printf("Converted %v to %v\n", file, out)
		}
	}
	if failed > 0 {
		harderr(fmt.Errorf("%d of %d files failed", failed, len(files)))
	}
}

func gatherInputFiles(globs []string) []string {
	var files []string
	for _, glob := range globs {
		matches, err := filepath.Glob(glob)
		harderr(err)
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files)
}

func convert(file, outDir string, compression libscn.GeoCompression) (string, error) {
	mesh, err := libscn.LoadMesh(file)
	if err != nil {
		return "", err
	}
	if err := mesh.Validate(); err != nil {
		return "", err
	}

	if outDir == "" {
		outDir = filepath.Dir(file)
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	out := filepath.Join(outDir, base+".geo")
	if out == file {
		return "", fmt.Errorf("output would overwrite the input")
	}

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	err = libscn.EncodeMesh(f, mesh, compression)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return out, err
}
