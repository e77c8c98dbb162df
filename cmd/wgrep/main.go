// Command wgrep is a line-oriented search-and-filter utility built on top
// of the wrx regex engine: one pattern argument, zero or more input files
// (stdin if none given), -v to invert the match, -s to print only the
// matched submatches, -o to redirect output to a file.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/coregx/wrx"
	"github.com/coregx/wrx/nfa"
	"github.com/coregx/wrx/wrxerr"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wgrep: ")

	var (
		outPath    string
		invert     bool
		submatches bool
		dump       bool
		dot        bool
	)

	pflag.StringVarP(&outPath, "output", "o", "", "write output to file instead of stdout")
	pflag.BoolVarP(&invert, "invert", "v", false, "invert match: print lines that do NOT match")
	pflag.BoolVarP(&submatches, "submatches", "s", false, "print only the matched submatches, one line per match")
	pflag.BoolVar(&dump, "dump", false, "print the compiled NFA's states and exit, without reading any input")
	pflag.BoolVar(&dot, "dot", false, "print the compiled NFA in Graphviz dot format and exit, without reading any input")
	pflag.Usage = usage

	pflag.Parse()
	args := pflag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	pattern := args[0]
	files := args[1:]

	re, err := wrx.Compile(pattern)
	if err != nil {
		log.Fatalf("%s\n%s^ %s", pattern, strings.Repeat(" ", errOffset(err)), err)
	}

	if dump || dot {
		dumpNFA(re, dot)
		return
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("unable to open %s for output: %v", outPath, err)
		}
		defer f.Close()
		out = f
	}

	if len(files) == 0 {
		grep(re, os.Stdin, out, invert, submatches)
		return
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("unable to open %s for input: %v", name, err)
		}
		grep(re, f, out, invert, submatches)
		f.Close()
	}
}

// grep reads infile line by line, matches each line against re, and
// writes to outfile according to the invert and submatches flags.
func grep(re *wrx.Regex, infile io.Reader, outfile io.Writer, invert, submatches bool) {
	scanner := bufio.NewScanner(infile)
	for scanner.Scan() {
		line := scanner.Text()

		if submatches {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			for _, g := range m {
				fmt.Fprintf(outfile, "%s ", g)
			}
			fmt.Fprintln(outfile)
			continue
		}

		matched := re.MatchString(line)
		if matched != invert {
			fmt.Fprintln(outfile, line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("error reading input: %v", err)
	}
}

func dumpNFA(re *wrx.Regex, dot bool) {
	n := re.NFA()
	if dot {
		nfa.DOT(os.Stdout, n)
	} else {
		nfa.Dump(os.Stdout, n)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n  wgrep [options] pattern [infile ...]\n")
	fmt.Fprintf(os.Stderr, "where the following options are allowed:\n")
	pflag.PrintDefaults()
}

// errOffset recovers the byte offset a compile error was reported at, so
// main can print a caret under the offending pattern byte.
func errOffset(err error) int {
	if e, ok := err.(*wrxerr.Error); ok {
		return e.Offset
	}
	return 0
}
