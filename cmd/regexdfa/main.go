package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"regexdfa/internal/batch"
	"regexdfa/regexlib"
)

var (
	batchFile   = flag.String("f", "", "compile every pattern listed in `file`")
	interactive = flag.Bool("i", false, "prompt for patterns interactively")
	stageFlag   = flag.String("stage", "all", "stages to print: nfa, dfa, min or all")
	formatFlag  = flag.String("format", "table", "output format: table or dot")
	outFile     = flag.String("o", "-", "output `file`, - for stdout")
	strict      = flag.Bool("strict", false, "reject unmatched parentheses")
	showSets    = flag.Bool("sets", false, "label DFA states with the NFA states they stand for")
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: regexdfa [flags] <pattern>")
	fmt.Fprintln(os.Stderr, "       regexdfa [flags] -f <file>")
	fmt.Fprintln(os.Stderr, "       regexdfa [flags] -i")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(flag.CommandLine)
	flag.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	flag.Usage = printUsage
	flag.Parse()

	code := run()
	klog.Flush()
	os.Exit(code)
}

func run() int {
	out, err := newOutput(*stageFlag, *formatFlag, *showSets)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		return 2
	}
	opts := regexlib.ParseOptions{StrictParens: *strict}

	if err := checkModes(flag.NArg(), *batchFile, *interactive, *outFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		return 2
	}

	if *interactive {
		if err := runInteractive(os.Stdout, out, opts); err != nil {
			klog.Errorf("interactive session: %v", err)
			return 1
		}
		return 0
	}

	if *outFile == "-" {
		return compileTo(os.Stdout, out, opts)
	}
	f, err := os.Create(*outFile)
	if err != nil {
		klog.Errorf("cannot create %s: %v", *outFile, err)
		return 1
	}
	code := compileTo(f, out, opts)
	if err := f.Close(); err != nil {
		klog.Errorf("close %s: %v", *outFile, err)
		return 1
	}
	return code
}

// checkModes requires exactly one of a pattern argument, -f or -i. The
// interactive prompt always writes to the terminal, so -o is refused there.
func checkModes(nargs int, batchFile string, interactive bool, outFile string) error {
	modes := 0
	if batchFile != "" {
		modes++
	}
	if interactive {
		modes++
	}
	if nargs > 0 {
		modes++
	}
	switch {
	case nargs > 1:
		return errors.Errorf("expected one pattern, got %d", nargs)
	case modes == 0:
		return errors.New("no pattern given")
	case modes > 1:
		return errors.New("give only one of a pattern, -f or -i")
	case interactive && outFile != "-":
		return errors.New("-o cannot be combined with -i")
	}
	return nil
}

// compileTo runs batch or single-pattern mode, writing to w.
func compileTo(w io.Writer, out *output, opts regexlib.ParseOptions) int {
	if *batchFile != "" {
		return runBatch(w, out, opts, *batchFile)
	}
	res, err := regexlib.CompileWith(flag.Arg(0), opts)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	if err := out.print(w, res); err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	return 0
}

// runBatch compiles every entry independently; one bad entry does not stop
// the rest but makes the exit status non-zero.
func runBatch(w io.Writer, out *output, opts regexlib.ParseOptions, path string) int {
	f, err := batch.Load(path)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}
	failed := 0
	for _, e := range f.Entries {
		fmt.Fprintf(w, "# %s: %s\n", e.Label(), e.Pattern)
		res, err := regexlib.CompileWith(e.Pattern, opts)
		if err != nil {
			klog.Errorf("%s:%s: %v", path, e.Label(), err)
			fmt.Fprintf(w, "error: %v\n\n", err)
			failed++
			continue
		}
		if err := out.print(w, res); err != nil {
			// the output is gone; later entries cannot be written either
			klog.Errorf("%v", err)
			return 1
		}
	}
	klog.V(1).Infof("%s: %d patterns, %d failed", path, len(f.Entries), failed)
	if failed > 0 {
		return 1
	}
	return 0
}
