package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"
	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/esparse/kite-go/lang/javascript/estree"
	"github.com/kiteco/esparse/kite-go/lang/javascript/parser"
	perrors "github.com/kiteco/esparse/kite-go/lang/javascript/parser/errors"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// exitFailure is the exit status when the source cannot be parsed: the low
// byte of 0xbad, which is all a POSIX parent process sees of it.
const exitFailure = 0xbad & 0xff

// statsRuns is the number of parses timed by --stats, the first one is cold.
const statsRuns = 4

type args struct {
	File           string `arg:"positional" help:"javascript file to parse, - or nothing for stdin"`
	Comment        bool   `help:"collect comments"`
	Tokens         bool   `help:"collect tokens"`
	Tolerant       bool   `help:"record recoverable errors instead of failing"`
	Loc            bool   `help:"include line/column locations"`
	Range          bool   `help:"include byte ranges"`
	Stats          bool   `help:"parse repeatedly and print timings to stderr"`
	GC             bool   `arg:"--gc" help:"with --stats, also print heap allocations"`
	InputEncoding  string `arg:"--input-encoding" help:"encoding of the source file, e.g windows-1252, or auto to detect it"`
	OutputEncoding string `arg:"--output-encoding" help:"encoding of the json output"`
	Indent         string `help:"indentation of the json output, compact when empty"`
	Trace          bool   `help:"print a trace of the productions to stderr"`
	Profile        string `help:"filename to write cpu profile"`
	Verbose        bool   `arg:"-v" help:"log diagnostics to stderr"`
}

func (args) Description() string {
	return "esparse parses javascript and writes its syntax tree as json to stdout"
}

func main() {
	a := args{Indent: "    "}
	arg.MustParse(&a)

	logger := newLogger(os.Stderr, a.Verbose)
	defer logger.Sync()

	if a.Profile != "" {
		if !strings.HasSuffix(a.Profile, ".prof") {
			a.Profile = a.Profile + ".prof"
		}
		f, err := os.Create(a.Profile)
		if err != nil {
			logger.Fatal("cannot create profile", zap.Error(err))
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Error("cannot start cpu profile", zap.String("file", a.Profile), zap.Error(err))
		} else {
			defer pprof.StopCPUProfile()
		}
	}

	if err := run(a, os.Stdin, os.Stdout, os.Stderr, logger); err != nil {
		fmt.Fprintln(os.Stderr, errors.Cause(err).Error())
		logger.Error("esparse failed",
			zap.String("file", a.File),
			zap.Stringer("reason", perrors.ErrorReason(err)),
			zap.Error(err))
		pprof.StopCPUProfile()
		logger.Sync()
		os.Exit(exitFailure)
	}
}

func run(a args, stdin io.Reader, stdout, stderr io.Writer, logger *zap.Logger) error {
	src, err := readSource(a.File, a.InputEncoding, stdin)
	if err != nil {
		return err
	}

	opts := parser.DefaultOptions
	opts.Comment = a.Comment
	opts.Tokens = a.Tokens
	opts.Tolerant = a.Tolerant
	opts.Loc = a.Loc
	opts.NoCache = true
	if a.File != "" && a.File != "-" {
		opts.Source = a.File
	}
	if a.Trace {
		opts.Trace = true
		opts.TraceWriter = stderr
	}

	runs := 1
	if a.Stats {
		runs = statsRuns
	}

	var prog *ast.ProgramNode
	durations := make([]time.Duration, runs)
	var heap []uint64
	for i := 0; i < runs; i++ {
		var before runtime.MemStats
		if a.Stats && a.GC {
			runtime.GC()
			runtime.ReadMemStats(&before)
		}

		begin := time.Now()
		prog, err = parser.Parse(src, opts)
		durations[i] = time.Since(begin)
		if err != nil {
			return err
		}

		if a.Stats && a.GC {
			var after runtime.MemStats
			runtime.ReadMemStats(&after)
			heap = append(heap, after.TotalAlloc-before.TotalAlloc)
		}
	}

	logger.Debug("parsed",
		zap.String("file", a.File),
		zap.Int("bytes", len(src)),
		zap.Int("nodes", ast.CountNodes(prog)),
		zap.Int("errors", len(prog.Errors)),
		zap.Duration("duration", durations[len(durations)-1]))

	out, closeOut, err := openOutput(stdout, a.OutputEncoding)
	if err != nil {
		return err
	}
	if err := estree.Encode(out, prog, estree.Options{Range: a.Range, Indent: a.Indent}); err != nil {
		return err
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return errors.Wrap(err, "error writing output")
	}
	if err := closeOut(); err != nil {
		return errors.Wrap(err, "error writing output")
	}

	if a.Stats {
		printStats(stderr, durations, heap)
	}
	return nil
}

func readSource(file, encoding string, stdin io.Reader) ([]byte, error) {
	r := stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot open %s", file)
		}
		defer f.Close()
		r = f
	}

	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading source")
	}
	return decodeSource(src, encoding)
}

// printStats writes the mean parse time, leaving out the cold first run,
// followed by every run. With heap sizes, the mean allocation follows.
func printStats(w io.Writer, durations []time.Duration, heap []uint64) {
	var warm []float64
	for i, d := range durations {
		if i > 0 || len(durations) == 1 {
			warm = append(warm, float64(d))
		}
	}
	mean, _ := stats.Mean(warm)
	median, _ := stats.Median(warm)
	stddev, _ := stats.StdDevS(warm)

	each := make([]string, len(durations))
	for i, d := range durations {
		each[i] = d.String()
	}
	fmt.Fprintf(w, "Time: %v; [%s]\n", time.Duration(mean), strings.Join(each, ", "))
	fmt.Fprintf(w, "  Median: %v, StdDev: %v\n", time.Duration(median), time.Duration(stddev))

	if len(heap) == 0 {
		return
	}
	var sizes []float64
	each = each[:0]
	for _, h := range heap {
		sizes = append(sizes, float64(h))
		each = append(each, fmt.Sprintf("%d", h))
	}
	avg, _ := stats.Mean(sizes)
	fmt.Fprintf(w, "Heap: %s; [%s]\n", humanize.Bytes(uint64(avg)), strings.Join(each, ", "))
}
