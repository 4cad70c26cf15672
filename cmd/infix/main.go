// Infix CLI - compiles infix arithmetic expressions to stack programs and runs them
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/infix/compiler"
	"github.com/chazu/infix/manifest"
	"github.com/chazu/infix/store"
	"github.com/chazu/infix/vm"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("infix")

func main() {
	expr := flag.String("e", "", "Evaluate a single expression and exit")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	disasm := flag.Bool("d", false, "Print the compiled program instead of executing it")
	trace := flag.Bool("trace", false, "Trace each executed instruction")
	cachePath := flag.String("cache", "", "Program cache path (overrides infix.toml)")
	noManifest := flag.Bool("no-manifest", false, "Skip loading infix.toml")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: infix [options] [expression]\n\n")
		fmt.Fprintf(os.Stderr, "Compiles infix arithmetic to a postfix stack program and runs it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  infix -e '2*(3+4)'       # Evaluate and print 14\n")
		fmt.Fprintf(os.Stderr, "  infix -d -e '2*(3+4)'    # Show the compiled program\n")
		fmt.Fprintf(os.Stderr, "  infix -i                 # Start REPL\n")
		fmt.Fprintf(os.Stderr, "  infix '1 + 2 * 3'        # Bare arguments work too\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	// Host configuration: infix.toml in the working directory, if present.
	cfg := manifest.Default()
	if !*noManifest {
		cwd, err := os.Getwd()
		if err == nil {
			if m, err := manifest.Load(cwd); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			} else {
				cfg = m
			}
		}
	}
	if *cachePath != "" {
		cfg.Cache.Path = *cachePath
	}
	if *trace {
		cfg.Trace = true
	}

	var cache *store.ProgramStore
	if cfg.Cache.Path != "" {
		var err error
		cache, err = store.Open(cfg.Cache.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening program cache: %v\n", err)
			os.Exit(1)
		}
		defer cache.Close()
		log.Infof("program cache: %s", cfg.Cache.Path)
	}

	ev := &evaluator{cache: cache, trace: cfg.Trace, disasm: *disasm}

	source := *expr
	if source == "" && flag.NArg() > 0 {
		source = strings.Join(flag.Args(), " ")
	}

	switch {
	case source != "":
		out, err := ev.eval(source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		if *interactive {
			repl(ev, cfg.REPL.Prompt)
		}

	case *interactive:
		repl(ev, cfg.REPL.Prompt)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

// evaluator compiles (with optional caching) and runs one expression at a
// time. Each run gets a fresh machine so a failed program can't poison the
// next evaluation.
type evaluator struct {
	cache  *store.ProgramStore
	trace  bool
	disasm bool
}

func (ev *evaluator) compile(source string) (vm.Program, error) {
	if ev.cache != nil {
		prog, hit, err := ev.cache.Get(source)
		if err != nil {
			log.Errorf("cache read: %v", err)
		} else if hit {
			log.Infof("cache hit: %s", store.SourceHash(source)[:12])
			return prog, nil
		}
	}

	prog, err := compiler.Compile(source)
	if err != nil {
		return nil, err
	}

	if ev.cache != nil {
		if err := ev.cache.Put(source, prog); err != nil {
			log.Errorf("cache write: %v", err)
		}
	}
	return prog, nil
}

func (ev *evaluator) eval(source string) (string, error) {
	prog, err := ev.compile(source)
	if err != nil {
		return "", err
	}

	if ev.disasm {
		return vm.Disassemble(prog), nil
	}

	machine := vm.NewMachine()
	machine.Trace = ev.trace
	result, err := machine.Run(prog)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

// repl reads expressions line by line until EOF or :quit.
func repl(ev *evaluator, prompt string) {
	if prompt == "" {
		prompt = ">> "
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return
		}

		out, err := ev.eval(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(out)
	}
}
