package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/jclass"
	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/config"
	"github.com/wippyai/jclass/dump"
	"github.com/wippyai/jclass/errors"
	"github.com/wippyai/jclass/export"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to classdump.toml (default: search upwards)")
		lenient     = flag.Bool("lenient", false, "Keep attributes whose length does not match their content")
		verbose     = flag.Bool("v", false, "Log decoder diagnostics to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		cborOut     = flag.String("cbor", "", "Write canonical CBOR summaries to this file")
		noPool      = flag.Bool("no-pool", false, "Omit constant pool entries")
		noCode      = flag.Bool("no-code", false, "Print Code attributes as hex instead of a listing")
		color       = flag.String("color", "", "Color mode: auto, always or never")
		indent      = flag.Int("indent", -1, "Spaces per nesting level")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: classdump [flags] <file.class>...")
		fmt.Fprintln(os.Stderr, "       classdump -i <file.class>  (interactive mode)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync() //nolint:errcheck
		classfile.SetLogger(logger)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["lenient"] {
		cfg.Decode.Lenient = *lenient
	}
	if set["no-pool"] {
		cfg.Dump.Pool = !*noPool
	}
	if set["no-code"] {
		cfg.Dump.Code = !*noCode
	}
	if set["color"] {
		cfg.Dump.Color = config.ColorMode(*color)
	}
	if set["indent"] {
		cfg.Dump.Indent = *indent
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Error: interactive mode takes exactly one file")
			os.Exit(1)
		}
		if err := runInteractive(flag.Arg(0), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(flag.Args(), cfg, *cborOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	return config.Find(wd)
}

func readAll(files []string) ([][]byte, error) {
	images := make([][]byte, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, errors.Load("read "+f, err)
		}
		images[i] = data
	}
	return images, nil
}

func run(files []string, cfg *config.Config, cborOut string) error {
	images, err := readAll(files)
	if err != nil {
		return err
	}
	classes, err := jclass.DecodeAll(context.Background(), images, cfg.DecodeOptions()...)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	opts := cfg.DumpOptions(term.IsTerminal(int(os.Stdout.Fd())))
	for i, cf := range classes {
		if len(classes) > 1 {
			fmt.Printf("== %s ==\n", files[i])
		}
		if err := dump.NewPrinter(cf, opts).Fprint(os.Stdout); err != nil {
			return fmt.Errorf("%s: %w", files[i], err)
		}
	}

	if cborOut == "" {
		return nil
	}
	summaries := make([]*export.Summary, len(classes))
	for i, cf := range classes {
		s, err := export.Summarize(cf)
		if err != nil {
			return fmt.Errorf("%s: summarize: %w", files[i], err)
		}
		summaries[i] = s
	}
	data, err := export.MarshalAll(summaries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cborOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cborOut, err)
	}
	return nil
}
