package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/foliodesk/internal/config"
)

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  foliodesk config init [--force]")
		fmt.Fprintln(os.Stderr, "  foliodesk config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  foliodesk config print [--path PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  foliodesk config explain [--path PATH] <yaml.path>")
		return 2
	}

	switch args[0] {
	case "init":
		flags := flag.NewFlagSet("init", flag.ContinueOnError)
		flags.SetOutput(os.Stderr)
		force := flags.Bool("force", false, "Overwrite an existing config file")
		if err := flags.Parse(args[1:]); err != nil {
			return 2
		}

		path, err := config.DefaultConfigPath()
		if err != nil {
			return fail(err)
		}
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", path)
			return 1
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fail(err)
		}
		if err := config.DefaultConfig().Save(); err != nil {
			return fail(err)
		}
		fmt.Printf("wrote %s\n", path)
		return 0

	case "validate":
		flags := flag.NewFlagSet("validate", flag.ContinueOnError)
		flags.SetOutput(os.Stderr)
		path := flags.String("path", "", "Config file path (default: ~/.config/foliodesk/config.yaml)")
		if err := flags.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadWithSources(*path); err != nil {
			return fail(err)
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		flags := flag.NewFlagSet("print", flag.ContinueOnError)
		flags.SetOutput(os.Stderr)
		path := flags.String("path", "", "Config file path (default: ~/.config/foliodesk/config.yaml)")
		printDefaults := flags.Bool("defaults", false, "Print built-in defaults (no files)")
		flags.Bool("effective", false, "Print effective config (default)")
		if err := flags.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadWithSources(*path)
			if err != nil {
				return fail(err)
			}
			cfg = res.Config
		}
		data, err := cfg.Marshal()
		if err != nil {
			return fail(err)
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		flags := flag.NewFlagSet("explain", flag.ContinueOnError)
		flags.SetOutput(os.Stderr)
		path := flags.String("path", "", "Config file path (default: ~/.config/foliodesk/config.yaml)")
		if err := flags.Parse(args[1:]); err != nil {
			return 2
		}
		if flags.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := flags.Arg(0)

		res, err := loadWithSources(*path)
		if err != nil {
			return fail(err)
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			return fail(err)
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return fail(err)
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func loadWithSources(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceBuiltin:
		if src.Name != "" {
			return "builtin:" + src.Name
		}
		return "builtin"
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
