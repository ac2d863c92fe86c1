package main

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/jessevdk/go-flags"

	"github.com/spanemu/spannerschema/infoschema"
	internalschema "github.com/spanemu/spannerschema/internal/schema"
	"github.com/spanemu/spannerschema/option"
	"github.com/spanemu/spannerschema/render"
	"github.com/spanemu/spannerschema/schema"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	var opts option.Options
	p := flags.NewParser(&opts, flags.Default)
	args, err := p.Parse()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		p.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	var input io.ReadCloser
	name := opts.Positional.Input
	if name != "" {
		file, err := os.Open(name)
		if err != nil {
			return err
		}
		input = file
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			p.WriteHelp(os.Stderr)
			os.Exit(1)
		}
		name = "stdin"
		input = os.Stdin
	}
	defer func() {
		_ = input.Close()
	}()

	b, err := io.ReadAll(input)
	if err != nil {
		return err
	}

	s, err := schema.Parse(name, string(b))
	if err != nil {
		return err
	}
	catalog := infoschema.New(s, opts.DatabaseDialect())

	var writer io.WriteCloser
	if opts.Filename == "" {
		writer = os.Stdout
	} else if file, err := os.Create(opts.Filename); err != nil {
		return err
	} else {
		writer = file
	}
	defer func() { _ = writer.Close() }()

	err = write(writer, &opts, s, catalog)
	if err != nil && opts.Filename != "" {
		if innerErr := os.Remove(opts.Filename); innerErr != nil {
			return errors.Join(err, innerErr)
		}
	}
	return err
}

func write(w io.Writer, opts *option.Options, s *schema.Schema, catalog *infoschema.Catalog) error {
	switch opts.Format {
	case "json", "yaml":
		is, err := internalschema.Decode(catalog)
		if err != nil {
			return err
		}
		if opts.Format == "json" {
			return render.JSON(w, is)
		}
		return render.YAML(w, is)
	case "table":
		var def *render.Definition
		if opts.CustomFile != "" {
			var err error
			if def, err = render.LoadDefinition(opts.CustomFile); err != nil {
				return err
			}
		}
		return render.Tables(w, catalog, def, opts.Tables)
	case "tree":
		return render.Tree(w, s)
	case "mermaid":
		return render.Mermaid(w, s)
	case "dot", "svg":
		return render.Graph(w, s, graphviz.Format(opts.Format))
	default:
		return errors.New("unknown format " + opts.Format)
	}
}
