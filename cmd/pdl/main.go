package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	pdl "github.com/peopledatalabs/peopledatalabs-go"
)

type CLI struct {
	Config string `help:"Config file (YAML, JSON, TOML or .env)." short:"c" type:"path"`

	Version    VersionCmd    `cmd:"" help:"Print version information."`
	Call       CallCmd       `cmd:"" help:"Call an endpoint and print the raw response body."`
	Operations OperationsCmd `cmd:"" help:"List sections, operations, methods and paths."`
	Schema     SchemaCmd     `cmd:"" help:"Print the JSON Schema of an endpoint's parameters."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

type CallCmd struct {
	Section   string   `arg:"" help:"Section: person, company, location, school or none."`
	Operation string   `arg:"" help:"Operation name, e.g. enrichment."`
	Params    []string `arg:"" optional:"" help:"Parameters as key=value (repeat a key for a list) or key:=<json>."`
	ID        string   `help:"Record identifier for retrieve."`
	DryRun    bool     `help:"Print the assembled request instead of sending it." name:"dry-run"`
	Sandbox   bool     `help:"Use the sandbox environment."`

	out    io.Writer `kong:"-"`
	status io.Writer `kong:"-"`
}

func (c *CallCmd) Run(cli *CLI) error {
	cfg, err := pdl.LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	if c.Sandbox {
		cfg.Sandbox = true
	}
	client, err := pdl.New(cfg)
	if err != nil {
		return err
	}
	return c.run(context.Background(), client)
}

func (c *CallCmd) run(ctx context.Context, client *pdl.Client) error {
	out, status := c.out, c.status
	if out == nil {
		out = os.Stdout
	}
	if status == nil {
		status = os.Stderr
	}

	section, err := parseSection(c.Section)
	if err != nil {
		return err
	}
	params, err := parseParams(c.Params)
	if err != nil {
		return err
	}
	op := pdl.Operation(c.Operation)

	req, err := client.Prepare(section, op, c.ID, params)
	if err != nil {
		return err
	}
	if c.DryRun {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(req.Redacted())
	}

	var resp *http.Response
	if op == pdl.OpRetrieve && section == pdl.SectionPerson {
		resp, err = client.Person().Retrieve(ctx, c.ID, params)
	} else {
		resp, err = client.Call(ctx, section, op, params)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	fmt.Fprintln(status, resp.Status)
	_, err = io.Copy(out, resp.Body)
	return err
}

type OperationsCmd struct {
	Format string `help:"Output format." enum:"text,yaml" default:"text" short:"f"`

	out io.Writer `kong:"-"`
}

type route struct {
	Section    string `yaml:"section"`
	Operation  string `yaml:"operation"`
	Method     string `yaml:"method"`
	Path       string `yaml:"path"`
	Credential string `yaml:"credential"`
	Schema     string `yaml:"schema"`
}

func (c *OperationsCmd) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	var routes []route
	for _, ep := range pdl.Endpoints() {
		routes = append(routes, route{
			Section:    ep.Section.String(),
			Operation:  string(ep.Operation),
			Method:     ep.Method,
			Path:       "/" + strings.Join(ep.Path, "/"),
			Credential: ep.Credential.String(),
			Schema:     ep.SchemaID,
		})
	}

	if c.Format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(routes); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, r := range routes {
		fmt.Fprintf(out, "%-9s %-13s %-5s %s\n", r.Section, r.Operation, r.Method, r.Path)
	}
	return nil
}

type SchemaCmd struct {
	Section   string `arg:"" help:"Section: person, company, location, school or none."`
	Operation string `arg:"" help:"Operation name."`

	out io.Writer `kong:"-"`
}

func (c *SchemaCmd) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	section, err := parseSection(c.Section)
	if err != nil {
		return err
	}
	ep, err := pdl.Resolve(section, pdl.Operation(c.Operation))
	if err != nil {
		return err
	}
	schema, _ := pdl.LookupSchema(ep.SchemaID)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(schema.JSONSchema())
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("pdl"),
		kong.Description("Command line client for the People Data Labs API."),
		kong.UsageOnError(),
	)
	err := ctx.Run(cli)
	ctx.FatalIfErrorf(err)
}
