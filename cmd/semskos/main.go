// Package main provides the semskos binary entry point.
// Semskos reads OpenSKOS vocabularies (concepts, schemes, labels, sets,
// institutions and users) from a SPARQL endpoint or a NATS graph bridge.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/semskos/config"
	"github.com/c360studio/semskos/enrichment"
	"github.com/c360studio/semskos/entity"
	"github.com/c360studio/semskos/export"
	"github.com/c360studio/semskos/query"
	"github.com/c360studio/semskos/rdf"
	"github.com/c360studio/semskos/repository"
	"github.com/c360studio/semskos/resource"
	"github.com/c360studio/semskos/vocabulary/openskos"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semskos"
)

var errNotFound = errors.New("not found")

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// cli holds the persistent flags shared by every command.
type cli struct {
	configPath string
	logLevel   string
	format     string
	profile    string
}

func rootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "OpenSKOS vocabulary reader",
		Long: `Semskos reads OpenSKOS vocabularies from an RDF graph store.

Resources are fetched with SPARQL DESCRIBE queries, either directly over
HTTP or through a NATS graph bridge started with "semskos serve", and
printed as Turtle, N-Triples or JSON-LD.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&c.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVarP(&c.format, "format", "f", string(export.FormatTurtle), "Output format (turtle, ntriples, jsonld)")
	flags.StringVar(&c.profile, "profile", string(export.ProfileFull), "Export profile (full, skos)")

	cmd.AddCommand(
		c.describeCmd(),
		c.listCmd(),
		c.uuidCmd(),
		c.labelsCmd(),
		c.mintCmd(),
		c.deleteCmd(),
		c.serveCmd(),
		c.initCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// app loads configuration and returns an application ready for queries.
func (c *cli) app(cmd *cobra.Command, connect bool) (*App, error) {
	logger := c.logger(cmd)

	cfg, err := config.NewLoader(logger).Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	app, err := NewApp(cfg, logger)
	if err != nil {
		return nil, err
	}
	if connect {
		if err := app.Connect(); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// write serializes resources to the command output.
func (c *cli) write(cmd *cobra.Command, resources ...resource.Resource) error {
	format, err := export.ParseFormat(c.format)
	if err != nil {
		return err
	}
	exporter := export.NewRDFExporter(export.Profile(c.profile))
	exporter.AddResource(resources...)
	out, err := exporter.Export(format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func (c *cli) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <iri>",
		Short: "Describe one resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iri, err := rdf.NewIri(args[0])
			if err != nil {
				return err
			}
			app, err := c.app(cmd, true)
			if err != nil {
				return err
			}
			defer app.Shutdown()

			repo, err := app.Resources()
			if err != nil {
				return err
			}
			r, ok, err := repo.FindByIri(cmd.Context(), iri)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", errNotFound, iri)
			}
			return c.write(cmd, r)
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var (
		offset     int
		limit      int
		filters    []string
		uriFilters []string
		fields     []string
	)

	cmd := &cobra.Command{
		Use:   "list <type>",
		Short: "List resources of one type",
		Long: `List resources of one type, one page at a time.

Types: ` + typeNames() + `

Filters take the form predicate=value. --filter compares with a string
literal, --uri-filter with an IRI. All filters are combined with OR.

--field keeps only the named fields, optionally in one language
(prefLabel@en). A field is a name of the listed type or an absolute
predicate IRI. rdf:type is always kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityType(args[0])
			if err != nil {
				return err
			}
			parsed, err := parseFilters(filters, uriFilters)
			if err != nil {
				return err
			}
			projection, err := parseProjection(t, fields)
			if err != nil {
				return err
			}
			app, err := c.app(cmd, true)
			if err != nil {
				return err
			}
			defer app.Shutdown()

			repo, err := app.Resources()
			if err != nil {
				return err
			}
			class := rdf.MustIri(openskos.ClassIRIs[t])
			items, err := repo.AllOfType(cmd.Context(), class, offset, app.cfg.Limit(limit), parsed)
			if err != nil {
				return err
			}
			if projection != nil {
				items, err = project(cmd.Context(), app, items, projection)
				if err != nil {
					return err
				}
			}
			return c.write(cmd, items...)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Number of resources to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (0 uses the configured default)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Literal filter predicate=value (repeatable)")
	cmd.Flags().StringArrayVar(&uriFilters, "uri-filter", nil, "IRI filter predicate=iri (repeatable)")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Keep only this field, as name[@lang] (repeatable)")
	return cmd
}

// project re-reads a page through the projection, keeping page order.
func project(ctx context.Context, app *App, items []resource.Resource, projection repository.Projection) ([]resource.Resource, error) {
	if len(items) == 0 {
		return items, nil
	}
	repo, err := app.ProjectedResources()
	if err != nil {
		return nil, err
	}
	iris := make([]rdf.Iri, len(items))
	for i, item := range items {
		iris[i] = item.IRI()
	}
	byIRI, err := repo.FindManyByIriListWithProjection(ctx, iris, projection)
	if err != nil {
		return nil, err
	}
	out := make([]resource.Resource, 0, len(byIRI))
	for _, iri := range iris {
		if r, ok := byIRI[iri.URI()]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *cli) uuidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uuid <type> <id>",
		Short: "Find a resource by its UUID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityType(args[0])
			if err != nil {
				return err
			}
			app, err := c.app(cmd, true)
			if err != nil {
				return err
			}
			defer app.Shutdown()

			repo, err := app.ResourcesOf(t)
			if err != nil {
				return err
			}
			r, ok, err := repo.GetByUuid(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s %s", errNotFound, t, args[1])
			}
			return c.write(cmd, r)
		},
	}
}

// xlLabelPredicates are the concept predicates pointing at SKOS-XL label resources.
var xlLabelPredicates = []rdf.Iri{
	rdf.MustIri(openskos.SkosXLPrefLabel),
	rdf.MustIri(openskos.SkosXLAltLabel),
	rdf.MustIri(openskos.SkosXLHiddenLabel),
}

func (c *cli) labelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labels <iri>",
		Short: "Describe a concept with its SKOS-XL labels inlined",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iri, err := rdf.NewIri(args[0])
			if err != nil {
				return err
			}
			app, err := c.app(cmd, true)
			if err != nil {
				return err
			}
			defer app.Shutdown()

			concepts, err := app.Concepts()
			if err != nil {
				return err
			}
			labels, err := app.Labels()
			if err != nil {
				return err
			}
			concept, ok, err := concepts.FindByIri(cmd.Context(), iri)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", errNotFound, iri)
			}

			enricher, err := enrichment.New[*entity.Label](labels, enrichment.WithLogger(app.logger))
			if err != nil {
				return err
			}
			targets := enrichment.Targets([]*entity.Concept{concept})
			if err := enricher.Enrich(cmd.Context(), xlLabelPredicates, targets); err != nil {
				return fmt.Errorf("inline labels: %w", err)
			}
			return c.write(cmd, concept)
		},
	}
}

func (c *cli) mintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint <type>",
		Short: "Mint a new UUID and identifier for a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entityType(args[0])
			if err != nil {
				return err
			}
			app, err := c.app(cmd, false)
			if err != nil {
				return err
			}
			iris, err := app.IRIFactory(t)
			if err != nil {
				return err
			}
			id := uuid.NewString()
			iri, err := iris.Make(id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, iri)
			return err
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <iri>",
		Short: "Delete every statement about a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			iri, err := rdf.NewIri(args[0])
			if err != nil {
				return err
			}
			app, err := c.app(cmd, true)
			if err != nil {
				return err
			}
			defer app.Shutdown()

			repo, err := app.Resources()
			if err != nil {
				return err
			}
			if err := repo.DeleteSubject(cmd.Context(), iri); err != nil {
				return err
			}
			app.logger.Info("Deleted resource", "iri", iri.URI())
			return nil
		},
	}
}

func (c *cli) serveCmd() *cobra.Command {
	var (
		embedded    bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bridge NATS graph requests to the SPARQL endpoint",
		Long: `Serve answers describe and delete requests published on NATS and
applies ingest messages, using the configured SPARQL endpoints as the
backing store. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app(cmd, false)
			if err != nil {
				return err
			}
			defer app.Shutdown()

			if embedded {
				if err := app.StartEmbeddedNATS(); err != nil {
					return err
				}
			}
			return app.Serve(cmd.Context(), metricsAddr)
		},
	}

	cmd.Flags().BoolVar(&embedded, "embedded", false, "Start an in-process NATS server")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	return cmd
}

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.NewLoader(c.logger(cmd)).EnsureUserConfig()
		},
	}
}

func entityType(name string) (openskos.EntityType, error) {
	t := openskos.EntityType(strings.ToLower(name))
	if _, ok := openskos.ClassIRIs[t]; !ok {
		return "", fmt.Errorf("unknown type %q (want one of %s)", name, typeNames())
	}
	return t, nil
}

// parseProjection turns --field values into a projection. It returns nil when
// no field was given.
func parseProjection(t openskos.EntityType, fields []string) (repository.Projection, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	projection := repository.Projection{rdf.RDFType.URI(): ""}
	for _, raw := range fields {
		name, lang := strings.TrimSpace(raw), ""
		if i := strings.LastIndex(name, "@"); i >= 0 {
			name, lang = name[:i], name[i+1:]
		}
		if name == "" {
			return nil, fmt.Errorf("empty field in %q", raw)
		}
		if strings.Contains(name, ":") {
			iri, err := rdf.NewIri(name)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", raw, err)
			}
			projection[iri.URI()] = lang
			continue
		}
		iri, ok := openskos.FieldIRI(t, name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q for %s", name, t)
		}
		projection[iri] = lang
	}
	return projection, nil
}

func typeNames() string {
	names := make([]string, len(openskos.EntityTypes))
	for i, t := range openskos.EntityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func parseFilters(literal, uri []string) ([]query.Filter, error) {
	filters := make([]query.Filter, 0, len(literal)+len(uri))
	for _, raw := range literal {
		f, err := query.ParseFilter(raw, false)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	for _, raw := range uri {
		f, err := query.ParseFilter(raw, true)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}
