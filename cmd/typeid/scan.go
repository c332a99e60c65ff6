/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/builder"
	"dirpx.dev/typeid/catalog"
	"dirpx.dev/typeid/config"
	"dirpx.dev/typeid/metrics"
	"dirpx.dev/typeid/source"
)

// errCollisions is returned in strict mode when names collide.
var errCollisions = errors.New("schema name collisions found")

// scanFlags are the flags shared by scan and watch.
type scanFlags struct {
	exclude   []string
	directive string
	workers   int
	format    string
	strict    bool
	metrics   bool
	roles     []string
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.exclude, "exclude", "x", nil, "Directory patterns to skip (doublestar syntax)")
	cmd.Flags().StringVar(&f.directive, "directive", "", "Comment prefix of naming directives")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Directories parsed concurrently")
	cmd.Flags().StringVarP(&f.format, "format", "o", "table", "Output format (table, yaml, json)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail when two types produce the same name")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Print resolution metrics to stderr")
	cmd.Flags().StringSliceVar(&f.roles, "role", nil, "Only print names for these roles (type, input, interface, enum, scalar)")
}

// roleFilter returns the set of role names to print, or nil for all.
func (f *scanFlags) roleFilter() (map[string]bool, error) {
	if len(f.roles) == 0 {
		return nil, nil
	}
	keep := make(map[string]bool, len(f.roles))
	for _, r := range f.roles {
		role, ok := apis.ParseReferenceType(r)
		if !ok {
			return nil, fmt.Errorf("unknown role %q", r)
		}
		keep[role.String()] = true
	}
	return keep, nil
}

// filterRoles drops the entries whose role is not in keep.
// Collisions are always kept.
func filterRoles(res *catalog.Result, keep map[string]bool) *catalog.Result {
	if keep == nil {
		return res
	}
	out := *res
	out.Entries = nil
	for _, e := range res.Entries {
		if keep[e.Role] {
			out.Entries = append(out.Entries, e)
		}
	}
	return &out
}

// apply overlays flags onto the loaded configuration.
func (f *scanFlags) apply(cfg *config.File, args []string) {
	if len(args) > 0 {
		cfg.Scan.Include = args
	}
	if len(f.exclude) > 0 {
		cfg.Scan.Exclude = f.exclude
	}
	if f.directive != "" {
		cfg.Scan.Directive = f.directive
	}
	if f.workers > 0 {
		cfg.Scan.Workers = f.workers
	}
	if f.strict {
		cfg.Scan.Strict = true
	}
}

func scanCmd(g *globals) *cobra.Command {
	f := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan [dir|pattern]...",
		Short: "Print the schema names of the types in Go packages",
		Example: `  typeid scan ./model
  typeid scan 'internal/**' --exclude '**/testdata/**' -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			f.apply(cfg, args)
			keep, err := f.roleFilter()
			if err != nil {
				return err
			}
			s, err := newScanner(cfg, logger)
			if err != nil {
				return err
			}
			res, err := s.run(cmd.Context())
			if err != nil {
				return err
			}
			if err := render(g.stdout, f.format, filterRoles(res, keep)); err != nil {
				return err
			}
			if f.metrics {
				if err := s.dumpMetrics(g.stderr); err != nil {
					return err
				}
			}
			if cfg.Scan.Strict && len(res.Collisions) > 0 {
				return fmt.Errorf("%w: %d", errCollisions, len(res.Collisions))
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// scanner wires configuration, resolver, metrics and catalog for one run.
type scanner struct {
	cfg    *config.File
	logger *slog.Logger
	prom   *prometheus.Registry
	cat    *catalog.Catalog
}

func newScanner(cfg *config.File, logger *slog.Logger) (*scanner, error) {
	prom := prometheus.NewRegistry()
	obs, err := metrics.New(prom)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	naming := cfg.NamingConfig()
	b := builder.New(builder.WithLogger(logger), builder.WithObserver(obs))
	cat := catalog.New(naming,
		b.BuildResolver(naming, nil),
		b.BuildRegistry(naming, nil),
		catalog.WithLogger(logger),
		catalog.WithWorkers(cfg.Scan.Workers),
		catalog.WithCollisionObserver(obs),
		catalog.WithSourceOptions(source.Options{Directive: cfg.Scan.Directive}),
	)
	return &scanner{cfg: cfg, logger: logger, prom: prom, cat: cat}, nil
}

// run expands the configured patterns and builds the catalog from scratch.
func (s *scanner) run(ctx context.Context) (*catalog.Result, error) {
	dirs, err := source.ExpandPaths(s.cfg.Scan.Include, s.cfg.Scan.Exclude)
	if err != nil {
		return nil, fmt.Errorf("expand paths: %w", err)
	}
	s.logger.Debug("Scanning", slog.Int("dirs", len(dirs)))
	s.cat.Registry().Reset()
	return s.cat.Build(ctx, dirs)
}

func (s *scanner) dumpMetrics(w io.Writer) error {
	mfs, err := s.prom.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}

func render(w io.Writer, format string, res *catalog.Result) error {
	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "table", "":
		return renderTable(w, res)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(w io.Writer, res *catalog.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tROLE\tCLASS\tPOSITION")
	for _, e := range res.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s%s\t%s\n", e.Name, e.Role, e.Class, e.Instantiation, e.Position)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, c := range res.Collisions {
		fmt.Fprintf(w, "collision: %s owned by %s, requested by %s (%s)\n", c.Name, c.Existing, c.Incoming, c.Position)
	}
	fmt.Fprintf(w, "%d names in %d packages, %d collisions\n", len(res.Entries), res.Packages, len(res.Collisions))
	return nil
}
