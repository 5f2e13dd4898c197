package main

import (
	"context"
	"errors"
	"fmt"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/fileio"
	"mortarEditor/internal/listedit"
	"mortarEditor/internal/models"
	"mortarEditor/internal/schema"

	"github.com/spf13/cobra"
)

var errNoAPI = errors.New("--api is required")

func readDocument(path string) (models.Document, error) {
	if path == "" {
		return models.Document{}, errors.New("--file is required")
	}
	text, err := fileio.ReadFile(path)
	if err != nil {
		return models.Document{}, err
	}
	return fileio.Unmarshal(text)
}

func newPullCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download the configuration from a Mortar instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app) error {
				if opts.api == "" {
					return errNoAPI
				}
				client, err := a.remoteClient(opts.api)
				if err != nil {
					return err
				}
				doc, err := client.Load(cmd.Context())
				if err != nil {
					return err
				}
				data, err := fileio.Marshal(doc)
				if err != nil {
					return err
				}

				if output == "-" {
					_, err = cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if output == "" {
					output = fileio.NewExporter(opts.exportDir).Path()
				}
				if err := fileio.WriteFile(output, data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d host(s) from %s to %s\n", len(doc.Hosts), client.Endpoint(), output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file, - for stdout (default <export-dir>/mortar-config.json)")
	return cmd
}

func newPushCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload a configuration file to a Mortar instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app) error {
				if opts.api == "" {
					return errNoAPI
				}
				doc, err := readDocument(opts.file)
				if err != nil {
					return err
				}
				issues, err := a.validator.Validate(doc)
				if err != nil {
					return err
				}
				for _, issue := range issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
				}

				client, err := a.remoteClient(opts.api)
				if err != nil {
					return err
				}
				if err := client.Save(cmd.Context(), doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d host(s) to %s\n", len(doc.Hosts), client.Endpoint())
				return nil
			})
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file against the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app) error {
				doc, err := readDocument(opts.file)
				if err != nil {
					return err
				}
				issues, err := a.validator.Validate(doc)
				if err != nil {
					return err
				}
				for _, issue := range issues {
					fmt.Fprintln(cmd.OutOrStdout(), issue)
				}
				if len(issues) > 0 {
					return apperr.New(apperr.ValidationError, fmt.Sprintf("%d issue(s) found", len(issues)), nil)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d host(s), no issues\n", opts.file, len(doc.Hosts))
				return nil
			})
		},
	}
}

func newFmtCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite a configuration file in canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), opts, func(a *app) error {
				doc, err := readDocument(opts.file)
				if err != nil {
					return err
				}
				data, err := fileio.Marshal(doc)
				if err != nil {
					return err
				}
				if err := fileio.WriteFile(opts.file, data); err != nil {
					return err
				}
				a.logger.Info("configuration formatted", "path", opts.file)
				return nil
			})
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [PATH]",
		Short: "Print the items of one collection of a configuration file",
		Long: `Print the items of one ordered collection, one per line with its index.

PATH is "hosts" (the default) or hosts[N].platforms,
hosts[N].filters.inclusive_filters or hosts[N].filters.exclusive_filters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := listedit.Hosts
			if len(args) == 1 {
				var err error
				if path, err = listedit.ParsePath(args[0]); err != nil {
					return apperr.New(apperr.ConfigError, "invalid collection path", err)
				}
			}
			doc, err := readDocument(opts.file)
			if err != nil {
				return err
			}
			items, err := collectionItems(doc, path)
			if err != nil {
				return err
			}
			for i, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, item)
			}
			return nil
		},
	}
}

// collectionItems renders the elements of the collection at path as labels.
func collectionItems(doc models.Document, path listedit.Path) ([]string, error) {
	if path.Len(doc) < 0 {
		return nil, apperr.New(apperr.ConfigError, fmt.Sprintf("%s does not exist in this document", path), nil)
	}
	if path.Collection == listedit.CollectionHosts {
		items := make([]string, len(doc.Hosts))
		for i, h := range doc.Hosts {
			items[i] = h.Title(i)
		}
		return items, nil
	}

	host := doc.Hosts[path.Host]
	switch path.Collection {
	case listedit.CollectionPlatforms:
		items := make([]string, len(host.Platforms))
		for i, p := range host.Platforms {
			items[i] = p.LocalDirectory
		}
		return items, nil
	case listedit.CollectionInclusiveFilters:
		return host.Filters.InclusiveFilters, nil
	default:
		return host.Filters.ExclusiveFilters, nil
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema used for validation and default elements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(schema.Raw())
			return err
		},
	}
}

func withApp(ctx context.Context, opts *options, fn func(*app) error) error {
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if err := fn(a); err != nil {
		a.logger.Error("command failed", "error", err)
		return err
	}
	return nil
}

// exitCode maps failures to distinct exit statuses for scripts.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case apperr.Is(err, apperr.ValidationError):
		return 2
	case apperr.Is(err, apperr.SyncError):
		return 3
	default:
		return 1
	}
}
