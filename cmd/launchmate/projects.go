package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yash200611/launchmate/internal/projects/domain"
	"github.com/yash200611/launchmate/internal/projects/views"
)

func newProjectsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "Manage the founder's projects",
	}
	cmd.AddCommand(newProjectsListCmd(opts))
	cmd.AddCommand(newProjectsAddCmd(opts))
	cmd.AddCommand(newProjectsToggleCmd(opts, "favorite", "Toggle a project's favorite flag"))
	cmd.AddCommand(newProjectsToggleCmd(opts, "visibility", "Switch a project between public and private"))
	cmd.AddCommand(newProjectsDeleteCmd(opts))
	return cmd
}

func newProjectsListCmd(opts *options) *cobra.Command {
	var (
		scope, sortBy, search string
		favorites, grouped    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := views.ParseScope(scope)
			if err != nil {
				return err
			}
			so, err := views.ParseSort(sortBy)
			if err != nil {
				return err
			}
			agg, err := opts.loadProjects(cmd.Context())
			if err != nil {
				return err
			}

			items := agg.View(views.Query{Scope: sc, FavoritesOnly: favorites, Search: search, Sort: so})
			out := cmd.OutOrStdout()
			if !grouped {
				printProjects(out, items)
				return nil
			}
			g := views.Partition(items)
			printf(out, "Public (%d)\n", len(g.Public))
			printProjects(out, g.Public)
			printf(out, "\nPrivate (%d)\n", len(g.Private))
			printProjects(out, g.Private)
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "all", "all, shared or private")
	cmd.Flags().StringVar(&sortBy, "sort", "lastEdited", "lastEdited, alphabetical or dateCreated")
	cmd.Flags().StringVar(&search, "search", "", "filter by title, description or tag")
	cmd.Flags().BoolVar(&favorites, "favorites", false, "only favorites")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "group by visibility")
	return cmd
}

func newProjectsAddCmd(opts *options) *cobra.Command {
	var in domain.CreateInput
	var visibility, stage string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Visibility = domain.Visibility(visibility)
			in.Stage = domain.Stage(stage)

			ctx := cmd.Context()
			agg, err := opts.loadProjects(ctx)
			if err != nil {
				return err
			}
			p, err := agg.Add(ctx, in)
			if err != nil {
				return err
			}

			if center, err := opts.loadNotifications(ctx); err == nil {
				center.Add(ctx, "Project created", fmt.Sprintf("%q is ready to edit", p.Title))
			}
			printf(cmd.OutOrStdout(), "Created %s %q\n", p.ID.Hex(), p.Title)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "project title (required)")
	f.StringVar(&in.Description, "description", "", "short description (required)")
	f.StringVar(&in.Problem, "problem", "", "problem statement")
	f.StringVar(&in.TargetAudience, "audience", "", "target audience")
	f.StringSliceVar(&in.Tags, "tags", nil, "comma separated tags")
	f.StringVar(&visibility, "visibility", "", "public or private (default private)")
	f.StringVar(&stage, "stage", "", "idea, mvp, fundraising or launched (default idea)")
	return cmd
}

func newProjectsToggleCmd(opts *options, which, short string) *cobra.Command {
	return &cobra.Command{
		Use:   which + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			agg, err := opts.loadProjects(ctx)
			if err != nil {
				return err
			}

			id := args[0]
			if which == "favorite" {
				err = agg.ToggleFavorite(ctx, id)
			} else {
				err = agg.ToggleVisibility(ctx, id)
			}
			if err != nil {
				return err
			}

			p, _ := agg.Get(id)
			printf(cmd.OutOrStdout(), "%s: favorite=%t visibility=%s\n", p.Title, p.Favorite, p.Visibility)
			return nil
		},
	}
}

func newProjectsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			agg, err := opts.loadProjects(ctx)
			if err != nil {
				return err
			}
			if err := agg.Delete(ctx, args[0]); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func printProjects(w io.Writer, items []domain.Project) {
	if len(items) == 0 {
		printf(w, "No projects.\n")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	printf(tw, "ID\tTITLE\tSTAGE\tVISIBILITY\tFAV\tTAGS\tLAST EDITED\n")
	for _, p := range items {
		fav := ""
		if p.Favorite {
			fav = "*"
		}
		printf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID.Hex(), p.Title, p.Stage, p.Visibility, fav,
			strings.Join(p.Tags, ","), p.LastEdited.Local().Format(time.DateTime))
	}
	_ = tw.Flush()
}
