package migrate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/storefront-admin-api/internal/di"
	"github.com/sandeepkv93/storefront-admin-api/internal/tools/common"
	"github.com/sandeepkv93/storefront-admin-api/internal/tools/ui"
)

type options struct {
	envFile string
	timeout time.Duration
	ci      bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Catalog schema migration tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "operation timeout")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")

	cmd.AddCommand(
		newUpCommand(opts),
		newStatusCommand(opts),
		newPlanCommand(opts),
	)
	return cmd
}

func newUpCommand(opts *options) *cobra.Command {
	var withSeed bool
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := common.NewSession(opts.envFile)
			defer s.Close()
			steps := []common.Step{
				s.Connect(),
				{Name: "migrate", Run: func(ctx context.Context) (string, error) {
					tables, err := s.Maintenance.Migrate()
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("%d tables up to date", len(tables)), nil
				}},
			}
			if withSeed {
				steps = append(steps, common.Step{Name: "seed", Run: func(ctx context.Context) (string, error) {
					report, err := s.Maintenance.Seed(ctx, s.Maintenance.SeedOptions())
					if err != nil {
						return "", err
					}
					if report.Noop {
						return "seed data already present", nil
					}
					return fmt.Sprintf("categories=%d blogs=%d partners=%d orders=%d admin_created=%t",
						report.CreatedCategories, report.CreatedBlogs, report.CreatedPartners, report.CreatedOrders, report.AdminCreated), nil
				}})
			}
			return execute(cmd, opts, "migrate up", steps)
		},
	}
	cmd.Flags().BoolVar(&withSeed, "seed", false, "also apply seed data and the bootstrap admin")
	return cmd
}

func newStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report which catalog tables exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := common.NewSession(opts.envFile)
			defer s.Close()
			return execute(cmd, opts, "migrate status", []common.Step{
				s.Connect(),
				{Name: "tables", Run: func(ctx context.Context) (string, error) {
					return describeTables(s.Maintenance.Tables()), nil
				}},
			})
		},
	}
}

func newPlanCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the tables migrate up would create (dry-run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := common.NewSession(opts.envFile)
			defer s.Close()
			return execute(cmd, opts, "migrate plan", []common.Step{
				s.Connect(),
				{Name: "plan", Run: func(ctx context.Context) (string, error) {
					var missing []string
					for _, table := range s.Maintenance.Tables() {
						if !table.Present {
							missing = append(missing, table.Name)
						}
					}
					if len(missing) == 0 {
						return "schema complete; AutoMigrate would only reconcile columns", nil
					}
					return "would create: " + strings.Join(missing, ", "), nil
				}},
			})
		},
	}
}

func describeTables(tables []di.TableState) string {
	var present, missing []string
	for _, table := range tables {
		if table.Present {
			present = append(present, table.Name)
		} else {
			missing = append(missing, table.Name)
		}
	}
	out := fmt.Sprintf("%d/%d tables present", len(present), len(tables))
	if len(missing) > 0 {
		out += "; missing: " + strings.Join(missing, ", ")
	}
	return out
}

func execute(cmd *cobra.Command, opts *options, title string, steps []common.Step) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	return ui.Execute(ctx, cmd.OutOrStdout(), opts.ci, title, steps)
}
