package seed

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/storefront-admin-api/internal/config"
	"github.com/sandeepkv93/storefront-admin-api/internal/database"
	"github.com/sandeepkv93/storefront-admin-api/internal/tools/common"
	"github.com/sandeepkv93/storefront-admin-api/internal/tools/ui"
)

type options struct {
	envFile             string
	bootstrapAdminEmail string
	sampleContent       bool
	timeout             time.Duration
	ci                  bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Catalog seed tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().StringVar(&opts.bootstrapAdminEmail, "bootstrap-admin-email", "", "override bootstrap admin email")
	cmd.PersistentFlags().BoolVar(&opts.sampleContent, "sample-content", true, "also load the sample store (ignored in production)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "operation timeout")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "non-interactive machine-readable output")
	cmd.AddCommand(newApplyCommand(opts), newDryRunCommand(opts), newAdminCommand(opts))
	return cmd
}

func newApplyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Apply default categories, sample store and bootstrap admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := common.NewSession(opts.envFile)
			defer s.Close()
			return execute(cmd, opts, "seed apply", s.Connect(), common.Step{
				Name: "seed",
				Run: func(ctx context.Context) (string, error) {
					report, err := s.Maintenance.Seed(ctx, seedOptions(s.Maintenance.Config, opts))
					if err != nil {
						return "", err
					}
					return summarizeReport(report), nil
				},
			})
		},
	}
}

func newDryRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run",
		Short: "Show what seeding would do",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, opts, "seed dry-run", common.Step{
				Name: "plan",
				Run: func(ctx context.Context) (string, error) {
					if _, err := common.LoadEnvFile(opts.envFile); err != nil {
						return "", err
					}
					cfg, err := config.Load()
					if err != nil {
						return "", err
					}
					return describePlan(seedOptions(cfg, opts)), nil
				},
			})
		},
	}
}

func newAdminCommand(opts *options) *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create an admin account or reset its password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			s := common.NewSession(opts.envFile)
			defer s.Close()
			return execute(cmd, opts, "seed admin", s.Connect(), common.Step{
				Name: "ensure admin",
				Run: func(ctx context.Context) (string, error) {
					user, created, err := s.Maintenance.EnsureAdmin(ctx, email, name, password)
					if err != nil {
						return "", err
					}
					verb := "reset password for"
					if created {
						verb = "created"
					}
					return fmt.Sprintf("%s admin %d: %s", verb, user.ID, user.Email), nil
				},
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&name, "name", "", "admin display name")
	cmd.Flags().StringVar(&password, "password", "", "admin password (defaults to $ADMIN_PASSWORD)")
	return cmd
}

func execute(cmd *cobra.Command, opts *options, title string, steps ...common.Step) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	return ui.Execute(ctx, cmd.OutOrStdout(), opts.ci, title, steps)
}

func seedOptions(cfg *config.Config, opts *options) database.SeedOptions {
	email := cfg.BootstrapAdminEmail
	if opts.bootstrapAdminEmail != "" {
		email = strings.TrimSpace(strings.ToLower(opts.bootstrapAdminEmail))
	}
	return database.SeedOptions{
		AdminEmail:    email,
		AdminPassword: cfg.BootstrapAdminPassword,
		SampleContent: opts.sampleContent && !cfg.IsProduction(),
	}
}

func summarizeReport(report *database.SeedReport) string {
	if report.Noop {
		return "seed data already present"
	}
	admin := "skipped"
	switch {
	case report.AdminCreated:
		admin = "created"
	case report.AdminUpdated:
		admin = "updated"
	}
	return fmt.Sprintf("categories=%d blogs=%d partners=%d products=%d customers=%d coupons=%d orders=%d admin=%s",
		report.CreatedCategories, report.CreatedBlogs, report.CreatedPartners, report.CreatedProducts,
		report.CreatedCustomers, report.CreatedCoupons, report.CreatedOrders, admin)
}

func describePlan(opts database.SeedOptions) string {
	parts := []string{"ensure categories bags, home, stationery"}
	if opts.SampleContent {
		parts = append(parts, "ensure sample blogs, partners of the month, products, customers, coupon WELCOME10 and orders")
	}
	if opts.AdminEmail != "" {
		parts = append(parts, "create or re-activate admin "+opts.AdminEmail)
	}
	return strings.Join(parts, "; ")
}
