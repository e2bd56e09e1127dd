package main

import (
	"book-library/app/smoke/handlers"
	"book-library/app/smoke/inits"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "smoke",
		Short:        "End-to-end checks against a running book library server",
		SilenceUsage: true,
	}

	root.AddCommand(newRunCommand())

	return root
}

func newRunCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Register, log in and exercise every book endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 初始化配置
			cfg, err := inits.Config(v)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			// 初始化日志
			l, err := inits.Logger(!cfg.IsProd)
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}
			defer l.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err = handlers.NewApp(cfg, l).Run(ctx); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "all checks passed")
			return err
		},
	}

	flags := cmd.Flags()
	flags.String("base-url", "http://127.0.0.1:5001", "book library server base URL")
	flags.Duration("timeout", 10*time.Second, "timeout of a single request")
	flags.Duration("wait", 0, "wait up to this long for the server to become healthy")
	flags.String("username", "admin", "admin account used for the checks, registered when missing")
	flags.String("password", "", "password of the admin account (prompted when empty)")
	flags.Bool("cleanup", false, "delete the books created by this run")

	if err := inits.BindFlags(v, flags); err != nil {
		panic(err)
	}

	return cmd
}
