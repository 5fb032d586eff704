package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zelenmun/EvalUp/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "evalup",
		Short:        "Exam management backend with AI generated exams",
		SilenceUsage: true,
	}

	p := root.PersistentFlags()
	p.String("db-driver", config.DriverPostgres, "Database driver (postgres, mysql, sqlite)")
	p.String("db-dsn", "", "Database DSN (or set EVALUP_DB_DSN)")
	p.String("log-level", "info", "Log level (debug, info, warn, error)")

	serve := serveCmd()
	root.AddCommand(serve, migrateCmd(), reportCmd())

	// "serve" is the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

// viperForCmd layers the command's flags over .env, EVALUP_ variables and
// the optional config file.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	config.LoadEnv()
	v := config.NewViper()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.InheritedFlags())
	return v
}

func connect(cmd *cobra.Command, s config.Settings) error {
	config.Init(s.LogLevel)
	return config.Connect(cmd.Context(), s.DBDriver, s.DBDSN)
}
