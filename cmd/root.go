package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/config"
	"github.com/s0up4200/sonarview/output"
	"github.com/s0up4200/sonarview/sonarqube"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *sonarqube.Client

	version   = "dev"
	buildTime = "unknown"

	// Global flags
	serverURL  string
	authToken  string
	projectKey string
	branchName string
	timeoutSec int
	asJSON     bool
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sonarview",
	Short: "Read-only reporting CLI for SonarQube",
	Long: `sonarview queries a SonarQube server for issues, quality gate status,
metrics, coverage, duplications and security hotspots, and can wait for a
background analysis task to finish. It never changes anything on the server.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records the build metadata shown by the version flag.
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "SonarQube server URL (env SONAR_HOST_URL)")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "authentication token (env SONAR_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&projectKey, "project", "", "project key (env SONAR_PROJECT_KEY)")
	rootCmd.PersistentFlags().StringVar(&branchName, "branch", "", "branch name (env SONAR_BRANCH)")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// initializeApp initializes the configuration and the SonarQube client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Command-line flags override config file and environment
	if cmd.Flags().Changed("url") {
		cfg.Server.URL = serverURL
	}
	if cmd.Flags().Changed("token") {
		cfg.Server.Token = authToken
	}
	if cmd.Flags().Changed("project") {
		cfg.Server.Project = projectKey
	}
	if cmd.Flags().Changed("branch") {
		cfg.Server.Branch = branchName
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Server.Timeout = timeoutSec
	}

	logger = setupLogger(cfg.Logging)

	clientCfg := sonarqube.NewConfig(cfg.Server.URL).
		WithToken(cfg.Server.Token).
		WithProject(cfg.Server.Project).
		WithBranch(cfg.Server.Branch).
		WithTimeout(time.Duration(cfg.Server.Timeout) * time.Second)

	client, err = sonarqube.NewClient(clientCfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create SonarQube client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(logCfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(logCfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	if logCfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !logCfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(out).With().Timestamp().Logger()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// The client is not needed to print a version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sonarview %s (built %s)\n", version, buildTime)
	},
}

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check SonarQube server health",
	Long:  `Check whether the SonarQube server is reachable and reports status UP.`,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	status, err := client.ServerStatus(cmd.Context())
	if err != nil {
		if asJSON {
			output.PrintHealth("UNREACHABLE", client.URL(), true)
		}
		return fmt.Errorf("failed to reach SonarQube at %s: %w", client.URL(), err)
	}

	output.PrintHealth(status, client.URL(), asJSON)
	if status != "UP" {
		return fmt.Errorf("SonarQube is not healthy (status %s)", status)
	}
	return nil
}
