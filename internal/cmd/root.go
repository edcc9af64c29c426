package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/immich-janitor/immich-janitor/internal/config"
	"github.com/immich-janitor/immich-janitor/internal/immich"
	"github.com/immich-janitor/immich-janitor/internal/utils"
	"github.com/immich-janitor/immich-janitor/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	// appConfig is resolved before every command runs
	appConfig *config.Config

	// appFs backs presets, exports and example scanning
	appFs afero.Fs = afero.NewOsFs()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "immich-janitor",
	Short: "Clean up an Immich photo library from the terminal",
	Long: `immich-janitor finds and removes unwanted assets from an Immich server.

It can:
- Build filename regexes from a few example names
- Preview and delete assets matching a pattern
- Manage the trash and duplicate groups
- Summarise the library by type and date

Connection settings come from flags, IMMICH_* environment variables,
a .env file in the working directory or ~/.immich-janitor.yaml.

Examples:
  immich-janitor list-assets --pattern '^IMG_'
  immich-janitor delete-by-pattern --examples "IMG_001.jpg,IMG_002.jpg"
  immich-janitor trash empty --older-than 30d`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	utils.GetLogger().Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, ui.Dim(hint))
		}
		os.Exit(1)
	}
}

// errorHint suggests a fix for server errors caused by local settings
func errorHint(err error) string {
	switch {
	case immich.IsUnauthorized(err):
		return "The server rejected the API key: check IMMICH_API_KEY or --api-key."
	case immich.IsNotFound(err):
		return "Endpoint not found: check that IMMICH_API_URL ends with /api."
	case immich.IsRateLimited(err):
		return "The server kept rate limiting requests: lower rate-limit in the config file or IMMICH_RATE_LIMIT."
	}
	return ""
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.immich-janitor.yaml)")
	flags.String(config.KeyAPIURL, "", "Immich API URL, e.g. http://localhost:2283/api (env IMMICH_API_URL)")
	flags.String(config.KeyAPIKey, "", "Immich API key (env IMMICH_API_KEY)")
	flags.Duration(config.KeyTimeout, immich.DefaultTimeout, "HTTP request timeout")
	flags.BoolP(config.KeyVerbose, "v", false, "verbose output (debug logging on stderr)")
	flags.String(config.KeyLogFile, utils.DefaultLogFile, "log file path")
	flags.String(config.KeyPresets, config.DefaultPresetsPath(), "saved patterns file")

	// Bind flags to viper
	for _, key := range []string{
		config.KeyAPIURL, config.KeyAPIKey, config.KeyTimeout,
		config.KeyVerbose, config.KeyLogFile, config.KeyPresets,
	} {
		viper.BindPFlag(key, flags.Lookup(key))
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())
}

// initConfig loads .env, the config file and the environment, then sets up logging
func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv("."); err != nil {
		return err
	}
	if err := config.ReadFile(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if err := utils.Configure(cfg.LogFile, cfg.Verbose); err != nil {
		return err
	}

	utils.Debug("running %s", cmd.CommandPath())
	appConfig = cfg
	return nil
}

// newClient validates the connection settings and creates an API client
var newClient = func() (*immich.Client, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	if err := appConfig.Validate(); err != nil {
		return nil, err
	}
	client, err := immich.NewClient(appConfig.ImmichConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
