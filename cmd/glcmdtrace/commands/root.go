package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/glcmd"
	_ "github.com/gogpu/glcmd/executors/trace" // register "trace"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "glcmdtrace",
	Short: "Record and replay a GL command buffer",
	Long: `glcmdtrace records a demo frame into a glcmd command pool and
replays the recording through a registered executor. With the default
trace executor every recorded command is printed as one line.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), loadConfig())
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.glcmd/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pool and recorder activity to stderr")
	rootCmd.Flags().Bool("individual", false, "back every recorder with its own storage")
	rootCmd.Flags().Int("max-viewports", glcmd.DefaultMaxViewports, "device viewport limit")
	rootCmd.Flags().Int("frames", 1, "number of frames to record")
	rootCmd.Flags().String("executor", "trace", "executor to replay through")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("individual", rootCmd.Flags().Lookup("individual"))
	_ = viper.BindPFlag("max_viewports", rootCmd.Flags().Lookup("max-viewports"))
	_ = viper.BindPFlag("frames", rootCmd.Flags().Lookup("frames"))
	_ = viper.BindPFlag("executor", rootCmd.Flags().Lookup("executor"))
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.glcmd")
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("GLCMD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// config is the resolved configuration of one run.
type config struct {
	Verbose      bool
	Individual   bool
	MaxViewports int
	Frames       int
	Executor     string
}

func loadConfig() config {
	return config{
		Verbose:      viper.GetBool("verbose"),
		Individual:   viper.GetBool("individual"),
		MaxViewports: viper.GetInt("max_viewports"),
		Frames:       viper.GetInt("frames"),
		Executor:     viper.GetString("executor"),
	}
}

// poolOptions translates the configuration into pool options.
func (c config) poolOptions(logger *slog.Logger) ([]glcmd.PoolOption, error) {
	limits := glcmd.Limits{MaxViewports: c.MaxViewports}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	opts := []glcmd.PoolOption{glcmd.WithLimits(limits), glcmd.WithLogger(logger)}
	if c.Individual {
		opts = append(opts, glcmd.WithIndividualReset())
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
