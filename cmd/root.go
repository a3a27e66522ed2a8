package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sw33tLie/carbontimeline/internal/utils"
	"github.com/sw33tLie/carbontimeline/pkg/bucket"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carbontimeline <takeout.zip>",
	Short: "Compute the CO2 footprint of your travels from a Google Takeout location history export.",
	Long: `carbontimeline reads the Semantic Location History of a Google Takeout archive
and sums the kilometers you travelled by plane, road and rail per month or year,
together with an estimate of the kg of CO2 they emitted.

Ask for a copy of your data at https://takeout.google.com/settings/takeout/custom/location_history,
then save the report as CSV:

  carbontimeline takeout-20210804T142059Z-001.zip > carbon.csv`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: initConfig,
	RunE:              runRoot,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolutionValue lets pflag validate --resolution while parsing.
type resolutionValue struct {
	r *bucket.Resolution
}

func (v resolutionValue) String() string {
	if v.r == nil {
		return ""
	}
	return v.r.String()
}

func (v resolutionValue) Set(s string) error {
	r, err := bucket.ParseResolution(s)
	if err != nil {
		return err
	}
	*v.r = r
	return nil
}

func (resolutionValue) Type() string { return "MONTH|YEAR" }

var _ pflag.Value = resolutionValue{}

// negatedBool is the --no-X twin of a bool flag: it writes false into the
// flag it names, so whichever of --X and --no-X comes last wins.
type negatedBool struct {
	flags *pflag.FlagSet
	name  string
}

func (negatedBool) String() string { return "false" }

func (v negatedBool) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if !on {
		return nil
	}
	return v.flags.Set(v.name, "false")
}

func (negatedBool) Type() string { return "bool" }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.carbontimeline.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "warn", "Set log level. Available: debug, info, warn, error, fatal")

	resolution := bucket.Month
	rootCmd.Flags().Var(resolutionValue{&resolution}, "resolution", "On which unit of time to compute the carbon emissions: YEAR or MONTH")
	rootCmd.Flags().Bool("debug", false, "Print all clean trips with their timestamp instead of the report, useful to identify weird data")
	rootCmd.Flags().Var(negatedBool{rootCmd.Flags(), "debug"}, "no-debug", "Print the aggregated report (default); the last of --debug/--no-debug wins")
	rootCmd.Flags().Lookup("no-debug").NoOptDefVal = "true"
	rootCmd.Flags().Bool("total", false, "Append a total row to the report")

	bindFlags()
}

func bindFlags() {
	for _, key := range []string{"resolution", "debug", "total"} {
		viper.BindPFlag(key, rootCmd.Flags().Lookup(key))
	}
	viper.BindPFlag("loglevel", rootCmd.PersistentFlags().Lookup("loglevel"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".carbontimeline")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("carbontimeline")
	viper.AutomaticEnv()

	// The config file is optional unless it was asked for explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Init log library
	if err := utils.SetLogLevel(viper.GetString("loglevel")); err != nil {
		return err
	}
	if f := viper.ConfigFileUsed(); f != "" {
		utils.Log.Debugf("Using config file %s", filepath.Clean(f))
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	res, err := bucket.ParseResolution(viper.GetString("resolution"))
	if err != nil {
		return err
	}

	return runReport(cmd.OutOrStdout(), args[0], reportOptions{
		Resolution: res,
		Debug:      viper.GetBool("debug"),
		Total:      viper.GetBool("total"),
	})
}
