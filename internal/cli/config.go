package cli

import (
	stderrors "errors"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/errors"
)

const (
	// ConfigName is the base name of the config file looked up in the working directory
	ConfigName = "reflector"
	// EnvPrefix prefixes the environment variables overriding options, e.g. REFLECTOR_WORKERS
	EnvPrefix = "REFLECTOR"
)

// Config holds the inputs of a generate or clean run
type Config struct {
	// Paths are the files and directories named on the command line
	Paths []string

	Options *config.Options
}

// flagKeys maps command line flags to option keys
var flagKeys = map[string]string{
	"recursive":         "recursive",
	"quiet":             "quiet",
	"force":             "force",
	"verbose":           "verbose",
	"json":              "use_json",
	"annotation-prefix": "annotation_prefix",
	"macro-prefix":      "macro_prefix",
	"extensions":        "extensions",
	"output-dir":        "output_dir",
	"database":          "database",
	"workers":           "workers",
}

// newViper returns a viper instance seeded with the option defaults and
// reading REFLECTOR_* environment variables.
func newViper() *viper.Viper {
	v := viper.New()
	defaults := config.NewOptions()
	v.SetDefault("recursive", defaults.Recursive)
	v.SetDefault("quiet", defaults.Quiet)
	v.SetDefault("force", defaults.Force)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("use_json", defaults.UseJSON)
	v.SetDefault("annotation_prefix", defaults.AnnotationPrefix)
	v.SetDefault("macro_prefix", defaults.MacroPrefix)
	v.SetDefault("extensions", defaults.Extensions)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("database", defaults.Database)
	v.SetDefault("workers", defaults.Workers)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// bindFlags binds every known flag in flags to its option key
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.WrapConfigurationError(name, "bind", err)
		}
	}
	return nil
}

// addOptionFlags registers the option flags shared by generate and clean
func addOptionFlags(flags *pflag.FlagSet) {
	defaults := config.NewOptions()
	flags.BoolP("recursive", "r", defaults.Recursive, "descend into subdirectories of directory arguments")
	flags.BoolP("quiet", "q", defaults.Quiet, "only report errors")
	flags.BoolP("force", "f", defaults.Force, "rewrite outputs even when they are newer than their source")
	flags.BoolP("verbose", "v", defaults.Verbose, "report every analyzed file and class")
	flags.Bool("json", defaults.UseJSON, "write a .mirror.json file for every reflected source")
	flags.String("annotation-prefix", defaults.AnnotationPrefix, "prefix the annotation markers are derived from")
	flags.String("macro-prefix", defaults.MacroPrefix, "prefix of the macros emitted for generated code")
	flags.StringSlice("extensions", defaults.Extensions, "source extensions picked up from directories")
	flags.StringP("output-dir", "o", defaults.OutputDir, "directory receiving mirror files (default: beside each source)")
	flags.String("database", defaults.Database, "file receiving every reflected mirror as one JSON array")
	flags.IntP("workers", "j", defaults.Workers, "files scanned concurrently")
}

// LoadOptions merges defaults, the config file, environment variables and
// bound flags into normalized options. With an empty configFile a
// reflector.yaml in the working directory is used when present.
func LoadOptions(v *viper.Viper, configFile string) (*config.Options, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.WrapConfigurationError(describeConfig(v, configFile), "read", err)
		}
	}

	opts := config.NewOptions()
	if err := v.Unmarshal(opts); err != nil {
		return nil, errors.WrapConfigurationError(describeConfig(v, configFile), "decode", err)
	}
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	return opts, nil
}

func describeConfig(v *viper.Viper, configFile string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	if configFile != "" {
		return configFile
	}
	return ConfigName + ".yaml"
}
