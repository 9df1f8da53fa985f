package cli

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/toyz/reflector/internal/config"
	"github.com/toyz/reflector/internal/errors"
)

// configEntries describes the keys written by `config init`, in file order
var configEntries = []struct {
	key     string
	comment string
	value   func(*config.Options) interface{}
}{
	{"recursive", "Descend into subdirectories of directory arguments.", func(o *config.Options) interface{} { return o.Recursive }},
	{"quiet", "Only report errors.", func(o *config.Options) interface{} { return o.Quiet }},
	{"force", "Rewrite outputs even when they are newer than their source.", func(o *config.Options) interface{} { return o.Force }},
	{"verbose", "Report every analyzed file and class.", func(o *config.Options) interface{} { return o.Verbose }},
	{"use_json", "Write a .mirror.json file for every reflected source.", func(o *config.Options) interface{} { return o.UseJSON }},
	{"annotation_prefix", "Markers are this prefix followed by Class, Field, Method, Body, Enum and Enumerator.", func(o *config.Options) interface{} { return o.AnnotationPrefix }},
	{"macro_prefix", "Prefix of the macros emitted for generated code.", func(o *config.Options) interface{} { return o.MacroPrefix }},
	{"extensions", "Source extensions picked up from directories.", func(o *config.Options) interface{} { return o.Extensions }},
	{"output_dir", "Directory receiving mirror files. Empty writes each mirror beside its source.", func(o *config.Options) interface{} { return o.OutputDir }},
	{"database", "File receiving every reflected mirror as one JSON array. Empty disables it.", func(o *config.Options) interface{} { return o.Database }},
	{"workers", "Files scanned concurrently. 0 or 1 scans sequentially.", func(o *config.Options) interface{} { return o.Workers }},
}

// RenderConfigTemplate returns a commented YAML document holding opts
func RenderConfigTemplate(opts *config.Options) ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range configEntries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: entry.key, HeadComment: entry.comment}
		value := &yaml.Node{}
		if err := value.Encode(entry.value(opts)); err != nil {
			return nil, errors.WrapConfigurationError(entry.key, "encode", err)
		}
		mapping.Content = append(mapping.Content, key, value)
	}

	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "Reflector configuration. Environment variables (REFLECTOR_<KEY>) and flags override these values.",
		Content:     []*yaml.Node{mapping},
	}
	return yaml.Marshal(doc)
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the reflector configuration file",
	}
	cmd.AddCommand(newConfigInitCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file holding the default options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); err == nil && !force {
				return errors.ConfigurationError(output, "file already exists").
					WithSuggestion("Use --force to overwrite it")
			}

			data, err := RenderConfigTemplate(config.NewOptions())
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.WrapFileSystemError("write", output, err)
			}
			cmd.Printf("Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", ConfigName+".yaml", "file to write")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
