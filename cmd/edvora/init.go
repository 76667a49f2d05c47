package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tanya2303/Edvora"
	"github.com/Tanya2303/Edvora/internal/config"
)

var initHere bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory and a default config file",
	Long: `Create the data directory, an empty reminder collection and, when none
exists yet, a config file holding the default settings.

With --here the store is created in ./.edvora instead, and commands run
anywhere below this directory use it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initHere {
			cwd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			cfg.DataDir = filepath.Join(cwd, edvora.ProjectDirName)
		}

		inst, err := openInstance("cli")
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		defer inst.Close()

		path := config.ExpandPath(configPath)
		if _, err := os.Stat(path); !initHere && os.IsNotExist(err) {
			if err := writeDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.FormatSuccess("Wrote config " + path))
		}

		fmt.Fprintln(cmd.OutOrStdout(), out.FormatSuccess(fmt.Sprintf("Initialized Edvora store (%s) in %s with %d reminders", cfg.Adapter, cfg.DataDir, inst.Store.Len())))
		return nil
	},
}

func writeDefaultConfig(path string) error {
	defaults := config.DefaultConfig()
	defaults["data_dir"] = cfg.DataDir
	defaults["adapter"] = cfg.Adapter

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initHere, "here", false, "Create a project-local store in ./.edvora")
}
