package flockerclient

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/function61/gokit/fileexists"
	"github.com/function61/gokit/jsonfile"
	"github.com/function61/gokit/osutil"
	"github.com/spf13/cobra"
)

const (
	configFilename = "flocker-config.json"
)

// all fields can be overridden with flags
type Config struct {
	Pool      string `json:"pool"`
	MountRoot string `json:"mount_root,omitempty"` // empty = /<pool>
	ZfsBinary string `json:"zfs_binary,omitempty"` // empty = "zfs" from $PATH
}

func WriteConfigWithPath(conf *Config, confPath string) error {
	return jsonfile.Write(confPath, conf)
}

// the config file is optional, a missing one reads as empty config
func ReadConfig() (*Config, error) {
	confPath, err := ConfigFilePath()
	if err != nil {
		return nil, fmt.Errorf("flocker config: %v", err)
	}

	return ReadConfigWithPath(confPath)
}

func ReadConfigWithPath(confPath string) (*Config, error) {
	exists, err := fileexists.Exists(confPath)
	if err != nil {
		return nil, fmt.Errorf("flocker config: %v", err)
	}

	conf := &Config{}

	if !exists {
		return conf, nil
	}

	if err := jsonfile.Read(confPath, conf, true); err != nil {
		return nil, fmt.Errorf("flocker config: %v", err)
	}

	return conf, nil
}

func ConfigFilePath() (string, error) {
	usersHomeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(usersHomeDirectory, configFilename), nil
}

func configEntrypoint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(configInitEntrypoint())
	cmd.AddCommand(configPrintEntrypoint())

	return cmd
}

func configInitEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "init [pool] [mountRoot]",
		Short: "Initialize configuration",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			conf := &Config{
				Pool: args[0],
			}

			if len(args) > 1 {
				conf.MountRoot = args[1]
			}

			confPath, err := ConfigFilePath()
			osutil.ExitIfError(err)

			osutil.ExitIfError(initConfig(conf, confPath))
		},
	}
}

func initConfig(conf *Config, confPath string) error {
	exists, err := fileexists.Exists(confPath)
	if err != nil {
		return err
	}

	if exists {
		return errors.New("config file already exists")
	}

	return WriteConfigWithPath(conf, confPath)
}

func configPrintEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Prints path to config file & its contents",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			confPath, err := ConfigFilePath()
			osutil.ExitIfError(err)

			fmt.Printf("file: %s\n", confPath)

			exists, err := fileexists.Exists(confPath)
			osutil.ExitIfError(err)

			if !exists {
				fmt.Printf(".. does not exist. To configure, run:\n    $ %s config init\n", os.Args[0])
				return
			}

			file, err := os.Open(confPath)
			osutil.ExitIfError(err)
			defer file.Close()

			_, err = io.Copy(os.Stdout, file)
			osutil.ExitIfError(err)
		},
	}
}
