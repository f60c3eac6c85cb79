// Package config merges command-line flags with NFTPROOF_* environment
// variables and an optional .env file.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "NFTPROOF"

// aliases are unprefixed variables honoured for compatibility with common
// tooling.
var aliases = map[string]string{
	"rpc-url": "RPC_URL",
}

// Load reads envFiles (default ".env"; missing files are ignored) and returns
// a viper instance where an explicitly set flag wins over the environment,
// which wins over the flag default. Variables already present in the process
// environment are not overwritten by the files.
func Load(flags *pflag.FlagSet, envFiles ...string) (*viper.Viper, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, env := range aliases {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, "-", "_")), env); err != nil {
			return nil, err
		}
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	return v, nil
}
