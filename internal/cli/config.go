package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-profilestamp/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-profilestamp/config.
Settings can also be provided via environment variables.

Supported settings:
  tenant-id           Entra ID tenant (env: PROFILESTAMP_TENANT_ID)
  client-id           Application (client) id (env: PROFILESTAMP_CLIENT_ID)
  user                Graph user id or UPN (env: PROFILESTAMP_USER)
  selection-marker    Text marking the insertion point (env: PROFILESTAMP_SELECTION_MARKER)
  signature-template  html/template file for signatures (env: PROFILESTAMP_SIGNATURE_TEMPLATE)
  log-mode            dev or prod (env: PROFILESTAMP_LOG_MODE)

The client secret is only read from PROFILESTAMP_CLIENT_SECRET.`,
		Example: `  profilestamp config set client-id 00000000-0000-0000-0000-000000000000
  profilestamp config get user
  profilestamp config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  profilestamp config set tenant-id contoso.onmicrosoft.com
  profilestamp config set signature-template ~/sig.html.tmpl`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  profilestamp config get client-id`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable fallbacks.`,
		Example: `  profilestamp config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	value, err := config.Validate(key, value)
	if err != nil {
		return err
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !config.IsKnownKey(key) {
		return fmt.Errorf("%w %q (valid keys: %v)", config.ErrUnknownKey, key, config.Keys)
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}

	if value == "" {
		value = env.Getenv(config.EnvVar(key))
	}

	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}

	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	printed := 0
	for _, key := range config.Keys {
		value, ok := data[key]
		if !ok {
			if envVal := env.Getenv(config.EnvVar(key)); envVal != "" {
				value, ok = envVal+" (from env)", true
			}
		}
		if ok {
			fmt.Fprintf(env.Stdout, "%s=%s\n", key, value)
			printed++
		}
	}

	if printed == 0 {
		fmt.Fprintln(env.Stdout, "No configuration set.")
		fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range config.Keys {
			fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
	}

	return nil
}
