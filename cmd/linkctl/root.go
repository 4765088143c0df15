package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tempizhere/linkvault/internal/client"
)

// cli хранит общие для команд настройки
type cli struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	c.v.SetEnvPrefix("LINKVAULT")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "linkctl",
		Short:         "linkctl manages links, lists and collections on a linkvault server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", "http://localhost:8080", "linkvault server URL (env LINKVAULT_SERVER)")
	root.PersistentFlags().String("token", "", "JWT issued by the server (env LINKVAULT_TOKEN)")
	_ = c.v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = c.v.BindPFlag("token", root.PersistentFlags().Lookup("token"))

	root.AddCommand(c.linksCmd(), c.listsCmd(), c.collectionsCmd())
	return root
}

func (c *cli) client() *client.Client {
	var opts []client.Option
	if token := c.v.GetString("token"); token != "" {
		opts = append(opts, client.WithToken(token))
	}
	return client.New(c.v.GetString("server"), opts...)
}

// printJSON выводит значение с отступами
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// optString возвращает указатель на значение флага, если флаг задан
func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func optBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func optInt64(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}
