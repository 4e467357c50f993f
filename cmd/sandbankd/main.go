// Command sandbankd serves the vulnerability sandbox over HTTP. Every
// protection flag is independently settable via flags, environment variables
// (SANDBANK_ prefix), or a config file, so a lab can run the same binary
// hardened and vulnerable side by side.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lborres/sandbank"
	fiberadapter "github.com/lborres/sandbank/adapters/fiber"
	"github.com/lborres/sandbank/core"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "sandbankd",
		Short: "Deterministic web-vulnerability training sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
	}
	root.SilenceUsage = true

	flags := root.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("config", "", "config file (optional)")
	flags.Bool("hardened", false, "start from the fully hardened profile instead of the vulnerable one")
	flags.Bool("sql-injection-protection", false, "treat quotes and separators as literal data")
	flags.Bool("access-control-enforced", false, "verify roles before privileged operations")
	flags.Bool("race-condition-safe", false, "serialize read-check-write per account")
	flags.Bool("plaintext-passwords", false, "store credentials without hashing")
	flags.Bool("xss-protection", false, "escape free-text fields before storage")
	flags.Int("password-min-length", core.DefaultPasswordMinLength, "minimum accepted password length")
	flags.Int64("starting-balance", core.DefaultStartingBalance, "balance in cents for new accounts")
	flags.Bool("seed", true, "seed the demo accounts")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	v.SetEnvPrefix("SANDBANK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return root
}

func buildProfile(v *viper.Viper) *core.Profile {
	profile := core.Vulnerable()
	if v.GetBool("hardened") {
		profile = core.Hardened()
	}

	// Individual flags override the preset.
	for flag, apply := range map[string]func(bool){
		"sql-injection-protection": func(b bool) { profile.SQLInjectionProtection = b },
		"access-control-enforced":  func(b bool) { profile.AccessControlEnforced = b },
		"race-condition-safe":      func(b bool) { profile.RaceConditionSafe = b },
		"plaintext-passwords":      func(b bool) { profile.PlaintextPasswords = b },
		"xss-protection":           func(b bool) { profile.XSSProtection = b },
	} {
		if v.IsSet(flag) {
			apply(v.GetBool(flag))
		}
	}
	if v.IsSet("password-min-length") {
		profile.PasswordMinLength = v.GetInt("password-min-length")
	}
	if v.IsSet("starting-balance") {
		profile.StartingBalance = v.GetInt64("starting-balance")
	}

	return profile.Normalize()
}

func run(v *viper.Viper) error {
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	profile := buildProfile(v)

	sb, err := sandbank.New(sandbank.Config{Profile: profile})
	if err != nil {
		return fmt.Errorf("failed to build sandbox: %w", err)
	}

	if v.GetBool("seed") {
		if err := sb.SeedDemoUsers(); err != nil {
			return fmt.Errorf("failed to seed demo users: %w", err)
		}
	}

	app := fiber.New()
	app.Use(logger.New())

	if err := fiberadapter.New(app).RegisterRoutes(sb); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	log.Printf("sandbankd listening on %s (sqli-protection=%v access-control=%v race-safe=%v)",
		v.GetString("addr"), profile.SQLInjectionProtection,
		profile.AccessControlEnforced, profile.RaceConditionSafe)

	return app.Listen(v.GetString("addr"))
}
