package core

import "time"

// Default values applied by Normalize for zero-valued numeric flags.
const (
	DefaultPasswordMinLength = 3      // deliberately weak
	DefaultStartingBalance   = 100000 // cents ($1000.00)
)

// Profile is the protection profile: an immutable snapshot of which defenses
// are active for the lifetime of a simulation run. Every component reads it,
// none mutate it.
type Profile struct {
	SQLInjectionProtection bool  `json:"sqlInjectionProtection" mapstructure:"sql-injection-protection"`
	AccessControlEnforced  bool  `json:"accessControlEnforced" mapstructure:"access-control-enforced"`
	RaceConditionSafe      bool  `json:"raceConditionSafe" mapstructure:"race-condition-safe"`
	PlaintextPasswords     bool  `json:"plaintextPasswords" mapstructure:"plaintext-passwords"`
	PasswordMinLength      int   `json:"passwordMinLength" mapstructure:"password-min-length"`
	XSSProtection          bool  `json:"xssProtection" mapstructure:"xss-protection"`
	StartingBalance        int64 `json:"startingBalance" mapstructure:"starting-balance"`
}

// Hardened returns a profile with every defense active.
func Hardened() *Profile {
	return &Profile{
		SQLInjectionProtection: true,
		AccessControlEnforced:  true,
		RaceConditionSafe:      true,
		PlaintextPasswords:     false,
		PasswordMinLength:      8,
		XSSProtection:          true,
		StartingBalance:        DefaultStartingBalance,
	}
}

// Vulnerable returns a profile reproducing the classic flawed behavior of the
// original application: every defense off, weak password rule, plaintext
// credential storage.
func Vulnerable() *Profile {
	return &Profile{
		PlaintextPasswords: true,
		PasswordMinLength:  DefaultPasswordMinLength,
		StartingBalance:    DefaultStartingBalance,
	}
}

// Normalize fills zero-valued numeric flags with their defaults and returns
// the profile for chaining.
func (p *Profile) Normalize() *Profile {
	if p.PasswordMinLength <= 0 {
		p.PasswordMinLength = DefaultPasswordMinLength
	}
	if p.StartingBalance <= 0 {
		p.StartingBalance = DefaultStartingBalance
	}
	return p
}

// SessionConfig controls session issuance.
type SessionConfig struct {
	MaxAge time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxAge: 24 * time.Hour,
	}
}
