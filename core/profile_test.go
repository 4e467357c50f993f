package core

import "testing"

func TestProfilePresets(t *testing.T) {
	hardened := Hardened()
	if !hardened.SQLInjectionProtection || !hardened.AccessControlEnforced ||
		!hardened.RaceConditionSafe || !hardened.XSSProtection {
		t.Errorf("Hardened() left a defense off: %+v", hardened)
	}
	if hardened.PlaintextPasswords {
		t.Error("Hardened() should hash passwords")
	}
	if hardened.PasswordMinLength != 8 {
		t.Errorf("Hardened() password min length = %d, want 8", hardened.PasswordMinLength)
	}

	vulnerable := Vulnerable()
	if vulnerable.SQLInjectionProtection || vulnerable.AccessControlEnforced ||
		vulnerable.RaceConditionSafe || vulnerable.XSSProtection {
		t.Errorf("Vulnerable() left a defense on: %+v", vulnerable)
	}
	if !vulnerable.PlaintextPasswords {
		t.Error("Vulnerable() should store plaintext credentials")
	}
	if vulnerable.PasswordMinLength != DefaultPasswordMinLength {
		t.Errorf("Vulnerable() password min length = %d, want %d",
			vulnerable.PasswordMinLength, DefaultPasswordMinLength)
	}
}

func TestProfileNormalize(t *testing.T) {
	p := (&Profile{}).Normalize()

	if p.PasswordMinLength != DefaultPasswordMinLength {
		t.Errorf("Normalize() password min length = %d, want %d",
			p.PasswordMinLength, DefaultPasswordMinLength)
	}
	if p.StartingBalance != DefaultStartingBalance {
		t.Errorf("Normalize() starting balance = %d, want %d",
			p.StartingBalance, DefaultStartingBalance)
	}

	custom := (&Profile{PasswordMinLength: 12, StartingBalance: 500}).Normalize()
	if custom.PasswordMinLength != 12 || custom.StartingBalance != 500 {
		t.Errorf("Normalize() overwrote explicit values: %+v", custom)
	}
}
