package crypto

import (
	"encoding/hex"
	"testing"
)

func TestGenerateHashedToken(t *testing.T) {
	// Act
	pair, err := GenerateHashedToken()

	// Assert
	if err != nil {
		t.Fatalf("GenerateHashedToken() error = %v", err)
	}
	if pair.Token == "" {
		t.Error("GenerateHashedToken() returned empty token")
	}
	if pair.Hash != HashToken(pair.Token) {
		t.Error("GenerateHashedToken() hash does not match HashToken(token)")
	}
	if pair.Token == pair.Hash {
		t.Error("token and hash should differ")
	}
}

func TestGenerateHashedToken_Unique(t *testing.T) {
	pair1, _ := GenerateHashedToken()
	pair2, _ := GenerateHashedToken()

	if pair1.Token == pair2.Token {
		t.Error("two generated tokens should not collide")
	}
}

func TestHashToken(t *testing.T) {
	hash := HashToken("some-token")

	if hash != HashToken("some-token") {
		t.Error("HashToken() should be deterministic")
	}
	if len(hash) != 64 {
		t.Errorf("HashToken() length = %d, want 64 hex chars", len(hash))
	}
	if _, err := hex.DecodeString(hash); err != nil {
		t.Errorf("HashToken() is not valid hex: %v", err)
	}
}

func TestVerifyToken(t *testing.T) {
	pair, _ := GenerateHashedToken()

	tests := []struct {
		name    string
		token   string
		hash    string
		wantOk  bool
		wantErr bool
	}{
		{name: "valid token", token: pair.Token, hash: pair.Hash, wantOk: true},
		{name: "wrong token", token: "wrong", hash: pair.Hash, wantOk: false},
		{name: "empty token", token: "", hash: pair.Hash, wantErr: true},
		{name: "empty hash", token: pair.Token, hash: "", wantErr: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			ok, err := VerifyToken(test.token, test.hash)
			if (err != nil) != test.wantErr {
				t.Fatalf("VerifyToken() error = %v, wantErr %v", err, test.wantErr)
			}
			if !test.wantErr && ok != test.wantOk {
				t.Errorf("VerifyToken() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}
