package verify

import (
	"math/big"
	"testing"
)

func TestVerifyKnownIdentities(t *testing.T) {
	t.Parallel()
	// Known perfect-power identities with all exponents >= 3. These are not
	// conjecture counter-examples: each pair shares a common factor.
	tests := []struct {
		name       string
		a, x, b, y uint32
		wantC      int64
		wantZ      uint32
	}{
		{"3^3+6^3=3^5", 3, 3, 6, 3, 3, 5},
		{"7^6+7^7=98^3", 7, 6, 7, 7, 98, 3},
		{"2^9+2^9=4^5", 2, 9, 2, 9, 4, 5},
		{"6^3+3^3=3^5", 6, 3, 3, 3, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, ok := Verify(tt.a, tt.x, tt.b, tt.y, 300)
			if !ok {
				t.Fatalf("Verify(%d,%d,%d,%d) = false, want identity", tt.a, tt.x, tt.b, tt.y)
			}
			if conf.C.Cmp(big.NewInt(tt.wantC)) != 0 || conf.Z != tt.wantZ {
				t.Errorf("Verify() = (%v, %d), want (%d, %d)", conf.C, conf.Z, tt.wantC, tt.wantZ)
			}
		})
	}
}

func TestVerifyRejectsNonIdentities(t *testing.T) {
	t.Parallel()
	// None of these sums is a perfect power with exponent >= 3.
	tests := []struct {
		a, x, b, y uint32
	}{
		{2, 3, 3, 3},   // 8 + 27 = 35
		{2, 3, 2, 4},   // 8 + 16 = 24
		{10, 4, 3, 5},  // 10000 + 243 = 10243
		{12, 3, 17, 3}, // 1728 + 4913 = 6641 = 29 * 229
	}
	for _, tt := range tests {
		if conf, ok := Verify(tt.a, tt.x, tt.b, tt.y, 300); ok {
			t.Errorf("Verify(%d,%d,%d,%d) = (%v, %d), want no identity",
				tt.a, tt.x, tt.b, tt.y, conf.C, conf.Z)
		}
	}
}

func TestVerifyRespectsMaxPow(t *testing.T) {
	t.Parallel()
	// 3^3 + 6^3 = 3^5 needs z = 5; capping maxPow below that hides it.
	if _, ok := Verify(3, 3, 6, 3, 4); ok {
		t.Error("Verify() found an identity beyond the exponent bound")
	}
}
