package otp

import "testing"

func TestGenerateCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains a non-digit", code)
			}
		}
		if code < "100000" || code > "999999" {
			t.Fatalf("code %q outside [100000, 999999]", code)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("generator returned the same code 200 times")
	}
}
