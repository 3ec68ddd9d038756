package validate

import (
	"strings"
	"testing"

	"github.com/pr1me-admin/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStruct_Credentials(t *testing.T) {
	cases := []struct {
		name  string
		creds domain.Credentials
		ok    bool
	}{
		{"valid", domain.Credentials{UserName: "admin_user", Password: "secret1"}, true},
		{"dots allowed", domain.Credentials{UserName: "a.b.c.d", Password: "secret1"}, true},
		{"too short", domain.Credentials{UserName: "admin", Password: "secret1"}, false},
		{"too long", domain.Credentials{UserName: "a" + strings.Repeat("b", 20), Password: "secret1"}, false},
		{"leading digit", domain.Credentials{UserName: "1admin_user", Password: "secret1"}, false},
		{"leading underscore", domain.Credentials{UserName: "_adminuser", Password: "secret1"}, false},
		{"illegal char", domain.Credentials{UserName: "admin-user", Password: "secret1"}, false},
		{"short password", domain.Credentials{UserName: "admin_user", Password: "12345"}, false},
		{"empty", domain.Credentials{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(&tc.creds)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStruct_OtpCode(t *testing.T) {
	assert.NoError(t, Struct(&domain.OtpCode{OTP: "123456"}))
	assert.NoError(t, Struct(&domain.OtpCode{OTP: "000000"}))
	assert.Error(t, Struct(&domain.OtpCode{OTP: "12a456"}))
	assert.Error(t, Struct(&domain.OtpCode{OTP: "12345"}))
	assert.Error(t, Struct(&domain.OtpCode{OTP: "1234567"}))
	assert.Error(t, Struct(&domain.OtpCode{OTP: "-12345"}))
	assert.Error(t, Struct(&domain.OtpCode{OTP: "12.456"}))
	assert.Error(t, Struct(&domain.OtpCode{OTP: ""}))
}

func TestStruct_MessageNamesField(t *testing.T) {
	err := Struct(&domain.OtpCode{OTP: "abc"})
	assert.ErrorContains(t, err, "field 'OTP' failed 'otp'")
}
