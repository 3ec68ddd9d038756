// Package normalize turns raw form input into the canonical shape used for
// validation and for calls to the backend.
package normalize

import (
	"reflect"
	"strings"
)

// stripped are the characters removed from every submitted string field.
var stripped = strings.NewReplacer(
	`"`, "",
	`'`, "",
	"`", "",
	`\`, "",
	"<", "",
	">", "",
	"\x00", "",
)

// EscapeString removes quoting and markup characters, then trims surrounding
// whitespace. Removal happens first so the result is a fixed point.
func EscapeString(s string) string {
	return strings.TrimSpace(stripped.Replace(s))
}

// EscapeFormData returns a copy of data with EscapeString applied to every
// exported string field. Non-struct values are returned unchanged, except a
// bare string which is escaped directly.
func EscapeFormData[T any](data T) T {
	v := reflect.ValueOf(&data).Elem()
	switch v.Kind() {
	case reflect.String:
		v.SetString(EscapeString(v.String()))
	case reflect.Struct:
		escapeFields(v)
	}
	return data
}

func escapeFields(v reflect.Value) {
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(EscapeString(f.String()))
		case reflect.Struct:
			escapeFields(f)
		}
	}
}

// DefaultEmailDomain is used when no domain is configured.
const DefaultEmailDomain = "pr1me.local"

// EmailMapper derives the login address of an admin from the username.
type EmailMapper struct {
	Domain string
}

func NewEmailMapper(domain string) EmailMapper {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		domain = DefaultEmailDomain
	}
	return EmailMapper{Domain: domain}
}

// UserNameToEmail maps "Admin_User" to "admin_user@<domain>". An input that is
// already an address on the mapped domain is returned lower-cased, so the
// mapping is idempotent.
func (m EmailMapper) UserNameToEmail(userName string) string {
	local := strings.ToLower(strings.TrimSpace(userName))
	if strings.HasSuffix(local, "@"+m.domain()) {
		return local
	}
	return local + "@" + m.domain()
}

func (m EmailMapper) domain() string {
	if m.Domain == "" {
		return DefaultEmailDomain
	}
	return m.Domain
}
