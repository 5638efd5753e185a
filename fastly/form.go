package fastly

import (
	"net/url"
	"strconv"
)

// formValues builds an x-www-form-urlencoded body from a resource input's
// field map. Every create/update input enumerates its own field map, so
// the recognised field set per resource is closed: unknown keys cannot be
// forwarded to the server. Nil pointers are omitted entirely (never sent
// as empty values) and booleans collapse to "0"/"1" as the API expects.
func formValues(fields map[string]any) url.Values {
	form := url.Values{}
	for key, raw := range fields {
		switch v := raw.(type) {
		case string:
			form.Set(key, v)
		case int:
			form.Set(key, strconv.Itoa(v))
		case bool:
			form.Set(key, formBool(v))
		case *string:
			if v != nil {
				form.Set(key, *v)
			}
		case *int:
			if v != nil {
				form.Set(key, strconv.Itoa(*v))
			}
		case *bool:
			if v != nil {
				form.Set(key, formBool(*v))
			}
		}
	}
	return form
}

func formBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// String returns a pointer to v, for optional input fields.
func String(v string) *string {
	return &v
}

// Int returns a pointer to v, for optional input fields.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v, for optional input fields.
func Bool(v bool) *bool {
	return &v
}
