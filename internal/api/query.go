package api

import (
	"net/url"
	"strconv"
)

// Query helpers. Unset values are omitted entirely; nothing is ever sent
// as an empty string.

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}

func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setID(v url.Values, key string, id *int64) {
	if id != nil {
		v.Set(key, strconv.FormatInt(*id, 10))
	}
}

func setFloat(v url.Values, key string, f *float64) {
	if f != nil {
		v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
	}
}
