package config

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	liberrors "github.com/matzehuels/libra/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LIBRA_"

// ApplyEnv overrides fields from LIBRA_* variables found by lookup. Each
// leaf field names its variable, without the prefix, in an env tag.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	return walkEnv(reflect.ValueOf(c).Elem(), func(name string, field reflect.Value) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		if err := setField(field, v); err != nil {
			return liberrors.Wrap(liberrors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
		}
		return nil
	})
}

var textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// walkEnv calls fn for every tagged leaf of v. Nested config sections are
// descended into; a leaf is any field that is not a plain struct or that
// decodes itself from text.
func walkEnv(v reflect.Value, fn func(name string, field reflect.Value) error) error {
	t := v.Type()
	for i := range t.NumField() {
		sf, field := t.Field(i), v.Field(i)
		if field.Kind() == reflect.Struct && !reflect.PointerTo(sf.Type).Implements(textUnmarshaler) {
			if err := walkEnv(field, fn); err != nil {
				return err
			}
			continue
		}
		name := sf.Tag.Get("env")
		if name == "" {
			continue
		}
		if err := fn(name, field); err != nil {
			return err
		}
	}
	return nil
}

func setField(field reflect.Value, v string) error {
	if u, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(v))
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(v)
	case reflect.Int:
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		field.SetFloat(n)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
