package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const maskedValue = "********"

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalEnv renders the env-tagged fields of c as .env lines. Zero values
// are skipped so defaults keep applying.
func MarshalEnv(c any) (string, error) {
	return marshal(c, false)
}

// MarshalEnvMasked is MarshalEnv with every field tagged mask:"true"
// replaced by a placeholder. Use it for anything shown to a user.
func MarshalEnvMasked(c any) (string, error) {
	return marshal(c, true)
}

func marshal(c any, mask bool) (string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", fmt.Errorf("marshal env: nil %T", c)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("marshal env: %T is not a struct", c)
	}
	t := v.Type()

	var lines []string
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("env")

		if tag == "" || !field.IsExported() {
			continue
		}

		// "KEY,required,notEmpty" or "KEY"
		key, _, _ := strings.Cut(tag, ",")
		if key == "" {
			continue
		}

		val := v.Field(i)
		if isZeroValue(val) {
			continue
		}

		strVal := formatValue(val)
		if mask && field.Tag.Get("mask") == "true" {
			strVal = maskedValue
		}
		lines = append(lines, fmt.Sprintf("%s=%s", key, quote(strVal)))
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return result, nil
}

// isZeroValue checks if a reflect.Value is the zero value for its type
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func formatValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// quote wraps values godotenv would otherwise split or strip.
func quote(s string) string {
	if strings.ContainsAny(s, " #\"'\n\t") {
		return strconv.Quote(s)
	}
	return s
}
