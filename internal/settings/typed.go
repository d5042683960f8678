package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate runs struct tag validation on v. Slices and maps are validated
// element by element.
func Validate(v interface{}) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	var err error
	switch rv.Kind() {
	case reflect.Struct:
		err = validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array, reflect.Map:
		err = validate.Var(rv.Interface(), "dive")
	default:
		return nil
	}
	return formatValidation(err)
}

func formatValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", field, fe.Tag()))
	}
	return fmt.Errorf("invalid setting: %s", strings.Join(msgs, "; "))
}

// Decode unmarshals raw onto dst, leaving fields absent from raw untouched,
// then validates the result. A JSON null keeps dst as is.
func Decode(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid setting: %w", err)
	}
	return Validate(dst)
}

// Load reads key from store and overlays it onto defaults. A missing key
// yields defaults unchanged. Slice values replace defaults wholesale.
func Load[T any](ctx context.Context, store Store, key string, defaults T) (T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return defaults, nil
	}
	if err != nil {
		return defaults, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return defaults, nil
	}

	var value T
	if reflect.TypeOf(defaults) == nil || reflect.TypeOf(defaults).Kind() != reflect.Slice {
		value = defaults
	}
	if err := Decode(raw, &value); err != nil {
		return defaults, fmt.Errorf("setting %s: %w", key, err)
	}
	return value, nil
}

// Save marshals value and upserts it under key.
func Save(ctx context.Context, store Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	return store.Upsert(ctx, key, raw)
}

// Registry maps each known key to the Go type its value must decode into.
type Registry struct {
	schemas map[string]func() interface{}
}

func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]func() interface{})}
}

// Register binds key to a constructor returning a pointer to a fresh value.
func (r *Registry) Register(key string, newValue func() interface{}) {
	r.schemas[key] = newValue
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Check decodes raw against the schema registered for key.
func (r *Registry) Check(key string, raw json.RawMessage) error {
	newValue, ok := r.schemas[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return fmt.Errorf("invalid setting: value is required")
	}
	return Decode(raw, newValue())
}
