package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"localstore/internal/pkg/errs"
)

// forbiddenKeyChars are the characters the document store refuses inside a key.
const forbiddenKeyChars = "/.#$[]"

// maxKeyBytes is the store's limit on the UTF-8 length of a single key.
const maxKeyBytes = 768

// Key is a single segment of a document store path such as a phone number
// or an order id. The zero value is invalid.
type Key struct {
	value string
}

// NewKey validates value as a key. name is used in the returned error.
func NewKey(name, value string) (Key, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Key{}, errs.NewValueIsRequiredError(name)
	}
	if len(value) > maxKeyBytes {
		return Key{}, errs.NewValueIsOutOfRangeError(name, len(value), 1, maxKeyBytes)
	}
	if i := strings.IndexAny(value, forbiddenKeyChars); i >= 0 {
		return Key{}, errs.NewValueIsInvalidErrorWithCause(
			name,
			fmt.Errorf("%q contains forbidden character %q", value, value[i]),
		)
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return Key{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q contains a control character", value))
		}
	}
	return Key{value: value}, nil
}

// MustKey is NewKey for literals known to be valid. It panics otherwise.
func MustKey(value string) Key {
	k, err := NewKey("key", value)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) String() string {
	return k.value
}

func (k Key) IsEqual(other Key) bool {
	return k.value == other.value
}

func (k Key) IsZero() bool {
	return k.value == ""
}

// Validate fails for the zero Key.
func (k Key) Validate() error {
	if k.value == "" {
		return errs.NewValueIsRequiredError("key")
	}
	return nil
}
