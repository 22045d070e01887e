package memutils

import (
	"reflect"

	cerrors "github.com/cockroachdb/errors"
)

// Validatable is used by the DebugValidate method to allow it to act upon
// all types with a Validate method
type Validatable interface {
	Validate() error
}

// CheckPlainData returns an error if values of type t hold anything the garbage collector has to
// trace: pointers, slices, maps, strings, interfaces, channels or functions. Values that pass can be
// stored in memory the collector does not scan and can be moved around as raw bytes.
func CheckPlainData(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		if err := CheckPlainData(t.Elem()); err != nil {
			return cerrors.Wrapf(err, "element of %s", t.String())
		}
		return nil
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if err := CheckPlainData(field.Type); err != nil {
				return cerrors.Wrapf(err, "field %s of %s", field.Name, t.String())
			}
		}
		return nil
	}

	return cerrors.Newf("type %s of kind %s is not plain data", t.String(), t.Kind().String())
}
