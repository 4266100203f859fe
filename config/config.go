// Package config loads the TOML manifests read by the hostbind tools.
//
// Two manifests exist: Bindings describes properties to install on a global
// object (read by cmd/bind), Literals describes the constant pool to
// generate (read by cmd/poolgen). Both are decoded with BurntSushi/toml and
// checked with go-playground/validator struct tags before use.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/wippyai/hostbind/errors"
)

// validate is shared; building a validator is expensive.
var validate = validator.New()

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Load("read "+path, err)
	}
	return decode(path, data, v)
}

func decode(what string, data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		return errors.ParseFailed(what, err)
	}
	if err := validate.Struct(v); err != nil {
		return errors.Wrap(errors.PhaseValidate, errors.KindInvalidInput, err, what)
	}
	return nil
}
