// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/launchrun/launchrun/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed launchfile_schema.cue
var launchFileSchema []byte

type (
	launchFile struct {
		Launches []rawLaunch `json:"launches" toml:"launches" yaml:"launches"`
	}

	rawLaunch struct {
		Name    string            `json:"name" toml:"name" yaml:"name"`
		Runner  string            `json:"runner" toml:"runner" yaml:"runner"`
		Command []string          `json:"command" toml:"command" yaml:"command"`
		Script  string            `json:"script" toml:"script" yaml:"script"`
		Workdir string            `json:"workdir" toml:"workdir" yaml:"workdir"`
		Env     map[string]string `json:"env" toml:"env" yaml:"env"`
		Debug   *rawDebug         `json:"debug" toml:"debug" yaml:"debug"`
	}

	rawDebug struct {
		Command []string          `json:"command" toml:"command" yaml:"command"`
		Script  string            `json:"script" toml:"script" yaml:"script"`
		Env     map[string]string `json:"env" toml:"env" yaml:"env"`
	}

	decoder func(data []byte, path string) (*launchFile, error)
)

var decoders = map[string]decoder{
	".cue":  decodeCUE,
	".toml": decodeTOML,
	".yaml": decodeYAML,
	".yml":  decodeYAML,
}

// isLaunchFile reports whether name has a supported extension.
func isLaunchFile(name string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(name))]
	return ok
}

func readLaunchFile(path string) (*launchFile, error) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch file at %s: %w", path, err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	return dec(data, path)
}

func decodeCUE(data []byte, path string) (*launchFile, error) {
	result, err := cueutil.Decode[launchFile](launchFileSchema, data, "#LaunchFile", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

func decodeTOML(data []byte, path string) (*launchFile, error) {
	var lf launchFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lf); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %s", path, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &lf, nil
}

func decodeYAML(data []byte, path string) (*launchFile, error) {
	var lf launchFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&lf); err != nil {
		if errors.Is(err, io.EOF) {
			return &lf, nil
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &lf, nil
}
