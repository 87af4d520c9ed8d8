package commands

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

var (
	errNoFields     = zerr.New("no fields given, use --data or --set")
	errInvalidData  = zerr.New("--data must be a JSON object")
	errInvalidField = zerr.New("--set must look like key=value")
	errInvalidJSON  = zerr.New("--set-json value must be valid JSON")
)

func addBodyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "", "JSON object with the record fields; @file reads a file, @- reads stdin")
	cmd.Flags().StringArrayP("set", "s", nil, "Set one string field as key=value")
	cmd.Flags().StringArray("set-json", nil, "Set one field as key=<JSON value>, e.g. I_Do='[\"demo\"]'")
}

func bodyFromFlags(cmd *cobra.Command) ([]byte, error) {
	data, _ := cmd.Flags().GetString("data")
	sets, _ := cmd.Flags().GetStringArray("set")
	jsonSets, _ := cmd.Flags().GetStringArray("set-json")
	return buildBody(data, sets, jsonSets, cmd.InOrStdin())
}

// buildBody merges a --data object with --set and --set-json overrides into one
// JSON object. --set values are always strings.
func buildBody(data string, sets, jsonSets []string, stdin io.Reader) ([]byte, error) {
	if data == "" && len(sets) == 0 && len(jsonSets) == 0 {
		return nil, errNoFields
	}

	fields := map[string]any{}
	if data != "" {
		raw, err := readData(data, stdin)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, zerr.Wrap(err, errInvalidData.Error())
		}
	}

	for _, set := range sets {
		key, value, err := splitField(set)
		if err != nil {
			return nil, err
		}
		fields[key] = value
	}
	for _, set := range jsonSets {
		key, value, err := splitField(set)
		if err != nil {
			return nil, err
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return nil, zerr.With(zerr.Wrap(err, errInvalidJSON.Error()), "field", key)
		}
		fields[key] = v
	}

	return json.Marshal(fields)
}

func splitField(set string) (string, string, error) {
	key, value, ok := strings.Cut(set, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", zerr.With(errInvalidField, "set", set)
	}
	return key, value, nil
}

func readData(data string, stdin io.Reader) ([]byte, error) {
	switch {
	case data == "@-":
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to read --data from stdin")
		}
		return raw, nil
	case strings.HasPrefix(data, "@"):
		path := strings.TrimPrefix(data, "@")
		//nolint:gosec // path is given by the user on the command line
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read --data file"), "path", path)
		}
		return raw, nil
	default:
		return []byte(data), nil
	}
}
