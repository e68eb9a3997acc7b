package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/poratu/pluginmeta/internal/changelog"
)

// ValidationError points at the offending place in a config file. Line is
// zero when the problem is not tied to a position.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("%s:%d:%d: field '%s': %s", e.FilePath, e.Line, e.Column, e.Field, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// ValidateProjectFile checks that the YAML project config at path parses and
// uses only known keys. A missing or blank file is valid.
func ValidateProjectFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		line, msg := splitYAMLError(err)
		return &ValidationError{FilePath: path, Line: line, Column: 1, Message: msg}
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return &ValidationError{
			FilePath: path,
			Line:     root.Line,
			Column:   root.Column,
			Message:  "expected a mapping of config keys",
		}
	}

	known := make(map[string]bool)
	for _, k := range Keys() {
		known[k] = true
	}
	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i]
		if !known[key.Value] {
			return &ValidationError{
				FilePath: path,
				Line:     key.Line,
				Column:   key.Column,
				Field:    key.Value,
				Message:  "unknown key (valid keys: " + strings.Join(Keys(), ", ") + ")",
			}
		}
	}
	return nil
}

// splitYAMLError separates the line number from a yaml.v3 error such as
// "yaml: line 5: did not find expected key".
func splitYAMLError(err error) (int, string) {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return 0, strings.Join(typeErr.Errors, "; ")
	}

	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	rest, ok := strings.CutPrefix(msg, "line ")
	if !ok {
		return 0, msg
	}
	num, text, ok := strings.Cut(rest, ": ")
	if !ok {
		return 0, msg
	}
	line, convErr := strconv.Atoi(num)
	if convErr != nil {
		return 0, msg
	}
	return line, text
}

// ValidateConfigValues checks cfg against its validate tags. Field names in
// errors are the config key names.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{
			FilePath: filePath,
			Field:    fieldErrs[0].Field(),
			Message:  describeFieldError(fieldErrs[0]),
		}
	}
	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "nefield":
		// Param is the Go field name; config keys start lower case.
		p := fe.Param()
		return "must differ from " + strings.ToLower(p[:1]) + p[1:]
	default:
		return "failed validation: " + fe.Tag()
	}
}

// remediationFor returns fix hints for the field a ValidationError names.
func remediationFor(err error) []string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	switch ve.Field {
	case "changeNotesFormat":
		return []string{"Valid changeNotesFormat values: " + strings.Join(changelog.Formats(), ", ")}
	case "descriptionStart", "descriptionEnd":
		return []string{"Set descriptionStart and descriptionEnd to two different whole lines of the readme"}
	case "readme", "changelog":
		return []string{fmt.Sprintf("Set %s to a path relative to the project directory, or remove it to use the default", ve.Field)}
	default:
		return []string{"Run 'pluginmeta config show' to see the effective values"}
	}
}
