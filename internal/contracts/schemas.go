package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"

	"property-service/internal/core/domain"
	"property-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const schemasRoot = "requests"

// Ключи схем тел запросов
const (
	OwnerRequestV1         = "OwnerRequest/1.0.0"
	PropertyRequestV1      = "PropertyRequest/1.0.0"
	PropertyImageRequestV1 = "PropertyImageRequest/1.0.0"
	PropertyTraceRequestV1 = "PropertyTraceRequest/1.0.0"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	if err := loadSchemas(schemas.SchemasFS); err != nil {
		log.Fatalf("failed to load request schemas: %v", err)
	}
}

func loadSchemas(fsys fs.FS) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	// Сначала добавляем все схемы как ресурсы, чтобы работали $ref между ними
	err := fs.WalkDir(fsys, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	sort.Strings(paths)
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			return fmt.Errorf("compile schema %s: %w", path, err)
		}
		key := generateKeyFromPath(path)
		if key == "" {
			return fmt.Errorf("schema path %s does not match <name>/v<N>.json", path)
		}
		compiledSchemas[key] = schema
	}
	return nil
}

// generateKeyFromPath преобразует путь вида "requests/property-trace/v1.json"
// в ключ вида "PropertyTraceRequest/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, schemasRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)

	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Request")

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return name.String() + "/" + version
}

// ValidateRequest проверяет тело запроса по схеме.
// Нарушения схемы возвращаются как *domain.ValidationError.
func ValidateRequest(key string, body []byte) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema %q not found", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.NewValidationError([]string{"Request body is not valid JSON"})
	}

	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("JSON schema validation failed: %w", err)
		}
		return domain.NewValidationError(collectProblems(ve))
	}
	return nil
}

// collectProblems собирает листовые ошибки в виде "<путь>: <сообщение>"
func collectProblems(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{location + ": " + ve.Message}
	}
	var problems []string
	for _, cause := range ve.Causes {
		problems = append(problems, collectProblems(cause)...)
	}
	return problems
}
