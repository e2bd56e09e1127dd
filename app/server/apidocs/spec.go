package apidocs

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// Spec 加载并校验内嵌的 OpenAPI 文档
func Spec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}

	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	return doc, nil
}

// SpecJSON 返回可以直接交给 Doc 的 JSON，serverURL 非空时覆盖 servers
func SpecJSON(ctx context.Context, serverURL string) ([]byte, error) {
	doc, err := Spec(ctx)
	if err != nil {
		return nil, err
	}

	if serverURL != "" {
		doc.Servers = openapi3.Servers{{URL: serverURL}}
	}

	return doc.MarshalJSON()
}
