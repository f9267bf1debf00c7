package service

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/provenio/registry/cmd/registryd/models"
)

// Filter evaluates list-filter expressions using CEL. Expressions see one
// variable, `asset`, bound to the asset's JSON document, e.g.
//
//	asset.status == "ACTIVE" && asset.asset_type == "IMAGE"
//
// Compiled programs are cached per expression.
type Filter struct {
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewFilter creates a new filter with an empty program cache
func NewFilter() *Filter {
	return &Filter{
		cache: make(map[string]cel.Program),
	}
}

// Match reports whether asset satisfies the expression
func (f *Filter) Match(expr string, asset *models.Asset) (bool, error) {
	f.mu.RLock()
	prg, exists := f.cache[expr]
	f.mu.RUnlock()

	if !exists {
		var err error
		prg, err = f.compile(expr)
		if err != nil {
			return false, err
		}

		f.mu.Lock()
		f.cache[expr] = prg
		f.mu.Unlock()
	}

	// Bind the asset through its JSON document so expressions address the
	// same field names the API serves
	doc, err := assetDocument(asset)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(map[string]interface{}{
		"asset": doc,
	})
	if err != nil {
		return false, fmt.Errorf("filter evaluation error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return boolean, got %T", out.Value())
	}

	return result, nil
}

// compile compiles a CEL filter expression
func (f *Filter) compile(expr string) (cel.Program, error) {
	env, err := cel.NewEnv(
		cel.Variable("asset", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("filter compilation error: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return prg, nil
}

func assetDocument(asset *models.Asset) (map[string]interface{}, error) {
	data, err := json.Marshal(asset)
	if err != nil {
		return nil, fmt.Errorf("failed to encode asset for filter: %w", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode asset for filter: %w", err)
	}

	return doc, nil
}
