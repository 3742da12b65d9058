package gqlapi

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mnohosten/searchidx/pkg/engine"
	"github.com/mnohosten/searchidx/pkg/ingest"
)

// Resolver binds the GraphQL schema's Query/Mutation fields to one Engine.
type Resolver struct {
	engine *engine.Engine[ingest.WebPage]
}

// NewResolver creates a Resolver over eng.
func NewResolver(eng *engine.Engine[ingest.WebPage]) *Resolver {
	return &Resolver{engine: eng}
}

// Search resolves the `search` query field.
func (r *Resolver) Search(p graphql.ResolveParams) (interface{}, error) {
	query, ok := p.Args["query"].(string)
	if !ok {
		return nil, fmt.Errorf("query argument is required")
	}

	scorer, _ := p.Args["scorer"].(string)

	var results []ingest.WebPage
	if scorer == "bm25" {
		results = r.engine.SearchBM25(query)
	} else {
		results = r.engine.Search(query)
	}

	if limit, ok := p.Args["limit"].(int); ok && limit >= 0 && limit < len(results) {
		results = results[:limit]
	}

	return results, nil
}

// Insert resolves the `insert` mutation field.
func (r *Resolver) Insert(p graphql.ResolveParams) (interface{}, error) {
	text, ok := p.Args["text"].(string)
	if !ok {
		return false, fmt.Errorf("text argument is required")
	}

	resourceArg, ok := p.Args["resource"].(map[string]interface{})
	if !ok {
		return false, fmt.Errorf("resource argument is required")
	}

	resource := ingest.WebPage{
		URL:     stringField(resourceArg, "url"),
		Title:   stringField(resourceArg, "title"),
		Excerpt: stringField(resourceArg, "excerpt"),
	}

	if err := r.engine.InsertChecked(resource, text); err != nil {
		return false, err
	}
	return true, nil
}

func stringField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}
