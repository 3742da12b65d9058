// Package gqlapi exposes a graphql-go/graphql schema over a concrete
// engine.Engine[ingest.WebPage] instantiation, built by hand (no codegen)
// the way the teacher's pkg/graphql/schema.go + resolver.go build LauraDB's
// object/field schema. GraphQL needs concrete field names, so unlike
// pkg/httpapi and pkg/wsapi (which stay generic over engine.Engine[R]),
// gqlapi is only ever instantiated against WebPage - spec.md §8 Scenario F.
package gqlapi

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/mnohosten/searchidx/pkg/engine"
	"github.com/mnohosten/searchidx/pkg/ingest"
)

// webPageType is the GraphQL object type mirroring ingest.WebPage.
var webPageType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "WebPage",
	Description: "A structured search resource: a URL, its title, and the excerpt that was indexed",
	Fields: graphql.Fields{
		"url": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "Page URL",
		},
		"title": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "Page title",
		},
		"excerpt": &graphql.Field{
			Type:        graphql.NewNonNull(graphql.String),
			Description: "The indexed excerpt text",
		},
	},
})

// resourceInputType is the input counterpart accepted by the insert
// mutation.
var resourceInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name:        "ResourceInput",
	Description: "A webpage record to index",
	Fields: graphql.InputObjectConfigFieldMap{
		"url": &graphql.InputObjectFieldConfig{
			Type: graphql.String,
		},
		"title": &graphql.InputObjectFieldConfig{
			Type: graphql.String,
		},
		"excerpt": &graphql.InputObjectFieldConfig{
			Type: graphql.NewNonNull(graphql.String),
		},
	},
})

// Schema builds the GraphQL schema for eng: a single root query field
// `search(query: String!, limit: Int, scorer: String): [WebPage]` and a single
// root mutation field `insert(text: String!, resource: ResourceInput!): Boolean!`.
func Schema(eng *engine.Engine[ingest.WebPage]) (graphql.Schema, error) {
	resolver := NewResolver(eng)

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Query",
		Description: "Root query type for searchidx",
		Fields: graphql.Fields{
			"search": &graphql.Field{
				Type:        graphql.NewList(webPageType),
				Description: "Rank resources by relevance to query",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.String),
						Description: "The search query text",
					},
					"limit": &graphql.ArgumentConfig{
						Type:        graphql.Int,
						Description: "Maximum number of results to return",
					},
					"scorer": &graphql.ArgumentConfig{
						Type:        graphql.String,
						Description: "Scoring mode: \"tfidf\" (default) or \"bm25\"",
					},
				},
				Resolve: resolver.Search,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Mutation",
		Description: "Root mutation type for searchidx",
		Fields: graphql.Fields{
			"insert": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Boolean),
				Description: "Index a webpage resource",
				Args: graphql.FieldConfigArgument{
					"text": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(graphql.String),
						Description: "Text to tokenize and index (usually the resource's excerpt)",
					},
					"resource": &graphql.ArgumentConfig{
						Type:        graphql.NewNonNull(resourceInputType),
						Description: "The webpage record to store and later return from search",
					},
				},
				Resolve: resolver.Insert,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("gqlapi: building schema: %w", err)
	}
	return schema, nil
}
