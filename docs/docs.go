// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/api/main.go` after changing annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Healthcheck", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/credentials"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/anime/top/{list}": {
            "get": {"tags": ["anime"], "summary": "Catalog list", "produces": ["application/json"],
                "parameters": [{"type": "string", "enum": ["popular", "airing", "now", "movies"], "name": "list", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}}
        },
        "/anime/search": {
            "get": {"tags": ["anime"], "summary": "Search anime", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}, {"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/anime/{id}": {
            "get": {"tags": ["anime"], "summary": "Anime details", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/anime/{id}/related": {
            "get": {"tags": ["anime"], "summary": "Community recommendations for an anime", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/anime/{id}/similar": {
            "get": {"tags": ["anime"], "summary": "Anime similar to another one", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/watchlist": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["watchlist"], "summary": "Get watchlist", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["watchlist"], "summary": "Add anime to watchlist", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/watchlist/{malId}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["watchlist"], "summary": "Update status or rating", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "malId", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["watchlist"], "summary": "Remove anime from watchlist", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "malId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/recommendations": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["recommendations"], "summary": "Recommendations for the current user", "produces": ["application/json"],
                "parameters": [{"type": "string", "enum": ["content", "collaborative", "hybrid"], "name": "type", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "503": {"description": "Service Unavailable"}}}
        },
        "/recommendations/insights": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["recommendations"], "summary": "Preference insights for the current user", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/recommendations/ws": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["recommendations"], "summary": "Recommendations with progress (WebSocket)",
                "parameters": [{"type": "string", "name": "type", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}, {"type": "string", "name": "token", "in": "query"}],
                "responses": {"101": {"description": "Switching Protocols"}}}
        }
    },
    "definitions": {
        "credentials": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AnimeGpt API",
	Description:      "Anime catalog, watchlists and personalised recommendations",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
