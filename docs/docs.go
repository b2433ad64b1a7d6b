// Package docs holds the OpenAPI description served at /swagger.
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
        "/rooms": {
            "post": {
                "tags": ["Room"],
                "summary": "Create new room",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.CreateRoomRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}": {
            "get": {
                "tags": ["Room"],
                "summary": "Get room",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/join": {
            "post": {
                "tags": ["Room"],
                "summary": "Join a room",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/http.JoinRoomRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/bots": {
            "post": {
                "tags": ["Room"],
                "summary": "Add a bot",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/select": {
            "post": {
                "tags": ["Game"],
                "summary": "Select a piece",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.SelectRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/move": {
            "post": {
                "tags": ["Game"],
                "summary": "Player makes a move",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.MoveRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/roll": {
            "post": {
                "tags": ["Game"],
                "summary": "Roll the die",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.PlayerRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/toss": {
            "post": {
                "tags": ["Game"],
                "summary": "Toss the coin",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.PlayerRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/promote": {
            "post": {
                "tags": ["Game"],
                "summary": "Promote a pawn",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.PromoteRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/reset": {
            "post": {
                "tags": ["Game"],
                "summary": "Reset the game",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/http.PlayerRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/bot-move": {
            "post": {
                "tags": ["Game"],
                "summary": "Let bot make its move",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/fen": {
            "get": {
                "tags": ["Game"],
                "summary": "Export FEN",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/rooms/{code}/record": {
            "get": {
                "tags": ["Game"],
                "summary": "Persisted game record",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/config": {
            "get": {
                "tags": ["Config"],
                "summary": "Get server configuration",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/healthz": {
            "get": {
                "tags": ["Config"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        }
    },
    "definitions": {
        "http.CreateRoomRequest": {
            "type": "object",
            "properties": {
                "playerName": {"type": "string"},
                "variant": {"type": "string", "enum": ["classic", "coin_toss", "dice"]},
                "fen": {"type": "string"},
                "withBot": {"type": "boolean"}
            }
        },
        "http.JoinRoomRequest": {
            "type": "object",
            "properties": {"playerName": {"type": "string"}}
        },
        "http.PlayerRequest": {
            "type": "object",
            "required": ["playerId"],
            "properties": {"playerId": {"type": "string"}}
        },
        "http.SelectRequest": {
            "type": "object",
            "required": ["playerId", "square"],
            "properties": {"playerId": {"type": "string"}, "square": {"type": "string", "example": "e2"}}
        },
        "http.MoveRequest": {
            "type": "object",
            "required": ["playerId", "from", "to"],
            "properties": {
                "playerId": {"type": "string"},
                "from": {"type": "string", "example": "e2"},
                "to": {"type": "string", "example": "e4"}
            }
        },
        "http.PromoteRequest": {
            "type": "object",
            "required": ["playerId", "square"],
            "properties": {
                "playerId": {"type": "string"},
                "square": {"type": "string", "example": "e8"},
                "piece": {"type": "string", "enum": ["queen", "rook", "bishop", "knight"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Chance Chess API",
	Description:      "REST and WebSocket API for chess with coin-toss and dice turn variants (Go + Gin)",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
