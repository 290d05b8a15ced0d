// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["buckets"],
                "summary": "List buckets",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Bucket"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/oauth/login": {
            "get": {
                "description": "Redirects to the Google consent screen. A state cookie guards the callback.",
                "tags": ["auth"],
                "summary": "Start Google sign-in",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/oauth/callback": {
            "get": {
                "description": "Exchanges the authorization code and returns a bearer token for this API.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Finish Google sign-in",
                "parameters": [
                    {"type": "string", "description": "authorization code", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "state echoed by Google", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/presign/{bucket}/{object}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["presign"],
                "summary": "Issue a public link",
                "parameters": [
                    {"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true},
                    {"type": "string", "description": "stored object name", "name": "object", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PresignedURL"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["presign"],
                "summary": "Revoke a public link",
                "parameters": [
                    {"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true},
                    {"type": "string", "description": "stored object name", "name": "object", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/public/{bucket}/{object}": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["presign"],
                "summary": "Download through a public link",
                "parameters": [
                    {"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true},
                    {"type": "string", "description": "stored object name", "name": "object", "in": "path", "required": true},
                    {"type": "string", "description": "public token", "name": "token", "in": "query", "required": true},
                    {"type": "boolean", "description": "serve as attachment", "name": "download", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/{bucket}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["objects"],
                "summary": "List objects in a bucket",
                "parameters": [{"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ObjectListing"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["buckets"],
                "summary": "Create a bucket",
                "parameters": [{"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["buckets"],
                "summary": "Delete a bucket and its objects",
                "parameters": [{"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/{bucket}/{object}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/octet-stream"],
                "tags": ["objects"],
                "summary": "Stream an object",
                "parameters": [
                    {"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true},
                    {"type": "string", "description": "stored object name", "name": "object", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Stored under an obfuscated name that keeps the extension of {object}.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["objects"],
                "summary": "Upload an object",
                "parameters": [
                    {"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true},
                    {"type": "string", "description": "requested object name", "name": "object", "in": "path", "required": true},
                    {"type": "file", "description": "content", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PutResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["objects"],
                "summary": "Delete an object",
                "parameters": [
                    {"type": "string", "description": "bucket name", "name": "bucket", "in": "path", "required": true},
                    {"type": "string", "description": "stored object name", "name": "object", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "model.Bucket": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "drive_folder_id": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "model.Object": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "drive_file_id": {"type": "string"},
                "expires_at": {"type": "string"},
                "file_name": {"type": "string"},
                "id": {"type": "string"},
                "mime_type": {"type": "string"},
                "original_file_name": {"type": "string"},
                "public_token": {"type": "string"}
            }
        },
        "service.ObjectListing": {
            "type": "object",
            "properties": {
                "bucket": {"type": "string"},
                "files": {"type": "array", "items": {"$ref": "#/definitions/model.Object"}}
            }
        },
        "service.PresignedURL": {
            "type": "object",
            "properties": {"expires_at": {"type": "string"}, "url": {"type": "string"}}
        },
        "service.PutResult": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Drive S3 Gateway",
	Description:      "S3-style buckets and objects stored in Google Drive.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
