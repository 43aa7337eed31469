// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/parcel-service"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/pack": {
            "post": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "description": "Packs manually entered items into the smallest bounding box found. Containers in the body replace the server hypotheses.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Packing"],
                "summary": "Pack items",
                "parameters": [
                    {"description": "Items to pack", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/pack/fit": {
            "post": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "description": "Reports whether the items fit inside the given container.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Packing"],
                "summary": "Check fit",
                "parameters": [
                    {"description": "Items and container", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/pack/cart": {
            "post": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "description": "Expands catalog cart lines into items and packs them.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Packing"],
                "summary": "Pack a cart",
                "parameters": [
                    {"description": "Cart lines", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CartRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "Category filter", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/products/categories": {
            "get": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}}
                }
            }
        },
        "/api/containers": {
            "get": {
                "security": [{"ApiKeyAuth": []}, {"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List container hypotheses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SuccessResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "ItemRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Plush Bear"},
                "names": {"type": "array", "items": {"type": "string"}},
                "category": {"type": "string", "example": "toys"},
                "length_cm": {"type": "number", "example": 20},
                "width_cm": {"type": "number", "example": 15},
                "height_cm": {"type": "number", "example": 10},
                "weight_g": {"type": "integer", "example": 150},
                "quantity": {"type": "integer", "example": 2}
            }
        },
        "ContainerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Nekoposu"},
                "length_cm": {"type": "number", "example": 31.2},
                "width_cm": {"type": "number", "example": 22.8},
                "height_cm": {"type": "number", "example": 3}
            }
        },
        "PackRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/ItemRequest"}},
                "containers": {"type": "array", "items": {"$ref": "#/definitions/ContainerRequest"}}
            }
        },
        "FitRequest": {
            "type": "object",
            "required": ["items", "container"],
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/ItemRequest"}},
                "container": {"$ref": "#/definitions/ContainerRequest"}
            }
        },
        "CartLine": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "integer", "example": 1},
                "quantity": {"type": "integer", "example": 2}
            }
        },
        "CartRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/CartLine"}}
            }
        },
        "SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid_request"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"},
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Parcel Service API",
	Description:      "Estimates the smallest parcel a set of items packs into.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
