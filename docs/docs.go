// Package docs holds the Swagger description served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "Signed up", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "409": {"description": "Email already exists", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log a user in",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Logged in", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/auth/admin/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log an administrator in",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Logged in", "schema": {"$ref": "#/definitions/AuthResponse"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/designs": {
            "get": {
                "tags": ["designs"],
                "summary": "List all designs",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Designs", "schema": {"type": "array", "items": {"$ref": "#/definitions/Design"}}}
                }
            },
            "post": {
                "tags": ["designs"],
                "summary": "Submit a new design",
                "description": "Form bodies carry tags as a comma separated string.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SubmitDesignRequest"}}
                ],
                "responses": {
                    "200": {"description": "Design submitted", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/designs/{id}": {
            "get": {
                "tags": ["designs"],
                "summary": "Get design by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Design", "schema": {"$ref": "#/definitions/Design"}},
                    "404": {"description": "Design not found", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            },
            "delete": {
                "tags": ["designs"],
                "summary": "Delete a design",
                "description": "Only the submitter or an administrator may delete a design.",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "403": {"description": "Not the submitter", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "404": {"description": "Design not found", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/users/{id}/designs": {
            "get": {
                "tags": ["designs"],
                "summary": "List the designs a user submitted",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Designs", "schema": {"type": "array", "items": {"$ref": "#/definitions/Design"}}}
                }
            }
        },
        "/users/me": {
            "get": {
                "tags": ["users"],
                "summary": "Get the signed in user's profile",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Profile", "schema": {"$ref": "#/definitions/PublicUser"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/users/me/profile": {
            "put": {
                "tags": ["users"],
                "summary": "Update the signed in user's name and avatar",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "Profile updated", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/users/me/password": {
            "put": {
                "tags": ["users"],
                "summary": "Change the signed in user's password",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password changed", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "400": {"description": "Validation failed or incorrect current password", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/pages/{slug}": {
            "get": {
                "tags": ["pages"],
                "summary": "Get a static page",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "slug", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Page", "schema": {"$ref": "#/definitions/PageContent"}},
                    "404": {"description": "Page not found", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["admin"],
                "summary": "List all users",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Users", "schema": {"type": "array", "items": {"$ref": "#/definitions/PublicUser"}}},
                    "403": {"description": "Insufficient permissions", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/admin/users/{id}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a user account",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        },
        "/admin/pages": {
            "get": {
                "tags": ["admin"],
                "summary": "List all static pages",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Pages", "schema": {"type": "array", "items": {"$ref": "#/definitions/PageContent"}}}
                }
            }
        },
        "/admin/pages/{slug}": {
            "put": {
                "tags": ["admin"],
                "summary": "Create or replace a static page",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "slug", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/UpdatePageRequest"}}
                ],
                "responses": {
                    "200": {"description": "Page updated", "schema": {"$ref": "#/definitions/ActionResult"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ActionResult"}}
                }
            }
        }
    },
    "definitions": {
        "ActionResult": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "user": {"$ref": "#/definitions/PublicUser"},
                "adminUser": {"$ref": "#/definitions/PublicAdminUser"},
                "design": {"$ref": "#/definitions/Design"},
                "page": {"$ref": "#/definitions/PageContent"},
                "errors": {
                    "type": "object",
                    "description": "Field errors keyed by field name; general errors live under _form",
                    "additionalProperties": {"type": "array", "items": {"type": "string"}}
                }
            }
        },
        "AuthResponse": {
            "allOf": [
                {"$ref": "#/definitions/ActionResult"},
                {
                    "type": "object",
                    "properties": {
                        "token": {"type": "string"},
                        "tokenType": {"type": "string", "example": "Bearer"},
                        "expiresIn": {"type": "integer"}
                    }
                }
            ]
        },
        "PublicUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "user-1717171717171"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "avatarUrl": {"type": "string"}
            }
        },
        "PublicAdminUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "admin-1717171717171"},
                "username": {"type": "string"}
            }
        },
        "Design": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "design-1717171717171"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "imageUrl": {"type": "string"},
                "code": {
                    "type": "object",
                    "properties": {
                        "html": {"type": "string"},
                        "css": {"type": "string"},
                        "js": {"type": "string"}
                    }
                },
                "designer": {"$ref": "#/definitions/PublicUser"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "price": {"type": "number"},
                "submittedByUserId": {"type": "string"}
            }
        },
        "PageContent": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "body": {"type": "string"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "SignupRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string", "minLength": 2},
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string"}
            }
        },
        "AdminLoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "SubmitDesignRequest": {
            "type": "object",
            "required": ["title", "description", "imageUrl", "tags"],
            "properties": {
                "title": {"type": "string", "minLength": 3},
                "description": {"type": "string", "minLength": 10},
                "imageUrl": {"type": "string", "format": "uri"},
                "html": {"type": "string"},
                "css": {"type": "string"},
                "js": {"type": "string"},
                "tags": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "price": {"type": "number", "minimum": 0}
            }
        },
        "UpdateProfileRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "minLength": 2},
                "avatarUrl": {"type": "string", "format": "uri"}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "required": ["currentPassword", "newPassword", "confirmPassword"],
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string", "minLength": 6},
                "confirmPassword": {"type": "string"}
            }
        },
        "UpdatePageRequest": {
            "type": "object",
            "required": ["title", "body"],
            "properties": {
                "title": {"type": "string", "minLength": 2},
                "body": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Reactiverse API",
	Description:      "Marketplace API for publishing and browsing UI component designs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
