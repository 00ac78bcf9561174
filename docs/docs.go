// Package docs registers the OpenAPI document served at /swagger. It mirrors
// the swag annotations on the handlers; regenerate with `swag init -g
// cmd/steeldash/main.go` after changing them.
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
        "/api/v1/auth/login": {
            "post": {
                "description": "On success the identity is saved for this browser session, and also for the device when remember is set.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "303": {"description": "See Other"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/v1/session": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/dashboard/client": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboards"],
                "summary": "Client dashboard",
                "parameters": [{"type": "string", "description": "Filter by project name, code, or client", "name": "q", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.clientDashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/dashboard/manager": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboards"],
                "summary": "Project manager dashboard",
                "parameters": [{"type": "string", "description": "Filter by fabricator name", "name": "q", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.managerDashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/dashboard/teamlead": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboards"],
                "summary": "Team lead dashboard",
                "parameters": [{"type": "string", "description": "Filter by team member name", "name": "q", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.teamLeadDashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/dashboard/detailer": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboards"],
                "summary": "Detailer dashboard",
                "parameters": [{"type": "string", "description": "Filter by task title or project", "name": "q", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.detailerDashboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "parameters": [{"type": "string", "description": "Filter by project name, code, or client", "name": "q", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.projectResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Project detail",
                "parameters": [{"type": "string", "description": "Project id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.projectDetailResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "remember": {"type": "boolean"}
            }
        },
        "handler.identityResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "login_time": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "identity": {"$ref": "#/definitions/handler.identityResponse"},
                "redirect": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "identity": {"$ref": "#/definitions/handler.identityResponse"},
                "landing_path": {"type": "string"}
            }
        },
        "handler.statusCountResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "status": {"type": "string"}}
        },
        "handler.projectResponse": {
            "type": "object",
            "properties": {
                "active_count": {"type": "integer"},
                "assigned_detailer": {"type": "string"},
                "client": {"type": "string"},
                "code": {"type": "string"},
                "current_phase": {"type": "string"},
                "due_date": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "progress": {"type": "integer"},
                "start_date": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.clientDashboardResponse": {
            "type": "object",
            "properties": {
                "breakdown": {"type": "array", "items": {"$ref": "#/definitions/handler.statusCountResponse"}},
                "projects": {"type": "array", "items": {"$ref": "#/definitions/handler.projectResponse"}},
                "total": {"type": "integer"}
            }
        },
        "handler.fabricatorResponse": {
            "type": "object",
            "properties": {
                "active_projects": {"type": "integer"},
                "completed": {"type": "integer"},
                "health": {"type": "integer"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "handler.managerDashboardResponse": {
            "type": "object",
            "properties": {
                "active_projects": {"type": "integer"},
                "average_health": {"type": "integer"},
                "fabricators": {"type": "array", "items": {"$ref": "#/definitions/handler.fabricatorResponse"}},
                "total_fabricators": {"type": "integer"}
            }
        },
        "handler.teamMemberResponse": {
            "type": "object",
            "properties": {
                "efficiency": {"type": "integer"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "tasks_assigned": {"type": "integer"},
                "tasks_completed": {"type": "integer"}
            }
        },
        "handler.teamLeadDashboardResponse": {
            "type": "object",
            "properties": {
                "members": {"type": "array", "items": {"$ref": "#/definitions/handler.teamMemberResponse"}},
                "tasks_assigned": {"type": "integer"},
                "tasks_completed": {"type": "integer"}
            }
        },
        "handler.taskResponse": {
            "type": "object",
            "properties": {
                "due_date": {"type": "string"},
                "id": {"type": "integer"},
                "project": {"type": "string"},
                "status": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "handler.detailerDashboardResponse": {
            "type": "object",
            "properties": {
                "breakdown": {"type": "array", "items": {"$ref": "#/definitions/handler.statusCountResponse"}},
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/handler.taskResponse"}}
            }
        },
        "handler.notificationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "handler.projectDetailResponse": {
            "type": "object",
            "properties": {
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/handler.notificationResponse"}},
                "project": {"$ref": "#/definitions/handler.projectResponse"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Steel Detailing Dashboard API",
	Description:      "Role-based project dashboards with cookie sessions or bearer tokens.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
