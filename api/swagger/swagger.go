package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "UniPlan API",
        "description": "Course planning API: conflict checks, timetable generation, sharing, export",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login and token issuance"},
        {"name": "Courses", "description": "Course catalog reads"},
        {"name": "Planner", "description": "Stateless timetable checks"},
        {"name": "Schedules", "description": "Timetable generation and saved schedules"},
        {"name": "Share", "description": "Share token encoding and viewing"},
        {"name": "Export", "description": "Timetable downloads"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List catalog courses",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "department", "in": "query", "type": "array", "items": {"type": "string"}},
                    {"name": "category", "in": "query", "type": "array", "items": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get one catalog course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/conflicts": {
            "post": {
                "tags": ["Planner"],
                "summary": "Detect timetable conflicts",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/consolidate": {
            "post": {
                "tags": ["Planner"],
                "summary": "Consolidate a timetable for display",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseListRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/validate-add": {
            "post": {
                "tags": ["Planner"],
                "summary": "Validate adding courses to a timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateAddRequest"}}
                ],
                "responses": {
                    "200": {"description": "Allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Rule violated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/generate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Generate timetable candidates",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Generation failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/save": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Save a generated timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveTimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List saved timetables",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}": {
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a saved timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/share/encode": {
            "post": {
                "tags": ["Share"],
                "summary": "Encode a timetable share token",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EncodeShareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/share": {
            "get": {
                "tags": ["Share"],
                "summary": "View a shared timetable",
                "parameters": [
                    {"name": "schedule", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/export/{format}": {
            "post": {
                "tags": ["Export"],
                "summary": "Export a timetable",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "path", "required": true, "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseListRequest"}}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ScheduleCourse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "code": {"type": "string"},
                "day": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "location": {"type": "string"},
                "credit": {"type": "integer"},
                "from_history": {"type": "boolean"}
            }
        },
        "CourseListRequest": {
            "type": "object",
            "required": ["courses"],
            "properties": {
                "courses": {"type": "array", "items": {"$ref": "#/definitions/ScheduleCourse"}}
            }
        },
        "ValidateAddRequest": {
            "type": "object",
            "required": ["adds"],
            "properties": {
                "existing": {"type": "array", "items": {"$ref": "#/definitions/ScheduleCourse"}},
                "adds": {"type": "array", "items": {"$ref": "#/definitions/ScheduleCourse"}}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "departmentIds": {"type": "array", "items": {"type": "string"}},
                "categories": {"type": "array", "items": {"type": "string"}},
                "excludeIds": {"type": "array", "items": {"type": "string"}},
                "useAssistant": {"type": "boolean"}
            }
        },
        "SaveTimetableRequest": {
            "type": "object",
            "required": ["proposalId"],
            "properties": {
                "proposalId": {"type": "string"},
                "index": {"type": "integer"},
                "name": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "EncodeShareRequest": {
            "type": "object",
            "required": ["courses"],
            "properties": {
                "courses": {"type": "array", "items": {"$ref": "#/definitions/ScheduleCourse"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
