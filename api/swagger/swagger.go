package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Dojo Member Portal API",
        "description": "Membership self-service portal over the dojo's Members and Requests sheets",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Email + PIN login"},
        {"name": "Balance", "description": "Computed leave balance view"},
        {"name": "Requests", "description": "Leave, contact and generic update requests"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate member",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token, or candidates when the pair matches several members", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No match found"}
                }
            }
        },
        "/api/v1/me/balance": {
            "get": {
                "tags": ["Balance"],
                "summary": "Current leave balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/me/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "Request history",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string", "enum": ["leave", "contact", "all"]},
                    {"name": "pending", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a generic update request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateRequestPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/me/requests/leave": {
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a leave request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LeaveRequestPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlaps an existing leave request"}
                }
            }
        },
        "/api/v1/me/requests/contact": {
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a contact update request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactUpdatePayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/me/requests/export": {
            "get": {
                "tags": ["Requests"],
                "summary": "Download request history",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "pending", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Attachment"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "pin": {"type": "string"},
                "member_id": {"type": "string", "description": "choice among candidates on resubmission"}
            },
            "required": ["email", "pin"]
        },
        "UpdateRequestPayload": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "message": {"type": "string"}
            },
            "required": ["category", "message"]
        },
        "LeaveRequestPayload": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string", "description": "DD-MM-YYYY, normalized forward to Monday"},
                "weeks": {"type": "integer", "minimum": 1},
                "reason": {"type": "string", "enum": ["Personal", "Injury/Serious Illness"]},
                "description": {"type": "string"}
            },
            "required": ["start_date", "weeks", "reason", "description"]
        },
        "ContactUpdatePayload": {
            "type": "object",
            "properties": {
                "update_type": {"type": "string", "enum": ["Phone number", "Address", "Email"]},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "addr1": {"type": "string"},
                "addr2": {"type": "string"},
                "suburb": {"type": "string"},
                "postcode": {"type": "string"}
            },
            "required": ["update_type", "name"]
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
