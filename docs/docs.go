// Package docs holds the Swagger document served at /swagger.
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
        "/api/cases": {
            "get": {
                "description": "Newest first. Optional status filter and case-insensitive search on case number or title.",
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "List cases",
                "parameters": [
                    {"enum": ["Draft", "Submitted", "Approved", "Closed", "Rejected"], "type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Search case number or title", "name": "search", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Items per page", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.caseListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            },
            "post": {
                "description": "Allocates the next case number and creates its storage folder.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "Create a case",
                "parameters": [
                    {"description": "Case fields", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/service.CreateCaseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.caseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/cases/{id}": {
            "get": {
                "description": "Includes documents in upload order and status history newest first.",
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "Get a case",
                "parameters": [
                    {"type": "integer", "description": "Case ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.caseDetailResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/cases/{id}/documents": {
            "post": {
                "description": "Stores the file remotely when possible, locally otherwise. At most one main document per case.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload a document",
                "parameters": [
                    {"type": "integer", "description": "Case ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "Document", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "default": "attachment", "description": "main or attachment", "name": "doc_type", "in": "formData"},
                    {"type": "string", "description": "Notes", "name": "notes", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.documentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/cases/{id}/status": {
            "put": {
                "description": "Records a history row unless the status is unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "Change case status",
                "parameters": [
                    {"type": "integer", "description": "Case ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/cases/{id}/summary": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["reports"],
                "summary": "Download a PDF summary of a case",
                "parameters": [
                    {"type": "integer", "description": "Case ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/cases/{id}/template": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["reports"],
                "summary": "Download the procurement request spreadsheet",
                "parameters": [
                    {"type": "integer", "description": "Case ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cases"],
                "summary": "Case counts per status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statsResponse"}}
                }
            }
        },
        "/api/template/blank": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["reports"],
                "summary": "Download a blank procurement request spreadsheet",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        }
    },
    "definitions": {
        "handler.caseDetailResponse": {
            "type": "object",
            "properties": {
                "case": {"$ref": "#/definitions/model.CaseDetail"},
                "success": {"type": "boolean"}
            }
        },
        "handler.caseListResponse": {
            "type": "object",
            "properties": {
                "cases": {"type": "array", "items": {"$ref": "#/definitions/model.Case"}},
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "per_page": {"type": "integer"},
                "success": {"type": "boolean"},
                "total": {"type": "integer"}
            }
        },
        "handler.caseResponse": {
            "type": "object",
            "properties": {
                "case": {"$ref": "#/definitions/model.Case"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.documentResponse": {
            "type": "object",
            "properties": {
                "document": {"$ref": "#/definitions/model.Document"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.statsResponse": {
            "type": "object",
            "properties": {
                "stats": {"$ref": "#/definitions/model.StatusCounts"},
                "success": {"type": "boolean"}
            }
        },
        "handler.statusResponse": {
            "type": "object",
            "properties": {
                "case": {"$ref": "#/definitions/model.Case"},
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "unchanged": {"type": "boolean"}
            }
        },
        "model.Case": {
            "type": "object",
            "properties": {
                "case_number": {"type": "string"},
                "created_at": {"type": "string"},
                "current_status": {"type": "string", "enum": ["Draft", "Submitted", "Approved", "Closed", "Rejected"]},
                "document_count": {"type": "integer"},
                "id": {"type": "integer"},
                "main_document_exists": {"type": "boolean"},
                "notes": {"type": "string"},
                "storage_folder_path": {"type": "string"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.CaseDetail": {
            "type": "object",
            "properties": {
                "case_number": {"type": "string"},
                "created_at": {"type": "string"},
                "current_status": {"type": "string"},
                "document_count": {"type": "integer"},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}},
                "id": {"type": "integer"},
                "main_document_exists": {"type": "boolean"},
                "notes": {"type": "string"},
                "status_history": {"type": "array", "items": {"$ref": "#/definitions/model.StatusHistory"}},
                "storage_folder_path": {"type": "string"},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.Document": {
            "type": "object",
            "properties": {
                "case_id": {"type": "integer"},
                "doc_type": {"type": "string", "enum": ["main", "attachment"]},
                "file_size": {"type": "integer"},
                "filename": {"type": "string"},
                "id": {"type": "integer"},
                "mime_type": {"type": "string"},
                "notes": {"type": "string"},
                "original_filename": {"type": "string"},
                "storage_backend": {"type": "string", "enum": ["remote", "local"]},
                "uploaded_at": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "model.StatusCounts": {
            "type": "object",
            "properties": {
                "approved_cases": {"type": "integer"},
                "closed_cases": {"type": "integer"},
                "draft_cases": {"type": "integer"},
                "rejected_cases": {"type": "integer"},
                "submitted_cases": {"type": "integer"},
                "total_cases": {"type": "integer"}
            }
        },
        "model.StatusHistory": {
            "type": "object",
            "properties": {
                "case_id": {"type": "integer"},
                "changed_at": {"type": "string"},
                "changed_by": {"type": "string"},
                "id": {"type": "integer"},
                "new_status": {"type": "string"},
                "notes": {"type": "string"},
                "old_status": {"type": "string"}
            }
        },
        "service.ChangeStatusRequest": {
            "type": "object",
            "properties": {
                "changed_by": {"type": "string", "maxLength": 100},
                "notes": {"type": "string", "maxLength": 5000},
                "status": {"type": "string"}
            }
        },
        "service.CreateCaseRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string", "maxLength": 5000},
                "title": {"type": "string", "maxLength": 200}
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
	Title:            "Procurement Case API",
	Description:      "Tracks procurement cases, their documents and status history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
