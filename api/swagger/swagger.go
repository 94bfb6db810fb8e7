package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Records API",
        "description": "Students and their addresses. Every student keeps at least one address.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": ["http"],
    "tags": [
        {"name": "Students", "description": "Student records and their nested addresses"},
        {"name": "Addresses", "description": "Standalone address management"}
    ],
    "paths": {
        "/health": {
            "get": {"summary": "Liveness check", "responses": {"200": {"description": "OK"}}}
        },
        "/ready": {
            "get": {
                "summary": "Readiness check (database ping)",
                "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unreachable"}}
            }
        },
        "/api/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create a student with at least one address",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "headers": {"Location": {"type": "string"}}, "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Student number already used", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Download the roster",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "format": "int64"}],
            "get": {
                "tags": ["Students"],
                "summary": "Get a student",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Replace student number, name and active flag",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Student number already used", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete a student and its addresses",
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/{id}/addresses": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "format": "int64"}],
            "get": {
                "tags": ["Students"],
                "summary": "List the addresses of a student",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Address"}}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Add an address to a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddressRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "headers": {"Location": {"type": "string"}}, "schema": {"$ref": "#/definitions/Address"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/students/{id}/addresses/{addressId}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "integer", "format": "int64"},
                {"name": "addressId", "in": "path", "required": true, "type": "integer", "format": "int64"}
            ],
            "delete": {
                "tags": ["Students"],
                "summary": "Remove an address from a student",
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Last address of the student", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/addresses": {
            "get": {
                "tags": ["Addresses"],
                "summary": "List addresses",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Address"}}}}
            },
            "post": {
                "tags": ["Addresses"],
                "summary": "Create an address",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddressRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "headers": {"Location": {"type": "string"}}, "schema": {"$ref": "#/definitions/Address"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/addresses/student/{studentId}": {
            "get": {
                "tags": ["Addresses"],
                "summary": "List the addresses of a student (empty for unknown students)",
                "parameters": [{"name": "studentId", "in": "path", "required": true, "type": "integer", "format": "int64"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Address"}}}}
            }
        },
        "/api/addresses/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "format": "int64"}],
            "get": {
                "tags": ["Addresses"],
                "summary": "Get an address",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Address"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Addresses"],
                "summary": "Replace an address",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddressRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Address"}},
                    "400": {"description": "Validation failed or last address moved away", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Address or student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Addresses"],
                "summary": "Delete an address",
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Last address of the student", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "studentId": {"type": "integer", "format": "int64"},
                "studentNo": {"type": "string", "maxLength": 8},
                "name": {"type": "string", "maxLength": 100},
                "active": {"type": "boolean"}
            }
        },
        "Address": {
            "type": "object",
            "properties": {
                "addressId": {"type": "integer", "format": "int64"},
                "studentId": {"type": "integer", "format": "int64"},
                "street": {"type": "string"},
                "city": {"type": "string"},
                "province": {"type": "string"},
                "postalCode": {"type": "string"},
                "country": {"type": "string"}
            }
        },
        "AddressRequest": {
            "type": "object",
            "required": ["street", "city", "province", "postalCode", "country"],
            "properties": {
                "studentId": {"type": "integer", "format": "int64", "description": "Required on /api/addresses, ignored on nested routes"},
                "street": {"type": "string", "maxLength": 50},
                "city": {"type": "string", "maxLength": 40},
                "province": {"type": "string", "maxLength": 30},
                "postalCode": {"type": "string", "maxLength": 7},
                "country": {"type": "string", "maxLength": 30}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["studentNo", "name", "addresses"],
            "properties": {
                "studentNo": {"type": "string", "maxLength": 8},
                "name": {"type": "string", "maxLength": 100},
                "active": {"type": "boolean"},
                "addresses": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/AddressRequest"}}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "required": ["studentNo", "name"],
            "properties": {
                "studentNo": {"type": "string", "maxLength": 8},
                "name": {"type": "string", "maxLength": 100},
                "active": {"type": "boolean"}
            }
        },
        "Violation": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/Violation"}}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
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
