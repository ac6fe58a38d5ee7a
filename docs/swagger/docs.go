// Package docs holds the OpenAPI document for the LogPulse HR API.
// It is generated by swag from the annotations in interfaces/http/rest/handlers.
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
        "/departments": {
            "post": {
                "tags": [
                    "departments"
                ],
                "summary": "Create a department",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.CreateDepartmentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.Department"
                        }
                    },
                    "400": {
                        "description": "Blank name",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            },
            "get": {
                "tags": [
                    "departments"
                ],
                "summary": "List departments",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.ListResponse"
                        }
                    }
                }
            }
        },
        "/employees": {
            "post": {
                "tags": [
                    "employees"
                ],
                "summary": "Create an employee",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.CreateEmployeeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.Employee"
                        }
                    },
                    "404": {
                        "description": "Department not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            },
            "get": {
                "tags": [
                    "employees"
                ],
                "summary": "List employees",
                "produces": [
                    "application/json"
                ],
                "parameters": [],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.ListResponse"
                        }
                    }
                }
            }
        },
        "/employees/{employeeID}": {
            "get": {
                "tags": [
                    "employees"
                ],
                "summary": "Get an employee",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Employee ID",
                        "name": "employeeID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.Employee"
                        }
                    },
                    "404": {
                        "description": "Employee not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/employees/{employeeID}/attendance": {
            "post": {
                "tags": [
                    "attendance"
                ],
                "summary": "Record attendance",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Employee ID",
                        "name": "employeeID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.AttendanceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.StatusResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid attendance status",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Employee not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/employees/{employeeID}/transfer": {
            "post": {
                "tags": [
                    "employees"
                ],
                "summary": "Transfer an employee to another department",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Employee ID",
                        "name": "employeeID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.TransferRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.Employee"
                        }
                    },
                    "400": {
                        "description": "Already in department",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Employee or department not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/employees/{employeeID}/promotion": {
            "post": {
                "tags": [
                    "employees"
                ],
                "summary": "Promote an employee",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Employee ID",
                        "name": "employeeID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.PromotionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.Employee"
                        }
                    },
                    "400": {
                        "description": "Invalid title or date",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Employee not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/payroll/run": {
            "post": {
                "tags": [
                    "payroll"
                ],
                "summary": "Run payroll for a month",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.PayrollRunRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.PayrollRunResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid month format",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/leave/requests": {
            "post": {
                "tags": [
                    "leave"
                ],
                "summary": "Request leave",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.LeaveRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.LeaveRequest"
                        }
                    },
                    "400": {
                        "description": "Invalid leave",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Employee not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/leave/requests/{leaveID}/decision": {
            "post": {
                "tags": [
                    "leave"
                ],
                "summary": "Approve or reject a leave request",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Leave request ID",
                        "name": "leaveID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.LeaveDecisionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.LeaveRequest"
                        }
                    },
                    "404": {
                        "description": "Leave request not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already decided",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/performance/reviews": {
            "post": {
                "tags": [
                    "performance"
                ],
                "summary": "Submit a performance review",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.ReviewRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.PerformanceReview"
                        }
                    },
                    "400": {
                        "description": "Invalid review",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Employee not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/performance/reviews/{reviewID}/decision": {
            "post": {
                "tags": [
                    "performance"
                ],
                "summary": "Finalize a performance review",
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Review ID",
                        "name": "reviewID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.ReviewDecisionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/hr.PerformanceReview"
                        }
                    },
                    "400": {
                        "description": "Invalid final rating",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Review not found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already finalized",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Malformed request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ]
            }
        }
    },
    "definitions": {
        "api.CreateDepartmentRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                }
            },
            "required": [
                "name"
            ]
        },
        "api.CreateEmployeeRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "department_id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "department_id",
                "title"
            ]
        },
        "api.AttendanceRequest": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "enum": [
                        "in",
                        "out"
                    ]
                }
            },
            "required": [
                "status"
            ]
        },
        "api.PayrollRunRequest": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string",
                    "example": "2026-01"
                }
            },
            "required": [
                "month"
            ]
        },
        "api.LeaveRequest": {
            "type": "object",
            "properties": {
                "employee_id": {
                    "type": "integer"
                },
                "leave_type": {
                    "type": "string",
                    "enum": [
                        "annual",
                        "sick",
                        "personal"
                    ]
                },
                "days": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 30
                },
                "reason": {
                    "type": "string"
                }
            },
            "required": [
                "employee_id",
                "leave_type"
            ]
        },
        "api.LeaveDecisionRequest": {
            "type": "object",
            "properties": {
                "approved": {
                    "type": "boolean"
                },
                "approver": {
                    "type": "string"
                }
            },
            "required": [
                "approver"
            ]
        },
        "api.ReviewRequest": {
            "type": "object",
            "properties": {
                "employee_id": {
                    "type": "integer"
                },
                "period": {
                    "type": "string",
                    "example": "2026-01"
                },
                "score": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 5
                },
                "summary": {
                    "type": "string"
                }
            },
            "required": [
                "employee_id",
                "period"
            ]
        },
        "api.ReviewDecisionRequest": {
            "type": "object",
            "properties": {
                "final_rating": {
                    "type": "string",
                    "enum": [
                        "A",
                        "B",
                        "C",
                        "D"
                    ]
                },
                "reviewer": {
                    "type": "string"
                }
            },
            "required": [
                "final_rating",
                "reviewer"
            ]
        },
        "api.TransferRequest": {
            "type": "object",
            "properties": {
                "department_id": {
                    "type": "integer"
                },
                "reason": {
                    "type": "string"
                }
            },
            "required": [
                "department_id"
            ]
        },
        "api.PromotionRequest": {
            "type": "object",
            "properties": {
                "new_title": {
                    "type": "string"
                },
                "effective_date": {
                    "type": "string",
                    "example": "2026-03-01"
                },
                "reason": {
                    "type": "string"
                }
            },
            "required": [
                "new_title",
                "effective_date"
            ]
        },
        "api.ListResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "api.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                }
            }
        },
        "api.PayrollRunResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "month": {
                    "type": "string"
                },
                "employees": {
                    "type": "integer"
                }
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "boolean"
                },
                "message": {
                    "type": "string"
                },
                "code": {
                    "type": "integer"
                }
            }
        },
        "hr.Department": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "hr.Employee": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "department_id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "hr.LeaveRequest": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "employee_id": {
                    "type": "integer"
                },
                "leave_type": {
                    "type": "string"
                },
                "days": {
                    "type": "integer"
                },
                "reason": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "pending",
                        "approved",
                        "rejected"
                    ]
                },
                "approver": {
                    "type": "string"
                }
            }
        },
        "hr.PerformanceReview": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "employee_id": {
                    "type": "integer"
                },
                "period": {
                    "type": "string"
                },
                "score": {
                    "type": "integer"
                },
                "summary": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "submitted",
                        "finalized"
                    ]
                },
                "final_rating": {
                    "type": "string"
                },
                "reviewer": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.2.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "LogPulse HR API",
	Description:      "Demonstration HR service that generates logs, metrics and traces for an observability pipeline.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
