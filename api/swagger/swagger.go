package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Report Card API",
        "description": "Multi-level approval workflow for student report cards",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "ReportCards",
            "description": "Report card approval workflow"
        },
        {
            "name": "ReportCardBatches",
            "description": "Class-wide approval operations"
        },
        {
            "name": "ReportCardApprovalConfig",
            "description": "Level 3 and 4 approvers per education stage"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Database unreachable"
                    }
                }
            }
        },
        "/report-cards/pending": {
            "get": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "List report cards awaiting the caller",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "level",
                        "type": "string",
                        "required": true,
                        "description": "level_1, level_2, review, publish or entry"
                    },
                    {
                        "in": "query",
                        "name": "templateId",
                        "type": "string",
                        "required": false,
                        "description": "Template ID"
                    },
                    {
                        "in": "query",
                        "name": "classId",
                        "type": "string",
                        "required": false,
                        "description": "Class ID"
                    },
                    {
                        "in": "query",
                        "name": "schoolYear",
                        "type": "string",
                        "required": false,
                        "description": "School year"
                    },
                    {
                        "in": "query",
                        "name": "semester",
                        "type": "string",
                        "required": false,
                        "description": "Semester"
                    }
                ]
            }
        },
        "/report-cards/pending/grouped": {
            "get": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Pending approvals grouped by template, class and unit",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "level",
                        "type": "string",
                        "required": true,
                        "description": "level_1, level_2, review, publish or entry"
                    },
                    {
                        "in": "query",
                        "name": "templateId",
                        "type": "string",
                        "required": false,
                        "description": "Template ID"
                    },
                    {
                        "in": "query",
                        "name": "classId",
                        "type": "string",
                        "required": false,
                        "description": "Class ID"
                    },
                    {
                        "in": "query",
                        "name": "schoolYear",
                        "type": "string",
                        "required": false,
                        "description": "School year"
                    },
                    {
                        "in": "query",
                        "name": "semester",
                        "type": "string",
                        "required": false,
                        "description": "Semester"
                    }
                ]
            }
        },
        "/report-cards/{id}": {
            "get": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Get a report card",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    }
                ]
            },
            "delete": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Delete an unpublished report card",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "No Content",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    }
                ]
            }
        },
        "/report-cards/{id}/approvals": {
            "get": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Approval overview of a report card",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    }
                ]
            }
        },
        "/report-cards/{id}/submit": {
            "post": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Submit a section",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UnitSelection"
                        }
                    }
                ]
            }
        },
        "/report-cards/{id}/approve-level-1": {
            "post": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Level 1 homeroom approval",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    }
                ]
            }
        },
        "/report-cards/{id}/approve-level-2": {
            "post": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Level 2 section approval",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/UnitSelection"
                        }
                    }
                ]
            }
        },
        "/report-cards/{id}/review": {
            "post": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Level 3 review",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    }
                ]
            }
        },
        "/report-cards/{id}/publish": {
            "post": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Level 4 final publication",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    }
                ]
            }
        },
        "/report-cards/{id}/reject": {
            "post": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Reject units of a report card",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Report card ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RejectReportCardRequest"
                        }
                    }
                ]
            }
        },
        "/report-cards/batch/submit": {
            "post": {
                "tags": [
                    "ReportCardBatches"
                ],
                "summary": "Submit a section across a class",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SubmitClassRequest"
                        }
                    }
                ]
            }
        },
        "/report-cards/batch/approve": {
            "post": {
                "tags": [
                    "ReportCardBatches"
                ],
                "summary": "Approve a section across a class",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ApproveClassRequest"
                        }
                    }
                ]
            }
        },
        "/report-cards/batch/review": {
            "post": {
                "tags": [
                    "ReportCardBatches"
                ],
                "summary": "Review report cards in bulk",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClassSelection"
                        }
                    }
                ]
            }
        },
        "/report-cards/batch/publish": {
            "post": {
                "tags": [
                    "ReportCardBatches"
                ],
                "summary": "Publish report cards in bulk",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClassSelection"
                        }
                    }
                ]
            }
        },
        "/report-cards/batch/reject": {
            "post": {
                "tags": [
                    "ReportCardBatches"
                ],
                "summary": "Reject a section across a class",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RejectBatchRequest"
                        }
                    }
                ]
            }
        },
        "/report-card-templates/{id}/generate": {
            "post": {
                "tags": [
                    "ReportCards"
                ],
                "summary": "Generate draft report cards for a class",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Template ID"
                    },
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/GenerateReportCardsRequest"
                        }
                    }
                ]
            }
        },
        "/report-card-approval-configs": {
            "put": {
                "tags": [
                    "ReportCardApprovalConfig"
                ],
                "summary": "Replace approvers of an education stage",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SaveApprovalConfigRequest"
                        }
                    }
                ]
            }
        },
        "/report-card-approval-configs/{stageId}": {
            "get": {
                "tags": [
                    "ReportCardApprovalConfig"
                ],
                "summary": "Get approvers of an education stage",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "stageId",
                        "type": "string",
                        "required": true,
                        "description": "Education stage ID"
                    }
                ]
            }
        }
    },
    "definitions": {
        "UnitSelection": {
            "type": "object",
            "properties": {
                "section": {
                    "type": "string",
                    "enum": [
                        "homeroom",
                        "scores",
                        "subject_eval",
                        "intl_scores"
                    ]
                },
                "subjectId": {
                    "type": "string"
                },
                "board": {
                    "type": "string",
                    "enum": [
                        "main_scores",
                        "ielts",
                        "comments"
                    ]
                }
            }
        },
        "RejectReportCardRequest": {
            "type": "object",
            "properties": {
                "section": {
                    "type": "string",
                    "enum": [
                        "homeroom",
                        "scores",
                        "subject_eval",
                        "intl_scores"
                    ]
                },
                "subjectId": {
                    "type": "string"
                },
                "board": {
                    "type": "string",
                    "enum": [
                        "main_scores",
                        "ielts",
                        "comments"
                    ]
                },
                "reason": {
                    "type": "string"
                },
                "level": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 4
                }
            }
        },
        "ClassSelection": {
            "type": "object",
            "properties": {
                "templateId": {
                    "type": "string"
                },
                "classId": {
                    "type": "string"
                },
                "reportCardIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "SubmitClassRequest": {
            "type": "object",
            "properties": {
                "templateId": {
                    "type": "string"
                },
                "classId": {
                    "type": "string"
                },
                "reportCardIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "section": {
                    "type": "string",
                    "enum": [
                        "homeroom",
                        "scores",
                        "subject_eval",
                        "intl_scores"
                    ]
                },
                "subjectId": {
                    "type": "string"
                },
                "board": {
                    "type": "string",
                    "enum": [
                        "main_scores",
                        "ielts",
                        "comments"
                    ]
                }
            }
        },
        "ApproveClassRequest": {
            "type": "object",
            "properties": {
                "templateId": {
                    "type": "string"
                },
                "classId": {
                    "type": "string"
                },
                "reportCardIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "level": {
                    "type": "string",
                    "enum": [
                        "level_1",
                        "level_2"
                    ]
                },
                "section": {
                    "type": "string",
                    "enum": [
                        "homeroom",
                        "scores",
                        "subject_eval",
                        "intl_scores"
                    ]
                },
                "subjectId": {
                    "type": "string"
                },
                "board": {
                    "type": "string",
                    "enum": [
                        "main_scores",
                        "ielts",
                        "comments"
                    ]
                }
            }
        },
        "RejectBatchRequest": {
            "type": "object",
            "properties": {
                "templateId": {
                    "type": "string"
                },
                "classId": {
                    "type": "string"
                },
                "reportCardIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "section": {
                    "type": "string",
                    "enum": [
                        "homeroom",
                        "scores",
                        "subject_eval",
                        "intl_scores"
                    ]
                },
                "subjectId": {
                    "type": "string"
                },
                "board": {
                    "type": "string",
                    "enum": [
                        "main_scores",
                        "ielts",
                        "comments"
                    ]
                },
                "level": {
                    "type": "string",
                    "enum": [
                        "level_1",
                        "level_2",
                        "review",
                        "publish"
                    ]
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "GenerateReportCardsRequest": {
            "type": "object",
            "properties": {
                "classId": {
                    "type": "string"
                },
                "studentIds": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "SaveApprovalConfigRequest": {
            "type": "object",
            "properties": {
                "educationStageId": {
                    "type": "string"
                },
                "level3Reviewers": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "level4Approvers": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "BatchResult": {
            "type": "object",
            "properties": {
                "succeeded": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "failed": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {
                                "type": "string"
                            },
                            "code": {
                                "type": "string"
                            },
                            "reason": {
                                "type": "string"
                            }
                        }
                    }
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
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
