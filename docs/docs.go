// Package docs registers the OpenAPI document served under /swagger.
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
        "/sales/forecast": {
            "get": {
                "description": "Aggregates deals in the selected period. Unknown or out-of-range parameters fall back to the current period.",
                "produces": ["application/json"],
                "tags": ["Forecast"],
                "summary": "Get sales forecast",
                "parameters": [
                    {"enum": ["month", "quarter", "year"], "type": "string", "description": "Period granularity", "name": "timeframe", "in": "query"},
                    {"type": "integer", "description": "Calendar year", "name": "year", "in": "query"},
                    {"enum": ["Q1", "Q2", "Q3", "Q4"], "type": "string", "description": "Quarter label", "name": "quarter", "in": "query"},
                    {"type": "integer", "description": "Month number 1-12", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ForecastResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/sales/forecast/report": {
            "post": {
                "description": "Stores a forecast snapshot. A snapshot for the same start and end date is replaced.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Forecast"],
                "summary": "Save forecast report",
                "parameters": [
                    {"description": "Forecast snapshot", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SaveForecastReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.ForecastSnapshotDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/domain.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/sales/forecast/reports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Forecast"],
                "summary": "List saved forecast reports",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Items per page (max 100)", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.PaginatedResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/sales/forecast/reports/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Forecast"],
                "summary": "Get saved forecast report",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Report ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ForecastSnapshotDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        },
        "/dashboard/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Recent activity feed",
                "parameters": [
                    {"type": "integer", "default": 10, "description": "Maximum entries (max 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ActivityEntry"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/domain.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "domain.APIError": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "domain.ActivityEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["website_contact", "client_communication", "task", "project", "deal", "client"]},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "timestamp": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "domain.DateRangeDTO": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"}
            }
        },
        "domain.ForecastResponse": {
            "type": "object",
            "properties": {
                "forecastData": {"type": "object"},
                "dateRange": {"$ref": "#/definitions/domain.DateRangeDTO"}
            }
        },
        "domain.ScenarioRequest": {
            "type": "object",
            "required": ["name", "type", "adjustment_factor", "predicted_amount"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "type": {"type": "string", "enum": ["optimistic", "realistic", "pessimistic"]},
                "adjustment_factor": {"type": "number", "minimum": 0.1, "maximum": 2},
                "predicted_amount": {"type": "number", "minimum": 0},
                "assumptions": {"type": "string"}
            }
        },
        "domain.SaveForecastReportRequest": {
            "type": "object",
            "required": ["title", "start_date", "end_date", "target_amount", "predicted_amount", "confidence_percentage"],
            "properties": {
                "title": {"type": "string", "maxLength": 255},
                "start_date": {"type": "string", "example": "2024-07-01"},
                "end_date": {"type": "string", "example": "2024-09-30"},
                "target_amount": {"type": "number", "minimum": 0},
                "predicted_amount": {"type": "number", "minimum": 0},
                "confidence_percentage": {"type": "number", "minimum": 0, "maximum": 100},
                "monthly_breakdown": {"type": "object"},
                "product_breakdown": {"type": "object"},
                "team_breakdown": {"type": "object"},
                "notes": {"type": "string", "maxLength": 5000},
                "scenarios": {"type": "array", "items": {"$ref": "#/definitions/domain.ScenarioRequest"}}
            }
        },
        "domain.ForecastScenarioDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "adjustmentFactor": {"type": "number"},
                "predictedAmount": {"type": "number"},
                "assumptions": {"type": "string"}
            }
        },
        "domain.ForecastSnapshotDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "targetAmount": {"type": "number"},
                "predictedAmount": {"type": "number"},
                "confidencePercentage": {"type": "number"},
                "monthlyBreakdown": {"type": "object"},
                "productBreakdown": {"type": "object"},
                "teamBreakdown": {"type": "object"},
                "notes": {"type": "string"},
                "scenarios": {"type": "array", "items": {"$ref": "#/definitions/domain.ForecastScenarioDTO"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.PaginatedResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ledgerlane CRM API",
	Description:      "Sales forecasting, saved forecast reports and the dashboard activity feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
