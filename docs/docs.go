// Package docs holds the Swagger document served at /swagger. It mirrors the
// handler annotations and is maintained by hand.
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
        "/calendar/{year}/{month}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Booked dates of a month",
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "year", "in": "path", "required": true},
                    {"type": "integer", "description": "Month 1-12", "name": "month", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/courts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["courts"],
                "summary": "List courts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/court.Court"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/days/{date}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Load a day",
                "parameters": [
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.Day"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/booking.DayErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Save a day",
                "parameters": [
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true},
                    {"description": "Courts, slots and roster", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/booking.SaveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.SaveResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Delete a day",
                "parameters": [
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true},
                    {"type": "string", "description": "Comma separated slots, e.g. 07:00,08:00", "name": "slots", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.DeleteResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/days/{date}/players/{playerID}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Remove a player from a day",
                "parameters": [
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true},
                    {"type": "integer", "description": "Player ID", "name": "playerID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.RemoveResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/days/{date}/reminders": {
            "post": {
                "produces": ["application/json"],
                "tags": ["days"],
                "summary": "Queue fee reminders",
                "parameters": [
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/booking.ReminderResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/fees/quote": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["fees"],
                "summary": "Quote fees",
                "parameters": [
                    {"description": "Courts, slots and roster", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/booking.QuoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.Quote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "description": "Exposes Prometheus metrics in text format",
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/players": {
            "get": {
                "description": "Known players, for name autocomplete in the roster editor.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "List players",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/player.Player"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/slots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["slots"],
                "summary": "List bookable time slots",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/slot.Slot"}}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "booking.Day": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-05-01"},
                "courts": {"type": "array", "items": {"type": "integer"}},
                "slots": {"type": "array", "items": {"type": "string"}},
                "roster": {"type": "array", "items": {"$ref": "#/definitions/roster.Entry"}},
                "total_cost": {"type": "integer"},
                "has_existing_booking": {"type": "boolean"}
            }
        },
        "booking.DayErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "day": {"$ref": "#/definitions/booking.Day"}
            }
        },
        "booking.DeleteResult": {
            "type": "object",
            "properties": {
                "bookings_deleted": {"type": "integer"},
                "links_deleted": {"type": "integer"},
                "links_updated": {"type": "integer"},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/booking.SlotFailure"}},
                "day": {"$ref": "#/definitions/booking.Day"}
            }
        },
        "booking.Quote": {
            "type": "object",
            "properties": {
                "roster": {"type": "array", "items": {"$ref": "#/definitions/roster.Entry"}},
                "total_cost": {"type": "integer"},
                "per_player": {"type": "integer"}
            }
        },
        "booking.QuoteRequest": {
            "type": "object",
            "properties": {
                "courts": {"type": "array", "maxItems": 2, "items": {"type": "integer"}},
                "slots": {"type": "array", "maxItems": 16, "items": {"type": "string"}},
                "roster": {"type": "array", "maxItems": 64, "items": {"$ref": "#/definitions/roster.Entry"}}
            }
        },
        "booking.ReminderResult": {
            "type": "object",
            "properties": {
                "queued": {"type": "integer"},
                "skipped": {"type": "integer"}
            }
        },
        "booking.RemoveResult": {
            "type": "object",
            "properties": {
                "links_removed": {"type": "integer"},
                "links_updated": {"type": "integer"},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/booking.SlotFailure"}},
                "day": {"$ref": "#/definitions/booking.Day"}
            }
        },
        "booking.SaveRequest": {
            "type": "object",
            "properties": {
                "courts": {"type": "array", "maxItems": 2, "items": {"type": "integer"}},
                "slots": {"type": "array", "maxItems": 16, "items": {"type": "string"}},
                "roster": {"type": "array", "maxItems": 64, "items": {"$ref": "#/definitions/roster.Entry"}}
            }
        },
        "booking.SaveResult": {
            "type": "object",
            "properties": {
                "slots": {"type": "array", "items": {"$ref": "#/definitions/booking.SlotReport"}},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/booking.SlotFailure"}},
                "day": {"$ref": "#/definitions/booking.Day"}
            }
        },
        "booking.SlotFailure": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["conflict", "persistence", "load"]},
                "slot": {"type": "string"},
                "player": {"type": "string"},
                "op": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "booking.SlotReport": {
            "type": "object",
            "properties": {
                "slot": {"type": "string"},
                "booking_id": {"type": "integer"},
                "outcome": {"type": "string", "enum": ["created", "updated", "unchanged", "skipped", "failed"]},
                "links_added": {"type": "integer"},
                "links_updated": {"type": "integer"}
            }
        },
        "court.Court": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "hourly_rate": {"type": "integer"}
            }
        },
        "player.Player": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "roster.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "fee": {"type": "integer"},
                "paid": {"type": "boolean"}
            }
        },
        "slot.Slot": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "7:00"},
                "value": {"type": "string", "example": "07:00"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Padelbook API",
	Description:      "Court bookings, rosters and fee splitting for a padel group.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
