// Package docs registers the OpenAPI document for the handler annotations.
// Keep it in step with the swag annotations in internal/api/handler.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Credentials and the role to log in as", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign up as a friend",
                "parameters": [
                    {"description": "Name, username and password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.signupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Resolve the current view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}
                }
            }
        },
        "/v1/records": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "List progress records, newest first",
                "parameters": [
                    {"type": "string", "description": "Only records of this user", "name": "user_id", "in": "query"},
                    {"type": "string", "description": "Inclusive start date (YYYY-MM-DD)", "name": "from", "in": "query"},
                    {"type": "string", "description": "Inclusive end date (YYYY-MM-DD)", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ProgressRecord"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Create or update a progress record",
                "parameters": [
                    {"description": "Partial record keyed by userId and date", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.upsertRecordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProgressRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/messages": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Conversation with another user, oldest first",
                "parameters": [
                    {"type": "string", "description": "Peer user id", "name": "with", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Message"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["messages"],
                "summary": "Send a direct message",
                "parameters": [
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.sendMessageRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Message"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/groups": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Groups visible to the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Group"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Create a group",
                "parameters": [
                    {"description": "Group", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createGroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Group"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/groups/{id}/members": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Replace group membership",
                "parameters": [
                    {"type": "string", "description": "Group id", "name": "id", "in": "path", "required": true},
                    {"description": "New member ids", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateMembersRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Group"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/groups/{id}/posts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Post to a group",
                "parameters": [
                    {"type": "string", "description": "Group id", "name": "id", "in": "path", "required": true},
                    {"description": "Post", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.groupPostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.GroupPost"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/statuses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["statuses"],
                "summary": "Status feed, newest first",
                "parameters": [
                    {"type": "string", "description": "Only statuses after this RFC 3339 instant", "name": "since", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.StatusUpdate"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["statuses"],
                "summary": "Upload a status update",
                "parameters": [
                    {"description": "Status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.statusRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.StatusUpdate"}}
                }
            }
        },
        "/v1/tasks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Task catalogue",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Task"}}}
                }
            }
        },
        "/v1/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "All users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.PublicUser"}}}
                }
            }
        },
        "/v1/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Per-friend progress summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ports.FriendSummary"}}}
                }
            }
        },
        "/v1/insights/journal-summary/{user_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Summarise a friend's recent journals",
                "parameters": [
                    {"type": "string", "description": "Friend id", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.textResponse"}}
                }
            }
        },
        "/v1/insights/inspiration": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Inspiration for the caller's record of a day",
                "parameters": [
                    {"type": "string", "description": "Record date (defaults to today, UTC)", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.textResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Attachment": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "name": {"type": "string"},
                "mimeType": {"type": "string"},
                "data": {"type": "string"}
            }
        },
        "domain.PublicUser": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "FRIEND"]},
                "joinedAt": {"type": "string"}
            }
        },
        "domain.Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "domain.ProgressRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "date": {"type": "string"},
                "tasksCompleted": {"type": "array", "items": {"type": "string"}},
                "timeSpentMinutes": {"type": "integer"},
                "remarks": {"type": "string"},
                "dayJournal": {"type": "string"},
                "mood": {"type": "string"}
            }
        },
        "domain.Message": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "senderId": {"type": "string"},
                "receiverId": {"type": "string"},
                "content": {"type": "string"},
                "attachment": {"$ref": "#/definitions/domain.Attachment"},
                "timestamp": {"type": "string"}
            }
        },
        "domain.GroupPost": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "content": {"type": "string"},
                "attachment": {"$ref": "#/definitions/domain.Attachment"},
                "authorId": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "domain.Group": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "memberIds": {"type": "array", "items": {"type": "string"}},
                "posts": {"type": "array", "items": {"$ref": "#/definitions/domain.GroupPost"}}
            }
        },
        "domain.StatusUpdate": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "userName": {"type": "string"},
                "content": {"type": "string"},
                "attachment": {"$ref": "#/definitions/domain.Attachment"},
                "timestamp": {"type": "string"}
            }
        },
        "ports.FriendSummary": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/domain.PublicUser"},
                "recordCount": {"type": "integer"},
                "totalMinutes": {"type": "integer"},
                "tasksCompleted": {"type": "integer"},
                "lastLoggedDate": {"type": "string"},
                "currentStreak": {"type": "integer"},
                "latestMood": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["role"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "FRIEND"]}
            }
        },
        "handler.signupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/domain.PublicUser"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "view": {"type": "string", "enum": ["unauthenticated", "admin_dashboard", "friend_dashboard"]},
                "user": {"$ref": "#/definitions/domain.PublicUser"}
            }
        },
        "handler.attachmentRequest": {
            "type": "object",
            "required": ["kind", "data"],
            "properties": {
                "kind": {"type": "string"},
                "name": {"type": "string"},
                "mimeType": {"type": "string"},
                "data": {"type": "string"}
            }
        },
        "handler.upsertRecordRequest": {
            "type": "object",
            "required": ["date"],
            "properties": {
                "userId": {"type": "string"},
                "date": {"type": "string"},
                "tasksCompleted": {"type": "array", "items": {"type": "string"}},
                "timeSpentMinutes": {"type": "integer", "minimum": 0},
                "remarks": {"type": "string"},
                "dayJournal": {"type": "string"},
                "mood": {"type": "string"}
            }
        },
        "handler.sendMessageRequest": {
            "type": "object",
            "properties": {
                "receiverId": {"type": "string"},
                "content": {"type": "string"},
                "attachment": {"$ref": "#/definitions/handler.attachmentRequest"}
            }
        },
        "handler.createGroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "memberIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.updateMembersRequest": {
            "type": "object",
            "required": ["memberIds"],
            "properties": {
                "memberIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.groupPostRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "attachment": {"$ref": "#/definitions/handler.attachmentRequest"}
            }
        },
        "handler.statusRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "attachment": {"$ref": "#/definitions/handler.attachmentRequest"}
            }
        },
        "handler.textResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "generated_at": {"type": "string"}
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
	Title:            "Accountability Tracker API",
	Description:      "One supporter and their friends: daily progress records, messages, groups, statuses and generated insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
