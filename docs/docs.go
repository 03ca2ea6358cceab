// Package docs registers the admin API description for swagger UI.
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
                "summary": "Вход администратора",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"password": {"type": "string"}}}}],
                "responses": {"200": {"description": "token"}, "401": {"description": "Неверный пароль"}}
            }
        },
        "/commands": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["commands"],
                "summary": "Выполнить команду чата",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"scope_id": {"type": "string"}, "user_id": {"type": "string"}, "is_admin": {"type": "boolean"}, "args": {"type": "array", "items": {"type": "string"}}}}}],
                "responses": {"200": {"description": "reply"}}
            }
        },
        "/dashboard": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboard"], "summary": "Сводка для админки", "responses": {"200": {"description": "stats"}}}
        },
        "/submissions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["submissions"],
                "summary": "Список заявок с результатами",
                "parameters": [
                    {"type": "string", "description": "pending | approved | rejected", "name": "status", "in": "query"},
                    {"type": "string", "name": "tournament_id", "in": "query"}
                ],
                "responses": {"200": {"description": "submissions"}, "422": {"description": "Неизвестный статус"}}
            }
        },
        "/submissions/{submissionID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["submissions"], "summary": "Заявка по ID", "parameters": [{"type": "string", "name": "submissionID", "in": "path", "required": true}], "responses": {"200": {"description": "submission"}, "404": {"description": "Не найдена"}}}
        },
        "/submissions/{submissionID}/approve": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["submissions"], "summary": "Одобрить результат", "parameters": [{"type": "string", "name": "submissionID", "in": "path", "required": true}], "responses": {"200": {"description": "submission"}, "404": {"description": "Не найдена"}, "409": {"description": "Уже рассмотрена"}, "503": {"description": "Изменение не сохранено"}}}
        },
        "/submissions/{submissionID}/reject": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["submissions"], "summary": "Отклонить результат", "parameters": [{"type": "string", "name": "submissionID", "in": "path", "required": true}], "responses": {"200": {"description": "submission"}, "404": {"description": "Не найдена"}, "409": {"description": "Уже рассмотрена"}, "503": {"description": "Изменение не сохранено"}}}
        },
        "/templates": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["templates"], "summary": "Шаблоны подсчета очков", "responses": {"200": {"description": "templates"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["templates"], "summary": "Создать шаблон", "responses": {"201": {"description": "template"}, "409": {"description": "Имя занято"}, "422": {"description": "Ошибка валидации"}}}
        },
        "/tournaments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Турниры", "parameters": [{"type": "string", "name": "scope_id", "in": "query"}], "responses": {"200": {"description": "tournaments"}}}
        },
        "/tournaments/{tournamentID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Турнир по ID", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"200": {"description": "tournament"}, "404": {"description": "Не найден"}}}
        },
        "/tournaments/{tournamentID}/status": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Сменить статус турнира", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"200": {"description": "tournament"}, "409": {"description": "Недопустимый переход"}}}
        },
        "/tournaments/{tournamentID}/leaderboard": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Таблица турнира", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"200": {"description": "leaderboard"}, "404": {"description": "Не найден"}}}
        },
        "/tournaments/{tournamentID}/teams": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["tournaments"], "summary": "Команды турнира", "parameters": [{"type": "string", "name": "tournamentID", "in": "path", "required": true}], "responses": {"200": {"description": "teams"}, "404": {"description": "Не найден"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Scrim Tournaments Admin API",
	Description:      "Moderation and read API for scrim tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
