package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the API documentation:
// - GET /         -> a small HTML page that loads the OpenAPI JSON into swagger-ui
// - GET /api.json -> machine-readable OpenAPI JSON
func RegisterSwagger(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/api.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Data Service API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
    <style>.topbar { display: none }</style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/api.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// OpenAPI document covering the user CRUD and mold-cost template endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": {
    "title": "POC-mold-costing REST API",
    "description": "A REST API built with Gin and MongoDB.",
    "version": "1.0.0",
    "license": { "name": "MIT", "url": "https://spdx.org/licenses/MIT.html" }
  },
  "servers": [ { "url": "http://localhost:3000/api" } ],
  "paths": {
    "/post": {
      "post": {
        "summary": "Add a user to the database",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/User" } } } },
        "responses": { "200": { "description": "Created successfully. Returns user id." }, "500": { "description": "Something went wrong on server" } }
      }
    },
    "/getAll": {
      "get": { "summary": "Get all users", "responses": { "200": { "description": "Returns all the users" }, "500": { "description": "Something went wrong on server" } } }
    },
    "/getOne/{id}": {
      "get": {
        "summary": "Get a user by ObjectId",
        "parameters": [ { "in": "path", "name": "id", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "Returns the requested user" }, "400": { "description": "Malformed id" }, "404": { "description": "No such user" } }
      }
    },
    "/update/{id}": {
      "patch": {
        "summary": "Update a user's info by ObjectId",
        "parameters": [ { "in": "path", "name": "id", "required": true, "schema": { "type": "string" } } ],
        "requestBody": { "required": true, "description": "Entire or partial user info", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/User" } } } },
        "responses": { "200": { "description": "Returns the updated user" }, "400": { "description": "Malformed id or body" }, "404": { "description": "No such user" } }
      }
    },
    "/delete/{id}": {
      "delete": {
        "summary": "Delete a user by ObjectId",
        "parameters": [ { "in": "path", "name": "id", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "Returns confirmation message" }, "400": { "description": "Malformed id" }, "404": { "description": "No such user" } }
      }
    },
    "/getUser": {
      "get": {
        "summary": "Get user(s) by exact name",
        "parameters": [ { "in": "query", "name": "name", "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "Returns matching users" }, "500": { "description": "Something went wrong on server" } }
      }
    },
    "/{userId}/getAllTemplates": {
      "get": {
        "summary": "Get all templates belonging to a user, seeding defaults on first access",
        "parameters": [ { "in": "path", "name": "userId", "required": true, "schema": { "type": "integer" } } ],
        "responses": { "200": { "description": "Returns the user's template set" }, "500": { "description": "Something went wrong on server" } }
      }
    },
    "/saveTemplate": {
      "post": {
        "summary": "Save modified template as new template in database",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "type": "object", "properties": { "userId": { "type": "integer" }, "saveTemplate": { "type": "object" } }, "required": [ "userId", "saveTemplate" ] } } } },
        "responses": { "200": { "description": "Save template successfully" }, "400": { "description": "Missing userId or templateName" } }
      }
    },
    "/{userId}/getTemplate": {
      "get": {
        "summary": "Get template by userId and templateName",
        "parameters": [
          { "in": "path", "name": "userId", "required": true, "schema": { "type": "integer" } },
          { "in": "query", "name": "templateName", "required": true, "schema": { "type": "string" } }
        ],
        "responses": { "200": { "description": "Returns the requested template" }, "404": { "description": "No matching template" } }
      }
    }
  },
  "components": {
    "schemas": {
      "User": { "type": "object", "properties": { "name": { "type": "string" }, "age": { "type": "integer" } } }
    }
  }
}`
