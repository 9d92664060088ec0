package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// endpointDoc describes one API route in the self-describing index
// served at the default route.
type endpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Cookies     string `json:"cookies"`
	Description string `json:"description"`
	Body        any    `json:"body"`
	Response    any    `json:"response"`
}

// Response shape fragments shared across the doc entries.
var docEnvelope = map[string]string{
	"status":      "String",
	"status_code": "Number",
	"message":     "String",
}

func docWithData(data any) map[string]any {
	return map[string]any{
		"status":      "String",
		"status_code": "Number",
		"message":     "String",
		"data":        data,
	}
}

var docPost = map[string]string{
	"id":         "Number",
	"title":      "String",
	"content":    "String",
	"image":      "String",
	"author":     "String",
	"created_at": "Date",
	"updated_at": "Date",
}

var docRole = map[string]string{
	"id":         "Number",
	"name":       "String",
	"created_at": "Date",
	"updated_at": "Date",
}

var docProfile = map[string]string{
	"id":             "Number",
	"name":           "String",
	"email":          "String",
	"role":           "String",
	"email_verified": "Boolean",
	"created_at":     "Date",
	"updated_at":     "Date",
}

// apiDocumentation is grouped the way the routes are registered; entries
// are listed in registration order so the page doubles as a route map.
var apiDocumentation = map[string][]endpointDoc{
	"auth": {
		{Method: http.MethodPost, Path: "/api/auth/signup", Cookies: "None",
			Description: "Create a new user",
			Body:        map[string]string{"name": "String", "email": "String", "password": "String"},
			Response:    docEnvelope},
		{Method: http.MethodPost, Path: "/api/auth/login", Cookies: "None",
			Description: "Login a user",
			Body:        map[string]string{"email": "String", "password": "String"},
			Response:    docEnvelope},
		{Method: http.MethodPost, Path: "/api/auth/logout", Cookies: "accesstoken",
			Description: "Logout a user",
			Body:        "None",
			Response:    docEnvelope},
		{Method: http.MethodGet, Path: "/api/auth/verified-email/:token", Cookies: "None",
			Description: "Verify a user's email address",
			Body:        "None",
			Response:    docEnvelope},
		{Method: http.MethodPost, Path: "/api/auth/change-password", Cookies: "accesstoken",
			Description: "Change a user's password",
			Body:        map[string]string{"password": "String"},
			Response:    docEnvelope},
		{Method: http.MethodPost, Path: "/api/auth/forgot-password", Cookies: "None",
			Description: "Send a password reset email to a user",
			Body:        map[string]string{"email": "String"},
			Response:    docEnvelope},
		{Method: http.MethodPost, Path: "/api/auth/reset-password/:token", Cookies: "None",
			Description: "Reset a user's password",
			Body:        map[string]string{"password": "String"},
			Response:    docEnvelope},
	},
	"posts": {
		{Method: http.MethodGet, Path: "/api/posts", Cookies: "accesstoken",
			Description: "Get all posts",
			Body:        "None",
			Response:    docWithData([]any{docPost})},
		{Method: http.MethodPost, Path: "/api/posts", Cookies: "accesstoken",
			Description: "Create a new post",
			Body:        map[string]string{"title": "String", "content": "String", "image": "File"},
			Response:    docWithData(docPost)},
		{Method: http.MethodGet, Path: "/api/posts/:id", Cookies: "accesstoken",
			Description: "Get a post by id",
			Body:        "None",
			Response:    docWithData(docPost)},
		{Method: http.MethodPut, Path: "/api/posts/:id", Cookies: "accesstoken",
			Description: "Update a post",
			Body:        map[string]string{"title": "String", "content": "String", "image": "File"},
			Response:    docWithData(docPost)},
		{Method: http.MethodDelete, Path: "/api/posts/:id", Cookies: "accesstoken",
			Description: "Delete a post",
			Body:        "None",
			Response:    docEnvelope},
	},
	"profile": {
		{Method: http.MethodGet, Path: "/api/profile", Cookies: "accesstoken",
			Description: "Get a user's profile",
			Body:        "None",
			Response:    docWithData(docProfile)},
	},
	"role": {
		{Method: http.MethodGet, Path: "/api/role", Cookies: "accesstoken",
			Description: "Get all roles",
			Body:        "None",
			Response:    docWithData([]any{docRole})},
		{Method: http.MethodPost, Path: "/api/role", Cookies: "accesstoken",
			Description: "Create a new role",
			Body:        map[string]string{"name": "String"},
			Response:    docWithData(docRole)},
		{Method: http.MethodPut, Path: "/api/role/:id", Cookies: "accesstoken",
			Description: "Update a role",
			Body:        map[string]string{"name": "String"},
			Response:    docWithData(docRole)},
		{Method: http.MethodDelete, Path: "/api/role/:id", Cookies: "accesstoken",
			Description: "Delete a role",
			Body:        "None",
			Response:    docEnvelope},
	},
}

// Documentation serves the API reference at the default route.
func Documentation(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "success",
		"status_code":   http.StatusOK,
		"message":       "Get documentation successfully",
		"documentation": apiDocumentation,
	})
}
